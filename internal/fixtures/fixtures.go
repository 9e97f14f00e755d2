// Package fixtures holds the canned scan, fingerprint and vulnerability
// tables the demo serves. A Dataset is loaded once and treated as read-only;
// callers get copies.
package fixtures

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/L1nMay/vulnassess/internal/model"
)

//go:embed fixtures.yaml
var embedded []byte

type Dataset struct {
	ScanOverview    []model.ScanRow       `yaml:"scan_overview"`
	Statistics      []model.Statistic     `yaml:"statistics"`
	Fingerprint     model.Fingerprint     `yaml:"fingerprint"`
	Recognition     model.Recognition     `yaml:"recognition"`
	Vulnerabilities []model.Vulnerability `yaml:"vulnerabilities"`
	Analysis        []model.CPEAnalysis   `yaml:"analysis"`
}

var (
	defaultOnce sync.Once
	defaultDS   *Dataset
)

// Default returns the embedded dataset. It panics if the embedded YAML is
// broken, which can only happen at build time.
func Default() *Dataset {
	defaultOnce.Do(func() {
		ds, err := Parse(embedded)
		if err != nil {
			panic(fmt.Sprintf("fixtures: embedded dataset: %v", err))
		}
		defaultDS = ds
	})
	return defaultDS
}

// Load reads a dataset from path, or returns Default when path is empty.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fixtures %s: %w", path, err)
	}
	return ds, nil
}

func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, err
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (d *Dataset) Validate() error {
	switch {
	case len(d.ScanOverview) == 0:
		return fmt.Errorf("scan_overview is empty")
	case d.Fingerprint.OS == "":
		return fmt.Errorf("fingerprint.os is empty")
	case d.Recognition.Primary == "":
		return fmt.Errorf("recognition.primary is empty")
	case len(d.Vulnerabilities) == 0:
		return fmt.Errorf("vulnerabilities is empty")
	case len(d.Analysis) == 0:
		return fmt.Errorf("analysis is empty")
	}
	return nil
}
