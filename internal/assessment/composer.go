package assessment

import (
	"strings"
	"time"

	"github.com/L1nMay/vulnassess/internal/fixtures"
	"github.com/L1nMay/vulnassess/internal/model"
)

const timestampLayout = "2006-01-02 15:04"

// Composer merges a target summary into copies of the fixture tables. It keeps
// no per-request state and is safe for concurrent use.
type Composer struct {
	ds  *fixtures.Dataset
	now func() time.Time
}

// NewComposer uses the embedded dataset when ds is nil.
func NewComposer(ds *fixtures.Dataset) *Composer {
	if ds == nil {
		ds = fixtures.Default()
	}
	return &Composer{ds: ds, now: time.Now}
}

// WithClock returns a copy of c that stamps responses with now().
func (c *Composer) WithClock(now func() time.Time) *Composer {
	cp := *c
	cp.now = now
	return &cp
}

func (c *Composer) Dataset() *fixtures.Dataset {
	return c.ds
}

// Compose builds a full assessment response for s from fresh fixture copies.
func (c *Composer) Compose(s *model.TargetSummary) *model.AssessmentResponse {
	if s == nil {
		s = &model.TargetSummary{}
	}

	overview := c.ds.CloneScanOverview()
	if len(overview) > 0 && len(s.TargetsPreview) > 0 {
		overview[0].Title = s.TargetsPreview[0] + " · " + overview[0].Title
	}

	recognition := c.ds.CloneRecognition()
	recognition.Metadata["campaign"] = s.Label

	return &model.AssessmentResponse{
		Summary: s,
		Scan: model.ScanSection{
			Overview:   overview,
			Statistics: c.statistics(s),
		},
		Fingerprint:     c.ds.CloneFingerprint(),
		Recognition:     recognition,
		Vulnerabilities: c.ds.CloneVulnerabilities(),
		Analysis:        c.ds.CloneAnalysis(),
	}
}

func (c *Composer) statistics(s *model.TargetSummary) []model.Statistic {
	var total int64 = 1
	switch {
	case s.TotalTargets > 0:
		total = s.TotalTargets
	case len(s.TargetsPreview) > 0:
		total = int64(len(s.TargetsPreview))
	}

	sample := "-"
	if len(s.TargetsPreview) > 0 {
		n := len(s.TargetsPreview)
		if n > 3 {
			n = 3
		}
		sample = strings.Join(s.TargetsPreview[:n], ", ")
	}

	fixed := c.ds.CloneStatistics(3)
	out := make([]model.Statistic, 0, len(fixed)+3)
	out = append(out,
		model.Statistic{Label: "Targets assessed", Value: total},
		model.Statistic{Label: "Sample targets", Value: sample},
	)
	out = append(out, fixed...)
	out = append(out, model.Statistic{
		Label: "Latest scan",
		Value: c.now().UTC().Format(timestampLayout),
	})
	return out
}
