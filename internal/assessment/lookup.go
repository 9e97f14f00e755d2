package assessment

import (
	"strings"

	"github.com/L1nMay/vulnassess/internal/fixtures"
	"github.com/L1nMay/vulnassess/internal/model"
	"github.com/L1nMay/vulnassess/internal/target"
)

var errNoDeviceTypes = &target.ValidationError{Message: "deviceTypes cannot be empty"}

// normalizeDeviceTypes lowercases and trims the requested types. Only an empty
// list is rejected; blank entries match nothing and end in the fallback.
func normalizeDeviceTypes(deviceTypes []string) (map[string]struct{}, error) {
	if len(deviceTypes) == 0 {
		return nil, errNoDeviceTypes
	}
	set := make(map[string]struct{}, len(deviceTypes))
	for _, dt := range deviceTypes {
		dt = strings.ToLower(strings.TrimSpace(dt))
		if dt == "" {
			continue
		}
		set[dt] = struct{}{}
	}
	return set, nil
}

func matches(set map[string]struct{}, deviceType string) bool {
	_, ok := set[strings.ToLower(strings.TrimSpace(deviceType))]
	return ok
}

// LookupVulnerabilities filters the fixture vulnerabilities and CPE rows by
// device type. Each table falls back to the full fixture when nothing matches.
func (c *Composer) LookupVulnerabilities(deviceTypes []string) (*model.VulnerabilityResponse, error) {
	set, err := normalizeDeviceTypes(deviceTypes)
	if err != nil {
		return nil, err
	}

	var vulns []model.Vulnerability
	for _, v := range c.ds.Vulnerabilities {
		for _, dt := range v.DeviceTypes {
			if matches(set, dt) {
				vulns = append(vulns, fixtures.CloneVulnerability(v))
				break
			}
		}
	}
	if len(vulns) == 0 {
		vulns = c.ds.CloneVulnerabilities()
	}

	return &model.VulnerabilityResponse{
		Vulnerabilities: vulns,
		Analysis:        c.filterAnalysis(set),
	}, nil
}

// LookupCPE returns the CPE rows for the given device types, or all of them
// when nothing matches.
func (c *Composer) LookupCPE(deviceTypes []string) (*model.CPEResponse, error) {
	set, err := normalizeDeviceTypes(deviceTypes)
	if err != nil {
		return nil, err
	}
	return &model.CPEResponse{Analysis: c.filterAnalysis(set)}, nil
}

func (c *Composer) filterAnalysis(set map[string]struct{}) []model.CPEAnalysis {
	var out []model.CPEAnalysis
	for _, a := range c.ds.Analysis {
		if matches(set, a.DeviceType) {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return c.ds.CloneAnalysis()
	}
	return out
}
