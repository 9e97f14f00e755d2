package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/L1nMay/vulnassess/internal/target"
)

func TestLookupVulnerabilities(t *testing.T) {
	c := NewComposer(nil)

	tests := []struct {
		name     string
		types    []string
		cves     []string
		analysis []string
	}{
		{
			name:     "exact recognition type",
			types:    []string{"Industrial Gateway / Router"},
			cves:     []string{"CVE-2023-12345"},
			analysis: []string{"cpe:/o:siemens:scalance_m745"},
		},
		{
			name:     "case insensitive",
			types:    []string{"NGINX", "  OpenSSH "},
			cves:     []string{"CVE-2022-55678", "CVE-2021-9876"},
			analysis: []string{"cpe:/o:siemens:scalance_m745", "cpe:/a:siemens:wincc:8.1", "cpe:/h:siemens:industrial_edge"},
		},
		{
			name:     "analysis only match",
			types:    []string{"edge computing node"},
			cves:     []string{"CVE-2023-12345", "CVE-2022-55678", "CVE-2021-9876"},
			analysis: []string{"cpe:/h:siemens:industrial_edge"},
		},
		{
			name:     "blank entries fall back",
			types:    []string{"", "   "},
			cves:     []string{"CVE-2023-12345", "CVE-2022-55678", "CVE-2021-9876"},
			analysis: []string{"cpe:/o:siemens:scalance_m745", "cpe:/a:siemens:wincc:8.1", "cpe:/h:siemens:industrial_edge"},
		},
		{
			name:     "no match falls back",
			types:    []string{"toaster"},
			cves:     []string{"CVE-2023-12345", "CVE-2022-55678", "CVE-2021-9876"},
			analysis: []string{"cpe:/o:siemens:scalance_m745", "cpe:/a:siemens:wincc:8.1", "cpe:/h:siemens:industrial_edge"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.LookupVulnerabilities(tt.types)
			require.NoError(t, err)

			var cves []string
			for _, v := range resp.Vulnerabilities {
				cves = append(cves, v.CVE)
			}
			var cpes []string
			for _, a := range resp.Analysis {
				cpes = append(cpes, a.CPE)
			}
			assert.Equal(t, tt.cves, cves)
			assert.Equal(t, tt.analysis, cpes)
		})
	}
}

func TestLookupVulnerabilitiesEmpty(t *testing.T) {
	c := NewComposer(nil)
	for _, types := range [][]string{nil, {}} {
		resp, err := c.LookupVulnerabilities(types)
		assert.Nil(t, resp)
		require.Error(t, err)
		assert.True(t, target.IsValidation(err))
		assert.Equal(t, "deviceTypes cannot be empty", err.Error())
	}
}

func TestLookupResultsAreCopies(t *testing.T) {
	c := NewComposer(nil)

	resp, err := c.LookupVulnerabilities([]string{"nginx"})
	require.NoError(t, err)
	resp.Vulnerabilities[0].DeviceTypes[0] = "mutated"
	resp.Analysis[0].CPE = "mutated"

	assert.Equal(t, "nginx", c.Dataset().Vulnerabilities[1].DeviceTypes[0])
	assert.Equal(t, "cpe:/o:siemens:scalance_m745", c.Dataset().Analysis[0].CPE)
}

func TestLookupCPE(t *testing.T) {
	c := NewComposer(nil)

	resp, err := c.LookupCPE([]string{"industrial controller"})
	require.NoError(t, err)
	require.Len(t, resp.Analysis, 1)
	assert.Equal(t, "Companion software", resp.Analysis[0].Relationship)

	resp, err = c.LookupCPE([]string{"unknown"})
	require.NoError(t, err)
	assert.Len(t, resp.Analysis, 3)

	_, err = c.LookupCPE(nil)
	assert.True(t, target.IsValidation(err))
}
