package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDataset(t *testing.T) {
	ds := Default()
	require.NotNil(t, ds)

	assert.Len(t, ds.ScanOverview, 4)
	assert.Equal(t, "Port 22", ds.ScanOverview[0].Title)
	assert.Len(t, ds.Statistics, 3)
	assert.Equal(t, 6, ds.Statistics[0].Value)
	assert.Equal(t, "Embedded Linux (kernel 4.19)", ds.Fingerprint.OS)
	assert.Equal(t, "1.22", ds.Fingerprint.Technologies[1].Version)
	assert.Equal(t, "Industrial Gateway / Router", ds.Recognition.Primary)
	assert.InDelta(t, 0.87, ds.Recognition.Confidence, 1e-9)
	assert.Equal(t, "Siemens", ds.Recognition.Metadata["manufacturer"])
	assert.Len(t, ds.Vulnerabilities, 3)
	assert.Equal(t, []string{"nginx", "web server"}, ds.Vulnerabilities[1].DeviceTypes)
	assert.Equal(t, "2023-11-18", ds.Vulnerabilities[0].Published)
	assert.Len(t, ds.Analysis, 3)
	assert.Equal(t, "cpe:/a:siemens:wincc:8.1", ds.Analysis[1].CPE)

	assert.Same(t, ds, Default())
}

func TestCloneIsolation(t *testing.T) {
	ds := Default()

	rec := ds.CloneRecognition()
	rec.Metadata["campaign"] = "x"
	rec.Secondary[0].Type = "changed"
	_, leaked := ds.Recognition.Metadata["campaign"]
	assert.False(t, leaked)
	assert.Equal(t, "Industrial Controller", ds.Recognition.Secondary[0].Type)

	vulns := ds.CloneVulnerabilities()
	vulns[0].DeviceTypes[0] = "changed"
	vulns[0].CVE = "changed"
	assert.Equal(t, "Industrial Gateway / Router", ds.Vulnerabilities[0].DeviceTypes[0])
	assert.Equal(t, "CVE-2023-12345", ds.Vulnerabilities[0].CVE)

	fp := ds.CloneFingerprint()
	fp.Technologies[0].Name = "changed"
	assert.Equal(t, "OpenSSH", ds.Fingerprint.Technologies[0].Name)

	rows := ds.CloneScanOverview()
	rows[0].Title = "changed"
	assert.Equal(t, "Port 22", ds.ScanOverview[0].Title)

	assert.Len(t, ds.CloneStatistics(2), 2)
	assert.Len(t, ds.CloneStatistics(-1), 3)
	assert.Len(t, ds.CloneStatistics(10), 3)
}

func TestLoad(t *testing.T) {
	ds, err := Load("")
	require.NoError(t, err)
	assert.Same(t, Default(), ds)

	_, err = Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, embedded, 0o600))
	ds, err = Load(path)
	require.NoError(t, err)
	assert.NotSame(t, Default(), ds)
	assert.Equal(t, Default().Analysis, ds.Analysis)
}

func TestParseRejectsIncompleteDataset(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"overview only", "scan_overview: [{title: a}]"},
		{"no analysis", `
scan_overview: [{title: a}]
fingerprint: {os: linux}
recognition: {primary: router}
vulnerabilities: [{cve: CVE-1}]
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}
