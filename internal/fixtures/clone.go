package fixtures

import "github.com/L1nMay/vulnassess/internal/model"

func (d *Dataset) CloneScanOverview() []model.ScanRow {
	return append([]model.ScanRow(nil), d.ScanOverview...)
}

// CloneStatistics returns at most n rows; n < 0 means all.
func (d *Dataset) CloneStatistics(n int) []model.Statistic {
	rows := d.Statistics
	if n >= 0 && n < len(rows) {
		rows = rows[:n]
	}
	return append([]model.Statistic(nil), rows...)
}

func (d *Dataset) CloneFingerprint() model.Fingerprint {
	return model.Fingerprint{
		OS:           d.Fingerprint.OS,
		Technologies: append([]model.Technology(nil), d.Fingerprint.Technologies...),
	}
}

func (d *Dataset) CloneRecognition() model.Recognition {
	meta := make(map[string]string, len(d.Recognition.Metadata)+1)
	for k, v := range d.Recognition.Metadata {
		meta[k] = v
	}
	return model.Recognition{
		Primary:    d.Recognition.Primary,
		Confidence: d.Recognition.Confidence,
		Secondary:  append([]model.SecondaryMatch(nil), d.Recognition.Secondary...),
		Metadata:   meta,
	}
}

func CloneVulnerability(v model.Vulnerability) model.Vulnerability {
	v.DeviceTypes = append([]string(nil), v.DeviceTypes...)
	return v
}

func (d *Dataset) CloneVulnerabilities() []model.Vulnerability {
	out := make([]model.Vulnerability, 0, len(d.Vulnerabilities))
	for _, v := range d.Vulnerabilities {
		out = append(out, CloneVulnerability(v))
	}
	return out
}

func (d *Dataset) CloneAnalysis() []model.CPEAnalysis {
	return append([]model.CPEAnalysis(nil), d.Analysis...)
}
