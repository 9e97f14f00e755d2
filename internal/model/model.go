package model

import (
	"time"
)

// TargetSummary is the display-ready form of a resolved target descriptor.
type TargetSummary struct {
	Mode           string   `json:"mode"`
	Label          string   `json:"label"`
	TargetsPreview []string `json:"targetsPreview"`
	TotalTargets   int64    `json:"totalTargets"`
	Message        string   `json:"message,omitempty"`
}

type ScanRow struct {
	Title   string `json:"title" yaml:"title"`
	Status  string `json:"status" yaml:"status"`
	Service string `json:"service" yaml:"service"`
}

// Statistic values are either numbers or strings depending on the row.
type Statistic struct {
	Label string `json:"label" yaml:"label"`
	Value any    `json:"value" yaml:"value"`
}

type Technology struct {
	Name     string `json:"name" yaml:"name"`
	Version  string `json:"version" yaml:"version"`
	Category string `json:"category" yaml:"category"`
}

type Fingerprint struct {
	OS           string       `json:"os" yaml:"os"`
	Technologies []Technology `json:"technologies" yaml:"technologies"`
}

type SecondaryMatch struct {
	Type  string  `json:"type" yaml:"type"`
	Score float64 `json:"score" yaml:"score"`
}

type Recognition struct {
	Primary    string            `json:"primary" yaml:"primary"`
	Confidence float64           `json:"confidence" yaml:"confidence"`
	Secondary  []SecondaryMatch  `json:"secondary" yaml:"secondary"`
	Metadata   map[string]string `json:"metadata" yaml:"metadata"`
}

type Vulnerability struct {
	CVE         string   `json:"cve" yaml:"cve"`
	Severity    string   `json:"severity" yaml:"severity"`
	Score       float64  `json:"score" yaml:"score"`
	Description string   `json:"description" yaml:"description"`
	Published   string   `json:"published" yaml:"published"`
	Exploit     string   `json:"exploit" yaml:"exploit"`
	DeviceTypes []string `json:"deviceTypes" yaml:"device_types"`
}

// CPEAnalysis maps a device type to a CPE identifier.
type CPEAnalysis struct {
	DeviceType   string `json:"deviceType" yaml:"device_type"`
	CPE          string `json:"cpe" yaml:"cpe"`
	Relationship string `json:"relationship" yaml:"relationship"`
}

type ScanSection struct {
	Overview   []ScanRow   `json:"overview"`
	Statistics []Statistic `json:"statistics"`
}

type AssessmentResponse struct {
	Summary         *TargetSummary  `json:"summary"`
	Scan            ScanSection     `json:"scan"`
	Fingerprint     Fingerprint     `json:"fingerprint"`
	Recognition     Recognition     `json:"recognition"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
	Analysis        []CPEAnalysis   `json:"analysis"`
}

type VulnerabilityResponse struct {
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
	Analysis        []CPEAnalysis   `json:"analysis"`
}

type CPEResponse struct {
	Analysis []CPEAnalysis `json:"analysis"`
}

// AssessmentRecord is the persisted trace of one served assessment.
type AssessmentRecord struct {
	ID           string    `json:"id"`
	Mode         string    `json:"mode"`
	Label        string    `json:"label"`
	TotalTargets int64     `json:"total_targets"`
	Preview      []string  `json:"preview"`
	RemoteAddr   string    `json:"remote_addr,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
