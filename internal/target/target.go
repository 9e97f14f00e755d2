package target

import (
	"fmt"
	"strings"

	"github.com/L1nMay/vulnassess/internal/model"
)

type Kind string

const (
	KindSingle Kind = "single"
	KindSubnet Kind = "subnet"
	KindFile   Kind = "file"
)

// ParseKind defaults an empty value to single.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindSingle:
		return KindSingle, nil
	case KindSubnet:
		return KindSubnet, nil
	case KindFile:
		return KindFile, nil
	}
	return "", invalid("Unsupported assessment type")
}

// Descriptor is what the user asked to assess. Only the fields for Kind are
// read; File is nil when nothing was uploaded.
type Descriptor struct {
	Kind     Kind
	IP       string
	Subnet   string
	Mask     string
	FileName string
	File     []byte
}

// Resolve validates d and derives its target summary. Bad input comes back as
// a *ValidationError.
func Resolve(d Descriptor) (*model.TargetSummary, error) {
	switch d.Kind {
	case KindFile:
		return resolveFile(d)
	case KindSubnet:
		return resolveSubnet(d)
	case KindSingle, "":
		return resolveSingle(d)
	}
	return nil, invalid("Unsupported assessment type")
}

func resolveSingle(d Descriptor) (*model.TargetSummary, error) {
	ip := strings.TrimSpace(d.IP)
	if ip == "" {
		return nil, invalid("Please provide a valid IP address")
	}
	return &model.TargetSummary{
		Mode:           string(KindSingle),
		Label:          ip,
		TargetsPreview: []string{ip},
		TotalTargets:   1,
		Message:        fmt.Sprintf("Completed single-host assessment for %s", ip),
	}, nil
}

func resolveSubnet(d Descriptor) (*model.TargetSummary, error) {
	subnet := strings.TrimSpace(d.Subnet)
	mask := strings.TrimSpace(d.Mask)
	if subnet == "" || mask == "" {
		return nil, invalid("Please provide a subnet and mask/prefix")
	}

	preview := GenerateSampleIPs(subnet, PreviewSize)
	if len(preview) == 0 {
		return nil, invalid("The subnet format is invalid")
	}

	prefix, ok := MaskToPrefix(mask)
	if !ok {
		return nil, invalid("The mask format is invalid")
	}
	total := EstimateHostCount(prefix)

	label := subnet + "/" + mask
	return &model.TargetSummary{
		Mode:           string(KindSubnet),
		Label:          label,
		TargetsPreview: preview,
		TotalTargets:   total,
		Message:        fmt.Sprintf("Subnet %s is expected to scan %d targets", label, total),
	}, nil
}

func resolveFile(d Descriptor) (*model.TargetSummary, error) {
	if d.File == nil {
		return nil, invalid("Please upload a file containing IP addresses")
	}
	targets := ParseTargets(d.File)
	if len(targets) == 0 {
		return nil, invalid("No valid targets were detected in the file")
	}

	name := d.FileName
	if name == "" {
		name = "targets"
	}
	preview := targets
	if len(preview) > PreviewSize {
		preview = preview[:PreviewSize]
	}
	return &model.TargetSummary{
		Mode:           string(KindFile),
		Label:          fmt.Sprintf("%s (%d entries)", name, len(targets)),
		TargetsPreview: append([]string(nil), preview...),
		TotalTargets:   int64(len(targets)),
		Message:        fmt.Sprintf("Imported %d targets. Starting assessment.", len(targets)),
	}, nil
}

// ParseTargets splits an uploaded target list on newlines and commas and
// returns the distinct non-empty entries in first-seen order. Entries are not
// checked to be addresses.
func ParseTargets(data []byte) []string {
	fields := strings.FieldsFunc(string(data), func(r rune) bool {
		return r == '\n' || r == ','
	})
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
