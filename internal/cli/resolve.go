package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/L1nMay/vulnassess/internal/assessment"
	"github.com/L1nMay/vulnassess/internal/fixtures"
	"github.com/L1nMay/vulnassess/internal/target"
)

type resolveOptions struct {
	kind     string
	ip       string
	subnet   string
	mask     string
	file     string
	fixtures string
	asJSON   bool
}

func newResolveCmd() *cobra.Command {
	opts := &resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a target offline and print the summary",
		Example: `  vulnassess resolve --ip 192.168.1.10
  vulnassess resolve --type subnet --subnet 10.0.0.0 --mask 255.255.255.0
  vulnassess resolve --type file --file targets.txt --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.kind, "type", "t", "single", "single | subnet | file")
	f.StringVar(&opts.ip, "ip", "", "Target IP (single)")
	f.StringVar(&opts.subnet, "subnet", "", "Subnet address (subnet)")
	f.StringVar(&opts.mask, "mask", "", "Mask or prefix length (subnet)")
	f.StringVarP(&opts.file, "file", "f", "", "File with IPs separated by newlines or commas (file)")
	f.StringVar(&opts.fixtures, "fixtures", "", "YAML fixtures file replacing the built-in dataset")
	f.BoolVar(&opts.asJSON, "json", false, "Print the full assessment response as JSON")
	return cmd
}

func runResolve(cmd *cobra.Command, opts *resolveOptions) error {
	kind, err := target.ParseKind(opts.kind)
	if err != nil {
		return err
	}

	d := target.Descriptor{Kind: kind, IP: opts.ip, Subnet: opts.subnet, Mask: opts.mask}
	if kind == target.KindFile && opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return fmt.Errorf("read targets file: %w", err)
		}
		d.File = data
		d.FileName = filepath.Base(opts.file)
	}

	summary, err := target.Resolve(d)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		ds, err := fixtures.Load(opts.fixtures)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(assessment.NewComposer(ds).Compose(summary))
	}

	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	bold.Fprintf(out, "%s\n", summary.Label)
	fmt.Fprintf(out, "  mode:    %s\n", cyan.Sprint(summary.Mode))
	fmt.Fprintf(out, "  targets: %s\n", green.Sprint(summary.TotalTargets))
	fmt.Fprintf(out, "  preview: %s\n", strings.Join(summary.TargetsPreview, ", "))
	if summary.Message != "" {
		fmt.Fprintf(out, "  %s\n", summary.Message)
	}
	return nil
}
