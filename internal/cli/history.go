package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/L1nMay/vulnassess/internal/storage"
)

func newHistoryCmd(v *viper.Viper) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded assessments",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			store, err := storage.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.ListAssessments(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				color.New(color.FgYellow).Fprintln(out, "no assessments recorded")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tMODE\tTARGETS\tLABEL")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
					r.CreatedAt.Local().Format(time.DateTime), r.Mode, r.TotalTargets, r.Label)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum records to show (0 = all)")
	return cmd
}
