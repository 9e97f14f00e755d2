package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/L1nMay/vulnassess/internal/config"
	"github.com/L1nMay/vulnassess/internal/logger"
)

var Version = "0.1.0"

// NewRootCmd builds the command tree around its own viper instance so flags
// and VULNASSESS_* variables don't leak between invocations.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "vulnassess",
		Short:         "Vulnerability assessment demo service",
		Long:          "Backend for the vulnerability assessment dashboard demo: resolves target descriptors and serves fixture-backed assessment results.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetDebug(v.GetBool("debug"))
		},
	}

	pf := root.PersistentFlags()
	pf.StringP("config", "c", "config.yaml", "Path to config")
	pf.Bool("debug", false, "Verbose logging")
	pf.String("db-path", "", "bbolt history file")
	pf.String("dsn", "", "Postgres DSN for history (overrides db-path)")
	for _, name := range []string{"config", "debug", "db-path", "dsn"} {
		_ = v.BindPFlag(name, pf.Lookup(name))
	}

	v.SetEnvPrefix("VULNASSESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	root.AddCommand(newServeCmd(v))
	root.AddCommand(newResolveCmd())
	root.AddCommand(newHistoryCmd(v))
	root.AddCommand(newVersionCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the YAML file and layers flags and environment on top.
// The default config path may be absent; an explicit one may not.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	path := v.GetString("config")
	cfg, err := config.LoadConfig(path, !v.IsSet("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if v.IsSet("debug") {
		cfg.Debug = v.GetBool("debug")
	}
	if v.IsSet("listen") {
		cfg.Listen = v.GetString("listen")
	}
	if v.IsSet("db-path") {
		cfg.DBPath = v.GetString("db-path")
	}
	if v.IsSet("dsn") {
		cfg.Database.DSN = v.GetString("dsn")
	}
	if v.IsSet("fixtures") {
		cfg.FixturesPath = v.GetString("fixtures")
	}
	if v.IsSet("demo-latency") {
		cfg.DemoLatencyMs = v.GetInt("demo-latency")
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vulnassess version %s\n", Version)
		},
	}
}
