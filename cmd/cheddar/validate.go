package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cheddar-hq/adapter/pkg/cli"
	"cheddar-hq/adapter/pkg/config"
)

var validateFlags struct {
	output string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load a configuration file, apply defaults and CHEDDAR_* environment
overrides, validate it and print the resolved settings.

Every invalid field is reported, not just the first one.

Examples:
  # Validate a configuration file
  cheddar validate --config config.yaml

  # Print the resolved configuration as JSON
  cheddar validate --config config.yaml --output json`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.output, "output", "o", "text", "output format: text, json")
}

// configSummary is the resolved configuration printed by validate.
type configSummary struct {
	Source           string `json:"source"`
	ListenAddress    string `json:"listen_address"`
	Upstream         string `json:"upstream"`
	AdmissionEnabled bool   `json:"admission_enabled"`
	AdminEnabled     bool   `json:"admin_enabled"`
	InitialStatus    string `json:"initial_status"`
	StartPaused      bool   `json:"start_paused"`
	HaltGracePeriod  string `json:"halt_grace_period"`
	ShutdownTimeout  string `json:"shutdown_timeout"`
	LogLevel         string `json:"log_level"`
	MetricsPath      string `json:"metrics_path,omitempty"`
	StatusPath       string `json:"status_path"`
	StatusReport     string `json:"status_report,omitempty"`
	WatchEnabled     bool   `json:"watch"`
}

// Fields implements cli.Fielder.
func (s configSummary) Fields() []cli.Field {
	return []cli.Field{
		{Name: "Source", Value: s.Source},
		{Name: "Listen address", Value: s.ListenAddress},
		{Name: "Upstream", Value: s.Upstream},
		{Name: "Admission", Value: s.AdmissionEnabled},
		{Name: "Admin endpoint", Value: s.AdminEnabled},
		{Name: "Initial status", Value: s.InitialStatus},
		{Name: "Start paused", Value: s.StartPaused},
		{Name: "Halt grace period", Value: s.HaltGracePeriod},
		{Name: "Shutdown timeout", Value: s.ShutdownTimeout},
		{Name: "Log level", Value: s.LogLevel},
		{Name: "Metrics path", Value: orDisabled(s.MetricsPath)},
		{Name: "Status path", Value: s.StatusPath},
		{Name: "Status report", Value: orDisabled(s.StatusReport)},
		{Name: "Watch", Value: s.WatchEnabled},
	}
}

func orDisabled(v string) string {
	if v == "" {
		return "disabled"
	}
	return v
}

func summarize(cfg *config.Config, source string) configSummary {
	s := configSummary{
		Source:           source,
		ListenAddress:    cfg.Server.ListenAddress,
		Upstream:         cfg.Server.UpstreamURL,
		AdmissionEnabled: cfg.Server.Admission.Enabled,
		AdminEnabled:     cfg.Server.Admin.Enabled,
		InitialStatus:    cfg.Lifecycle.InitialStatus,
		StartPaused:      cfg.Lifecycle.StartPaused,
		HaltGracePeriod:  cfg.Lifecycle.HaltGracePeriod.String(),
		ShutdownTimeout:  cfg.Server.ShutdownTimeout.String(),
		LogLevel:         cfg.Telemetry.Logging.Level,
		StatusPath:       cfg.Telemetry.Health.StatusPath,
		WatchEnabled:     cfg.Watch,
	}
	if s.Upstream == "" {
		s.Upstream = "built-in ping"
	}
	if cfg.Telemetry.Metrics.Enabled {
		s.MetricsPath = cfg.Telemetry.Metrics.Path
	}
	if cfg.Telemetry.StatusReport.Enabled {
		s.StatusReport = cfg.Telemetry.StatusReport.Schedule
	}
	return s
}

func validateConfig(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(validateFlags.output)
	if err != nil {
		return cli.NewConfigError("output", err.Error())
	}

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	source := cfgFile
	if source == "" {
		source = "defaults"
	}

	out := cmd.OutOrStdout()
	if format == cli.FormatText {
		fmt.Fprintln(out, "✓ Configuration valid")
		fmt.Fprintln(out)
	}
	return cli.NewFormatter(format).FormatTo(out, summarize(cfg, source))
}
