package cli

import (
	"github.com/spf13/cobra"

	"interactive-calculator/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

// options holds the raw flag values; only flags the user set override the
// file and environment configuration.
type options struct {
	configPath string
	logLevel   string
	banner     bool
	telemetry  bool
	statusAddr string
	input      string
}

// NewRootCmd builds the calculator command.
func NewRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "calculator",
		Short: "Interactive two-operand calculator",
		Long: `Reads two numbers and an operator (+, -, *, /) per round from standard
input, prints the result to two decimal places and keeps a running count of
successful operations. Enter 'q' as the operator, or close the input, to quit.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculator(cmd, opts)
		},
	}

	cmd.Version = Version
	cmd.SetVersionTemplate("calculator version {{.Version}}\n")

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "stderr log level: debug, info, warn or error")
	flags.BoolVar(&opts.banner, "banner", config.DefaultBanner, "print the welcome banner")
	flags.BoolVar(&opts.telemetry, "telemetry", false, "export traces, metrics and logs over OTLP/HTTP")
	flags.StringVar(&opts.statusAddr, "status-addr", "", "serve /health, /status and /metrics on host:port during the session")
	flags.StringVarP(&opts.input, "input", "i", "", "read the session from a file instead of stdin")

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
