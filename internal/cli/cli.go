// Package cli defines the vizro command tree.
package cli

import (
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/yonkmanjl/vizro/internal/app"
	"github.com/yonkmanjl/vizro/internal/config"
	"github.com/yonkmanjl/vizro/internal/fsutil"
	"github.com/yonkmanjl/vizro/internal/hclcfg"
	"github.com/yonkmanjl/vizro/internal/yamlcfg"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// envDefaults are flag defaults overridable through the environment, so
// containerized deployments can configure the server without arguments.
type envDefaults struct {
	Addr      string `env:"VIZRO_ADDR" envDefault:":8050"`
	LogFormat string `env:"VIZRO_LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"VIZRO_LOG_LEVEL" envDefault:"info"`
}

// New builds the root command. All command output goes to outW.
func New(outW io.Writer) (*cobra.Command, error) {
	var defaults envDefaults
	if err := env.Parse(&defaults); err != nil {
		return nil, err
	}

	var logFormat, logLevel string

	root := &cobra.Command{
		Use:           "vizro",
		Short:         "Serve declarative dashboards from HCL or YAML definitions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logFormat = strings.ToLower(logFormat)
			if logFormat != "text" && logFormat != "json" {
				return &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
			}
			logLevel = strings.ToLower(logLevel)
			switch logLevel {
			case "debug", "info", "warn", "error":
			default:
				return &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
			}
			return nil
		},
	}
	root.SetOut(outW)
	root.SetErr(outW)
	root.PersistentFlags().StringVar(&logFormat, "log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	root.PersistentFlags().StringVar(&logLevel, "log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	var addr string
	var watchFlag bool
	runCmd := &cobra.Command{
		Use:   "run CONFIG_PATH",
		Short: "Build the dashboard and serve it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(outW, args[0], addr, logFormat, logLevel, watchFlag)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.Run(ctx)
		},
	}
	runCmd.Flags().StringVar(&addr, "addr", defaults.Addr, "Listen address for the dashboard server.")
	runCmd.Flags().BoolVar(&watchFlag, "watch", false, "Rebuild the dashboard when definition files change.")

	validateCmd := &cobra.Command{
		Use:   "validate CONFIG_PATH",
		Short: "Build the dashboard and report validation errors without serving.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(outW, args[0], "", logFormat, logLevel, false)
			if err != nil {
				return err
			}
			fmt.Fprintf(outW, "dashboard valid: %d page(s)\n", len(a.Snapshot().Registry.Pages()))
			return nil
		},
	}

	root.AddCommand(runCmd, validateCmd)
	return root, nil
}

func newApp(outW io.Writer, configPath, addr, logFormat, logLevel string, watchFlag bool) (*app.App, error) {
	cfg, err := app.NewConfig(app.Config{
		ConfigPath: configPath,
		Addr:       addr,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
		Watch:      watchFlag,
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}

	loader, err := chooseLoader(configPath)
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	return app.NewApp(outW, cfg, loader)
}

// chooseLoader picks the definition format by the files present: HCL when any
// .hcl file exists, YAML otherwise. Mixing formats in one directory is not
// supported.
func chooseLoader(configPath string) (config.Loader, error) {
	hclFiles, err := fsutil.FindFilesByExtension(configPath, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(hclFiles) > 0 {
		return hclcfg.NewLoader(), nil
	}

	yamlFiles, err := fsutil.FindFilesByExtension(configPath, ".yaml")
	if err != nil {
		return nil, err
	}
	ymlFiles, err := fsutil.FindFilesByExtension(configPath, ".yml")
	if err != nil {
		return nil, err
	}
	if len(yamlFiles)+len(ymlFiles) > 0 {
		return yamlcfg.NewLoader(), nil
	}

	return nil, fmt.Errorf("no .hcl or .yaml definition files found under %q", configPath)
}
