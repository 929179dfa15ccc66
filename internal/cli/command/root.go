package command

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/metricsdump/internal/cli/output"
	"github.com/yndnr/metricsdump/internal/config"
	"github.com/yndnr/metricsdump/internal/infra/buildinfo"
	"github.com/yndnr/metricsdump/internal/infra/confloader"
	"github.com/yndnr/metricsdump/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:     "metricsdump",
		Usage:    "Periodically dump in-process counters and gauges to a file",
		Version:  buildinfo.String(),
		Flags:    globalFlags(),
		Commands: []*cli.Command{
			RunCommand(),
			InspectCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
		Before: func(c *cli.Context) error {
			flags := ParseGlobalFlags(c)
			if _, err := output.ParseFormat(flags.Output); err != nil {
				return err
			}
			return nil
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML configuration file",
			EnvVars: []string{"METRICSDUMP_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Config    string
	LogLevel  string
	LogFormat string

	Output string
	Wide   bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Config:    c.String("config"),
		LogLevel:  c.String("log-level"),
		LogFormat: c.String("log-format"),
		Output:    c.String("output"),
		Wide:      c.Bool("wide"),
	}
}

// overrides collects configuration values set on the command line.
// Only flags the user actually set take part, so that they do not mask
// file and environment values with their defaults.
func overrides(c *cli.Context, byFlag map[string]string) map[string]any {
	values := make(map[string]any)
	for flag, key := range byFlag {
		if c.IsSet(flag) {
			values[key] = c.Value(flag)
		}
	}
	return values
}

// loadConfig builds the effective configuration: defaults, file,
// environment and then extra, which holds flag values by dotted key.
func loadConfig(c *cli.Context, extra map[string]any) (*config.Config, *confloader.Loader, error) {
	return loadConfigFile(c, ParseGlobalFlags(c).Config, extra)
}

func loadConfigFile(c *cli.Context, path string, extra map[string]any) (*config.Config, *confloader.Loader, error) {
	values := overrides(c, map[string]string{
		"log-level":  "log.level",
		"log-format": "log.format",
	})
	for k, v := range extra {
		values[k] = v
	}

	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithOverrides(values),
	)

	cfg := config.Default()
	if err := loader.Load(cfg); err != nil {
		return nil, nil, err
	}
	cfg = config.Normalize(cfg)
	if err := config.Verify(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, loader, nil
}

// initLogger creates the process logger from cfg, writing to w, makes it
// the slog default and puts it on the command context.
func initLogger(c *cli.Context, cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: w,
	})
	if err != nil {
		return nil, err
	}
	logger.SetDefault(log)
	c.Context = logger.WithLogger(c.Context, log)
	return log.Slog(), nil
}

// render writes data to the app's writer in the selected output format.
func render(c *cli.Context, data any) error {
	flags := ParseGlobalFlags(c)
	format, err := output.ParseFormat(flags.Output)
	if err != nil {
		return err
	}
	if err := output.NewFormatter(format, flags.Wide).Format(c.App.Writer, data); err != nil {
		return fmt.Errorf("render output: %w", err)
	}
	return nil
}
