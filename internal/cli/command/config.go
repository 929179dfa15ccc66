package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/metricsdump/internal/cli/output"
	"github.com/yndnr/metricsdump/internal/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration (defaults, file, environment, flags)",
				Action: configShow,
			},
			{
				Name:      "validate",
				Usage:     "Validate a configuration file",
				ArgsUsage: "FILE",
				Action:    configValidate,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	cfg, _, err := loadConfig(c, nil)
	if err != nil {
		return err
	}

	if ParseGlobalFlags(c).Output == string(output.FormatTable) {
		return render(c, configTable(cfg))
	}
	return render(c, cfg)
}

func configValidate(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one FILE argument")
	}
	if _, _, err := loadConfigFile(c, c.Args().First(), nil); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s: ok\n", c.Args().First())
	return nil
}

// configTable flattens cfg into dotted keys.
func configTable(cfg *config.Config) *output.Table {
	t := &output.Table{Headers: []string{"KEY", "VALUE"}}
	t.AddRow("dump.path", cfg.Dump.Path)
	t.AddRow("dump.interval", cfg.Dump.Interval.String())
	t.AddRow("dump.location", cfg.Dump.Location)
	t.AddRow("log.level", cfg.Log.Level)
	t.AddRow("log.format", cfg.Log.Format)
	t.AddRow("workload.enabled", fmt.Sprint(cfg.Workload.Enabled))
	t.AddRow("workload.workers", fmt.Sprint(cfg.Workload.Workers))
	t.AddRow("workload.tick", cfg.Workload.Tick.String())
	return t
}
