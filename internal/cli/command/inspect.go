package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/metricsdump/internal/cli/output"
	"github.com/yndnr/metricsdump/internal/config"
	"github.com/yndnr/metricsdump/pkg/dumpfile"
)

// InspectCommand returns the inspect command.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Summarize a dump file",
		ArgsUsage: "FILE",
		Description: "Reads a dump file and prints, per metric, the sum of all written values,\n" +
			"which for a read-and-clear dump is the total over the covered period.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "location",
				Usage: `Time zone the file was written in ("local", "UTC", IANA name)`,
				Value: "local",
			},
			&cli.BoolFlag{
				Name:  "records",
				Usage: "Print every sample instead of the totals",
			},
			&cli.IntFlag{
				Name:  "tail",
				Usage: "Only consider the last N lines (0 means all)",
			},
		},
		Action: inspectAction,
	}
}

// sampleRow is one sample of --records output.
type sampleRow struct {
	Time  time.Time `json:"time" yaml:"time"`
	Name  string    `json:"name" yaml:"name"`
	Value string    `json:"value" yaml:"value"`
}

func inspectAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one FILE argument")
	}

	loc, err := parseLocation(c.String("location"))
	if err != nil {
		return err
	}

	records, err := dumpfile.ReadFile(c.Args().First(), loc)
	if err != nil {
		return err
	}
	if n := c.Int("tail"); n > 0 && n < len(records) {
		records = records[len(records)-n:]
	}

	if c.Bool("records") {
		var rows []sampleRow
		for _, rec := range records {
			for _, s := range rec.Samples {
				rows = append(rows, sampleRow{Time: rec.Time, Name: s.Name, Value: s.Raw})
			}
		}
		return render(c, rows)
	}

	summary := dumpfile.Totals(records)
	if ParseGlobalFlags(c).Output == string(output.FormatTable) {
		fmt.Fprintf(c.App.Writer, "%d records", summary.Records)
		if summary.Records > 0 {
			fmt.Fprintf(c.App.Writer, " from %s to %s",
				summary.First.Format(dumpfile.TimestampLayout),
				summary.Last.Format(dumpfile.TimestampLayout))
		}
		fmt.Fprintln(c.App.Writer)
		if len(summary.Totals) == 0 {
			return nil
		}
		return render(c, summary.Totals)
	}
	return render(c, summary)
}

func parseLocation(name string) (*time.Location, error) {
	loc, err := (&config.DumpSection{Location: name}).TimeLocation()
	if err != nil {
		return nil, fmt.Errorf("location %q: %w", name, err)
	}
	return loc, nil
}
