// Command metricsdump periodically writes in-process counters and gauges
// to a text file and inspects the files it wrote.
package main

import (
	"fmt"
	"os"

	"github.com/yndnr/metricsdump/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
