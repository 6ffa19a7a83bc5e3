package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"garagewatch-backend/lib/scrapers/sjsuparking"
	"garagewatch-backend/lib/sqlutil"
	"garagewatch-backend/services/garagestatus"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	noPrint bool
	dbPath  string
)

var rootCmd = &cobra.Command{
	Use:   "garagestatus-local",
	Short: "Scrapes the SJSU garage status page and stores readings in a local sqlite database.",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(run(cmd.Context()))
	},
}

// the default database sits next to the binary, so repeated cron
// invocations from any working directory append to the same file
func defaultDbPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "garagestatus.db"
	}
	return filepath.Join(filepath.Dir(exe), "garagestatus.db")
}

func run(ctx context.Context) int {
	var sink garagestatus.Sink
	sqlite, err := garagestatus.NewSqliteSink(sqlutil.Config{File: dbPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s; skipping insert.\n", err)
	} else {
		sink = sqlite
	}

	service := garagestatus.Service{
		Client: sjsuparking.NewClient(),
		Url:    sjsuparking.SourceUrl,
		Sink:   sink,
	}
	result, err := service.Run(ctx)
	if err != nil {
		if errors.Is(err, garagestatus.ErrSinkWrite) {
			fmt.Fprintf(os.Stderr, "Error inserting into %s: %s\n", dbPath, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error fetching parking status: %s\n", err)
			return 1
		}
	}

	if !noPrint {
		printStatuses(result.Statuses)
	}
	if result.Inserted == 0 {
		fmt.Fprintln(os.Stderr, "No statuses parsed; nothing stored.")
	}
	return 0
}

func printStatuses(statuses map[string]int) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Garage", "Status"})
	for _, garage := range sjsuparking.Garages {
		status, ok := statuses[garage]
		if !ok {
			continue
		}
		t.AppendRow(table.Row{garage, fmt.Sprintf("%d%%", status)})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func main() {
	rootCmd.Flags().BoolVar(
		&noPrint, "no-print", false,
		"do not print statuses; only store them",
	)
	rootCmd.Flags().StringVar(
		&dbPath, "db", defaultDbPath(),
		"path to the sqlite database file",
	)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
