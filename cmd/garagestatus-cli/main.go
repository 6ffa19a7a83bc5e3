package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"garagewatch-backend/lib/configutil"
	"garagewatch-backend/lib/scrapers/sjsuparking"
	"garagewatch-backend/services/garagestatus"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type Config struct {
	Supabase garagestatus.SupabaseConfig `json:"supabase"`
}

func loadConfig() Config {
	config, err := configutil.ReadRecursively[Config]("garagestatus.json5")
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if config.Supabase.Url == "" {
		config.Supabase.Url = os.Getenv("SUPABASE_URL")
	}
	if config.Supabase.Key == "" {
		config.Supabase.Key = os.Getenv("SUPABASE_KEY")
	}
	return config
}

var noPrint bool

var rootCmd = &cobra.Command{
	Use:   "garagestatus-cli",
	Short: "Scrapes the SJSU garage status page and stores readings in Supabase.",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(run(cmd.Context()))
	},
}

func run(ctx context.Context) int {
	config := loadConfig()

	var sink garagestatus.Sink
	supabase, err := garagestatus.NewSupabaseSink(config.Supabase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s; skipping Supabase insert.\n", err)
	} else {
		sink = supabase
	}

	service := garagestatus.Service{
		Client: sjsuparking.NewClient(),
		Url:    sjsuparking.SourceUrl,
		Sink:   sink,
	}
	result, err := service.Run(ctx)
	if err != nil {
		if errors.Is(err, garagestatus.ErrSinkWrite) {
			// the page itself was scraped fine, report the insert
			// failure and keep going
			fmt.Fprintf(os.Stderr, "Error inserting into Supabase: %s\n", err)
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
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
