package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/daabcontech/navisexport/internal/app/exporter"
	"github.com/daabcontech/navisexport/internal/config"
)

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func main() {
	var output string
	var csvName string
	var configPath string
	var streamTrace bool

	flag.StringVar(&output, "output", "", "Directory for the CSV table and trace log (default from config)")
	flag.StringVar(&csvName, "csv-name", "", "File name for the CSV table (default from config)")
	flag.StringVar(&configPath, "config", "", "Path to a navisexport.yaml config file")
	flag.BoolVar(&streamTrace, "stream-trace", false, "Echo trace lines to stdout while processing")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fail(err)
	}
	if output != "" {
		cfg.OutputDir = output
	}
	if csvName != "" {
		cfg.CSVName = csvName
	}
	if streamTrace {
		cfg.StreamTrace = true
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}

	input := flag.Arg(0)
	if input == "" {
		input, err = promptForInputPath()
		if err != nil {
			fail(err)
		}
	}
	if info, err := os.Stat(input); err != nil || info.IsDir() {
		fail(fmt.Errorf("xml file not found: %s", input))
	}

	exp := exporter.Exporter{
		InputPath:   input,
		OutputDir:   cfg.OutputDir,
		CSVName:     cfg.CSVName,
		StreamTrace: cfg.StreamTrace,
	}
	stats, err := exp.Run()
	if err != nil {
		fail(err)
	}

	fmt.Println(doneStyle.Render(fmt.Sprintf("exported %d views into %d rows (%d duplicates skipped)",
		stats.Views, stats.Rows, stats.Duplicates)))
	fmt.Printf("table: %s\ntrace: %s\n", stats.TablePath, stats.TracePath)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, errStyle.Render(fmt.Sprintf("export failed: %v", err)))
	os.Exit(1)
}
