package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/spf13/cobra"
)

var traceKeys = []string{
	"blockhtml.config",
	"blockhtml.engine",
	"blockhtml.inline",
	"blockhtml.processor",
}

var (
	flagTrace string

	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

var rootCmd = &cobra.Command{
	Use:   "blockhtml",
	Short: "blockhtml converts block documents into inline-styled HTML",
	Long: `blockhtml renders Editor.js style block documents into HTML whose styling
lives entirely in inline style attributes. External links become numbered
footnotes collected in a reference list.

Usage:
  blockhtml render <document.json> [flags]
  blockhtml check <document.json>... [flags]`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupTracing(flagTrace)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagTrace, "trace", "Error", "Trace level [Debug|Info|Error]")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		os.Exit(1)
	}
}

func setupTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{"tracing.adapter": "go"}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("configure tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}
