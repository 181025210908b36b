package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-blockhtml/pkg/block"
	"github.com/goliatone/go-blockhtml/pkg/config"
	"github.com/goliatone/go-blockhtml/pkg/engine"
	"github.com/goliatone/go-blockhtml/pkg/page"
	"github.com/goliatone/go-blockhtml/pkg/processor"
)

var (
	flagConfigDir  string
	flagOutput     string
	flagPage       bool
	flagSanitize   bool
	flagCache      bool
	flagVerbatim   bool
	flagPermalinks []string
)

var renderCmd = &cobra.Command{
	Use:   "render <document.json|->",
	Short: "Render a block document to inline-styled HTML",
	Long: `Render reads an Editor.js payload (the {"blocks": [...]} envelope or a bare
block array) and writes the rendered HTML. Footnotes are printed after the body
unless --page wraps both into an article fragment.

Examples:
  blockhtml render post.json
  blockhtml render post.json --config ./theme --page --output post.html
  cat post.json | blockhtml render - --sanitize`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&flagConfigDir, "config", "", "Theme directory with JSON/YAML/TOML files (default: embedded theme)")
	renderCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default: stdout)")
	renderCmd.Flags().BoolVar(&flagPage, "page", false, "Compose body and reference list into one article")
	renderCmd.Flags().BoolVar(&flagSanitize, "sanitize", false, "Strip markup outside the inline vocabulary")
	renderCmd.Flags().BoolVar(&flagCache, "cache", true, "Reuse rendered fragments of identical blocks")
	renderCmd.Flags().BoolVar(&flagVerbatim, "verbatim-references", false, "Record hrefs verbatim in footnotes")
	renderCmd.Flags().StringSliceVar(&flagPermalinks, "permalink", nil, "Extra internal permalink prefix (repeatable)")
}

func runRender(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}
	e, err := buildEngine()
	if err != nil {
		return err
	}

	res, err := e.Render(context.Background(), doc)
	if err != nil {
		return err
	}
	reportWarnings(cmd.ErrOrStderr(), args[0], res)

	var out string
	if flagPage {
		out, err = page.Compose(res)
		if err != nil {
			return err
		}
	} else {
		out = res.HTML + "\n"
		for _, entry := range res.Footnotes.Entries() {
			out += entry + "\n"
		}
	}

	if flagOutput == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	}
	if err := os.WriteFile(flagOutput, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), okStyle.Render("wrote"), flagOutput,
		metaStyle.Render(fmt.Sprintf("(%d blocks, %d footnotes)", res.Stats.Blocks, res.Footnotes.Len())))
	return nil
}

func loadConfig() (config.Config, error) {
	if strings.TrimSpace(flagConfigDir) == "" {
		return config.Default()
	}
	return config.LoadFS(os.DirFS(flagConfigDir))
}

func buildEngine() (*engine.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	var procOpts []processor.Option
	if flagSanitize {
		procOpts = append(procOpts, processor.WithSanitizer(nil))
	}
	opts := []engine.Option{
		engine.WithConfig(cfg),
		engine.WithProcessors(processor.NewDefaultRegistry(procOpts...)),
		engine.WithCache(flagCache),
		engine.WithPermalinkPrefixes(flagPermalinks...),
	}
	if flagVerbatim {
		opts = append(opts, engine.WithVerbatimReferences())
	}
	return engine.New(opts...)
}

func readDocument(stdin io.Reader, path string) (block.Document, error) {
	if path == "-" {
		return block.ReadDocument(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return block.Document{}, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return block.ReadDocument(f)
}

func reportWarnings(w io.Writer, source string, res engine.Result) {
	for _, warning := range res.Warnings {
		fmt.Fprintln(w, warnStyle.Render("warning:"), metaStyle.Render(source), warning.Error())
	}
}
