package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-blockhtml/pkg/block"
	"github.com/goliatone/go-blockhtml/pkg/config"
	"github.com/goliatone/go-blockhtml/pkg/engine"
)

type violation struct {
	file     string
	location string
	message  string
	warning  bool
}

var checkCmd = &cobra.Command{
	Use:   "check <document.json>...",
	Short: "Check documents against a theme without writing output",
	Long: `Check reports block types the theme has no template for, and inline markup
the normalizer cannot handle. Missing templates are errors; malformed markup is
reported as a warning.

Examples:
  blockhtml check posts/*.json --config ./theme`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&flagConfigDir, "config", "", "Theme directory with JSON/YAML/TOML files (default: embedded theme)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	e, err := engine.New(engine.WithConfig(cfg))
	if err != nil {
		return err
	}

	var violations []violation
	for _, path := range args {
		doc, err := readDocument(cmd.InOrStdin(), path)
		if err != nil {
			return fmt.Errorf("check %s: %w", path, err)
		}
		found, err := checkDocument(cmd.Context(), e, cfg, path, doc)
		if err != nil {
			return fmt.Errorf("check %s: %w", path, err)
		}
		violations = append(violations, found...)
	}

	errorsFound := printViolations(cmd.ErrOrStderr(), violations)
	if errorsFound > 0 {
		return fmt.Errorf("%d problems found", errorsFound)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), okStyle.Render("ok"), metaStyle.Render(fmt.Sprintf("%d documents", len(args))))
	return nil
}

func checkDocument(ctx context.Context, e *engine.Engine, cfg config.Config, path string, doc block.Document) ([]violation, error) {
	var result []violation
	for idx, blk := range doc.Blocks {
		if !cfg.Templates.Has(blk.Type) {
			result = append(result, violation{
				file:     path,
				location: fmt.Sprintf("blocks[%d]", idx),
				message:  fmt.Sprintf("no template for block type %q", blk.Type),
			})
		}
	}
	if len(result) > 0 {
		return result, nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	res, err := e.Render(ctx, doc)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		result = append(result, violation{
			file:     path,
			location: fmt.Sprintf("blocks[%d]", w.BlockIndex),
			message:  w.Content.Error(),
			warning:  true,
		})
	}
	return result, nil
}

func printViolations(w io.Writer, violations []violation) int {
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})

	errorsFound := 0
	for _, v := range violations {
		label := warnStyle.Render("warning:")
		if !v.warning {
			label = errorStyle.Render("error:")
			errorsFound++
		}
		fmt.Fprintf(w, "%s %s: %s -> %s\n", label, v.file, v.location, v.message)
	}
	return errorsFound
}
