package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/screenplaykit/screenplay/internal/config"
	"github.com/screenplaykit/screenplay/internal/model"
	"github.com/screenplaykit/screenplay/internal/svcctx"
)

var parseDebugCmd = &cobra.Command{
	Use:   "parse-debug <in.pdf> <out.txt>",
	Short: "Dump raw spans, groups, and classification decisions for one PDF",
	Args:  cobra.ExactArgs(2),
	RunE:  runParseDebug,
}

func runParseDebug(cmd *cobra.Command, args []string) error {
	inPath, outPath := args[0], args[1]

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfgMgr, err := config.NewManager(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := cfgMgr.Get()

	ctx := svcctx.WithServices(cmd.Context(), &svcctx.Services{Logger: logger, Config: cfg})

	script, err := classifyFile(ctx, inPath, cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	writeDebugDump(f, script)
	return nil
}

func writeDebugDump(f *os.File, script *model.Script) {
	fmt.Fprintf(f, "language: %s\n", script.Language)
	fmt.Fprintf(f, "total_pages: %d\n", script.TotalPages)
	fmt.Fprintf(f, "synthetic_opening: %v\n\n", script.Metadata.SyntheticOpening)

	for _, page := range script.Pages {
		fmt.Fprintf(f, "=== page %d (%gx%g) ===\n", page.PageNumber, page.PageWidth, page.PageHeight)
		for gi, group := range page.Groups {
			fmt.Fprintf(f, "  group %d:\n", gi)
			for _, el := range group.Elements {
				kind := el.Type
				if kind == model.KindUnset {
					kind = "unclassified"
				}
				fmt.Fprintf(f, "    [%-13s] x=%-6.1f y=%-6.1f centered=%-5v %q\n",
					kind, el.X, el.Y, el.Centered, el.Text)
			}
		}
	}

	fmt.Fprintln(f, "\n--- element counts ---")
	for kind, count := range script.Metadata.ElementCountByKind {
		fmt.Fprintf(f, "%s: %d\n", kind, count)
	}
}
