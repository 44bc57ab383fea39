package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/screenplaykit/screenplay/internal/assemble"
	"github.com/screenplaykit/screenplay/internal/classify"
	"github.com/screenplaykit/screenplay/internal/config"
	"github.com/screenplaykit/screenplay/internal/langdetect"
	"github.com/screenplaykit/screenplay/internal/model"
	"github.com/screenplaykit/screenplay/internal/output"
	"github.com/screenplaykit/screenplay/internal/pdfextract"
	"github.com/screenplaykit/screenplay/internal/svcctx"
)

var parsePDFCmd = &cobra.Command{
	Use:   "parse-pdf <in.pdf> <out>",
	Short: "Classify a screenplay PDF and write the resulting script",
	Args:  cobra.ExactArgs(2),
	RunE:  runParsePDF,
}

func runParsePDF(cmd *cobra.Command, args []string) error {
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

	format := output.GetFormat()
	if format == output.FormatText {
		return output.WriteTo(f, format, script.FullText)
	}
	return output.WriteTo(f, format, script)
}

// classifyFile runs the full pipeline: PDF extraction, language
// detection, classification, and assembly.
func classifyFile(ctx context.Context, path string, cfg *config.Config) (*model.Script, error) {
	worker := pdfextract.NewWorker(3, 500*time.Millisecond)
	limits := pdfextract.Limits{MinSizeBytes: cfg.PDF.MinSizeBytes, MaxSizeBytes: cfg.PDF.MaxSizeBytes}

	pages, err := worker.Extract(ctx, path, limits, cfg.PDF.DefaultWidth, cfg.PDF.DefaultHeight)
	if err != nil {
		return nil, err
	}

	language := "unknown"
	if cfg.LangDetect.Enabled {
		detector := langdetect.New(cfg.LangDetect.Languages)
		language = detector.Detect(sampleText(pages))
	}

	input := model.ScriptInput{Pages: pages, Language: language, TotalPages: len(pages)}

	encoded, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encode script input: %w", err)
	}
	if err := model.ValidateScriptInputJSON(encoded); err != nil {
		return nil, err
	}

	result, err := classify.Classify(ctx, input, cfg)
	if err != nil {
		return nil, err
	}

	return assemble.Assemble(result.Pages, input.Language, input.TotalPages), nil
}

func sampleText(pages []model.PageInput) string {
	var b strings.Builder
	for _, page := range pages {
		for _, span := range page.TextItems {
			b.WriteString(span.Text)
			b.WriteString(" ")
		}
	}
	return b.String()
}
