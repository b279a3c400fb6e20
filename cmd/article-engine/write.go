// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-engine/internal/ai"
	"github.com/pdiddy/article-engine/internal/writer"
	"github.com/pdiddy/article-engine/pkg/types"
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Generate articles from content briefs",
	Long: `Write parses each brief into per-section specifications, generates every
section with an LLM call, assembles the draft, and runs it through an
automated review-and-revise loop. The article and its run log are written
next to the brief unless --out/--log name explicit paths (single brief only).

Multiple --brief flags form a batch: articles are generated strictly one at
a time, and a failed brief does not stop the rest of the batch.`,
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().StringArray("brief", nil, "path to an article brief (repeatable)")
	writeCmd.Flags().String("client", "", "use a stored client profile for company/audience/guidelines")
	writeCmd.Flags().String("company", "", "path to the company brief file")
	writeCmd.Flags().String("audience", "", "path to the target audience brief file")
	writeCmd.Flags().String("guidelines", "", "path to the writing guidelines file")
	writeCmd.Flags().String("out", "", "article output path (single --brief only)")
	writeCmd.Flags().String("log", "", "run log output path (single --brief only)")
	writeCmd.Flags().Int("max-cycles", 0, "maximum review-and-revise cycles (default 2)")
	writeCmd.Flags().Duration("delay", 0, "pause between section generation calls (default 1s)")
	writeCmd.Flags().String("data-dir", defaultDataDir, "directory containing the client database")
	addAIFlags(writeCmd)

	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	briefPaths, _ := cmd.Flags().GetStringArray("brief")
	if len(briefPaths) == 0 {
		return fmt.Errorf("provide at least one --brief")
	}

	outPath, _ := cmd.Flags().GetString("out")
	logPath, _ := cmd.Flags().GetString("log")
	if len(briefPaths) > 1 && (outPath != "" || logPath != "") {
		return fmt.Errorf("--out and --log apply to a single --brief only")
	}

	aiCfg, err := aiConfigFromFlags(cmd)
	if err != nil {
		return err
	}
	backend, err := ai.New(aiCfg)
	if err != nil {
		return err
	}

	maxCycles, _ := cmd.Flags().GetInt("max-cycles")
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = time.Second
	}
	cfg := types.WriterConfig{
		AIConfig:        aiCfg,
		MaxReviewCycles: maxCycles,
		RequestDelay:    delay,
	}

	var failed int
	for _, briefPath := range briefPaths {
		if err := writeOne(cmd, backend, cfg, briefPath, outPath, logPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed %s: %v\n", briefPath, err)
			failed++
		}
	}

	fmt.Fprintf(os.Stdout, "Generated %d article(s), %d failed\n", len(briefPaths)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d article(s) failed generation", failed)
	}
	return nil
}

func writeOne(cmd *cobra.Command, backend ai.Completer, cfg types.WriterConfig, briefPath, outPath, logPath string) error {
	articleBrief, err := readTextFile(briefPath)
	if err != nil {
		return err
	}
	briefs, err := resolveBriefs(cmd, articleBrief)
	if err != nil {
		return err
	}

	result, err := writer.WriteArticle(cmd.Context(), backend, briefs, cfg, os.Stdout)
	if err != nil {
		return err
	}

	if outPath == "" {
		outPath = outputPath(briefPath, "-article", ".md")
	}
	if logPath == "" {
		logPath = outputPath(briefPath, "-log", ".txt")
	}

	if err := os.WriteFile(outPath, []byte(result.Article), 0o644); err != nil {
		return fmt.Errorf("writing article: %w", err)
	}
	if err := os.WriteFile(logPath, []byte(result.Log), 0o644); err != nil {
		return fmt.Errorf("writing run log: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Wrote %s (log: %s)\n", outPath, logPath)
	return nil
}
