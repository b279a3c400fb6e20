// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-engine/internal/render"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Convert a finished article to HTML",
	RunE: func(cmd *cobra.Command, args []string) error {
		articlePath, _ := cmd.Flags().GetString("article")
		if articlePath == "" {
			return fmt.Errorf("provide --article")
		}
		article, err := os.ReadFile(articlePath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", articlePath, err)
		}

		html, err := render.HTML(article)
		if err != nil {
			return err
		}

		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			outPath = outputPath(articlePath, "", ".html")
		}
		if err := os.WriteFile(outPath, html, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		fmt.Fprintf(os.Stdout, "Wrote %s\n", outPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("article", "", "path to the article markdown file")
	exportCmd.Flags().String("out", "", "output HTML path (default: <article>.html)")

	rootCmd.AddCommand(exportCmd)
}
