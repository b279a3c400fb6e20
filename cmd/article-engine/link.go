// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-engine/internal/ai"
	"github.com/pdiddy/article-engine/internal/docx"
	"github.com/pdiddy/article-engine/internal/httputil"
	"github.com/pdiddy/article-engine/internal/linker"
	"github.com/pdiddy/article-engine/internal/sitemap"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Annotate an article with internal links and render a .docx",
	Long: `Link fetches the site's XML sitemap, asks the LLM to weave the most
relevant internal links into the article, and renders the result as a
Word document with real hyperlinks.`,
	RunE: runLink,
}

func init() {
	linkCmd.Flags().String("article", "", "path to the article markdown file")
	linkCmd.Flags().String("client", "", "use a stored client profile's sitemap URL")
	linkCmd.Flags().String("sitemap", "", "sitemap URL (overrides the client profile)")
	linkCmd.Flags().Int("count", 5, "number of internal links to add")
	linkCmd.Flags().StringSlice("priority", nil, "URLs to prioritize (comma-separated)")
	linkCmd.Flags().String("out", "", "output .docx path (default: <article>-linked.docx)")
	linkCmd.Flags().String("data-dir", defaultDataDir, "directory containing the client database")
	addAIFlags(linkCmd)

	rootCmd.AddCommand(linkCmd)
}

func runLink(cmd *cobra.Command, args []string) error {
	articlePath, _ := cmd.Flags().GetString("article")
	if articlePath == "" {
		return fmt.Errorf("provide --article")
	}
	article, err := readTextFile(articlePath)
	if err != nil {
		return err
	}

	sitemapURL, _ := cmd.Flags().GetString("sitemap")
	if sitemapURL == "" {
		clientName, _ := cmd.Flags().GetString("client")
		if clientName == "" {
			return fmt.Errorf("provide --sitemap or --client")
		}
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		profile, err := store.Get(clientName)
		store.Close()
		if err != nil {
			return err
		}
		if profile.SitemapURL == "" {
			return fmt.Errorf("client %q has no sitemap URL", clientName)
		}
		sitemapURL = profile.SitemapURL
	}

	httpCfg := httpConfig()
	fmt.Fprintf(os.Stdout, "Fetching sitemap %s\n", sitemapURL)
	pages, err := sitemap.Fetch(cmd.Context(), httputil.NewClient(httpCfg), sitemapURL, httpCfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Found %d pages\n", len(pages))

	aiCfg, err := aiConfigFromFlags(cmd)
	if err != nil {
		return err
	}
	backend, err := ai.New(aiCfg)
	if err != nil {
		return err
	}

	count, _ := cmd.Flags().GetInt("count")
	priority, _ := cmd.Flags().GetStringSlice("priority")

	paras, err := linker.Annotate(cmd.Context(), backend, article, pages, count, priority, os.Stdout)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		outPath = outputPath(articlePath, "-linked", ".docx")
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()

	if err := docx.Write(f, paras); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Wrote %s\n", outPath)
	return nil
}
