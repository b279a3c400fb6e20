// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-engine/internal/ai"
	"github.com/pdiddy/article-engine/internal/analyze"
	"github.com/pdiddy/article-engine/internal/secrets"
	"github.com/pdiddy/article-engine/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Generate content refresh recommendations from competitor research",
	Long: `Analyze compares an existing article against the top-ranking pages for a
keyword. It scrapes competitor heading structures, identifies gaps, filters
them for audience relevance, and emits refresh recommendations in the same
brief grammar that the write command accepts.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("article", "", "path to the article markdown file")
	analyzeCmd.Flags().String("keyword", "", "primary keyword to analyze against")
	analyzeCmd.Flags().String("client", "", "use a stored client profile's audience brief")
	analyzeCmd.Flags().String("audience", "", "path to the target audience brief file")
	analyzeCmd.Flags().String("out", "", "recommendations output path (default: <article>-refresh.md)")
	analyzeCmd.Flags().Int("competitors", 0, "number of competitor pages to analyze (default 5)")
	analyzeCmd.Flags().String("search-api-key", "", "web search API key (default: .secrets/serpapi-api-key)")
	analyzeCmd.Flags().String("scrape-api-key", "", "page scrape API key (default: .secrets/firecrawl-api-key)")
	analyzeCmd.Flags().String("data-dir", defaultDataDir, "directory containing the client database")
	addAIFlags(analyzeCmd)

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	articlePath, _ := cmd.Flags().GetString("article")
	keyword, _ := cmd.Flags().GetString("keyword")
	if articlePath == "" || keyword == "" {
		return fmt.Errorf("provide --article and --keyword")
	}
	article, err := readTextFile(articlePath)
	if err != nil {
		return err
	}

	audienceBrief, err := resolveAudience(cmd)
	if err != nil {
		return err
	}

	searchKeyFlag, _ := cmd.Flags().GetString("search-api-key")
	searchKey, err := secrets.Require(loadedSecrets, "serpapi-api-key", searchKeyFlag)
	if err != nil {
		return err
	}
	scrapeKeyFlag, _ := cmd.Flags().GetString("scrape-api-key")
	scrapeKey, err := secrets.Require(loadedSecrets, "firecrawl-api-key", scrapeKeyFlag)
	if err != nil {
		return err
	}

	aiCfg, err := aiConfigFromFlags(cmd)
	if err != nil {
		return err
	}
	backend, err := ai.New(aiCfg)
	if err != nil {
		return err
	}

	httpCfg := httpConfig()
	searcher, err := analyze.NewSerpSearcher(searchKey, httpCfg)
	if err != nil {
		return err
	}
	scraper, err := analyze.NewFirecrawlScraper(scrapeKey, httpCfg)
	if err != nil {
		return err
	}

	maxCompetitors, _ := cmd.Flags().GetInt("competitors")
	cfg := types.AnalyzeConfig{
		AIConfig:       aiCfg,
		HTTPConfig:     httpCfg,
		SearchAPIKey:   searchKey,
		ScrapeAPIKey:   scrapeKey,
		MaxCompetitors: maxCompetitors,
	}

	result, err := analyze.Analyze(cmd.Context(), backend, searcher, scraper,
		article, keyword, audienceBrief, cfg, os.Stdout)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		outPath = outputPath(articlePath, "-refresh", ".md")
	}
	if err := os.WriteFile(outPath, []byte(result.Recommendations+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing recommendations: %w", err)
	}

	reportPath := outputPath(outPath, "-report", ".yaml")
	reportYAML, err := result.Report.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(reportPath, reportYAML, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Wrote %s (report: %s)\n", outPath, reportPath)
	return nil
}

func resolveAudience(cmd *cobra.Command) (string, error) {
	if audiencePath, _ := cmd.Flags().GetString("audience"); audiencePath != "" {
		return readTextFile(audiencePath)
	}

	clientName, _ := cmd.Flags().GetString("client")
	if clientName == "" {
		return "", fmt.Errorf("provide --audience or --client")
	}
	store, err := openStore(cmd)
	if err != nil {
		return "", err
	}
	defer store.Close()

	profile, err := store.Get(clientName)
	if err != nil {
		return "", err
	}
	return profile.AudienceBrief, nil
}
