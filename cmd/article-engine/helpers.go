// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/article-engine/internal/clientstore"
	"github.com/pdiddy/article-engine/internal/secrets"
	"github.com/pdiddy/article-engine/pkg/types"
)

const (
	defaultModel     = "claude-sonnet-4-20250514"
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "article-engine/0.1"
	defaultDataDir   = "data"
)

// addAIFlags registers the model-selection flags shared by every
// subcommand that calls an LLM.
func addAIFlags(cmd *cobra.Command) {
	cmd.Flags().String("provider", "", "AI provider: claude or openai (default claude)")
	cmd.Flags().String("model", "", "AI model identifier")
	cmd.Flags().String("api-key", "", "AI API key (default: .secrets/<provider>-api-key)")
	cmd.Flags().Int("max-retries", 0, "retry attempts for failed AI calls (default 3)")
}

// aiConfigFromFlags resolves the AI configuration from flags, viper config,
// and loaded secrets, in that precedence order.
func aiConfigFromFlags(cmd *cobra.Command) (types.AIConfig, error) {
	provider, _ := cmd.Flags().GetString("provider")
	if provider == "" {
		provider = viper.GetString("ai.provider")
	}
	if provider == "" {
		provider = string(types.ProviderClaude)
	}

	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("ai.model")
	}
	if model == "" {
		model = defaultModel
	}

	secretName := "anthropic-api-key"
	if types.AIProvider(provider) == types.ProviderOpenAI {
		secretName = "openai-api-key"
	}
	apiKeyFlag, _ := cmd.Flags().GetString("api-key")
	apiKey, err := secrets.Require(loadedSecrets, secretName, apiKeyFlag)
	if err != nil {
		return types.AIConfig{}, err
	}

	maxRetries, _ := cmd.Flags().GetInt("max-retries")

	return types.AIConfig{
		Provider:   types.AIProvider(provider),
		Model:      model,
		APIKey:     apiKey,
		MaxRetries: maxRetries,
	}, nil
}

// httpConfig returns the shared HTTP settings for stages that fetch pages.
func httpConfig() types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:   defaultTimeout,
		UserAgent: defaultUserAgent,
	}
}

// openStore opens the client profile database under --data-dir.
func openStore(cmd *cobra.Command) (*clientstore.Store, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	return clientstore.NewStore(types.StoreConfig{DataDir: dataDir})
}

// readTextFile reads a whole brief or article file as a string.
func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// resolveBriefs builds the shared briefs either from a stored client
// profile (--client) or from per-run files (--company, --audience,
// --guidelines). The article brief itself is always per-run.
func resolveBriefs(cmd *cobra.Command, articleBrief string) (types.Briefs, error) {
	clientName, _ := cmd.Flags().GetString("client")
	if clientName != "" {
		store, err := openStore(cmd)
		if err != nil {
			return types.Briefs{}, err
		}
		defer store.Close()

		profile, err := store.Get(clientName)
		if err != nil {
			return types.Briefs{}, err
		}
		return profile.Briefs(articleBrief), nil
	}

	companyPath, _ := cmd.Flags().GetString("company")
	audiencePath, _ := cmd.Flags().GetString("audience")
	if companyPath == "" || audiencePath == "" {
		return types.Briefs{}, fmt.Errorf("provide --client, or both --company and --audience")
	}

	company, err := readTextFile(companyPath)
	if err != nil {
		return types.Briefs{}, err
	}
	audience, err := readTextFile(audiencePath)
	if err != nil {
		return types.Briefs{}, err
	}

	var guidelines string
	if guidelinesPath, _ := cmd.Flags().GetString("guidelines"); guidelinesPath != "" {
		guidelines, err = readTextFile(guidelinesPath)
		if err != nil {
			return types.Briefs{}, err
		}
	}

	return types.Briefs{
		ArticleBrief:  articleBrief,
		CompanyBrief:  company,
		AudienceBrief: audience,
		Guidelines:    guidelines,
	}, nil
}

// outputPath derives an output filename from an input file when --out is
// not given: the input's base name with suffix appended and the extension
// replaced.
func outputPath(inputPath, suffix, ext string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(filepath.Dir(inputPath), base+suffix+ext)
}
