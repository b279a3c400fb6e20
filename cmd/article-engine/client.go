// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/article-engine/pkg/types"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage stored client profiles",
	Long: `Client profiles hold the company brief, audience brief, writing
guidelines, and sitemap URL for a client so that write, link, and analyze
runs can reference them by name instead of passing files every time.`,
}

var clientCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create or update a client profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		companyPath, _ := cmd.Flags().GetString("company")
		audiencePath, _ := cmd.Flags().GetString("audience")
		if companyPath == "" || audiencePath == "" {
			return fmt.Errorf("provide --company and --audience")
		}

		company, err := readTextFile(companyPath)
		if err != nil {
			return err
		}
		audience, err := readTextFile(audiencePath)
		if err != nil {
			return err
		}
		var guidelines string
		if guidelinesPath, _ := cmd.Flags().GetString("guidelines"); guidelinesPath != "" {
			guidelines, err = readTextFile(guidelinesPath)
			if err != nil {
				return err
			}
		}
		sitemapURL, _ := cmd.Flags().GetString("sitemap")

		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		profile := types.ClientProfile{
			Name:          args[0],
			CompanyBrief:  company,
			AudienceBrief: audience,
			Guidelines:    guidelines,
			SitemapURL:    sitemapURL,
		}
		if err := store.Put(profile); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Stored client %q\n", args[0])
		return nil
	},
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored client profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		profiles, err := store.List()
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Fprintln(os.Stdout, "No clients stored")
			return nil
		}
		for _, p := range profiles {
			sitemap := p.SitemapURL
			if sitemap == "" {
				sitemap = "(no sitemap)"
			}
			fmt.Fprintf(os.Stdout, "%s\t%s\n", p.Name, sitemap)
		}
		return nil
	},
}

var clientShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a client profile as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		profile, err := store.Get(args[0])
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(profile)
		if err != nil {
			return fmt.Errorf("marshaling profile: %w", err)
		}
		os.Stdout.Write(out)
		return nil
	},
}

var clientDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a client profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Deleted client %q\n", args[0])
		return nil
	},
}

func init() {
	clientCmd.PersistentFlags().String("data-dir", defaultDataDir, "directory containing the client database")

	clientCreateCmd.Flags().String("company", "", "path to the company brief file")
	clientCreateCmd.Flags().String("audience", "", "path to the target audience brief file")
	clientCreateCmd.Flags().String("guidelines", "", "path to the writing guidelines file")
	clientCreateCmd.Flags().String("sitemap", "", "sitemap URL for internal linking")

	clientCmd.AddCommand(clientCreateCmd, clientListCmd, clientShowCmd, clientDeleteCmd)
	rootCmd.AddCommand(clientCmd)
}
