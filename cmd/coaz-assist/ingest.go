// Copyright COAZ Digital, 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coazdigital/coaz-assist/internal/content"
	"github.com/coazdigital/coaz-assist/internal/ingest"
	"github.com/coazdigital/coaz-assist/pkg/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Inspect and sync the document sources",
	Long: `Ingest reads the constitution text and the website crawl cache,
reports what would be indexed, and optionally syncs the crawl cache into
the content database so the server can serve from it.`,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := appConfig()
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(cfg.Ingest.ConstitutionPath)
	if err != nil {
		return fmt.Errorf("reading constitution %s: %w", cfg.Ingest.ConstitutionPath, err)
	}
	sections := ingest.Sections(string(raw))
	fmt.Printf("constitution: %d section(s) from %s\n", len(sections), cfg.Ingest.ConstitutionPath)

	var pages []types.Page
	if cfg.Ingest.PagesPath != "" {
		pages, err = ingest.LoadPagesFile(cfg.Ingest.PagesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else {
			fmt.Printf("pages: %d page(s) from %s\n", len(pages), cfg.Ingest.PagesPath)
		}
	}

	docs := ingest.Documents(string(raw), pages)
	fmt.Printf("total: %d indexable document(s)\n", len(docs))

	verbose, _ := cmd.Flags().GetBool("list")
	if verbose {
		for _, d := range docs {
			title := d.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Printf("  %-12s  %-40s  %d chars\n", d.Source, title, len(d.Text))
		}
	}

	sync, _ := cmd.Flags().GetBool("sync-store")
	if !sync {
		return nil
	}

	store, err := content.Open(cfg.Content)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, p := range pages {
		if err := store.UpsertPage(cmd.Context(), p); err != nil {
			return err
		}
	}
	fmt.Printf("synced %d page(s) into %s\n", len(pages), cfg.Content.DBPath)
	return nil
}

func init() {
	ingestCmd.Flags().Bool("list", false, "list every document that would be indexed")
	ingestCmd.Flags().Bool("sync-store", false, "write the crawl cache into the content database")

	rootCmd.AddCommand(ingestCmd)
}
