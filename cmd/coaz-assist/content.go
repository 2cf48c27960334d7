// Copyright COAZ Digital, 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coazdigital/coaz-assist/internal/content"
	"github.com/coazdigital/coaz-assist/pkg/types"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Manage site content items",
	Long: `Content manages the items served through the content API: list them,
add new ones, or remove them, directly against the local database.`,
}

var contentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List content items",
	RunE:  runContentList,
}

func runContentList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	section, _ := cmd.Flags().GetString("section")
	items, err := store.List(cmd.Context(), section)
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Println("No content items.")
		return nil
	}

	fmt.Printf("%-5s  %-24s  %-30s  %-12s  %s\n", "ID", "Slug", "Title", "Section", "Updated")
	fmt.Println(strings.Repeat("-", 95))
	for _, item := range items {
		title := item.Title
		if len(title) > 30 {
			title = title[:27] + "..."
		}
		fmt.Printf("%-5d  %-24s  %-30s  %-12s  %s\n",
			item.ID, item.Slug, title, item.Section, item.UpdatedAt)
	}
	return nil
}

var contentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a content item",
	RunE:  runContentAdd,
}

func runContentAdd(cmd *cobra.Command, args []string) error {
	slug, _ := cmd.Flags().GetString("slug")
	title, _ := cmd.Flags().GetString("title")
	body, _ := cmd.Flags().GetString("body")
	section, _ := cmd.Flags().GetString("section")

	if slug == "" || title == "" || body == "" {
		return fmt.Errorf("--slug, --title, and --body are required")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	created, err := store.Create(cmd.Context(), types.ContentItem{
		Slug:    slug,
		Title:   title,
		Body:    body,
		Section: section,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created %d (%s)\n", created.ID, created.Slug)
	return nil
}

var contentRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Remove a content item",
	Args:  cobra.ExactArgs(1),
	RunE:  runContentRm,
}

func runContentRm(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("removed %d\n", id)
	return nil
}

func openStore() (*content.Store, error) {
	cfg, err := appConfig()
	if err != nil {
		return nil, err
	}
	return content.Open(cfg.Content)
}

func init() {
	contentListCmd.Flags().String("section", "", "filter by section")
	contentListCmd.Flags().Bool("json", false, "output items as JSON")

	contentAddCmd.Flags().String("slug", "", "unique slug for the item")
	contentAddCmd.Flags().String("title", "", "item title")
	contentAddCmd.Flags().String("body", "", "item body text")
	contentAddCmd.Flags().String("section", "", "section the item belongs to")

	contentCmd.AddCommand(contentListCmd)
	contentCmd.AddCommand(contentAddCmd)
	contentCmd.AddCommand(contentRmCmd)

	rootCmd.AddCommand(contentCmd)
}
