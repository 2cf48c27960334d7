// Copyright COAZ Digital, 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/coazdigital/coaz-assist/internal/answer"
	"github.com/coazdigital/coaz-assist/internal/engine"
	"github.com/coazdigital/coaz-assist/internal/inference"
	"github.com/coazdigital/coaz-assist/internal/ingest"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single question from the command line",
	Long: `Ask runs the full answering pipeline once: it indexes the configured
document sources, answers the question, and prints the result. Useful
for trying out rule and retrieval behavior without starting the server.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := appConfig()
	if err != nil {
		return err
	}

	rules, err := answer.LoadRules()
	if err != nil {
		return err
	}

	noRAG, _ := cmd.Flags().GetBool("no-rag")
	jsonOut, _ := cmd.Flags().GetBool("json")

	eng := engine.New(inference.New(cfg.Inference), rules, cfg.Pipeline, logger)

	docs, err := ingest.Load(cfg.Ingest)
	if err != nil {
		return err
	}
	if _, err := eng.Reindex(docs); err != nil {
		return err
	}

	question := strings.Join(args, " ")
	res, err := eng.Ask(cmd.Context(), question, !noRAG)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Println(res.Answer)
	fmt.Fprintf(os.Stderr, "\n[%s/%s, confidence %.2f (%s), %d chunk(s), %s]\n",
		res.ResponseType, res.Source, res.Confidence, res.ConfidenceSource,
		res.ChunksUsed, res.ProcessingTime.Round(time.Millisecond))
	return nil
}

func init() {
	askCmd.Flags().Bool("no-rag", false, "skip retrieval, use only rules and fallbacks")
	askCmd.Flags().Bool("json", false, "output the full result as JSON")

	rootCmd.AddCommand(askCmd)
}
