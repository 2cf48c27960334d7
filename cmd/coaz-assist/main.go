// Copyright COAZ Digital, 2026. All rights reserved.

// Package main is the entry point for the coaz-assist CLI: the COAZ
// membership-site answering service and its supporting tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coazdigital/coaz-assist/internal/secrets"
	"github.com/coazdigital/coaz-assist/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var logger zerolog.Logger

// rootCmd is the base command for the coaz-assist CLI.
var rootCmd = &cobra.Command{
	Use:   "coaz-assist",
	Short: "Question answering for the COAZ membership site",
	Long: `coaz-assist answers member questions for the College of
Anesthesiologists of Zambia. It indexes the constitution and the website
crawl cache, classifies incoming questions, retrieves matching passages,
and synthesizes answers with an optional hosted inference service.

Run "serve" for the HTTP API, "ask" for one-shot questions, "ingest" to
inspect the document sources, and "content" to manage site content.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(cmd)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./coaz-assist.yaml or ~/.config/coaz-assist/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("log-json", false, "log JSON instead of console output")
}

func initConfig() {
	// .env first so its values are visible to viper's AutomaticEnv.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("coaz-assist")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "coaz-assist"))
		}
	}

	viper.SetEnvPrefix("COAZ_ASSIST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setupLogging(cmd *cobra.Command) {
	level := zerolog.InfoLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}

	var w zerolog.LevelWriter
	if jsonOut, _ := cmd.Flags().GetBool("log-json"); jsonOut {
		w = zerolog.MultiLevelWriter(os.Stderr)
	} else {
		w = zerolog.MultiLevelWriter(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// appConfig assembles the typed configuration from viper, applies
// defaults, and merges secrets from .secrets/.
func appConfig() (types.AppConfig, error) {
	cfg := types.AppConfig{
		Server: types.ServerConfig{
			Addr:            viper.GetString("server.addr"),
			ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
			AdminToken:      viper.GetString("server.admin_token"),
		},
		Content: types.ContentConfig{
			DBPath: viper.GetString("content.db_path"),
		},
		Ingest: types.IngestConfig{
			ConstitutionPath: viper.GetString("ingest.constitution_path"),
			PagesPath:        viper.GetString("ingest.pages_path"),
		},
		Inference: types.InferenceConfig{
			BaseURL:      viper.GetString("inference.base_url"),
			APIKey:       viper.GetString("inference.api_key"),
			Mode:         types.InferenceMode(viper.GetString("inference.mode")),
			PollAttempts: viper.GetInt("inference.poll_attempts"),
			PollInterval: viper.GetDuration("inference.poll_interval"),
			MaxRetries:   viper.GetInt("inference.max_retries"),
		},
		Pipeline: types.DefaultPipelineParams(),
	}
	cfg.Inference.Timeout = viper.GetDuration("inference.timeout")

	if viper.GetBool("pipeline.relaxed") {
		cfg.Pipeline = types.RelaxedPipelineParams()
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Content.DBPath == "" {
		cfg.Content.DBPath = filepath.Join("data", "coaz.db")
	}
	if cfg.Ingest.ConstitutionPath == "" {
		cfg.Ingest.ConstitutionPath = filepath.Join("data", "constitution.txt")
	}
	if cfg.Ingest.PagesPath == "" {
		cfg.Ingest.PagesPath = filepath.Join("data", "pages.yaml")
	}

	loaded, err := secrets.Load(".secrets/")
	if err != nil {
		return types.AppConfig{}, err
	}
	secrets.Apply(loaded, &cfg)

	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
