package main

import (
	"github.com/spf13/cobra"

	evalforge "github.com/evalforge/evalforge-go"
)

var (
	configPath string
	baseURL    string
)

var rootCmd = &cobra.Command{
	Use:   "evalforge",
	Short: "Command-line client for the EvalForge AI-evaluation service",
	Long: "evalforge lists datasets and their items, scores agent outputs against\n" +
		"server-side scorers, and submits execution traces.\n\n" +
		"Credentials come from EVALFORGE_API_KEY or from --config.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "override the API base URL")
}

// newClient builds a client from --config (when given) plus the
// environment, applying --base-url last.
func newClient() (*evalforge.Client, error) {
	var opts []evalforge.ConfigOption
	if baseURL != "" {
		opts = append(opts, evalforge.WithBaseURL(baseURL))
	}

	if configPath != "" {
		cfg, err := evalforge.LoadConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
		return evalforge.NewWithConfig(cfg)
	}

	return evalforge.NewFromEnv(opts...)
}
