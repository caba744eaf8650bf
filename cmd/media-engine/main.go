// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the media-engine CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/media-engine/internal/logging"
	"github.com/pdiddy/media-engine/internal/metrics"
	"github.com/pdiddy/media-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the media-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "media-engine",
	Short: "Resolve book and movie metadata and recommend titles",
	Long: `media-engine searches Google Books and OMDb, normalizes their responses
into one title record, enriches search results with detail lookups, and
recommends new titles from the genres and people in a user's library.

When providers are unreachable or return nothing, a small static dataset
is served instead (disable with enable_fallback: false).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(logging.Config{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		})
		if used := viper.ConfigFileUsed(); used != "" {
			logging.Debug().Str("file", used).Msg("using config file")
		}

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logging.Debug().Strs("keys", keys).Msg("loaded secrets")
		}

		cmd.SetContext(logging.ContextWithNewCorrelationID(cmd.Context()))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("metrics-file")
		if path == "" {
			return nil
		}
		return metrics.WriteTextfile(path)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./media-engine.yaml or ~/.config/media-engine/media-engine.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("metrics-file", "", "write Prometheus metrics to this file on exit")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	setDefaults()
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("media-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "media-engine"))
		}
	}

	viper.SetEnvPrefix("MEDIA_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
