// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pedagogy-tools CLI: a small
// toolbox that turns exercise records into SQL and crops scanned exercise
// sheets into images.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pedagogy-tools CLI.
var rootCmd = &cobra.Command{
	Use:   "pedagogy-tools",
	Short: "Utilities for the climbing pedagogy sheets",
	Long: `pedagogy-tools prepares pedagogy content for the club site.

The sql subcommand turns a JSON list of exercises into INSERT statements for
the pedagogy_sheets table. The images subcommand crops the left half of each
page of a scanned exercise booklet into numbered PNG files.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pedagogy-tools.yaml or ~/.config/pedagogy-tools/config.yaml)")
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: could not load .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pedagogy-tools")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pedagogy-tools"))
		}
	}

	viper.SetEnvPrefix("PEDAGOGY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
