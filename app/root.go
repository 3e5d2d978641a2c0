// Package app implements the main application commands.
package app

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eq-toolbox/eq-toolbox/internal/config"
)

const (
	// EnvPrefix prefixes the environment variables bound to flags.
	EnvPrefix = "EQ_TOOLBOX"

	keyConfig = "config"
)

var rootCmd = &cobra.Command{
	Use:   "eq-toolbox",
	Short: "EQ Toolbox appends a call to action to blog posts",
	Long: `EQ Toolbox serves a small blog whose single posts end with a configurable
call to action block. The block is managed on the admin "Reading" screen.`,
	Args: cobra.OnlyValidArgs,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// a missing .env file is fine
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Msg("can't load .env file")
		}

		return nil
	},
	SilenceUsage: true,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().String(keyConfig, config.DefaultPath,
		"Directory holding main.toml (env "+EnvPrefix+"_CONFIG)")

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()
	cobra.CheckErr(viper.BindPFlag(keyConfig, rootCmd.PersistentFlags().Lookup(keyConfig)))
}

// configPath returns the config directory from flag or environment.
func configPath() string {
	return viper.GetString(keyConfig)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
