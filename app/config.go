package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eq-toolbox/eq-toolbox/internal/config"
)

func init() { //nolint: gochecknoinits
	dumpCmd.Flags().BoolVar(&dumpJSON, "json", false, "Print JSON instead of TOML")

	configCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(configCmd)
}

var (
	dumpJSON bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration, environment overrides applied",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.ReadConfig(configPath())
			if err != nil {
				return err
			}

			out, err := dump(&c, dumpJSON)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}
)

func dump(c *config.Config, asJSON bool) (string, error) {
	if asJSON {
		return config.DumpConfigJSON(c)
	}

	return config.DumpConfig(c)
}
