package app

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/eq-toolbox/eq-toolbox/internal/config"
	"github.com/eq-toolbox/eq-toolbox/internal/daemon"
	"github.com/eq-toolbox/eq-toolbox/internal/db/controller/option"
)

func init() { //nolint: gochecknoinits
	optionsCmd.AddCommand(optionsListCmd)
	rootCmd.AddCommand(optionsCmd)
}

var (
	optionsCmd = &cobra.Command{
		Use:   "options",
		Short: "Inspect stored options",
	}

	optionsListCmd = &cobra.Command{
		Use:   "list",
		Short: "Print every stored option with its JSON value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.ReadConfig(configPath())
			if err != nil {
				return err
			}

			db, err := daemon.OpenDB(&c)
			if err != nil {
				return err
			}

			return listOptions(cmd.OutOrStdout(), db)
		},
	}
)

// listOptions writes one "name<TAB>value" line per option, ordered by name.
func listOptions(w io.Writer, db *gorm.DB) error {
	opts, err := option.GetAll(db)
	if err != nil {
		return errors.Wrap(err, "list options")
	}

	for _, o := range opts {
		if _, err = fmt.Fprintf(w, "%s\t%s\n", o.Name, o.Value); err != nil {
			return err
		}
	}

	return nil
}
