package commands

import (
	"github.com/spf13/cobra"

	"github.com/tokenforge/tokenops/config"
)

// newInitConfigCmd scaffolds a starter network manifest at the --config path.
func (c *Commands) newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write a starter network manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}

			if err := config.WriteExample(cfgPath); err != nil {
				return err
			}

			c.lggr.Infow("Wrote starter manifest", "path", cfgPath)
			cmd.Println(cfgPath)

			return nil
		},
	}
}
