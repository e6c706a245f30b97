package commands

import (
	"github.com/spf13/cobra"

	"github.com/tokenforge/tokenops/detectors"
)

func (c *Commands) newDetectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detectors",
		Short: "List the static-analysis detectors enabled for contract audits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range detectors.All() {
				cmd.Println(name)
			}

			return nil
		},
	}
}
