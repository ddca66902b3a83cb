package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ecotrace/wastewatch/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize wastewatch configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure wastewatch and generates a .wastewatch.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
