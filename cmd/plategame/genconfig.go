package main

import (
	"github.com/spf13/cobra"

	"github.com/gcbaptista/license-plate-game/config"
)

func newGenConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genconfig",
		Short: "Print the default configuration as TOML",
		Long: `Print the default configuration as TOML. Save it as
$XDG_CONFIG_HOME/plategame/config.toml to change the defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.DefaultAppConfig().MarshalTOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
