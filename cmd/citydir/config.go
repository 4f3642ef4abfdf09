package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/citydir/internal/config"
	"github.com/jackzampolin/citydir/internal/home"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage citydir configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write the default configuration to the citydir home directory.

The generated file uses ${ENV_VAR} placeholders for API keys:
  export MISTRAL_API_KEY=xxx
  export OPENAI_API_KEY=xxx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homePath)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}
		if h.ConfigExists() && !configInitForce {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", h.ConfigPath())
		}
		if err := config.WriteDefault(h.ConfigPath()); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", h.ConfigPath())
		return nil
	},
}

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}
