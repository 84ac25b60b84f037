package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shoppy-wrapped",
	Short: "Turn your order history into a shopping wrapped",
	Long:  `shoppy-wrapped aggregates an exported order history into spending stats, a shopping streak, and an AI-generated shopping persona.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = false
}
