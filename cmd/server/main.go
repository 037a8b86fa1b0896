// Package main is the entry point for the adventure CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "adventure-api",
	Short: "Interactive narrative adventure engine",
	Long:  `adventure-api runs a seeded, rules-driven narrative adventure: skill checks, combat, quests, loot, and town life, playable in the terminal.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(playCmd)
}
