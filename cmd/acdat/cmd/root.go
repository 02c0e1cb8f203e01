package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "acdat",
	Short:         "multi-pattern matching with a double-array Aho-Corasick automaton",
	Long:          "Compile keyword sets into compact automata, persist them, and scan text for every keyword occurrence in one pass.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	dbPath string
	name   string
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "acdat.db", "path of the automaton store")
	rootCmd.PersistentFlags().StringVar(&name, "name", "default", "automaton name within the store")
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(statsCmd)
}
