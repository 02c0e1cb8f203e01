package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dartslab/acdat"
	"github.com/dartslab/acdat/store"
)

var buildCmd = &cobra.Command{
	Use:   "build <keywords-file>",
	Short: "Compile a keyword file into a stored automaton",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, values, err := readKeywordFile(args[0])
		if err != nil {
			return err
		}
		a, err := acdat.Build(keys, values)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := store.SaveAutomaton[string](st, name, a); err != nil {
			return err
		}
		stats := a.Stats()
		fmt.Printf("%s: %d keywords, %d states, fill %.2f → %s\n",
			name, a.Size(), stats.TotalSlots, stats.FillRatio(), dbPath)
		return nil
	},
}
