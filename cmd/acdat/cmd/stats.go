package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dartslab/acdat"
	"github.com/dartslab/acdat/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show density metrics of stored automata",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		names, err := st.Names()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("store is empty")
			return nil
		}
		for _, n := range names {
			state, values, err := store.Load[string](st, n)
			if err != nil {
				return err
			}
			a, err := acdat.Load(state, values)
			if err != nil {
				return err
			}
			s := a.Stats()
			fmt.Printf("%s: keywords=%d states=%d used=%d fill=%.2f maxStateID=%d\n",
				n, a.Size(), s.TotalSlots, s.UsedSlots, s.FillRatio(), s.MaxStateID)
		}
		return nil
	},
}
