package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/sugawarayuuta/sonnet"

	"github.com/dartslab/acdat"
	"github.com/dartslab/acdat/store"
)

var (
	keywordsPath string
	jsonOutput   bool
	watch        bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [files...]",
	Short: "Report every keyword occurrence in the given files (or stdin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadAutomaton()
		if err != nil {
			return err
		}
		if err := scanAll(a, args); err != nil {
			return err
		}
		if !watch {
			return nil
		}
		if keywordsPath == "" {
			return fmt.Errorf("--watch needs --keywords to know what to rebuild from")
		}
		return watchAndRescan(args)
	},
}

func init() {
	scanCmd.Flags().StringVar(&keywordsPath, "keywords", "", "build from a keyword file instead of the store")
	scanCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit hits as JSON")
	scanCmd.Flags().BoolVar(&watch, "watch", false, "rebuild and rescan when the keyword file changes")
}

// loadAutomaton builds from --keywords when given, otherwise loads the
// named automaton from the store.
func loadAutomaton() (*acdat.Automaton[string], error) {
	if keywordsPath != "" {
		keys, values, err := readKeywordFile(keywordsPath)
		if err != nil {
			return nil, err
		}
		return acdat.Build(keys, values)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	state, values, err := store.Load[string](st, name)
	if err != nil {
		return nil, err
	}
	return acdat.Load(state, values)
}

func scanAll(a *acdat.Automaton[string], files []string) error {
	if len(files) == 0 {
		return scanReader(a, "stdin", os.Stdin)
	}
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		err = scanReader(a, file, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// jsonHit is the --json output record. Offsets count runes.
type jsonHit struct {
	Source string `json:"source"`
	Begin  int    `json:"begin"`
	End    int    `json:"end"`
	Index  int    `json:"index"`
	Value  string `json:"value"`
}

func scanReader(a *acdat.Automaton[string], source string, r io.Reader) error {
	text, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read %s: %w", source, err)
	}
	hits := a.PartialMatch(string(text))
	if jsonOutput {
		records := make([]jsonHit, len(hits))
		for i, h := range hits {
			records[i] = jsonHit{Source: source, Begin: h.Begin, End: h.End, Index: h.Index, Value: h.Value}
		}
		out, err := sonnet.Marshal(records)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
	for _, h := range hits {
		fmt.Printf("%s:%d-%d\t%s\n", source, h.Begin, h.End, h.Value)
	}
	return nil
}

// watchAndRescan blocks, rebuilding the automaton and rescanning the
// inputs whenever the keyword file changes. The watch sits on the
// file's directory because editors typically replace files on save.
func watchAndRescan(files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target, err := filepath.Abs(keywordsPath)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	const debounceInterval = 200 * time.Millisecond
	var last time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			changed, _ := filepath.Abs(event.Name)
			if changed != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if time.Since(last) < debounceInterval {
				continue
			}
			last = time.Now()

			a, err := loadAutomaton()
			if err != nil {
				fmt.Fprintf(os.Stderr, "rebuild: %v\n", err)
				continue
			}
			fmt.Printf("rebuilt from %s (%d keywords)\n", keywordsPath, a.Size())
			if err := scanAll(a, files); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
