package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"enigma/internal/format"
	"enigma/internal/message"
	"enigma/internal/session"
)

var batchFlags struct {
	file     string
	parallel int
	markdown bool
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Key every message in a job file",
	Long: `Runs each job of a YAML or JSON job file on its own machine:

  jobs:
    - name: weather
      settings: {model: Enigma1, rotors: [I, II, III], reflector: UKW-B, positions: ADU}
      text: Wetterbericht
    - sheet: daily
      text: Keine besonderen Ereignisse

Jobs run concurrently (--parallel). Failed jobs are reported and make the
command exit non-zero; the others still print.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVarP(&batchFlags.file, "file", "f", "", "Job file (YAML/JSON, required)")
	f.IntVar(&batchFlags.parallel, "parallel", runtime.NumCPU(), "Jobs to run at once")
	f.BoolVar(&batchFlags.markdown, "markdown", false, "Render a Markdown table")
	_ = batchCmd.MarkFlagRequired("file")
}

func runBatch(cmd *cobra.Command, _ []string) error {
	jobs, err := session.LoadJobs(batchFlags.file)
	if err != nil {
		return err
	}
	if needsSheets(jobs) {
		st, err := openStore()
		if err != nil {
			return err
		}
		err = session.ResolveSheets(jobs, st)
		_ = st.Close()
		if err != nil {
			return err
		}
	}

	cat, err := openCatalog()
	if err != nil {
		return err
	}
	results, err := session.RunBatch(cmd.Context(), cat, jobs, batchFlags.parallel)
	if err != nil {
		return err
	}

	tbl := format.NewTable(tableMode(batchFlags.markdown))
	tbl.Header("#", "Job", "Output")
	tbl.Columns(format.ColumnConfig{Number: 3, MaxWidth: 60})
	failed := 0
	for _, r := range results {
		text := message.Group(r.Output, cfg.GroupSize)
		if r.Err != nil {
			failed++
			text = "error: " + r.Err.Error()
		}
		tbl.Row(r.Index+1, r.Name, text)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tbl.String())

	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(results))
	}
	return nil
}

func needsSheets(jobs []session.Job) bool {
	for _, j := range jobs {
		if j.Sheet != "" {
			return true
		}
	}
	return false
}
