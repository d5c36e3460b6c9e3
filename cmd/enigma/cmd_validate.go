package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"enigma/internal/catalog"
)

var validateFlags struct {
	schema bool
}

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check catalog files against the schema and the wiring rules",
	Long: `Loads each catalog file or directory on top of the built-in catalog and
reports schema violations, broken wirings, duplicate names and models that
reference undefined wheels or reflectors.

With --schema the catalog JSON schema is printed instead.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateFlags.schema, "schema", false, "Print the catalog JSON schema and exit")
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if validateFlags.schema {
		_, err := out.Write(catalog.Schema())
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("validate: no catalog files given")
	}

	failed := 0
	for _, p := range args {
		if err := validatePath(p); err != nil {
			failed++
			fmt.Fprintf(out, "FAIL  %s\n      %v\n", p, err)
			continue
		}
		fmt.Fprintf(out, "ok    %s\n", p)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d catalog files invalid", failed, len(args))
	}
	return nil
}

func validatePath(p string) error {
	info, err := os.Stat(p)
	if err != nil {
		return err
	}
	docs, err := catalog.BuiltinDocuments()
	if err != nil {
		return err
	}
	if info.IsDir() {
		more, err := catalog.LoadDir(p)
		if err != nil {
			return err
		}
		docs = append(docs, more...)
	} else {
		doc, err := catalog.LoadFromPath(p)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	_, err = catalog.Merge(docs...)
	return err
}
