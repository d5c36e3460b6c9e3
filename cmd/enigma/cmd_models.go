package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"enigma/internal/catalog"
	"enigma/internal/display"
	"enigma/internal/format"
	"enigma/pkg/enigma"
)

var modelsFlags struct {
	markdown bool
}

var modelsCmd = &cobra.Command{
	Use:   "models [name]",
	Short: "List machine models, or one model's wheels and reflectors",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runModels,
}

func init() {
	modelsCmd.Flags().BoolVar(&modelsFlags.markdown, "markdown", false, "Render Markdown tables")
}

func runModels(cmd *cobra.Command, args []string) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	mode := tableMode(modelsFlags.markdown)
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		tbl := format.NewTable(mode)
		tbl.Header("Model", "Name", "Rotors", "Plugboard", "Wheels", "Reflectors")
		for _, m := range cat.Models() {
			tbl.Row(m.Name, m.LongName, m.Rotors, format.BoolMark(m.Plugboard),
				len(cat.Wheels(m.Name)), len(cat.Reflectors(m.Name)))
		}
		fmt.Fprintln(out, tbl.String())
		return nil
	}

	m, ok := cat.Model(args[0])
	if !ok {
		return fmt.Errorf("%w: %q (known: %s)", enigma.ErrUnknownModel, args[0], format.List(cat.ModelNames()))
	}
	fmt.Fprintln(out, modelTables(cat, m, mode))
	return nil
}

func modelTables(cat *catalog.Catalog, m enigma.ModelSpec, mode format.Mode) string {
	wheels := format.NewTable(mode)
	wheels.Title(fmt.Sprintf("%s: %d rotors, plugboard %s", m.LongName, m.Rotors, format.BoolMark(m.Plugboard)))
	wheels.Header("Wheel", "Name", "Wiring", "Notches")
	for _, w := range cat.Wheels(m.Name) {
		wheels.Row(w.Name, display.Wheel(w.Name), w.Wiring.String(), format.Notches(w.Notches))
	}

	reflectors := format.NewTable(mode)
	reflectors.Header("Reflector", "Name", "Wiring")
	for _, r := range cat.Reflectors(m.Name) {
		reflectors.Row(r.Name, display.Reflector(r.Name), r.Wiring.String())
	}
	return wheels.String() + "\n\n" + reflectors.String()
}
