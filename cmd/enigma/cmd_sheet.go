package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"enigma/internal/display"
	"enigma/internal/format"
	"enigma/internal/keysheet"
	"enigma/internal/settings"
)

var sheetFlags struct {
	key      keyFlags
	note     string
	markdown bool
}

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Manage stored key sheets",
	Long:  "Key sheets are named machine keys kept in the key-sheet database (--db).",
}

var sheetSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Store a key under a name, replacing any sheet with that name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := sheetFlags.key.apply(cmd.Flags(), settings.Default())
		if err != nil {
			return err
		}
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		// A sheet must describe a machine this catalog can build.
		if _, err := key.Build(cat); err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sh := &keysheet.Sheet{Name: args[0], Note: sheetFlags.note, Key: key}
		if _, err := st.Save(sh); err != nil {
			return fmt.Errorf("save sheet: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s): %s\n", sh.Name, sh.Ref, key.String())
		return nil
	},
}

var sheetShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one key sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sh, err := st.Get(args[0])
		if err != nil {
			return fmt.Errorf("get sheet: %w", err)
		}
		if sh == nil {
			return fmt.Errorf("%w: %q", keysheet.ErrNotFound, args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name:       %s\n", sh.Name)
		fmt.Fprintf(out, "Ref:        %s\n", sh.Ref)
		fmt.Fprintf(out, "Model:      %s\n", display.ModelWithCode(sh.Key.Model))
		fmt.Fprintf(out, "Rotors:     %s\n", display.WheelOrder(sh.Key.Rotors))
		fmt.Fprintf(out, "Reflector:  %s\n", display.ReflectorWithCode(sh.Key.Reflector))
		fmt.Fprintf(out, "Rings:      %s\n", format.Rings(sh.Key.Rings))
		fmt.Fprintf(out, "Positions:  %s\n", orDash(sh.Key.Positions))
		fmt.Fprintf(out, "Plugs:      %s\n", format.List(sh.Key.Plugs))
		if sh.Note != "" {
			fmt.Fprintf(out, "Note:       %s\n", sh.Note)
		}
		fmt.Fprintf(out, "Updated:    %s\n", sh.UpdatedAt)
		return nil
	},
}

var sheetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored key sheets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sheets, err := st.List()
		if err != nil {
			return fmt.Errorf("list sheets: %w", err)
		}
		if len(sheets) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No key sheets. Create one with 'enigma sheet save'.")
			return nil
		}

		tbl := format.NewTable(tableMode(sheetFlags.markdown))
		tbl.Header("Name", "Model", "Rotors", "Reflector", "Rings", "Start", "Plugs", "Note")
		tbl.Columns(format.ColumnConfig{Number: 8, MaxWidth: 40})
		for _, sh := range sheets {
			tbl.Row(sh.Name, sh.Key.Model, format.List(sh.Key.Rotors), sh.Key.Reflector,
				format.Rings(sh.Key.Rings), orDash(sh.Key.Positions), format.List(sh.Key.Plugs),
				format.Truncate(sh.Note, 40))
		}
		fmt.Fprintln(cmd.OutOrStdout(), tbl.String())
		return nil
	},
}

var sheetDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a key sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Delete(args[0]); err != nil {
			return fmt.Errorf("delete sheet: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	f := sheetSaveCmd.Flags()
	sheetFlags.key.register(f)
	f.StringVar(&sheetFlags.note, "note", "", "Free-form note stored with the sheet")

	sheetListCmd.Flags().BoolVar(&sheetFlags.markdown, "markdown", false, "Render a Markdown table")

	sheetCmd.AddCommand(sheetSaveCmd, sheetShowCmd, sheetListCmd, sheetDeleteCmd)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
