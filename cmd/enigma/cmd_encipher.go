package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"enigma/internal/format"
	"enigma/internal/logging"
	"enigma/internal/message"
	"enigma/internal/session"
	"enigma/internal/settings"
)

var encipherFlags struct {
	key      keyFlags
	sheet    string
	file     string
	group    int
	raw      bool
	trace    bool
	markdown bool
}

var encipherCmd = &cobra.Command{
	Use:     "encipher [text...]",
	Aliases: []string{"decipher", "enc", "dec"},
	Short:   "Key a message through a machine",
	Long: `Presses every letter of the message on a freshly set machine and prints
the lamps that lit. The machine is reciprocal: running the output through the
same settings gives the message back.

The key comes from --sheet, from the key flags, or from both (flags override
the sheet). Without either the machine is an Enigma I with wheels I II III,
reflector UKW-B, all rings and positions at A and no cables.

Ring settings (--rings) are kept with the key and on key sheets but are not
applied: the output is what rings 01 give. A warning is logged when a ring
other than 01 is set.

Text is taken from the arguments, --file, or stdin. Umlauts are spelled out,
other accents stripped and everything outside A-Z dropped unless --raw is set.`,
	RunE: runEncipher,
}

func init() {
	f := encipherCmd.Flags()
	encipherFlags.key.register(f)
	f.StringVar(&encipherFlags.sheet, "sheet", "", "Use a stored key sheet")
	f.StringVarP(&encipherFlags.file, "file", "f", "", "Read the message from a file")
	f.IntVar(&encipherFlags.group, "group", -1, "Letters per output group, 0 for none (default from config)")
	f.BoolVar(&encipherFlags.raw, "raw", false, "Key the text as-is (letters only)")
	f.BoolVar(&encipherFlags.trace, "trace", false, "Print every key press with the rotor positions")
	f.BoolVar(&encipherFlags.markdown, "markdown", false, "Render the trace as a Markdown table")
}

func runEncipher(cmd *cobra.Command, args []string) error {
	key, err := resolveKey(cmd)
	if err != nil {
		return err
	}
	text, err := readMessage(cmd, args)
	if err != nil {
		return err
	}
	if encipherFlags.raw {
		text = strings.TrimSpace(text)
	} else {
		text = message.Prepare(text)
	}

	cat, err := openCatalog()
	if err != nil {
		return err
	}
	sess, err := session.New(cat, key)
	if err != nil {
		return err
	}
	logging.New("cli").Debug("machine set", "key", key.String())

	group := cfg.GroupSize
	if encipherFlags.group >= 0 {
		group = encipherFlags.group
	}
	out := cmd.OutOrStdout()

	if !encipherFlags.trace {
		res, err := sess.Type(text)
		if err != nil {
			return fmt.Errorf("encipher: %w", err)
		}
		fmt.Fprintln(out, message.Group(res, group))
		return nil
	}

	res, steps, err := sess.Trace(text)
	if err != nil {
		return fmt.Errorf("encipher: %w", err)
	}
	tbl := format.NewTable(tableMode(encipherFlags.markdown))
	tbl.Title(key.String())
	tbl.Header("#", "Key", "Lamp", "Positions")
	tbl.Columns(format.ColumnConfig{Number: 1, Align: format.AlignRight})
	for i, st := range steps {
		tbl.Row(i+1, st.Key, st.Lamp, st.Positions)
	}
	tbl.Footer("", "", "", sess.Positions())
	fmt.Fprintln(out, tbl.String())
	fmt.Fprintln(out, message.Group(res, group))
	return nil
}

// resolveKey builds the settings from --sheet and the key flags.
func resolveKey(cmd *cobra.Command) (settings.Settings, error) {
	f := cmd.Flags()
	base := settings.Default()
	if encipherFlags.sheet != "" {
		st, err := openStore()
		if err != nil {
			return settings.Settings{}, err
		}
		defer st.Close()
		sh, err := st.Get(encipherFlags.sheet)
		if err != nil {
			return settings.Settings{}, fmt.Errorf("get sheet: %w", err)
		}
		if sh == nil {
			return settings.Settings{}, fmt.Errorf("key sheet %q not found (see 'enigma sheet list')", encipherFlags.sheet)
		}
		base = sh.Key
	}
	return encipherFlags.key.apply(f, base)
}

func readMessage(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case len(args) > 0 && encipherFlags.file != "":
		return "", fmt.Errorf("give the message as arguments or --file, not both")
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case encipherFlags.file != "":
		data, err := os.ReadFile(encipherFlags.file)
		if err != nil {
			return "", fmt.Errorf("read message: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
