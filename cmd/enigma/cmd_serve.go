package main

import (
	"context"

	"github.com/spf13/cobra"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"enigma/internal/keysheet"
	"enigma/internal/logging"
	mcpserver "enigma/internal/mcp"
)

var serveFlags struct {
	noSheets bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout. Agents list models, key messages
and keep machines open across calls through its tools. Stored key sheets are
offered through get_sheet unless --no-sheets is set.

The server monitors for parent process death and exits when its client goes
away.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveFlags.noSheets, "no-sheets", false, "Do not open the key-sheet database")
}

func runServe(cmd *cobra.Command, _ []string) error {
	log := logging.New("mcp")
	cat, err := openCatalog()
	if err != nil {
		return err
	}

	var sheets keysheet.Store
	if !serveFlags.noSheets {
		st, err := openStore()
		if err != nil {
			log.Warn("key sheets unavailable", "error", err)
		} else {
			defer st.Close()
			sheets = st
		}
	}

	srv := mcpserver.NewServer(cat, sheets, version)
	defer srv.Shutdown()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchParent(ctx, cancel)

	log.Info("starting enigma MCP server over stdio (parent watchdog active)", "models", len(cat.ModelNames()))
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
