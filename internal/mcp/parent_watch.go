package mcp

import (
	"context"
	"os"
	"time"

	"enigma/internal/logging"
)

// ParentPollInterval is how often WatchParent checks the parent PID.
var ParentPollInterval = 2 * time.Second

// WatchParent calls cancelFn when the parent process goes away (the MCP
// client exited or restarted), so a stdio server never outlives its client.
//
// It must not read stdin: the SDK's StdioTransport owns it and stolen bytes
// would corrupt the JSON-RPC stream.
//
// The goroutine exits when ctx is canceled or parent death is detected.
func WatchParent(ctx context.Context, cancelFn context.CancelFunc) {
	ppid := os.Getppid()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(ParentPollInterval):
				if os.Getppid() != ppid {
					logging.New("mcp").Warn("parent process died, shutting down", "ppid", ppid)
					cancelFn()
					return
				}
			}
		}
	}()
}
