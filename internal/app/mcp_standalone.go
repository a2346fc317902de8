package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"spritepad/internal/config"
	mcpserver "spritepad/internal/mcp"
	"spritepad/internal/service"
)

// ServeMCP runs the editor as a standalone MCP server on stdin/stdout with no GUI.
// The session lives until the process is interrupted; nothing is persisted.
func ServeMCP() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	mcpSrv := mcpserver.New(mcpserver.Deps{
		Editor: newEditorService(cfg, service.NoopEmitter{}),
	})

	errCh := make(chan error, 1)
	go func() { errCh <- mcpSrv.ServeStdio() }()

	log.Println("[MCP] Starting standalone stdio server...")
	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("MCP server error: %v", err)
		}
	case <-ctx.Done():
	}
}
