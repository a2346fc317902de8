package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"spritepad/frontend"
	"spritepad/internal/config"
	"spritepad/internal/server"
	"spritepad/internal/service"
	"spritepad/internal/storage"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var (
		configPath string
		port       int
		outputDir  string
		dbPath     string
	)
	cmd := &cobra.Command{
		Use:           "spritepad-server",
		Short:         "Serve the spritepad UI and save exported frame sequences",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := config.DefaultPaths()
			if err != nil {
				return err
			}
			cfg := config.DefaultConfig(paths)
			if configPath == "" {
				configPath = paths.ConfigPath
			}
			if err := cfg.LoadFile(configPath); err != nil {
				return err
			}
			if err := cfg.ApplyEnv(os.Getenv); err != nil {
				return err
			}
			// explicit flags beat file and environment
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("output-dir") {
				cfg.Server.OutputDir = outputDir
			}
			if cmd.Flags().Changed("db") {
				cfg.Server.DBPath = dbPath
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/spritepad/config.yaml)")
	cmd.Flags().IntVarP(&port, "port", "p", 3000, "listen port")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory export files are written to")
	cmd.Flags().StringVar(&dbPath, "db", "", "export index database")
	return cmd
}

func run(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.New(cfg.Server.DBPath, cfg.Server.OutputDir)
	if err != nil {
		return fmt.Errorf("open export index: %w", err)
	}
	defer db.Close()

	exports := service.NewExportService(storage.NewExportStore(db), db.OutputDir(), logEmitter{})
	if err := exports.StartWatcher(ctx); err != nil {
		log.Printf("server: output watcher disabled: %v", err)
	}
	if err := exports.StartRetention(ctx, cfg.Retention.Schedule, cfg.Retention.MaxAge); err != nil {
		return err
	}

	assets, err := frontend.Dist()
	if err != nil {
		return fmt.Errorf("load ui assets: %w", err)
	}
	srv := server.New(server.Deps{Exports: exports, Assets: assets})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(fmt.Sprintf(":%d", cfg.Server.Port))
	}()

	select {
	case err = <-errCh:
	case <-ctx.Done():
		log.Printf("server: shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		log.Printf("server: shutdown: %v", serr)
	}
	exports.Stop(shutdownCtx)
	return err
}

// logEmitter reports export events in the server log; there is no
// frontend to push them to.
type logEmitter struct{}

func (logEmitter) Emit(_ context.Context, event string, data any) {
	log.Printf("server: event %s %v", event, data)
}
