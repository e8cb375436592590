package cmd

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jdex/internal/config"
	"jdex/internal/daemon"
	"jdex/internal/library"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the background daemon (usually spawned automatically)",
	Run:   runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) {
	logPath := config.LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		slog.Error("failed to create log directory", "error", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))
	log.SetOutput(logFile)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.Archives.Dir, 0755); err != nil {
		slog.Warn("cannot create archive directory", "dir", cfg.Archives.Dir, "error", err)
	}

	lib := library.New()
	srv := daemon.NewServer(cfg, lib, config.SocketPath())
	loaded := srv.LoadSources()
	slog.Info("archives loaded", "archives", loaded.Archives, "classes", loaded.Classes)

	ctx := context.Background()
	go watchDir(ctx, lib, cfg.Archives.Dir)
	for _, src := range cfg.Archives.Extra {
		if src.Watch {
			go watchDir(ctx, lib, src.Path)
		}
	}

	if err := srv.Start(ctx); err != nil {
		slog.Error("daemon failed", "error", err)
		os.Exit(1)
	}
}

func watchDir(ctx context.Context, lib *library.Library, dir string) {
	if err := lib.Watch(ctx, dir); err != nil && !errors.Is(err, context.Canceled) {
		slog.Warn("archive watcher stopped", "dir", dir, "error", err)
	}
}
