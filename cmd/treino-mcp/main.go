package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/treino/internal/apiclient"
	"github.com/claude/treino/internal/config"
	"github.com/claude/treino/internal/mcp"
	"github.com/claude/treino/internal/session"
	"github.com/claude/treino/internal/storage"
	"github.com/claude/treino/internal/workout"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("treino-mcp", Version)
		return
	}

	// stdout carries the protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.LoadMCP(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	api := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout)
	form := workout.NewForm("mcp", api, session.StaticToken(cfg.MCP.AccessToken), log)

	if cfg.Database.Enabled() {
		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		form.SetAuditLog(db)
		log.Info("audit log enabled")
	}

	s := mcp.New(form, Version, log)
	log.Info("treino-mcp serving on stdio", "version", Version, "api", cfg.API.BaseURL)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
