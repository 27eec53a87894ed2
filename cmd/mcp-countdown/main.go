// Command mcp-countdown provides an MCP server for deadline countdowns.
//
// The server seeds an in-memory catalog from the countdown configuration and
// exposes tools for listing deadlines and computing the time remaining.
//
// Usage:
//
//	./mcp-countdown          # Start MCP server (stdio)
//	./mcp-countdown --help   # Show help
//
// Environment:
//
//	COUNTDOWN_CONFIG  Path to config file (default: ~/.countdown/config.yaml)
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/notexe/countdown/internal/catalog"
	"github.com/notexe/countdown/internal/config"
	countdownserver "github.com/notexe/countdown/internal/server"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		}
	}

	// stdout carries the protocol
	log.SetOutput(os.Stderr)

	configPath := os.Getenv("COUNTDOWN_CONFIG")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("[mcp-countdown] Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[mcp-countdown] Invalid configuration: %v", err)
	}

	ctx := context.Background()

	cat, err := catalog.Open(ctx)
	if err != nil {
		log.Fatalf("[mcp-countdown] Failed to open catalog: %v", err)
	}
	defer cat.Close()

	entries, err := cfg.Entries(time.Now())
	if err != nil {
		log.Fatalf("[mcp-countdown] Invalid deadlines: %v", err)
	}
	if err := cat.Seed(ctx, entries); err != nil {
		log.Fatalf("[mcp-countdown] Failed to seed catalog: %v", err)
	}
	log.Printf("[mcp-countdown] Loaded %d deadlines", len(entries))

	s := countdownserver.NewServer(cat, nil, cfg.Countdown.ExpiredLabel)

	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`MCP Countdown Server - Deadline countdowns via MCP protocol

USAGE:
    mcp-countdown          Start MCP server (communicates via stdio)
    mcp-countdown --help   Show this help

ENVIRONMENT:
    COUNTDOWN_CONFIG  Path to configuration file
                      Default: ~/.countdown/config.yaml
    COUNTDOWN_*       Config overrides, e.g. COUNTDOWN_COUNTDOWN__EXPIRED_LABEL

TOOLS:
    list_deadlines   List deadlines with remaining time (optional kind filter)
    next_deadline    Next upcoming deadline (optional kind filter)
    remaining_time   Remaining time for a deadline id or an RFC3339 due time
    add_deadline     Add a deadline for this session (id, title, due, kind, code, location)
    remove_deadline  Remove a deadline

Deadlines live in memory only; changes are lost when the server exits.`)
}
