package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"Crowdfunding/internal/cli/commands"
	"Crowdfunding/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Load unified config (env + flags)
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	session := &commands.Session{Cfg: cfg, Out: os.Stdout}
	exitCode := commands.Default().Dispatch(ctx, session, flag.Args())
	if exitCode == 0 {
		return
	}
	os.Exit(exitCode)
}

func printVersion() {
	fmt.Printf("Crowdfunding CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
