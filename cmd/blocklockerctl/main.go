package main

import (
	"log/slog"
	"os"

	"github.com/sglre6355/blocklocker/internal/cli"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	cli.Execute()
}
