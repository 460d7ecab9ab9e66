package main

import (
	"log/slog"
	"os"

	"github.com/metinatakli/ticket-inventory-system/internal/app"
)

func main() {
	cfg := app.ParseFlags()

	application, err := app.New(cfg)
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stdout, nil)).Error("failed to start application", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	err = application.Run()
	if err != nil {
		os.Exit(1)
	}
}
