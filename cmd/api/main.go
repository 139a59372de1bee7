package main

import (
	"log/slog"
	"os"

	"github.com/metinatakli/cinema-booking/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		slog.Error("cinema booking service stopped", "error", err)
		os.Exit(1)
	}
}
