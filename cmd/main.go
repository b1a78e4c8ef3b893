package main

import (
	"context"
	"fmt"
	"os"

	"github.com/openpress/openpress-backend/internal/app"
)

func main() {
	application, err := app.New(context.Background())
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	application.Log.Info("Server starting", "port", application.Cfg.Port)
	if err := application.Run(); err != nil {
		application.Log.Error("Server failed", "error", err)
	}
}
