package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/planvane/allocation-advisor/loadtest/internal/stub"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	r := gin.Default()
	handler := stub.NewHandler(stub.NewCycleStorage())
	handler.Register(r)

	slog.Info("scheduler stub listening", slog.String("port", port))
	if err := r.Run(":" + port); err != nil {
		slog.Error("scheduler stub failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
