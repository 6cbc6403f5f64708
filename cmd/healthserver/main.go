package main

import (
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/stevqa/stabprobe/internal/healthapi"
	"github.com/stevqa/stabprobe/internal/logging"
)

func main() {
	addr := os.Getenv("HEALTH_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8000"
	}
	logDir := os.Getenv("STABPROBE_LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	logger, err := logging.NewLogger(logDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	srv := healthapi.NewServer(logger, os.Getenv("HEALTH_BODY"))

	logger.Info("health_listen", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		log.Fatal(err)
	}
}
