package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ThatsRight-ItsTJ/convec-api/server"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	maxUpload := flag.Int64("maxupload", 16<<20, "maximum upload size in bytes")
	cacheTTL := flag.Duration("cachettl", 10*time.Minute, "vectorization cache entry lifetime")
	parallel := flag.Int("parallel", 4, "worker count for batch removal")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if !*debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := server.New(server.Config{
		MaxUpload: *maxUpload,
		CacheTTL:  *cacheTTL,
		Parallel:  *parallel,
		Logger:    logger,
	})

	logger.Info("listening", "addr", *addr)
	if err := s.Run(*addr); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
