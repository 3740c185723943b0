package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/javadba/naphi"
	"github.com/javadba/naphi/internal/obs"
)

// echo mirrors the request's headers and body back to the client.
func echo(req naphi.Request) naphi.Response {
	return naphi.Response{
		Status:  naphi.StatusOK,
		Headers: req.Headers,
		Body:    req.Body,
	}
}

func main() {
	log := obs.NewLogger(zerolog.ConsoleWriter{Out: os.Stderr}, zerolog.DebugLevel)

	srv, err := naphi.NewServer(naphi.Config{
		Addr:             ":8090",
		KeepAliveTimeout: 30 * time.Second,
		Logger:           log,
	}, echo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	if err := srv.Close(); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
