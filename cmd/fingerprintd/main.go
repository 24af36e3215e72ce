// fingerprintd serves the fingerprint engine over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/p4nthera115/fingerprint-erc8004/internal/api"
	"github.com/p4nthera115/fingerprint-erc8004/internal/fingerprint"
	"github.com/p4nthera115/fingerprint-erc8004/internal/scan"
)

func main() {
	addr := flag.String("addr", envDefault("FINGERPRINTD_ADDR", ":8090"), "listen address")
	flag.Parse()

	server := api.NewServer(fingerprint.SHA256Digester{})

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server_starting addr=%s engine_version=%s", *addr, scan.EngineVersion)
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server_failed error=%v", err)
		}
	case sig := <-sigCh:
		log.Printf("server_stopping signal=%s", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Printf("server_shutdown_error error=%v", err)
		}
	}

	log.Println("server_stopped")
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
