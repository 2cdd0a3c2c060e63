// Command barcode-server serves the encoder API over HTTP.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/printforge/barcode-engine/internal/api"
)

// Version is set during build via ldflags
var Version = "dev"

func main() {
	port := flag.String("port", "", "listen port (default: SERVER_PORT env or 12212)")
	flag.Parse()

	addr := fmt.Sprintf("0.0.0.0:%s", resolvePort(*port))

	server := api.NewServer()

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("barcode-engine %s listening on %s", Version, addr)
		if err := server.Run(addr); err != nil {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrChan:
		log.Fatalf("Server error: %v", err)
	case sig := <-sigChan:
		log.Printf("Received %v, shutting down", sig)
	}
}

func resolvePort(flagPort string) string {
	if flagPort != "" {
		return flagPort
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		return port
	}
	return "12212"
}
