package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/goliatone/go-rentalcontract/pkg/standalone"
)

func main() {
	assets := flag.String("assets", "", "built asset directory to bundle (embedded stylesheet when empty)")
	out := flag.String("out", "dist-standalone", "output directory")
	server := flag.String("server", defaultServer(), "path to the rentalcontract-server binary")
	port := flag.Int("port", standalone.DefaultPort, "port the bundled server listens on")
	name := flag.String("name", standalone.DefaultName, "bundle name")
	version := flag.String("version", standalone.DefaultVersion, "bundle version")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	manifest, err := standalone.Package(ctx, standalone.Options{
		AssetsDir:    *assets,
		OutputDir:    *out,
		ServerBinary: *server,
		Name:         *name,
		Version:      *version,
		Port:         *port,
	})
	if err != nil {
		log.Fatalf("Failed to create bundle: %v", err)
	}
	fmt.Printf("Version standalone %s %s créée dans %s (démarrage : %s)\n",
		manifest.Name, manifest.Version, *out, manifest.Scripts["start"])
}

// defaultServer looks for the server binary next to this executable.
func defaultServer() string {
	exe, err := os.Executable()
	if err != nil {
		return "rentalcontract-server"
	}
	return filepath.Join(filepath.Dir(exe), "rentalcontract-server")
}
