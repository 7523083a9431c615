package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}

	// Parse command line flags
	addr := flag.String("addr", cfg.ServerAddress, "Address to serve on")
	scenesDir := flag.String("scenes", cfg.ScenesDir, "Directory holding JSON scenes")
	flag.Parse()
	cfg.ServerAddress = *addr
	cfg.ScenesDir = *scenesDir

	var uploader *output.S3Uploader
	if cfg.S3.Enabled() {
		uploader, err = output.NewS3Uploader(cfg.S3)
		if err != nil {
			log.Printf("Error configuring S3 publishing: %v", err)
			os.Exit(1)
		}
		log.Printf("Publishing renders to bucket %s", cfg.S3.Bucket)
	} else {
		log.Printf("S3 not configured, /api/publish is disabled")
	}

	webServer := server.NewServer(cfg, uploader)

	log.Printf("Whitted Raytracer Web Server")
	if info, err := renderer.GetSystemInfo(); err == nil {
		log.Printf("System: %s", info)
	} else {
		log.Printf("System info unavailable: %v", err)
	}
	log.Printf("Serving on %s", cfg.ServerAddress)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
