package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"raincheck/api"
	"raincheck/datasource"
	"raincheck/geocode"
	"raincheck/pipeline"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Parse command line arguments
	port := flag.Int("port", 8080, "Port to run the server on")
	configFile := flag.String("config", "config.json", "Path to configuration file")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable API rate limiting")
	requestTimeout := flag.Duration("request-timeout", 15*time.Second, "Per-request pipeline timeout")
	flag.Parse()

	// Load configuration; environment overrides the file for credentials
	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		log.Printf("Warning: could not load %s, using defaults: %v", *configFile, err)
		config = datasource.DefaultConfig()
	}
	if key := os.Getenv("OWM_API_KEY"); key != "" {
		config.OpenWeatherMap.APIKey = key
	}

	// The forecast stage always needs an OpenWeatherMap credential.
	// A missing key is a startup error, not something to discover per request.
	if config.OpenWeatherMap.APIKey == "" {
		log.Fatal("No OpenWeatherMap API key configured (set OWM_API_KEY or openWeatherMap.apiKey)")
	}

	// Create the geocoder based on configuration
	var geocoder datasource.Geocoder
	switch config.Geocoding.Provider {
	case "openmeteo":
		geocoder = datasource.NewOpenMeteoGeocoder()
	case "openweathermap", "":
		geocoder = datasource.NewOpenWeatherMapGeocoder(config.OpenWeatherMap.APIKey)
	default:
		log.Fatalf("Unknown geocoding provider %q", config.Geocoding.Provider)
	}

	var forecasts datasource.ForecastSource = datasource.NewOpenWeatherMapSource(config.OpenWeatherMap.APIKey)

	// Apply rate limiting if enabled
	if *enableRateLimiting {
		// OpenWeatherMap free tier allows 60 calls/minute = 1 call per second
		// Allow bursts of up to 5 requests
		geocoder = datasource.NewRateLimitedGeocoder(geocoder, 1.0, 5)
		forecasts = datasource.NewRateLimitedForecastSource(forecasts, 1.0, 5)
		log.Println("Applied rate limiting to providers")
	}

	resolver := geocode.NewResolver(geocoder, config.DefaultRegion)
	p := pipeline.New(resolver, forecasts, config.Units)

	// Create API server
	server := api.NewServer(p, *port, *requestTimeout)

	// Set up channel for graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	// Start the API server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdownChan
	fmt.Printf("Shutting down due to %s signal\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}

	fmt.Println("Shutdown complete")
}
