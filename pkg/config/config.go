package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-whitted-raytracer/pkg/output"
)

// Config holds settings read from the environment and an optional .env file
type Config struct {
	ServerAddress string
	OutputDir     string
	ScenesDir     string
	BounceLimit   int // -1 keeps each scene's own limit
	NumWorkers    int // 0 = use CPU count
	Gamma         float64
	S3            output.S3Config
}

// Load reads RAYTRACER_ROOT_DIR/.env (if present) and then the process environment.
// Variables already set in the environment win over the .env file.
func Load() (*Config, error) {
	rootDir := getEnv("RAYTRACER_ROOT_DIR", ".")
	if err := godotenv.Load(filepath.Join(rootDir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	bounceLimit, err := getEnvInt("BOUNCE_LIMIT", -1)
	if err != nil {
		return nil, err
	}
	numWorkers, err := getEnvInt("NUM_WORKERS", 0)
	if err != nil {
		return nil, err
	}
	gamma, err := getEnvFloat("GAMMA", 1.0)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		OutputDir:     getEnv("OUTPUT_DIR", filepath.Join(rootDir, "output")),
		ScenesDir:     getEnv("SCENES_DIR", filepath.Join(rootDir, "scenes")),
		BounceLimit:   bounceLimit,
		NumWorkers:    numWorkers,
		Gamma:         gamma,
		S3: output.S3Config{
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Bucket:    os.Getenv("S3_BUCKET"),
			CDNURL:    os.Getenv("CDN_URL"),
		},
	}, nil
}

// getEnv returns the variable's value, or fallback when it is unset
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return f, nil
}
