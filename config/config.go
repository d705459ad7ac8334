// Package config loads server settings from the environment, an optional
// .env file and command-line flags, in increasing order of precedence.
package config

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/warp/retro-payroll/factory"
	"github.com/warp/retro-payroll/generic"
)

type Config struct {
	Port           int
	MaxRows        int
	Workers        int
	DefaultCycle   generic.Cycle
	AllowedOrigins []string
	LogLevel       logrus.Level
}

// Load reads .env when present, then the environment, then args.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return fromEnv(args)
}

func fromEnv(args []string) (*Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	port := fs.Int("port", getEnvAsInt("PORT", 8080), "HTTP server port")
	maxRows := fs.Int("max-rows", getEnvAsInt("MAX_ROWS", factory.DefaultMaxRows), "maximum rows per batch")
	workers := fs.Int("workers", getEnvAsInt("WORKERS", runtime.NumCPU()), "concurrent records per batch")
	cycle := fs.String("cycle", getEnv("CYCLE_DEFAULT", string(generic.CycleMonthly)), "payroll cycle used when a request names none")
	origins := fs.String("origins", getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080"), "comma-separated CORS origins")
	level := fs.String("log-level", getEnv("LOG_LEVEL", "info"), "log level")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	c, err := generic.ParseCycle(*cycle)
	if err != nil {
		return nil, fmt.Errorf("invalid CYCLE_DEFAULT: %w", err)
	}
	lvl, err := logrus.ParseLevel(*level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if *maxRows <= 0 {
		return nil, fmt.Errorf("invalid MAX_ROWS: %d", *maxRows)
	}

	return &Config{
		Port:           *port,
		MaxRows:        *maxRows,
		Workers:        *workers,
		DefaultCycle:   c,
		AllowedOrigins: splitList(*origins),
		LogLevel:       lvl,
	}, nil
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(name string, defaultVal int) int {
	if val, err := strconv.Atoi(getEnv(name, "")); err == nil {
		return val
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
