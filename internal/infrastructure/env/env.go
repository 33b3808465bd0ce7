// Package env reads harness settings from the process environment, seeded from
// dotenv files in the working directory.
package env

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/port/output"
)

const (
	stageKey     = "HARNESS_ENV"
	defaultStage = "local"
)

var _ output.ConfigPort = (*EnvService)(nil)

// EnvService serves settings from the environment. Values from .env never
// replace variables that are already set; .env.<stage> replaces both.
type EnvService struct {
	stage string
}

// NewEnvService loads .env and then .env.<HARNESS_ENV>. Missing files are
// normal in CI and only noted.
func NewEnvService() *EnvService {
	stage := strings.TrimSpace(os.Getenv(stageKey))
	if stage == "" {
		stage = defaultStage
	}

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("harness: .env skipped: %v", err)
	}
	overlay := ".env." + stage
	if err := godotenv.Overload(overlay); err != nil {
		log.Printf("harness: %s skipped: %v", overlay, err)
	}
	log.Printf("harness: settings stage %q", stage)

	return &EnvService{stage: stage}
}

// Stage is the HARNESS_ENV the service was loaded for.
func (e *EnvService) Stage() string {
	if e.stage == "" {
		return defaultStage
	}
	return e.stage
}

func (e *EnvService) Get(key string) string {
	v, _ := lookup(key)
	return v
}

func (e *EnvService) MustGet(key string) string {
	v, ok := lookup(key)
	if !ok {
		log.Fatalf("harness: required setting %s is not set", key)
	}
	return v
}

func (e *EnvService) GetWithDefault(key string, defaultValue string) string {
	if v, ok := lookup(key); ok {
		return v
	}
	return defaultValue
}

func (e *EnvService) GetBool(key string, defaultValue bool) bool {
	return typed(key, defaultValue, strconv.ParseBool)
}

func (e *EnvService) GetInt(key string, defaultValue int) int {
	return typed(key, defaultValue, strconv.Atoi)
}

// GetDuration accepts Go durations ("30s") or plain seconds ("30").
func (e *EnvService) GetDuration(key string, defaultValue time.Duration) time.Duration {
	return typed(key, defaultValue, parseDuration)
}

// lookup treats blank values as unset.
func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

// typed falls back to def when key is unset or does not parse.
func typed[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

func parseDuration(raw string) (time.Duration, error) {
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return time.Duration(secs) * time.Second, nil
}
