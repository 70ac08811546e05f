package internal

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

func Env(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func MustEnv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		log.Fatalf("missing env: %s", key)
	}
	return v
}

// EnvDuration and EnvInt fall back to def, with a log line, on values that
// do not parse.
func EnvDuration(key string, def time.Duration) time.Duration {
	val := Env(key, "")
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("invalid %s: %q, using default", key, val)
		return def
	}
	return d
}

func EnvInt(key string, def int) int {
	val := Env(key, "")
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("invalid %s: %q, using default", key, val)
		return def
	}
	return n
}
