/*
Package config loads application settings from the environment.

PURPOSE:
  One place for every tunable: server port, database path, the booking
  window, and the annual vacation allowance. Values come from the
  environment with an optional .env file (godotenv); cmd/server flags can
  override them.

ENVIRONMENT KEYS:
  PORT                     HTTP port (default 8080)
  DATABASE_PATH            SQLite path, ":memory:" allowed (default planner.db)
  BOOKING_PAST_MONTHS      Booking window, months into the past (default 2)
  BOOKING_FUTURE_MONTHS    Booking window, months into the future (default 12)
  VACATION_ALLOWANCE_DAYS  Annual allowance in days (default 25)
  LOG_LEVEL                logrus level name (default info)
*/
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port          int
	DatabasePath  string
	PastMonths    int
	FutureMonths  int
	AllowanceDays int
	LogLevel      logrus.Level
}

// Load reads the .env file when present and assembles the configuration.
// A missing .env is not an error; explicit environment always wins.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not load .env file")
	}

	cfg := &Config{
		Port:          getEnvAsInt("PORT", 8080),
		DatabasePath:  getEnv("DATABASE_PATH", "planner.db"),
		PastMonths:    getEnvAsInt("BOOKING_PAST_MONTHS", 2),
		FutureMonths:  getEnvAsInt("BOOKING_FUTURE_MONTHS", 12),
		AllowanceDays: getEnvAsInt("VACATION_ALLOWANCE_DAYS", 25),
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	cfg.LogLevel = level

	return cfg
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
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
