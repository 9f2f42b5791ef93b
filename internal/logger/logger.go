/* Copyright (c) 2025 Jira API Extractor contributors
 * SPDX-License-Identifier: BSD-3-Clause */

// Package logger builds the process logger. Logs always go to stderr: stdout
// belongs to the progress lines the CLI prints for humans.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/felipe-stanham/Jira-API-Extractor/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func New(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel { level = zerolog.InfoLevel }

	var out io.Writer = os.Stderr
	if cfg.AppEnv == "dev" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
