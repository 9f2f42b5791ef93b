/* Copyright (c) 2025 Jira API Extractor contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	JiraBaseURL  string
	JiraEmail    string
	JiraAPIToken string

	// Custom field ids. The primary story-point field wins when both carry a
	// value; the secondary is a fallback for projects migrated between
	// estimation schemes.
	StoryPointsField    string
	StoryPointsFieldAlt string
	SprintField         string

	PageSize         int
	WorklogBatchSize int
	HTTPTimeout      time.Duration
	Workers          int

	OutputPath string
	HTTPAddr   string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" { return def }
	return v
}

func atoi(key string, def int) int {
	v := os.Getenv(key)
	if v == "" { return def }
	i, err := strconv.Atoi(v)
	if err != nil { return def }
	return i
}

func dur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" { return def }
	d, err := time.ParseDuration(v)
	if err != nil { return def }
	return d
}

// Load reads settings from the environment, sourcing a dotenv file first when
// one is present. Missing files are not an error; validation happens in
// Validate so the CLI can report all missing credentials at once.
func Load() Config {
	for _, f := range []string{"JiraExtractor.env", ".env"} {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
			break
		}
	}
	return Config{
		AppEnv:   getenv("APP_ENV", "dev"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		JiraBaseURL:  strings.TrimRight(getenv("JIRA_API_URL", ""), "/"),
		JiraEmail:    getenv("JIRA_USER_EMAIL", ""),
		JiraAPIToken: getenv("JIRA_API_TOKEN", ""),

		StoryPointsField:    getenv("JIRA_STORY_POINTS_FIELD", "customfield_10016"),
		StoryPointsFieldAlt: getenv("JIRA_STORY_POINTS_FIELD_ALT", "customfield_10026"),
		SprintField:         getenv("JIRA_SPRINT_FIELD", "customfield_10020"),

		PageSize:         atoi("JIRA_PAGE_SIZE", 100),
		WorklogBatchSize: atoi("JIRA_WORKLOG_BATCH", 1000),
		HTTPTimeout:      dur("HTTP_TIMEOUT", 30*time.Second),
		Workers:          atoi("WORKERS_JIRA", 1),

		OutputPath: getenv("EXPORT_PATH", "JiraExport.xlsx"),
		HTTPAddr:   getenv("HTTP_ADDR", ":8501"),
	}
}

// Validate checks credentials eagerly, before any network call is attempted.
func (c Config) Validate() error {
	var missing []string
	if c.JiraBaseURL == "" { missing = append(missing, "JIRA_API_URL") }
	if c.JiraEmail == "" { missing = append(missing, "JIRA_USER_EMAIL") }
	if c.JiraAPIToken == "" { missing = append(missing, "JIRA_API_TOKEN") }
	if len(missing) > 0 {
		return errors.New("missing required settings: " + strings.Join(missing, ", "))
	}
	return nil
}
