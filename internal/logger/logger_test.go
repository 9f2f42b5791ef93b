package logger

import (
	"testing"

	"github.com/felipe-stanham/Jira-API-Extractor/internal/config"
	"github.com/rs/zerolog"
)

func TestNew_AppliesConfiguredLevel(t *testing.T) {
	l := New(config.Config{LogLevel: "debug"})
	if l.GetLevel() != zerolog.DebugLevel { t.Fatalf("level: %v", l.GetLevel()) }

	l = New(config.Config{LogLevel: "warn"})
	if l.GetLevel() != zerolog.WarnLevel { t.Fatalf("level: %v", l.GetLevel()) }
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	for _, lvl := range []string{"", "loud"} {
		if l := New(config.Config{LogLevel: lvl}); l.GetLevel() != zerolog.InfoLevel {
			t.Fatalf("LogLevel=%q: got %v", lvl, l.GetLevel())
		}
	}
}
