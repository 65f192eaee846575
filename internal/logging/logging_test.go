package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestL_BeforeSetup(t *testing.T) {
	if L() == nil {
		t.Fatal("L() must never return nil")
	}
}

func TestBuildLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		log := build(Config{Level: tt.level})
		if !log.Core().Enabled(tt.want) {
			t.Errorf("level %q: %v should be enabled", tt.level, tt.want)
		}
		if tt.want > zapcore.DebugLevel && log.Core().Enabled(tt.want-1) {
			t.Errorf("level %q: %v should be disabled", tt.level, tt.want-1)
		}
	}
}

func TestBuildFileOutput(t *testing.T) {
	path := t.TempDir() + "/console.log"
	log := build(Config{Level: "info", Format: "json", OutputPath: path})
	log.Info("hello")
	if err := log.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
}
