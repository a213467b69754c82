package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetupWithOutput(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"WARN", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			if err := SetupWithOutput(tt.level, &buf); err != nil {
				t.Fatalf("SetupWithOutput(%q) returned unexpected error: %v", tt.level, err)
			}

			logrus.Debug("debug line")
			logrus.Info("info line")

			if got := strings.Contains(buf.String(), "debug line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(buf.String(), "info line"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
		})
	}
}

func TestSetupWithOutput_InvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	err := SetupWithOutput("loud", &buf)
	if err == nil {
		t.Fatal("SetupWithOutput() expected error for unknown level, got nil")
	}
	if !strings.Contains(err.Error(), `invalid log level "loud"`) {
		t.Errorf("error = %q", err)
	}
}
