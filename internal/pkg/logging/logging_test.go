package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/ferdiebergado/tokenkit/internal/pkg/logging"
)

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := logging.SetupLogger("production", "warn", &buf)

	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("logger.Enabled(LevelInfo) = true, want: false")
	}

	logger.Warn("token rejected", "reason", "expired")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("production output is not json: %v", err)
	}

	if entry["msg"] != "token rejected" {
		t.Errorf("entry[msg] = %v, want: %q", entry["msg"], "token rejected")
	}

	buf.Reset()
	logger = logging.SetupLogger("development", "debug", &buf)
	logger.Debug("extracting token")

	if !strings.Contains(buf.String(), "msg=\"extracting token\"") {
		t.Errorf("text output = %q, want it to contain the message", buf.String())
	}
}
