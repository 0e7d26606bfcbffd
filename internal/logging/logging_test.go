package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "text", false)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hidden")
	logger.Warn("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output: %q", out)
	}

	buf.Reset()
	logger, err = New(&buf, "json", true)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("visible", "k", 1)
	if out := buf.String(); !strings.Contains(out, `"msg":"visible"`) || !strings.Contains(out, `"k":1`) {
		t.Errorf("unexpected json output: %q", out)
	}
}

func TestNewUnknownFormat(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "xml", false); err == nil {
		t.Error("expected error for unknown format")
	}
}
