package format

import (
	"bytes"
	"testing"
)

func TestJSONFormatterWritesOneLine(t *testing.T) {
	var buf bytes.Buffer
	payload := map[string]string{"url": "http://localhost/abc"}

	if err := (JSONFormatter{}).Write(&buf, payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := buf.String(); got != "{\"url\":\"http://localhost/abc\"}\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
