package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"
)

// CaptureOutput captures stdout during function execution.
// Stdout is restored even when fn panics or calls t.FailNow.
func CaptureOutput(t *testing.T, fn func()) string {
	t.Helper()

	// Swap stdout for the write end of a pipe
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	// Drain the pipe while fn runs so large outputs don't block it
	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	func() {
		defer func() {
			_ = w.Close()
			os.Stdout = oldStdout
		}()
		fn()
	}()

	return <-outC
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}

	return result
}

// ParseJSONList parses list output ({"success": true, "<key>": [...]}) and
// returns the records under key, in output order.
func ParseJSONList(t *testing.T, output, key string) []map[string]interface{} {
	t.Helper()

	result := ParseJSON(t, output)
	raw, ok := result[key].([]interface{})
	if !ok {
		t.Fatalf("JSON output has no %q list\nOutput: %s", key, output)
	}

	records := make([]map[string]interface{}, 0, len(raw))
	for i, item := range raw {
		record, ok := item.(map[string]interface{})
		if !ok {
			t.Fatalf("%s[%d] is %T, not an object", key, i, item)
		}
		records = append(records, record)
	}
	return records
}

// RecordIDs returns the "_id" of every record, as the wire format names it
func RecordIDs(records []map[string]interface{}) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		id, _ := r["_id"].(string)
		ids = append(ids, id)
	}
	return ids
}
