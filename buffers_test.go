package ulog

import (
	"bytes"
	"strings"
	"testing"
)

// dumpLogger returns a verbose-everything logger so dump output depends
// only on the renderer under test.
func dumpLogger(opts ...Option) (*Logger, *capture) {
	opts = append(opts, WithDefaultLevel(LevelVerbose))
	return newCaptureLogger(opts...)
}

// message strips the "L (ts) tag: " prefix and trailing newline.
func message(t *testing.T, line string) string {
	t.Helper()
	idx := strings.Index(line, ": ")
	if idx < 0 {
		t.Fatalf("malformed line %q", line)
	}
	return strings.TrimSuffix(line[idx+2:], "\n")
}

func TestDumpEmptyBuffer(t *testing.T) {
	logger, c := dumpLogger()
	logger.DumpHex("t", nil, LevelInfo)
	logger.DumpChars("t", []byte{}, LevelInfo)
	logger.DumpHexdump("t", nil, LevelInfo)
	if c.count() != 0 {
		t.Fatalf("empty buffers must emit nothing, got %d lines", c.count())
	}
}

func TestDumpChunking(t *testing.T) {
	logger, c := dumpLogger()
	logger.DumpHex("t", make([]byte, 40), LevelInfo)

	lines := c.all()
	if len(lines) != 3 {
		t.Fatalf("40 bytes should produce 3 lines, got %d", len(lines))
	}
	// 16, 16 and 8 bytes, three characters of hex output each.
	wantLens := []int{16 * 3, 16 * 3, 8 * 3}
	for i, line := range lines {
		if got := len(message(t, line)); got != wantLens[i] {
			t.Errorf("line %d: message length %d, want %d", i, got, wantLens[i])
		}
	}
}

func TestDumpHexRendering(t *testing.T) {
	logger, c := dumpLogger()
	logger.DumpHex("t", []byte{0x00, 0xFF, 0x41}, LevelInfo)

	lines := c.all()
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if got := message(t, lines[0]); got != "00 ff 41 " {
		t.Errorf("hex rendering = %q, want %q", got, "00 ff 41 ")
	}
}

func TestDumpCharsRendering(t *testing.T) {
	logger, c := dumpLogger()
	logger.DumpChars("t", []byte("ABC"), LevelInfo)

	lines := c.all()
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if got := message(t, lines[0]); got != "ABC" {
		t.Errorf("char rendering = %q, want %q", got, "ABC")
	}
}

func TestDumpHexdumpRendering(t *testing.T) {
	logger, c := dumpLogger()
	logger.DumpHexdump("t", bytes.Repeat([]byte{0x41}, 16), LevelInfo)

	lines := c.all()
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	msg := message(t, lines[0])
	if !strings.Contains(msg, "|AAAAAAAAAAAAAAAA|") {
		t.Errorf("missing char margin in %q", msg)
	}
	// Two groups of eight hex bytes with the extra midpoint separator.
	if !strings.Contains(msg, " 41 41 41 41 41 41 41 41  41 41 41 41 41 41 41 41") {
		t.Errorf("missing grouped hex bytes in %q", msg)
	}
	if !strings.HasPrefix(msg, "0x") {
		t.Errorf("missing pointer field in %q", msg)
	}
}

func TestDumpHexdumpShortFinalChunk(t *testing.T) {
	logger, c := dumpLogger()
	buf := append(bytes.Repeat([]byte{0x41}, 16), []byte{0x42, 0x00, 0x43}...)
	logger.DumpHexdump("t", buf, LevelInfo)

	lines := c.all()
	if len(lines) != 2 {
		t.Fatalf("19 bytes should produce 2 lines, got %d", len(lines))
	}
	msg := message(t, lines[1])
	// Unfilled slots render as three spaces, non-printables as dots.
	if !strings.Contains(msg, " 42 00 43      ") {
		t.Errorf("missing padded hex in %q", msg)
	}
	if !strings.Contains(msg, "|B.C|") {
		t.Errorf("missing char margin in %q", msg)
	}
}

func TestDumpCeilingShortCircuit(t *testing.T) {
	logger, c := dumpLogger(WithCeiling(LevelInfo))
	logger.DumpHex("t", []byte{1, 2, 3}, LevelDebug)
	logger.DumpHexdump("t", []byte{1, 2, 3}, LevelVerbose)
	if c.count() != 0 {
		t.Fatalf("dumps above the ceiling must emit nothing, got %d", c.count())
	}
}

func TestDumpRuntimeThresholdPerLine(t *testing.T) {
	logger, c := dumpLogger()
	logger.SetLevel("quiet", LevelWarn)
	logger.DumpHex("quiet", make([]byte, 40), LevelInfo)
	if c.count() != 0 {
		t.Fatalf("per-line dispatch must drop all lines, got %d", c.count())
	}
}

func TestDumpStagedCopyMatchesDirect(t *testing.T) {
	buf := []byte("ESP32 is great, working along with the IDF.\x00")

	direct, dc := dumpLogger()
	direct.DumpHex("t", buf, LevelInfo)

	staged, sc := dumpLogger(WithAccessibilityProbe(func([]byte) bool { return false }))
	staged.DumpHex("t", buf, LevelInfo)

	dm, sm := dc.all(), sc.all()
	if len(dm) != len(sm) {
		t.Fatalf("line counts differ: %d vs %d", len(dm), len(sm))
	}
	for i := range dm {
		if message(t, dm[i]) != message(t, sm[i]) {
			t.Errorf("line %d differs: %q vs %q", i, dm[i], sm[i])
		}
	}
}

func TestDumpInfoHelpers(t *testing.T) {
	logger, c := dumpLogger()
	logger.SetLevel("t", LevelInfo)
	logger.DumpHexInfo("t", []byte{0xAB})
	logger.DumpCharsInfo("t", []byte("ok"))

	lines := c.all()
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if message(t, lines[0]) != "ab " || message(t, lines[1]) != "ok" {
		t.Errorf("unexpected output: %q", lines)
	}
}
