package ulog

import "fmt"

// BytesPerLine is the fixed chunk width of all three dump renderers. The
// final chunk of a buffer may be shorter.
const BytesPerLine = 16

// Worst case hexdump line: pointer field, two hex groups, char margin.
const hexdumpLineCap = 18 + 3 + BytesPerLine*3 + 3 + BytesPerLine + 2

const hexDigits = "0123456789abcdef"

// stage returns the bytes to format for one chunk. When the logger's
// accessibility probe reports the region not directly byte-addressable,
// the chunk is copied into scratch first, rounded up to a 4-byte boundary
// so the copy can run word-wise on the source region.
func (l *Logger) stage(chunk []byte, scratch *[BytesPerLine + 3]byte) []byte {
	if l.accessible == nil || l.accessible(chunk) {
		return chunk
	}
	n := (len(chunk) + 3) / 4 * 4
	staged := scratch[:n]
	copy(staged, chunk)
	return staged[:len(chunk)]
}

// DumpHex logs buf at the given level as space-separated two-digit
// lowercase hex, sixteen bytes per line. An empty buffer logs nothing.
func (l *Logger) DumpHex(tag string, buf []byte, level Level) {
	if level == LevelNone || level > l.ceiling || len(buf) == 0 {
		return
	}
	var scratch [BytesPerLine + 3]byte
	line := l.pool.get()
	defer l.pool.put(line)

	for len(buf) > 0 {
		n := len(buf)
		if n > BytesPerLine {
			n = BytesPerLine
		}
		chunk := l.stage(buf[:n], &scratch)

		line.Reset()
		for _, b := range chunk {
			line.WriteByte(hexDigits[b>>4])
			line.WriteByte(hexDigits[b&0xf])
			line.WriteByte(' ')
		}
		l.Writef(level, tag, "%s", line.String())
		buf = buf[n:]
	}
}

// DumpChars logs buf at the given level as raw characters, sixteen bytes
// per line, with no escaping. The caller is responsible for the buffer
// being printable; non-printable bytes pass through as-is.
func (l *Logger) DumpChars(tag string, buf []byte, level Level) {
	if level == LevelNone || level > l.ceiling || len(buf) == 0 {
		return
	}
	var scratch [BytesPerLine + 3]byte

	for len(buf) > 0 {
		n := len(buf)
		if n > BytesPerLine {
			n = BytesPerLine
		}
		chunk := l.stage(buf[:n], &scratch)
		l.Writef(level, tag, "%s", string(chunk))
		buf = buf[n:]
	}
}

// DumpHexdump logs buf in the classic hexdump layout, one line per
// sixteen-byte chunk:
//
//	0xc000014280   45 53 50 33 32 20 69 73  20 67 72 65 61 74 2c 20  |ESP32 is great, |
//
// Pointer value, hex bytes in two groups of eight with an extra space at
// the midpoint, missing trailing bytes padded with three spaces, then a
// |...| margin rendering each byte as its character if printable, else a
// dot. Terminals narrower than about 102 columns will wrap the output.
func (l *Logger) DumpHexdump(tag string, buf []byte, level Level) {
	if level == LevelNone || level > l.ceiling || len(buf) == 0 {
		return
	}
	var scratch [BytesPerLine + 3]byte
	line := l.pool.get()
	defer l.pool.put(line)

	for off := 0; off < len(buf); off += BytesPerLine {
		n := len(buf) - off
		if n > BytesPerLine {
			n = BytesPerLine
		}
		chunk := l.stage(buf[off:off+n], &scratch)

		line.Reset()
		fmt.Fprintf(line, "%p ", &buf[off])
		for i := 0; i < BytesPerLine; i++ {
			if i&7 == 0 {
				line.WriteByte(' ')
			}
			if i < n {
				line.WriteByte(' ')
				line.WriteByte(hexDigits[chunk[i]>>4])
				line.WriteByte(hexDigits[chunk[i]&0xf])
			} else {
				line.WriteString("   ")
			}
		}
		line.WriteString("  |")
		for _, b := range chunk {
			if b >= 0x20 && b < 0x7f {
				line.WriteByte(b)
			} else {
				line.WriteByte('.')
			}
		}
		line.WriteByte('|')
		l.Writef(level, tag, "%s", line.String())
	}
}

// DumpHexInfo is DumpHex at LevelInfo.
func (l *Logger) DumpHexInfo(tag string, buf []byte) {
	l.DumpHex(tag, buf, LevelInfo)
}

// DumpCharsInfo is DumpChars at LevelInfo.
func (l *Logger) DumpCharsInfo(tag string, buf []byte) {
	l.DumpChars(tag, buf, LevelInfo)
}
