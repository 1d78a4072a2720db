package stream

import "strings"

// LineReader reassembles newline-delimited records from arbitrarily-chunked
// reads. Network chunks split records at any byte offset; the reader owns
// the carried-over remainder so callers never see a partial line.
type LineReader struct {
	remainder strings.Builder
}

// Feed appends a chunk and returns every line completed by it, in order.
// The trailing fragment without a terminating newline is retained for the
// next call.
func (lr *LineReader) Feed(chunk []byte) []string {
	if len(chunk) == 0 {
		return nil
	}

	data := lr.remainder.String() + string(chunk)
	lr.remainder.Reset()

	var lines []string
	start := 0
	for i := 0; i < len(data); i++ {
		if data[i] == '\n' {
			line := data[start:i]
			line = strings.TrimSuffix(line, "\r")
			lines = append(lines, line)
			start = i + 1
		}
	}
	if start < len(data) {
		lr.remainder.WriteString(data[start:])
	}
	return lines
}

// Flush returns any retained fragment and clears it. Called once at end of
// stream so a final unterminated record is not lost.
func (lr *LineReader) Flush() (string, bool) {
	if lr.remainder.Len() == 0 {
		return "", false
	}
	line := strings.TrimSuffix(lr.remainder.String(), "\r")
	lr.remainder.Reset()
	return line, true
}

// Pending reports whether a partial line is being carried
func (lr *LineReader) Pending() bool {
	return lr.remainder.Len() > 0
}
