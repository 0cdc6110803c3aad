package exec

import (
	"bytes"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StreamingWriter prefixes and styles each complete line written to it.
type StreamingWriter struct {
	prefix string
	style  lipgloss.Style
	writer io.Writer
	// Buffer for incomplete lines
	buffer []byte
}

// NewStreamingWriter creates a formatted output writer
func NewStreamingWriter(writer io.Writer, prefix string, color lipgloss.Color) *StreamingWriter {
	return &StreamingWriter{
		prefix: prefix,
		style:  lipgloss.NewStyle().Foreground(color),
		writer: writer,
	}
}

// Write formats and writes output line by line
func (s *StreamingWriter) Write(p []byte) (int, error) {
	s.buffer = append(s.buffer, p...)

	for {
		i := bytes.IndexByte(s.buffer, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimRight(string(s.buffer[:i]), "\r")
		s.buffer = s.buffer[i+1:]
		if _, err := io.WriteString(s.writer, s.formatLine(line)+"\n"); err != nil {
			return 0, err
		}
	}

	return len(p), nil
}

// Flush writes any remaining buffered content
func (s *StreamingWriter) Flush() error {
	if len(s.buffer) == 0 {
		return nil
	}
	_, err := io.WriteString(s.writer, s.formatLine(string(s.buffer))+"\n")
	s.buffer = s.buffer[:0]
	return err
}

func (s *StreamingWriter) formatLine(line string) string {
	return s.style.Render(s.prefix + line)
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	limit int
	buf   []byte
}

func newTailBuffer(limit int) *tailBuffer {
	return &tailBuffer{limit: limit}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.limit; over > 0 {
		t.buf = t.buf[over:]
	}
	return len(p), nil
}

func (t *tailBuffer) Len() int       { return len(t.buf) }
func (t *tailBuffer) String() string { return string(t.buf) }
