package buffer

import (
	"bufio"
	"bytes"
	"sort"
	"strings"
)

// Buffer holds the input file as an ordered sequence of lines. It is built
// once from the raw file content and never mutated; the engine scans it
// forward by index.
type Buffer struct {
	lines           []string
	lineOffsets     []int // precomputed byte-offset where each line begins
	trailingNewline bool
}

// New splits content into lines and records the byte offset where each line
// begins. The trailing-newline convention of the input is remembered so the
// rewritten output can reproduce it.
func New(content []byte) *Buffer {
	b := &Buffer{
		lineOffsets:     buildLineOffsets(content),
		trailingNewline: len(content) == 0 || content[len(content)-1] == '\n',
	}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		b.lines = append(b.lines, scanner.Text())
	}
	return b
}

// FromLines builds a Buffer directly from lines (no trailing '\n' on each).
func FromLines(lines []string) *Buffer {
	b := &Buffer{trailingNewline: true}
	b.lines = append(b.lines, lines...)
	offset := 0
	for _, line := range lines {
		b.lineOffsets = append(b.lineOffsets, offset)
		offset += len(line) + 1
	}
	if len(b.lineOffsets) == 0 {
		b.lineOffsets = []int{0}
	}
	return b
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Line returns the line at index i, without its trailing newline.
func (b *Buffer) Line(i int) string {
	return b.lines[i]
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	cpy := make([]string, len(b.lines))
	copy(cpy, b.lines)
	return cpy
}

// LineIndexOfByte returns the 0-based line index that contains offset (byte
// index in the original content).
func (b *Buffer) LineIndexOfByte(offset int) int {
	i := sort.Search(len(b.lineOffsets), func(i int) bool {
		return b.lineOffsets[i] > offset
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

// TrailingNewline reports whether the original content ended with '\n'.
func (b *Buffer) TrailingNewline() bool {
	return b.trailingNewline
}

// Render joins lines back into file content, reproducing the buffer's
// trailing-newline convention.
func (b *Buffer) Render(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	joined := strings.Join(lines, "\n")
	if b.trailingNewline {
		joined += "\n"
	}
	return []byte(joined)
}

// buildLineOffsets returns a slice of byte offsets where each line begins.
func buildLineOffsets(content []byte) []int {
	offsets := []int{0}
	for i, c := range content {
		if c == '\n' && i+1 < len(content) {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
