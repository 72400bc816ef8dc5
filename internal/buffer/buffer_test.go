package buffer_test

import (
	"testing"

	"excise/internal/buffer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		wantLines      []string
		wantTrailingLF bool
	}{
		{
			name:           "empty content",
			content:        "",
			wantLines:      nil,
			wantTrailingLF: true,
		},
		{
			name:           "single line with newline",
			content:        "hello\n",
			wantLines:      []string{"hello"},
			wantTrailingLF: true,
		},
		{
			name:           "single line without newline",
			content:        "hello",
			wantLines:      []string{"hello"},
			wantTrailingLF: false,
		},
		{
			name:           "multiple lines",
			content:        "a\nb\nc\n",
			wantLines:      []string{"a", "b", "c"},
			wantTrailingLF: true,
		},
		{
			name:           "blank interior line",
			content:        "a\n\nc\n",
			wantLines:      []string{"a", "", "c"},
			wantTrailingLF: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buffer.New([]byte(tt.content))
			if b.Len() != len(tt.wantLines) {
				t.Fatalf("Len() = %d, want %d", b.Len(), len(tt.wantLines))
			}
			for i, want := range tt.wantLines {
				if got := b.Line(i); got != want {
					t.Errorf("Line(%d) = %q, want %q", i, got, want)
				}
			}
			if b.TrailingNewline() != tt.wantTrailingLF {
				t.Errorf("TrailingNewline() = %v, want %v", b.TrailingNewline(), tt.wantTrailingLF)
			}
		})
	}
}

func TestRenderRoundTrip(t *testing.T) {
	for _, content := range []string{"a\nb\nc\n", "a\nb", "", "one\n"} {
		b := buffer.New([]byte(content))
		if got := string(b.Render(b.Lines())); got != content {
			t.Errorf("Render(Lines()) = %q, want %q", got, content)
		}
	}
}

func TestLineIndexOfByte(t *testing.T) {
	// "ab\ncd\nef\n": line 0 starts at 0, line 1 at 3, line 2 at 6.
	b := buffer.New([]byte("ab\ncd\nef\n"))
	tests := []struct {
		offset int
		want   int
	}{
		{0, 0},
		{1, 0},
		{2, 0},
		{3, 1},
		{5, 1},
		{6, 2},
		{8, 2},
	}
	for _, tt := range tests {
		if got := b.LineIndexOfByte(tt.offset); got != tt.want {
			t.Errorf("LineIndexOfByte(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}
