package stream

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestBOMSkippingReader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("VOL1173922")...),
			expected: "VOL1173922",
		},
		{
			name:     "file without BOM",
			input:    []byte("VOL1173922"),
			expected: "VOL1173922",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM at start",
			input:    []byte{0xEF, 0xBB, 'a', 'b', 'c'},
			expected: string([]byte{0xEF, 0xBB, 'a', 'b', 'c'}),
		},
		{
			name:     "shorter than a BOM",
			input:    []byte("ab"),
			expected: "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := io.ReadAll(NewBOMSkippingReader(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestBOMSkippingReaderPropagatesError(t *testing.T) {
	want := errors.New("read failed")
	_, err := io.ReadAll(NewBOMSkippingReader(failingReader{want}))
	if !errors.Is(err, want) {
		t.Fatalf("got %v, want %v", err, want)
	}
}

func TestCountingReader(t *testing.T) {
	data := []byte("0123456789")
	r := NewCountingReader(bytes.NewReader(data), int64(len(data)))

	buf := make([]byte, 4)
	if _, err := r.Read(buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.BytesRead != 4 || r.Progress() != 40 {
		t.Errorf("BytesRead/Progress = %d/%d, want 4/40", r.BytesRead, r.Progress())
	}

	if _, err := io.ReadAll(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Progress() != 100 {
		t.Errorf("Progress = %d, want 100", r.Progress())
	}

	if NewCountingReader(bytes.NewReader(data), 0).Progress() != 0 {
		t.Error("Progress with unknown total should be 0")
	}
}

func TestWrap(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("HDR1\n")...)
	r := Wrap(bytes.NewReader(input), int64(len(input)))

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "HDR1\n" {
		t.Errorf("got %q", out)
	}
	if r.BytesRead != 5 {
		t.Errorf("BytesRead = %d, want 5 (BOM excluded)", r.BytesRead)
	}
}
