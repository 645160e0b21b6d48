package rawfmt_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"pkt.systems/rawfmt"
)

type testWriterFunc func([]byte) (int, error)

func (fn testWriterFunc) Write(p []byte) (int, error) {
	return fn(p)
}

func TestFprintf(t *testing.T) {
	var out bytes.Buffer
	n, err := rawfmt.Fprintf(&out, "%s=%-4d|%x", "answer", 42, 255)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); got != "answer=42  |ff" {
		t.Fatalf("unexpected output %q", got)
	}
	if n != out.Len() {
		t.Fatalf("count %d want %d", n, out.Len())
	}
}

func TestFprintfStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	w := testWriterFunc(func(p []byte) (int, error) {
		calls++
		if calls == 2 {
			return 1, boom
		}
		return len(p), nil
	})
	n, err := rawfmt.Fprintf(w, "ab%scd%d", "xyz", 5)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if n != 3 {
		t.Fatalf("count %d want 3", n)
	}
	if calls != 2 {
		t.Fatalf("writes after failure: %d calls", calls)
	}
}

func TestFprintfShortWrite(t *testing.T) {
	w := testWriterFunc(func(p []byte) (int, error) {
		return len(p) - 1, nil
	})
	_, err := rawfmt.Fprintf(w, "abcd")
	if !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("expected io.ErrShortWrite, got %v", err)
	}
}

func TestAppendReusesDestination(t *testing.T) {
	dst := []byte("prefix:")
	dst = rawfmt.Append(dst, "%d,%d", 1, 2)
	dst = rawfmt.Append(dst, ";%s", "end")
	if got := string(dst); got != "prefix:1,2;end" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestWriterSinkAndBufferSink(t *testing.T) {
	var buf rawfmt.BufferSink
	rawfmt.Render(&buf, "%-6s|%06x", rawfmt.NewArgs("ab", 0xbeef))
	if got := buf.String(); got != "ab    |00beef" {
		t.Fatalf("buffer sink got %q", got)
	}
	if buf.Len() != len("ab    |00beef") {
		t.Fatalf("buffer len %d", buf.Len())
	}
	buf.Reset()
	if buf.Len() != 0 {
		t.Fatalf("reset left %d bytes", buf.Len())
	}

	sink := rawfmt.NewWriterSink(nil)
	rawfmt.Render(sink, "%20d", rawfmt.NewArgs(1))
	if sink.Written() != 20 || sink.Err() != nil {
		t.Fatalf("discarding writer sink: %d %v", sink.Written(), sink.Err())
	}

	rawfmt.Render(rawfmt.Discard, "%100s", rawfmt.NewArgs("gone"))
}
