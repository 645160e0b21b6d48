package rawfmt_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"pkt.systems/rawfmt"
)

type renderCase struct {
	name   string
	format string
	args   []any
	want   string
}

var renderCases = []renderCase{
	{"plain", "hello world\n", nil, "hello world\n"},
	{"empty", "", nil, ""},
	{"negative", "%d", []any{-5}, "-5"},
	{"zero", "%d", []any{0}, "0"},
	{"i", "%i", []any{-12}, "-12"},
	{"width", "%5d", []any{42}, "   42"},
	{"left", "%-5d", []any{42}, "42   "},
	{"zero pad", "%05d", []any{42}, "00042"},
	{"zero pad negative", "%05d", []any{-42}, "00-42"},
	{"left zero pad", "%-05d|", []any{42}, "42000|"},
	{"width smaller than content", "%2d", []any{12345}, "12345"},
	{"hex lower", "%x", []any{uint(255)}, "ff"},
	{"hex upper", "%X", []any{255}, "FF"},
	{"hex negative int", "%x", []any{-1}, "ffffffff"},
	{"hex long", "%lx", []any{int64(-1)}, "ffffffffffffffff"},
	{"hex ll", "%llX", []any{uint64(0xdeadbeefcafe)}, "DEADBEEFCAFE"},
	{"int truncates to 32 bits", "%d", []any{int64(1<<32 + 5)}, "5"},
	{"long min", "%ld", []any{int64(math.MinInt64)}, "-9223372036854775808"},
	{"long long", "%lld", []any{-1}, "-1"},
	{"char size sign extends", "%hhd", []any{255}, "-1"},
	{"char size positive", "%hhd", []any{127}, "127"},
	{"short size sign extends", "%hd", []any{65535}, "-1"},
	{"short hex truncates", "%hx", []any{0x12345}, "2345"},
	{"char hex truncates", "%hhx", []any{0x1ff}, "ff"},
	{"size_t", "%zx", []any{uintptr(255)}, "ff"},
	{"ptrdiff", "%td", []any{-7}, "-7"},
	{"octal", "%o", []any{8}, "10"},
	{"octal zero", "%o", []any{0}, "0"},
	// %o sign-extends but prints unsigned digits
	{"octal negative", "%o", []any{-1}, "1777777777777777777777"},
	{"octal negative short", "%ho", []any{-8}, "1777777777777777777770"},
	{"string", "%s", []any{"hello"}, "hello"},
	{"string width", "%10s", []any{"hi"}, "        hi"},
	{"string left", "%-4s|", []any{"a"}, "a   |"},
	{"string stops at NUL", "%s|", []any{"ab\x00cd"}, "ab|"},
	{"string bytes", "%s", []any{[]byte("raw")}, "raw"},
	{"string error", "%s", []any{errors.New("boom")}, "boom"},
	{"string missing", "[%s]", nil, "[]"},
	{"string precision inert", "%8.3s", []any{"abcdef"}, "  abcdef"},
	{"char", "%c", []any{'A'}, "A"},
	{"char low byte", "%c", []any{0x141}, "A"},
	{"char ignores modifier", "%hhc%c", []any{'x', 'y'}, "xy"},
	{"char NUL", "[%c]", []any{0}, "[]"},
	{"char NUL padded", "[%3c]", []any{0}, "[   ]"},
	{"pointer", "%p", []any{uintptr(0xdeadbeef)}, "0xdeadbeef"},
	{"pointer nil", "%p", []any{nil}, "0x0"},
	{"pointer width", "%12p", []any{uintptr(0x1f)}, "        0x1f"},
	{"pointer zero pad", "%012p", []any{uintptr(0x1f)}, "000000000x1f"},
	{"plus flag inert", "%+d", []any{5}, "5"},
	{"space flag inert", "% d", []any{5}, "5"},
	{"both sign flags inert", "%+ d", []any{5}, "5"},
	{"precision inert", "%.3d", []any{7}, "7"},
	{"precision without digits", "%.d", []any{7}, "7"},
	{"width and precision", "%6.2x", []any{255}, "    ff"},
	{"percent literal", "100%%", nil, "100%"},
	{"percent literal padded", "%5%", nil, "    %"},
	{"percent takes no argument", "%%%d", []any{3}, "%3"},
	{"trailing percent", "abc%", nil, "abc%"},
	{"trailing percent after flags", "abc%-0", nil, "abc%"},
	{"trailing percent after directive", "%d%", []any{1}, "1%"},
	{"unknown conversion is empty", "<%q>", []any{1}, "<>"},
	{"unknown conversion consumes argument", "%q%d", []any{1, 2}, "2"},
	{"unknown conversion padded", "<%4q>", []any{1}, "<    >"},
	{"format ends inside directive", "x%5", []any{1}, "x     "},
	{"format ends after modifier", "x%l", []any{1}, "x"},
	{"format ends after hh", "x%hh", []any{1}, "x"},
	{"missing integer", "%d/%x", nil, "0/0"},
	{"bool", "%d", []any{true}, "1"},
	{"mixed", "%s() - %d: fd=%d\n", []any{"open", 42, 7}, "open() - 42: fd=7\n"},
}

func TestRenderCases(t *testing.T) {
	for _, tc := range renderCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rawfmt.Sprintf(tc.format, tc.args...); got != tc.want {
				t.Fatalf("Sprintf(%q) = %q want %q", tc.format, got, tc.want)
			}
		})
	}
}

type recordingSink struct {
	sends   [][]byte
	repeats int
}

func (r *recordingSink) Send(p []byte) {
	r.sends = append(r.sends, append([]byte(nil), p...))
}

func (r *recordingSink) String() string {
	var b strings.Builder
	for _, s := range r.sends {
		b.Write(s)
	}
	return b.String()
}

type repeatingSink struct {
	recordingSink
}

func (r *repeatingSink) SendRepeat(b byte, n int) {
	r.repeats++
	r.Send([]byte(strings.Repeat(string(b), n)))
}

func TestRenderNeverSendsEmptyRuns(t *testing.T) {
	formats := []string{"", "%d", "%d%d", "a%db", "%s", "%c", "%q", "%%"}
	for _, format := range formats {
		var sink recordingSink
		rawfmt.Render(&sink, format, rawfmt.NewArgs(1, 0, ""))
		for i, s := range sink.sends {
			if len(s) == 0 {
				t.Fatalf("format %q: send %d was empty", format, i)
			}
		}
	}
}

func TestRenderLiteralRunIsOneSend(t *testing.T) {
	var sink recordingSink
	rawfmt.Render(&sink, "abc%ddef", rawfmt.NewArgs(1))
	want := []string{"abc", "1", "def"}
	if len(sink.sends) != len(want) {
		t.Fatalf("sends %q want %q", sink.sends, want)
	}
	for i, w := range want {
		if string(sink.sends[i]) != w {
			t.Fatalf("send %d = %q want %q", i, sink.sends[i], w)
		}
	}
}

func TestRenderPadsInChunksWithoutRepeatSink(t *testing.T) {
	var sink recordingSink
	rawfmt.Render(&sink, "%20c", rawfmt.NewArgs('x'))
	if got := sink.String(); got != strings.Repeat(" ", 19)+"x" {
		t.Fatalf("unexpected output %q", got)
	}
	wantLens := []int{8, 8, 3, 1}
	if len(sink.sends) != len(wantLens) {
		t.Fatalf("send count %d want %d", len(sink.sends), len(wantLens))
	}
	for i, n := range wantLens {
		if len(sink.sends[i]) != n {
			t.Fatalf("send %d had %d bytes want %d", i, len(sink.sends[i]), n)
		}
	}
}

func TestRenderUsesRepeatSink(t *testing.T) {
	var sink repeatingSink
	rawfmt.Render(&sink, "%-40d|", rawfmt.NewArgs(7))
	if sink.repeats != 1 {
		t.Fatalf("expected one SendRepeat call, got %d", sink.repeats)
	}
	if got := sink.String(); got != "7"+strings.Repeat(" ", 39)+"|" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderNilSinkAndCursor(t *testing.T) {
	rawfmt.Render(nil, "%d %s %p", nil)

	var sink recordingSink
	rawfmt.Render(&sink, "%d %s %p", nil)
	if got := sink.String(); got != "0  0x0" {
		t.Fatalf("nil cursor output %q", got)
	}
}

func TestRenderStopsAtTrailingPercent(t *testing.T) {
	args := rawfmt.NewArgs(1, 2)
	var sink recordingSink
	rawfmt.Render(&sink, "%d and %", args)
	if got := sink.String(); got != "1 and %" {
		t.Fatalf("unexpected output %q", got)
	}
	if args.Remaining() != 1 {
		t.Fatalf("trailing percent pulled an argument; remaining %d", args.Remaining())
	}
}

func TestRenderPaddingLaw(t *testing.T) {
	contents := []string{"", "a", "abc", "hello world"}
	for _, content := range contents {
		for width := 0; width <= 16; width++ {
			for _, flags := range []string{"", "-", "0", "-0"} {
				format := "%" + flags + itoa(width) + "s"
				if width == 0 {
					format = "%" + flags + "s"
				}
				got := rawfmt.Sprintf(format, content)
				l := len(content)
				if want := max(l, width); len(got) != want {
					t.Fatalf("%q with %q: length %d want %d", format, content, len(got), want)
				}
				pad := " "
				if strings.Contains(flags, "0") {
					pad = "0"
				}
				fill := strings.Repeat(pad, max(width-l, 0))
				want := fill + content
				if strings.Contains(flags, "-") {
					want = content + fill
				}
				if got != want {
					t.Fatalf("%q with %q: got %q want %q", format, content, got, want)
				}
			}
		}
	}
}

func itoa(n int) string {
	return string(rawfmt.AppendInt(nil, int64(n), 10))
}

func TestRenderHugeWidthSaturates(t *testing.T) {
	count := 0
	rawfmt.Render(countingSink{&count}, "%99999999999999999999d", rawfmt.NewArgs(1))
	if count != math.MaxInt32 {
		t.Fatalf("expected width to saturate at %d, got %d bytes", math.MaxInt32, count)
	}
}

type countingSink struct {
	n *int
}

func (c countingSink) Send(p []byte)            { *c.n += len(p) }
func (c countingSink) SendRepeat(_ byte, n int) { *c.n += n }

func FuzzRender(f *testing.F) {
	for _, tc := range renderCases {
		f.Add(tc.format, int64(42), "str")
	}
	f.Add("%", int64(0), "")
	f.Add("%-", int64(0), "")
	f.Add("%00000000000000000000000000000000009999999999d", int64(1), "")
	f.Fuzz(func(t *testing.T, format string, n int64, s string) {
		if strings.Contains(format, "%") {
			// keep padding bounded
			if strings.ContainsAny(format, "123456789") {
				t.Skip()
			}
		}
		var sink recordingSink
		rawfmt.Render(&sink, format, rawfmt.NewArgs(n, s, n, s, n, s))
		if !strings.Contains(format, "%") && sink.String() != format {
			t.Fatalf("plain text changed: %q -> %q", format, sink.String())
		}
	})
}
