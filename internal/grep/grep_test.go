package grep

import (
	"strings"
	"testing"
)

// a trimmed rg --json stream: begin, context, match, summary, plus one
// non-JSON line that must be discarded
const rgOutput = `{"type":"begin","data":{"path":{"text":"/repo/Main.java"}}}
{"type":"context","data":{"path":{"text":"/repo/Main.java"},"lines":{"text":"public class Main {\n"},"line_number":1,"absolute_offset":0,"submatches":[]}}
{"type":"match","data":{"path":{"text":"/repo/Main.java"},"lines":{"text":"    void greet() {\n"},"line_number":2,"absolute_offset":20,"submatches":[{"match":{"text":"greet"},"start":9,"end":14}]}}
not json at all
{"type":"match","data":{"path":{"text":"/repo/Util.java"},"lines":{"text":"    int greetCount;\n"},"line_number":7,"absolute_offset":130,"submatches":[{"match":{"text":"greet"},"start":8,"end":13}]}}
{"type":"end","data":{"path":{"text":"/repo/Main.java"}}}
{"type":"summary","data":{"stats":{}}}
`

func Test_Decode_MatchEventsOnly(t *testing.T) {
	c := NewClient()
	matches := c.decode([]byte(rgOutput))
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	m := matches[0]
	if m.File != "/repo/Main.java" || m.LineNumber != 2 {
		t.Fatalf("unexpected first match: %+v", m)
	}
	if m.Text != "void greet() {" {
		t.Fatalf("line text not trimmed: %q", m.Text)
	}
	if m.AbsoluteOffset != 20 {
		t.Fatalf("unexpected offset: %d", m.AbsoluteOffset)
	}
	if len(m.Submatches) != 1 || m.Submatches[0].Text != "greet" ||
		m.Submatches[0].Start != 9 || m.Submatches[0].End != 14 {
		t.Fatalf("unexpected submatches: %+v", m.Submatches)
	}

	if matches[1].File != "/repo/Util.java" || matches[1].LineNumber != 7 {
		t.Fatalf("unexpected second match: %+v", matches[1])
	}
}

func Test_Decode_Empty(t *testing.T) {
	c := NewClient()
	if got := c.decode(nil); got != nil {
		t.Fatalf("expected nil for empty output, got %+v", got)
	}
	if got := c.decode([]byte("\n\n")); got != nil {
		t.Fatalf("expected nil for blank output, got %+v", got)
	}
}

func Test_ToolError_Message(t *testing.T) {
	err := &ToolError{Code: 2, Stderr: "rg: bad flag\n"}
	if !strings.Contains(err.Error(), "code 2") || !strings.Contains(err.Error(), "bad flag") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}
