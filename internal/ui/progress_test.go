package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestProgressModelCounts(t *testing.T) {
	events := make(chan Event)
	m := NewProgressModel("gen frame", 12, events).(*progressModel)
	for i := range 10 {
		m.Update(eventMsg(Event{Index: i, Label: "frame", Bytes: 4, Short: i%2 == 0}))
	}
	m.Update(eventMsg(Event{Index: 10, Label: "frame", Status: StatusError}))

	if m.done != 10 || m.failed != 1 || m.short != 5 || m.bytes != 40 {
		t.Fatalf("counters done=%d failed=%d short=%d bytes=%d", m.done, m.failed, m.short, m.bytes)
	}
	if len(m.recent) != recentRows || m.recent[len(m.recent)-1].Index != 10 {
		t.Fatalf("recent rows = %+v", m.recent)
	}
	view := m.View()
	for _, want := range []string{"gen frame (11/12)", "40 bytes", "5 below OUT_MIN", "1 failed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m.Update(doneMsg{})
	if !strings.Contains(m.View(), "done: gen frame") {
		t.Error("closed model should render done header")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"out/frame-1234.bin", 10, "out/fra..."},
		{"日本語のファイル", 9, "日本語..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.width)
		if got != tt.want || runewidth.StringWidth(got) > tt.width {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
