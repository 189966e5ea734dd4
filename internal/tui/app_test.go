package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spendy-ai/spendy/internal/tui/components"
)

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	panic("unknown key " + s)
}

func TestTabNavigationWraps(t *testing.T) {
	a := App{loaded: true}
	n := len(components.Tabs)

	for i := 0; i < n; i++ {
		m, _ := a.Update(keyMsg("tab"))
		a = m.(App)
		if a.activeTab != (i+1)%n {
			t.Fatalf("after %d tab presses activeTab = %d, want %d", i+1, a.activeTab, (i+1)%n)
		}
	}

	m, _ := a.Update(keyMsg("left"))
	a = m.(App)
	if a.activeTab != n-1 {
		t.Errorf("left from tab 0 should wrap to %d, got %d", n-1, a.activeTab)
	}
}

func TestShortcutKeysJumpToTab(t *testing.T) {
	a := App{loaded: true}

	for i, tab := range components.Tabs {
		m, _ := a.Update(keyMsg(string(tab.Key)))
		a = m.(App)
		if a.activeTab != i {
			t.Errorf("key %q selected tab %d, want %d", tab.Key, a.activeTab, i)
		}
	}
}

func TestKeysIgnoredBeforeLoad(t *testing.T) {
	a := App{}

	m, _ := a.Update(keyMsg("b"))
	a = m.(App)
	if a.activeTab != 0 {
		t.Errorf("keys before data load should be ignored, activeTab = %d", a.activeTab)
	}
}

func TestHelpTogglesAndDismisses(t *testing.T) {
	a := App{loaded: true}

	m, _ := a.Update(keyMsg("?"))
	a = m.(App)
	if !a.showHelp {
		t.Fatal("? should open help")
	}

	m, _ = a.Update(keyMsg("x"))
	a = m.(App)
	if a.showHelp {
		t.Error("any key should dismiss help")
	}
	if a.activeTab != 0 {
		t.Error("dismissing help should not change the tab")
	}
}

func TestDataLoadedKeepsSnapshotOnError(t *testing.T) {
	snap := snapshot{count: 42}
	a := App{loaded: true, snap: snap}

	m, _ := a.Update(DataLoadedMsg{Err: errSentinel})
	a = m.(App)
	if a.snap.count != 42 {
		t.Error("failed refresh should keep the previous snapshot")
	}
	if a.loadErr == nil {
		t.Error("load error should be recorded")
	}
	if a.refreshing {
		t.Error("refreshing flag should clear")
	}
}

var errSentinel = errTest("load failed")

type errTest string

func (e errTest) Error() string { return string(e) }

func TestTruncStr(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"much too long here", 8, "much to…"},
		{"héllo wörld", 6, "héllo…"},
		{"anything", 0, ""},
	}
	for _, tc := range cases {
		if got := truncStr(tc.in, tc.limit); got != tc.want {
			t.Errorf("truncStr(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestPadAndTruncateHeight(t *testing.T) {
	s := "a\nb\nc"

	padded := padHeight(s, 5)
	if n := len(strings.Split(padded, "\n")); n != 5 {
		t.Errorf("padHeight to 5 gave %d lines", n)
	}

	cut := truncateHeight(s, 2)
	if cut != "a\nb" {
		t.Errorf("truncateHeight = %q", cut)
	}

	if truncateHeight(s, 10) != s {
		t.Error("truncateHeight should be a no-op when content fits")
	}
}
