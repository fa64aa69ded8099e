package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"unitsight/internal/geometry"
	"unitsight/internal/perception"
	"unitsight/internal/unit"
	"unitsight/internal/visibility"
)

func testModel(t *testing.T) model {
	t.Helper()
	units := []unit.Unit{
		{ID: 0, Name: "west", Position: geometry.Point{X: 0, Y: 0}, Facing: geometry.Point{X: 1}},
		{ID: 1, Name: "east", Position: geometry.Point{X: 3, Y: 0}, Facing: geometry.Point{X: -1}},
		{ID: 2, Name: "north", Position: geometry.Point{X: -0.5, Y: 3}, Facing: geometry.Point{Y: 1}},
	}
	v, err := perception.NewVision(180, 5)
	if err != nil {
		t.Fatal(err)
	}
	eng, err := visibility.NewEngine(units, v, visibility.Options{})
	if err != nil {
		t.Fatal(err)
	}
	rep, err := eng.Report(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return newModel(eng, rep)
}

func press(m model, msg tea.KeyMsg) (model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSelectionFollowsCursor(t *testing.T) {
	m := testModel(t)
	if m.selected() != 0 || !m.visible[1] || len(m.visible) != 1 {
		t.Fatalf("west should see only east, got %v", m.visible)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.selected() != 1 {
		t.Fatalf("expected cursor on east, got %d", m.selected())
	}
	if !m.visible[0] || !m.visible[2] {
		t.Fatalf("east should see west and north, got %v", m.visible)
	}
	if !strings.Contains(m.renderHeader(), "east") {
		t.Fatalf("header should name selection: %q", m.renderHeader())
	}
}

func TestToggles(t *testing.T) {
	m := testModel(t)
	m, _ = press(m, runes("m"))
	if m.showMap {
		t.Fatal("map should be hidden")
	}
	m, _ = press(m, runes("w"))
	if m.wrap {
		t.Fatal("wrap should be off")
	}
	m, _ = press(m, runes("?"))
	if !m.help || !strings.Contains(m.View(), "Key Bindings:") {
		t.Fatal("help view expected")
	}
	m, _ = press(m, runes("h"))
	if m.help {
		t.Fatal("help should close")
	}
}

func TestQuit(t *testing.T) {
	m := testModel(t)
	_, cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestViewRendersMap(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = next.(model)
	out := m.View()
	for _, want := range []string{"west", "east", "north", "3 units", ">", "<", "^"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestHeadingGlyph(t *testing.T) {
	cases := map[geometry.Point]string{
		{X: 1}:         ">",
		{Y: 1}:         "^",
		{X: -1}:        "<",
		{Y: -1}:        "v",
		{X: 1, Y: 0.9}: ">",
		{X: -1, Y: -2}: "v",
	}
	for f, want := range cases {
		if got := headingGlyph(f); got != want {
			t.Errorf("headingGlyph(%v) = %s, want %s", f, got, want)
		}
	}
}
