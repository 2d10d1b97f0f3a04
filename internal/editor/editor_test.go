package editor

import (
	"testing"

	"github.com/Piotr1215/beam/internal/host"
)

// Editor Tests

func TestOpenMakesActiveAndVisible(t *testing.T) {
	e := New()
	doc := e.Open("a.txt", "txt", []string{"x"})

	if e.ActiveDocument() != host.Document(doc) {
		t.Error("opened document should be active")
	}
	if !e.IsVisible(doc) {
		t.Error("opened document should be visible")
	}
}

func TestOpenHiddenKeepsFocus(t *testing.T) {
	e := New()
	a := e.Open("a.txt", "", []string{"x"})
	b := e.OpenHidden("b.txt", "", []string{"y"})

	if e.ActiveDocument().ID() != a.ID() {
		t.Error("hidden open must not steal focus")
	}
	if e.IsVisible(b) {
		t.Error("hidden document should not be visible")
	}
}

func TestSwitchTo(t *testing.T) {
	e := New()
	a := e.Open("a.txt", "", []string{"x"})
	b := e.Open("b.txt", "", []string{"y"})

	if err := e.SwitchTo(a); err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}
	if e.ActiveDocument().ID() != a.ID() {
		t.Error("expected a active")
	}
	if err := e.SwitchTo(b); err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}
	if e.ActiveDocument().ID() != b.ID() {
		t.Error("expected b active")
	}
}

func TestSwitchToUnknownDocument(t *testing.T) {
	e := New()
	e.Open("a.txt", "", []string{"x"})

	other := New().Open("b.txt", "", []string{"y"})
	if err := e.SwitchTo(other); err != host.ErrDocumentNotOpen {
		t.Errorf("expected ErrDocumentNotOpen, got %v", err)
	}
}

func TestCursorPersistsPerDocument(t *testing.T) {
	e := New()
	a := e.Open("a.txt", "", []string{"one", "two", "three"})
	b := e.Open("b.txt", "", []string{"x"})

	_ = e.SwitchTo(a)
	e.SetCursor(host.Position{Line: 3, Col: 1})
	_ = e.SwitchTo(b)
	_ = e.SwitchTo(a)

	if cur := e.Cursor(); cur.Line != 3 || cur.Col != 1 {
		t.Errorf("cursor not restored, got %d:%d", cur.Line, cur.Col)
	}
}

func TestSetCursorClampsLine(t *testing.T) {
	e := New()
	e.Open("a.txt", "", []string{"one", "two"})

	e.SetCursor(host.Position{Line: 99, Col: -3})
	if cur := e.Cursor(); cur.Line != 2 || cur.Col != 0 {
		t.Errorf("expected clamp to 2:0, got %d:%d", cur.Line, cur.Col)
	}
}

func TestSaveRestoreView(t *testing.T) {
	e := New()
	a := e.Open("a.txt", "", []string{"one", "two", "three"})
	e.SetCursor(host.Position{Line: 2, Col: 1})
	saved := e.SaveView()

	e.Open("b.txt", "", []string{"x"})
	e.RestoreView(saved)

	if e.ActiveDocument().ID() != a.ID() {
		t.Error("restore should return to the saved document")
	}
	if cur := e.Cursor(); cur.Line != 2 || cur.Col != 1 {
		t.Errorf("restore should return the cursor, got %d:%d", cur.Line, cur.Col)
	}
}

func TestOpenPreviewRestores(t *testing.T) {
	e := New()
	a := e.Open("a.txt", "", []string{"one", "two"})
	b := e.Open("b.txt", "", []string{"x"})
	_ = e.SwitchTo(a)
	e.SetCursor(host.Position{Line: 2, Col: 0})

	restore, err := e.OpenPreview(b)
	if err != nil {
		t.Fatalf("OpenPreview: %v", err)
	}
	if e.ActiveDocument().ID() != b.ID() {
		t.Fatal("preview should focus the target document")
	}
	if !e.PreviewOpen() {
		t.Fatal("preview should be marked open")
	}

	restore()
	if e.ActiveDocument().ID() != a.ID() {
		t.Error("restore should return focus")
	}
	if cur := e.Cursor(); cur.Line != 2 {
		t.Errorf("restore should return the cursor, got line %d", cur.Line)
	}
	if e.PreviewOpen() {
		t.Error("preview should be closed after restore")
	}
}

func TestRegisterRoundTrip(t *testing.T) {
	e := New()
	e.SetRegister(host.Register{Text: "hello\n", Linewise: true})
	reg := e.Register()
	if reg.Text != "hello\n" || !reg.Linewise {
		t.Errorf("unexpected register %+v", reg)
	}
}

func TestSelectionAndHighlight(t *testing.T) {
	e := New()
	doc := e.Open("a.txt", "", []string{"hello"})
	r := host.Range{
		Start: host.Position{Line: 1, Col: 0},
		End:   host.Position{Line: 1, Col: 5},
	}

	e.SetSelection(doc, r)
	if got, ok := e.Selection(); !ok || got != r {
		t.Error("selection not stored")
	}
	e.ClearSelection()
	if _, ok := e.Selection(); ok {
		t.Error("selection not cleared")
	}

	e.SetHighlight(doc, r)
	if got, ok := e.Highlight(); !ok || got != r {
		t.Error("highlight not stored")
	}
	e.ClearHighlight()
	if _, ok := e.Highlight(); ok {
		t.Error("highlight not cleared")
	}
}

func TestPanelOpenNavigateClose(t *testing.T) {
	e := New()
	p, err := e.OpenPanel([]string{"a", "b", "c"}, 40)
	if err != nil {
		t.Fatalf("OpenPanel: %v", err)
	}
	if p.CursorLine() != 1 {
		t.Errorf("cursor should start at 1, got %d", p.CursorLine())
	}
	p.SetCursorLine(99)
	if p.CursorLine() != 3 {
		t.Errorf("cursor should clamp to 3, got %d", p.CursorLine())
	}
	p.SetCursorLine(0)
	if p.CursorLine() != 1 {
		t.Errorf("cursor should clamp to 1, got %d", p.CursorLine())
	}

	if e.ActivePanel() == nil {
		t.Fatal("panel should be active")
	}
	p.Close()
	if e.ActivePanel() != nil {
		t.Error("closed panel should not be active")
	}
}
