package helpdoc

import (
	"strings"
	"testing"
)

func TestRenderWrapsAndCaches(t *testing.T) {
	body := "# Title\n\nSome **bold** help text."
	out1 := Render(body, 40)
	if out1 == "" {
		t.Fatal("expected non-empty rendered output")
	}
	out2 := Render(body, 40)
	if out1 != out2 {
		t.Errorf("cached render differs: %q vs %q", out1, out2)
	}
}

func TestRenderDefaultsWidthWhenNonPositive(t *testing.T) {
	out := Render("text", 0)
	if !strings.Contains(out, "text") {
		t.Errorf("got %q", out)
	}
}
