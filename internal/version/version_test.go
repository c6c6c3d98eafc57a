package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestPlainAndColored(t *testing.T) {
	if got := Plain(); got != "0.1.0-dev" {
		t.Fatalf("Plain() = %q", got)
	}
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()
	if got := Colored(); got != Plain() {
		t.Fatalf("Colored() without color = %q, want %q", got, Plain())
	}
}
