package breakdown

import (
	"strings"
	"testing"

	"github.com/mohammad-safakhou/breakdown/internal/research"
)

func TestComposePrompt_NoPages(t *testing.T) {
	prompt := ComposePrompt("plan a birthday party", nil)
	if !strings.Contains(prompt, "plan a birthday party") {
		t.Fatal("task missing from prompt")
	}
	if !strings.Contains(prompt, noContextPlaceholder) {
		t.Fatal("expected no-context placeholder")
	}
	for _, contract := range []string{`"tasks"`, "estimatedTimeMinutes", "priority", "dependsOn", "8-15", "15 and 120"} {
		if !strings.Contains(prompt, contract) {
			t.Fatalf("schema contract %q missing from prompt", contract)
		}
	}
}

func TestComposePrompt_UsesAtMostThreePages(t *testing.T) {
	pages := []research.Page{
		{Title: "one", URL: "https://a", Text: "alpha"},
		{Title: "two", URL: "https://b", Text: "beta"},
		{Title: "three", URL: "https://c", Text: "gamma"},
		{Title: "four", URL: "https://d", Text: "delta"},
	}
	prompt := ComposePrompt("task", pages)
	if !strings.Contains(prompt, "Source 3: three") {
		t.Fatal("third source missing")
	}
	if strings.Contains(prompt, "Source 4") || strings.Contains(prompt, "delta") {
		t.Fatal("fourth page should not appear in prompt")
	}
	if strings.Contains(prompt, noContextPlaceholder) {
		t.Fatal("placeholder should not appear when pages exist")
	}
}

func TestComposePrompt_TruncatesPageText(t *testing.T) {
	long := strings.Repeat("x", maxSourceChars+500)
	prompt := ComposePrompt("task", []research.Page{{Title: "big", URL: "https://a", Text: long}})
	if strings.Contains(prompt, long) {
		t.Fatal("page text was not truncated")
	}
	if !strings.Contains(prompt, strings.Repeat("x", maxSourceChars)) {
		t.Fatal("truncated text missing")
	}
}
