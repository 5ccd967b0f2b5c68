package profile

import (
	"strings"
	"testing"
)

func TestTextContainsAllSections(t *testing.T) {
	t.Parallel()

	text := Default().Text()

	sections := []string{
		"## Profile Summary",
		"## Work Experience",
		"## Education",
		"## Technical Skills",
		"## Certifications",
		"## Projects",
		"## Languages",
		"## Organizations & Volunteering",
	}

	for _, section := range sections {
		if !strings.Contains(text, section) {
			t.Fatalf("expected section %q in profile text", section)
		}
	}

	if !strings.HasPrefix(text, "# Deniz Büyükşahin") {
		t.Fatalf("expected profile header, got: %q", text[:40])
	}
}

func TestTextRendersExperienceHighlights(t *testing.T) {
	t.Parallel()

	text := Default().Text()

	if !strings.Contains(text, "### AI & Product Engineer (Contract) at RTN House (01/2026 – Present)") {
		t.Fatalf("expected experience heading in profile text")
	}

	if !strings.Contains(text, "  - Integrated Google Gemini LLM") {
		t.Fatalf("expected highlight bullet in profile text")
	}
}

func TestTextIncludesGPAOnlyWhenPresent(t *testing.T) {
	t.Parallel()

	text := Default().Text()

	if !strings.Contains(text, "GPA: 3.39 - High Honor Graduate") {
		t.Fatalf("expected GPA for the programming degree")
	}

	if strings.Contains(text, "Computer Engineering (English), Akdeniz University (2024 – Present) — GPA") {
		t.Fatalf("did not expect GPA suffix for the engineering degree")
	}
}
