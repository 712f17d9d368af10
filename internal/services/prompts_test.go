package services

import (
	"strings"
	"testing"
)

func TestBuildAnalysisPrompt_LabelsMissingFields(t *testing.T) {
	prompt := buildAnalysisPrompt("", "", "")

	if !strings.Contains(prompt, "Website URL: Not provided") {
		t.Error("missing website should be labeled, not omitted")
	}
	if !strings.Contains(prompt, "Business Type: Not specified") {
		t.Error("missing business type should be labeled")
	}
	if !strings.Contains(prompt, "Main Challenges: Not specified") {
		t.Error("missing challenges should be labeled")
	}
}

func TestBuildAnalysisPrompt_IncludesProvidedFields(t *testing.T) {
	prompt := buildAnalysisPrompt("https://example.com", "surf school", "no online bookings")

	for _, want := range []string{"https://example.com", "surf school", "no online bookings"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGeminiRole(t *testing.T) {
	if geminiRole("assistant") != "model" {
		t.Error("assistant turns must map to the model role")
	}
	if geminiRole("user") != "user" {
		t.Error("user turns must stay user")
	}
	// Unknown roles degrade to user rather than failing the call.
	if geminiRole("system") != "user" {
		t.Error("unknown roles must map to user")
	}
}
