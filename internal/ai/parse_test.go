package ai

import "testing"

type sample struct {
	Flag  bool    `json:"flag"`
	Score float64 `json:"score"`
	Note  string  `json:"note"`
}

func TestDecodeJSONPlainObject(t *testing.T) {
	t.Parallel()

	var out sample
	raw := `{"flag": true, "score": 0.9, "note": "ok"}`
	if err := DecodeJSON(raw, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Flag || out.Score != 0.9 || out.Note != "ok" {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestDecodeJSONHandlesCodeBlock(t *testing.T) {
	t.Parallel()

	var out sample
	raw := "```json\n{\"flag\": \"true\", \"score\": \"0.8\", \"note\": \"fenced\"}\n```"
	if err := DecodeJSON(raw, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Flag {
		t.Fatalf("expected quoted boolean to decode, got %+v", out)
	}

	if out.Score != 0.8 {
		t.Fatalf("expected quoted number to decode, got %v", out.Score)
	}
}

func TestDecodeJSONRejectsNonJSON(t *testing.T) {
	t.Parallel()

	var out sample
	if err := DecodeJSON("I am sorry, I cannot answer that.", &out); err == nil {
		t.Fatal("expected error for non-JSON input")
	}
}

func TestExtractJSONBareFence(t *testing.T) {
	t.Parallel()

	raw := "```\n{\"flag\": false}\n```"
	if got := ExtractJSON(raw); got != `{"flag": false}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}
