package podcast

import (
	"strings"
	"testing"
)

func TestBuildTranscriptAlternatesSpeakers(t *testing.T) {
	content := "First paragraph.\n\nSecond paragraph.\n\nThird paragraph.\n\nFourth paragraph."
	entries := BuildTranscript(content)

	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.SpeakerID != i%2 {
			t.Errorf("entry %d: speaker = %d, want %d", i, e.SpeakerID, i%2)
		}
	}
	if entries[0].Dialog != "First paragraph." {
		t.Errorf("entry 0 dialog = %q", entries[0].Dialog)
	}
}

func TestBuildTranscriptSplitsSentences(t *testing.T) {
	content := "One sentence. Another sentence! A question? Trailing fragment"
	entries := BuildTranscript(content)

	want := []string{"One sentence.", "Another sentence!", "A question?", "Trailing fragment"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, e := range entries {
		if e.Dialog != want[i] {
			t.Errorf("entry %d dialog = %q, want %q", i, e.Dialog, want[i])
		}
	}
}

func TestBuildTranscriptSkipsBlankParagraphs(t *testing.T) {
	entries := BuildTranscript("Hello.\n\n   \n\nWorld.")
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Dialog != "World." {
		t.Errorf("entry 1 dialog = %q", entries[1].Dialog)
	}
}

func TestBuildTranscriptCapsEntries(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString("A sentence here. ")
	}
	entries := BuildTranscript(b.String())
	if len(entries) != maxTranscriptEntries {
		t.Fatalf("expected %d entries, got %d", maxTranscriptEntries, len(entries))
	}
}

func TestBuildTranscriptEmptyContent(t *testing.T) {
	if entries := BuildTranscript("   \n\n  "); len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}
