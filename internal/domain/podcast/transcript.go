package podcast

import "strings"

// maxTranscriptEntries bounds the script length so a pasted book does not
// turn into hours of synthesis.
const maxTranscriptEntries = 50

// BuildTranscript turns source content into an alternating two-speaker
// script. Paragraph breaks are the primary segmentation; long single
// paragraphs are split on sentence boundaries. The style prompt influences
// script generation in the external agent; here it is accepted and ignored
// beyond validation, matching the decode-as-text scope of this service.
func BuildTranscript(content string) []TranscriptEntry {
	var chunks []string
	for _, para := range strings.Split(content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		chunks = append(chunks, splitSentences(para)...)
	}

	entries := make([]TranscriptEntry, 0, len(chunks))
	for i, chunk := range chunks {
		if i >= maxTranscriptEntries {
			break
		}
		entries = append(entries, TranscriptEntry{
			SpeakerID: i % 2,
			Dialog:    chunk,
		})
	}
	return entries
}

// splitSentences breaks a paragraph into sentence-sized chunks, keeping the
// terminator with its sentence.
func splitSentences(paragraph string) []string {
	var out []string
	var b strings.Builder
	for _, r := range paragraph {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(b.String()); s != "" {
				out = append(out, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		out = append(out, s)
	}
	return out
}
