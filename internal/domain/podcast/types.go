// Package podcast holds the core generation lifecycle: request validation,
// job submission, record access and artifact streaming.
package podcast

import "wavecast-server-go/internal/domain/task"

// SourceKind selects which source field of a GenerationRequest must be set.
type SourceKind string

const (
	SourceText     SourceKind = "text"
	SourceDocument SourceKind = "document"
)

// DefaultTitle is used when the caller does not name the podcast.
const DefaultTitle = "WaveCast Podcast"

// TaskTypeGenerate identifies podcast generation jobs in the task runtime.
const TaskTypeGenerate task.Type = "podcast.generate"

// GenerationRequest is the transient input of one generation call. It is
// discarded after job submission.
type GenerationRequest struct {
	SearchSpaceID  uint
	Title          string
	StylePrompt    string
	Provider       string
	VoiceOverrides map[int]string
	SourceKind     SourceKind
	Text           string
	Document       []byte
}

// GenerationJob is the payload handed to the task runtime once a request has
// been validated. Source content is already normalized to text.
type GenerationJob struct {
	SourceContent  string
	SearchSpaceID  uint
	Title          string
	StylePrompt    string
	Provider       string
	VoiceOverrides map[int]string
	SourceKind     SourceKind
}

// TranscriptEntry is one line of the two-speaker script.
type TranscriptEntry struct {
	SpeakerID int    `json:"speaker_id"`
	Dialog    string `json:"dialog"`
}
