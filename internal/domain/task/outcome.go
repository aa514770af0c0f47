package task

// Outcome statuses. A handle yields processing until the job reaches one of
// the two terminal variants, after which every poll returns the same value.
const (
	StatusProcessing = "processing"
	StatusSuccess    = "success"
	StatusError      = "error"
)

// Progress labels reported while a job is non-terminal.
const (
	StatePending = "PENDING"
	StateStarted = "STARTED"
)

// ErrUnexpectedResult is the fixed message used when a job produced a result
// payload that is not a terminal Outcome.
const ErrUnexpectedResult = "Unexpected task result format"

// Outcome is the tagged result of polling a job handle: exactly one of
// processing/success/error.
type Outcome struct {
	Status            string `json:"status"`
	State             string `json:"state,omitempty"`
	PodcastID         uint   `json:"podcast_id,omitempty"`
	Title             string `json:"title,omitempty"`
	TranscriptEntries int    `json:"transcript_entries,omitempty"`
	Error             string `json:"error,omitempty"`
}

// Terminal reports whether the outcome will never change again.
func (o Outcome) Terminal() bool {
	return o.Status == StatusSuccess || o.Status == StatusError
}

// Processing builds the non-terminal variant with a progress label.
func Processing(state string) Outcome {
	return Outcome{Status: StatusProcessing, State: state}
}

// Success builds the terminal success variant. transcriptEntries is the
// entry count of the produced transcript.
func Success(podcastID uint, title string, transcriptEntries int) Outcome {
	return Outcome{
		Status:            StatusSuccess,
		PodcastID:         podcastID,
		Title:             title,
		TranscriptEntries: transcriptEntries,
	}
}

// Failure builds the terminal error variant.
func Failure(message string) Outcome {
	if message == "" {
		message = "Task failed"
	}
	return Outcome{Status: StatusError, Error: message}
}

// Normalize coerces an arbitrary job result into a terminal Outcome.
// Anything that is not already a terminal Outcome becomes a fixed error
// variant; raw internal shapes never leak to the polling boundary.
func Normalize(result any) Outcome {
	switch oc := result.(type) {
	case Outcome:
		if oc.Terminal() {
			return oc
		}
	case *Outcome:
		if oc != nil && oc.Terminal() {
			return *oc
		}
	}
	return Failure(ErrUnexpectedResult)
}
