package podcast

import (
	"context"
	"strings"
	"unicode/utf8"

	"wavecast-server-go/internal/domain/access"
	"wavecast-server-go/internal/domain/task"
	platformerrors "wavecast-server-go/internal/platform/errors"
	"wavecast-server-go/internal/platform/logging"
)

// Submitter is the slice of the task runtime the orchestrator needs.
type Submitter interface {
	Submit(taskType task.Type, params interface{}) (string, error)
}

// Orchestrator validates a generation request and hands it to the job
// runtime. It returns a job handle synchronously and never waits for
// synthesis.
type Orchestrator struct {
	gate      *access.Gate
	submitter Submitter
	logger    *logging.Logger
}

func NewOrchestrator(gate *access.Gate, submitter Submitter, logger *logging.Logger) *Orchestrator {
	return &Orchestrator{
		gate:      gate,
		submitter: submitter,
		logger:    logger,
	}
}

// Generate runs the Received -> Validated -> Submitted flow. The capability
// check gates entry; validation failures short-circuit before any job is
// submitted.
func (o *Orchestrator) Generate(ctx context.Context, userID uint, req GenerationRequest) (string, error) {
	if err := o.gate.Check(ctx, userID, req.SearchSpaceID, access.CapPodcastsCreate,
		"You don't have permission to create podcasts in this search space"); err != nil {
		return "", err
	}

	content, err := validateSource(req)
	if err != nil {
		return "", err
	}

	title := req.Title
	if title == "" {
		title = DefaultTitle
	}

	job := GenerationJob{
		SourceContent:  content,
		SearchSpaceID:  req.SearchSpaceID,
		Title:          title,
		StylePrompt:    req.StylePrompt,
		Provider:       req.Provider,
		VoiceOverrides: req.VoiceOverrides,
		SourceKind:     req.SourceKind,
	}

	handle, err := o.submitter.Submit(TaskTypeGenerate, job)
	if err != nil {
		return "", err
	}

	if o.logger != nil {
		o.logger.InfoTag("Podcast", "generation job %s submitted for search space %d",
			handle, req.SearchSpaceID)
	}
	return handle, nil
}

// validateSource enforces the source-kind invariant: exactly the field named
// by SourceKind must carry usable content.
func validateSource(req GenerationRequest) (string, error) {
	switch req.SourceKind {
	case SourceText:
		content := strings.TrimSpace(req.Text)
		if content == "" {
			return "", platformerrors.New(platformerrors.KindValidation, "podcast.generate",
				"text_content is required when source_type is 'text'")
		}
		return content, nil

	case SourceDocument:
		if len(req.Document) == 0 {
			return "", platformerrors.New(platformerrors.KindValidation, "podcast.generate",
				"document_file is required when source_type is 'document'")
		}
		// Binary extraction belongs to the external ETL collaborator; this
		// core only accepts documents that decode as text.
		if !utf8.Valid(req.Document) {
			return "", platformerrors.New(platformerrors.KindValidation, "podcast.generate",
				"Could not decode document. Please upload a text file.")
		}
		content := strings.TrimSpace(string(req.Document))
		if content == "" {
			return "", platformerrors.New(platformerrors.KindValidation, "podcast.generate",
				"document_file is required when source_type is 'document'")
		}
		return content, nil

	default:
		return "", platformerrors.New(platformerrors.KindValidation, "podcast.generate",
			"source_type must be 'text' or 'document'")
	}
}
