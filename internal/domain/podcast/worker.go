package podcast

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"wavecast-server-go/internal/domain/eventbus"
	"wavecast-server-go/internal/domain/task"
	"wavecast-server-go/internal/domain/tts"
	"wavecast-server-go/internal/domain/voice"
	platformerrors "wavecast-server-go/internal/platform/errors"
	"wavecast-server-go/internal/platform/logging"
	"wavecast-server-go/internal/platform/storage"
)

// Worker executes generation jobs on the task runtime. It owns the only code
// path that creates Podcast rows: a row exists exactly when a job succeeded.
type Worker struct {
	store           *Store
	synthesizers    tts.Factory
	audioDir        string
	defaultProvider string
	logger          *logging.Logger
}

func NewWorker(store *Store, synthesizers tts.Factory, audioDir, defaultProvider string, logger *logging.Logger) *Worker {
	return &Worker{
		store:           store,
		synthesizers:    synthesizers,
		audioDir:        audioDir,
		defaultProvider: defaultProvider,
		logger:          logger,
	}
}

// Register binds the worker to the runtime.
func (w *Worker) Register(manager *task.Manager) {
	manager.Register(TaskTypeGenerate, w.Execute)
}

// Execute builds the transcript, synthesizes every entry with its resolved
// voice, assembles the artifact, and persists the Podcast record.
func (w *Worker) Execute(t *task.Task) error {
	job, ok := t.Params.(GenerationJob)
	if !ok {
		return platformerrors.New(platformerrors.KindJob, "podcast.worker",
			"invalid generation job payload")
	}

	transcript := BuildTranscript(job.SourceContent)
	if len(transcript) == 0 {
		return platformerrors.New(platformerrors.KindJob, "podcast.worker",
			"source content produced an empty transcript")
	}

	provider := job.Provider
	if provider == "" {
		provider = w.defaultProvider
	}

	synth, err := w.synthesizers(provider)
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindJob, "podcast.worker",
			err.Error(), err)
	}

	segmentDir, err := os.MkdirTemp("", "wavecast-segments-")
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindJob, "podcast.worker",
			"failed to create working directory", err)
	}
	defer os.RemoveAll(segmentDir)

	segments := make([]string, 0, len(transcript))
	for i, entry := range transcript {
		desc := voice.Resolve(provider, entry.SpeakerID, job.VoiceOverrides[entry.SpeakerID])
		segPath := filepath.Join(segmentDir, fmt.Sprintf("segment_%03d.mp3", i))
		if err := synth.Synthesize(t.Context, tts.Request{
			Text:       entry.Dialog,
			Voice:      desc,
			OutputPath: segPath,
		}); err != nil {
			return platformerrors.Wrap(platformerrors.KindJob, "podcast.worker",
				fmt.Sprintf("synthesis failed on entry %d", i), err)
		}
		segments = append(segments, segPath)
	}

	artifactPath, err := w.assembleArtifact(t.ID, segments)
	if err != nil {
		return err
	}

	duration := 0.0
	if d, err := tts.ProbeDuration(artifactPath); err == nil {
		duration = d
	} else if w.logger != nil {
		w.logger.WarnTag("Podcast", "duration probe failed for %s: %v", artifactPath, err)
	}

	transcriptJSON, err := json.Marshal(transcript)
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindJob, "podcast.worker",
			"failed to encode transcript", err)
	}

	p := &storage.Podcast{
		SearchSpaceID:   job.SearchSpaceID,
		Title:           job.Title,
		FileLocation:    artifactPath,
		Transcript:      transcriptJSON,
		DurationSeconds: duration,
	}
	if err := w.store.Create(t.Context, p); err != nil {
		_ = os.Remove(artifactPath)
		return err
	}

	eventbus.Publish(eventbus.TopicPodcastCreated, p.ID, p.SearchSpaceID)
	if w.logger != nil {
		w.logger.InfoTag("Podcast", "podcast %d generated (%d entries, %.1fs)",
			p.ID, len(transcript), duration)
	}

	t.Result = task.Success(p.ID, p.Title, len(transcript))
	return nil
}

// assembleArtifact concatenates the mp3 segments into the final file under
// the audio directory. MP3 frames concatenate cleanly enough for playback;
// proper crossfade mixing belongs to a real audio pipeline.
func (w *Worker) assembleArtifact(jobID string, segments []string) (string, error) {
	if err := os.MkdirAll(w.audioDir, 0o755); err != nil {
		return "", platformerrors.Wrap(platformerrors.KindJob, "podcast.worker",
			"failed to create audio directory", err)
	}

	outPath := filepath.Join(w.audioDir, fmt.Sprintf("podcast_%s.mp3", jobID))
	out, err := os.Create(outPath)
	if err != nil {
		return "", platformerrors.Wrap(platformerrors.KindJob, "podcast.worker",
			"failed to create artifact file", err)
	}
	defer out.Close()

	for _, seg := range segments {
		f, err := os.Open(seg)
		if err != nil {
			return "", platformerrors.Wrap(platformerrors.KindJob, "podcast.worker",
				"failed to read audio segment", err)
		}
		_, copyErr := io.Copy(out, f)
		f.Close()
		if copyErr != nil {
			return "", platformerrors.Wrap(platformerrors.KindJob, "podcast.worker",
				"failed to assemble artifact", copyErr)
		}
	}
	return outPath, nil
}
