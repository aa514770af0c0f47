package podcast

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"wavecast-server-go/internal/domain/task"
	"wavecast-server-go/internal/domain/tts"
	platformerrors "wavecast-server-go/internal/platform/errors"
	"wavecast-server-go/internal/platform/storage"
)

type fakeSynth struct {
	calls []tts.Request
	fail  bool
}

func (f *fakeSynth) Name() string { return "fake" }

func (f *fakeSynth) Synthesize(ctx context.Context, req tts.Request) error {
	f.calls = append(f.calls, req)
	if f.fail {
		return platformerrors.New(platformerrors.KindJob, "tts.fake", "synthesis refused")
	}
	return os.WriteFile(req.OutputPath, []byte("segment:"+req.Text+";"), 0o644)
}

func fakeFactory(s *fakeSynth) tts.Factory {
	return func(providerID string) (tts.Synthesizer, error) {
		return s, nil
	}
}

func newGenerateTask(id string, job interface{}) *task.Task {
	return &task.Task{
		ID:      id,
		Type:    TaskTypeGenerate,
		Params:  job,
		Context: context.Background(),
	}
}

func TestWorkerExecute(t *testing.T) {
	db := setupDB(t)
	synth := &fakeSynth{}
	audioDir := t.TempDir()
	worker := NewWorker(NewStore(db), fakeFactory(synth), audioDir, "openai/tts-1", nil)

	tsk := newGenerateTask("job-1", GenerationJob{
		SourceContent: "Hello there. General remarks!",
		SearchSpaceID: 7,
		Title:         "Greetings",
		Provider:      "openai/tts-1",
	})
	if err := worker.Execute(tsk); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(synth.calls) != 2 {
		t.Fatalf("expected 2 synthesis calls, got %d", len(synth.calls))
	}
	if synth.calls[0].Voice.Name != "alloy" || synth.calls[1].Voice.Name != "echo" {
		t.Errorf("voices = %q, %q", synth.calls[0].Voice.Name, synth.calls[1].Voice.Name)
	}

	outcome, ok := tsk.Result.(task.Outcome)
	if !ok {
		t.Fatalf("result type %T", tsk.Result)
	}
	if outcome.Status != task.StatusSuccess {
		t.Fatalf("status = %q", outcome.Status)
	}
	if outcome.Title != "Greetings" {
		t.Errorf("title = %q", outcome.Title)
	}
	if outcome.TranscriptEntries != 2 {
		t.Errorf("transcript entries = %d", outcome.TranscriptEntries)
	}

	var p storage.Podcast
	if err := db.First(&p, outcome.PodcastID).Error; err != nil {
		t.Fatalf("fetch podcast: %v", err)
	}
	if p.SearchSpaceID != 7 {
		t.Errorf("search space = %d", p.SearchSpaceID)
	}
	if !strings.Contains(p.FileLocation, "podcast_job-1.mp3") {
		t.Errorf("file location = %q", p.FileLocation)
	}

	var entries []TranscriptEntry
	if err := json.Unmarshal(p.Transcript, &entries); err != nil {
		t.Fatalf("decode transcript: %v", err)
	}
	if len(entries) != 2 || entries[0].SpeakerID != 0 || entries[1].SpeakerID != 1 {
		t.Errorf("transcript = %+v", entries)
	}

	data, err := os.ReadFile(p.FileLocation)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	want := "segment:Hello there.;segment:General remarks!;"
	if string(data) != want {
		t.Errorf("artifact = %q, want %q", data, want)
	}
}

func TestWorkerExecuteVoiceOverride(t *testing.T) {
	db := setupDB(t)
	synth := &fakeSynth{}
	worker := NewWorker(NewStore(db), fakeFactory(synth), t.TempDir(), "openai/tts-1", nil)

	tsk := newGenerateTask("job-2", GenerationJob{
		SourceContent:  "First line. Second line.",
		SearchSpaceID:  1,
		Title:          "Overridden",
		Provider:       "openai/tts-1",
		VoiceOverrides: map[int]string{1: "nova"},
	})
	if err := worker.Execute(tsk); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if synth.calls[0].Voice.Name != "alloy" {
		t.Errorf("speaker 0 voice = %q", synth.calls[0].Voice.Name)
	}
	if synth.calls[1].Voice.Name != "nova" {
		t.Errorf("speaker 1 voice = %q", synth.calls[1].Voice.Name)
	}
}

func TestWorkerExecuteFailures(t *testing.T) {
	db := setupDB(t)

	t.Run("invalid payload", func(t *testing.T) {
		worker := NewWorker(NewStore(db), fakeFactory(&fakeSynth{}), t.TempDir(), "openai", nil)
		err := worker.Execute(newGenerateTask("bad", "not a job"))
		if !platformerrors.IsKind(err, platformerrors.KindJob) {
			t.Fatalf("expected job kind, got %v", err)
		}
	})

	t.Run("empty transcript", func(t *testing.T) {
		worker := NewWorker(NewStore(db), fakeFactory(&fakeSynth{}), t.TempDir(), "openai", nil)
		err := worker.Execute(newGenerateTask("empty", GenerationJob{SourceContent: "   "}))
		if !platformerrors.IsKind(err, platformerrors.KindJob) {
			t.Fatalf("expected job kind, got %v", err)
		}
	})

	t.Run("synthesis failure creates no record", func(t *testing.T) {
		worker := NewWorker(NewStore(db), fakeFactory(&fakeSynth{fail: true}), t.TempDir(), "openai", nil)
		err := worker.Execute(newGenerateTask("fail", GenerationJob{
			SourceContent: "Doomed content.",
			SearchSpaceID: 1,
			Title:         "Doomed",
		}))
		if err == nil {
			t.Fatal("expected error")
		}
		var count int64
		if err := db.Model(&storage.Podcast{}).Count(&count).Error; err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 0 {
			t.Errorf("expected no podcast rows, got %d", count)
		}
	})
}
