package podcast

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"wavecast-server-go/internal/domain/access"
	platformerrors "wavecast-server-go/internal/platform/errors"
)

// Artifact is an open audio artifact ready for single-pass streaming.
type Artifact struct {
	Reader   io.ReadCloser
	Size     int64
	Filename string
}

// ArtifactStreamer locates and opens the stored audio file of a podcast.
type ArtifactStreamer struct {
	store *Store
	gate  *access.Gate
}

func NewArtifactStreamer(store *Store, gate *access.Gate) *ArtifactStreamer {
	return &ArtifactStreamer{store: store, gate: gate}
}

// Open resolves the record, enforces read access, and opens the backing
// file. A missing record or missing file is a not-found; only a failure to
// open an existing file is a storage error.
func (a *ArtifactStreamer) Open(ctx context.Context, userID, podcastID uint) (*Artifact, error) {
	p, err := a.store.Get(ctx, podcastID)
	if err != nil {
		return nil, err
	}

	if err := a.gate.Check(ctx, userID, p.SearchSpaceID, access.CapPodcastsRead,
		"You don't have permission to access podcasts in this search space"); err != nil {
		return nil, err
	}

	if p.FileLocation == "" {
		return nil, platformerrors.New(platformerrors.KindNotFound, "podcast.stream",
			"Podcast audio file not found")
	}
	info, err := os.Stat(p.FileLocation)
	if err != nil || info.IsDir() {
		return nil, platformerrors.New(platformerrors.KindNotFound, "podcast.stream",
			"Podcast audio file not found")
	}

	f, err := os.Open(p.FileLocation)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "podcast.stream",
			"Error streaming podcast", err)
	}

	return &Artifact{
		Reader:   f,
		Size:     info.Size(),
		Filename: filepath.Base(p.FileLocation),
	}, nil
}
