// Package podcasts is the HTTP transport for the podcast generation
// lifecycle: submission, polling, record access, and audio streaming.
package podcasts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"wavecast-server-go/internal/domain/access"
	"wavecast-server-go/internal/domain/eventbus"
	"wavecast-server-go/internal/domain/podcast"
	"wavecast-server-go/internal/domain/task"
	"wavecast-server-go/internal/domain/voice"
	platformerrors "wavecast-server-go/internal/platform/errors"
	"wavecast-server-go/internal/platform/logging"
	httptransport "wavecast-server-go/internal/transport/http"
)

// Poller is the slice of the task runtime the status endpoint needs.
type Poller interface {
	Poll(ctx context.Context, handle string) (task.Outcome, error)
}

// Service wires the podcast domain onto HTTP routes.
type Service struct {
	store        *podcast.Store
	gate         *access.Gate
	orchestrator *podcast.Orchestrator
	streamer     *podcast.ArtifactStreamer
	poller       Poller
	logger       *logging.Logger
}

// NewService creates the podcast HTTP service.
func NewService(
	store *podcast.Store,
	gate *access.Gate,
	orchestrator *podcast.Orchestrator,
	streamer *podcast.ArtifactStreamer,
	poller Poller,
	logger *logging.Logger,
) (*Service, error) {
	if store == nil || gate == nil || orchestrator == nil || streamer == nil || poller == nil {
		return nil, platformerrors.New(platformerrors.KindConfig, "podcasts.new",
			"podcast service requires store, gate, orchestrator, streamer and poller")
	}
	return &Service{
		store:        store,
		gate:         gate,
		orchestrator: orchestrator,
		streamer:     streamer,
		poller:       poller,
		logger:       logger,
	}, nil
}

// Register registers the podcast routes on an authenticated group.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	router.GET("/podcasts", s.handleList)
	router.GET("/podcasts/:podcast_id", s.handleGet)
	router.DELETE("/podcasts/:podcast_id", s.handleDelete)
	router.GET("/podcasts/:podcast_id/stream", s.handleStream)
	router.GET("/podcasts/:podcast_id/audio", s.handleStream)
	router.GET("/podcasts/task/:task_id/status", s.handleTaskStatus)
	router.GET("/podcasts/tts-voices/:provider", s.handleVoices)
	router.POST("/podcasts/generate", s.handleGenerate)

	if s.logger != nil {
		s.logger.InfoTag("HTTP", "podcast routes registered")
	}
	return nil
}

func (s *Service) handleList(c *gin.Context) {
	userID, ok := httptransport.UserID(c)
	if !ok {
		httptransport.RespondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	skip, err := intQuery(c, "skip", 0)
	if err != nil {
		httptransport.RespondError(c, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}
	limit, err := intQuery(c, "limit", 100)
	if err != nil {
		httptransport.RespondError(c, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}

	var spaceID *uint
	if raw := c.Query("search_space_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httptransport.RespondError(c, http.StatusBadRequest, "Invalid search space id")
			return
		}
		id := uint(parsed)
		if err := s.gate.Check(c.Request.Context(), userID, id, access.CapPodcastsRead,
			"You don't have permission to read podcasts in this search space"); err != nil {
			httptransport.RespondDomainError(c, err)
			return
		}
		spaceID = &id
	}

	podcasts, err := s.store.List(c.Request.Context(), userID, spaceID, skip, limit)
	if err != nil {
		httptransport.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, podcasts)
}

func (s *Service) handleGet(c *gin.Context) {
	userID, ok := httptransport.UserID(c)
	if !ok {
		httptransport.RespondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	podcastID, err := podcastIDParam(c)
	if err != nil {
		httptransport.RespondError(c, http.StatusBadRequest, "Invalid podcast id")
		return
	}

	p, err := s.store.Get(c.Request.Context(), podcastID)
	if err != nil {
		httptransport.RespondDomainError(c, err)
		return
	}
	if err := s.gate.Check(c.Request.Context(), userID, p.SearchSpaceID, access.CapPodcastsRead,
		"You don't have permission to read podcasts in this search space"); err != nil {
		httptransport.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Service) handleDelete(c *gin.Context) {
	userID, ok := httptransport.UserID(c)
	if !ok {
		httptransport.RespondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	podcastID, err := podcastIDParam(c)
	if err != nil {
		httptransport.RespondError(c, http.StatusBadRequest, "Invalid podcast id")
		return
	}

	p, err := s.store.Get(c.Request.Context(), podcastID)
	if err != nil {
		httptransport.RespondDomainError(c, err)
		return
	}
	if err := s.gate.Check(c.Request.Context(), userID, p.SearchSpaceID, access.CapPodcastsDelete,
		"You don't have permission to delete podcasts in this search space"); err != nil {
		httptransport.RespondDomainError(c, err)
		return
	}

	if err := s.store.Delete(c.Request.Context(), podcastID); err != nil {
		httptransport.RespondDomainError(c, err)
		return
	}

	// The record is gone; removing the artifact is best effort.
	if p.FileLocation != "" {
		if rmErr := os.Remove(p.FileLocation); rmErr != nil && !os.IsNotExist(rmErr) && s.logger != nil {
			s.logger.WarnTag("Podcast", "failed to remove artifact %s: %v", p.FileLocation, rmErr)
		}
	}
	eventbus.Publish(eventbus.TopicPodcastDeleted, p.ID, p.SearchSpaceID)

	c.JSON(http.StatusOK, gin.H{"message": "Podcast deleted successfully"})
}

func (s *Service) handleStream(c *gin.Context) {
	userID, ok := httptransport.UserID(c)
	if !ok {
		httptransport.RespondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	podcastID, err := podcastIDParam(c)
	if err != nil {
		httptransport.RespondError(c, http.StatusBadRequest, "Invalid podcast id")
		return
	}

	artifact, err := s.streamer.Open(c.Request.Context(), userID, podcastID)
	if err != nil {
		httptransport.RespondDomainError(c, err)
		return
	}
	defer artifact.Reader.Close()

	c.DataFromReader(http.StatusOK, artifact.Size, "audio/mpeg", artifact.Reader, map[string]string{
		"Accept-Ranges":       "bytes",
		"Content-Disposition": fmt.Sprintf("inline; filename=%s", artifact.Filename),
	})
}

func (s *Service) handleTaskStatus(c *gin.Context) {
	outcome, err := s.poller.Poll(c.Request.Context(), c.Param("task_id"))
	if err != nil {
		httptransport.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func (s *Service) handleVoices(c *gin.Context) {
	provider := c.Param("provider")
	if decoded, err := url.PathUnescape(provider); err == nil {
		provider = decoded
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": provider,
		"voices":   voice.ListVoices(provider),
	})
}

func (s *Service) handleGenerate(c *gin.Context) {
	userID, ok := httptransport.UserID(c)
	if !ok {
		httptransport.RespondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	rawSpaceID := c.PostForm("search_space_id")
	spaceID, err := strconv.ParseUint(rawSpaceID, 10, 64)
	if err != nil {
		httptransport.RespondError(c, http.StatusBadRequest, "Invalid search space id")
		return
	}

	req := podcast.GenerationRequest{
		SearchSpaceID: uint(spaceID),
		Title:         c.PostForm("podcast_title"),
		StylePrompt:   c.PostForm("user_prompt"),
		Provider:      c.PostForm("tts_provider"),
		SourceKind:    podcast.SourceKind(c.DefaultPostForm("source_type", "text")),
		Text:          c.PostForm("text_content"),
	}

	overrides := make(map[int]string)
	if v := c.PostForm("speaker_0_voice"); v != "" {
		overrides[0] = v
	}
	if v := c.PostForm("speaker_1_voice"); v != "" {
		overrides[1] = v
	}
	if len(overrides) > 0 {
		req.VoiceOverrides = overrides
	}

	if file, err := c.FormFile("document_file"); err == nil && file != nil {
		f, openErr := file.Open()
		if openErr != nil {
			httptransport.RespondError(c, http.StatusBadRequest, "Could not read uploaded document")
			return
		}
		data, readErr := io.ReadAll(f)
		f.Close()
		if readErr != nil {
			httptransport.RespondError(c, http.StatusBadRequest, "Could not read uploaded document")
			return
		}
		req.Document = data
	}

	handle, err := s.orchestrator.Generate(c.Request.Context(), userID, req)
	if err != nil {
		httptransport.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  task.StatusProcessing,
		"task_id": handle,
	})
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func podcastIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("podcast_id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
