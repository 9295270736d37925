package services

import (
	"context"
	"time"

	"carwash/config"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/go-resty/resty/v2"
)

// MediaService talks to the external photo host. Only deletion is needed
// here: uploads happen client side and arrive as opaque references. Without
// MEDIA_BASE_URL every call is a no-op.
type MediaService struct {
	httpClient *resty.Client
	log        logger.Logger
}

type deleteMediaRequest struct {
	Ref string `json:"ref"`
}

func NewMediaService(config config.Config) *MediaService {
	service := &MediaService{log: logger.New("MediaService")}
	if config.MediaBaseURL == "" {
		return service
	}

	service.httpClient = resty.New().
		SetBaseURL(config.MediaBaseURL).
		SetTimeout(10*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(config.MediaAPIKey)

	return service
}

func (s *MediaService) Enabled() bool {
	return s != nil && s.httpClient != nil
}

// Delete removes one stored photo.
func (s *MediaService) Delete(ctx context.Context, ref string) error {
	if !s.Enabled() {
		return nil
	}
	log := s.log.Function("Delete").TraceFromContext(ctx)

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(deleteMediaRequest{Ref: ref}).
		Delete("/media")
	if err != nil {
		return log.Err("media delete request failed", err, "ref", ref)
	}

	if resp.IsError() {
		return log.Error("media host rejected delete", "ref", ref, "status", resp.StatusCode())
	}

	return nil
}

// DeleteStale removes refs in previous that are absent from next. Failures
// are logged and skipped so a flaky media host never blocks a job update.
func (s *MediaService) DeleteStale(ctx context.Context, previous, next []string) int {
	if !s.Enabled() {
		return 0
	}

	keep := make(map[string]struct{}, len(next))
	for _, ref := range next {
		keep[ref] = struct{}{}
	}

	deleted := 0
	for _, ref := range previous {
		if _, ok := keep[ref]; ok {
			continue
		}
		if err := s.Delete(ctx, ref); err != nil {
			s.log.Function("DeleteStale").Warn("failed to delete stale photo", "ref", ref, "error", err)
			continue
		}
		deleted++
	}

	return deleted
}
