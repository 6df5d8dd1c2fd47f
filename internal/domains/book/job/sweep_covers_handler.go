package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared"
)

const defaultSweepGrace = 24 * time.Hour

// SweepCoversHandler deletes stored covers no book points at, e.g. uploads
// whose insert failed after the discard also failed.
type SweepCoversHandler struct {
	covers service.CoverService
}

func NewSweepCoversHandler(covers service.CoverService) *SweepCoversHandler {
	return &SweepCoversHandler{covers: covers}
}

func (h *SweepCoversHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload := shared.SweepPayload{GraceFor: defaultSweepGrace}
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
		}
	}
	if payload.GraceFor <= 0 {
		payload.GraceFor = defaultSweepGrace
	}

	removed, err := h.covers.SweepOrphans(ctx, payload.GraceFor)
	if err != nil {
		log.Error().Err(err).Int("removed", removed).Msg("Cover sweep failed")
		return fmt.Errorf("sweep covers: %w", err)
	}
	return nil
}
