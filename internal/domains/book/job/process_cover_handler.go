package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared"
)

// ProcessCoverHandler renders the medium and thumbnail variants of a cover.
type ProcessCoverHandler struct {
	covers service.CoverService
}

func NewProcessCoverHandler(covers service.CoverService) *ProcessCoverHandler {
	return &ProcessCoverHandler{covers: covers}
}

func (h *ProcessCoverHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CoverPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ProcessCover payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Int64("book_id", payload.BookID).
		Str("key", payload.Key).
		Msg("Processing cover variants")

	if err := h.covers.ProcessVariants(ctx, payload.Key); err != nil {
		log.Error().
			Err(err).
			Int64("book_id", payload.BookID).
			Str("key", payload.Key).
			Msg("Failed to process cover")
		return fmt.Errorf("process cover: %w", err)
	}
	return nil
}
