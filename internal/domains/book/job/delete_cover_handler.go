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

// DeleteCoverHandler removes a cover and its variants from object storage.
type DeleteCoverHandler struct {
	covers service.CoverService
}

func NewDeleteCoverHandler(covers service.CoverService) *DeleteCoverHandler {
	return &DeleteCoverHandler{covers: covers}
}

func (h *DeleteCoverHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CoverPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeleteCover payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	if err := h.covers.Delete(ctx, payload.Key); err != nil {
		log.Error().Err(err).Str("key", payload.Key).Msg("Failed to delete cover")
		return fmt.Errorf("delete cover: %w", err)
	}

	log.Info().Str("key", payload.Key).Msg("Cover deleted")
	return nil
}
