package main

import (
	"github.com/hibiken/asynq"

	bookJob "library-catalog/internal/domains/book/job"
	"library-catalog/internal/shared"
	"library-catalog/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	processCover *bookJob.ProcessCoverHandler
	deleteCover  *bookJob.DeleteCoverHandler
	sweepCovers  *bookJob.SweepCoversHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		processCover: bookJob.NewProcessCoverHandler(c.CoverService),
		deleteCover:  bookJob.NewDeleteCoverHandler(c.CoverService),
		sweepCovers:  bookJob.NewSweepCoversHandler(c.CoverService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeProcessCover, h.processCover.ProcessTask)
	mux.HandleFunc(shared.TypeDeleteCover, h.deleteCover.ProcessTask)
	mux.HandleFunc(shared.TypeSweepOrphanCover, h.sweepCovers.ProcessTask)
}
