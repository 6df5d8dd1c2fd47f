package shared

import "time"

// Asynq task types
const (
	TypeProcessCover     = "book:process_cover"
	TypeDeleteCover      = "book:delete_cover"
	TypeSweepOrphanCover = "book:sweep_orphan_covers"
)

// Queue names, ưu tiên giảm dần
const (
	QueueDefault = "default"
	QueueLow     = "low"
)

// CoverPayload identifies a stored cover object.
type CoverPayload struct {
	BookID int64  `json:"book_id,omitempty"`
	Key    string `json:"key"`
}

// SweepPayload: covers older than GraceFor and unreferenced by any book are removed.
type SweepPayload struct {
	GraceFor time.Duration `json:"grace_for"`
}

// Cache keys
const (
	// CacheKeyPublisherTitles holds the /publishers/ listing; any book or
	// publisher write must drop it.
	CacheKeyPublisherTitles = "catalog:publishers:titles"
)
