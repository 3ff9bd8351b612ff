package ingest

import (
	"time"

	"github.com/lib/pq"
)

// IngestRun is the audit trail for one batch-replace load. One row is
// appended per run; the kits tables themselves are rebuilt from scratch.
type IngestRun struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	SourcePath  string         `json:"source_path"`
	RawRows     int64          `json:"raw_rows"`
	CuratedRows int64          `json:"curated_rows"`
	Warnings    pq.StringArray `gorm:"type:text[]" json:"warnings"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
}

func (IngestRun) TableName() string {
	return "kit_ingest_runs"
}
