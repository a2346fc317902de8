package domain

import (
	"errors"
	"time"
)

// ErrExportNotFound is returned for an unknown export ID.
var ErrExportNotFound = errors.New("export not found")

// ExportRecord indexes one export file written by the export endpoint.
// FrameCount and CellCount are zero when the file body could not be decoded.
type ExportRecord struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	FrameCount int       `json:"frameCount"`
	CellCount  int       `json:"cellCount"`
	SizeBytes  int64     `json:"sizeBytes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type ExportStore interface {
	UpsertExport(r *ExportRecord) error
	GetExport(id string) (*ExportRecord, error)
	ListExports() ([]ExportRecord, error)
	ListExportsBefore(t time.Time) ([]ExportRecord, error)
	DeleteExport(id string) error
}
