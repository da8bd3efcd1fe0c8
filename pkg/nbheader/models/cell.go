package models

import "encoding/json"

// Cell represents a single notebook cell. The cell body is opaque: Raw is
// written back as-is, CellType and ID are read-only views of it.
type Cell struct {
	// CellType is the cell kind (code, markdown, raw).
	CellType string `json:"cell_type"`
	// ID is the nbformat 4.5+ cell id (empty for older documents).
	ID string `json:"id,omitempty"`
	// Raw is the complete cell object.
	Raw json.RawMessage `json:"-"`
}
