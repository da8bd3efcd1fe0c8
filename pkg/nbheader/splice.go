package nbheader

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"
	"github.com/ukaji3/nbheader-go/pkg/nbheader/models"
	"github.com/ukaji3/nbheader-go/pkg/nbheader/parser"
)

// InsertHeader rebuilds the cell sequence of target as
// [target[0]] + header + target[1:].
// It returns ErrEmptyNotebook, leaving target untouched, when target has no cells.
// Injecting the same header twice inserts it twice.
func InsertHeader(target *models.Notebook, header []models.Cell, opts Options) error {
	if len(target.Cells) == 0 {
		return ErrEmptyNotebook
	}

	inserted, err := copyHeaderCells(header, opts.RenewIDs)
	if err != nil {
		return err
	}

	cells := make([]models.Cell, 0, len(target.Cells)+len(inserted))
	cells = append(cells, target.Cells[0])
	cells = append(cells, inserted...)
	cells = append(cells, target.Cells[1:]...)
	target.Cells = cells
	return nil
}

// copyHeaderCells gives each target its own copy of the header cells.
func copyHeaderCells(header []models.Cell, renewIDs bool) ([]models.Cell, error) {
	var cells []models.Cell
	if err := deepcopy.Copy(&cells, &header); err != nil {
		return nil, fmt.Errorf("copy header cells: %w", err)
	}
	if !renewIDs {
		return cells, nil
	}

	for i, cell := range cells {
		// Cells of nbformat < 4.5 documents have no id and must not gain one.
		if cell.ID == "" {
			continue
		}
		renewed, err := parser.RenewCellID(cell, newCellID())
		if err != nil {
			return nil, fmt.Errorf("header cell %d: %w", i, err)
		}
		cells[i] = renewed
	}
	return cells, nil
}

// newCellID returns an 8 hex digit id, the form nbformat generates.
func newCellID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:4])
}
