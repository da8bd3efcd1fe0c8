package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ukaji3/nbheader-go/pkg/nbheader/models"
)

// RenewCellID returns a copy of c whose "id" field is set to id.
// Every other key of the cell is kept as-is.
func RenewCellID(c models.Cell, id string) (models.Cell, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(c.Raw, &fields); err != nil {
		return models.Cell{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if fields == nil {
		return models.Cell{}, fmt.Errorf("%w: cell is null", ErrInvalidFormat)
	}

	idRaw, err := json.Marshal(id)
	if err != nil {
		return models.Cell{}, err
	}
	fields["id"] = idRaw

	raw, err := encode(fields, "")
	if err != nil {
		return models.Cell{}, err
	}
	return models.Cell{
		CellType: c.CellType,
		ID:       id,
		Raw:      bytes.TrimSuffix(raw, []byte("\n")),
	}, nil
}

// Language returns the kernel language recorded in the notebook metadata,
// or "" when none is recorded.
func Language(nb *models.Notebook) string {
	if len(nb.Metadata) == 0 {
		return ""
	}
	var meta struct {
		Kernelspec struct {
			Language string `json:"language"`
		} `json:"kernelspec"`
		LanguageInfo struct {
			Name string `json:"name"`
		} `json:"language_info"`
	}
	if err := json.Unmarshal(nb.Metadata, &meta); err != nil {
		return ""
	}
	if meta.Kernelspec.Language != "" {
		return meta.Kernelspec.Language
	}
	return meta.LanguageInfo.Name
}
