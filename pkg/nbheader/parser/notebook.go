// Package parser provides notebook (nbformat v4 JSON) reading and writing.
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ukaji3/nbheader-go/pkg/nbheader/models"
)

// SupportedMajorVersion is the only nbformat major version handled.
const SupportedMajorVersion = 4

// Indent matches the indentation nbformat uses when writing notebooks.
const Indent = " "

// ErrInvalidFormat indicates the document is not an nbformat JSON object.
var ErrInvalidFormat = errors.New("invalid notebook format")

// ErrUnsupportedVersion indicates an nbformat major version other than 4.
var ErrUnsupportedVersion = errors.New("unsupported nbformat version")

// Top-level keys modelled on models.Notebook; everything else goes to Extra.
const (
	keyNbformat      = "nbformat"
	keyNbformatMinor = "nbformat_minor"
	keyMetadata      = "metadata"
	keyCells         = "cells"
)

// ReadFile reads and parses the notebook at path.
func ReadFile(path string) (*models.Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes an nbformat v4 document. Cells are kept opaque.
func Parse(data []byte) (*models.Notebook, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: document is null", ErrInvalidFormat)
	}

	nb := &models.Notebook{}
	if err := decodeRequired(fields, keyNbformat, &nb.Nbformat); err != nil {
		return nil, err
	}
	if nb.Nbformat != SupportedMajorVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, nb.Nbformat)
	}
	if err := decodeRequired(fields, keyNbformatMinor, &nb.NbformatMinor); err != nil {
		return nil, err
	}

	if raw, ok := fields[keyMetadata]; ok {
		nb.Metadata = raw
	}

	var rawCells []json.RawMessage
	if err := decodeRequired(fields, keyCells, &rawCells); err != nil {
		return nil, err
	}
	if rawCells == nil {
		return nil, fmt.Errorf("%w: %q is not an array", ErrInvalidFormat, keyCells)
	}
	nb.Cells = make([]models.Cell, 0, len(rawCells))
	for i, raw := range rawCells {
		cell, err := parseCell(raw)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		nb.Cells = append(nb.Cells, cell)
	}

	for key, raw := range fields {
		switch key {
		case keyNbformat, keyNbformatMinor, keyMetadata, keyCells:
			continue
		}
		if nb.Extra == nil {
			nb.Extra = make(map[string]json.RawMessage)
		}
		nb.Extra[key] = raw
	}

	return nb, nil
}

func decodeRequired(fields map[string]json.RawMessage, key string, out any) error {
	raw, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: missing %q", ErrInvalidFormat, key)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidFormat, key, err)
	}
	return nil
}

// parseCell reads the cell header fields and keeps the full object in Raw.
func parseCell(raw json.RawMessage) (models.Cell, error) {
	var head struct {
		CellType *string `json:"cell_type"`
		ID       string  `json:"id"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return models.Cell{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if head.CellType == nil {
		return models.Cell{}, fmt.Errorf("%w: missing \"cell_type\"", ErrInvalidFormat)
	}
	return models.Cell{
		CellType: *head.CellType,
		ID:       head.ID,
		Raw:      raw,
	}, nil
}

// Serialize encodes a notebook the way nbformat writes it: sorted keys,
// single-space indent, no HTML escaping and a trailing newline.
func Serialize(nb *models.Notebook) ([]byte, error) {
	fields := make(map[string]any, len(nb.Extra)+4)
	for key, raw := range nb.Extra {
		fields[key] = raw
	}
	fields[keyNbformat] = nb.Nbformat
	fields[keyNbformatMinor] = nb.NbformatMinor
	if nb.Metadata != nil {
		fields[keyMetadata] = nb.Metadata
	}

	cells := make([]json.RawMessage, len(nb.Cells))
	for i, cell := range nb.Cells {
		if len(cell.Raw) == 0 {
			return nil, fmt.Errorf("cell %d has no content", i)
		}
		cells[i] = cell.Raw
	}
	fields[keyCells] = cells

	return encode(fields, Indent)
}

// WriteFile serializes nb and writes it to path.
func WriteFile(path string, nb *models.Notebook, perm os.FileMode) error {
	data, err := Serialize(nb)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

func encode(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
