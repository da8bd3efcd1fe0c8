// Package models defines data structures for notebook documents.
package models

import "encoding/json"

// Notebook represents an nbformat document: document-level fields plus an
// ordered sequence of cells.
type Notebook struct {
	// Nbformat is the major format version.
	Nbformat int `json:"nbformat"`
	// NbformatMinor is the minor format version.
	NbformatMinor int `json:"nbformat_minor"`
	// Metadata is the document metadata as found in the file (nil if absent).
	Metadata json.RawMessage `json:"metadata,omitempty"`
	// Cells is the ordered cell sequence.
	Cells []Cell `json:"cells"`
	// Extra holds any other top-level keys, kept verbatim.
	Extra map[string]json.RawMessage `json:"-"`
}
