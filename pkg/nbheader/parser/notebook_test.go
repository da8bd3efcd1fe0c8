package parser

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleNotebook = `{
 "cells": [
  {
   "cell_type": "markdown",
   "id": "title",
   "metadata": {},
   "source": ["# Title <b>&</b>\n", "Intro text"]
  },
  {
   "cell_type": "code",
   "execution_count": 3,
   "id": "c1",
   "metadata": {"tags": ["setup"]},
   "outputs": [],
   "source": "x = 1.50"
  }
 ],
 "metadata": {
  "kernelspec": {"display_name": "Python 3", "language": "python", "name": "python3"},
  "language_info": {"name": "python", "version": "3.11.4"}
 },
 "nbformat": 4,
 "nbformat_minor": 5,
 "x-custom": {"keep": true}
}`

func decodeAny(t *testing.T, data []byte) any {
	t.Helper()
	var v any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return v
}

func TestParse(t *testing.T) {
	nb, err := Parse([]byte(sampleNotebook))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if nb.Nbformat != 4 || nb.NbformatMinor != 5 {
		t.Errorf("Expected version 4.5, got %d.%d", nb.Nbformat, nb.NbformatMinor)
	}
	if len(nb.Cells) != 2 {
		t.Fatalf("Expected 2 cells, got %d", len(nb.Cells))
	}
	if nb.Cells[0].CellType != "markdown" || nb.Cells[0].ID != "title" {
		t.Errorf("Unexpected first cell: %+v", nb.Cells[0])
	}
	if nb.Cells[1].CellType != "code" || nb.Cells[1].ID != "c1" {
		t.Errorf("Unexpected second cell: %+v", nb.Cells[1])
	}
	if _, ok := nb.Extra["x-custom"]; !ok {
		t.Errorf("Expected unknown top-level key to be kept in Extra")
	}
	if got := Language(nb); got != "python" {
		t.Errorf("Language() = %q, expected %q", got, "python")
	}
}

func TestRoundTrip(t *testing.T) {
	nb, err := Parse([]byte(sampleNotebook))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	out, err := Serialize(nb)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	want := decodeAny(t, []byte(sampleNotebook))
	got := decodeAny(t, out)
	if !reflect.DeepEqual(want, got) {
		t.Errorf("Round trip changed the document:\nwant %v\ngot  %v", want, got)
	}

	// nbformat writer conventions
	if !strings.HasSuffix(string(out), "}\n") {
		t.Errorf("Expected trailing newline")
	}
	if !strings.Contains(string(out), "\n \"cells\": [") {
		t.Errorf("Expected single-space indentation, got:\n%s", out)
	}
	if !strings.Contains(string(out), "<b>&</b>") {
		t.Errorf("Expected HTML characters to stay unescaped, got:\n%s", out)
	}
	if !strings.Contains(string(out), "1.50") {
		t.Errorf("Expected cell content to be written verbatim")
	}

	// Serializing the re-parsed output is stable.
	nb2, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse of serialized output failed: %v", err)
	}
	out2, err := Serialize(nb2)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if string(out) != string(out2) {
		t.Errorf("Serialize is not stable:\n%s\n---\n%s", out, out2)
	}
}

func TestParseMinimalWithoutMetadata(t *testing.T) {
	nb, err := Parse([]byte(`{"nbformat": 4, "nbformat_minor": 2, "cells": []}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(nb.Cells) != 0 {
		t.Errorf("Expected no cells, got %d", len(nb.Cells))
	}
	if Language(nb) != "" {
		t.Errorf("Expected empty language")
	}

	out, err := Serialize(nb)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if strings.Contains(string(out), "metadata") {
		t.Errorf("Expected absent metadata to stay absent, got:\n%s", out)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{"not json", `not a notebook`, ErrInvalidFormat},
		{"array", `[1, 2]`, ErrInvalidFormat},
		{"null", `null`, ErrInvalidFormat},
		{"missing cells", `{"nbformat": 4, "nbformat_minor": 5}`, ErrInvalidFormat},
		{"null cells", `{"nbformat": 4, "nbformat_minor": 5, "cells": null}`, ErrInvalidFormat},
		{"cells not array", `{"nbformat": 4, "nbformat_minor": 5, "cells": {}}`, ErrInvalidFormat},
		{"missing nbformat", `{"nbformat_minor": 5, "cells": []}`, ErrInvalidFormat},
		{"missing minor", `{"nbformat": 4, "cells": []}`, ErrInvalidFormat},
		{"cell not object", `{"nbformat": 4, "nbformat_minor": 5, "cells": ["x"]}`, ErrInvalidFormat},
		{"cell without type", `{"nbformat": 4, "nbformat_minor": 5, "cells": [{"source": ""}]}`, ErrInvalidFormat},
		{"version 3", `{"nbformat": 3, "nbformat_minor": 0, "worksheets": []}`, ErrUnsupportedVersion},
	}

	for _, tt := range tests {
		_, err := Parse([]byte(tt.input))
		if !errors.Is(err, tt.expected) {
			t.Errorf("%s: Parse error = %v, expected %v", tt.name, err, tt.expected)
		}
	}
}

func TestReadWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nb.ipynb")
	if err := os.WriteFile(path, []byte(sampleNotebook), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	nb, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if err := WriteFile(path, nb, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read back: %v", err)
	}
	if !reflect.DeepEqual(decodeAny(t, []byte(sampleNotebook)), decodeAny(t, data)) {
		t.Errorf("File round trip changed the document")
	}

	if _, err := ReadFile(filepath.Join(tmpDir, "missing.ipynb")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}
