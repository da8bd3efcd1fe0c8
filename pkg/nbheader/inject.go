package nbheader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/nbheader-go/pkg/nbheader/models"
	"github.com/ukaji3/nbheader-go/pkg/nbheader/parser"
	"go.uber.org/zap"
)

// Inject inserts the cells of the header notebook into every notebook directly
// inside notebookDir, right after each notebook's first cell. Files are
// rewritten in place. It returns the paths rewritten, in directory order.
//
// Without opts.Atomic the first error stops the run: notebooks processed before
// it stay rewritten, later ones are left untouched.
func Inject(headerPath, notebookDir string, opts Options) ([]string, error) {
	log := opts.logger()

	header, err := readNotebook(headerPath)
	if err != nil {
		return nil, err
	}

	targets, err := ListTargets(notebookDir, opts.extension())
	if err != nil {
		return nil, err
	}
	targets = excludeFile(targets, headerPath)

	log.Debug("loaded header",
		zap.String("path", headerPath),
		zap.Int("cells", len(header.Cells)),
		zap.Int("targets", len(targets)))

	if opts.Atomic {
		return injectAtomic(targets, header.Cells, opts)
	}

	rewritten := make([]string, 0, len(targets))
	for _, path := range targets {
		if err := InjectFile(path, header.Cells, opts); err != nil {
			return rewritten, err
		}
		rewritten = append(rewritten, path)
	}
	return rewritten, nil
}

// InjectFile inserts header into the notebook at path and rewrites it in place.
func InjectFile(path string, header []models.Cell, opts Options) error {
	nb, err := readNotebook(path)
	if err != nil {
		return err
	}

	before := len(nb.Cells)
	if err := InsertHeader(nb, header, opts); err != nil {
		return NewNotebookError(path, "inject", err)
	}

	if err := parser.WriteFile(path, nb, 0644); err != nil {
		return NewNotebookError(path, "write", err)
	}

	opts.logger().Debug("injected header",
		zap.String("path", path),
		zap.String("language", parser.Language(nb)),
		zap.Int("cells_before", before),
		zap.Int("cells_after", len(nb.Cells)))
	return nil
}

// ListTargets returns the files directly inside dir whose name ends in ext,
// sorted by name. Directories and dot-files are skipped.
func ListTargets(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths, nil
}

func readNotebook(path string) (*models.Notebook, error) {
	nb, err := parser.ReadFile(path)
	if err == nil {
		return nb, nil
	}

	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		return nil, NewNotebookError(path, "parse", err)
	}
	if errors.Is(err, fs.ErrNotExist) {
		err = fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	return nil, NewNotebookError(path, "read", err)
}

// excludeFile drops path from paths, so a header kept next to the targets is
// never injected into itself.
func excludeFile(paths []string, path string) []string {
	info, err := os.Stat(path)
	if err != nil {
		return paths
	}

	kept := paths[:0]
	for _, p := range paths {
		if other, err := os.Stat(p); err == nil && os.SameFile(info, other) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
