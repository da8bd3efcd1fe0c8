package nbheader

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/nbheader-go/pkg/nbheader/models"
	"github.com/ukaji3/nbheader-go/pkg/nbheader/parser"
	"go.uber.org/zap"
)

type stagedNotebook struct {
	path string
	data []byte
	perm fs.FileMode
	tmp  string
}

// injectAtomic splices and serializes every target in memory before touching
// the disk, then writes them through temporary files and renames.
func injectAtomic(targets []string, header []models.Cell, opts Options) ([]string, error) {
	log := opts.logger()

	staged := make([]*stagedNotebook, 0, len(targets))
	for _, path := range targets {
		nb, err := readNotebook(path)
		if err != nil {
			return nil, err
		}
		if err := InsertHeader(nb, header, opts); err != nil {
			return nil, NewNotebookError(path, "inject", err)
		}
		data, err := parser.Serialize(nb)
		if err != nil {
			return nil, NewNotebookError(path, "write", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, NewNotebookError(path, "read", err)
		}
		staged = append(staged, &stagedNotebook{path: path, data: data, perm: info.Mode().Perm()})
	}

	for i, s := range staged {
		tmp, err := writeTemp(s.path, s.data, s.perm)
		if err != nil {
			removeTemps(staged[:i])
			return nil, NewNotebookError(s.path, "write", err)
		}
		s.tmp = tmp
	}

	rewritten := make([]string, 0, len(staged))
	for i, s := range staged {
		if err := os.Rename(s.tmp, s.path); err != nil {
			removeTemps(staged[i:])
			return rewritten, NewNotebookError(s.path, "write", err)
		}
		rewritten = append(rewritten, s.path)
		log.Debug("injected header", zap.String("path", s.path), zap.Bool("atomic", true))
	}
	return rewritten, nil
}

// writeTemp writes data next to path under a dot-file name, so the temporary
// file is never picked up by ListTargets.
func writeTemp(path string, data []byte, perm fs.FileMode) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Chmod(perm); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return tmp, nil
}

func removeTemps(staged []*stagedNotebook) {
	for _, s := range staged {
		if s.tmp != "" {
			os.Remove(s.tmp)
		}
	}
}
