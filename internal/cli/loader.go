package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/destel/rill"

	"github.com/utkarsh5026/mrpool/internal/workload"
)

// maxParallelReads bounds the number of files read at once.
const maxParallelReads = 16

// LoadError reports an input path that could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadDocuments expands paths into regular files (directories are walked
// recursively, hidden entries skipped) and reads them concurrently.
// Documents are returned sorted by path with ids assigned in that order.
func LoadDocuments(ctx context.Context, paths []string) ([]workload.Document, error) {
	files, err := expandPaths(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &LoadError{Path: fmt.Sprint(paths), Err: fs.ErrNotExist}
	}

	docs := rill.OrderedMap(rill.FromSlice(files, nil), maxParallelReads, func(path string) (workload.Document, error) {
		if err := ctx.Err(); err != nil {
			return workload.Document{}, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return workload.Document{}, &LoadError{Path: path, Err: err}
		}
		return workload.Document{Name: path, Text: string(data)}, nil
	})

	out, err := rill.ToSlice(docs)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].ID = i
	}
	return out, nil
}

// expandPaths resolves files and directories into a sorted, de-duplicated
// list of regular files.
func expandPaths(paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, &LoadError{Path: root, Err: err}
		}
		if !info.IsDir() {
			files = append(files, filepath.Clean(root))
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return &LoadError{Path: path, Err: err}
			}
			if path != root && isHidden(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
