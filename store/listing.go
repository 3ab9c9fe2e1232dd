package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ListInstances returns the sorted instance ids persisted under
// basePath/<typeName>. Directories name ids directly; document files have
// their "-data.<ext>" suffix stripped. Hidden entries are ignored and a
// missing type directory yields no ids.
func ListInstances(basePath, typeName string) ([]string, error) {
	if err := checkElement(typeName); err != nil {
		return nil, fmt.Errorf("%w: type name: %v", ErrInvalidHandle, err)
	}

	dir := filepath.Join(basePath, typeName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadFailed, dir, err)
	}

	seen := make(map[string]struct{}, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		id := name
		if !e.IsDir() {
			i := strings.LastIndex(name, DocumentSuffix)
			if i <= 0 {
				continue
			}
			id = name[:i]
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	slices.Sort(ids)
	return ids, nil
}
