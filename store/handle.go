package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pwrlabs/dbm/document"
)

// DocumentSuffix separates the instance id from the extension in flat-layout
// document file names: <id>-data.<ext>.
const DocumentSuffix = "-data."

// Handle identifies one persistent instance. It holds no data; it only
// derives where that instance's state lives.
type Handle struct {
	typeName string
	id       string
}

// NewHandle validates typeName and id. Both must be single, non-empty path
// elements.
func NewHandle(typeName, id string) (Handle, error) {
	if err := checkElement(typeName); err != nil {
		return Handle{}, fmt.Errorf("%w: type name: %v", ErrInvalidHandle, err)
	}
	if err := checkElement(id); err != nil {
		return Handle{}, fmt.Errorf("%w: instance id: %v", ErrInvalidHandle, err)
	}
	return Handle{typeName: typeName, id: id}, nil
}

// MustHandle is NewHandle for values known to be valid.
func MustHandle(typeName, id string) Handle {
	h, err := NewHandle(typeName, id)
	if err != nil {
		panic(err)
	}
	return h
}

// NewInstanceID returns a fresh, time-ordered instance id.
func NewInstanceID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (h Handle) TypeName() string { return h.typeName }
func (h Handle) ID() string       { return h.id }

// IsZero reports whether h is the zero Handle used by the static store.
func (h Handle) IsZero() bool { return h.typeName == "" && h.id == "" }

func (h Handle) String() string {
	return h.typeName + "/" + h.id
}

// Dir returns basePath/<type>/<id>.
func (h Handle) Dir(basePath string) string {
	return filepath.Join(basePath, h.typeName, h.id)
}

// DocumentPath returns the document file location for layout and ext.
func (h Handle) DocumentPath(basePath string, layout document.Layout, ext string) string {
	if layout == document.LayoutNested {
		return filepath.Join(basePath, h.typeName, h.id, "data."+ext)
	}
	return filepath.Join(basePath, h.typeName, h.id+DocumentSuffix+ext)
}

func checkElement(s string) error {
	switch {
	case s == "":
		return fmt.Errorf("empty")
	case s == "." || s == "..":
		return fmt.Errorf("%q is not a name", s)
	case strings.ContainsAny(s, `/\`):
		return fmt.Errorf("%q contains a path separator", s)
	case strings.ContainsRune(s, 0):
		return fmt.Errorf("%q contains NUL", s)
	}
	return nil
}

// checkFieldName requires a single path element: each field is one file
// named after it, directly in the instance root.
func checkFieldName(name string) error {
	if err := checkElement(name); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	return nil
}
