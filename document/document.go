// Package document defines the aggregate, string-valued representation of an
// instance's fields and the on-disk encodings used to persist it: a format
// (JSON or protobuf) optionally wrapped in a compression codec.
package document

import "maps"

// Document maps field names to their string form. It is read, mutated and
// rewritten as a unit; there are no partial-field writes.
type Document map[string]string

// Clone returns an independent copy. Cloning a nil Document yields an empty,
// non-nil one.
func (d Document) Clone() Document {
	if d == nil {
		return Document{}
	}
	return maps.Clone(d)
}

// Get returns the value stored under name.
func (d Document) Get(name string) (string, bool) {
	v, ok := d[name]
	return v, ok
}
