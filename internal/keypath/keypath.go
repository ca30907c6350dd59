// Package keypath splits dotted store keys into a root record key and a
// chain of object member names, and reads or rewrites the matching location
// inside a decoded JSON document.
//
// Documents are the generic trees produced by encoding/json: map[string]any
// for objects, []any for arrays, and scalars. Only object members are
// addressed; arrays are leaves.
package keypath

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Separator divides the root key from nested member names.
const Separator = "."

// Path is a parsed key. Fields is empty when the key names a whole root
// record.
type Path struct {
	Root   string
	Fields []string
}

// Parse splits key on every separator. The first segment is the root.
// The empty key names the root record "". Any other key with an empty
// segment returns types.ErrInvalidKey.
func Parse(key string) (Path, error) {
	if key == "" {
		return Path{Fields: []string{}}, nil
	}
	segments := strings.Split(key, Separator)
	for _, s := range segments {
		if s == "" {
			return Path{}, fmt.Errorf("%w: empty segment in %q", types.ErrInvalidKey, key)
		}
	}
	return Path{Root: segments[0], Fields: segments[1:]}, nil
}

// Nested reports whether the path addresses a member below the root.
func (p Path) Nested() bool {
	return len(p.Fields) > 0
}

// String joins the path back into key form.
func (p Path) String() string {
	if !p.Nested() {
		return p.Root
	}
	return p.Root + Separator + strings.Join(p.Fields, Separator)
}

// Lookup descends doc through fields. It reports false when a member is
// missing or a parent along the way is not an object.
func Lookup(doc any, fields []string) (any, bool) {
	cur := doc
	for _, f := range fields {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[f]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Splice sets value at fields inside doc and returns the updated document.
// Missing or non-object parents, the document itself included, are replaced
// by empty objects; every other member is kept. With no fields the value
// replaces the document.
func Splice(doc any, fields []string, value any) any {
	if len(fields) == 0 {
		return value
	}
	root, ok := doc.(map[string]any)
	if !ok {
		root = map[string]any{}
	}
	cur := root
	for _, f := range fields[:len(fields)-1] {
		next, ok := cur[f].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[f] = next
		}
		cur = next
	}
	cur[fields[len(fields)-1]] = value
	return root
}

// Remove deletes the member named by the last field from its parent
// object. It reports whether anything was removed; doc is modified in place
// and is otherwise unchanged.
func Remove(doc any, fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	parent, ok := Lookup(doc, fields[:len(fields)-1])
	if !ok {
		return false
	}
	obj, ok := parent.(map[string]any)
	if !ok {
		return false
	}
	last := fields[len(fields)-1]
	if _, ok := obj[last]; !ok {
		return false
	}
	delete(obj, last)
	return true
}
