package evaluator

import (
	"strings"
)

// List is a mutable ordered sequence. Values hold a *List, so every
// binding of the same list observes in-place updates.
type List struct {
	Elements []Object
}

func NewList(elements []Object) *List {
	return &List{Elements: elements}
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Len() int         { return len(l.Elements) }

func (l *List) Inspect() string { return l.inspect(nil) }

func (l *List) inspect(seen map[Object]bool) string {
	if seen[l] {
		return "[...]"
	}
	if len(l.Elements) == 0 {
		return "[ ]"
	}
	if seen == nil {
		seen = make(map[Object]bool)
	}
	seen[l] = true
	defer delete(seen, l)

	var out strings.Builder
	out.WriteString("[ ")
	for i, el := range l.Elements {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(inspectNested(el, seen))
	}
	out.WriteString(" ]")
	return out.String()
}

// DictEntry is one key/value mapping of a Dict.
type DictEntry struct {
	Key   Hashable
	Value Object
}

// Dict is a mutable mapping from hashable keys to values. Entries keep
// insertion order; overwriting a key keeps its original position.
type Dict struct {
	entries []DictEntry
	index   map[HashKey]int
}

func NewDict() *Dict {
	return &Dict{index: make(map[HashKey]int)}
}

func (d *Dict) Type() ObjectType { return DICT_OBJ }
func (d *Dict) Len() int         { return len(d.entries) }

// Get returns the value stored under key.
func (d *Dict) Get(key Hashable) (Object, bool) {
	i, ok := d.index[key.HashKey()]
	if !ok {
		return nil, false
	}
	return d.entries[i].Value, true
}

// Put inserts or overwrites the mapping for key.
func (d *Dict) Put(key Hashable, value Object) {
	hk := key.HashKey()
	if i, ok := d.index[hk]; ok {
		d.entries[i].Value = value
		return
	}
	d.index[hk] = len(d.entries)
	d.entries = append(d.entries, DictEntry{Key: key, Value: value})
}

// Keys returns a snapshot of the keys in insertion order.
func (d *Dict) Keys() []Hashable {
	keys := make([]Hashable, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Key
	}
	return keys
}

func (d *Dict) Inspect() string { return d.inspect(nil) }

func (d *Dict) inspect(seen map[Object]bool) string {
	if seen[d] {
		return "{...}"
	}
	if len(d.entries) == 0 {
		return "{ }"
	}
	if seen == nil {
		seen = make(map[Object]bool)
	}
	seen[d] = true
	defer delete(seen, d)

	var out strings.Builder
	out.WriteString("{ ")
	for i, e := range d.entries {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(inspectNested(e.Key, seen))
		out.WriteString(": ")
		out.WriteString(inspectNested(e.Value, seen))
	}
	out.WriteString(" }")
	return out.String()
}

// inspectNested quotes strings. seen holds the collections already being
// printed further up; meeting one again prints it as [...] or {...}.
func inspectNested(obj Object, seen map[Object]bool) string {
	switch v := obj.(type) {
	case *String:
		return `"` + v.Value + `"`
	case *List:
		return v.inspect(seen)
	case *Dict:
		return v.inspect(seen)
	}
	return obj.Inspect()
}
