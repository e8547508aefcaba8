package mdast

import (
	"maps"
	"slices"
	"strings"
)

// ClassKey is the only multi-valued property key.
const ClassKey = "class"

// Attribute is a single key/value pair of a parsed annotation.
type Attribute struct {
	Key   string
	Value string
}

// Attributes is an ordered set of attribute pairs as written in the source.
// Keys may repeat, later pairs win when merged.
type Attributes []Attribute

// Get returns the value of the last pair with the given key.
func (a Attributes) Get(key string) (string, bool) {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i].Key == key {
			return a[i].Value, true
		}
	}
	return "", false
}

// Properties is the per-node property bag. Keys keep the order they were
// first set in. Class is stored as an ordered token list without duplicates,
// every other key holds a single string.
type Properties struct {
	keys   []string
	values map[string]string
	class  []string
}

func NewProperties() *Properties {
	return &Properties{values: make(map[string]string)}
}

// Len returns number of keys in the bag, nil bag is empty.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Empty reports whether bag has no keys, nil bag is empty.
func (p *Properties) Empty() bool {
	return p.Len() == 0
}

// Keys returns keys in insertion order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.keys)
}

// Has reports whether key is present.
func (p *Properties) Has(key string) bool {
	return p != nil && slices.Contains(p.keys, key)
}

// Get returns value for the key. Class tokens are returned space separated.
func (p *Properties) Get(key string) (string, bool) {
	if !p.Has(key) {
		return "", false
	}
	if key == ClassKey {
		return strings.Join(p.class, " "), true
	}
	return p.values[key], true
}

// Class returns class tokens in order.
func (p *Properties) Class() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.class)
}

// Set overwrites the value for key. Setting class replaces all tokens with
// whitespace separated tokens from value.
func (p *Properties) Set(key, value string) {
	if key == ClassKey {
		p.Delete(ClassKey)
		p.AddClass(strings.Fields(value)...)
		return
	}
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// AddClass appends tokens to the class list skipping empty tokens and the ones
// already present.
func (p *Properties) AddClass(tokens ...string) {
	for _, tok := range tokens {
		if tok == "" || slices.Contains(p.class, tok) {
			continue
		}
		if !slices.Contains(p.keys, ClassKey) {
			p.keys = append(p.keys, ClassKey)
		}
		p.class = append(p.class, tok)
	}
}

// Delete removes key from the bag.
func (p *Properties) Delete(key string) {
	if p == nil {
		return
	}
	idx := slices.Index(p.keys, key)
	if idx < 0 {
		return
	}
	p.keys = slices.Delete(p.keys, idx, idx+1)
	if key == ClassKey {
		p.class = nil
		return
	}
	delete(p.values, key)
}

// Merge folds other into the bag: class tokens are accumulated, everything
// else is overwritten.
func (p *Properties) Merge(other *Properties) {
	for _, k := range other.Keys() {
		if k == ClassKey {
			p.AddClass(other.class...)
			continue
		}
		p.Set(k, other.values[k])
	}
}

// Clone returns deep copy of the bag.
func (p *Properties) Clone() *Properties {
	if p == nil {
		return nil
	}
	c := &Properties{
		keys:   slices.Clone(p.keys),
		values: make(map[string]string, len(p.values)),
		class:  slices.Clone(p.class),
	}
	maps.Copy(c.values, p.values)
	return c
}
