package mdast

import (
	"slices"
	"testing"
)

func TestProperties(t *testing.T) {
	t.Run("nil_bag_is_empty", func(t *testing.T) {
		var p *Properties
		if !p.Empty() || p.Len() != 0 || p.Has("id") || p.Keys() != nil || p.Class() != nil {
			t.Fatalf("nil bag is expected to be empty")
		}
		if p.Clone() != nil {
			t.Fatalf("clone of nil bag must be nil")
		}
	})

	t.Run("last_write_wins", func(t *testing.T) {
		p := NewProperties()
		p.Set("id", "a")
		p.Set("title", "t")
		p.Set("id", "b")
		if v, _ := p.Get("id"); v != "b" {
			t.Fatalf("expected id=b, got %q", v)
		}
		if !slices.Equal(p.Keys(), []string{"id", "title"}) {
			t.Fatalf("unexpected key order %v", p.Keys())
		}
	})

	t.Run("class_accumulates_in_order", func(t *testing.T) {
		p := NewProperties()
		p.AddClass("a", "b")
		p.AddClass("b", "", "c")
		if !slices.Equal(p.Class(), []string{"a", "b", "c"}) {
			t.Fatalf("unexpected class tokens %v", p.Class())
		}
		if v, _ := p.Get(ClassKey); v != "a b c" {
			t.Fatalf("unexpected joined class %q", v)
		}
	})

	t.Run("set_class_replaces", func(t *testing.T) {
		p := NewProperties()
		p.AddClass("a")
		p.Set("id", "x")
		p.Set(ClassKey, " c  d ")
		if !slices.Equal(p.Class(), []string{"c", "d"}) {
			t.Fatalf("unexpected class tokens %v", p.Class())
		}
		if !slices.Equal(p.Keys(), []string{"id", ClassKey}) {
			t.Fatalf("unexpected key order %v", p.Keys())
		}
		p.Set(ClassKey, "   ")
		if p.Has(ClassKey) {
			t.Fatalf("blank class must remove the key")
		}
	})

	t.Run("zero_value_is_usable", func(t *testing.T) {
		var p Properties
		p.Set("id", "x")
		if v, ok := p.Get("id"); !ok || v != "x" {
			t.Fatalf("expected id=x, got %q", v)
		}
	})

	t.Run("merge", func(t *testing.T) {
		dst := NewProperties()
		dst.Set("id", "a")
		dst.AddClass("x")

		src := NewProperties()
		src.AddClass("x", "y")
		src.Set("id", "b")
		src.Set("lang", "en")

		dst.Merge(src)
		if v, _ := dst.Get("id"); v != "b" {
			t.Fatalf("expected id=b, got %q", v)
		}
		if !slices.Equal(dst.Class(), []string{"x", "y"}) {
			t.Fatalf("unexpected class tokens %v", dst.Class())
		}
		if !slices.Equal(dst.Keys(), []string{"id", ClassKey, "lang"}) {
			t.Fatalf("unexpected key order %v", dst.Keys())
		}
	})

	t.Run("delete", func(t *testing.T) {
		p := NewProperties()
		p.Set("id", "a")
		p.AddClass("x")
		p.Delete(ClassKey)
		p.Delete("missing")
		if p.Has(ClassKey) || p.Class() != nil || p.Len() != 1 {
			t.Fatalf("class was not deleted: %v", p.Keys())
		}
	})

	t.Run("clone_is_independent", func(t *testing.T) {
		p := NewProperties()
		p.Set("id", "a")
		p.AddClass("x")
		c := p.Clone()
		c.Set("id", "b")
		c.AddClass("y")
		if v, _ := p.Get("id"); v != "a" || len(p.Class()) != 1 {
			t.Fatalf("original bag modified through clone")
		}
	})
}

func TestAttributesGet(t *testing.T) {
	a := Attributes{{Key: "id", Value: "a"}, {Key: "class", Value: "x"}, {Key: "id", Value: "b"}}
	if v, ok := a.Get("id"); !ok || v != "b" {
		t.Fatalf("expected last id, got %q", v)
	}
	if _, ok := a.Get("title"); ok {
		t.Fatalf("unexpected title")
	}
}
