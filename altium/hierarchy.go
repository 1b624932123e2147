// Package altium implements the Altium hierarchy and net extractor
// (spec §4.3, C3): attaching child records to owners, deriving wire/pin/
// label/power-port geometry, grouping electrically connected devices
// with a grid-indexed union-find, naming the resulting nets, extracting
// components, and projecting the result onto the universal model.
//
// The hierarchy itself is the teacher's arena idiom turned to a new
// purpose: records live in one flat, index-addressed slice (core.Program
// nests EntryBlock/InstructionGroup/Operation the same way — structs
// referencing each other by position, never by pointer) so parent-child
// linkage is by index (spec §9 "Cyclic reference").
package altium

import (
	"strings"

	"github.com/wiretrace/xnet/recstream"
)

// Tree is the hierarchy built from a flat record list: each record's
// owner index (if any) names its parent, and children accumulate in
// original order.
type Tree struct {
	Records  []recstream.Record
	children map[int][]int // owner record index -> child record indices, in order
	roots    []int
}

// BuildTree links every record in body to its owner, as named by the
// OwnerIndex/OWNERINDEX attribute (spec §4.3.1).
func BuildTree(body []recstream.Record) *Tree {
	t := &Tree{
		Records:  body,
		children: make(map[int][]int),
	}
	for _, r := range body {
		if owner, ok := r.OwnerIndex(); ok {
			if t.findByIndex(owner) != nil {
				t.children[owner] = append(t.children[owner], r.Index)
				continue
			}
		}
		t.roots = append(t.roots, r.Index)
	}
	return t
}

// findByIndex walks the flat list to locate the record whose original
// index is i, or nil when absent. The list is positionally indexed
// (Records[i].Index == i, barring gaps from dropped segments), so this
// is effectively O(1) via direct slice access with a defensive scan
// fallback for the rare case indices aren't contiguous.
func (t *Tree) findByIndex(i int) *recstream.Record {
	if i >= 0 && i < len(t.Records) && t.Records[i].Index == i {
		return &t.Records[i]
	}
	for idx := range t.Records {
		if t.Records[idx].Index == i {
			return &t.Records[idx]
		}
	}
	return nil
}

// Children returns the direct children of the record at index i, in
// original order.
func (t *Tree) Children(i int) []recstream.Record {
	idxs := t.children[i]
	out := make([]recstream.Record, 0, len(idxs))
	for _, idx := range idxs {
		if r := t.findByIndex(idx); r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// Roots returns every record with no owner (or whose owner doesn't
// resolve), in original order.
func (t *Tree) Roots() []recstream.Record {
	out := make([]recstream.Record, 0, len(t.roots))
	for _, idx := range t.roots {
		if r := t.findByIndex(idx); r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// Walk visits every record reachable from the roots, depth-first,
// calling fn with the record and its parent (nil for roots).
func (t *Tree) Walk(fn func(rec recstream.Record, parent *recstream.Record)) {
	var visit func(idx int, parent *recstream.Record)
	visit = func(idx int, parent *recstream.Record) {
		rec := t.findByIndex(idx)
		if rec == nil {
			return
		}
		fn(*rec, parent)
		for _, childIdx := range t.children[idx] {
			visit(childIdx, rec)
		}
	}
	for _, rootIdx := range t.roots {
		visit(rootIdx, nil)
	}
}

// ParameterChildren returns the PARAMETER children of the record at
// owner index i.
func (t *Tree) ParameterChildren(i int) []recstream.Record {
	var params []recstream.Record
	for _, c := range t.Children(i) {
		if c.Tag() == recstream.TagParameter {
			params = append(params, c)
		}
	}
	return params
}

// DesignatorText returns the Text of the first DESIGNATOR child of the
// record at owner index i, per spec §4.3.7.
func (t *Tree) DesignatorText(i int) (string, bool) {
	for _, c := range t.Children(i) {
		if c.Tag() == recstream.TagDesignator {
			if text, ok := c.GetTrim("Text"); ok && text != "" {
				return text, true
			}
		}
	}
	return "", false
}

// findParameter returns the PARAMETER child of owner i whose Name
// attribute matches name case-insensitively.
func (t *Tree) findParameter(i int, name string) (recstream.Record, bool) {
	for _, p := range t.ParameterChildren(i) {
		if n, ok := p.Get("Name"); ok && strings.EqualFold(n, name) {
			return p, true
		}
	}
	return recstream.Record{}, false
}
