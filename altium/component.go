package altium

import (
	"strings"

	"github.com/wiretrace/xnet/netlist"
	"github.com/wiretrace/xnet/recstream"
)

// ExtractedComponent is one COMPONENT record's extracted fields, before
// projection to the universal model (spec §4.3.7).
type ExtractedComponent struct {
	Refdes      string
	MPN         string
	Comment     string
	Value       string
	Description string
	PinNames    map[string]string // pin number -> logical name, for pins owned by this component
}

// ExtractComponents walks every COMPONENT record in the tree and
// extracts its refdes, MPN, comment and value.
func ExtractComponents(tree *Tree) map[int]*ExtractedComponent {
	out := make(map[int]*ExtractedComponent)
	for _, rec := range tree.Records {
		if rec.Tag() != recstream.TagComponent {
			continue
		}
		refdes, ok := tree.DesignatorText(rec.Index)
		if !ok || !netlist.ValidRefdes(refdes) {
			continue
		}
		out[rec.Index] = extractOne(tree, rec, refdes)
	}
	return out
}

func extractOne(tree *Tree, rec recstream.Record, refdes string) *ExtractedComponent {
	ec := &ExtractedComponent{Refdes: refdes, PinNames: make(map[string]string)}

	for _, c := range tree.Children(rec.Index) {
		if c.Tag() != recstream.TagPin || !partMatches(c, rec) {
			continue
		}
		num, ok := pinNumber(c)
		if !ok {
			continue
		}
		if name, ok := c.GetTrim("Name"); ok && name != "" {
			ec.PinNames[num] = name
		}
	}

	if p, ok := tree.findParameter(rec.Index, "Manufacturer Part Number"); ok {
		if text, ok := p.GetTrim("Text"); ok {
			ec.MPN = netlist.CleanMPN(text)
		}
	}
	if p, ok := tree.findParameter(rec.Index, "Value"); ok {
		if text, ok := p.GetTrim("Text"); ok {
			ec.Value = strings.TrimSpace(text)
		}
	}

	if p, ok := tree.findParameter(rec.Index, "Comment"); ok {
		comment, _ := p.GetTrim("Text")
		comment = resolveCommentIndirection(tree, rec.Index, comment)
		if comment != "" && comment == ec.Value {
			comment = ""
		}
		ec.Comment = comment
	}

	return ec
}

// resolveCommentIndirection implements spec §4.3.7's "=Value" rule: a
// comment starting with '=' names another parameter (case-insensitive)
// whose value should be used instead; an empty or missing target drops
// the comment entirely.
func resolveCommentIndirection(tree *Tree, ownerIndex int, comment string) string {
	if !strings.HasPrefix(comment, "=") {
		return comment
	}
	target := strings.TrimPrefix(comment, "=")
	p, ok := tree.findParameter(ownerIndex, target)
	if !ok {
		return ""
	}
	text, ok := p.GetTrim("Text")
	if !ok || text == "" {
		return ""
	}
	return text
}
