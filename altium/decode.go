// Package altium's decode.go composes C1 (cfb), C2 (recstream) and the
// rest of C3 into the single entry point DecodeSchDoc, producing a
// *netlist.Model per spec §4.3.8.
package altium

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/wiretrace/xnet/cfb"
	"github.com/wiretrace/xnet/internal/logging"
	"github.com/wiretrace/xnet/netlist"
	"github.com/wiretrace/xnet/recstream"
)

// pinNumber returns a pin record's own identifier: its Designator
// attribute (Altium's pin-number field, distinct from the owning
// component's DESIGNATOR child, which is the refdes), falling back to
// PinNumber for layouts that use that name instead.
func pinNumber(rec recstream.Record) (string, bool) {
	if v, ok := rec.GetTrim("Designator"); ok && v != "" {
		return v, true
	}
	if v, ok := rec.GetTrim("PinNumber"); ok && v != "" {
		return v, true
	}
	return "", false
}

// DecodeSchDoc opens an Altium .SchDoc compound file at path, decodes
// its FileHeader stream, builds the hierarchy, groups devices into
// nets, and projects the result onto the universal model.
func DecodeSchDoc(path string, log logr.Logger) (*netlist.Model, error) {
	reader, err := cfb.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("altium: %w", err)
	}
	raw, err := reader.ReadStream("FileHeader")
	if err != nil {
		return nil, fmt.Errorf("altium: %w", err)
	}
	return Decode(raw, log)
}

// Decode runs C2 and the rest of C3 over raw FileHeader bytes.
func Decode(raw []byte, log logr.Logger) (*netlist.Model, error) {
	stream, err := recstream.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("altium: %w", err)
	}
	log.V(1).Info("decoded record stream", "records", len(stream.Body))

	tree := BuildTree(stream.Body)
	devices := NewSelector(tree).Select()
	log.V(1).Info("selected connectables", "count", len(devices))

	groups := Group(devices)
	log.V(1).Info("grouped into nets", "count", len(groups))

	return buildModel(tree, groups)
}

// buildModel projects a hierarchy tree and its device groups onto the
// universal model: components first, then every multi-device net.
func buildModel(tree *Tree, groups [][]Device) (*netlist.Model, error) {
	components := ExtractComponents(tree)

	model := netlist.New()
	for _, ec := range components {
		comp := model.Component(ec.Refdes)
		comp.MPN = ec.MPN
		comp.Comment = ec.Comment
		comp.Value = ec.Value
	}

	unnamed := UnnamedNetCounter()
	for _, group := range groups {
		if isSinglePinOnly(group) {
			continue
		}
		name := NameNet(group, tree, unnamed)
		projectGroup(model, tree, name, group)
	}

	return model, nil
}

// DecodeGroupsForTest exposes buildModel to package-external specs that
// construct a Tree and device groups directly rather than going through
// the full record-stream pipeline.
func DecodeGroupsForTest(tree *Tree, groups [][]Device) (*netlist.Model, error) {
	return buildModel(tree, groups)
}

// isSinglePinOnly reports whether a device group contains exactly one
// device and it is a PIN (spec §4.3.8: "suppressed... they carry no
// connection information").
func isSinglePinOnly(group []Device) bool {
	return len(group) == 1 && group[0].Kind == KindPin
}

// projectGroup writes every PIN device in group into the universal
// model under net name, preserving any logical pin name (spec §4.3.8).
func projectGroup(model *netlist.Model, tree *Tree, name string, group []Device) {
	for _, d := range group {
		if d.Kind != KindPin || !d.HasOwner {
			continue
		}
		refdes, ok := tree.DesignatorText(d.OwnerIndex)
		if !ok || !netlist.ValidRefdes(refdes) {
			continue
		}
		pin, ok := pinNumber(d.Record)
		if !ok {
			continue
		}
		model.Connect(name, refdes, pin)
		if pinName, ok := d.Record.GetTrim("Name"); ok && pinName != "" {
			model.Component(refdes).SetPinName(pin, pinName)
		}
	}
}

// DiscardLog is a convenience default for callers that don't care about
// decode-time logging (e.g. tests).
var DiscardLog = logging.Discard()
