package altium

import (
	"github.com/wiretrace/xnet/recstream"
)

// Kind identifies which of the four connectable record types a Device
// wraps.
type Kind int

const (
	KindWire Kind = iota
	KindPin
	KindNetLabel
	KindPowerPort
)

// Device is one connectable emitted during tree traversal: a wire, pin,
// net label, or power port, with its geometry already computed (spec
// §4.3.2, §4.3.3).
type Device struct {
	Index    int // the record's original index, used to break naming ties deterministically
	Kind     Kind
	Record   recstream.Record
	Vertices []Point
	Segments []Segment

	// OwnerIndex is the index of the owning COMPONENT record, set only
	// for pins (needed to resolve refdes during net naming/projection).
	OwnerIndex int
	HasOwner   bool
}

// GlobalText returns the Text attribute used for off-page connections
// (power ports and net labels sharing a name, spec §4.3.4 rule 2), or
// "" when absent or not applicable.
func (d Device) GlobalText() string {
	if d.Kind != KindPowerPort && d.Kind != KindNetLabel {
		return ""
	}
	text, _ := d.Record.GetTrim("Text")
	return text
}

// Selector walks an altium hierarchy and emits the connectable devices
// used for net grouping (spec §4.3.3).
type Selector struct {
	tree *Tree
}

func NewSelector(tree *Tree) *Selector {
	return &Selector{tree: tree}
}

// Select returns every WIRE, PIN, NET_LABEL, or POWER_PORT record,
// retaining only PINs realized in the currently active part of their
// owning multi-section component.
func (s *Selector) Select() []Device {
	var devices []Device

	s.tree.Walk(func(rec recstream.Record, parent *recstream.Record) {
		switch rec.Tag() {
		case recstream.TagWire:
			verts := wireVertices(rec)
			devices = append(devices, Device{
				Index: rec.Index, Kind: KindWire, Record: rec,
				Vertices: verts, Segments: segments(verts),
			})
		case recstream.TagNetLabel:
			verts := singlePointVertices(rec)
			devices = append(devices, Device{
				Index: rec.Index, Kind: KindNetLabel, Record: rec,
				Vertices: verts, Segments: segments(verts),
			})
		case recstream.TagPowerPort:
			verts := singlePointVertices(rec)
			devices = append(devices, Device{
				Index: rec.Index, Kind: KindPowerPort, Record: rec,
				Vertices: verts, Segments: segments(verts),
			})
		case recstream.TagPin:
			if parent == nil || !partMatches(rec, *parent) {
				return
			}
			verts := pinVertices(rec)
			owner, hasOwner := rec.OwnerIndex()
			devices = append(devices, Device{
				Index: rec.Index, Kind: KindPin, Record: rec,
				Vertices: verts, Segments: segments(verts),
				OwnerIndex: owner, HasOwner: hasOwner,
			})
		}
	})

	return devices
}

// partMatches implements "OwnerPartId == parent.CurrentPartId, treating
// absence of either as match" (spec §4.3.3).
func partMatches(pin, parent recstream.Record) bool {
	ownerPart, ownerOK := pin.Get("OwnerPartId")
	currentPart, currentOK := parent.Get("CurrentPartId")
	if !ownerOK || !currentOK {
		return true
	}
	return ownerPart == currentPart
}
