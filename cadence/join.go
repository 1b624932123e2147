package cadence

import (
	"github.com/wiretrace/xnet/netlist"
)

// chipIndex resolves a part name to its declared pins/properties; the
// same primitive may be declared multiple times across pstchip.dat
// files feeding one project, so only the first match for a name wins.
type chipIndex map[string]*ChipPart

func indexChips(chips []*ChipPart) chipIndex {
	idx := make(chipIndex, len(chips))
	for _, c := range chips {
		if _, ok := idx[c.PartName]; !ok {
			idx[c.PartName] = c
		}
	}
	return idx
}

// pinNameFor returns the logical pin name for pinNumber within chip, by
// reversing its name -> number map, or "" when none is declared.
func pinNameFor(chip *ChipPart, pinNumber string) string {
	if chip == nil {
		return ""
	}
	for name, number := range chip.Pins {
		if number == pinNumber {
			return name
		}
	}
	return ""
}

// Join implements spec §4.4's Cadence post-join: every (net, refdes,
// pin) triple from NetConnections is projected onto the universal
// model, with pin entries resolved to logical names via the matching
// ChipPart, and MPN/value/description filled in per component.
func Join(netConns NetConnections, parts map[string]*PartInfo, partNames map[string]string, chips []*ChipPart) *netlist.Model {
	model := netlist.New()
	chipsByName := indexChips(chips)

	for net, byRefdes := range netConns {
		for refdes, pins := range byRefdes {
			if !netlist.ValidRefdes(refdes) {
				continue
			}
			comp := model.Component(refdes)

			partName := partNames[refdes]
			chip := chipsByName[partName]

			if comp.MPN == "" {
				comp.MPN = resolvedMPN(parts[refdes], partName)
			}
			if info := parts[refdes]; info != nil && comp.Description == "" {
				comp.Description = info.Description
			}
			if chip != nil && chip.Value != "" && comp.Value == "" {
				comp.Value = chip.Value
			}

			for _, pin := range pins {
				model.Connect(net, refdes, pin)
				if name := pinNameFor(chip, pin); name != "" && name != pin {
					comp.SetPinName(pin, name)
				}
			}
		}
	}

	return model
}
