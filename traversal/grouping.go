package traversal

import "sort"

// Connection is one net a component touches, with every pin of the
// component on that net (spec §4.5.3).
type Connection struct {
	Net  string
	Pins []string
}

// ComponentRecord is one traversal participant, coalesced from every
// PinRecord touching its refdes (spec §4.5.3).
type ComponentRecord struct {
	Refdes      string
	MPN         string
	Description string
	Comment     string
	Value       string
	DNS         bool
	Connections []Connection
}

// GroupByComponent folds a flat pin-record list by refdes: pins on the
// same net coalesce into one Connection, naturally sorted, and
// components are returned in natural refdes order for determinism.
func GroupByComponent(pins []PinRecord) []ComponentRecord {
	order := make([]string, 0)
	byRefdes := make(map[string][]PinRecord)
	for _, p := range pins {
		if _, ok := byRefdes[p.Refdes]; !ok {
			order = append(order, p.Refdes)
		}
		byRefdes[p.Refdes] = append(byRefdes[p.Refdes], p)
	}

	records := make([]ComponentRecord, 0, len(order))
	for _, refdes := range order {
		records = append(records, buildComponentRecord(refdes, byRefdes[refdes]))
	}

	sort.Slice(records, func(i, j int) bool {
		return naturalLess(records[i].Refdes, records[j].Refdes)
	})
	return records
}

func buildComponentRecord(refdes string, entries []PinRecord) ComponentRecord {
	rec := ComponentRecord{Refdes: refdes}
	if len(entries) > 0 {
		first := entries[0]
		rec.MPN = first.MPN
		rec.Description = first.Description
		rec.Comment = first.Comment
		rec.Value = first.Value
		rec.DNS = first.DNS
	}

	pinsByNet := make(map[string][]string)
	netOrder := make([]string, 0)
	for _, e := range entries {
		if _, ok := pinsByNet[e.Net]; !ok {
			netOrder = append(netOrder, e.Net)
		}
		pinsByNet[e.Net] = append(pinsByNet[e.Net], e.Pin)
	}

	conns := make([]Connection, 0, len(netOrder))
	for _, net := range netOrder {
		pins := pinsByNet[net]
		sort.Slice(pins, func(i, j int) bool { return naturalLess(pins[i], pins[j]) })
		conns = append(conns, Connection{Net: net, Pins: pins})
	}
	sort.Slice(conns, func(i, j int) bool {
		return naturalLess(conns[i].Pins[0], conns[j].Pins[0])
	})
	rec.Connections = conns
	return rec
}

// orientationKey builds the exact "1,2:NET_A|3:NET_B"-style string used
// to sub-group components by pin-orientation (spec §4.5.4).
func orientationKey(conns []Connection) string {
	parts := make([]string, len(conns))
	for i, c := range conns {
		pins := ""
		for j, p := range c.Pins {
			if j > 0 {
				pins += ","
			}
			pins += p
		}
		parts[i] = pins + ":" + c.Net
	}
	key := ""
	for i, p := range parts {
		if i > 0 {
			key += "|"
		}
		key += p
	}
	return key
}
