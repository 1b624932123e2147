package traversal

import (
	"sort"
	"strings"
)

// Orientation is one distinct pin/net arrangement shared by a set of
// components within an aggregate group (spec §4.5.4).
type Orientation struct {
	Refdes      []string
	Connections []Connection
	Count       int
}

// Aggregate is one MPN (or description-fallback) group, spanning one
// net-pair/DNS combination (spec §4.5.4). Exactly one of (Refdes,
// Connections) or Orientations is populated, per the group's
// orientation count.
type Aggregate struct {
	MPN  string
	Nets []string
	DNS  bool

	Refdes      []string     `json:"refdes,omitempty"`
	Connections []Connection `json:"connections,omitempty"`

	Orientations []Orientation `json:"orientations,omitempty"`

	Notes []string `json:"notes,omitempty"`
}

// AggregateByMPN folds grouped component records into MPN-keyed
// aggregates (spec §4.5.4). Components with neither MPN nor description
// pass through as notes-bearing singletons, keyed by their own refdes.
func AggregateByMPN(components []ComponentRecord) map[string][]Aggregate {
	out := make(map[string][]Aggregate)

	type bucketKey struct {
		identity string
		nets     string
		dns      bool
	}
	buckets := make(map[bucketKey][]ComponentRecord)
	var bucketOrder []bucketKey

	for _, c := range components {
		identity := c.MPN
		if identity == "" {
			identity = c.Description
		}
		if identity == "" {
			out[c.Refdes] = append(out[c.Refdes], Aggregate{
				DNS:    c.DNS,
				Refdes: []string{c.Refdes},
				Notes:  []string{"MPN data is missing for this component"},
			})
			continue
		}

		key := bucketKey{identity: identity, nets: strings.Join(sortedNets(c.Connections), ","), dns: c.DNS}
		if _, ok := buckets[key]; !ok {
			bucketOrder = append(bucketOrder, key)
		}
		buckets[key] = append(buckets[key], c)
	}

	for _, key := range bucketOrder {
		members := buckets[key]
		agg := Aggregate{MPN: key.identity, DNS: key.dns}
		if key.nets != "" {
			agg.Nets = strings.Split(key.nets, ",")
		}

		orientations := groupByOrientation(members)
		if len(orientations) == 1 {
			agg.Refdes = orientations[0].Refdes
			agg.Connections = orientations[0].Connections
		} else {
			sort.SliceStable(orientations, func(i, j int) bool {
				return orientations[i].Count > orientations[j].Count
			})
			agg.Orientations = orientations
		}

		out[key.identity] = append(out[key.identity], agg)
	}

	return out
}

func sortedNets(conns []Connection) []string {
	seen := make(map[string]bool)
	var nets []string
	for _, c := range conns {
		if !seen[c.Net] {
			seen[c.Net] = true
			nets = append(nets, c.Net)
		}
	}
	sort.Strings(nets)
	return nets
}

func groupByOrientation(members []ComponentRecord) []Orientation {
	byKey := make(map[string][]string)
	var connsByKey = make(map[string][]Connection)
	var order []string

	for _, m := range members {
		key := orientationKey(m.Connections)
		if _, ok := byKey[key]; !ok {
			order = append(order, key)
			connsByKey[key] = m.Connections
		}
		byKey[key] = append(byKey[key], m.Refdes)
	}

	orientations := make([]Orientation, 0, len(order))
	for _, key := range order {
		refdes := byKey[key]
		sort.Slice(refdes, func(i, j int) bool { return naturalLess(refdes[i], refdes[j]) })
		orientations = append(orientations, Orientation{
			Refdes:      refdes,
			Connections: connsByKey[key],
			Count:       len(refdes),
		})
	}
	return orientations
}
