package traversal

import (
	"fmt"
	"strings"

	"github.com/wiretrace/xnet/netlist"
)

// AggregatedResult is the §6 query-contract payload shared by both
// traversal entry points.
type AggregatedResult struct {
	StartingPoint        string                 `json:"starting_point"`
	Net                  string                 `json:"net,omitempty"`
	TotalComponents      int                    `json:"total_components"`
	UniqueConfigurations int                    `json:"unique_configurations"`
	ComponentsByMPN      map[string][]Aggregate `json:"components_by_mpn"`
	VisitedNets          []string               `json:"visited_nets"`
	CircuitHash          string                 `json:"circuit_hash"`
	Skipped              map[string]int         `json:"skipped,omitempty"`
}

// TraverseFromNet implements the net-shape query (spec §4.5, §4.5.6,
// §6): refuses ground nets, rejects unknown nets, and otherwise runs
// the full BFS/group/aggregate/fingerprint pipeline.
func TraverseFromNet(model *netlist.Model, netName string, opts Options) (*AggregatedResult, error) {
	if isGroundNet(netName) {
		return nil, fmt.Errorf("traversal: net %q is a ground net and cannot be queried", netName)
	}
	if _, ok := model.Nets[netName]; !ok {
		return nil, fmt.Errorf("traversal: unknown net %q", netName)
	}

	result := buildAggregatedResult(model, netName, opts)
	result.StartingPoint = netName
	return result, nil
}

// TraverseFromPin implements the pin-shape query (spec §4.5.6): resolves
// "REFDES.PIN" case-insensitively against the model, refuses ground-net
// connections, reports NC pins without running a traversal, and
// otherwise delegates to the net-shape pipeline.
func TraverseFromPin(model *netlist.Model, pinSpec string, opts Options) (*AggregatedResult, error) {
	refdes, pin, err := splitPinSpec(pinSpec)
	if err != nil {
		return nil, err
	}

	compRefdes, comp, ok := findComponentCaseInsensitive(model, refdes)
	if !ok {
		return nil, fmt.Errorf("traversal: unknown component %q", refdes)
	}
	pinID, entry, ok := findPinCaseInsensitive(comp, pin)
	if !ok {
		return nil, fmt.Errorf("traversal: unknown pin %q on component %q", pin, compRefdes)
	}

	if entry.Net == "" || entry.Net == netlist.NC {
		return &AggregatedResult{
			StartingPoint:   pinSpec,
			Net:             netlist.NC,
			ComponentsByMPN: map[string][]Aggregate{},
			CircuitHash:     fmt.Sprintf("nc-%s.%s", compRefdes, pinID),
		}, nil
	}

	if isGroundNet(entry.Net) {
		return nil, fmt.Errorf("traversal: pin %q is connected to ground net %q and cannot be queried", pinSpec, entry.Net)
	}

	result := buildAggregatedResult(model, entry.Net, opts)
	result.StartingPoint = pinSpec
	result.Net = entry.Net
	return result, nil
}

func buildAggregatedResult(model *netlist.Model, startNet string, opts Options) *AggregatedResult {
	raw := Traverse(model, startNet, opts)
	components := GroupByComponent(raw.Pins)
	byMPN := AggregateByMPN(components)

	uniqueConfigurations := 0
	for _, aggs := range byMPN {
		uniqueConfigurations += len(aggs)
	}

	return &AggregatedResult{
		TotalComponents:      len(components),
		UniqueConfigurations: uniqueConfigurations,
		ComponentsByMPN:      byMPN,
		VisitedNets:          raw.VisitedNets,
		CircuitHash:          ComputeCircuitHash(components),
		Skipped:              raw.Skipped,
	}
}

// splitPinSpec parses "REFDES.PIN" (spec §4.5.6), rejecting any other
// shape.
func splitPinSpec(spec string) (refdes, pin string, err error) {
	idx := strings.LastIndexByte(spec, '.')
	if idx <= 0 || idx == len(spec)-1 {
		return "", "", fmt.Errorf("traversal: invalid pin spec %q, expected REFDES.PIN", spec)
	}
	return spec[:idx], spec[idx+1:], nil
}

func findComponentCaseInsensitive(model *netlist.Model, refdes string) (string, *netlist.Component, bool) {
	if c, ok := model.Components[refdes]; ok {
		return refdes, c, true
	}
	for name, c := range model.Components {
		if strings.EqualFold(name, refdes) {
			return name, c, true
		}
	}
	return "", nil, false
}

func findPinCaseInsensitive(comp *netlist.Component, pin string) (string, netlist.PinEntry, bool) {
	if e, ok := comp.Pins[pin]; ok {
		return pin, e, true
	}
	for id, e := range comp.Pins {
		if strings.EqualFold(id, pin) {
			return id, e, true
		}
	}
	return "", netlist.PinEntry{}, false
}
