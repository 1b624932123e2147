package traversal

import (
	"sort"
	"strings"

	"github.com/wiretrace/xnet/netlist"
)

// PinRecord is one visited (refdes, pin) emission during traversal
// (spec §4.5.2).
type PinRecord struct {
	Refdes      string
	Pin         string
	Net         string
	MPN         string
	Description string
	Comment     string
	Value       string
	DNS         bool
}

// Options configures a traversal (spec §4.5.2).
type Options struct {
	SkipTypes  map[string]bool // refdes prefixes to skip, e.g. {"TP": true}
	IncludeDNS bool

	// ExtraStopNets names additional nets (beyond the built-in
	// ground/power patterns) that halt traversal, sourced from
	// xnet.yaml's project-specific rail-name overrides.
	ExtraStopNets map[string]bool
}

// Result is the flat output of a single BFS traversal, before §4.5.3
// grouping and §4.5.4 aggregation.
type Result struct {
	Pins        []PinRecord
	VisitedNets []string       // in the order each net was first visited
	Skipped     map[string]int // refdes prefix -> count of distinct refdes skipped
}

type pinKey struct{ refdes, pin string }

// traverser holds the BFS working state so engine.go's helpers can stay
// small, free functions over shared fields rather than a single giant
// loop body.
type traverser struct {
	model *netlist.Model
	opts  Options

	queue       []string
	visitedNets map[string]bool
	visitedPins map[pinKey]bool
	skippedRefs map[string]bool
	skipped     map[string]int
	netOrder    []string
	pins        []PinRecord
}

// Traverse runs the XNET BFS from startNet across the model (spec
// §4.5.2). It performs no net-name validation of its own — ground-net
// refusal and pin-spec resolution are the query layer's job (§4.5.6).
func Traverse(model *netlist.Model, startNet string, opts Options) *Result {
	t := &traverser{
		model:       model,
		opts:        opts,
		visitedNets: make(map[string]bool),
		visitedPins: make(map[pinKey]bool),
		skippedRefs: make(map[string]bool),
		skipped:     make(map[string]int),
	}
	t.enqueue(startNet)

	for len(t.queue) > 0 {
		net := t.queue[0]
		t.queue = t.queue[1:]
		t.visitNet(net)
	}

	return &Result{Pins: t.pins, VisitedNets: t.netOrder, Skipped: t.skipped}
}

func (t *traverser) enqueue(net string) {
	if t.visitedNets[net] {
		return
	}
	t.visitedNets[net] = true
	t.netOrder = append(t.netOrder, net)
	t.queue = append(t.queue, net)
}

// shouldSkip reports whether refdes should be skipped per opts, and
// records the skip exactly once per refdes for the per-prefix counter.
func (t *traverser) shouldSkip(refdes string) bool {
	comp := t.model.Component(refdes)
	dns := isDns(comp.MPN, comp.Description, comp.Comment)

	prefix := t.matchingSkipPrefix(refdes)
	skip := prefix != "" || (dns && !t.opts.IncludeDNS)
	if !skip {
		return false
	}
	if prefix != "" && !t.skippedRefs[refdes] {
		t.skippedRefs[refdes] = true
		t.skipped[prefix]++
	}
	return true
}

func (t *traverser) matchingSkipPrefix(refdes string) string {
	upper := strings.ToUpper(refdes)
	for prefix := range t.opts.SkipTypes {
		if strings.HasPrefix(upper, strings.ToUpper(prefix)) {
			return prefix
		}
	}
	return ""
}

func (t *traverser) markVisited(refdes, pin string) bool {
	key := pinKey{refdes, pin}
	if t.visitedPins[key] {
		return false
	}
	t.visitedPins[key] = true
	return true
}

func (t *traverser) emit(refdes, pin, net string) {
	comp := t.model.Component(refdes)
	t.pins = append(t.pins, PinRecord{
		Refdes:      refdes,
		Pin:         pin,
		Net:         net,
		MPN:         comp.MPN,
		Description: comp.Description,
		Comment:     comp.Comment,
		Value:       comp.Value,
		DNS:         isDns(comp.MPN, comp.Description, comp.Comment),
	})
}

// visitNet implements one queue-pop iteration of spec §4.5.2's loop
// body: steps 1-2 for every component on net, then step 3's
// passive-continuation logic.
func (t *traverser) visitNet(net string) {
	byRefdes := t.model.Nets[net]
	refdesList := make([]string, 0, len(byRefdes))
	for refdes := range byRefdes {
		refdesList = append(refdesList, refdes)
	}
	sort.Strings(refdesList)

	for _, refdes := range refdesList {
		if t.shouldSkip(refdes) {
			continue
		}
		for _, pin := range byRefdes[refdes] {
			if !t.markVisited(refdes, pin) {
				continue
			}
			t.emit(refdes, pin, net)
		}
		if isPassive(refdes) {
			t.continueThroughPassive(refdes)
		}
	}
}

// continueThroughPassive implements spec §4.5.2 step 3: follow every
// other pin of a passive component onto its net, stopping expansion at
// stop nets unless another passive is waiting there too.
func (t *traverser) continueThroughPassive(refdes string) {
	comp := t.model.Component(refdes)
	pinIDs := make([]string, 0, len(comp.Pins))
	for pin := range comp.Pins {
		pinIDs = append(pinIDs, pin)
	}
	sort.Strings(pinIDs)

	for _, pin := range pinIDs {
		if !t.markVisited(refdes, pin) {
			continue
		}
		otherNet := comp.Pins[pin].Net
		t.emit(refdes, pin, otherNet)
		t.followOnwardNet(otherNet, refdes)
	}
}

// followOnwardNet handles a net newly reached through a passive's pin.
// originRefdes is the passive that led here, excluded from the "other
// endpoints" scan below so a stop net isn't kept alive purely because
// the component we just came from happens to be passive.
func (t *traverser) followOnwardNet(net, originRefdes string) {
	if t.visitedNets[net] {
		return
	}
	t.visitedNets[net] = true
	t.netOrder = append(t.netOrder, net)

	if !isStopNetWithExtra(net, t.opts.ExtraStopNets) {
		t.queue = append(t.queue, net)
		return
	}

	if t.inspectStopNetEndpoints(net, originRefdes) {
		t.queue = append(t.queue, net)
	}
}

// inspectStopNetEndpoints examines the other components sitting on a
// stop net (excluding originRefdes, the passive that reached it): active
// ones are reported (subject to skip filters) but traversal halts there;
// if another passive is found, it reports that the stop net should
// still be enqueued so that passive gets followed.
func (t *traverser) inspectStopNetEndpoints(net, originRefdes string) bool {
	byRefdes := t.model.Nets[net]
	refdesList := make([]string, 0, len(byRefdes))
	for refdes := range byRefdes {
		refdesList = append(refdesList, refdes)
	}
	sort.Strings(refdesList)

	foundPassive := false
	for _, refdes := range refdesList {
		if refdes == originRefdes {
			continue
		}
		if t.shouldSkip(refdes) {
			continue
		}
		if isPassive(refdes) {
			foundPassive = true
			continue
		}
		for _, pin := range byRefdes[refdes] {
			if !t.markVisited(refdes, pin) {
				continue
			}
			t.emit(refdes, pin, net)
		}
	}
	return foundPassive
}
