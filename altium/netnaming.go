package altium

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/wiretrace/xnet/internal/idgen"
)

// pinRef is a (refdes, pin number) pair used only for net-naming
// tie-breaks (spec §4.3.6 rule 2).
type pinRef struct {
	refdes string
	pin    string
}

// NameNet implements spec §4.3.6's priority order. unnamed is called
// only when no name could be assigned by rules 1-2, and should return a
// fresh "UnnamedNet<k>" (the caller drives the counter so numbering is
// stable across the whole decode, not per-net).
func NameNet(group []Device, tree *Tree, unnamed func() string) string {
	for _, d := range group {
		if d.Kind == KindPowerPort || d.Kind == KindNetLabel {
			if t := d.GlobalText(); t != "" {
				return t
			}
		}
	}

	var refs []pinRef
	for _, d := range group {
		if d.Kind != KindPin || !d.HasOwner {
			continue
		}
		refdes, ok := tree.DesignatorText(d.OwnerIndex)
		if !ok {
			continue
		}
		pin, ok := pinNumber(d.Record)
		if !ok {
			continue
		}
		refs = append(refs, pinRef{refdes: refdes, pin: pin})
	}

	if len(refs) > 0 {
		sort.Slice(refs, func(i, j int) bool {
			if refs[i].refdes != refs[j].refdes {
				return refs[i].refdes < refs[j].refdes
			}
			return comparePinNumbers(refs[i].pin, refs[j].pin) < 0
		})
		best := refs[0]
		return fmt.Sprintf("Net%s_%s", best.refdes, best.pin)
	}

	return unnamed()
}

// comparePinNumbers compares two pin identifiers: numerically when both
// parse as integers, case-sensitive lexicographically otherwise (spec
// §4.3.6, and see DESIGN.md's Open Question decision on this tie-break).
func comparePinNumbers(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// UnnamedNetCounter returns a closure minting "UnnamedNet1",
// "UnnamedNet2", ... using internal/idgen's monotonic counter (spec
// §4.3.6 rule 3).
func UnnamedNetCounter() func() string {
	next := idgen.Counter()
	return func() string {
		return fmt.Sprintf("UnnamedNet%d", next())
	}
}
