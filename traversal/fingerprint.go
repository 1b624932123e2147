package traversal

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// emptyFingerprint is returned for a component set with nothing in it
// (spec §4.5.5).
const emptyFingerprint = "0000000000000000"

type canonicalConnection struct {
	Pins []string `json:"pins"`
	Net  string   `json:"net"`
}

type canonicalComponent struct {
	Refdes      string                `json:"refdes"`
	MPN         string                `json:"mpn"`
	Connections []canonicalConnection `json:"connections"`
}

// ComputeCircuitHash implements spec §4.5.5: a deterministic
// 16-hex-character fingerprint, independent of input ordering, so two
// traversals of the same circuit from different starting points agree.
func ComputeCircuitHash(components []ComponentRecord) string {
	if len(components) == 0 {
		return emptyFingerprint
	}

	canonical := make([]canonicalComponent, len(components))
	for i, c := range components {
		conns := make([]canonicalConnection, len(c.Connections))
		for j, conn := range c.Connections {
			pins := append([]string(nil), conn.Pins...)
			sort.Slice(pins, func(a, b int) bool { return naturalLess(pins[a], pins[b]) })
			conns[j] = canonicalConnection{Pins: pins, Net: conn.Net}
		}
		sort.Slice(conns, func(a, b int) bool { return conns[a].Net < conns[b].Net })
		canonical[i] = canonicalComponent{Refdes: c.Refdes, MPN: c.MPN, Connections: conns}
	}
	sort.Slice(canonical, func(i, j int) bool {
		return naturalLess(canonical[i].Refdes, canonical[j].Refdes)
	})

	blob, err := json.Marshal(canonical)
	if err != nil {
		// canonical is a plain value type with no cyclic or unsupported
		// fields; Marshal cannot fail on it.
		panic(err)
	}
	sum := sha256.Sum256(blob)
	return hex.EncodeToString(sum[:])[:16]
}
