// Package traversal implements the XNET traversal engine (spec §4.5,
// C5): BFS from a net or pin across series passives, stopping at ground
// and power rails, aggregating the result by MPN, and fingerprinting
// the resulting topology. Regex predicates are precompiled at package
// init per spec §9's "Regex at hot paths" note, in the same spirit as
// the teacher's verify/lint.go precompiling its own issue patterns.
package traversal

import (
	"regexp"
	"strings"
)

var (
	groundNetPattern = regexp.MustCompile(`(?i)^(GND|VSS|AGND|DGND|PGND|SGND|CGND)$`)

	// powerNetPattern covers named rail prefixes and bare voltage
	// literals; the leading +/- clause is intentionally broad per spec
	// §4.5.1 ("any name that begins with + or - followed by at least
	// one character").
	powerNetPattern = regexp.MustCompile(
		`(?i)^(VCC|VDD|VIN|VOUT|VBAT|VBUS|VSYS|PP|PN|LD_PP|LD_PN|PWR_|RAIL_).*$|^[+-].+$|^\d+[VA]\d*$`,
	)

	dnsPattern = regexp.MustCompile(
		`(?i)\b(DNS|DNP|DNF|DNI)\b|DO NOT STUFF|DO NOT POPULATE|DO NOT INSTALL|NOT POPULATED|NO POP`,
	)

	validRefdesPattern = regexp.MustCompile(`(?i)^[A-Z][A-Z0-9_]*$`)

	passivePrefixes = []string{"RS", "FR", "FB", "R", "L", "C"}
)

// isGroundNet reports whether name names a ground net (spec §4.5.1).
func isGroundNet(name string) bool {
	return groundNetPattern.MatchString(name)
}

// isPowerNet reports whether name names a power rail (spec §4.5.1).
func isPowerNet(name string) bool {
	return powerNetPattern.MatchString(name)
}

// isStopNet reports whether traversal should stop at name without
// continuing through it (spec §4.5.1: ground ∪ power).
func isStopNet(name string) bool {
	return isGroundNet(name) || isPowerNet(name)
}

// isStopNetWithExtra is isStopNet, extended with a caller-supplied set
// of additional exact net names to treat as stop nets (the xnet.yaml
// "stop_nets" project-specific rail names override, layered on top
// of the built-in patterns rather than replacing them).
func isStopNetWithExtra(name string, extra map[string]bool) bool {
	if extra[name] {
		return true
	}
	return isStopNet(name)
}

// isPassive reports whether refdes names a two-pin series-passthrough
// component (spec §4.5.1): R, RS, FR, L, C, or FB prefixes.
func isPassive(refdes string) bool {
	upper := strings.ToUpper(refdes)
	for _, prefix := range passivePrefixes {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}

// isDns reports whether a component's descriptive text marks it as not
// populated on the physical board (spec §4.5.1).
func isDns(mpn, description, comment string) bool {
	haystack := mpn + " " + description + " " + comment
	return dnsPattern.MatchString(haystack)
}

// isValidRefdes reports whether s is shaped like a reference
// designator, mirroring netlist.ValidRefdes for traversal-local use.
func isValidRefdes(s string) bool {
	return validRefdesPattern.MatchString(s)
}
