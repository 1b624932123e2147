// Package netlist defines the universal netlist model shared by the
// Altium and Cadence decoders: a net index, a component index, and the
// PinEntry sum type linking them (spec §3).
package netlist

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// NC is the sentinel net name for an unconnected pin.
const NC = "NC"

var refdesPattern = regexp.MustCompile(`(?i)^[A-Z][A-Z0-9_]*$`)

// ValidRefdes reports whether s is shaped like a real reference
// designator rather than an instance path (which contains '@', '.',
// ':', '(' etc. and must be filtered during decoding).
func ValidRefdes(s string) bool {
	if s == "" {
		return false
	}
	return refdesPattern.MatchString(s)
}

// PinEntry is either a bare net name or a {name, net} pair, used when a
// pin's logical name differs from its identifier (e.g. VIN on pin 1).
type PinEntry struct {
	Name string // logical pin name; empty when it equals the pin id
	Net  string
}

// Bare reports whether this entry carries no distinct logical name.
func (p PinEntry) Bare() bool { return p.Name == "" }

// MarshalJSON implements the §6 output contract: a bare entry serializes
// as the net name string; a named entry as {"name":..., "net":...}.
func (p PinEntry) MarshalJSON() ([]byte, error) {
	if p.Bare() {
		return json.Marshal(p.Net)
	}
	return json.Marshal(struct {
		Name string `json:"name"`
		Net  string `json:"net"`
	}{p.Name, p.Net})
}

// UnmarshalJSON accepts either a bare net-name string or a {name,net}
// object, the inverse of MarshalJSON.
func (p *PinEntry) UnmarshalJSON(data []byte) error {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		p.Name = ""
		p.Net = bare
		return nil
	}
	var named struct {
		Name string `json:"name"`
		Net  string `json:"net"`
	}
	if err := json.Unmarshal(data, &named); err != nil {
		return fmt.Errorf("pin entry: %w", err)
	}
	p.Name = named.Name
	p.Net = named.Net
	return nil
}

// Component is one entry of the component index C.
type Component struct {
	MPN         string // empty means absent/null
	Description string
	Comment     string
	Value       string
	Pins        map[string]PinEntry // pin id -> entry
}

// MarshalJSON implements the §6 output contract: mpn serializes as null
// when absent, and description/comment/value are omitted when empty.
func (c *Component) MarshalJSON() ([]byte, error) {
	type wire struct {
		MPN         *string             `json:"mpn"`
		Description string              `json:"description,omitempty"`
		Comment     string              `json:"comment,omitempty"`
		Value       string              `json:"value,omitempty"`
		Pins        map[string]PinEntry `json:"pins"`
	}
	w := wire{Description: c.Description, Comment: c.Comment, Value: c.Value, Pins: c.Pins}
	if c.MPN != "" {
		w.MPN = &c.MPN
	}
	return json.Marshal(w)
}

// NewComponent returns a zero-value component with its pin map ready.
func NewComponent() *Component {
	return &Component{Pins: make(map[string]PinEntry)}
}

// SetPin assigns pin p's net, preserving any logical name already on it.
func (c *Component) SetPin(pin, net string) {
	entry := c.Pins[pin]
	entry.Net = net
	c.Pins[pin] = entry
}

// SetPinName assigns pin p's logical name, preserving any net already
// recorded on it.
func (c *Component) SetPinName(pin, name string) {
	entry := c.Pins[pin]
	if name != pin {
		entry.Name = name
	}
	c.Pins[pin] = entry
}

// Model is the universal netlist: the net index N and the component
// index C, kept mutually consistent per the §3 invariants.
type Model struct {
	Nets       map[string]map[string][]string // net -> refdes -> pins (insertion order preserved)
	Components map[string]*Component          // refdes -> component
}

// New returns an empty, ready-to-populate model.
func New() *Model {
	return &Model{
		Nets:       make(map[string]map[string][]string),
		Components: make(map[string]*Component),
	}
}

// Component returns the component record for refdes, creating an empty
// one on first reference (decoders call this before populating fields).
func (m *Model) Component(refdes string) *Component {
	c, ok := m.Components[refdes]
	if !ok {
		c = NewComponent()
		m.Components[refdes] = c
	}
	return c
}

// Connect records that refdes's pin sits on net, on both sides of the
// invariant: N[net][refdes] gains pin (deduplicated, insertion-order
// preserved) and C[refdes].Pins[pin].Net is set to net.
func (m *Model) Connect(net, refdes, pin string) {
	if net == "" {
		net = NC
	}
	byRefdes, ok := m.Nets[net]
	if !ok {
		byRefdes = make(map[string][]string)
		m.Nets[net] = byRefdes
	}
	pins := byRefdes[refdes]
	for _, p := range pins {
		if p == pin {
			byRefdes[refdes] = pins
			m.Component(refdes).SetPin(pin, net)
			return
		}
	}
	byRefdes[refdes] = append(pins, pin)
	m.Component(refdes).SetPin(pin, net)
}

// PinsOf returns the sorted (by original insertion, not natural order)
// pin list for refdes on net, or nil if absent.
func (m *Model) PinsOf(net, refdes string) []string {
	byRefdes, ok := m.Nets[net]
	if !ok {
		return nil
	}
	return byRefdes[refdes]
}

// Verify checks the §3 boundary invariants between N and C, returning
// every mismatch found (empty slice means the model is consistent).
func (m *Model) Verify() []string {
	var problems []string

	for net, byRefdes := range m.Nets {
		refdesList := make([]string, 0, len(byRefdes))
		for r := range byRefdes {
			refdesList = append(refdesList, r)
		}
		sort.Strings(refdesList)

		for _, refdes := range refdesList {
			comp, ok := m.Components[refdes]
			if !ok {
				problems = append(problems, fmt.Sprintf(
					"net %q references unknown component %q", net, refdes))
				continue
			}
			for _, pin := range byRefdes[refdes] {
				entry, ok := comp.Pins[pin]
				if !ok {
					problems = append(problems, fmt.Sprintf(
						"net %q -> %s.%s has no matching pin entry", net, refdes, pin))
					continue
				}
				if entry.Net != net {
					problems = append(problems, fmt.Sprintf(
						"net %q -> %s.%s but pin entry names net %q", net, refdes, pin, entry.Net))
				}
			}
		}
	}

	refdesList := make([]string, 0, len(m.Components))
	for r := range m.Components {
		refdesList = append(refdesList, r)
	}
	sort.Strings(refdesList)

	for _, refdes := range refdesList {
		comp := m.Components[refdes]
		pinIDs := make([]string, 0, len(comp.Pins))
		for p := range comp.Pins {
			pinIDs = append(pinIDs, p)
		}
		sort.Strings(pinIDs)

		for _, pin := range pinIDs {
			entry := comp.Pins[pin]
			if entry.Net == "" || entry.Net == NC {
				continue
			}
			found := false
			for _, p := range m.Nets[entry.Net][refdes] {
				if p == pin {
					found = true
					break
				}
			}
			if !found {
				problems = append(problems, fmt.Sprintf(
					"%s.%s names net %q but is absent from N[%q]", refdes, pin, entry.Net, entry.Net))
			}
		}
	}

	return problems
}

// MarshalJSON renders the §6 output contract shape. Pin lists are always
// arrays here; scalar-compaction is a user-facing projection concern,
// not part of the universal model itself.
func (m *Model) MarshalJSON() ([]byte, error) {
	wire := struct {
		Nets       map[string]map[string][]string `json:"nets"`
		Components map[string]*Component          `json:"components"`
	}{m.Nets, m.Components}
	return json.Marshal(wire)
}

// CleanMPN trims s and returns "" for a whitespace-only string, per the
// §3 rule that mpn is "a non-empty trimmed string or absent/null".
func CleanMPN(s string) string {
	return strings.TrimSpace(s)
}
