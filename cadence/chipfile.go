package cadence

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ChipPart is one `primitive` section of pstchip.dat: the pin name ->
// pin number map used to resolve logical pin names during the post-join,
// plus any VALUE body property (spec §4.4).
type ChipPart struct {
	PartName string
	Pins     map[string]string // pin name -> pin number
	Value    string
}

var (
	primitiveHeader = regexp.MustCompile(`^primitive\s+'([^']*)'`)
	pinNameLine     = regexp.MustCompile(`^'([^']*)':$`)
	pinNumberLine   = regexp.MustCompile(`^PIN_NUMBER='\(?([^')]*)\)?';?$`)
)

// ParseChipFile decodes a pstchip.dat stream into the list of primitives
// it declares, each with its pin name/number map and its VALUE body
// property; other body properties are not kept.
func ParseChipFile(r io.Reader) ([]*ChipPart, error) {
	var chips []*ChipPart

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var current *ChipPart
	inPin := false
	inBody := false
	var pendingPinName string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if m := primitiveHeader.FindStringSubmatch(line); m != nil {
			current = &ChipPart{PartName: m[1], Pins: make(map[string]string)}
			chips = append(chips, current)
			inPin, inBody = false, false
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case line == "pin" || strings.HasPrefix(line, "pin "):
			inPin = true
			pendingPinName = ""
			continue
		case strings.HasPrefix(line, "end_pin"):
			inPin = false
			continue
		case line == "body" || strings.HasPrefix(line, "body "):
			inBody = true
			continue
		case strings.HasPrefix(line, "end_body"):
			inBody = false
			continue
		}

		if inPin {
			if pendingPinName == "" {
				if m := pinNameLine.FindStringSubmatch(line); m != nil {
					pendingPinName = m[1]
				}
				continue
			}
			if m := pinNumberLine.FindStringSubmatch(line); m != nil {
				current.Pins[pendingPinName] = m[1]
				pendingPinName = ""
			}
			continue
		}

		if inBody {
			m := keyValueLine.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			key, value := m[1], trimValue(m[2])
			if key == "VALUE" {
				current.Value = value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cadence: pstchip.dat: %w", err)
	}
	return chips, nil
}
