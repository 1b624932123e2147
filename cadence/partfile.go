package cadence

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/wiretrace/xnet/netlist"
)

// PartInfo is one component's extracted fields from pstxprt.dat, before
// the MFGR_PN/part-name fallback is resolved (see resolvedMPN).
type PartInfo struct {
	MfgrPN      string
	Description string
}

// partHeader matches "<refdes> '<part-name>':" and its HDL variant
// "<refdes> '<part-name>':;" (spec §4.4).
var partHeader = regexp.MustCompile(`^(\S+)\s+'([^']*)':;?$`)

// keyValueLine matches "KEY=VALUE;" property lines.
var keyValueLine = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)=(.*)$`)

// ParsePartFile decodes a pstxprt.dat stream into per-component property
// bags and the refdes -> part-name mapping used later to join against
// pstchip.dat's pin-number maps.
func ParsePartFile(r io.Reader) (map[string]*PartInfo, map[string]string, error) {
	parts := make(map[string]*PartInfo)
	partNames := make(map[string]string)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var currentRefdes string
	expectHeader := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "PART_NAME"):
			expectHeader = true
			continue
		case expectHeader:
			m := partHeader.FindStringSubmatch(line)
			if m == nil {
				expectHeader = false
				continue
			}
			currentRefdes = m[1]
			partNames[currentRefdes] = m[2]
			parts[currentRefdes] = &PartInfo{}
			expectHeader = false
		default:
			if currentRefdes == "" {
				continue
			}
			m := keyValueLine.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			key, value := m[1], trimValue(m[2])
			info := parts[currentRefdes]
			switch key {
			case "MFGR_PN":
				info.MfgrPN = value
			case "DESCR":
				info.Description = value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("cadence: pstxprt.dat: %w", err)
	}
	return parts, partNames, nil
}

// trimValue strips quotes and trailing ";,", per spec §4.4's "unquoted
// and trimmed of trailing ;,".
func trimValue(s string) string {
	s = strings.TrimRight(s, ";,")
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = s[1 : len(s)-1]
	}
	return s
}

// resolvedMPN returns the final MPN for a component: MFGR_PN when
// present, otherwise the part-name string itself (spec §4.4).
func resolvedMPN(info *PartInfo, partName string) string {
	if info != nil && info.MfgrPN != "" {
		return netlist.CleanMPN(info.MfgrPN)
	}
	return netlist.CleanMPN(partName)
}
