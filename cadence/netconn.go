// Package cadence decodes the three Cadence Allegro/OrCAD text netlist
// files (spec §4.4, C4) and joins them into the universal model: each
// parser is a small line-oriented state machine, in the same spirit as
// the teacher's core/emu.go instruction dispatch — no grammar, just
// sentinel-line recognition and token splitting.
package cadence

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// NetConnections is the result of parsing pstxnet.dat: net name ->
// refdes -> accumulated pin list, in first-seen order.
type NetConnections map[string]map[string][]string

func (nc NetConnections) addPin(net, refdes, pin string) {
	byRefdes, ok := nc[net]
	if !ok {
		byRefdes = make(map[string][]string)
		nc[net] = byRefdes
	}
	byRefdes[refdes] = append(byRefdes[refdes], pin)
}

// ParseNetConnections decodes a pstxnet.dat stream (spec §4.4): a
// NET_NAME sentinel opens a section named by the following single-quoted
// line, and NODE_NAME lines within it each carry a "<refdes> <pin>" pair.
func ParseNetConnections(r io.Reader) (NetConnections, error) {
	nc := make(NetConnections)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var currentNet string
	expectNetName := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "NET_NAME"):
			expectNetName = true
			continue
		case expectNetName:
			currentNet = unquote(line)
			expectNetName = false
			continue
		case strings.HasPrefix(line, "NODE_NAME"):
			fields := strings.Fields(line)
			if len(fields) < 3 {
				continue
			}
			refdes, pin := fields[1], fields[2]
			nc.addPin(currentNet, refdes, pin)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cadence: pstxnet.dat: %w", err)
	}
	return nc, nil
}

// unquote strips a single layer of surrounding single quotes, if present.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}
