package altium

import "sort"

// gridCellSize matches the coordinate scaling factor (spec §9): a
// coarser cell over-connects candidates, a finer one over-subdivides
// wires. 2x-4x is an acceptable range without algorithmic change.
const gridCellSize = 10000

type cellKey struct{ cx, cy int }

func cellOf(p Point) cellKey {
	return cellKey{floorDiv(p.X, gridCellSize), floorDiv(p.Y, gridCellSize)}
}

// floorDiv is integer division that rounds toward negative infinity,
// so coordinates on either side of zero bucket consistently.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// cellsOf returns every grid cell a device's segments touch.
func cellsOf(d Device) []cellKey {
	seen := make(map[cellKey]bool)
	var cells []cellKey
	add := func(c cellKey) {
		if !seen[c] {
			seen[c] = true
			cells = append(cells, c)
		}
	}
	for _, v := range d.Vertices {
		add(cellOf(v))
	}
	for _, seg := range d.Segments {
		a, b := cellOf(seg.A), cellOf(seg.B)
		for cx := min(a.cx, b.cx); cx <= max(a.cx, b.cx); cx++ {
			for cy := min(a.cy, b.cy); cy <= max(a.cy, b.cy); cy++ {
				add(cellKey{cx, cy})
			}
		}
	}
	return cells
}

// connected implements spec §4.3.4: two devices are connected when any
// vertex of one lies on a segment of the other, or both are POWER_PORT/
// NET_LABEL sharing a non-empty Text.
func connected(a, b Device) bool {
	for _, v := range a.Vertices {
		for _, seg := range b.Segments {
			if pointOnSegment(v, seg) {
				return true
			}
		}
	}
	for _, v := range b.Vertices {
		for _, seg := range a.Segments {
			if pointOnSegment(v, seg) {
				return true
			}
		}
	}
	at, bt := a.GlobalText(), b.GlobalText()
	if at != "" && bt != "" && at == bt {
		return true
	}
	return false
}

// Group partitions devices into electrically connected sets using a
// grid-indexed union-find (spec §4.3.5): exact-vertex coincidence first
// (via a point-to-devices multimap), then full geometric connectivity
// among same-cell candidates, then global-name bucketing. Each returned
// group's devices are ordered by original record index.
func Group(devices []Device) [][]Device {
	uf := newUnionFind(len(devices))

	pointToDevices := make(map[Point][]int)
	for i, d := range devices {
		for _, v := range d.Vertices {
			pointToDevices[v] = append(pointToDevices[v], i)
		}
	}
	for _, members := range pointToDevices {
		if len(members) < 2 {
			continue
		}
		for k := 1; k < len(members); k++ {
			uf.union(members[0], members[k])
		}
	}

	cellToDevices := make(map[cellKey][]int)
	for i, d := range devices {
		for _, c := range cellsOf(d) {
			cellToDevices[c] = append(cellToDevices[c], i)
		}
	}

	for i, d := range devices {
		candidates := make(map[int]bool)
		for _, c := range cellsOf(d) {
			for _, j := range cellToDevices[c] {
				if j != i {
					candidates[j] = true
				}
			}
		}
		for j := range candidates {
			if uf.find(i) == uf.find(j) {
				continue
			}
			if connected(d, devices[j]) {
				uf.union(i, j)
			}
		}
	}

	byText := make(map[string][]int)
	for i, d := range devices {
		if t := d.GlobalText(); t != "" {
			byText[t] = append(byText[t], i)
		}
	}
	for _, members := range byText {
		if len(members) < 2 {
			continue
		}
		for k := 1; k < len(members); k++ {
			uf.union(members[0], members[k])
		}
	}

	groupsByRoot := uf.groups()
	groups := make([][]Device, 0, len(groupsByRoot))
	for _, members := range groupsByRoot {
		sort.Slice(members, func(a, b int) bool {
			return devices[members[a]].Index < devices[members[b]].Index
		})
		group := make([]Device, len(members))
		for i, idx := range members {
			group[i] = devices[idx]
		}
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i][0].Index < groups[j][0].Index
	})

	return groups
}
