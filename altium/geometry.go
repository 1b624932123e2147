package altium

import (
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/wiretrace/xnet/recstream"
)

// Point is an integer coordinate in the common scaled coordinate space
// (spec §4.3.2: round(base*10000 + frac)).
type Point struct{ X, Y int }

// Segment is a straight line between two points.
type Segment struct{ A, B Point }

// scaleCoord returns round(base*10000 + frac) for the attribute pair
// named baseKey/baseKey+"_Frac" (and their all-caps aliases, handled by
// Record.Get/MustFloat).
func scaleCoord(r recstream.Record, baseKey string) int {
	base := r.MustFloat(baseKey)
	frac := r.MustFloat(baseKey + "_Frac")
	return int(math.Round(base*10000 + frac))
}

func locationX(r recstream.Record) int { return scaleCoord(r, "Location.X") }
func locationY(r recstream.Record) int { return scaleCoord(r, "Location.Y") }

// pinVertices computes a pin's two vertices: the origin and an endpoint
// offset by pinLength at an angle determined by the lowest two bits of
// PinConglomerate (spec §4.3.2).
func pinVertices(r recstream.Record) []Point {
	origin := Point{X: locationX(r), Y: locationY(r)}

	length := r.MustFloat("PinLength")
	conglomerate := int(r.MustFloat("PinConglomerate"))
	theta := float64(conglomerate&0x03) * (math.Pi / 2)

	dx := int(math.Round(math.Cos(theta) * length))
	dy := int(math.Round(math.Sin(theta) * length))

	endpoint := Point{X: origin.X + dx, Y: origin.Y + dy}
	return []Point{origin, endpoint}
}

var wireVertexKey = regexp.MustCompile(`(?i)^X(\d+)$`)

// wireVertices collects a wire's N >= 2 vertices from numbered X/Y
// attribute pairs, sorted by their numeric suffix ascending.
func wireVertices(r recstream.Record) []Point {
	var indices []int
	for key := range r.Attrs {
		m := wireVertexKey.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		indices = append(indices, n)
	}
	sort.Ints(indices)

	points := make([]Point, 0, len(indices))
	for _, n := range indices {
		x := r.MustFloat("X" + strconv.Itoa(n))
		y := r.MustFloat("Y" + strconv.Itoa(n))
		points = append(points, Point{
			X: int(math.Round(x)),
			Y: int(math.Round(y)),
		})
	}
	return points
}

// singlePointVertices returns the lone vertex of a power port or net
// label: (Location.X, Location.Y).
func singlePointVertices(r recstream.Record) []Point {
	return []Point{{X: locationX(r), Y: locationY(r)}}
}

// segments returns the consecutive line segments spanning vertices: N-1
// segments for N>=2 vertices, or one degenerate point-segment for a
// single vertex.
func segments(vertices []Point) []Segment {
	if len(vertices) == 0 {
		return nil
	}
	if len(vertices) == 1 {
		return []Segment{{A: vertices[0], B: vertices[0]}}
	}
	out := make([]Segment, 0, len(vertices)-1)
	for i := 0; i+1 < len(vertices); i++ {
		out = append(out, Segment{A: vertices[i], B: vertices[i+1]})
	}
	return out
}

// pointOnSegment reports whether p lies within the bounding box of seg
// (spec §4.3.4's min/max rule — this implementation checks the
// axis-aligned bounding box, which is exact for the wires Altium emits:
// orthogonal or the single-vertex degenerate case).
func pointOnSegment(p Point, seg Segment) bool {
	minX, maxX := seg.A.X, seg.B.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := seg.A.Y, seg.B.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}
