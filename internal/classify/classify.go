// Package classify assigns a structural role to every module of a QR symbol.
//
// The roles decide how each module is painted: structural patterns are
// always drawn solid, protectors keep a light margin around them, and data
// modules follow the rounded or square style.
package classify

// Tag is the role of a single module.
type Tag uint8

const (
	Empty Tag = iota
	Data
	Position
	Alignment
	Timing
	Protector
)

var tagNames = [...]string{"empty", "data", "position", "alignment", "timing", "protector"}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// Structural reports whether the tag belongs to a finder, alignment or timing pattern.
func (t Tag) Structural() bool {
	return t == Position || t == Alignment || t == Timing
}

// Matrix is a square grid of tags.
type Matrix struct {
	size int
	tags []Tag
}

// Size returns the number of modules per side.
func (m Matrix) Size() int { return m.size }

// At returns the tag at column x, row y. Out-of-range cells are Empty.
func (m Matrix) At(x, y int) Tag {
	if x < 0 || y < 0 || x >= m.size || y >= m.size {
		return Empty
	}
	return m.tags[y*m.size+x]
}

// Classify tags every module of the square bit grid bits (indexed [y][x])
// given the alignment pattern centers of its version.
func Classify(bits [][]bool, centers []int) Matrix {
	n := len(bits)
	m := Matrix{size: n, tags: make([]Tag, n*n)}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			set := x < len(bits[y]) && bits[y][x]
			m.tags[y*n+x] = tagFor(x, y, n, set, centers)
		}
	}
	return m
}

func tagFor(x, y, n int, set bool, centers []int) Tag {
	tag := Empty
	if set {
		tag = Data
	}

	switch {
	case isAlignment(x, y, centers, true):
		tag = pick(set, Alignment)
	case isPosition(x, y, n, true):
		tag = pick(set, Position)
	case isTiming(x, y, n):
		tag = pick(set, Timing)
	}

	if tag == Empty && isPosition(x, y, n, false) {
		tag = Protector
	}
	return tag
}

func pick(set bool, structural Tag) Tag {
	if set {
		return structural
	}
	return Protector
}

// isAlignment reports whether (x, y) falls in the 5×5 footprint of an
// alignment pattern. With edgeOnly, only patterns on row/column 6 or on the
// last center line count. Centers that would collide with a finder pattern
// never hold an alignment pattern.
func isAlignment(x, y int, centers []int, edgeOnly bool) bool {
	if len(centers) == 0 {
		return false
	}
	edge := centers[len(centers)-1]
	for _, cy := range centers {
		for _, cx := range centers {
			if edgeOnly && cx != 6 && cy != 6 && cx != edge && cy != edge {
				continue
			}
			if cx == 6 && cy == 6 || cx == 6 && cy == edge || cy == 6 && cx == edge {
				continue
			}
			if x >= cx-2 && x <= cx+2 && y >= cy-2 && y <= cy+2 {
				return true
			}
		}
	}
	return false
}

// isPosition reports whether (x, y) is inside a finder pattern box. The
// inner box is the 7×7 pattern itself; the outer box also covers the
// separator, so it is inclusive of 7 and one wider towards the far edges.
func isPosition(x, y, n int, inner bool) bool {
	if inner {
		return x < 7 && (y < 7 || y >= n-7) || x >= n-7 && y < 7
	}
	return x <= 7 && (y <= 7 || y >= n-8) || x >= n-8 && y <= 7
}

func isTiming(x, y, n int) bool {
	return y == 6 && x >= 8 && x < n-8 || x == 6 && y >= 8 && y < n-8
}
