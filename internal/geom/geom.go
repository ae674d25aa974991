package geom

import "fmt"

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Edge is the screen edge a panel is docked to.
type Edge int

const (
	EdgeBottom Edge = iota
	EdgeTop
	EdgeLeft
	EdgeRight
)

var edgeNames = [...]string{"bottom", "top", "left", "right"}

func (e Edge) String() string {
	if int(e) < len(edgeNames) {
		return edgeNames[e]
	}
	return "bottom"
}

func ParseEdge(s string) (Edge, bool) {
	for i, name := range edgeNames {
		if name == s {
			return Edge(i), true
		}
	}
	return EdgeBottom, false
}

// Orientation of a panel docked to this edge.
func (e Edge) Orientation() Orientation {
	if e == EdgeLeft || e == EdgeRight {
		return Vertical
	}
	return Horizontal
}

type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}
