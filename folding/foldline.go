package folding

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// FoldLine is the infinite line through two distinct points A and B that a grasped point is pivoted about.
// Its direction, B - A, fixes the sense of rotation: the fold follows the right hand rule about it.
type FoldLine struct {
	A r3.Vector `json:"a"`
	B r3.Vector `json:"b"`
}

// NewFoldLine returns the fold line through a and b.
func NewFoldLine(a, b r3.Vector) FoldLine {
	return FoldLine{A: a, B: b}
}

// NewFoldLineFromDirection returns the fold line through point with the given direction.
func NewFoldLineFromDirection(point, direction r3.Vector) FoldLine {
	return FoldLine{A: point, B: point.Add(direction)}
}

// Direction returns B - A.
func (l FoldLine) Direction() r3.Vector {
	return l.B.Sub(l.A)
}

// Reversed returns the same line with its direction flipped, folding the other way round.
func (l FoldLine) Reversed() FoldLine {
	return FoldLine{A: l.B, B: l.A}
}

func (l FoldLine) String() string {
	return fmt.Sprintf("{A:%v B:%v}", l.A, l.B)
}
