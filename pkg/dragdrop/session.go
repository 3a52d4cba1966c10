package dragdrop

import "math"

// DefaultThreshold is how far, in pixels, the pointer must travel before a
// press becomes a drag
const DefaultThreshold = 6.0

// Phase of a pointer session
type Phase int

const (
	Idle Phase = iota
	Armed
	Dragging
)

func (p Phase) String() string {
	switch p {
	case Armed:
		return "armed"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Point is a position in timeline content coordinates
type Point struct {
	X, Y float64
}

func (p Point) distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Session tracks one press from pointer down to release. Native drag and
// drop and pointer tracking both feed the same session.
type Session struct {
	Phase     Phase
	Origin    Point
	Payload   Payload
	Threshold float64
	// NoDrag keeps the session armed however far the pointer moves
	NoDrag bool
}

// Start arms the session at origin
func (s *Session) Start(origin Point, p Payload) {
	s.Phase = Armed
	s.Origin = origin
	s.Payload = p
}

// Move promotes an armed session to Dragging once the pointer is past the
// threshold, and reports whether the session is dragging
func (s *Session) Move(pos Point) bool {
	if s.Phase == Armed && !s.NoDrag && pos.distance(s.Origin) >= s.threshold() {
		s.Phase = Dragging
	}
	return s.Phase == Dragging
}

// Reset returns the session to Idle
func (s *Session) Reset() {
	threshold := s.Threshold
	*s = Session{Threshold: threshold}
}

func (s *Session) threshold() float64 {
	if s.Threshold <= 0 {
		return DefaultThreshold
	}
	return s.Threshold
}
