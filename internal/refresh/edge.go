package refresh

import "time"

// Edge names the side of a container a component is attached to.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "unknown"
	}
}

type axis int

const (
	axisY axis = iota
	axisX
)

const (
	pullAnimationDuration     = 200 * time.Millisecond
	loadMoreAnimationDuration = 300 * time.Millisecond
)

// edgeSpec is everything that differs between the four components: which
// fields of the container geometry they read and write, and the trigger rule
// for content shorter than the viewport.
type edgeSpec struct {
	edge    Edge
	axis    axis
	leading bool // pull-to-refresh (top/left) rather than load-more (bottom/right)

	// shortContentFactor scales the trigger distance when the content does
	// not fill the viewport. Load-more edges only.
	shortContentFactor float64

	// armFactor, when set, makes an overflowing load-more edge follow the
	// drag: past the trailing edge it reports pulling, past armFactor times
	// the trigger it reports armed, and it starts only once released.
	armFactor float64

	startDuration time.Duration
	stopDuration  time.Duration
}

var edgeSpecs = map[Edge]edgeSpec{
	EdgeTop: {
		edge:          EdgeTop,
		axis:          axisY,
		leading:       true,
		startDuration: pullAnimationDuration,
		stopDuration:  pullAnimationDuration,
	},
	EdgeLeft: {
		edge:          EdgeLeft,
		axis:          axisX,
		leading:       true,
		startDuration: pullAnimationDuration,
		stopDuration:  pullAnimationDuration,
	},
	EdgeBottom: {
		edge:               EdgeBottom,
		axis:               axisY,
		shortContentFactor: 0.5,
		startDuration:      loadMoreAnimationDuration,
		stopDuration:       loadMoreAnimationDuration,
	},
	// Horizontal swipes are easy to make by accident, so a right edge over
	// short content asks for twice the trigger distance.
	EdgeRight: {
		edge:               EdgeRight,
		axis:               axisX,
		shortContentFactor: 2,
		armFactor:          2,
		startDuration:      loadMoreAnimationDuration,
		stopDuration:       loadMoreAnimationDuration,
	},
}

func specFor(e Edge) edgeSpec {
	if s, ok := edgeSpecs[e]; ok {
		return s
	}
	return edgeSpecs[EdgeTop]
}

func (s edgeSpec) offset(p Point) float64 {
	if s.axis == axisX {
		return p.X
	}
	return p.Y
}

func (s edgeSpec) withOffset(p Point, v float64) Point {
	if s.axis == axisX {
		p.X = v
	} else {
		p.Y = v
	}
	return p
}

func (s edgeSpec) length(sz Size) float64 {
	if s.axis == axisX {
		return sz.Width
	}
	return sz.Height
}

func (s edgeSpec) crossLength(sz Size) float64 {
	if s.axis == axisX {
		return sz.Height
	}
	return sz.Width
}

func (s edgeSpec) leadingInset(in Insets) float64 {
	if s.axis == axisX {
		return in.Left
	}
	return in.Top
}

func (s edgeSpec) trailingInset(in Insets) float64 {
	if s.axis == axisX {
		return in.Right
	}
	return in.Bottom
}

// inset reads the inset on the component's own edge.
func (s edgeSpec) inset(in Insets) float64 {
	if s.leading {
		return s.leadingInset(in)
	}
	return s.trailingInset(in)
}

// withInset replaces the inset on the component's own edge.
func (s edgeSpec) withInset(in Insets, v float64) Insets {
	switch s.edge {
	case EdgeTop:
		in.Top = v
	case EdgeBottom:
		in.Bottom = v
	case EdgeLeft:
		in.Left = v
	case EdgeRight:
		in.Right = v
	}
	return in
}

// frame lays out a component of the given extent against the container.
func (s edgeSpec) frame(extent float64, content Size, bounds Size, baseline Insets) Rect {
	var r Rect
	cross := s.crossLength(bounds)
	var along float64
	if s.leading {
		along = -extent
	} else {
		along = s.length(content) + s.trailingInset(baseline)
	}
	if s.axis == axisX {
		r.Origin = Point{X: along}
		r.Size = Size{Width: extent, Height: cross}
	} else {
		r.Origin = Point{Y: along}
		r.Size = Size{Width: cross, Height: extent}
	}
	return r
}
