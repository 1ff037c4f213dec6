package refresh

// Point is a position in content coordinates.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Insets pads the scrollable area of a container on each edge.
type Insets struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// Rect is an origin plus size, used to tell the host where a component sits.
type Rect struct {
	Origin Point
	Size   Size
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
