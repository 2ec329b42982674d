// Package drawing holds the 2D primitives the viewer renders and the loaders
// that produce them.
package drawing

import (
	"fmt"
	"math"
)

// Kind names an entity type.
type Kind string

const (
	KindLine   Kind = "line"
	KindArc    Kind = "arc"
	KindCircle Kind = "circle"
)

// Point is a position in world units.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Entity is one drawable primitive. Arc angles are degrees, counter-clockwise
// from +X, swept from StartAngle to EndAngle.
type Entity struct {
	Kind       Kind    `yaml:"kind"`
	P1         Point   `yaml:"p1,omitempty"`
	P2         Point   `yaml:"p2,omitempty"`
	Center     Point   `yaml:"center,omitempty"`
	Radius     float64 `yaml:"radius,omitempty"`
	StartAngle float64 `yaml:"start_angle,omitempty"`
	EndAngle   float64 `yaml:"end_angle,omitempty"`
}

// Drawing is a named list of entities.
type Drawing struct {
	Name     string   `yaml:"name"`
	Entities []Entity `yaml:"entities"`

	// Fingerprint identifies the bytes the drawing was decoded from.
	Fingerprint string `yaml:"-"`
}

// Line returns a line entity.
func Line(x1, y1, x2, y2 float64) Entity {
	return Entity{Kind: KindLine, P1: Point{x1, y1}, P2: Point{x2, y2}}
}

// Arc returns an arc entity.
func Arc(cx, cy, r, startDeg, endDeg float64) Entity {
	return Entity{Kind: KindArc, Center: Point{cx, cy}, Radius: r, StartAngle: startDeg, EndAngle: endDeg}
}

// Circle returns a circle entity.
func Circle(cx, cy, r float64) Entity {
	return Entity{Kind: KindCircle, Center: Point{cx, cy}, Radius: r}
}

// Validate checks the entity's shape.
func (e Entity) Validate() error {
	switch e.Kind {
	case KindLine:
		return nil
	case KindArc, KindCircle:
		if !(e.Radius > 0) || math.IsInf(e.Radius, 0) {
			return fmt.Errorf("%s: radius must be positive and finite, got %v", e.Kind, e.Radius)
		}
		return nil
	}
	return fmt.Errorf("unsupported entity kind %q", e.Kind)
}

// Endpoints returns the start and end of an open entity. Circles have none.
func (e Entity) Endpoints() (start, end Point, ok bool) {
	switch e.Kind {
	case KindLine:
		return e.P1, e.P2, true
	case KindArc:
		return e.pointAt(e.StartAngle), e.pointAt(e.EndAngle), true
	}
	return Point{}, Point{}, false
}

// Sweep returns the arc's counter-clockwise span in degrees, in (0, 360].
func (e Entity) Sweep() float64 {
	switch e.Kind {
	case KindCircle:
		return 360
	case KindArc:
		s := math.Mod(e.EndAngle-e.StartAngle, 360)
		if s <= 0 {
			s += 360
		}
		return s
	}
	return 0
}

func (e Entity) pointAt(deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{
		X: e.Center.X + e.Radius*math.Cos(rad),
		Y: e.Center.Y + e.Radius*math.Sin(rad),
	}
}

// Points approximates the entity as a polyline. A full circle uses
// segments pieces; arcs use a share proportional to their sweep.
func (e Entity) Points(segments int) []Point {
	if segments < 4 {
		segments = 4
	}
	switch e.Kind {
	case KindLine:
		return []Point{e.P1, e.P2}
	case KindArc, KindCircle:
		sweep := e.Sweep()
		n := int(math.Ceil(float64(segments) * sweep / 360))
		if n < 1 {
			n = 1
		}
		pts := make([]Point, 0, n+1)
		for i := 0; i <= n; i++ {
			pts = append(pts, e.pointAt(e.StartAngle+sweep*float64(i)/float64(n)))
		}
		return pts
	}
	return nil
}

// Validate checks every entity.
func (d *Drawing) Validate() error {
	for i, e := range d.Entities {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
	}
	return nil
}

// Extents returns the bounding box of the drawing. ok is false when the
// drawing is empty.
func (d *Drawing) Extents() (lo, hi Point, ok bool) {
	lo = Point{math.Inf(1), math.Inf(1)}
	hi = Point{math.Inf(-1), math.Inf(-1)}
	for _, e := range d.Entities {
		for _, p := range e.Points(64) {
			lo.X = math.Min(lo.X, p.X)
			lo.Y = math.Min(lo.Y, p.Y)
			hi.X = math.Max(hi.X, p.X)
			hi.Y = math.Max(hi.Y, p.Y)
			ok = true
		}
	}
	return lo, hi, ok
}
