// Package trace records camera input events as CSV and replays them
// against a camera, for reproducing view glitches without a window.
package trace

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"kerf-view/viewport"
)

// Event kinds.
const (
	KindWheel  = "wheel"
	KindDrag   = "drag"
	KindResize = "resize"
)

// Event is one camera input. For wheel A is the raw delta; for drag A and B
// are the movement; for resize they are width and height.
type Event struct {
	Seq  int     `csv:"seq"`
	Kind string  `csv:"kind"`
	A    float64 `csv:"a"`
	B    float64 `csv:"b"`
}

// Frame is the camera state after an event.
type Frame struct {
	Seq    int     `csv:"seq"`
	Kind   string  `csv:"kind"`
	Zoom   float64 `csv:"zoom"`
	X      float64 `csv:"x"`
	Y      float64 `csv:"y"`
	Left   float64 `csv:"left"`
	Right  float64 `csv:"right"`
	Top    float64 `csv:"top"`
	Bottom float64 `csv:"bottom"`
	Width  int     `csv:"width"`
	Height int     `csv:"height"`
}

// FrameOf flattens a transform.
func FrameOf(seq int, kind string, t viewport.Transform) Frame {
	return Frame{
		Seq:    seq,
		Kind:   kind,
		Zoom:   t.Zoom,
		X:      t.Position.X,
		Y:      t.Position.Y,
		Left:   t.Bounds.Left,
		Right:  t.Bounds.Right,
		Top:    t.Bounds.Top,
		Bottom: t.Bounds.Bottom,
		Width:  t.Width,
		Height: t.Height,
	}
}

// Recorder appends events to a CSV stream.
type Recorder struct {
	w             io.Writer
	seq           int
	headerWritten bool
	err           error
}

// NewRecorder writes to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

// Wheel records a wheel delta.
func (r *Recorder) Wheel(delta float64) { r.write(KindWheel, delta, 0) }

// Drag records a drag movement.
func (r *Recorder) Drag(mx, my float64) { r.write(KindDrag, mx, my) }

// Resize records a surface size.
func (r *Recorder) Resize(w, h int) { r.write(KindResize, float64(w), float64(h)) }

// Err returns the first write error. Recording stops after an error. A nil
// Recorder records nothing.
func (r *Recorder) Err() error {
	if r == nil {
		return nil
	}
	return r.err
}

func (r *Recorder) write(kind string, a, b float64) {
	if r == nil || r.err != nil {
		return
	}
	records := []Event{{Seq: r.seq, Kind: kind, A: a, B: b}}
	r.seq++

	var err error
	if !r.headerWritten {
		err = gocsv.Marshal(records, r.w)
		r.headerWritten = true
	} else {
		err = gocsv.MarshalWithoutHeaders(records, r.w)
	}
	if err != nil {
		r.err = fmt.Errorf("writing trace: %w", err)
	}
}

// ReadEvents parses a recorded trace.
func ReadEvents(r io.Reader) ([]Event, error) {
	var events []Event
	if err := gocsv.Unmarshal(r, &events); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	for _, e := range events {
		switch e.Kind {
		case KindWheel, KindDrag, KindResize:
		default:
			return nil, fmt.Errorf("reading trace: event %d: unknown kind %q", e.Seq, e.Kind)
		}
	}
	return events, nil
}

type size struct{ w, h int }

func (s size) Size() (int, int) { return s.w, s.h }

// Replay applies events to cam in order and returns the state after each.
// The first valid resize attaches an unattached camera.
func Replay(cam *viewport.Camera, events []Event) []Frame {
	rw := viewport.NewResizeWatcher()
	unbind := cam.Bind(rw)
	defer unbind()

	frames := make([]Frame, 0, len(events))
	for _, e := range events {
		switch e.Kind {
		case KindWheel:
			cam.OnWheel(e.A)
		case KindDrag:
			cam.OnDrag(e.A, e.B)
		case KindResize:
			w, h := int(e.A), int(e.B)
			if !cam.Ready() {
				cam.Attach(size{w, h})
			}
			rw.Observe(w, h)
		}
		frames = append(frames, FrameOf(e.Seq, e.Kind, cam.Snapshot()))
	}
	return frames
}

// WriteFrames writes frames as CSV with a header.
func WriteFrames(w io.Writer, frames []Frame) error {
	return gocsv.Marshal(frames, w)
}
