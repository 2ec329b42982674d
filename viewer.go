package main

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
	"golang.org/x/image/font"

	"kerf-view/canvas"
	"kerf-view/config"
	"kerf-view/drawing"
	"kerf-view/input"
	"kerf-view/offset"
	"kerf-view/trace"
	"kerf-view/ui"
	"kerf-view/viewport"
	"kerf-view/watch"
)

type offsetResult struct {
	path string
	err  error
}

// screenSize is the surface the camera attaches to on the first layout.
type screenSize struct{ w, h int }

func (s screenSize) Size() (int, int) { return s.w, s.h }

// Viewer is the ebiten game. Every camera mutation happens inside Update or
// Layout, on the ebiten goroutine.
type Viewer struct {
	ctx context.Context
	cfg *config.Config
	log *slog.Logger

	cam    *viewport.Camera
	resize *viewport.ResizeWatcher
	unbind func()

	input *input.Dispatcher
	ui    *ui.UISystem
	face  font.Face

	path    string
	doc     *drawing.Drawing
	topo    drawing.Topology
	// overlay is the last offset result, drawn over doc until doc changes.
	overlay *drawing.Drawing

	pendingFit bool
	cursorMove bool

	changes   <-chan string
	adjuster  offset.Adjuster
	offsets   chan offsetResult
	exporting bool

	rec *trace.Recorder

	screenWidth  int
	screenHeight int

	screenshotRequested bool
}

func NewViewer(ctx context.Context, cfg *config.Config, log *slog.Logger, path string) *Viewer {
	v := &Viewer{
		ctx:      ctx,
		cfg:      cfg,
		log:      log,
		cam:      viewport.New(cfg.Camera.Params()),
		resize:   viewport.NewResizeWatcher(),
		face:     LoadUIFont(HUDFontSize),
		path:     path,
		adjuster: newAdjuster(cfg, log),
		offsets:  make(chan offsetResult, 1),
	}
	v.unbind = v.cam.Bind(v.resize)
	v.input = input.NewDispatcher(v, cfg.Input.WheelScale, cfg.Input.KeyZoomStep)
	v.ui = ui.NewUISystem(
		func() font.Face { return v.face },
		func() (int, int) { return v.screenWidth, v.screenHeight },
		ui.Actions{
			ZoomIn:  func() { v.OnWheel(-cfg.Input.ButtonZoomStep) },
			ZoomOut: func() { v.OnWheel(cfg.Input.ButtonZoomStep) },
			Reset:   v.ResetView,
		},
		DrawTextLines,
	)
	if path != "" {
		v.reload(true)
	}
	return v
}

// Close releases the camera subscription.
func (v *Viewer) Close() {
	v.unbind()
	v.resize.Close()
}

func (v *Viewer) Update() error {
	v.drainEvents()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		v.ui.Click(ebiten.CursorPosition())
	}
	v.input.Feed(input.Poll())

	if panning := v.input.Panning(); panning != v.cursorMove {
		v.cursorMove = panning
		if panning {
			ebiten.SetCursorShape(ebiten.CursorShapeMove)
		} else {
			ebiten.SetCursorShape(ebiten.CursorShapeDefault)
		}
	}
	return nil
}

// drainEvents applies file changes and offset results reported by background
// goroutines.
func (v *Viewer) drainEvents() {
	select {
	case p := <-v.changes:
		v.log.Debug("drawing changed", "path", p)
		v.reload(false)
	default:
	}

	select {
	case r := <-v.offsets:
		v.exporting = false
		v.showOffset(r)
	default:
	}
}

// showOffset loads a finished offset export as the overlay.
func (v *Viewer) showOffset(r offsetResult) {
	if r.err != nil {
		v.fail("offset export failed", r.err)
		return
	}
	d, err := drawing.Load(r.path)
	if err != nil {
		v.fail("loading offset result failed", err)
		return
	}
	v.overlay = d
	v.log.Info("offset written", "path", r.path, "entities", len(d.Entities))
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(ColorBackground)

	t := v.cam.Snapshot()
	if !v.cam.Ready() {
		return
	}

	canvas.DrawBackgroundGrid(t, screen, canvas.Grid{
		Spacing:         v.cfg.Grid.Spacing,
		MajorEvery:      v.cfg.Grid.MajorEvery,
		MinPixelSpacing: v.cfg.Grid.MinPixelSpacing,
	}, canvas.Palette{Minor: ColorGridMinor, Major: ColorGridMajor, OriginCross: ColorOriginCross})

	if v.doc != nil {
		drawDrawing(screen, t, v.doc, v.topo, v.cfg.Drawing.ArcSegments)
	}
	if v.overlay != nil {
		drawOverlay(screen, t, v.overlay, v.cfg.Drawing.ArcSegments)
	}

	mx, my := ebiten.CursorPosition()
	DrawTextLines(screen, v.face, hudText(t, v.doc, v.topo, mx, my), HUDMarginX, HUDMarginY, ColorHUD)

	v.ui.Draw(screen)

	if v.screenshotRequested {
		v.screenshotRequested = false
		if err := saveScreenshot(screen, ScreenshotFile); err != nil {
			v.fail("screenshot failed", err)
		} else {
			v.log.Info("screenshot saved", "path", ScreenshotFile)
		}
	}
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.screenWidth = outsideWidth
	v.screenHeight = outsideHeight

	if !v.cam.Ready() {
		if !v.cam.Attach(screenSize{outsideWidth, outsideHeight}) {
			return outsideWidth, outsideHeight
		}
		v.log.Debug("camera attached", "state", v.cam.State(), "width", outsideWidth, "height", outsideHeight)
	}
	if v.resize.Observe(outsideWidth, outsideHeight) {
		v.rec.Resize(outsideWidth, outsideHeight)
	}
	if v.pendingFit {
		v.pendingFit = !v.fitDrawing()
	}
	return outsideWidth, outsideHeight
}

// --- input.Host ---

func (v *Viewer) OnWheel(rawDelta float64) {
	v.cam.OnWheel(rawDelta)
	v.rec.Wheel(rawDelta)
}

func (v *Viewer) OnDrag(movementX, movementY float64) {
	v.cam.OnDrag(movementX, movementY)
	v.rec.Drag(movementX, movementY)
}

func (v *Viewer) ResetView() { v.cam.Reset() }

func (v *Viewer) FitView() { v.fitDrawing() }

// fitDrawing frames the drawing's extents. It reports false when there is
// nothing to frame yet.
func (v *Viewer) fitDrawing() bool {
	if v.doc == nil {
		return false
	}
	lo, hi, ok := v.doc.Extents()
	if !ok {
		return false
	}
	return v.cam.Fit(lo.X, lo.Y, hi.X, hi.Y, FitMargin)
}

func (v *Viewer) RequestScreenshot() { v.screenshotRequested = true }

func (v *Viewer) ReloadDrawing() {
	if v.path != "" {
		v.reload(true)
	}
}

func (v *Viewer) ExportOffset() {
	if v.path == "" || v.exporting {
		return
	}
	if v.cfg.Offset.Command == "" {
		v.fail("offset export unavailable", offset.ErrNoCommand)
		return
	}
	v.exporting = true
	path, distance := v.path, v.cfg.Offset.Distance
	go func() {
		out, err := exportOffset(v.ctx, v.adjuster, path, distance)
		v.offsets <- offsetResult{path: out, err: err}
	}()
}

func (v *Viewer) IsMouseOver(mx, my int) bool { return v.ui.IsMouseOver(mx, my) }

// reload reads the drawing again. Unless forced, unchanged bytes are skipped.
// A failed reload keeps the previous drawing on screen.
func (v *Viewer) reload(force bool) {
	data, err := os.ReadFile(v.path)
	if err != nil {
		v.fail("reading drawing failed", err)
		return
	}
	if !force && v.doc != nil && drawing.Fingerprint(data) == v.doc.Fingerprint {
		return
	}

	d, err := drawing.Decode(v.path, data)
	if err != nil {
		v.fail("loading drawing failed", err)
		return
	}
	first := v.doc == nil
	v.doc = d
	v.topo = drawing.Analyze(d, v.cfg.Drawing.ContourEpsilon)
	v.overlay = nil
	v.ui.Debug.Clear()
	if first {
		v.pendingFit = !v.fitDrawing()
	}
	v.log.Info("drawing loaded", "name", d.Name, "entities", len(d.Entities), "contours", len(v.topo.Contours))
}

func (v *Viewer) fail(msg string, err error) {
	v.log.Error(msg, "err", err)
	v.ui.Debug.SetError(fmt.Sprintf("%s:\n%v", msg, err))
}

func saveScreenshot(screen *ebiten.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, screen); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runView(cmd *cobra.Command, g *globalFlags, args []string) error {
	cfg, log, err := g.setup(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var path string
	if len(args) == 1 {
		path = args[0]
	}

	v := NewViewer(ctx, cfg, log, path)
	defer v.Close()

	if path != "" && cfg.Drawing.Watch {
		w, err := watch.New(path, cfg.Drawing.Debounce(), log)
		if err != nil {
			log.Warn("live reload disabled", "err", err)
		} else {
			v.changes = w.Changes()
			go func() {
				if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("watcher stopped", "err", err)
				}
			}()
		}
	}

	if cfg.Trace.Record != "" {
		f, err := os.Create(cfg.Trace.Record)
		if err != nil {
			return fmt.Errorf("opening trace file: %w", err)
		}
		defer f.Close()
		v.rec = trace.NewRecorder(f)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if err := ebiten.RunGame(v); err != nil {
		return err
	}
	if err := v.rec.Err(); err != nil {
		log.Warn("trace incomplete", "err", err)
	}
	return nil
}
