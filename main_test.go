package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"kerf-view/config"
	"kerf-view/drawing"
	"kerf-view/trace"
	"kerf-view/viewport"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConvertScript(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "plate.star")
	out := filepath.Join(dir, "plate.yaml")
	script := "for i in range(4):\n    line(i, 0, i + 1, 0)\ncircle(0, 0, 2)\n"
	if err := os.WriteFile(in, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runRoot(t, "convert", in, out); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	d, err := drawing.Load(out)
	if err != nil {
		t.Fatalf("Failed to load converted drawing: %v", err)
	}
	if len(d.Entities) != 5 {
		t.Errorf("Expected 5 entities, got %d", len(d.Entities))
	}
}

func TestConvertUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "plate.dxf")
	if err := os.WriteFile(in, []byte("0\nEOF\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := runRoot(t, "convert", in, filepath.Join(dir, "out.yaml"))
	if err == nil || !strings.Contains(err.Error(), "unknown drawing format") {
		t.Errorf("Expected unknown format error, got %v", err)
	}
}

func TestReplayCommand(t *testing.T) {
	dir := t.TempDir()
	events := filepath.Join(dir, "events.csv")
	csv := "seq,kind,a,b\n0,resize,800,600\n1,wheel,-500,0\n2,drag,100,0\n3,resize,400,300\n"
	if err := os.WriteFile(events, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runRoot(t, "replay", events)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	var frames []trace.Frame
	if err := gocsv.UnmarshalString(out, &frames); err != nil {
		t.Fatalf("Failed to parse frames: %v", err)
	}
	if len(frames) != 4 {
		t.Fatalf("Expected 4 frames, got %d", len(frames))
	}
	first := frames[0]
	if first.Zoom != 1 || first.Left != -8 || first.Top != 6 || first.Width != 800 {
		t.Errorf("Unexpected first frame %+v", first)
	}
	if frames[3].Right != 4 || frames[3].Zoom != frames[2].Zoom {
		t.Errorf("Unexpected last frame %+v", frames[3])
	}
}

func TestOffsetCommand(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	dir := t.TempDir()
	in := filepath.Join(dir, "part.yaml")
	doc := "name: part\nentities:\n  - kind: circle\n    center: {x: 0, y: 0}\n    radius: 1\n"
	if err := os.WriteFile(in, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(dir, "config.yaml")
	cfgYAML := "offset:\n  command: /bin/sh\n  args: [\"-c\", \"cat; printf '# %s\\\\n' \\\"$0\\\"\"]\n"
	if err := os.WriteFile(cfg, []byte(cfgYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runRoot(t, "--config", cfg, "offset", in, "0.25")
	if err != nil {
		t.Fatalf("Offset failed: %v", err)
	}
	want := filepath.Join(dir, "part-offset.yaml")
	if strings.TrimSpace(out) != want {
		t.Errorf("Expected output path %s, got %q", want, out)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("Failed to read result: %v", err)
	}
	if !strings.HasSuffix(string(data), "# 0.25\n") {
		t.Errorf("Expected distance trailer, got %q", data)
	}
}

func TestOffsetWithoutCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "part.yaml")
	if err := os.WriteFile(in, []byte("entities: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := runRoot(t, "offset", in, "1")
	if err == nil || !strings.Contains(err.Error(), "no offset command") {
		t.Errorf("Expected missing command error, got %v", err)
	}
}

func TestSegmentVisible(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		want           bool
	}{
		{"inside", 10, 10, 20, 20, true},
		{"crossing", -10, 50, 900, 50, true},
		{"left", -10, 0, -1, 100, false},
		{"below", 0, 700, 100, 601, false},
		{"diagonal through corner", -10, -10, 10, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := segmentVisible(tt.x0, tt.y0, tt.x1, tt.y1, 800, 600); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHUDText(t *testing.T) {
	cam := viewport.New(viewport.DefaultParams())
	cam.Attach(screenSize{800, 600})

	d := &drawing.Drawing{Name: "plate", Entities: []drawing.Entity{drawing.Circle(0, 0, 1), drawing.Line(0, 0, 1, 0)}}
	topo := drawing.Analyze(d, 0)

	got := hudText(cam.Snapshot(), d, topo, 400, 300)
	if !strings.Contains(got, "Cursor: (0, 0)") {
		t.Errorf("Expected centred cursor, got %q", got)
	}
	if !strings.Contains(got, "plate: 2 entities, 2 contours (1 open)") {
		t.Errorf("Expected drawing summary, got %q", got)
	}
}

func TestSamplesLoad(t *testing.T) {
	paths, err := filepath.Glob("samples/*")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("Expected sample drawings")
	}
	for _, p := range paths {
		t.Run(filepath.Base(p), func(t *testing.T) {
			d, err := drawing.Load(p)
			if err != nil {
				t.Fatalf("Failed to load: %v", err)
			}
			if len(d.Entities) == 0 {
				t.Error("Expected entities")
			}
		})
	}
}

func TestBracketSampleTopology(t *testing.T) {
	d, err := drawing.Load("samples/bracket.yaml")
	if err != nil {
		t.Fatal(err)
	}
	topo := drawing.Analyze(d, 0)
	closed := topo.ClosedSet(len(d.Entities))
	for i := 0; i < 7; i++ {
		if !closed[i] {
			t.Errorf("Expected entity %d in a closed contour", i)
		}
	}
	if closed[7] {
		t.Error("Expected the engraving stroke to stay open")
	}
	if len(topo.Dangling) != 2 {
		t.Errorf("Expected 2 dangling ends, got %d", len(topo.Dangling))
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kerf.yaml")

	if _, err := runRoot(t, "config", "init", path); err != nil {
		t.Fatalf("Config init failed: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Failed to load written config: %v", err)
	}
	if cfg.Camera.ScaleFactor != 100 || cfg.Window.Width != 1024 {
		t.Errorf("Expected defaults in written config, got %+v", cfg.Camera)
	}

	if _, err := runRoot(t, "config", "init", path); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Expected refusal to overwrite, got %v", err)
	}
	if _, err := runRoot(t, "config", "init", "--force", path); err != nil {
		t.Errorf("Expected --force to overwrite, got %v", err)
	}
}
