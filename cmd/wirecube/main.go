// wirecube - Terminal Wireframe Viewer
// Draws a cube, axes and a ground grid through a hand-built projection
// pipeline, in the terminal or to an image file.
//
// Controls:
//
//	1         - Orthographic projection
//	2         - Perspective projection
//	A         - Toggle auto-spin
//	Q/Esc     - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/taigrr/wirecube/pkg/render"
	"github.com/taigrr/wirecube/pkg/scene"
)

var (
	configPath  = flag.String("config", "", "Path to JSON scene config")
	modelPath   = flag.String("model", "", "Path to a glTF/GLB model drawn with the cube")
	targetFPS   = flag.Int("fps", 60, "Target FPS")
	bgColor     = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	ortho       = flag.Bool("ortho", false, "Start with the orthographic projection")
	noSpin      = flag.Bool("nospin", false, "Start with auto-spin off")
	fovY        = flag.Float64("fov", 0, "Vertical field of view in degrees (overrides config)")
	snapshot    = flag.String("snapshot", "", "Render one frame to this .png/.webp file and exit")
	width       = flag.Int("width", 800, "Snapshot width in pixels")
	height      = flag.Int("height", 600, "Snapshot height in pixels")
	supersample = flag.Int("supersample", 2, "Snapshot supersampling factor")
	animate     = flag.Float64("t", 0, "Seconds of animation to run before the snapshot")
	logPath     = flag.String("log", "", "Write logs to this file")
	verbose     = flag.Bool("v", false, "Debug logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "wirecube - Terminal Wireframe Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: wirecube [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  1           - Orthographic projection\n")
		fmt.Fprintf(os.Stderr, "  2           - Perspective projection\n")
		fmt.Fprintf(os.Stderr, "  A           - Toggle auto-spin\n")
		fmt.Fprintf(os.Stderr, "  Q/Esc       - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := scene.Default()
	if *configPath != "" {
		cfg, err = scene.LoadConfig(*configPath)
		if err != nil {
			return err
		}
	}
	cfg.Resolve(scene.Flags{
		Ortho:  *ortho,
		NoSpin: *noSpin,
		FovY:   float32(*fovY),
		Model:  *modelPath,
	})

	pal := scene.DefaultPalette
	pal.Background = parseColor(*bgColor, pal.Background)

	fps := max(*targetFPS, 1)
	sc := scene.New(cfg, fps)
	if cfg.Model != "" {
		if err := sc.LoadModel(cfg.Model); err != nil {
			return err
		}
	}

	if *snapshot != "" {
		return renderSnapshot(sc, pal, fps)
	}
	return runViewer(sc, pal, fps)
}

// setupLogging installs the shared logger. The viewer owns the terminal, so
// logs only go to stderr in snapshot mode.
func setupLogging() (func(), error) {
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	var w io.Writer
	closeFn := func() {}
	switch {
	case *logPath != "":
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case *snapshot != "" && *verbose:
		w = os.Stderr
	default:
		return closeFn, nil
	}

	render.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closeFn, nil
}

// parseColor reads an "R,G,B" triple, keeping fallback on malformed input.
func parseColor(s string, fallback render.Color) render.Color {
	var r, g, b uint8
	if n, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil || n != 3 {
		render.Logger().Warn("bad color, using default", "value", s)
		return fallback
	}
	return render.RGB(r, g, b)
}
