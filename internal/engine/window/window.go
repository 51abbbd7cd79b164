// Package window handles SDL2 window creation, event polling, and the 2D
// drawing surface the scene renders into. It is the only package that
// touches SDL; the rest of the module sees input.Event batches and the
// scene.Surface interface.
package window

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/veandco/go-sdl2/gfx"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/wireview/internal/engine/input"
	"github.com/Faultbox/wireview/internal/engine/object"
	"github.com/Faultbox/wireview/pkg/math"
)

func init() {
	// SDL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Background object.Colour

	// GrabMouse enables relative mouse mode for mouse look.
	GrabMouse bool
}

// Window wraps the SDL2 window and its 2D renderer.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	renderer  *sdl.Renderer
	events    []input.Event
}

// New creates the window and renderer.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		events: make([]input.Event, 0, 16),
	}

	slog.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	rendererFlags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.VSync {
		rendererFlags |= sdl.RENDERER_PRESENTVSYNC
	}
	w.renderer, err = sdl.CreateRenderer(w.sdlWindow, -1, rendererFlags)
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}

	if cfg.GrabMouse {
		if err := sdl.SetRelativeMouseMode(true); err != nil {
			slog.Warn("failed to grab mouse", "error", err)
		}
	}

	slog.Info("window created",
		"title", cfg.Title,
		"width", cfg.Width,
		"height", cfg.Height,
		"fullscreen", cfg.Fullscreen,
		"vsync", cfg.VSync,
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	slog.Info("closing window")

	if w.renderer != nil {
		w.renderer.Destroy()
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// keymap translates SDL scancodes to camera control keys.
var keymap = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_W:      input.KeyForward,
	sdl.SCANCODE_S:      input.KeyBack,
	sdl.SCANCODE_A:      input.KeyStrafeLeft,
	sdl.SCANCODE_D:      input.KeyStrafeRight,
	sdl.SCANCODE_SPACE:  input.KeyRise,
	sdl.SCANCODE_LSHIFT: input.KeyFall,
}

// Poll drains pending SDL events and converts them into the batch for
// this tick. The returned slice is reused on the next call.
func (w *Window) Poll() []input.Event {
	w.events = w.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.events = append(w.events, input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				w.events = append(w.events, input.Event{
					Type:   input.EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				if e.Type == sdl.KEYDOWN {
					w.events = append(w.events, input.Event{Type: input.EventQuit})
				}
				continue
			}
			key, mapped := keymap[e.Keysym.Scancode]
			if !mapped {
				continue
			}
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				w.events = append(w.events, input.KeyDown(key))
			} else if e.Type == sdl.KEYUP {
				w.events = append(w.events, input.KeyUp(key))
			}

		case *sdl.MouseMotionEvent:
			w.events = append(w.events, input.MouseMove(float32(e.XRel), float32(e.YRel)))
		}
	}

	return w.events
}

// Clear fills the frame with the background colour.
func (w *Window) Clear() error {
	bg := w.config.Background
	if err := w.renderer.SetDrawColor(bg.R, bg.G, bg.B, 255); err != nil {
		return err
	}
	return w.renderer.Clear()
}

// Present flips the finished frame to the screen.
func (w *Window) Present() {
	w.renderer.Present()
}

// Size returns the current drawable size.
func (w *Window) Size() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// FillPolygon draws a filled polygon in pixel coordinates.
func (w *Window) FillPolygon(points []math.Vec2, colour object.Colour) {
	vx, vy := toVertexArrays(points)
	gfx.FilledPolygonRGBA(w.renderer, vx, vy, colour.R, colour.G, colour.B, 255)
}

// StrokePolygon draws a polygon outline in pixel coordinates.
func (w *Window) StrokePolygon(points []math.Vec2, colour object.Colour) {
	vx, vy := toVertexArrays(points)
	gfx.PolygonRGBA(w.renderer, vx, vy, colour.R, colour.G, colour.B, 255)
}

func toVertexArrays(points []math.Vec2) (vx, vy []int16) {
	vx = make([]int16, len(points))
	vy = make([]int16, len(points))
	for i, pt := range points {
		vx[i] = int16(pt.X)
		vy[i] = int16(pt.Y)
	}
	return vx, vy
}
