// Package window handles SDL2 window and OpenGL context creation.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/wildwest/internal/engine/input"
	"github.com/Faultbox/wildwest/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps SDL2 window and OpenGL context.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
}

// New creates a new window with OpenGL context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
	}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
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

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			logger.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	logger.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// GetSize returns the current drawable size in pixels.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// Events reports the window-level events of one Poll.
type Events struct {
	Quit    bool
	Resized bool
	Width   int
	Height  int
}

// Poll drains the SDL event queue into s and returns the window events.
func (w *Window) Poll(s *input.State) Events {
	var ev Events
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			ev.Quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				ev.Resized = true
				ev.Width, ev.Height = w.GetSize()
			}

		case *sdl.KeyboardEvent:
			key := translateKey(e.Keysym.Sym)
			if key == input.KeyUnknown {
				continue
			}
			switch {
			case e.Type == sdl.KEYUP:
				s.PushKey(key, input.Release)
			case e.Repeat != 0:
				s.PushKey(key, input.Repeat)
			default:
				s.PushKey(key, input.Press)
			}

		case *sdl.MouseMotionEvent:
			s.MoveTo(float32(e.X), float32(e.Y))

		case *sdl.MouseButtonEvent:
			down := e.Type == sdl.MOUSEBUTTONDOWN
			switch e.Button {
			case sdl.BUTTON_LEFT:
				s.SetButton(input.ButtonLeft, down)
			case sdl.BUTTON_RIGHT:
				s.SetButton(input.ButtonRight, down)
			}

		case *sdl.MouseWheelEvent:
			dy := float32(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				dy = -dy
			}
			s.AddScroll(dy)
		}
	}
	return ev
}

var keymap = map[sdl.Keycode]input.Key{
	sdl.K_ESCAPE: input.KeyEscape,
	sdl.K_w:      input.KeyW,
	sdl.K_a:      input.KeyA,
	sdl.K_s:      input.KeyS,
	sdl.K_d:      input.KeyD,
	sdl.K_UP:     input.KeyUp,
	sdl.K_DOWN:   input.KeyDown,
	sdl.K_LEFT:   input.KeyLeft,
	sdl.K_RIGHT:  input.KeyRight,
	sdl.K_SPACE:  input.KeySpace,
	sdl.K_c:      input.KeyC,
	sdl.K_z:      input.KeyZ,
	sdl.K_x:      input.KeyX,
	sdl.K_f:      input.KeyF,
	sdl.K_p:      input.KeyP,
	sdl.K_t:      input.KeyT,
	sdl.K_y:      input.KeyY,
	sdl.K_u:      input.KeyU,
	sdl.K_q:      input.KeyQ,
	sdl.K_i:      input.KeyI,
	sdl.K_k:      input.KeyK,
	sdl.K_j:      input.KeyJ,
	sdl.K_l:      input.KeyL,
	sdl.K_F12:    input.KeyF12,
}

func translateKey(sym sdl.Keycode) input.Key {
	return keymap[sym]
}
