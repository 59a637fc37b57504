// Package input turns SDL events and keyboard state into viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType is the kind of a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event is one processed SDL event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// Controls are the continuous camera inputs for one step, each in [-1, 1].
type Controls struct {
	Forward float32
	Right   float32
	Up      float32
	Yaw     float32 // positive turns left
	Pitch   float32 // positive looks up
	Fast    bool
}

// Input polls SDL once per frame.
type Input struct {
	events []Event
}

// New creates an input handler.
func New() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// Update drains the SDL event queue. It returns true when the window was closed.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			t := EventKeyUp
			if e.Type == sdl.KEYDOWN {
				t = EventKeyDown
			}
			i.events = append(i.events, Event{Type: t, Key: e.Keysym.Scancode})
		}
	}
	return quit
}

// Events returns the events of the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Pressed reports whether scancode went down during the last Update.
func (i *Input) Pressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// Controls reads the held keys: WASD to move, Space/C to climb and sink,
// arrows to turn and Shift to go fast.
func (i *Input) Controls() Controls {
	state := sdl.GetKeyboardState()
	return ControlsFrom(func(sc sdl.Scancode) bool {
		return int(sc) < len(state) && state[sc] != 0
	})
}

// ControlsFrom maps held keys to camera controls.
func ControlsFrom(held func(sdl.Scancode) bool) Controls {
	axis := func(pos, neg sdl.Scancode) float32 {
		var v float32
		if held(pos) {
			v++
		}
		if held(neg) {
			v--
		}
		return v
	}
	return Controls{
		Forward: axis(sdl.SCANCODE_W, sdl.SCANCODE_S),
		Right:   axis(sdl.SCANCODE_D, sdl.SCANCODE_A),
		Up:      axis(sdl.SCANCODE_SPACE, sdl.SCANCODE_C),
		Yaw:     axis(sdl.SCANCODE_LEFT, sdl.SCANCODE_RIGHT),
		Pitch:   axis(sdl.SCANCODE_UP, sdl.SCANCODE_DOWN),
		Fast:    held(sdl.SCANCODE_LSHIFT) || held(sdl.SCANCODE_RSHIFT),
	}
}
