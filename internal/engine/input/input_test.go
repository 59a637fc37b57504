package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestControlsFrom(t *testing.T) {
	tests := []struct {
		name string
		held []sdl.Scancode
		want Controls
	}{
		{"nothing", nil, Controls{}},
		{"forward", []sdl.Scancode{sdl.SCANCODE_W}, Controls{Forward: 1}},
		{"opposite keys cancel", []sdl.Scancode{sdl.SCANCODE_W, sdl.SCANCODE_S}, Controls{}},
		{"strafe left and sink", []sdl.Scancode{sdl.SCANCODE_A, sdl.SCANCODE_C}, Controls{Right: -1, Up: -1}},
		{"turn right, look up", []sdl.Scancode{sdl.SCANCODE_RIGHT, sdl.SCANCODE_UP}, Controls{Yaw: -1, Pitch: 1}},
		{"fast", []sdl.Scancode{sdl.SCANCODE_RSHIFT, sdl.SCANCODE_D}, Controls{Right: 1, Fast: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := make(map[sdl.Scancode]bool)
			for _, sc := range tt.held {
				set[sc] = true
			}
			got := ControlsFrom(func(sc sdl.Scancode) bool { return set[sc] })
			if got != tt.want {
				t.Errorf("ControlsFrom = %+v, want %+v", got, tt.want)
			}
		})
	}
}
