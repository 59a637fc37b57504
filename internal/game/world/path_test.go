package world

import (
	"testing"

	"github.com/Faultbox/highland/internal/game/moveables"
	"github.com/Faultbox/highland/pkg/math"
)

// gridMap is a walk map backed by a blocked-cell set.
type gridMap struct {
	cols, rows int
	blocked    map[[2]int]bool
}

func newGridMap(cols, rows int, blocked ...[2]int) *gridMap {
	m := &gridMap{cols: cols, rows: rows, blocked: make(map[[2]int]bool)}
	for _, b := range blocked {
		m.blocked[b] = true
	}
	return m
}

func (m *gridMap) Size() (int, int)           { return m.cols, m.rows }
func (m *gridMap) Walkable(col, row int) bool { return !m.blocked[[2]int{col, row}] }

func TestFindPath(t *testing.T) {
	tests := []struct {
		name       string
		m          *gridMap
		start, end [2]int
		wantLen    int // 0 means no path
	}{
		{"open diagonal", newGridMap(5, 5), [2]int{0, 0}, [2]int{4, 4}, 5},
		{"same cell", newGridMap(5, 5), [2]int{2, 2}, [2]int{2, 2}, 1},
		{"around wall", newGridMap(5, 5, [2]int{2, 0}, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3}), [2]int{0, 2}, [2]int{4, 2}, 7},
		{"full wall", newGridMap(5, 5, [2]int{2, 0}, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3}, [2]int{2, 4}), [2]int{0, 2}, [2]int{4, 2}, 0},
		{"blocked goal", newGridMap(5, 5, [2]int{4, 4}), [2]int{0, 0}, [2]int{4, 4}, 0},
		{"start off grid", newGridMap(5, 5), [2]int{-1, 0}, [2]int{4, 4}, 0},
		{"goal off grid", newGridMap(5, 5), [2]int{0, 0}, [2]int{10, 10}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := FindPath(tt.m, tt.start[0], tt.start[1], tt.end[0], tt.end[1])
			if tt.wantLen == 0 {
				if path != nil {
					t.Fatalf("expected no path, got %v", path)
				}
				return
			}
			if len(path) != tt.wantLen {
				t.Fatalf("path length = %d, want %d: %v", len(path), tt.wantLen, path)
			}
			if path[0] != tt.start || path[len(path)-1] != tt.end {
				t.Errorf("path runs %v -> %v", path[0], path[len(path)-1])
			}
			for _, c := range path {
				if !tt.m.Walkable(c[0], c[1]) {
					t.Errorf("path crosses blocked cell %v", c)
				}
			}
		})
	}
}

func TestFindPathNoCornerCutting(t *testing.T) {
	// (1,0) and (0,1) blocked: the diagonal step from (0,0) to (1,1) is not allowed.
	m := newGridMap(3, 3, [2]int{1, 0}, [2]int{0, 1})
	if path := FindPath(m, 0, 0, 2, 2); path != nil {
		t.Errorf("expected no path, got %v", path)
	}
}

func TestWalkMap(t *testing.T) {
	w := flatWorld(t, 10, 0)
	wm := w.NewWalkMap(0, 30)

	path := wm.FindPath(math.Vec3{X: 10, Z: 10}, math.Vec3{X: 110, Z: 110})
	if len(path) != 4 {
		t.Fatalf("path has %d waypoints, want 4", len(path))
	}
	for _, p := range path {
		if p.Y != 10 {
			t.Errorf("waypoint %+v not on the surface", p)
		}
	}

	// A bunker in the middle forces a detour.
	if _, err := w.PlaceMoveable(moveables.KindBunker, 48, 48, 0, nil); err != nil {
		t.Fatalf("PlaceMoveable failed: %v", err)
	}
	if wm.Walkable(1, 1) {
		t.Error("occupied cell reported walkable")
	}
	detour := wm.FindPath(math.Vec3{X: 10, Z: 10}, math.Vec3{X: 110, Z: 110})
	if len(detour) <= 4 {
		t.Errorf("detour has %d waypoints, want more than 4", len(detour))
	}

	if wm.FindPath(math.Vec3{X: -10, Z: 10}, math.Vec3{X: 50, Z: 50}) != nil {
		t.Error("expected no path from off the map")
	}
}

func TestWalkMapUnderwater(t *testing.T) {
	w := flatWorld(t, -5, 0)
	wm := w.NewWalkMap(0, 30)
	if path := wm.FindPath(math.Vec3{X: 10, Z: 10}, math.Vec3{X: 50, Z: 50}); path != nil {
		t.Errorf("expected no path under water, got %d waypoints", len(path))
	}
}
