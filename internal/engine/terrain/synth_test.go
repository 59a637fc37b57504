package terrain

import "testing"

func TestSynthesizeDEMDeterministic(t *testing.T) {
	a := SynthesizeDEM(40, 30, 10, 400, 42)
	b := SynthesizeDEM(40, 30, 10, 400, 42)
	c := SynthesizeDEM(40, 30, 10, 400, 43)

	if a.Cols != 40 || a.Rows != 30 || len(a.Elevations) != 1200 {
		t.Fatalf("unexpected DEM size %dx%d (%d samples)", a.Cols, a.Rows, len(a.Elevations))
	}

	same := true
	for i := range a.Elevations {
		if a.Elevations[i] != b.Elevations[i] {
			t.Fatalf("sample %d differs for equal seeds", i)
		}
		if a.Elevations[i] != c.Elevations[i] {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical DEMs")
	}

	for i, e := range a.Elevations {
		if e < -400*1.2 || e > 400 {
			t.Fatalf("sample %d = %f outside amplitude", i, e)
		}
	}
}
