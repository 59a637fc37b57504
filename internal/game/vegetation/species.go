// Package vegetation scatters plants over the terrain and keeps them in a tile grid
// aligned with the terrain tiles.
package vegetation

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/gocarina/gocsv"
)

// NoBound disables one side of a species' elevation band.
const NoBound = -1

// Species errors.
var (
	ErrNoSpecies      = errors.New("species table is empty")
	ErrInvalidSpecies = errors.New("invalid species")
)

// Species describes one plant type.
type Species struct {
	ID             int     `csv:"id"`
	Name           string  `csv:"name"`
	MinElevation   float32 `csv:"min_elevation"`    // NoBound for none
	MaxElevation   float32 `csv:"max_elevation"`    // NoBound for none
	NoDrawDistance float32 `csv:"no_draw_distance"` // plants farther than this are not drawn
}

// DefaultSpecies is the built-in table used when no species file is configured.
func DefaultSpecies() []Species {
	return []Species{
		{ID: 0, Name: "reed", MinElevation: NoBound, MaxElevation: 15, NoDrawDistance: 600},
		{ID: 1, Name: "grass", MinElevation: NoBound, MaxElevation: 250, NoDrawDistance: 900},
		{ID: 2, Name: "fern", MinElevation: 20, MaxElevation: 200, NoDrawDistance: 900},
		{ID: 3, Name: "shrub", MinElevation: 40, MaxElevation: 300, NoDrawDistance: 1500},
		{ID: 4, Name: "birch", MinElevation: 60, MaxElevation: 250, NoDrawDistance: 3000},
		{ID: 5, Name: "pine", MinElevation: 150, MaxElevation: NoBound, NoDrawDistance: 3000},
	}
}

// Allows reports whether y lies inside the species' elevation band.
func (s Species) Allows(y float32) bool {
	if s.MinElevation != NoBound && y < s.MinElevation {
		return false
	}
	if s.MaxElevation != NoBound && y > s.MaxElevation {
		return false
	}
	return true
}

// LoadSpecies reads a species table in CSV form. IDs must run 0..n-1 in order.
func LoadSpecies(r io.Reader) ([]Species, error) {
	var species []Species
	if err := gocsv.Unmarshal(r, &species); err != nil {
		return nil, fmt.Errorf("parsing species table: %w", err)
	}
	if err := validateSpecies(species); err != nil {
		return nil, err
	}
	return species, nil
}

// LoadSpeciesFile reads a species table from path.
func LoadSpeciesFile(path string) ([]Species, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening species table: %w", err)
	}
	defer f.Close()
	return LoadSpecies(f)
}

func validateSpecies(species []Species) error {
	if len(species) == 0 {
		return ErrNoSpecies
	}
	if len(species) > 256 {
		return fmt.Errorf("%w: %d species, at most 256", ErrInvalidSpecies, len(species))
	}
	for i, s := range species {
		if s.ID != i {
			return fmt.Errorf("%w: row %d has id %d", ErrInvalidSpecies, i, s.ID)
		}
		if s.MinElevation != NoBound && s.MaxElevation != NoBound && s.MinElevation > s.MaxElevation {
			return fmt.Errorf("%w: %s has min elevation above max", ErrInvalidSpecies, s.Name)
		}
	}
	return nil
}

// pickSpecies picks uniformly among the species whose band allows y.
func pickSpecies(species []Species, y float32, rng *rand.Rand) (uint8, bool) {
	var eligible [256]uint8
	n := 0
	for i, s := range species {
		if s.Allows(y) {
			eligible[n] = uint8(i)
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return eligible[rng.IntN(n)], true
}
