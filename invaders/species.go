package invaders

import (
	"path/filepath"

	ss "github.com/bjorn2code64/shapeshifter"
)

// Species is an invader's kind. It selects the sprite pair and the score.
type Species uint8

const (
	SpeciesSquid   Species = iota // top row
	SpeciesCrab                   // rows 1 and 2
	SpeciesOctopus                // everything below
	speciesCount
)

// String returns the species name.
func (s Species) String() string {
	switch s {
	case SpeciesSquid:
		return "squid"
	case SpeciesCrab:
		return "crab"
	case SpeciesOctopus:
		return "octopus"
	default:
		return "unknown"
	}
}

// speciesForRow maps a formation row (0 at the top) to its species.
func speciesForRow(row int) Species {
	switch row {
	case 0:
		return SpeciesSquid
	case 1, 2:
		return SpeciesCrab
	default:
		return SpeciesOctopus
	}
}

// Animation frames within a sprite pair.
const (
	frameClosed = 0
	frameOpen   = 1
)

// Sprites is the set of bitmaps a round draws with. Bitmaps are references;
// the backend owns the decoded images.
type Sprites struct {
	Invaders [speciesCount][2]*ss.Bitmap
	Ship     *ss.Bitmap
}

// NewSprites builds the bitmap references named by the asset config, sized
// to the invader and ship boxes.
func NewSprites(cfg Config) Sprites {
	a := cfg.Assets
	iw, ih := int(cfg.Invader.Width), int(cfg.Invader.Height)
	bm := func(name, file string, w, h int) *ss.Bitmap {
		return ss.NewBitmapResource(name, filepath.Join(a.Dir, file), w, h)
	}
	var sp Sprites
	sp.Invaders[SpeciesSquid] = [2]*ss.Bitmap{
		bm("squidClosed", a.SquidClosed, iw, ih),
		bm("squidOpen", a.SquidOpen, iw, ih),
	}
	sp.Invaders[SpeciesCrab] = [2]*ss.Bitmap{
		bm("crabClosed", a.CrabClosed, iw, ih),
		bm("crabOpen", a.CrabOpen, iw, ih),
	}
	sp.Invaders[SpeciesOctopus] = [2]*ss.Bitmap{
		bm("octopusClosed", a.OctoClosed, iw, ih),
		bm("octopusOpen", a.OctoOpen, iw, ih),
	}
	sp.Ship = bm("ufo", a.Ship, int(cfg.Ship.Width), int(cfg.Ship.Height))
	return sp
}

// All returns every bitmap in the set, for preloading.
func (sp Sprites) All() []*ss.Bitmap {
	out := make([]*ss.Bitmap, 0, int(speciesCount)*2+1)
	for _, pair := range sp.Invaders {
		out = append(out, pair[frameClosed], pair[frameOpen])
	}
	return append(out, sp.Ship)
}

// Invader is one member of the formation.
type Invader struct {
	Shape   *ss.Shape
	Species Species
	Row     int
	Col     int
}
