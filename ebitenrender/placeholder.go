package ebitenrender

import (
	"image"
	"image/color"

	ss "github.com/bjorn2code64/shapeshifter"
)

// Pixel masks for the generated sprites, one string per row.
var placeholderMasks = map[string][]string{
	"squidClosed": {
		"...##...",
		"..####..",
		".######.",
		"##.##.##",
		"########",
		"..#..#..",
		".#.##.#.",
		"#.#..#.#",
	},
	"squidOpen": {
		"...##...",
		"..####..",
		".######.",
		"##.##.##",
		"########",
		".#.##.#.",
		"#......#",
		".#....#.",
	},
	"crabClosed": {
		"..#.....#..",
		"...#...#...",
		"..#######..",
		".##.###.##.",
		"###########",
		"#.#######.#",
		"#.#.....#.#",
		"...##.##...",
	},
	"crabOpen": {
		"..#.....#..",
		"#..#...#..#",
		"#.#######.#",
		"###.###.###",
		"###########",
		".#########.",
		"..#.....#..",
		".#.......#.",
	},
	"octopusClosed": {
		"....####....",
		".##########.",
		"############",
		"###..##..###",
		"############",
		"...##..##...",
		"..##.##.##..",
		"##........##",
	},
	"octopusOpen": {
		"....####....",
		".##########.",
		"############",
		"###..##..###",
		"############",
		"..###..###..",
		".##..##..##.",
		"..##....##..",
	},
	"ufo": {
		".....######.....",
		"...##########...",
		"..############..",
		".##.##.##.##.##.",
		"################",
		"..###..##..###..",
		"...#........#...",
	},
}

// Placeholder generates a white sprite for bm at its declared size. Known
// sprite names get a pixel-art silhouette; anything else gets an outlined
// box.
func Placeholder(bm *ss.Bitmap) image.Image {
	w, h := bm.Width, bm.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	mask, ok := placeholderMasks[bm.Name]
	if !ok {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if x == 0 || y == 0 || x == w-1 || y == h-1 || x == y*w/h {
					img.Set(x, y, color.White)
				}
			}
		}
		return img
	}

	mh := len(mask)
	mw := len(mask[0])
	for y := 0; y < h; y++ {
		row := mask[y*mh/h]
		for x := 0; x < w; x++ {
			if row[x*mw/w] == '#' {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}
