package detection

import (
	"image"
	"image/draw"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/text-scanner/internal/imaging"
)

const (
	// DefaultMinScore is the score a block needs to be reported.
	DefaultMinScore = 0.3

	// EdgeThreshold is the greyscale step that marks an edge pixel.
	EdgeThreshold = 30

	minDensity    = 0.05
	maxDensity    = 0.4
	targetDensity = 0.2
)

// windows are the sliding window sizes, roughly one line of small to large
// print each.
var windows = []image.Point{
	{X: 80, Y: 25},
	{X: 100, Y: 30},
	{X: 150, Y: 40},
	{X: 200, Y: 50},
}

// Block is an area that likely contains text.
type Block struct {
	Region imaging.Region `json:"region"`
	Score  float64        `json:"score"`
}

// TextBlocks returns the blocks of img scoring at least minScore, best
// first. Ties are broken by larger area.
func TextBlocks(img image.Image, minScore float64) []Block {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 2 || h < 2 {
		return nil
	}

	grayRGBA := effect.Grayscale(img)
	gray := image.NewGray(grayRGBA.Bounds())
	draw.Draw(gray, gray.Bounds(), grayRGBA, grayRGBA.Bounds().Min, draw.Src)
	m := newEdgeMap(gray)

	var candidates []Block
	for _, win := range windows {
		if win.X > w || win.Y > h {
			continue
		}
		stepX, stepY := win.X/2, win.Y/2
		winArea := float64(win.X * win.Y)

		for y := 0; y+win.Y <= h; y += stepY {
			for x := 0; x+win.X <= w; x += stepX {
				r := image.Rect(x, y, x+win.X, y+win.Y)
				density := float64(m.edges.sum(r)) / winArea
				if density < minDensity || density > maxDensity {
					continue
				}
				score := m.horizontalScore(r) * (1 - math.Abs(density-targetDensity)/targetDensity)
				if score < minScore {
					continue
				}
				candidates = append(candidates, Block{
					Region: imaging.RegionFromRect(r),
					Score:  math.Round(score*1000) / 1000,
				})
			}
		}
	}

	blocks := merge(candidates)
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].Score != blocks[j].Score {
			return blocks[i].Score > blocks[j].Score
		}
		return area(blocks[i].Region) > area(blocks[j].Region)
	})
	return blocks
}

// Best returns the highest scoring block of img.
func Best(img image.Image, minScore float64) (Block, bool) {
	blocks := TextBlocks(img, minScore)
	if len(blocks) == 0 {
		return Block{}, false
	}
	return blocks[0], true
}

// merge unions overlapping blocks until no two overlap. A merged block keeps
// the highest score of its parts.
func merge(blocks []Block) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		for {
			i := overlapping(out, b.Region)
			if i < 0 {
				break
			}
			b = Block{Region: union(b.Region, out[i].Region), Score: math.Max(b.Score, out[i].Score)}
			out = append(out[:i], out[i+1:]...)
		}
		out = append(out, b)
	}
	return out
}

func overlapping(blocks []Block, r imaging.Region) int {
	for i, b := range blocks {
		if r.Overlaps(b.Region.Rect()) {
			return i
		}
	}
	return -1
}

func union(a, b imaging.Region) imaging.Region {
	return imaging.RegionFromRect(a.Rect().Union(b.Rect()))
}

func area(r imaging.Region) int { return r.Width() * r.Height() }

// edgeMap holds summed-area tables over the edge pixels and over the pixels
// that start a horizontal or vertical run of edges.
type edgeMap struct {
	edges  table
	hStart table
	vStart table
}

func newEdgeMap(g *image.Gray) *edgeMap {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()

	edge := make([]bool, w*h)
	at := func(x, y int) int { return int(g.Pix[y*g.Stride+x]) }
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			c := at(x, y)
			if absInt(c-at(x+1, y)) > EdgeThreshold || absInt(c-at(x, y+1)) > EdgeThreshold {
				edge[y*w+x] = true
			}
		}
	}

	isEdge := func(x, y int) bool { return x >= 0 && y >= 0 && edge[y*w+x] }
	return &edgeMap{
		edges: newTable(w, h, isEdge),
		hStart: newTable(w, h, func(x, y int) bool {
			return isEdge(x, y) && !isEdge(x-1, y)
		}),
		vStart: newTable(w, h, func(x, y int) bool {
			return isEdge(x, y) && !isEdge(x, y-1)
		}),
	}
}

// horizontalScore is the share of edge runs in r that run horizontally.
// Print has many short strokes crossing each row.
func (m *edgeMap) horizontalScore(r image.Rectangle) float64 {
	h, v := m.hStart.sum(r), m.vStart.sum(r)
	if h+v == 0 {
		return 0
	}
	return float64(h) / float64(h+v)
}

// table is a summed-area table: s[y*(w+1)+x] counts set pixels above and to
// the left of (x, y).
type table struct {
	w int
	s []int32
}

func newTable(w, h int, set func(x, y int) bool) table {
	t := table{w: w + 1, s: make([]int32, (w+1)*(h+1))}
	for y := 0; y < h; y++ {
		var row int32
		for x := 0; x < w; x++ {
			if set(x, y) {
				row++
			}
			t.s[(y+1)*t.w+x+1] = t.s[y*t.w+x+1] + row
		}
	}
	return t
}

func (t table) sum(r image.Rectangle) int {
	return int(t.s[r.Max.Y*t.w+r.Max.X] - t.s[r.Min.Y*t.w+r.Max.X] - t.s[r.Max.Y*t.w+r.Min.X] + t.s[r.Min.Y*t.w+r.Min.X])
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
