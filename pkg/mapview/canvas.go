package mapview

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
)

const (
	// Nominal pixel size of one terminal cell, used to convert zoom and padding.
	cellWidthPx  = 8
	cellHeightPx = 16
	tileSizePx   = 256

	minCanvasWidth  = 20
	minCanvasHeight = 8

	routeRune = '•'
	emptyRune = ' '
)

// Cell is one character of a rendered canvas
type Cell struct {
	Rune  rune
	Color string
}

// Canvas is an Engine that rasterises the map into a grid of terminal cells.
// Geometry is kept per layer and projected at render time, so the drawing
// order against FitBounds does not matter.
type Canvas struct {
	mu      sync.Mutex
	width   int
	height  int
	view    orb.Bound
	lines   map[Layer][]Polyline
	markers map[Layer][]Marker
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:   width,
		height:  height,
		lines:   make(map[Layer][]Polyline),
		markers: make(map[Layer][]Marker),
	}
}

func (c *Canvas) Available() error {
	if c.width < minCanvasWidth || c.height < minCanvasHeight {
		return fmt.Errorf("terminal too small for map: %dx%d (need %dx%d)", c.width, c.height, minCanvasWidth, minCanvasHeight)
	}
	return nil
}

// SetView centres the canvas using web-map zoom semantics (256px tiles).
func (c *Canvas) SetView(center LatLng, zoom int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	degPerPx := 360.0 / (tileSizePx * math.Pow(2, float64(zoom)))
	lonSpan := float64(c.width*cellWidthPx) * degPerPx
	latSpan := float64(c.height*cellHeightPx) * degPerPx * math.Cos(center.Lat*math.Pi/180)

	c.view = orb.Bound{
		Min: orb.Point{center.Lng - lonSpan/2, center.Lat - latSpan/2},
		Max: orb.Point{center.Lng + lonSpan/2, center.Lat + latSpan/2},
	}
}

func (c *Canvas) DrawPolyline(layer Layer, path []LatLng, style LineStyle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines[layer] = append(c.lines[layer], Polyline{Path: append([]LatLng(nil), path...), Style: style})
}

func (c *Canvas) DrawMarker(layer Layer, pos LatLng, style MarkerStyle, popup string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markers[layer] = append(c.markers[layer], Marker{Position: pos, Style: style, Popup: popup})
}

func (c *Canvas) ClearLayer(layer Layer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lines, layer)
	delete(c.markers, layer)
}

// FitBounds frames bounds, keeping padding pixels free on every side.
func (c *Canvas) FitBounds(bounds orb.Bound, padding int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mx := float64(padding / cellWidthPx)
	my := float64(padding / cellHeightPx)
	innerW := math.Max(float64(c.width)-2*mx, 1)
	innerH := math.Max(float64(c.height)-2*my, 1)

	lonSpan := math.Max(bounds.Max.X()-bounds.Min.X(), 1e-4)
	latSpan := math.Max(bounds.Max.Y()-bounds.Min.Y(), 1e-4)
	center := bounds.Center()

	padLon := lonSpan * mx / innerW
	padLat := latSpan * my / innerH
	halfLon := lonSpan/2 + padLon
	halfLat := latSpan/2 + padLat

	c.view = orb.Bound{
		Min: orb.Point{center.X() - halfLon, center.Y() - halfLat},
		Max: orb.Point{center.X() + halfLon, center.Y() + halfLat},
	}
}

// View returns the current viewport (X = longitude, Y = latitude)
func (c *Canvas) View() orb.Bound {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *Canvas) project(p LatLng) (int, int, bool) {
	w := c.view.Max.X() - c.view.Min.X()
	h := c.view.Max.Y() - c.view.Min.Y()
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	x := int(math.Round((p.Lng - c.view.Min.X()) / w * float64(c.width-1)))
	y := int(math.Round((c.view.Max.Y() - p.Lat) / h * float64(c.height-1)))
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return x, y, false
	}
	return x, y, true
}

// farOff reports points so far outside the canvas that rasterising toward them is wasted work.
func (c *Canvas) farOff(x, y int) bool {
	return abs(x) > 4*c.width || abs(y) > 4*c.height
}

// Grid rasterises both layers. Markers are drawn over the route.
func (c *Canvas) Grid() [][]Cell {
	c.mu.Lock()
	defer c.mu.Unlock()

	grid := make([][]Cell, c.height)
	for y := range grid {
		grid[y] = make([]Cell, c.width)
		for x := range grid[y] {
			grid[y][x] = Cell{Rune: emptyRune}
		}
	}

	set := func(x, y int, cell Cell) {
		if x >= 0 && y >= 0 && x < c.width && y < c.height {
			grid[y][x] = cell
		}
	}

	for _, layer := range []Layer{RouteLayer, MarkerLayer} {
		for _, line := range c.lines[layer] {
			for i := 1; i < len(line.Path); i++ {
				x0, y0, _ := c.project(line.Path[i-1])
				x1, y1, _ := c.project(line.Path[i])
				if c.farOff(x0, y0) || c.farOff(x1, y1) {
					continue
				}
				bresenham(x0, y0, x1, y1, func(x, y int) {
					set(x, y, Cell{Rune: routeRune, Color: line.Style.Color})
				})
			}
			if len(line.Path) == 1 {
				if x, y, ok := c.project(line.Path[0]); ok {
					set(x, y, Cell{Rune: routeRune, Color: line.Style.Color})
				}
			}
		}
	}

	for _, layer := range []Layer{RouteLayer, MarkerLayer} {
		for _, m := range c.markers[layer] {
			if x, y, ok := c.project(m.Position); ok {
				set(x, y, Cell{Rune: m.Style.Symbol, Color: m.Style.Color})
			}
		}
	}

	return grid
}

// Render returns the canvas as coloured text, one line per row.
func (c *Canvas) Render() string {
	grid := c.Grid()

	var b strings.Builder
	for y, row := range grid {
		for _, cell := range row {
			if cell.Color == "" || cell.Rune == emptyRune {
				b.WriteRune(cell.Rune)
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(cell.Color)).Render(string(cell.Rune)))
		}
		if y < len(grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Legend lists every marker symbol with its popup text flattened to one line.
func (c *Canvas) Legend() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []string
	for _, layer := range []Layer{RouteLayer, MarkerLayer} {
		for _, m := range c.markers[layer] {
			popup := strings.Join(strings.Fields(strings.ReplaceAll(m.Popup, "\n", " | ")), " ")
			out = append(out, fmt.Sprintf("%c %s", m.Style.Symbol, popup))
		}
	}
	return out
}

func bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
