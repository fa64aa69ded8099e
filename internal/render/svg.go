// Package render draws units, their perception sectors and the report as SVG.
package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/template"

	"unitsight/internal/geometry"
	"unitsight/internal/perception"
	"unitsight/internal/unit"
	"unitsight/internal/visibility"
)

const arcSteps = 48

// Options controls the drawing. Focus is the id of a unit whose visible
// units are highlighted; negative means none.
type Options struct {
	Size    int
	Focus   int
	Visible []int
}

// DefaultOptions renders an 800px square without a focused unit.
func DefaultOptions() Options {
	return Options{Size: 800, Focus: -1}
}

type unitView struct {
	ID     int
	Label  string
	Count  uint
	X, Y   float64
	Ring   float64
	Sector string
	TipX   float64
	TipY   float64
	Class  string
}

type page struct {
	Size  int
	Units []unitView
	Title string
}

var svgTemplate = template.Must(template.New("svg").Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Size}}" height="{{.Size}}" viewBox="0 0 {{.Size}} {{.Size}}">
<title>{{html .Title}}</title>
<style>
.ring{fill:none;stroke:#ccc;stroke-dasharray:4 3}
.sector{fill:#4a90d9;fill-opacity:.12;stroke:#4a90d9;stroke-opacity:.4}
.unit{fill:#333}
.focus .unit{fill:#d9534f}
.seen .unit{fill:#5cb85c}
.facing{stroke:#333;stroke-width:1.5}
text{font:11px sans-serif;fill:#222}
</style>
<rect width="100%" height="100%" fill="#fff"/>
{{- range .Units}}
<g id="unit-{{.ID}}" class="{{.Class}}">
<circle class="ring" cx="{{printf "%.2f" .X}}" cy="{{printf "%.2f" .Y}}" r="{{printf "%.2f" .Ring}}"/>
{{- if .Sector}}
<path class="sector" d="{{.Sector}}"/>
{{- end}}
<line class="facing" x1="{{printf "%.2f" .X}}" y1="{{printf "%.2f" .Y}}" x2="{{printf "%.2f" .TipX}}" y2="{{printf "%.2f" .TipY}}"/>
<circle class="unit" cx="{{printf "%.2f" .X}}" cy="{{printf "%.2f" .Y}}" r="3"/>
<text x="{{printf "%.2f" .X}}" y="{{printf "%.2f" .Y}}" dx="5" dy="-5">{{html .Label}} ({{.Count}})</text>
</g>
{{- end}}
</svg>
`))

// frame maps world coordinates to the square canvas with y pointing up.
type frame struct {
	minX, maxY float64
	scale      float64
}

func newFrame(units []unit.Unit, distance float64, size int) frame {
	if len(units) == 0 {
		return frame{scale: 1}
	}
	minX, maxX := units[0].Position.X, units[0].Position.X
	minY, maxY := units[0].Position.Y, units[0].Position.Y
	for _, u := range units[1:] {
		minX = math.Min(minX, u.Position.X)
		maxX = math.Max(maxX, u.Position.X)
		minY = math.Min(minY, u.Position.Y)
		maxY = math.Max(maxY, u.Position.Y)
	}
	span := math.Max(maxX-minX, maxY-minY)
	pad := math.Min(distance, math.Max(span, 1))
	if pad <= 0 {
		pad = 1
	}
	extent := math.Max(span, 1e-9) + 2*pad
	return frame{minX: minX - pad, maxY: maxY + pad, scale: float64(size) / extent}
}

func (f frame) point(p geometry.Point) (float64, float64) {
	return (p.X - f.minX) * f.scale, (f.maxY - p.Y) * f.scale
}

// sectorPath samples the visible arc of a unit as a closed path.
func sectorPath(f frame, u unit.Unit, vision perception.Vision) string {
	angle := vision.AngleDeg() * math.Pi / 180
	if angle == 0 || vision.Distance == 0 {
		return ""
	}
	facing := u.Facing.Unit()
	heading := math.Atan2(facing.Y, facing.X)
	cx, cy := f.point(u.Position)

	var b strings.Builder
	if angle < 2*math.Pi {
		fmt.Fprintf(&b, "M%.2f %.2f ", cx, cy)
	}
	for i := 0; i <= arcSteps; i++ {
		theta := heading - angle/2 + angle*float64(i)/arcSteps
		sin, cos := math.Sincos(theta)
		x, y := f.point(geometry.Point{
			X: u.Position.X + vision.Distance*cos,
			Y: u.Position.Y + vision.Distance*sin,
		})
		op := "L"
		if i == 0 && angle >= 2*math.Pi {
			op = "M"
		}
		fmt.Fprintf(&b, "%s%.2f %.2f ", op, x, y)
	}
	b.WriteString("Z")
	return b.String()
}

// SVG writes the scene. rep may be empty, in which case counts are zero.
func SVG(w io.Writer, units []unit.Unit, vision perception.Vision, rep visibility.Report, opts Options) error {
	if opts.Size <= 0 {
		opts.Size = DefaultOptions().Size
	}
	f := newFrame(units, vision.Distance, opts.Size)
	seen := make(map[int]bool, len(opts.Visible))
	for _, id := range opts.Visible {
		seen[id] = true
	}

	p := page{Size: opts.Size, Title: fmt.Sprintf("%d units, %.1f deg, distance %.2f", len(units), vision.AngleDeg(), vision.Distance)}
	for _, u := range units {
		x, y := f.point(u.Position)
		dir := u.Facing.Unit()
		tipX, tipY := f.point(geometry.Point{
			X: u.Position.X + dir.X*vision.Distance/4,
			Y: u.Position.Y + dir.Y*vision.Distance/4,
		})
		v := unitView{
			ID:     u.ID,
			Label:  u.Name,
			X:      x,
			Y:      y,
			Ring:   vision.Distance * f.scale,
			Sector: sectorPath(f, u, vision),
			TipX:   tipX,
			TipY:   tipY,
		}
		if u.ID < len(rep.Entries) {
			v.Count = rep.Entries[u.ID].Visible
		}
		switch {
		case u.ID == opts.Focus:
			v.Class = "focus"
		case seen[u.ID]:
			v.Class = "seen"
		}
		p.Units = append(p.Units, v)
	}
	return svgTemplate.Execute(w, p)
}

// WriteFile renders the scene into path.
func WriteFile(path string, units []unit.Unit, vision perception.Vision, rep visibility.Report, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := SVG(f, units, vision, rep, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
