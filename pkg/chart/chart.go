// Package chart renders the daily mood trend as a PNG line chart.
package chart

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"moodjournal-api/pkg/mood"
	"moodjournal-api/pkg/report"
)

const (
	DefaultWidth  = 900
	DefaultHeight = 480
	DefaultTitle  = "Mood Trends Over Time"

	xAxisLabel  = "Date"
	yAxisLabel  = "Mood Frequency"
	legendTitle = "Mood"
	dateLayout  = "2006-01-02"

	marginLeft   = 64
	marginRight  = 150
	marginTop    = 48
	marginBottom = 64

	lineWidth    = 2
	markerRadius = 4
	dashOn       = 4
	dashOff      = 4
	yTicks       = 5
)

// ErrEmptySeries is returned when there is nothing to plot.
var ErrEmptySeries = errors.New("chart: trend series has no points")

// Options controls the canvas. Zero values fall back to the defaults.
type Options struct {
	Width  int
	Height int
	Title  string
}

func (o Options) withDefaults() Options {
	if o.Width < marginLeft+marginRight+100 {
		o.Width = DefaultWidth
	}
	if o.Height < marginTop+marginBottom+100 {
		o.Height = DefaultHeight
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	return o
}

var (
	background = color.RGBA{255, 255, 255, 255}
	axisColor  = color.RGBA{60, 60, 60, 255}
	gridColor  = color.RGBA{200, 200, 200, 255}
	textColor  = color.RGBA{20, 20, 20, 255}

	categoryColors = map[mood.Category]color.RGBA{
		mood.Positive: {46, 160, 67, 255},
		mood.Negative: {214, 39, 40, 255},
		mood.Neutral:  {31, 119, 180, 255},
	}
	extraColors = []color.RGBA{
		{148, 103, 189, 255},
		{255, 127, 14, 255},
		{140, 86, 75, 255},
		{23, 190, 207, 255},
	}
)

// ColorFor returns the line colour used for category c, given its position
// in the series' category list.
func ColorFor(c mood.Category, index int) color.RGBA {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return extraColors[index%len(extraColors)]
}

// RenderTrend draws series and writes it to w as PNG.
func RenderTrend(w io.Writer, series *report.TrendSeries, opts Options) error {
	img, err := Draw(series, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Draw renders series onto a new image: one line per category with point
// markers, a dashed grid, axis labels and a legend.
func Draw(series *report.TrendSeries, opts Options) (*image.RGBA, error) {
	if series == nil || len(series.Points) == 0 {
		return nil, ErrEmptySeries
	}
	opts = opts.withDefaults()

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	l := newLayout(opts, series)
	drawGrid(img, l, series)
	drawAxes(img, l)

	for i, c := range series.Categories {
		col := ColorFor(c, i)
		pts := make([]point, len(series.Points))
		for j, p := range series.Points {
			pts[j] = point{l.x(j), l.y(p.Counts[c])}
		}
		strokePolyline(img, pts, lineWidth, col)
		fillMarkers(img, pts, markerRadius, col)
	}

	drawLabels(img, l, opts.Title)
	drawLegend(img, l, series.Categories)
	return img, nil
}

type point struct{ x, y float32 }

type layout struct {
	plot  image.Rectangle
	n     int
	yMax  int
	yStep int
	every int
}

func newLayout(opts Options, series *report.TrendSeries) layout {
	l := layout{
		plot: image.Rect(marginLeft, marginTop, opts.Width-marginRight, opts.Height-marginBottom),
		n:    len(series.Points),
	}
	maxCount := 0
	for _, p := range series.Points {
		for _, v := range p.Counts {
			if v > maxCount {
				maxCount = v
			}
		}
	}
	if maxCount < 1 {
		maxCount = 1
	}
	l.yStep = int(math.Ceil(float64(maxCount) / yTicks))
	l.yMax = l.yStep * int(math.Ceil(float64(maxCount)/float64(l.yStep)))

	labelWidth := textWidth(dateLayout) + 10
	l.every = int(math.Ceil(float64(l.n*labelWidth) / float64(l.plot.Dx())))
	if l.every < 1 {
		l.every = 1
	}
	return l
}

func (l layout) x(i int) float32 {
	if l.n <= 1 {
		return float32(l.plot.Min.X + l.plot.Dx()/2)
	}
	return float32(l.plot.Min.X) + float32(i)*float32(l.plot.Dx())/float32(l.n-1)
}

func (l layout) y(v int) float32 {
	return float32(l.plot.Max.Y) - float32(v)*float32(l.plot.Dy())/float32(l.yMax)
}

func drawGrid(img *image.RGBA, l layout, series *report.TrendSeries) {
	for v := 0; v <= l.yMax; v += l.yStep {
		y := int(math.Round(float64(l.y(v))))
		dashedLine(img, l.plot.Min.X, y, l.plot.Max.X, y, gridColor)
		label := strconv.Itoa(v)
		drawText(img, l.plot.Min.X-8-textWidth(label), y+4, label, textColor)
	}
	for i := 0; i < l.n; i += l.every {
		x := int(math.Round(float64(l.x(i))))
		dashedLine(img, x, l.plot.Min.Y, x, l.plot.Max.Y, gridColor)
		label := series.Points[i].Date.Format(dateLayout)
		lx := x - textWidth(label)/2
		if lx < 0 {
			lx = 0
		}
		if maxX := img.Bounds().Dx() - textWidth(label); lx > maxX {
			lx = maxX
		}
		drawText(img, lx, l.plot.Max.Y+18, label, textColor)
	}
}

func drawAxes(img *image.RGBA, l layout) {
	fillRect(img, image.Rect(l.plot.Min.X-1, l.plot.Min.Y, l.plot.Min.X+1, l.plot.Max.Y+1), axisColor)
	fillRect(img, image.Rect(l.plot.Min.X-1, l.plot.Max.Y-1, l.plot.Max.X, l.plot.Max.Y+1), axisColor)
}

func drawLabels(img *image.RGBA, l layout, title string) {
	w := img.Bounds().Dx()
	drawText(img, (w-textWidth(title))/2, 22, title, textColor)
	drawText(img, l.plot.Min.X+(l.plot.Dx()-textWidth(xAxisLabel))/2, img.Bounds().Dy()-16, xAxisLabel, textColor)
	drawText(img, 8, l.plot.Min.Y-14, yAxisLabel, textColor)
}

func drawLegend(img *image.RGBA, l layout, categories []mood.Category) {
	x := l.plot.Max.X + 20
	y := l.plot.Min.Y + 12
	drawText(img, x, y, legendTitle, textColor)
	for i, c := range categories {
		y += 20
		col := ColorFor(c, i)
		mid := float32(y - 4)
		strokePolyline(img, []point{{float32(x), mid}, {float32(x + 24), mid}}, lineWidth, col)
		fillMarkers(img, []point{{float32(x + 12), mid}}, markerRadius, col)
		drawText(img, x+32, y, string(c), textColor)
	}
}

// strokePolyline rasterises each segment as a quad of the given width.
func strokePolyline(img *image.RGBA, pts []point, width float32, col color.Color) {
	if len(pts) < 2 {
		return
	}
	b := img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	hw := width / 2
	for i := 1; i < len(pts); i++ {
		p0, p1 := pts[i-1], pts[i]
		dx, dy := p1.x-p0.x, p1.y-p0.y
		length := float32(math.Hypot(float64(dx), float64(dy)))
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*hw, dx/length*hw
		z.MoveTo(p0.x+nx, p0.y+ny)
		z.LineTo(p1.x+nx, p1.y+ny)
		z.LineTo(p1.x-nx, p1.y-ny)
		z.LineTo(p0.x-nx, p0.y-ny)
		z.ClosePath()
	}
	z.Draw(img, b, image.NewUniform(col), image.Point{})
}

// fillMarkers draws a filled octagon at every point.
func fillMarkers(img *image.RGBA, pts []point, r float32, col color.Color) {
	b := img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	for _, p := range pts {
		for k := 0; k < 8; k++ {
			a := float64(k) * math.Pi / 4
			vx := p.x + r*float32(math.Cos(a))
			vy := p.y + r*float32(math.Sin(a))
			if k == 0 {
				z.MoveTo(vx, vy)
			} else {
				z.LineTo(vx, vy)
			}
		}
		z.ClosePath()
	}
	z.Draw(img, b, image.NewUniform(col), image.Point{})
}

func dashedLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if y0 == y1 {
		for x := x0; x <= x1; x++ {
			if (x-x0)%(dashOn+dashOff) < dashOn {
				img.SetRGBA(x, y0, col)
			}
		}
		return
	}
	for y := y0; y <= y1; y++ {
		if (y-y0)%(dashOn+dashOff) < dashOn {
			img.SetRGBA(x0, y, col)
		}
	}
}

func fillRect(img *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func drawText(img *image.RGBA, x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Round()
}
