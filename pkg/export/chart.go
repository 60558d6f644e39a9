package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"
)

// ChartOptions controls bar chart export.
type ChartOptions struct {
	Path   string // Output path; format inferred from extension when Format empty
	Format string // "svg" or "png" (case-insensitive)
	Title  string
}

// SaveChart draws one horizontal bar per candidate, scaled to the highest
// score, with the invalid tally below.
func SaveChart(r Result, opts ChartOptions) error {
	if len(r.Standings) == 0 {
		return fmt.Errorf("no candidates to chart")
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".png":
			format = "png"
		case ".svg":
			format = "svg"
		default:
			format = "svg"
			if filepath.Ext(opts.Path) == "" {
				opts.Path += ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	layout := buildChartLayout(r, opts.Title)
	if format == "png" {
		return renderChartPNG(opts.Path, layout)
	}

	file, err := os.Create(opts.Path)
	if err != nil {
		return err
	}
	if err := renderChartSVG(file, layout); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// --- layout ----------------------------------------------------------------

type chartBar struct {
	Label string
	Value string
	Y     int
	W     int // bar length in pixels
}

type chartLayout struct {
	Title  string
	Footer string
	Bars   []chartBar
	Width  int
	Height int
	BarX   int
	BarH   int
}

func buildChartLayout(r Result, title string) chartLayout {
	const (
		width   = 720
		padding = 24
		header  = 64
		rowH    = 30
		barH    = 20
		labelW  = 180
		valueW  = 90
		footer  = 40
	)
	if title == "" {
		title = "Results"
	}

	maxBar := width - 2*padding - labelW - valueW
	maxScore := r.MaxScore()

	l := chartLayout{
		Title:  title,
		Footer: fmt.Sprintf("%d ballots, %d invalid", r.Cast, r.Invalid),
		Width:  width,
		Height: header + rowH*len(r.Standings) + footer,
		BarX:   padding + labelW,
		BarH:   barH,
	}
	for i, s := range r.Standings {
		w := 0
		if maxScore > 0 {
			w = s.Score * maxBar / maxScore
		}
		l.Bars = append(l.Bars, chartBar{
			Label: truncate(s.Name, 24),
			Value: fmt.Sprintf("%d (%d)", s.Score, s.FirstRankVotes),
			Y:     header + i*rowH,
			W:     w,
		})
	}
	return l
}

var (
	colorBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorBar      = color.RGBA{0x6b, 0x80, 0xbf, 0xff}
	colorLeader   = color.RGBA{0x50, 0xa0, 0x6e, 0xff}
	colorText     = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle   = color.RGBA{0x66, 0x66, 0x66, 0xff}
)

func barColor(i int) color.RGBA {
	if i == 0 {
		return colorLeader
	}
	return colorBar
}

// --- renderers -------------------------------------------------------------

func renderChartSVG(w io.Writer, l chartLayout) error {
	canvas := svg.New(w)
	canvas.Start(l.Width, l.Height)
	canvas.Rect(0, 0, l.Width, l.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Text(24, 36, l.Title, fmt.Sprintf("fill:%s;font-size:18px;font-family:monospace;font-weight:bold", css(colorText)))

	for i, b := range l.Bars {
		textY := b.Y + l.BarH - 5
		canvas.Text(24, textY, b.Label, fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorText)))
		if b.W > 0 {
			canvas.Roundrect(l.BarX, b.Y, b.W, l.BarH, 3, 3, fmt.Sprintf("fill:%s", css(barColor(i))))
		}
		canvas.Text(l.BarX+b.W+8, textY, b.Value, fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))
	}

	canvas.Text(24, l.Height-16, l.Footer, fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))
	canvas.End()
	return nil
}

func renderChartPNG(path string, l chartLayout) error {
	dc := gg.NewContext(l.Width, l.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(colorText)
	dc.DrawStringAnchored(l.Title, 24, 32, 0, 0.5)

	for i, b := range l.Bars {
		midY := float64(b.Y) + float64(l.BarH)/2
		dc.SetColor(colorText)
		dc.DrawStringAnchored(b.Label, 24, midY, 0, 0.5)
		if b.W > 0 {
			dc.SetColor(barColor(i))
			dc.DrawRoundedRectangle(float64(l.BarX), float64(b.Y), float64(b.W), float64(l.BarH), 3)
			dc.Fill()
		}
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(b.Value, float64(l.BarX+b.W+8), midY, 0, 0.5)
	}

	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(l.Footer, 24, float64(l.Height-20), 0, 0.5)

	return dc.SavePNG(path)
}

// --- helpers ---------------------------------------------------------------

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
