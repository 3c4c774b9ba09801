package compose

import (
	"math"

	"github.com/versepaper/versepaper/internal/paint"
	"github.com/versepaper/versepaper/internal/poem"
)

// baselineFrac is where the CJK baseline sits within an em cell.
const baselineFrac = 0.83

// mainBudgetFrac is the share of canvas height available to a main text
// column before it wraps.
const mainBudgetFrac = 0.70

// sealRed is the fill of the author seal badge.
var sealRed = paint.Hex("#AA3E30")

// layoutVertical lays the main text as top-to-bottom columns ordered
// right-to-left, the bracketed title column to their left, and the
// author seal below the title.
func layoutVertical(scene *Scene, p poem.Poem, opts Options, textColor paint.RGBA) {
	size := opts.FontSize
	cell := size * (1 + opts.CharSpacing)
	colStep := size * (1 + opts.LineSpacing)

	maxChars := int(scene.Height * mainBudgetFrac / cell)
	if maxChars < 1 {
		maxChars = 1
	}

	var columns [][]rune
	for _, clause := range splitClauses(p.MainText) {
		runes := []rune(toVertical(clause))
		for len(runes) > maxChars {
			columns = append(columns, runes[:maxChars])
			runes = runes[maxChars:]
		}
		if len(runes) > 0 {
			columns = append(columns, runes)
		}
	}
	if len(columns) == 0 {
		return
	}

	longest := 0
	for _, col := range columns {
		if len(col) > longest {
			longest = len(col)
		}
	}

	blockW := float64(len(columns)) * colStep
	blockH := float64(longest) * cell
	top := (scene.Height - blockH) / 2
	right := scene.Width/2 + blockW/2

	for ci, col := range columns {
		x := right - float64(ci+1)*colStep
		for i, r := range col {
			scene.Texts = append(scene.Texts, Text{
				Value: string(r),
				X:     x,
				Y:     top + float64(i)*cell + size*baselineFrac,
				Size:  size,
				Color: textColor,
				Role:  RoleMain,
			})
		}
	}

	// Title and seal share the column left of the main block.
	sideX := right - blockW - colStep*0.9
	sideBottom := top

	if p.Title != "" {
		tsize := size * 0.6
		tcell := tsize * (1 + opts.CharSpacing)
		runes := []rune{titleBracketOpen}
		runes = append(runes, []rune(toVertical(p.Title))...)
		runes = append(runes, titleBracketClose)

		y0 := top + opts.TitleOffset
		for i, r := range runes {
			scene.Texts = append(scene.Texts, Text{
				Value: string(r),
				X:     sideX,
				Y:     y0 + float64(i)*tcell + tsize*baselineFrac,
				Size:  tsize,
				Color: textColor,
				Role:  RoleTitle,
			})
		}
		sideBottom = y0 + float64(len(runes))*tcell
	}

	if p.Author != "" {
		layoutSeal(scene, p.Author, sideX, sideBottom+size*0.6+opts.AuthorOffset, size*0.5)
	}
}

// layoutSeal places the author badge: a filled rounded box with the
// author's characters stacked inside in white.
func layoutSeal(scene *Scene, author string, x, y, size float64) {
	runes := []rune(author)
	cell := size * 1.15
	padX := size * 0.3
	padY := size * 0.25

	w := size + 2*padX
	h := float64(len(runes))*cell + 2*padY

	scene.Badges = append(scene.Badges, Badge{
		X:      x - padX,
		Y:      y,
		W:      w,
		H:      h,
		Corner: size * 0.2,
		Color:  sealRed,
	})

	for i, r := range runes {
		scene.Texts = append(scene.Texts, Text{
			Value: string(r),
			X:     x,
			Y:     y + padY + float64(i)*cell + size*baselineFrac,
			Size:  size,
			Color: paint.White,
			Role:  RoleAuthor,
		})
	}
}

// layoutHorizontal lays the poem as centered left-to-right lines with
// explicit inter-character spacing, one sentence per line, with title and
// author on one trailing line.
func layoutHorizontal(scene *Scene, p poem.Poem, opts Options, textColor paint.RGBA) {
	size := opts.FontSize
	lineStep := size * (1 + opts.LineSpacing)

	var lines [][]rune
	var cur []rune
	for _, clause := range splitClauses(p.MainText) {
		cur = append(cur, []rune(clause)...)
		last := cur[len(cur)-1]
		if last == '。' || last == '！' || last == '？' {
			lines = append(lines, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	if len(lines) == 0 {
		return
	}

	trailer := trailerLine(p)
	blockH := float64(len(lines)) * lineStep
	if trailer != "" {
		blockH += lineStep * 0.8
	}
	top := (scene.Height - blockH) / 2

	for li, line := range lines {
		lineW := lineWidth(line, size, opts.CharSpacing)
		x := (scene.Width - lineW) / 2
		y := top + float64(li)*lineStep + size*baselineFrac

		for _, r := range line {
			scene.Texts = append(scene.Texts, Text{
				Value: string(r),
				X:     x,
				Y:     y,
				Size:  size,
				Color: textColor,
				Role:  RoleMain,
			})
			x += runeEm(r)*size + opts.CharSpacing*size
		}
	}

	if trailer != "" {
		tsize := size * 0.6
		runes := []rune(trailer)
		lineW := lineWidth(runes, tsize, opts.CharSpacing)
		x := (scene.Width - lineW) / 2
		y := top + float64(len(lines))*lineStep + lineStep*0.8 + opts.AuthorOffset

		for _, r := range runes {
			scene.Texts = append(scene.Texts, Text{
				Value: string(r),
				X:     x,
				Y:     y,
				Size:  tsize,
				Color: textColor,
				Role:  RoleTitle,
			})
			x += runeEm(r)*tsize + opts.CharSpacing*tsize
		}
	}
}

// trailerLine formats the horizontal-mode title/author line.
func trailerLine(p poem.Poem) string {
	switch {
	case p.Title != "" && p.Author != "":
		return "《" + p.Title + "》 " + p.Author
	case p.Title != "":
		return "《" + p.Title + "》"
	case p.Author != "":
		return p.Author
	default:
		return ""
	}
}

// lineWidth sums em-square advances plus inter-character spacing.
func lineWidth(runes []rune, size, charSpacing float64) float64 {
	if len(runes) == 0 {
		return 0
	}
	w := 0.0
	for _, r := range runes {
		w += runeEm(r) * size
	}
	return w + float64(len(runes)-1)*charSpacing*size
}

// Watermark sizing bounds.
const (
	watermarkMinSize = 14.0
	watermarkMaxSize = 48.0
	// watermarkMarginFrac leaves this fraction of canvas height free
	// above and below the label.
	watermarkMarginFrac = 0.10
)

// layoutWatermark places the vertical color-name label along the left
// edge, auto-fitting the font size to the safe vertical budget and
// nudging it down so glyph ascenders are not clipped.
func layoutWatermark(scene *Scene, label string, textColor paint.RGBA) {
	runes := []rune(label)
	if len(runes) == 0 {
		return
	}

	budget := scene.Height * (1 - 2*watermarkMarginFrac)
	size := budget / (float64(len(runes)) * 1.15)
	size = math.Max(watermarkMinSize, math.Min(watermarkMaxSize, size))
	cell := size * 1.15

	x := scene.Width * 0.04
	// The ascender nudge keeps the first glyph inside the top margin.
	y0 := scene.Height*watermarkMarginFrac + size*0.17

	for i, r := range runes {
		scene.Texts = append(scene.Texts, Text{
			Value: string(r),
			X:     x,
			Y:     y0 + float64(i)*cell + size*baselineFrac,
			Size:  size,
			Color: textColor.WithAlpha(0.35),
			Role:  RoleWatermark,
		})
	}
}
