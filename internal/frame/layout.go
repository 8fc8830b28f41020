package frame

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

func runeWidth(r rune) int { return runewidth.RuneWidth(r) }

// titleLineWithMiddle places a left side (title) and/or right side (scroll
// indicator) flanking a middle segment (focus indicator), falling back to
// fewer segments as space runs out, exactly as zellij's title_line_with_middle.
func titleLineWithMiddle(p Params, middle segment) string {
	total := maxInt(p.Geom.Cols-2, 0)
	sideBudget := maxInt((total-(middle.width+2))/2, 0)

	left, haveLeft := renderTitleLeftSide(p, sideBudget)
	right, haveRight := renderTitleRightSide(p, sideBudget)

	switch {
	case haveLeft && haveRight:
		return threePartTitleLine(p, left, middle, right)
	case haveLeft:
		return leftAndMiddleTitleLine(p, left, middle)
	default:
		return middleOnlyTitleLine(p, middle)
	}
}

func titleLineWithoutMiddle(p Params) string {
	total := maxInt(p.Geom.Cols-2, 0)
	left, haveLeft := renderTitleLeftSide(p, total)
	if !haveLeft {
		return emptyTitleLine(p)
	}
	spaceLeft := maxInt(total-(left.width+1), 0)
	right, haveRight := renderTitleRightSide(p, spaceLeft)
	if haveRight {
		return twoPartTitleLine(p, left, right)
	}
	return leftOnlyTitleLine(p, left)
}

func threePartTitleLine(p Params, left, middle, right segment) string {
	total := maxInt(p.Geom.Cols-2, 0)
	leftStart := 1
	middleStart := total/2 - middle.width/2 + 1
	rightStart := maxInt(p.Geom.Cols-1-right.width, 0)

	var b strings.Builder
	b.WriteString(style(p).Render(corner(p, topLeft)))
	col := 1
	for col < p.Geom.Cols-1 {
		switch col {
		case leftStart:
			b.WriteString(left.text)
			col += left.width
		case middleStart:
			b.WriteString(middle.text)
			col += middle.width
		case rightStart:
			b.WriteString(right.text)
			col += right.width
		default:
			b.WriteString(style(p).Render(horizontal))
			col++
		}
	}
	b.WriteString(style(p).Render(corner(p, topRight)))
	return b.String()
}

func leftAndMiddleTitleLine(p Params, left, middle segment) string {
	total := maxInt(p.Geom.Cols-2, 0)
	leftStart := 1
	middleStart := total/2 - middle.width/2 + 1

	var b strings.Builder
	b.WriteString(style(p).Render(corner(p, topLeft)))
	col := 1
	for col < p.Geom.Cols-1 {
		switch col {
		case leftStart:
			b.WriteString(left.text)
			col += left.width
		case middleStart:
			b.WriteString(middle.text)
			col += middle.width
		default:
			b.WriteString(style(p).Render(horizontal))
			col++
		}
	}
	b.WriteString(style(p).Render(corner(p, topRight)))
	return b.String()
}

func middleOnlyTitleLine(p Params, middle segment) string {
	total := maxInt(p.Geom.Cols-2, 0)
	middleStart := total/2 - middle.width/2 + 1

	var b strings.Builder
	b.WriteString(style(p).Render(corner(p, topLeft)))
	col := 1
	for col < p.Geom.Cols-1 {
		if col == middleStart {
			b.WriteString(middle.text)
			col += middle.width
			continue
		}
		b.WriteString(style(p).Render(horizontal))
		col++
	}
	b.WriteString(style(p).Render(corner(p, topRight)))
	return b.String()
}

func twoPartTitleLine(p Params, left, right segment) string {
	total := maxInt(p.Geom.Cols-2, 0)
	mid := maxInt(total-(left.width+right.width), 0)
	var b strings.Builder
	b.WriteString(style(p).Render(corner(p, topLeft)))
	b.WriteString(left.text)
	b.WriteString(style(p).Render(strings.Repeat(horizontal, mid)))
	b.WriteString(right.text)
	b.WriteString(style(p).Render(corner(p, topRight)))
	return b.String()
}

func leftOnlyTitleLine(p Params, left segment) string {
	total := maxInt(p.Geom.Cols-2, 0)
	mid := maxInt(total-left.width, 0)
	var b strings.Builder
	b.WriteString(style(p).Render(corner(p, topLeft)))
	b.WriteString(left.text)
	b.WriteString(style(p).Render(strings.Repeat(horizontal, mid)))
	b.WriteString(style(p).Render(corner(p, topRight)))
	return b.String()
}

func emptyTitleLine(p Params) string {
	total := maxInt(p.Geom.Cols-2, 0)
	var b strings.Builder
	b.WriteString(style(p).Render(corner(p, topLeft)))
	b.WriteString(style(p).Render(strings.Repeat(horizontal, total)))
	b.WriteString(style(p).Render(corner(p, topRight)))
	return b.String()
}
