package frame

import "strings"

// renderHeldUndertitle draws the bottom border of a pane whose process has
// exited: exit code (colored green for 0, red otherwise), and on the main
// client a re-run tip, space permitting.
func renderHeldUndertitle(p Params) string {
	maxLen := maxInt(p.Geom.Cols-2, 0)
	first, firstLen := firstHeldTitlePart(p, *p.ExitStatus)

	left := style(p).Render(corner(p, bottomLeft))
	right := style(p).Render(corner(p, bottomRight))

	if p.IsMainClient {
		second, secondLen := secondHeldTitlePart(p)
		if firstLen+secondLen <= maxLen {
			pad := strings.Repeat(horizontal, maxInt(maxLen-(firstLen+secondLen), 0))
			return left + first + second + style(p).Render(pad) + right
		}
		if firstLen <= maxLen {
			pad := strings.Repeat(horizontal, maxInt(maxLen-firstLen, 0))
			return left + first + style(p).Render(pad) + right
		}
		return emptyUndertitle(p, maxLen)
	}

	if firstLen <= maxLen {
		pad := strings.Repeat(horizontal, maxInt(maxLen-firstLen, 0))
		return left + first + style(p).Render(pad) + right
	}
	return emptyUndertitle(p, maxLen)
}

func firstHeldTitlePart(p Params, status ExitStatus) (string, int) {
	if status.Exited {
		text := " [ EXITED ] "
		return style(p).Render(text), width(text)
	}
	leftBracket := " [ "
	label := "EXIT CODE: "
	code := itoa(status.Code)
	rightBracket := " ] "

	codeColor := p.Style.Colors.Green
	if status.Code != 0 {
		codeColor = p.Style.Colors.Red
	}
	codeText := style(p).Foreground(paletteColor(codeColor)).Render(code)

	text := style(p).Render(leftBracket+label) + codeText + style(p).Render(rightBracket)
	return text, width(leftBracket + label + code + rightBracket)
}

func secondHeldTitlePart(p Params) (string, int) {
	text := "Press ENTER to re-run "
	return style(p).Render(text), width(text)
}

func emptyUndertitle(p Params, maxLen int) string {
	left := style(p).Render(corner(p, bottomLeft))
	right := style(p).Render(corner(p, bottomRight))
	pad := strings.Repeat(horizontal, maxLen)
	return left + style(p).Render(pad) + right
}
