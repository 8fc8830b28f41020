package frame

import "strings"

// segment is a piece of the title line together with its display width,
// since ANSI styling bytes do not count toward the column budget.
type segment struct {
	text  string
	width int
}

func renderTitle(p Params) string {
	totalWidth := maxInt(p.Geom.Cols-2, 0)
	if middle, ok := renderTitleMiddle(p, totalWidth); ok {
		return titleLineWithMiddle(p, middle)
	}
	return titleLineWithoutMiddle(p)
}

func renderTitleRightSide(p Params, maxLength int) (segment, bool) {
	if p.ScrollPosition <= 0 && p.ScrollLength <= 0 {
		return segment{}, false
	}
	prefix := " SCROLL: "
	full := " " + itoa(p.ScrollPosition) + "/" + itoa(p.ScrollLength) + " "
	short := " " + itoa(p.ScrollPosition) + " "

	if width(prefix)+width(full) <= maxLength {
		text := prefix + full
		return segment{text: style(p).Render(text), width: width(text)}, true
	}
	if width(full) <= maxLength {
		return segment{text: style(p).Render(full), width: width(full)}, true
	}
	if width(short) <= maxLength {
		return segment{text: style(p).Render(short), width: width(short)}, true
	}
	return segment{}, false
}

func renderMyFocus(p Params, maxLength int) (segment, bool) {
	full := bracket(p, "MY FOCUS")
	if full.width <= maxLength {
		return full, true
	}
	short := bracket(p, "ME")
	if short.width <= maxLength {
		return short, true
	}
	return segment{}, false
}

func bracket(p Params, text string) segment {
	inner := width(text) + 4 // 2 separators, 2 padding
	s := style(p).Render(verticalLeft) + " " + style(p).Render(text) + " " + style(p).Render(verticalRight)
	return segment{text: s, width: inner}
}

func renderMyAndOthersFocus(p Params, maxLength int) (segment, bool) {
	fullText, fullLen := withCursors(p, "MY FOCUS AND:")
	shortText, shortLen := withCursors(p, "+")
	if fullLen+4 <= maxLength {
		return wrapBracket(p, fullText, fullLen+4), true
	}
	if shortLen+4 <= maxLength {
		return wrapBracket(p, shortText, shortLen+4), true
	}
	return segment{}, false
}

func renderOtherFocusedUsers(p Params, maxLength int) (segment, bool) {
	label := "FOCUSED USER:"
	if len(p.OtherFocusedClients) != 1 {
		label = "FOCUSED USERS:"
	}
	fullText, fullLen := withCursors(p, label)
	midText, midLen := withCursors(p, "U:")
	shortText, shortLen := withCursors(p, "")

	if fullLen+4 <= maxLength {
		return wrapBracket(p, fullText, fullLen+4), true
	}
	if midLen+4 <= maxLength {
		return wrapBracket(p, midText, midLen+4), true
	}
	if shortLen+3 <= maxLength {
		return wrapBracketPadding(p, shortText, shortLen+3, 1), true
	}
	return segment{}, false
}

func withCursors(p Params, label string) (string, int) {
	text := style(p).Render(label)
	total := width(label)
	for _, c := range p.OtherFocusedClients {
		total += 2
		text += " " + clientCursor(p, c)
	}
	return text, total
}

func wrapBracket(p Params, inner string, innerWidth int) segment {
	return wrapBracketPadding(p, inner, innerWidth, 2)
}

func wrapBracketPadding(p Params, inner string, innerWidth, pad int) segment {
	s := style(p).Render(verticalLeft) + strings.Repeat(" ", pad/2) + inner + strings.Repeat(" ", pad-pad/2) + style(p).Render(verticalRight)
	return segment{text: s, width: innerWidth}
}

func renderTitleMiddle(p Params, maxLength int) (segment, bool) {
	switch {
	case p.IsMainClient && len(p.OtherFocusedClients) == 0 && !p.OtherCursorsExistInSession:
		return segment{}, false
	case p.IsMainClient && len(p.OtherFocusedClients) == 0 && p.OtherCursorsExistInSession:
		return renderMyFocus(p, maxLength)
	case p.IsMainClient && len(p.OtherFocusedClients) > 0:
		return renderMyAndOthersFocus(p, maxLength)
	case len(p.OtherFocusedClients) > 0:
		return renderOtherFocusedUsers(p, maxLength)
	default:
		return segment{}, false
	}
}

// renderTitleLeftSide implements zellij's exact truncation arithmetic: when
// the title does not fit, it is split in half by display width and rejoined
// around a "[..]" (or, when integer division loses a column, "[...]") sign.
func renderTitleLeftSide(p Params, maxLength int) (segment, bool) {
	const sign = "[..]"
	const signLong = "[...]"
	if maxLength <= 6 || p.Title == "" {
		return segment{}, false
	}
	full := " " + p.Title + " "
	if width(full) <= maxLength {
		return segment{text: style(p).Render(full), width: width(full)}, true
	}

	halfLen := (maxLength - width(sign)) / 2
	firstPart := takeWidth(full, halfLen)
	secondPart := takeWidthFromEnd(full, halfLen)

	if width(firstPart)+width(sign)+width(secondPart) < maxLength {
		text := firstPart + signLong + secondPart
		return segment{text: style(p).Render(text), width: width(text)}, true
	}
	text := firstPart + sign + secondPart
	return segment{text: style(p).Render(text), width: width(text)}, true
}

func takeWidth(s string, limit int) string {
	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := runeWidth(r)
		if w+rw > limit {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	return b.String()
}

func takeWidthFromEnd(s string, limit int) string {
	runes := []rune(s)
	w := 0
	start := len(runes)
	for i := len(runes) - 1; i >= 0; i-- {
		rw := runeWidth(runes[i])
		if w+rw > limit {
			break
		}
		w += rw
		start = i
	}
	return string(runes[start:])
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}
