package render

import (
	"strconv"
	"unicode/utf8"
)

const csi = "\x1b["

// Terminal control sequences.
const (
	Reset            = csi + "0m"
	ClearScreen      = csi + "2J"
	HideCursor       = csi + "?25l"
	ShowCursor       = csi + "?25h"
	EnableAltScreen  = csi + "?1049h"
	DisableAltScreen = csi + "?1049l"

	// EnterScreen prepares a session: alternate buffer, no cursor, blank.
	EnterScreen = EnableAltScreen + HideCursor + ClearScreen
	// LeaveScreen restores the session's normal screen.
	LeaveScreen = ShowCursor + DisableAltScreen
)

func appendMoveTo(buf []byte, row, col int) []byte {
	buf = append(buf, csi...)
	buf = strconv.AppendInt(buf, int64(row), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col), 10)
	return append(buf, 'H')
}

// appendCell writes a cell's full SGR and character. Each cell starts from
// a reset so attributes never leak into the next one.
func appendCell(buf []byte, c Cell) []byte {
	if c.Bold {
		buf = append(buf, csi+"0;1;38;2;"...)
	} else {
		buf = append(buf, csi+"0;38;2;"...)
	}
	buf = appendRGB(buf, c.Fg)
	buf = append(buf, ";48;2;"...)
	buf = appendRGB(buf, c.Bg)
	buf = append(buf, 'm')
	return utf8.AppendRune(buf, c.Ch)
}

func appendRGB(buf []byte, c RGB) []byte {
	buf = strconv.AppendUint(buf, uint64(c.R), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(c.G), 10)
	buf = append(buf, ';')
	return strconv.AppendUint(buf, uint64(c.B), 10)
}
