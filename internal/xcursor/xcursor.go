// Package xcursor creates cursors from the X core "cursor" glyph font.
package xcursor

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Glyph indexes in the cursor font. The mask of a glyph is the next index.
const (
	Arrow   = 2
	Hand2   = 60
	LeftPtr = 68
)

// CreateCursor returns a white on black cursor.
func CreateCursor(conn *xgb.Conn, glyph uint16) (xproto.Cursor, error) {
	return CreateCursorExtra(conn, glyph, 0xffff, 0xffff, 0xffff, 0, 0, 0)
}

func CreateCursorExtra(conn *xgb.Conn, glyph, foreRed, foreGreen,
	foreBlue, backRed, backGreen, backBlue uint16) (xproto.Cursor, error) {

	fontID, err := xproto.NewFontId(conn)
	if err != nil {
		return 0, err
	}

	cursorID, err := xproto.NewCursorId(conn)
	if err != nil {
		return 0, err
	}

	const name = "cursor"
	if err := xproto.OpenFontChecked(conn, fontID, uint16(len(name)), name).Check(); err != nil {
		return 0, fmt.Errorf("open cursor font: %w", err)
	}
	defer xproto.CloseFont(conn, fontID)

	if err := xproto.CreateGlyphCursorChecked(conn, cursorID, fontID, fontID,
		glyph, glyph+1,
		foreRed, foreGreen, foreBlue,
		backRed, backGreen, backBlue).Check(); err != nil {
		return 0, fmt.Errorf("create glyph cursor %d: %w", glyph, err)
	}

	return cursorID, nil
}
