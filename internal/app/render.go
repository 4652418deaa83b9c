package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/textobjects/internal/engine/buffer"
	"github.com/dshills/textobjects/internal/textobject"
)

var (
	styleText     = tcell.StyleDefault
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleCursor   = tcell.StyleDefault.Underline(true).Bold(true)
	styleStatus   = tcell.StyleDefault.Bold(true)
)

// draw repaints the whole screen: buffer lines, selection highlight,
// cursor, and status line.
func (a *App) draw() {
	a.screen.Clear()
	width, height := a.screen.Size()
	textRows := height - 1

	for row := 0; row < a.snap.LineCount() && row < textRows; row++ {
		x := 0
		for col := 0; col < a.snap.LineLen(row) && x < width; col++ {
			cluster, err := a.snap.ClusterAt(row, col)
			if err != nil {
				break
			}
			style := styleText
			if a.selected(buffer.Point{Row: row, Col: col}) {
				style = styleSelected
			}
			if a.cursor.Row == row && a.cursor.Col == col {
				style = styleCursor
			}
			x += a.putCluster(x, row, cluster, style)
		}
		// Cursor or selection sitting on the end-of-line position.
		if a.cursor.Row == row && a.cursor.Col == a.snap.LineLen(row) && x < width {
			a.screen.SetContent(x, row, ' ', nil, styleCursor)
		} else if a.selected(buffer.Point{Row: row, Col: a.snap.LineLen(row)}) && x < width {
			a.screen.SetContent(x, row, ' ', nil, styleSelected)
		}
	}

	a.drawStatus(width, height-1)
	a.screen.Show()
}

// putCluster writes one grapheme cluster and returns the cell width used.
func (a *App) putCluster(x, y int, cluster string, style tcell.Style) int {
	runes := []rune(cluster)
	var comb []rune
	if len(runes) > 1 {
		comb = runes[1:]
	}
	a.screen.SetContent(x, y, runes[0], comb, style)
	w := runewidth.StringWidth(cluster)
	if w < 1 {
		w = 1
	}
	return w
}

// selected reports whether a position is inside the active selection under
// its selection mode.
func (a *App) selected(p buffer.Point) bool {
	if !a.sel.active {
		return false
	}
	r := a.sel.rng
	switch a.sel.mode {
	case textobject.SelectLine:
		return p.Row >= r.Start.Row && p.Row <= r.End.Row
	case textobject.SelectBlock:
		lo, hi := r.Start.Col, r.End.Col
		if lo > hi {
			lo, hi = hi, lo
		}
		return p.Row >= r.Start.Row && p.Row <= r.End.Row && p.Col >= lo && p.Col < hi
	default:
		return r.Contains(p)
	}
}

func (a *App) drawStatus(width, y int) {
	mode := "normal"
	if a.submode != textobject.SubmodeNone {
		mode = a.submode.String()
	}
	line := fmt.Sprintf(" %s  %s  [%s]", a.opts.File, a.cursor, mode)
	if a.status != "" {
		line += "  " + a.status
	}

	x := 0
	for _, r := range line {
		if x >= width {
			break
		}
		a.screen.SetContent(x, y, r, nil, styleStatus)
		x += runewidth.RuneWidth(r)
	}
	for ; x < width; x++ {
		a.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
}
