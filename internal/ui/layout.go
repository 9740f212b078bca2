package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

func DetermineLayoutMode(cols, rows int) LayoutMode {
	if cols < 60 || rows < 16 {
		return LayoutTooSmall
	}
	if cols >= 100 && rows >= 28 {
		return LayoutWide
	}
	return LayoutCompact
}

func padRune(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(s, "\t", "    "))
	if len(r) > width {
		r = r[:width]
	}
	if len(r) < width {
		r = append(r, []rune(strings.Repeat(" ", width-len(r)))...)
	}
	return string(r)
}

func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(ansi.Strip(s), "\n", " "))
	if len(r) <= width {
		return string(r)
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// composeOverlay centers overlay on top of base, clearing the cells under it.
// Both are flattened to plain text first; overlays carry their own chrome.
func composeOverlay(base, overlay string, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return base
	}
	base = ansi.Strip(base)
	overlay = ansi.Strip(overlay)
	baseLines := strings.Split(base, "\n")
	if len(baseLines) < rows {
		pad := make([]string, rows-len(baseLines))
		baseLines = append(baseLines, pad...)
	}
	for i := 0; i < rows; i++ {
		baseLines[i] = padRune(baseLines[i], cols)
	}

	overlayLines := strings.Split(strings.TrimRight(overlay, "\n"), "\n")
	if len(overlayLines) == 0 {
		return strings.Join(baseLines[:rows], "\n")
	}
	ow := 1
	for _, line := range overlayLines {
		if lw := len([]rune(line)); lw > ow {
			ow = lw
		}
	}
	if ow > cols {
		ow = cols
	}
	oh := len(overlayLines)
	if oh > rows {
		oh = rows
	}
	startRow := (rows - oh) / 2
	return placeOverlay(baseLines, overlayLines, cols, rows, startRow, ow)
}

// composeOverlayAt is composeOverlay with a caller-chosen start row, used for
// the animated drop-in of the game-over banner.
func composeOverlayAt(base, overlay string, cols, rows, startRow int) string {
	if cols <= 0 || rows <= 0 {
		return base
	}
	base = ansi.Strip(base)
	overlay = ansi.Strip(overlay)
	baseLines := strings.Split(base, "\n")
	if len(baseLines) < rows {
		pad := make([]string, rows-len(baseLines))
		baseLines = append(baseLines, pad...)
	}
	for i := 0; i < rows; i++ {
		baseLines[i] = padRune(baseLines[i], cols)
	}

	overlayLines := strings.Split(strings.TrimRight(overlay, "\n"), "\n")
	if len(overlayLines) == 0 {
		return strings.Join(baseLines[:rows], "\n")
	}
	ow := 1
	for _, line := range overlayLines {
		if lw := len([]rune(line)); lw > ow {
			ow = lw
		}
	}
	if ow > cols {
		ow = cols
	}
	return placeOverlay(baseLines, overlayLines, cols, rows, startRow, ow)
}

func placeOverlay(baseLines, overlayLines []string, cols, rows, startRow, ow int) string {
	oh := len(overlayLines)
	if oh > rows {
		oh = rows
	}
	if startRow < 0 {
		startRow = 0
	}
	startCol := (cols - ow) / 2
	if startCol < 0 {
		startCol = 0
	}

	for i := 0; i < oh; i++ {
		row := startRow + i
		if row < 0 || row >= rows {
			continue
		}
		dst := []rune(baseLines[row])
		src := []rune(overlayLines[i])
		if len(src) > ow {
			src = src[:ow]
		}
		for j := 0; j < ow && startCol+j < len(dst); j++ {
			dst[startCol+j] = ' '
		}
		for j := 0; j < len(src) && startCol+j < len(dst); j++ {
			dst[startCol+j] = src[j]
		}
		baseLines[row] = string(dst)
	}
	return strings.Join(baseLines[:rows], "\n")
}
