package splitpanel

import "github.com/charmbracelet/lipgloss"

const (
	ScrollThumbChar = "█"
	ScrollTrackChar = "│"
)

// thumbSpan returns the first row and row count of the thumb for a window of
// rows over total items scrolled to offset. At least one track row stays
// visible.
func thumbSpan(rows, total, offset int) (pos, size int) {
	size = max(rows*rows/total, 1)
	size = min(size, max(rows-2, 1))
	free := max(rows-size, 0)
	pos = offset * free / max(total-rows, 1)
	return min(max(pos, 0), free), size
}

// BuildScrollbar returns one cell per visible row. Every cell is blank when
// totalItems fits in viewHeight.
func BuildScrollbar(viewHeight, totalItems, scrollOffset int, activeColor, trackColor lipgloss.Color, focused bool) []string {
	cells := make([]string, viewHeight)
	if totalItems <= viewHeight {
		for i := range cells {
			cells[i] = " "
		}
		return cells
	}

	thumb := lipgloss.NewStyle().Foreground(trackColor)
	if focused {
		thumb = thumb.Foreground(activeColor)
	}
	track := ScrollTrackChar
	if trackColor != "" {
		track = lipgloss.NewStyle().Foreground(trackColor).Render(track)
	}

	pos, size := thumbSpan(viewHeight, totalItems, scrollOffset)
	for row := range cells {
		if row >= pos && row < pos+size {
			cells[row] = thumb.Render(ScrollThumbChar)
			continue
		}
		cells[row] = track
	}
	return cells
}
