package cli

import (
	"fmt"
	"strings"
	"time"

	"ganttlane/internal/domain"
	"ganttlane/internal/drag"
)

func (m *boardModel) View() string {
	if m.quitting {
		return ""
	}
	if m.form != nil {
		return m.renderTitle() + "\n\n" + m.form.View()
	}
	if m.loading {
		return m.renderTitle() + "\n\n  " + dim("Loading board...")
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteByte('\n')
	b.WriteString(m.renderAxis())
	b.WriteByte('\n')
	b.WriteString(m.renderLanes())
	b.WriteString(m.renderStatus())

	out := b.String()

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.height > 0 {
		lines := strings.Count(out, "\n") + 1
		if lines < m.height {
			out += strings.Repeat("\n", m.height-lines)
		}
	}
	return out
}

func (m *boardModel) renderTitle() string {
	left := styleAccent.Render("ganttlane")
	info := dim(fmt.Sprintf("scale: %s  group: %s", m.gran, m.groupMode))
	return left + "  " + info
}

// renderAxis draws tick labels along the time axis, one label per tick
// step, positioned at the boundary's cell.
func (m *boardModel) renderAxis() string {
	if m.layout == nil {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = 120
	}

	line := make([]rune, width)
	for i := range line {
		line[i] = ' '
	}

	scale := m.layout.scale
	lastEnd := -2
	for t := m.layout.origin; ; t = nextTick(t, m.gran) {
		x := scale.Cells(t.Sub(m.layout.origin))
		if x >= width {
			break
		}
		label := tickLabel(t, m.gran)
		// Leave a gap between labels instead of overwriting the previous one.
		if x <= lastEnd+1 || x+len(label) > width {
			continue
		}
		for i, r := range label {
			line[x+i] = r
		}
		lastEnd = x + len(label) - 1
	}
	return dim(string(line))
}

func (m *boardModel) renderLanes() string {
	if m.layout == nil || len(m.layout.bars) == 0 {
		return "\n  " + dim("No items. Press a to add one.") + "\n"
	}

	width := m.width
	if width <= 0 {
		width = 120
	}

	var b strings.Builder
	for row := 0; row < m.layout.rowsUsed; row++ {
		if name, ok := m.layout.headerRows[row]; ok {
			b.WriteString(styleGroupHdr.Render("▸ " + name))
			b.WriteByte('\n')
			continue
		}
		b.WriteString(m.renderLaneRow(row, width))
		b.WriteByte('\n')
	}
	return b.String()
}

// renderLaneRow draws one lane: bars at their cell offsets over blank
// space, left to right.
func (m *boardModel) renderLaneRow(row, width int) string {
	var rowBars []*bar
	for i := range m.layout.bars {
		if m.layout.bars[i].row == row {
			rowBars = append(rowBars, &m.layout.bars[i])
		}
	}

	var b strings.Builder
	pos := 0
	for _, bar := range rowBars {
		x := bar.x
		if x < pos {
			x = pos
		}
		if x >= width {
			break
		}
		w := bar.width
		if x+w > width {
			w = width - x
		}
		if w < 1 {
			continue
		}

		b.WriteString(strings.Repeat(" ", x-pos))
		b.WriteString(m.renderBar(bar, w))
		pos = x + w
	}
	return b.String()
}

func (m *boardModel) renderBar(bar *bar, width int) string {
	label := bar.item.Title
	if bar.item.Kind == domain.KindMilestone {
		label = "◆ " + label
	}
	if len(label) > width {
		label = label[:width]
	}
	label += strings.Repeat(" ", width-len(label))

	style := styleBar
	if bar.pending {
		style = stylePending
	}
	if sel := m.selectedBar(); sel != nil && sel.item.ID == bar.item.ID {
		style = styleSelected
	}
	return style.Render(label)
}

func (m *boardModel) renderStatus() string {
	status := m.status
	if m.statusErr {
		status = styleError.Render(status)
	} else if status != "" {
		status = dim(status)
	}

	parts := make([]string, 0, len(m.keys.shortHelp()))
	for _, b := range m.keys.shortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return status + "\n" + dim(strings.Join(parts, "  "))
}

// nextTick advances to the next axis boundary at the given granularity.
func nextTick(t time.Time, g drag.Granularity) time.Time {
	switch g {
	case drag.GranHour:
		return t.Add(time.Hour)
	case drag.GranWeek:
		return t.AddDate(0, 0, 7)
	case drag.GranMonth:
		return t.AddDate(0, 1, 0)
	case drag.GranQuarter:
		return t.AddDate(0, 3, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

func tickLabel(t time.Time, g drag.Granularity) string {
	switch g {
	case drag.GranHour:
		return t.Format("15h")
	case drag.GranMonth:
		return t.Format("Jan")
	case drag.GranQuarter:
		return fmt.Sprintf("Q%d", (int(t.Month())-1)/3+1)
	default:
		return t.Format("Jan 2")
	}
}
