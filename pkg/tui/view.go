package tui

import "strings"

func (m Model) View() string {
	if !m.ready {
		return "summoning..."
	}

	var sections []string

	sections = append(sections, m.enginePane())
	sections = append(sections, m.captionLine())
	sections = append(sections, m.viewport.View())
	sections = append(sections, m.statusLine())
	sections = append(sections, m.textarea.View())

	return strings.Join(sections, "\n")
}

// enginePane pads the engine frame to its fixed height so the layout
// never shifts while the engine is dormant.
func (m Model) enginePane() string {
	frame := m.engine.View()
	lines := 0
	if frame != "" {
		lines = strings.Count(frame, "\n") + 1
	}
	if lines < m.engineHeight {
		frame += strings.Repeat("\n", m.engineHeight-lines)
	}
	return frame
}

func (m Model) captionLine() string {
	if m.caption == "" {
		return ""
	}
	text := "❝ " + m.caption + " ❞"
	return captionStyle.Render(truncate(text, m.width))
}

func (m Model) statusLine() string {
	if m.notice != "" {
		return noticeStyle.Render(truncate(m.notice, m.width))
	}

	var sb strings.Builder
	if m.manager.InFlight() {
		sb.WriteString(m.spin.View())
		sb.WriteString(" streaming")
	} else {
		sb.WriteString("ready")
	}
	sb.WriteString("  ·  ")
	sb.WriteString(m.manager.Model())
	sb.WriteString("  ·  ")
	sb.WriteString(m.engineKind)
	sb.WriteString(" engine (ctrl+e swaps)")
	return statusStyle.Render(truncate(sb.String(), m.width))
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
