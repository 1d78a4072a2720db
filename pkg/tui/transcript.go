package tui

import (
	"strings"

	"github.com/vventirozos/GhostAgent-v2/pkg/chat"
)

// followThreshold is the distance from the bottom, in lines, within which
// the transcript keeps auto-scrolling as new content arrives. A reader who
// scrolled further up is never yanked back down.
const followThreshold = 2

// shouldFollow reports whether the viewport was close enough to the bottom
// before an update to warrant auto-scrolling after it.
func shouldFollow(totalLines, yOffset, height int) bool {
	hidden := totalLines - (yOffset + height)
	return hidden <= followThreshold
}

const thinkingPlaceholder = "..."

// renderTranscript flattens history plus the in-flight assembly into the
// viewport content. The full accumulated assistant text is re-rendered on
// every fragment so markdown can reflow.
func (m *Model) renderTranscript() string {
	var sb strings.Builder

	for _, msg := range m.manager.History() {
		switch msg.Role {
		case chat.RoleUser:
			sb.WriteString(userStyle.Render("you ❯ " + msg.Content))
			sb.WriteString("\n")
		case chat.RoleAssistant:
			sb.WriteString(assistantStyle.Render("ghost ❯"))
			sb.WriteString("\n")
			sb.WriteString(m.renderMarkdown(msg.Content))
		case chat.RoleSystem:
			// System prompt stays out of the transcript
		case chat.RoleError:
			sb.WriteString(errorStyle.Render("✗ " + msg.Content))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if m.manager.InFlight() {
		sb.WriteString(assistantStyle.Render("ghost ❯"))
		sb.WriteString("\n")
		if acc := m.manager.Accumulated(); acc != "" {
			sb.WriteString(m.renderMarkdown(acc))
		} else {
			sb.WriteString(placeholderSty.Render(thinkingPlaceholder))
			sb.WriteString("\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// refreshViewport re-renders the transcript, preserving the reader's
// scroll intent: capture follow-ness before the update, auto-scroll after
// only if they were already at (or near) the bottom.
func (m *Model) refreshViewport() {
	follow := shouldFollow(m.viewport.TotalLineCount(), m.viewport.YOffset, m.viewport.Height)
	m.viewport.SetContent(m.renderTranscript())
	if follow {
		m.viewport.GotoBottom()
	}
}

// renderMarkdown runs text through glamour, falling back to the raw text
// when no renderer is available or rendering fails.
func (m *Model) renderMarkdown(text string) string {
	if m.renderer == nil {
		return text + "\n"
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text + "\n"
	}
	return strings.TrimLeft(strings.TrimRight(out, "\n"), "\n") + "\n"
}
