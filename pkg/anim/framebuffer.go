package anim

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// framebuffer is the cell grid an engine paints into each frame. It is the
// terminal-host stand-in for a render surface: cleared, repainted and
// flattened to a styled string once per tick.
type framebuffer struct {
	width, height int
	chars         []rune
	colors        []string
}

func newFramebuffer(width, height int) *framebuffer {
	fb := &framebuffer{width: width, height: height}
	fb.chars = make([]rune, width*height)
	fb.colors = make([]string, width*height)
	fb.clear()
	return fb
}

func (fb *framebuffer) clear() {
	for i := range fb.chars {
		fb.chars[i] = ' '
		fb.colors[i] = ""
	}
}

func (fb *framebuffer) set(x, y int, ch rune, color string) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	i := y*fb.width + x
	fb.chars[i] = ch
	fb.colors[i] = color
}

// render flattens the grid, batching runs of identically-colored cells into
// a single styled segment to keep the frame string small.
func (fb *framebuffer) render() string {
	var sb strings.Builder
	for y := 0; y < fb.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		runStart := 0
		runColor := fb.colors[y*fb.width]
		flush := func(end int) {
			if end <= runStart {
				return
			}
			segment := string(fb.chars[y*fb.width+runStart : y*fb.width+end])
			if runColor == "" {
				sb.WriteString(segment)
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(segment))
			}
		}
		for x := 1; x < fb.width; x++ {
			if fb.colors[y*fb.width+x] != runColor {
				flush(x)
				runStart = x
				runColor = fb.colors[y*fb.width+x]
			}
		}
		flush(fb.width)
	}
	return sb.String()
}

// line draws a straight run of cells between two points (Bresenham),
// invoking plot with the step index and total step count so callers can
// position effects along the segment.
func (fb *framebuffer) line(x0, y0, x1, y1 int, plot func(x, y, step, steps int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	steps := dx
	if -dy > steps {
		steps = -dy
	}
	if steps == 0 {
		plot(x0, y0, 0, 1)
		return
	}
	err := dx + dy
	x, y := x0, y0
	for step := 0; ; step++ {
		plot(x, y, step, steps)
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
