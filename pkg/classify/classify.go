// Package classify maps backend log lines to animation signals.
//
// The agent prefixes every log line with a pictographic icon describing the
// activity (🔍 for search, 📝 for writes, ✅ for completion and so on). The
// classifier keys on the first such icon, yielding a category that drives
// the engine's working/idle channels and a display color for the transient
// flash effect.
package classify

import "strings"

// Category is the visual-state meaning of a log line
type Category int

const (
	// CategoryNone means the line carries no recognized icon
	CategoryNone Category = iota
	// CategoryWorking marks activity icons that should activate the engine
	CategoryWorking
	// CategoryIdle marks terminal icons that should deactivate the engine
	CategoryIdle
)

func (c Category) String() string {
	switch c {
	case CategoryWorking:
		return "working"
	case CategoryIdle:
		return "idle"
	default:
		return "none"
	}
}

// Signal is the classification result for a single log line
type Signal struct {
	Symbol   rune
	Category Category
	Color    string
}

// Display colors, priority ordered: a symbol belonging to more than one
// group takes the first group's color.
const (
	ColorError    = "#ff4d5e"
	ColorMemory   = "#b07aff"
	ColorTool     = "#4dd8e8"
	ColorTerminal = "#69d98a"
	ColorAccent   = "#e8c84d"
)

// signalTable is the sealed icon table. Adding an icon means adding a row
// here; nothing else pattern-matches on log text.
var signalTable = map[rune]Signal{
	// Tool activity
	'🔍': {Symbol: '🔍', Category: CategoryWorking, Color: ColorTool},
	'🌐': {Symbol: '🌐', Category: CategoryWorking, Color: ColorTool},
	'📝': {Symbol: '📝', Category: CategoryWorking, Color: ColorTool},
	'📖': {Symbol: '📖', Category: CategoryWorking, Color: ColorTool},
	'✂':  {Symbol: '✂', Category: CategoryWorking, Color: ColorTool},
	'⚙':  {Symbol: '⚙', Category: CategoryWorking, Color: ColorTool},
	'🛠': {Symbol: '🛠', Category: CategoryWorking, Color: ColorTool},
	'⚡':  {Symbol: '⚡', Category: CategoryWorking, Color: ColorTool},
	'📦': {Symbol: '📦', Category: CategoryWorking, Color: ColorTool},
	'📥': {Symbol: '📥', Category: CategoryWorking, Color: ColorTool},
	'👁':  {Symbol: '👁', Category: CategoryWorking, Color: ColorTool},
	'🔄': {Symbol: '🔄', Category: CategoryWorking, Color: ColorTool},

	// Cognition / memory activity
	'🧠': {Symbol: '🧠', Category: CategoryWorking, Color: ColorMemory},
	'💭': {Symbol: '💭', Category: CategoryWorking, Color: ColorMemory},
	'🎓': {Symbol: '🎓', Category: CategoryWorking, Color: ColorMemory},
	'💡': {Symbol: '💡', Category: CategoryWorking, Color: ColorMemory},
	'🗜': {Symbol: '🗜', Category: CategoryWorking, Color: ColorMemory},

	// Terminal / idle
	'✅': {Symbol: '✅', Category: CategoryIdle, Color: ColorTerminal},
	'✨': {Symbol: '✨', Category: CategoryIdle, Color: ColorTerminal},
	'💤': {Symbol: '💤', Category: CategoryIdle, Color: ColorTerminal},
	'☀':  {Symbol: '☀', Category: CategoryIdle, Color: ColorTerminal},

	// Failures still terminate activity; color comes from the error group
	'❌': {Symbol: '❌', Category: CategoryIdle, Color: ColorError},
	'🛑': {Symbol: '🛑', Category: CategoryIdle, Color: ColorError},
	'⚠':  {Symbol: '⚠', Category: CategoryIdle, Color: ColorError},
	'🐞': {Symbol: '🐞', Category: CategoryIdle, Color: ColorError},
}

// Classify returns the signal for the first recognized icon in line.
// Lines without a recognized icon yield CategoryNone and the accent color;
// classification never fails.
func Classify(line string) Signal {
	for _, r := range line {
		if sig, ok := signalTable[r]; ok {
			return sig
		}
	}
	return Signal{Category: CategoryNone, Color: ColorAccent}
}

const monologueMarker = "PLANNER MONOLOGUE:"

// ExtractMonologue returns the caption text of a planner monologue line,
// if the line carries the marker.
func ExtractMonologue(line string) (string, bool) {
	idx := strings.Index(line, monologueMarker)
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(line[idx+len(monologueMarker):]), true
}
