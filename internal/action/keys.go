package action

import "strings"

// specialKeys maps the <key> markup accepted inside type-action text to the
// key names the simulator understands.
var specialKeys = map[string]string{
	"<enter>":     "enter",
	"<tab>":       "tab",
	"<space>":     "space",
	"<backspace>": "backspace",
	"<delete>":    "delete",
	"<escape>":    "escape",
	"<shift>":     "shift",
	"<ctrl>":      "control",
	"<alt>":       "alt",
	"<caps_lock>": "capslock",
	"<page_up>":   "pageup",
	"<page_down>": "pagedown",
	"<home>":      "home",
	"<end>":       "end",
	"<insert>":    "insert",
	"<up>":        "up",
	"<down>":      "down",
	"<left>":      "left",
	"<right>":     "right",
	"<f1>":        "f1",
	"<f2>":        "f2",
	"<f3>":        "f3",
	"<f4>":        "f4",
	"<f5>":        "f5",
	"<f6>":        "f6",
	"<f7>":        "f7",
	"<f8>":        "f8",
	"<f9>":        "f9",
	"<f10>":       "f10",
	"<f11>":       "f11",
	"<f12>":       "f12",
}

// segmentKind tells typeSegments apart.
type segmentKind int

const (
	segmentText segmentKind = iota
	segmentKey
)

// segment is one run of literal text or one special key extracted from
// type-action text.
type segment struct {
	kind  segmentKind
	value string
}

// splitTypeText splits type-action text into literal runs and special keys.
// Markup lookup is case-insensitive; anything that is not a recognized
// <key> token stays literal text, including stray angle brackets.
func splitTypeText(text string) []segment {
	var segments []segment
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			segments = append(segments, segment{segmentText, current.String()})
			current.Reset()
		}
	}

	for i := 0; i < len(text); {
		if text[i] == '<' {
			if end := strings.IndexByte(text[i:], '>'); end != -1 {
				token := strings.ToLower(text[i : i+end+1])
				if key, ok := specialKeys[token]; ok {
					flush()
					segments = append(segments, segment{segmentKey, key})
					i += end + 1
					continue
				}
			}
		}
		current.WriteByte(text[i])
		i++
	}
	flush()
	return segments
}
