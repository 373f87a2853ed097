package comments

import (
	"strings"
	"unicode"

	"github.com/duckdoc/go-duckdoc/core"
)

// Cursor walks the text of one doc comment, exposing annotation boundaries
// and literal text. Tag parse routines consume as much of the remaining text
// as they need through the token-taking methods; free text between
// annotations is collected with CaptureUntilMarker.
//
// Annotation markers are recognized at the start of a line (after comment
// decoration is stripped): an '@' lead character followed by the tag's
// pattern token.
type Cursor struct {
	lines []string
	idx   int // current line
	col   int // byte offset within the current line
	start core.Position
}

// NewCursor creates a cursor over one doc comment's text. The start position
// is the position of the comment's first line; line numbers of everything the
// cursor yields are derived from it.
func NewCursor(text string, start core.Position) *Cursor {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = cleanLine(line)
	}
	return &Cursor{lines: lines, start: start}
}

// cleanLine strips comment decoration: leading whitespace, the "/**" opener,
// a leading "*" continuation, and the "*/" closer.
func cleanLine(line string) string {
	s := strings.TrimLeft(line, " \t")
	s = strings.TrimPrefix(s, "/**")
	s = strings.TrimSuffix(s, "*/")
	s = strings.TrimLeft(s, " \t")
	if strings.HasPrefix(s, "*") {
		s = s[1:]
		s = strings.TrimPrefix(s, " ")
	}
	return strings.TrimRight(s, " \t")
}

// Pos returns the position of the current line.
func (c *Cursor) Pos() core.Position {
	return c.start.Shift(c.idx)
}

// EOF reports whether the cursor has consumed the whole comment.
func (c *Cursor) EOF() bool {
	return c.idx >= len(c.lines)
}

// markerName returns the annotation pattern when line begins with a marker.
func markerName(line string) (string, bool) {
	if len(line) < 2 || line[0] != '@' {
		return "", false
	}
	if !unicode.IsLetter(rune(line[1])) {
		return "", false
	}
	end := 1
	for end < len(line) {
		r := rune(line[end])
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			end++
			continue
		}
		break
	}
	return line[1:end], true
}

// atMarker reports whether the cursor currently sits at the start of a
// marker line.
func (c *Cursor) atMarker() bool {
	if c.EOF() || c.col != 0 {
		return false
	}
	_, ok := markerName(c.lines[c.idx])
	return ok
}

// NextMarker advances to the next annotation marker and consumes its lead
// character and pattern token. Returns the pattern, the marker's position and
// false when no further marker exists.
func (c *Cursor) NextMarker() (string, core.Position, bool) {
	// Finish the current line first: markers are only recognized at the
	// start of a line.
	if !c.EOF() && c.col > 0 {
		c.idx++
		c.col = 0
	}
	for !c.EOF() {
		name, ok := markerName(c.lines[c.idx])
		if ok {
			pos := c.Pos()
			c.col = 1 + len(name)
			c.skipSpaces()
			return name, pos, true
		}
		c.idx++
	}
	return "", core.Position{}, false
}

// CaptureUntilMarker collects all literal text from the current point up to
// (but excluding) the next annotation marker or the end of the comment, even
// across multiple lines. Surrounding blank lines are trimmed; interior line
// breaks are preserved.
func (c *Cursor) CaptureUntilMarker() string {
	var parts []string
	if !c.EOF() && c.col > 0 {
		parts = append(parts, c.lines[c.idx][c.col:])
		c.idx++
		c.col = 0
	}
	for !c.EOF() && !c.atMarker() {
		parts = append(parts, c.lines[c.idx])
		c.idx++
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// SkipAnnotation discards the remainder of the current annotation: the rest
// of its line and any free text up to the next marker. Used when the marker
// matched no registered tag.
func (c *Cursor) SkipAnnotation() {
	c.CaptureUntilMarker()
}

func (c *Cursor) skipSpaces() {
	if c.EOF() {
		return
	}
	line := c.lines[c.idx]
	for c.col < len(line) && (line[c.col] == ' ' || line[c.col] == '\t') {
		c.col++
	}
}

// rest returns the unread remainder of the current line without consuming it.
func (c *Cursor) rest() string {
	if c.EOF() {
		return ""
	}
	return c.lines[c.idx][c.col:]
}

// TakeType consumes a curly-braced type token on the current line, e.g.
// "{Number}" yields "Number". Returns false and consumes nothing when the
// next token is not a type.
func (c *Cursor) TakeType() (string, bool) {
	c.skipSpaces()
	line := c.rest()
	if !strings.HasPrefix(line, "{") {
		return "", false
	}
	end := strings.IndexByte(line, '}')
	if end < 0 {
		return "", false
	}
	typ := strings.TrimSpace(line[1:end])
	if typ == "" {
		return "", false
	}
	c.col += end + 1
	return typ, true
}

// TakeWord consumes the next whitespace-delimited token on the current line.
func (c *Cursor) TakeWord() (string, bool) {
	c.skipSpaces()
	line := c.rest()
	if line == "" {
		return "", false
	}
	end := strings.IndexAny(line, " \t")
	if end < 0 {
		end = len(line)
	}
	c.col += end
	return line[:end], true
}

// TakeName consumes a member name on the current line. Supports the optional
// form "[name=default]" in addition to a plain word. Returns the name, the
// declared default (empty when absent) and whether the member was marked
// optional.
func (c *Cursor) TakeName() (name string, dflt string, optional bool, ok bool) {
	c.skipSpaces()
	line := c.rest()
	if line == "" {
		return "", "", false, false
	}
	if line[0] == '[' {
		end := strings.IndexByte(line, ']')
		if end < 0 {
			return "", "", false, false
		}
		inner := line[1:end]
		c.col += end + 1
		if eq := strings.IndexByte(inner, '='); eq >= 0 {
			return strings.TrimSpace(inner[:eq]), strings.TrimSpace(inner[eq+1:]), true, true
		}
		return strings.TrimSpace(inner), "", true, true
	}
	word, wok := c.TakeWord()
	return word, "", false, wok
}

// RestOfLine consumes and returns the remainder of the current line, leaving
// the cursor at the start of the next one.
func (c *Cursor) RestOfLine() string {
	if c.EOF() {
		return ""
	}
	out := strings.TrimSpace(c.rest())
	c.idx++
	c.col = 0
	return out
}
