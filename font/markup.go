package font

import (
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Named markup colours
var colours = map[string]colorful.Color{
	"red":    {R: 1},
	"green":  {G: 1},
	"yellow": {R: 1, G: 1},
	"blue":   {B: 1},
	"white":  {R: 1, G: 1, B: 1},
	"orange": {R: 1, G: 0.5},
}

// span is a run of text drawn in one colour
type span struct {
	text   string
	colour colorful.Color
}

// parse splits a line on colour markup such as {red} or {#ff8800}
// Unknown or unterminated braces are kept as literal text
func parse(line string, colour colorful.Color) []span {
	var spans []span
	var sb strings.Builder
	flush := func() {
		if sb.Len() > 0 {
			spans = append(spans, span{text: sb.String(), colour: colour})
			sb.Reset()
		}
	}

	for i := 0; i < len(line); {
		if line[i] == '{' {
			if end := strings.IndexByte(line[i:], '}'); end > 0 {
				if c, ok := lookup(line[i+1 : i+end]); ok {
					flush()
					colour = c
					i += end + 1
					continue
				}
			}
		}
		sb.WriteByte(line[i])
		i++
	}
	flush()

	// Colour carries over to the next line even when this one ends in markup
	if len(spans) == 0 || spans[len(spans)-1].colour != colour {
		spans = append(spans, span{colour: colour})
	}
	return spans
}

// ParseColour resolves a markup colour name or #rrggbb value
func ParseColour(name string) (colorful.Color, bool) {
	return lookup(strings.TrimSpace(name))
}

func lookup(name string) (colorful.Color, bool) {
	if strings.HasPrefix(name, "#") {
		c, err := colorful.Hex(name)
		return c, err == nil
	}
	c, ok := colours[strings.ToLower(name)]
	return c, ok
}

var folding = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold strips accents so text stays within the bitmap face's ASCII range
func Fold(text string) string {
	result, _, err := transform.String(folding, text)
	if err != nil {
		return text
	}
	return result
}

// Strip removes colour markup, leaving the displayed text
func Strip(text string) string {
	var sb strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		for _, s := range parse(line, colorful.Color{}) {
			sb.WriteString(s.text)
		}
	}
	return sb.String()
}
