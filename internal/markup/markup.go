// Package markup turns the small markdown subset used in assistant replies
// into styled fragments: **bold**, *italic*, `code` and bare links.
package markup

import (
	"regexp"
	"sort"
	"strings"
)

// Style is the presentation of a fragment.
type Style int

const (
	StylePlain Style = iota
	StyleItalic
	StyleBold
	StyleLink
	StyleCode
)

var styleNames = map[Style]string{
	StylePlain:  "plain",
	StyleItalic: "italic",
	StyleBold:   "bold",
	StyleLink:   "link",
	StyleCode:   "code",
}

func (s Style) String() string {
	return styleNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// priority decides which of two overlapping spans survives.
func (s Style) priority() int {
	switch s {
	case StyleCode:
		return 4
	case StyleLink:
		return 3
	case StyleBold:
		return 2
	case StyleItalic:
		return 1
	default:
		return 0
	}
}

// Fragment is a run of text with one style. URL is set for links.
type Fragment struct {
	Style Style  `json:"style"`
	Text  string `json:"text"`
	URL   string `json:"url,omitempty"`
}

// Line is the fragments of one output line. Blank lines are empty.
type Line []Fragment

var (
	headingRe = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	listRe    = regexp.MustCompile(`(?m)^[-*]\s+`)
	quoteRe   = regexp.MustCompile(`(?m)^>\s+`)
	ruleRe    = regexp.MustCompile(`(?m)^[-*_]{3,}$`)

	linkRe   = regexp.MustCompile(`(https?://[^\s]+|www\.[^\s]+|[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}[^\s]*)`)
	boldRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	codeRe   = regexp.MustCompile("`(.*?)`")
	italicRe = regexp.MustCompile(`\*(.*?)\*`)
)

// Clean strips block-level markdown the renderer does not display:
// headings, list and quote markers, horizontal rules.
func Clean(text string) string {
	text = headingRe.ReplaceAllString(text, "")
	text = listRe.ReplaceAllString(text, "")
	text = quoteRe.ReplaceAllString(text, "")
	return ruleRe.ReplaceAllString(text, "")
}

// Render cleans text and splits it into styled lines.
func Render(text string) []Line {
	if text == "" {
		return nil
	}
	raw := strings.Split(Clean(text), "\n")
	lines := make([]Line, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, RenderLine(l))
	}
	return lines
}

type span struct {
	start, end int
	style      Style
	content    string
	url        string
}

// RenderLine styles a single line. Overlapping spans are resolved left to
// right: a span that overlaps the last kept one replaces it only when its
// style has strictly higher priority (code, link, bold, italic), otherwise
// it is dropped.
func RenderLine(line string) Line {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	spans := findSpans(line)
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var kept []span
	lastEnd := -1
	for _, sp := range spans {
		if sp.start >= lastEnd {
			kept = append(kept, sp)
			lastEnd = sp.end
			continue
		}
		if sp.style.priority() > kept[len(kept)-1].style.priority() {
			kept[len(kept)-1] = sp
			lastEnd = sp.end
		}
	}

	var out Line
	pos := 0
	for _, sp := range kept {
		if sp.start > pos {
			out = append(out, Fragment{Style: StylePlain, Text: line[pos:sp.start]})
		}
		out = append(out, Fragment{Style: sp.style, Text: sp.content, URL: sp.url})
		pos = sp.end
	}
	if pos < len(line) {
		out = append(out, Fragment{Style: StylePlain, Text: line[pos:]})
	}
	if len(out) == 0 {
		out = Line{{Style: StylePlain, Text: line}}
	}
	return out
}

func findSpans(line string) []span {
	var spans []span

	for _, m := range linkRe.FindAllStringIndex(line, -1) {
		text := line[m[0]:m[1]]
		spans = append(spans, span{start: m[0], end: m[1], style: StyleLink, content: text, url: linkURL(text)})
	}

	var bold []span
	for _, m := range boldRe.FindAllStringSubmatchIndex(line, -1) {
		bold = append(bold, span{start: m[0], end: m[1], style: StyleBold, content: line[m[2]:m[3]]})
	}
	spans = append(spans, bold...)

	for _, m := range codeRe.FindAllStringSubmatchIndex(line, -1) {
		spans = append(spans, span{start: m[0], end: m[1], style: StyleCode, content: line[m[2]:m[3]]})
	}

	for _, m := range italicRe.FindAllStringSubmatchIndex(line, -1) {
		if insideAny(m[0], bold) {
			continue
		}
		spans = append(spans, span{start: m[0], end: m[1], style: StyleItalic, content: line[m[2]:m[3]]})
	}
	return spans
}

func insideAny(pos int, spans []span) bool {
	for _, sp := range spans {
		if pos >= sp.start && pos < sp.end {
			return true
		}
	}
	return false
}

func linkURL(text string) string {
	if strings.HasPrefix(text, "http") {
		return text
	}
	return "https://" + text
}

// PlainText joins rendered lines back into unstyled text. Links keep their
// visible text.
func PlainText(lines []Line) string {
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, f := range l {
			sb.WriteString(f.Text)
		}
	}
	return sb.String()
}
