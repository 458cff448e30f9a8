// Package html converts HTML markup to clean narrative text.
package html

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/bricsin4u/AIO-research/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.NarrativeConverter = (*Converter)(nil)

// Converter is a regex-based HTML-to-text converter. Headings and list
// items keep a markdown flavour so the narrative stays skimmable.
type Converter struct{}

// New creates a new converter.
func New() *Converter {
	return &Converter{}
}

// Pre-compiled regular expressions for HTML conversion performance.
var (
	scriptTag         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag       = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag           = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag            = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	headingTag        = regexp.MustCompile(`(?is)<h([1-6])[^>]*>(.*?)</h[1-6]>`)
	listItemTag       = regexp.MustCompile(`(?is)<li[^>]*>(.*?)</li>`)
	blockElements     = regexp.MustCompile(`(?i)</(p|div|hr|tr|blockquote|pre|table|section|article|ul|ol)>`)
	openBlockElements = regexp.MustCompile(`(?i)<(p|div|blockquote|pre|table|tr|section|article)[^>]*>`)
	brTags            = regexp.MustCompile(`(?i)<br\s*/?>`)
	hrTags            = regexp.MustCompile(`(?i)<hr\s*/?>`)
	allTags           = regexp.MustCompile(`<[^>]+>`)
	multiSpaces       = regexp.MustCompile(`[ \t]+`)
	multiNewlines     = regexp.MustCompile(`\n{3,}`)
)

// ToNarrative converts HTML markup to plain narrative text. Conversion
// is best effort and never fails; empty input yields an empty string.
func (c *Converter) ToNarrative(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	// Remove script, style, noscript, head, and svg sections entirely.
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = noscriptTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = svgTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	// Headings become markdown-style lines.
	content = headingTag.ReplaceAllStringFunc(content, func(match string) string {
		m := headingTag.FindStringSubmatch(match)
		level, _ := strconv.Atoi(m[1])
		text := strings.TrimSpace(allTags.ReplaceAllString(m[2], ""))
		if text == "" {
			return "\n"
		}
		return "\n" + strings.Repeat("#", level) + " " + text + "\n"
	})

	// List items become dashed lines.
	content = listItemTag.ReplaceAllString(content, "\n- $1")

	// Block boundaries and explicit breaks become newlines.
	content = openBlockElements.ReplaceAllString(content, "\n")
	content = blockElements.ReplaceAllString(content, "\n")
	content = brTags.ReplaceAllString(content, "\n")
	content = hrTags.ReplaceAllString(content, "\n")

	// Strip all remaining tags and decode entities.
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	// Collapse horizontal whitespace, then blank-line runs.
	content = multiSpaces.ReplaceAllString(content, " ")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	// Trim each line, dropping all-whitespace lines to blank.
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	content = strings.Join(lines, "\n")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
