package output

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme lists the colors of one output style.
type Theme struct {
	// Priorities colors (A), (B) and (C); Priority colors the rest.
	Priorities [3]lipgloss.Color
	Priority   lipgloss.Color
	Context    lipgloss.Color
	Project    lipgloss.Color
	Date       lipgloss.Color
	Tag        lipgloss.Color
	URL        lipgloss.Color
	Reference  lipgloss.Color
	Label      lipgloss.Color
	Completed  lipgloss.Color
}

var themes = map[string]Theme{
	"dark": {
		Priorities: [3]lipgloss.Color{"196", "214", "226"},
		Priority:   "250",
		Context:    "81",
		Project:    "141",
		Date:       "114",
		Tag:        "180",
		URL:        "75",
		Reference:  "244",
		Label:      "244",
		Completed:  "240",
	},
	"light": {
		Priorities: [3]lipgloss.Color{"160", "166", "136"},
		Priority:   "238",
		Context:    "25",
		Project:    "91",
		Date:       "28",
		Tag:        "94",
		URL:        "26",
		Reference:  "245",
		Label:      "245",
		Completed:  "250",
	},
	"monokai": {
		Priorities: [3]lipgloss.Color{"#F92672", "#FD971F", "#E6DB74"},
		Priority:   "#F8F8F2",
		Context:    "#66D9EF",
		Project:    "#AE81FF",
		Date:       "#A6E22E",
		Tag:        "#E6DB74",
		URL:        "#66D9EF",
		Reference:  "#75715E",
		Label:      "#75715E",
		Completed:  "#75715E",
	},
	"solarized-dark": {
		Priorities: [3]lipgloss.Color{"#DC322F", "#CB4B16", "#B58900"},
		Priority:   "#93A1A1",
		Context:    "#2AA198",
		Project:    "#6C71C4",
		Date:       "#859900",
		Tag:        "#D33682",
		URL:        "#268BD2",
		Reference:  "#586E75",
		Label:      "#586E75",
		Completed:  "#586E75",
	},
	"solarized-light": {
		Priorities: [3]lipgloss.Color{"#DC322F", "#CB4B16", "#B58900"},
		Priority:   "#586E75",
		Context:    "#2AA198",
		Project:    "#6C71C4",
		Date:       "#859900",
		Tag:        "#D33682",
		URL:        "#268BD2",
		Reference:  "#93A1A1",
		Label:      "#93A1A1",
		Completed:  "#93A1A1",
	},
}

// Styles returns the available style names, sorted.
func Styles() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Colorizer applies a theme to task text.
type Colorizer struct {
	priorities [3]lipgloss.Style
	priority   lipgloss.Style
	context    lipgloss.Style
	project    lipgloss.Style
	date       lipgloss.Style
	tag        lipgloss.Style
	url        lipgloss.Style
	reference  lipgloss.Style
	label      lipgloss.Style
	completed  lipgloss.Style
}

// NewColorizer returns a colorizer for the named style rendering through r.
// An empty style returns a nil colorizer, which leaves text unchanged.
func NewColorizer(r *lipgloss.Renderer, style string) (*Colorizer, error) {
	if style == "" {
		return nil, nil
	}
	theme, ok := themes[style]
	if !ok {
		return nil, fmt.Errorf("unknown style %q (available: %s)", style, strings.Join(Styles(), ", "))
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return r.NewStyle().Foreground(c)
	}
	c := &Colorizer{
		priority:  fg(theme.Priority).Bold(true),
		context:   fg(theme.Context),
		project:   fg(theme.Project),
		date:      fg(theme.Date),
		tag:       fg(theme.Tag),
		url:       fg(theme.URL).Underline(true),
		reference: fg(theme.Reference),
		label:     fg(theme.Label).Italic(true),
		completed: fg(theme.Completed).Strikethrough(true),
	}
	for i, color := range theme.Priorities {
		c.priorities[i] = fg(color).Bold(true)
	}
	return c, nil
}

var (
	priorityWord = regexp.MustCompile(`^\(([A-Z])\)$`)
	dateWord     = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)
	tagWord      = regexp.MustCompile(`^[^\s:]+:[^\s:]+$`)
	urlWord      = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://\S+$`)
)

// Task colors the parts of one todo.txt line.
func (c *Colorizer) Task(text string) string {
	if c == nil {
		return text
	}
	if strings.HasPrefix(text, "x ") {
		return c.completed.Render(text)
	}
	words := strings.Split(text, " ")
	for i, word := range words {
		words[i] = c.word(i, word)
	}
	return strings.Join(words, " ")
}

func (c *Colorizer) word(i int, word string) string {
	switch {
	case word == "":
		return word
	case i == 0 && priorityWord.MatchString(word):
		letter := word[1]
		if letter <= 'C' {
			return c.priorities[letter-'A'].Render(word)
		}
		return c.priority.Render(word)
	case urlWord.MatchString(word):
		return c.url.Render(word)
	case len(word) > 1 && word[0] == '@':
		return c.context.Render(word)
	case len(word) > 1 && word[0] == '+':
		return c.project.Render(word)
	case dateWord.MatchString(word):
		return c.date.Render(word)
	case tagWord.MatchString(word):
		return c.tag.Render(word)
	}
	return word
}

// Reference colors a source reference such as "[todo.txt:3]".
func (c *Colorizer) Reference(text string) string {
	if c == nil {
		return text
	}
	return c.reference.Render(text)
}

// Label colors fixed words such as "blocks:".
func (c *Colorizer) Label(text string) string {
	if c == nil {
		return text
	}
	return c.label.Render(text)
}
