// Package dateparse turns user-supplied dates such as "2018-12-31",
// "tomorrow" or "next friday" into calendar dates.
package dateparse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/nibzard/next-action-go/internal/todotxt"
)

// ErrUnrecognized is returned for text that describes no date.
var ErrUnrecognized = errors.New("unrecognized date")

var isoPattern = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)

// Parser parses absolute and relative dates.
type Parser struct {
	natural *when.Parser
}

// New returns a parser for ISO dates and English expressions.
func New() *Parser {
	natural := when.New(nil)
	natural.Add(en.All...)
	natural.Add(common.All...)
	return &Parser{natural: natural}
}

// Parse returns the calendar date text refers to, relative to base.
func (p *Parser) Parse(text string, base time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, ErrUnrecognized
	}

	if match := isoPattern.FindStringSubmatch(text); match != nil {
		return parseISO(text, match)
	}

	result, err := p.natural.Parse(text, base)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", text, err)
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, text)
	}
	return todotxt.DateOf(result.Time), nil
}

var defaultParser = New()

// Parse uses a shared parser. See Parser.Parse.
func Parse(text string, base time.Time) (time.Time, error) {
	return defaultParser.Parse(text, base)
}

func parseISO(text string, match []string) (time.Time, error) {
	year, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	day, _ := strconv.Atoi(match[3])
	date := todotxt.Date(year, time.Month(month), day)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %q is not a calendar date", ErrUnrecognized, text)
	}
	return date, nil
}
