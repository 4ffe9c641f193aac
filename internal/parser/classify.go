package parser

import (
	"regexp"
	"strings"
)

// Section is the accumulation target for content lines of a recipe.
type Section int

const (
	SectionNone Section = iota
	SectionIngredients
	SectionMethod
	SectionExtras
)

func (s Section) String() string {
	switch s {
	case SectionIngredients:
		return "ingredients"
	case SectionMethod:
		return "method"
	case SectionExtras:
		return "extras"
	default:
		return "none"
	}
}

// Kind is the classification of a single reply line.
type Kind int

const (
	KindBlank Kind = iota
	KindTitle
	KindHeader
	KindContent
)

// Line is the result of classifying one line of the reply.
type Line struct {
	Kind Kind
	// Section is set for KindHeader lines.
	Section Section
	// Text is the recipe title for KindTitle lines and the cleaned line for
	// KindContent lines.
	Text string
}

var (
	titlePattern  = regexp.MustCompile(`^\d+\.\s+[A-Z]`)
	enumPrefix    = regexp.MustCompile(`^\d+\.\s+`)
	bulletMarkers = []string{"-", "•"}
)

// headerRules are tested in order; the first match wins.
var headerRules = []struct {
	section  Section
	keywords []string
}{
	{SectionIngredients, []string{"ingredients:"}},
	{SectionMethod, []string{"method:", "instructions:"}},
	{SectionExtras, []string{"optional", "garnish", "alternative"}},
}

// Classify classifies a line using the numeric title rule only.
// Precedence is title, then section header, then content; a line that is
// empty after trimming is blank.
func Classify(raw string) Line {
	return classify(raw, false)
}

// classify implements Classify. When loose is set, a line mentioning
// "recipe" is also a title unless it is already a section header.
func classify(raw string, loose bool) Line {
	line := strings.TrimSpace(raw)
	if line == "" {
		return Line{Kind: KindBlank}
	}

	if titlePattern.MatchString(line) {
		return Line{Kind: KindTitle, Text: stripEnumeration(line)}
	}

	if section := headerSection(line); section != SectionNone {
		return Line{Kind: KindHeader, Section: section}
	}

	if loose && strings.Contains(strings.ToLower(line), "recipe") {
		if title := stripEnumeration(line); title != "" {
			return Line{Kind: KindTitle, Text: title}
		}
	}

	return Line{Kind: KindContent, Text: CleanLine(line)}
}

func headerSection(line string) Section {
	lower := strings.ToLower(line)
	for _, rule := range headerRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.section
			}
		}
	}
	return SectionNone
}

// CleanLine strips one leading bullet marker and one leading "<digits>. "
// enumeration from a content line.
func CleanLine(line string) string {
	line = strings.TrimSpace(line)
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(line, marker) {
			line = strings.TrimSpace(strings.TrimPrefix(line, marker))
			break
		}
	}
	return stripEnumeration(line)
}

func stripEnumeration(line string) string {
	return strings.TrimSpace(enumPrefix.ReplaceAllString(line, ""))
}
