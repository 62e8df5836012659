package extract

import (
	"regexp"
	"strings"

	"github.com/flavorinthejar/smakosz/backend/internal/model"
)

// The prose grammar. Rules are tried in this order and the order matters:
// a recipe boundary wins over a heading, a field label over a list item.
var (
	// boundary starts a new recipe: "Przepis 1:", "## Recipe 2.", "**Propozycja 3:**".
	boundary = regexp.MustCompile(`(?mi)^[ \t]*(?:#+[ \t]*)?(?:\*\*)?(?:przepis|recipe|propozycja)[ \t]+(?:nr[ \t.]*)?\d+[ \t]*[:.)]`)

	titleLabel       = regexp.MustCompile(`(?i)^(?:tytuł|title|nazwa|name)\s*:\s*(.+)$`)
	ingredientsLabel = regexp.MustCompile(`(?i)^(?:składniki|ingredients)\s*:?$`)
	stepsLabel       = regexp.MustCompile(`(?i)^(?:przygotowanie|sposób przygotowania|preparation|steps|kroki|instrukcje|instructions)\s*:?$`)
	// anyLabel is a line holding only a section name, e.g. "Czas przygotowania:".
	anyLabel = regexp.MustCompile(`^\p{L}[\p{L} ]{1,40}:$`)

	heading    = regexp.MustCompile(`^#+\s*(.+)$`)
	bulletItem = regexp.MustCompile(`^\s*[-•*]\s+(.+)$`)
	numberItem = regexp.MustCompile(`^\s*\d+\s*[.)]\s*(.+)$`)
)

type section int

const (
	sectionNone section = iota
	sectionIngredients
	sectionSteps
)

// parseProse splits the text on recipe boundaries and parses each segment.
// Text before the first boundary is an introduction and is dropped.
func parseProse(text string) []model.ParsedRecipeDraft {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var segments []string
	if locs := boundary.FindAllStringIndex(text, -1); len(locs) > 0 {
		for i, loc := range locs {
			end := len(text)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			segments = append(segments, text[loc[0]:end])
		}
	} else {
		segments = []string{text}
	}

	var drafts []model.ParsedRecipeDraft
	for _, seg := range segments {
		if d, ok := parseSegment(seg); ok {
			drafts = append(drafts, d)
		}
	}
	return drafts
}

// parseSegment extracts one recipe. A segment without ingredients and
// steps is not a recipe.
func parseSegment(seg string) (model.ParsedRecipeDraft, bool) {
	d := model.ParsedRecipeDraft{Ingredients: []string{}, Steps: []string{}}
	var headingTitle, boundaryTitle string

	lines := strings.Split(seg, "\n")
	if loc := boundary.FindStringIndex(lines[0]); loc != nil {
		boundaryTitle = cleanLine(lines[0][loc[1]:])
	}

	current := sectionNone
	collected := 0
	for i, raw := range lines {
		line := cleanLine(raw)

		if line == "" {
			if current != sectionNone && collected > 0 {
				current = sectionNone
			}
			continue
		}

		switch {
		case ingredientsLabel.MatchString(line):
			current, collected = sectionIngredients, 0
			continue
		case stepsLabel.MatchString(line):
			current, collected = sectionSteps, 0
			continue
		}

		if m := titleLabel.FindStringSubmatch(line); m != nil {
			if d.Title == "" {
				d.Title = strings.TrimSpace(m[1])
			}
			current = sectionNone
			continue
		}
		if i > 0 || boundaryTitle == "" {
			if m := heading.FindStringSubmatch(strings.TrimSpace(raw)); m != nil && !boundary.MatchString(raw) {
				if headingTitle == "" {
					headingTitle = cleanLine(m[1])
				}
				current = sectionNone
				continue
			}
		}
		if anyLabel.MatchString(line) {
			current = sectionNone
			continue
		}

		switch current {
		case sectionIngredients:
			if m := bulletItem.FindStringSubmatch(raw); m != nil {
				d.Ingredients = append(d.Ingredients, cleanLine(m[1]))
				collected++
			}
		case sectionSteps:
			if m := bulletItem.FindStringSubmatch(raw); m != nil {
				d.Steps = append(d.Steps, cleanLine(m[1]))
				collected++
			} else if m := numberItem.FindStringSubmatch(raw); m != nil {
				d.Steps = append(d.Steps, cleanLine(m[1]))
				collected++
			}
		}
	}

	if len(d.Ingredients) == 0 && len(d.Steps) == 0 {
		return d, false
	}
	d.Title = firstNonEmpty(d.Title, boundaryTitle, headingTitle, DefaultTitle)
	return d, true
}

// cleanLine trims whitespace and markdown emphasis.
func cleanLine(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.TrimLeft(s, "#")
	return strings.TrimSpace(s)
}
