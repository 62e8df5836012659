package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/flavorinthejar/smakosz/backend/internal/model"
)

var (
	codeFence = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")

	salvageTitle       = regexp.MustCompile(`"(?:title|tytuł|name)"\s*:\s*"([^"]+)"`)
	salvageIngredients = regexp.MustCompile(`(?s)"(?:ingredients|składniki)"\s*:\s*\[(.*?)\]`)
	salvageSteps       = regexp.MustCompile(`(?s)"(?:steps|instructions|kroki)"\s*:\s*\[(.*?)\]`)
	quotedString       = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"(\s*:)?`)
	flatObject         = regexp.MustCompile(`\{[^{}]*\}`)
)

// Object fields holding an ingredient name, and step text, in lookup order.
var (
	nameKeys = []string{"name", "nazwa", "ingredient", "składnik"}
	textKeys = []string{"text", "instruction", "opis", "description", "step", "krok"}
)

// recipeList is the envelope of a multi-recipe response.
type recipeList struct {
	Recipes  []jsonRecipe `json:"recipes"`
	Przepisy []jsonRecipe `json:"przepisy"`
}

type jsonRecipe struct {
	Title        string     `json:"title"`
	Name         string     `json:"name"`
	Tytul        string     `json:"tytuł"`
	Ingredients  stringList `json:"ingredients"`
	Skladniki    stringList `json:"składniki"`
	Steps        stringList `json:"steps"`
	Instructions stringList `json:"instructions"`
	Kroki        stringList `json:"kroki"`
}

func (r *jsonRecipe) draft() (model.ParsedRecipeDraft, bool) {
	d := model.ParsedRecipeDraft{
		Title:       firstNonEmpty(r.Title, r.Name, r.Tytul),
		Ingredients: firstNonEmptyList(r.Ingredients, r.Skladniki),
		Steps:       firstNonEmptyList(r.Steps, r.Instructions, r.Kroki),
	}
	if d.Title == "" && len(d.Ingredients) == 0 && len(d.Steps) == 0 {
		return d, false
	}
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	return d, true
}

// stringList accepts an array whose items are strings, numbers or
// ingredient/step objects, or a single newline separated string.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		for _, line := range strings.Split(single, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				*l = append(*l, line)
			}
		}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("invalid list format")
	}
	for _, raw := range items {
		if item := listItem(raw); item != "" {
			*l = append(*l, item)
		}
	}
	return nil
}

// listItem renders one list entry. Entries of an unknown shape yield "".
func listItem(raw json.RawMessage) string {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return strings.TrimSpace(str)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		if name := objectText(obj, nameKeys); name != "" {
			ing := model.Ingredient{
				Name:   name,
				Amount: scalar(firstRaw(obj["amount"], obj["quantity"], obj["ilość"])),
				Unit:   scalar(firstRaw(obj["unit"], obj["jednostka"])),
			}
			return ing.String()
		}
		return objectText(obj, textKeys)
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return num.String()
	}
	return ""
}

// objectText returns the first string field of obj among keys. Numeric
// fields such as a step number are skipped.
func objectText(obj map[string]json.RawMessage, keys []string) string {
	for _, k := range keys {
		var v string
		if err := json.Unmarshal(obj[k], &v); err == nil {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// scalar renders a JSON string or number without quotes.
func scalar(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return strings.TrimSpace(str)
	}
	return strings.TrimSpace(string(raw))
}

func firstRaw(values ...json.RawMessage) json.RawMessage {
	for _, v := range values {
		if len(v) > 0 && string(v) != "null" {
			return v
		}
	}
	return nil
}

// parseStructured decodes a JSON payload holding one recipe or a list of recipes.
func parseStructured(text string) ([]model.ParsedRecipeDraft, bool) {
	payload := jsonSpan(text)
	if payload == "" {
		return nil, false
	}

	var recipes []jsonRecipe
	if strings.HasPrefix(payload, "[") {
		if err := json.Unmarshal([]byte(payload), &recipes); err != nil {
			return nil, false
		}
	} else {
		var list recipeList
		if err := json.Unmarshal([]byte(payload), &list); err != nil {
			return nil, false
		}
		switch {
		case len(list.Recipes) > 0:
			recipes = list.Recipes
		case len(list.Przepisy) > 0:
			recipes = list.Przepisy
		default:
			var single jsonRecipe
			if err := json.Unmarshal([]byte(payload), &single); err != nil {
				return nil, false
			}
			recipes = []jsonRecipe{single}
		}
	}

	drafts := make([]model.ParsedRecipeDraft, 0, len(recipes))
	for i := range recipes {
		if d, ok := recipes[i].draft(); ok {
			drafts = append(drafts, d)
		}
	}
	return drafts, len(drafts) > 0
}

// jsonSpan strips markdown code fences and returns the outermost JSON
// object or array of the text.
func jsonSpan(text string) string {
	if m := codeFence.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	text = strings.TrimSpace(text)

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return ""
	}
	closing := "}"
	if text[start] == '[' {
		closing = "]"
	}
	end := strings.LastIndex(text, closing)
	if end <= start {
		return ""
	}
	return text[start : end+1]
}

// salvage recovers one recipe from JSON-looking text that does not decode.
func salvage(text string) (model.ParsedRecipeDraft, bool) {
	var d model.ParsedRecipeDraft
	if m := salvageTitle.FindStringSubmatch(text); m != nil {
		d.Title = strings.TrimSpace(m[1])
	}
	if m := salvageIngredients.FindStringSubmatch(text); m != nil {
		d.Ingredients = salvageItems(m[1])
	}
	if m := salvageSteps.FindStringSubmatch(text); m != nil {
		d.Steps = salvageItems(m[1])
	}
	if d.Title == "" && len(d.Ingredients) == 0 {
		return d, false
	}
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	return d, true
}

// salvageItems splits the body of a JSON-looking array. Object entries are
// rendered like decoded ones; object keys never become items.
func salvageItems(body string) []string {
	var items []string
	if objects := flatObject.FindAllString(body, -1); len(objects) > 0 {
		for _, o := range objects {
			if item := listItem(json.RawMessage(o)); item != "" {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			return items
		}
	}
	if quoted := quotedString.FindAllStringSubmatch(body, -1); len(quoted) > 0 {
		for _, q := range quoted {
			if q[2] != "" {
				continue
			}
			if item := strings.TrimSpace(strings.ReplaceAll(q[1], `\"`, `"`)); item != "" {
				items = append(items, item)
			}
		}
		return items
	}
	for _, part := range strings.Split(body, ",") {
		if item := strings.Trim(strings.TrimSpace(part), `"'`); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmptyList(lists ...stringList) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return []string(l)
		}
	}
	return []string{}
}
