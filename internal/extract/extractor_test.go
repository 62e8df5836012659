package extract

import (
	"fmt"
	"testing"

	"github.com/flavorinthejar/smakosz/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newExtractor() *Extractor {
	return New(zap.NewNop())
}

const threeRecipes = "Oto propozycje:\n```json\n" + `{
  "recipes": [
    {"title": "Zupa krem z dyni", "ingredients": ["1 kg dyni", "1 cebula"], "steps": ["Pokrój dynię", "Gotuj 20 minut"]},
    {"title": "Placki z dyni", "ingredients": ["300 g dyni", "2 jajka", "mąka"], "steps": ["Zetrzyj dynię", "Smaż"]},
    {"title": "Dynia pieczona", "ingredients": ["1 dynia hokkaido"], "steps": ["Piecz 40 minut w 200°C"]}
  ]
}` + "\n```\nSmacznego!"

func TestExtractStructuredThreeRecipes(t *testing.T) {
	drafts := newExtractor().Extract(threeRecipes)

	require.Len(t, drafts, 3)
	assert.Equal(t, model.ParsedRecipeDraft{
		Title:       "Zupa krem z dyni",
		Ingredients: []string{"1 kg dyni", "1 cebula"},
		Steps:       []string{"Pokrój dynię", "Gotuj 20 minut"},
	}, drafts[0])
	assert.Equal(t, "Placki z dyni", drafts[1].Title)
	assert.Equal(t, []string{"300 g dyni", "2 jajka", "mąka"}, drafts[1].Ingredients)
	assert.Equal(t, []string{"Piecz 40 minut w 200°C"}, drafts[2].Steps)
}

func TestExtractStructuredSingleObject(t *testing.T) {
	text := `{"name": "Hummus",
		"ingredients": [{"name": "ciecierzyca", "amount": 400, "unit": "g"}, "sól", {"nazwa": "tahini", "quantity": "2", "unit": "łyżki"}],
		"instructions": "Zmiksuj składniki\nPodawaj z pitą"}`

	drafts := newExtractor().Extract(text)

	require.Len(t, drafts, 1)
	assert.Equal(t, "Hummus", drafts[0].Title)
	assert.Equal(t, []string{"ciecierzyca (400 g)", "sól", "tahini (2 łyżki)"}, drafts[0].Ingredients)
	assert.Equal(t, []string{"Zmiksuj składniki", "Podawaj z pitą"}, drafts[0].Steps)
}

func TestExtractStructuredPolishKeys(t *testing.T) {
	text := `{"przepisy": [{"tytuł": "Kasza z warzywami", "składniki": ["kasza gryczana"], "kroki": ["Ugotuj kaszę"]}]}`

	drafts := newExtractor().Extract(text)

	require.Len(t, drafts, 1)
	assert.Equal(t, "Kasza z warzywami", drafts[0].Title)
	assert.Equal(t, []string{"kasza gryczana"}, drafts[0].Ingredients)
	assert.Equal(t, []string{"Ugotuj kaszę"}, drafts[0].Steps)
}

func TestExtractStructuredTopLevelArray(t *testing.T) {
	drafts := newExtractor().Extract(`[{"title": "Omlet", "steps": ["Roztrzep jajka"]}, {"foo": "bar"}]`)

	require.Len(t, drafts, 1)
	assert.Equal(t, "Omlet", drafts[0].Title)
	assert.Empty(t, drafts[0].Ingredients)
}

func TestExtractSalvagesMalformedJSON(t *testing.T) {
	text := `{"title": "Placki", "ingredients": ["mąka", "jajka, 2 szt"], "steps": ["Wymieszaj", "Smaż"],}`

	drafts := newExtractor().Extract(text)

	require.Len(t, drafts, 1)
	assert.Equal(t, "Placki", drafts[0].Title)
	assert.Equal(t, []string{"mąka", "jajka, 2 szt"}, drafts[0].Ingredients)
	assert.Equal(t, []string{"Wymieszaj", "Smaż"}, drafts[0].Steps)
}

func TestExtractStructuredObjectItemsWithNumericFields(t *testing.T) {
	text := `{"recipes": [
		{"title": "Zupa dyniowa",
		 "ingredients": [{"name": "dynia", "amount": 1, "unit": "kg"}, {"nazwa": "cebula", "ilość": "1"}],
		 "steps": [{"step": 1, "instruction": "Pokrój dynię"}, {"step": 2, "opis": "Gotuj"}, {"step": 3}]},
		{"title": "Placki z dyni", "ingredients": ["300 g dyni"], "steps": ["Smaż"]},
		{"title": "Dynia pieczona", "ingredients": [true, "1 dynia"], "steps": [["Piecz"], "Podawaj"]}
	]}`

	drafts := newExtractor().Extract(text)

	require.Len(t, drafts, 3)
	assert.Equal(t, "Zupa dyniowa", drafts[0].Title)
	assert.Equal(t, []string{"dynia (1 kg)", "cebula (1)"}, drafts[0].Ingredients)
	assert.Equal(t, []string{"Pokrój dynię", "Gotuj"}, drafts[0].Steps)
	assert.Equal(t, []string{"1 dynia"}, drafts[2].Ingredients)
	assert.Equal(t, []string{"Podawaj"}, drafts[2].Steps)
}

func TestExtractSalvageIgnoresObjectKeys(t *testing.T) {
	text := `{"title": "Zupa dyniowa", "ingredients": [{"name": "dynia", "amount": "1", "unit": "kg"}], ` +
		`"steps": [{"step": 1, "instruction": "Pokrój dynię"}, {"step": 2, "instruction": "Gotuj"}],}`

	drafts := newExtractor().Extract(text)

	require.Len(t, drafts, 1)
	assert.Equal(t, []string{"dynia (1 kg)"}, drafts[0].Ingredients)
	assert.Equal(t, []string{"Pokrój dynię", "Gotuj"}, drafts[0].Steps)
}

func TestSalvageItemsSkipsKeys(t *testing.T) {
	assert.Equal(t, []string{"dynia", "kg"}, salvageItems(`"name": "dynia", "unit": "kg"`))
	assert.Equal(t, []string{"mąka", "jajka"}, salvageItems(`"mąka", "jajka"`))
}

const twoProseRecipes = `Oto moje propozycje:

Przepis 1: Zupa krem z dyni
Składniki:
- 1 kg dyni
- 2 marchewki

Przygotowanie:
1. Pokrój warzywa.
2. Gotuj do miękkości.

## Przepis 2:
Tytuł: Placki ziemniaczane
**Składniki:**
* 1 kg ziemniaków
* 1 jajko
Przygotowanie:
- Zetrzyj ziemniaki.
- Smaż na oleju.
`

func TestExtractProseMultipleRecipes(t *testing.T) {
	drafts := newExtractor().Extract(twoProseRecipes)

	require.Len(t, drafts, 2)
	assert.Equal(t, model.ParsedRecipeDraft{
		Title:       "Zupa krem z dyni",
		Ingredients: []string{"1 kg dyni", "2 marchewki"},
		Steps:       []string{"Pokrój warzywa.", "Gotuj do miękkości."},
	}, drafts[0])
	assert.Equal(t, model.ParsedRecipeDraft{
		Title:       "Placki ziemniaczane",
		Ingredients: []string{"1 kg ziemniaków", "1 jajko"},
		Steps:       []string{"Zetrzyj ziemniaki.", "Smaż na oleju."},
	}, drafts[1])
}

func TestExtractProseWithoutBoundary(t *testing.T) {
	text := "# Hummus\n\nIngredients:\n• ciecierzyca\n• tahini\n\nKroki:\n1) Zmiksuj\n2) Dopraw\n"

	drafts := newExtractor().Extract(text)

	require.Len(t, drafts, 1)
	assert.Equal(t, "Hummus", drafts[0].Title)
	assert.Equal(t, []string{"ciecierzyca", "tahini"}, drafts[0].Ingredients)
	assert.Equal(t, []string{"Zmiksuj", "Dopraw"}, drafts[0].Steps)
}

func TestExtractProseIngredientsStopAtLabel(t *testing.T) {
	text := "Składniki:\n- ryż\n- curry\nCzas przygotowania:\n- 30 minut\nPrzygotowanie:\n- Ugotuj ryż\n"

	drafts := newExtractor().Extract(text)

	require.Len(t, drafts, 1)
	assert.Equal(t, []string{"ryż", "curry"}, drafts[0].Ingredients)
	assert.Equal(t, []string{"Ugotuj ryż"}, drafts[0].Steps)
	assert.Equal(t, DefaultTitle, drafts[0].Title)
}

func TestExtractProseWithoutHeadersYieldsPlaceholder(t *testing.T) {
	drafts := newExtractor().Extract("Dynia jest pyszna. Ugotuj ją z cebulą i podawaj z grzankami.")

	require.Len(t, drafts, 1)
	assert.Equal(t, DefaultTitle, drafts[0].Title)
	assert.NotEmpty(t, drafts[0].Steps)
	assert.True(t, drafts[0].Placeholder)
}

func TestExtractEmptyText(t *testing.T) {
	drafts := newExtractor().Extract("")

	require.Len(t, drafts, 1)
	assert.True(t, drafts[0].Placeholder)
}

func TestExtractNPadsWithAlternatives(t *testing.T) {
	drafts := newExtractor().ExtractN("Składniki:\n- dynia\n", 3)

	require.Len(t, drafts, 3)
	assert.False(t, drafts[0].Placeholder)
	assert.Equal(t, []string{"dynia"}, drafts[0].Ingredients)
	for i, d := range drafts[1:] {
		assert.True(t, d.Placeholder)
		assert.Equal(t, []string{alternativeIngredient}, d.Ingredients)
		assert.NotEmpty(t, d.Steps)
		assert.Equal(t, fmt.Sprintf("Alternatywna propozycja %d", i+2), d.Title)
	}
}

func TestExtractNTruncates(t *testing.T) {
	drafts := newExtractor().ExtractN(threeRecipes, 2)

	require.Len(t, drafts, 2)
	assert.Equal(t, "Placki z dyni", drafts[1].Title)
}
