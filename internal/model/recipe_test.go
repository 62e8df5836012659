package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRecipe() Recipe {
	return Recipe{
		ID:           "1",
		Title:        "Hummus",
		Ingredients:  []Ingredient{{Name: "ciecierzyca", Amount: "400", Unit: "g"}},
		Instructions: []string{"Zmiksuj"},
		Servings:     4,
	}
}

func TestRecipeValidate(t *testing.T) {
	r := validRecipe()
	assert.NoError(t, r.Validate())

	r = validRecipe()
	r.Title = "  "
	assert.EqualError(t, r.Validate(), "title is required")

	r = validRecipe()
	r.Ingredients = nil
	assert.Error(t, r.Validate())

	r = validRecipe()
	r.Ingredients = append(r.Ingredients, Ingredient{Amount: "1"})
	assert.EqualError(t, r.Validate(), "ingredient 2 has no name")

	r = validRecipe()
	r.Servings = 0
	assert.Error(t, r.Validate())
}

func TestIngredientString(t *testing.T) {
	assert.Equal(t, "dynia (1 kg)", Ingredient{Name: "dynia", Amount: "1", Unit: "kg"}.String())
	assert.Equal(t, "sól (do smaku)", Ingredient{Name: "sól", Unit: "do smaku"}.String())
	assert.Equal(t, "jajka", Ingredient{Name: "jajka"}.String())
}

func TestDraftFromRecipe(t *testing.T) {
	r := validRecipe()
	d := DraftFromRecipe(&r)
	assert.Equal(t, "Hummus", d.Title)
	assert.Equal(t, []string{"ciecierzyca (400 g)"}, d.Ingredients)
	assert.Equal(t, []string{"Zmiksuj"}, d.Steps)
	assert.False(t, d.Placeholder)
}
