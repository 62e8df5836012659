// Package spice maps recipe ingredients onto spice products of the store catalog.
package spice

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is a coarse ingredient class used to pick a matching spice blend.
type Category string

const (
	Meat       Category = "meat"
	Fish       Category = "fish"
	Vegetables Category = "vegetables"
	Salads     Category = "salads"
	Soups      Category = "soups"
	Grains     Category = "grains"
	Pasta      Category = "pasta"
	Grilled    Category = "grilled"
)

type categoryKeywords struct {
	category Category
	keywords []string
}

// categoryOrder is the enumeration order used to break ties: the first
// category with a matching keyword wins, so "grillowany kurczak" is Meat.
var categoryOrder = []categoryKeywords{
	{Meat, []string{"mięso", "wołowina", "wieprzowina", "kurczak", "indyk", "kaczka", "jagnięcina",
		"meat", "beef", "pork", "chicken", "turkey", "duck", "lamb"}},
	{Fish, []string{"ryba", "łosoś", "dorsz", "tuńczyk", "makrela", "pstrąg",
		"fish", "salmon", "cod", "tuna", "mackerel", "trout"}},
	{Vegetables, []string{"warzywa", "marchew", "ziemniaki", "cebula", "czosnek", "pomidor",
		"vegetable", "carrot", "potato", "onion", "garlic", "tomato"}},
	{Salads, []string{"sałata", "rukola", "szpinak", "sałatka",
		"lettuce", "arugula", "spinach", "salad"}},
	{Soups, []string{"zupa", "bulion", "rosół", "krem",
		"soup", "broth", "stock"}},
	{Grains, []string{"ryż", "kasza", "quinoa", "rice", "groats"}},
	{Pasta, []string{"makaron", "spaghetti", "penne", "tagliatelle", "pasta"}},
	{Grilled, []string{"grill", "grillowany", "grillowana", "barbecue", "bbq"}},
}

// Categorize returns the first category whose keyword occurs in the
// lowercased ingredient. ok is false when nothing matches.
func Categorize(ingredient string) (Category, bool) {
	lower := lowerPL(ingredient)
	for _, ck := range categoryOrder {
		for _, kw := range ck.keywords {
			if strings.Contains(lower, kw) {
				return ck.category, true
			}
		}
	}
	return "", false
}

// lowerPL lowercases with Polish casing rules. cases.Caser is not safe for
// concurrent use, so a caser is built per call.
func lowerPL(s string) string {
	return cases.Lower(language.Polish).String(s)
}
