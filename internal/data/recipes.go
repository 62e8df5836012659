// Package data holds the curated recipes the store is seeded with.
package data

import "github.com/flavorinthejar/smakosz/backend/internal/model"

// SampleRecipes returns a fresh copy of the curated catalog.
func SampleRecipes() []model.Recipe {
	return []model.Recipe{
		{
			ID:          "1",
			Title:       "Spaghetti Carbonara",
			Description: "Klasyczne włoskie danie z makaronu z sosem na bazie jajek, sera pecorino romano i guanciale",
			Ingredients: []model.Ingredient{
				{Name: "makaron spaghetti", Amount: "400", Unit: "g"},
				{Name: "guanciale lub boczek", Amount: "150", Unit: "g"},
				{Name: "jajka", Amount: "4", Unit: "szt"},
				{Name: "ser pecorino romano", Amount: "100", Unit: "g"},
				{Name: "czarny pieprz", Unit: "do smaku"},
				{Name: "sól", Unit: "do smaku"},
			},
			Instructions: []string{
				"Zagotuj osoloną wodę i ugotuj makaron al dente",
				"Pokrój guanciale w kostkę i podsmaż na patelni",
				"W misce wymieszaj jajka z startym serem i pieprzem",
				"Odcedź makaron, zachowując trochę wody z gotowania",
				"Połącz gorący makaron z jajkami i serem, mieszając energicznie",
				"Dodaj podsmażone guanciale i wymieszaj",
				"Podawaj natychmiast, posypane dodatkowym serem i pieprzem",
			},
			PrepTime:   "10 min",
			CookTime:   "20 min",
			Servings:   4,
			Difficulty: "średni",
			Tags:       []string{"włoskie", "makaron", "obiad"},
		},
		{
			ID:          "2",
			Title:       "Hummus",
			Description: "Kremowa pasta z ciecierzycy z tahini, idealna jako dip lub dodatek do dań",
			Ingredients: []model.Ingredient{
				{Name: "ciecierzyca z puszki", Amount: "400", Unit: "g"},
				{Name: "tahini", Amount: "60", Unit: "ml"},
				{Name: "sok z cytryny", Amount: "60", Unit: "ml"},
				{Name: "czosnek", Amount: "2", Unit: "ząbki"},
				{Name: "oliwa z oliwek", Amount: "60", Unit: "ml"},
				{Name: "kminek", Amount: "1", Unit: "łyżeczka"},
				{Name: "sól", Unit: "do smaku"},
			},
			Instructions: []string{
				"Odsącz i przepłucz ciecierzycę",
				"W blenderze zmiksuj ciecierzycę z tahini",
				"Dodaj sok z cytryny, czosnek i kminek",
				"Miksuj, dolewając powoli oliwę",
				"Dopraw solą do smaku",
				"Podawaj z dodatkową oliwą i papryką",
			},
			PrepTime:   "10 min",
			CookTime:   "5 min",
			Servings:   6,
			Difficulty: "łatwy",
			Tags:       []string{"wegetariańskie", "wegańskie", "przekąska", "bliskowschodnie"},
		},
		{
			ID:          "3",
			Title:       "Zupa krem z dyni",
			Description: "Kremowa, rozgrzewająca zupa z dyni z nutą imbiru",
			Ingredients: []model.Ingredient{
				{Name: "dynia", Amount: "1", Unit: "kg"},
				{Name: "cebula", Amount: "1", Unit: "szt"},
				{Name: "imbir", Amount: "3", Unit: "cm"},
				{Name: "czosnek", Amount: "2", Unit: "ząbki"},
				{Name: "bulion warzywny", Amount: "1", Unit: "l"},
				{Name: "śmietanka 30%", Amount: "200", Unit: "ml"},
				{Name: "oliwa", Amount: "2", Unit: "łyżki"},
				{Name: "sól i pieprz", Unit: "do smaku"},
			},
			Instructions: []string{
				"Dynię obierz i pokrój w kostkę",
				"Podsmaż na oliwie posiekaną cebulę i czosnek",
				"Dodaj startego imbira i dynię",
				"Zalej bulionem i gotuj do miękkości",
				"Zmiksuj na gładki krem",
				"Dodaj śmietankę i dopraw",
				"Podawaj z pestkami dyni",
			},
			PrepTime:   "15 min",
			CookTime:   "30 min",
			Servings:   6,
			Difficulty: "łatwy",
			Tags:       []string{"wegetariańskie", "zupa", "jesienne", "rozgrzewające"},
		},
	}
}
