package service

import (
	"fmt"
	"strings"
)

const systemPrompt = `Jesteś asystentem kulinarnym, który pomaga użytkownikom znaleźć odpowiednie przepisy.
Odpowiadaj po polsku. Zaproponuj do trzech przepisów dopasowanych do pytania użytkownika.

Zwróć wyłącznie obiekt JSON w formacie:
{"recipes": [{"title": "tytuł przepisu", "ingredients": ["składnik z ilością", "..."], "steps": ["krok przygotowania", "..."]}]}

Każdy składnik i każdy krok podaj jako osobny string.
WAŻNE: Nie dodawaj przypraw ani mieszanek przyprawowych do składników - zostaną one dodane automatycznie.`

const visionPrompt = `Jesteś asystentem kulinarnym. Przeanalizuj zdjęcie i wypisz widoczne składniki oraz potrawę, którą można z nich przygotować.
Odpowiedz krótko, w języku polskim.`

// userPrompt appends calorie and dietary constraints to the query as plain
// language qualifiers.
func userPrompt(query string, calories int, dietary []string) string {
	var b strings.Builder
	b.WriteString(query)
	if calories > 0 {
		fmt.Fprintf(&b, "\nMaksymalna liczba kalorii: %d", calories)
	}
	if len(dietary) > 0 {
		b.WriteString("\nOgraniczenia dietetyczne: ")
		b.WriteString(strings.Join(dietary, ", "))
	}
	return b.String()
}
