package service

import (
	"fmt"
	"strings"
)

// personaPromptTemplate usa argumentos indexados; %[1]s es siempre el idioma destino.
const personaPromptTemplate = `
CRITICAL INSTRUCTION: You MUST respond ENTIRELY in %[1]s language.
EVERY SINGLE TEXT FIELD must be in %[1]s, including:
- personaName
- description
- traits (all 3 items)
- insights.likelyInterests
- insights.likelyBehaviors
- therapySuggestion.summary
- therapySuggestion.recommendation
- therapySuggestion.dailyTip
- archetype.name
- archetype.description
- culturalDNAScore (region names as keys - MUST be in %[1]s)

User preferences:
- Favorite Movies: %[2]s
- Favorite Music: %[3]s
- Favorite Brands: %[4]s
- Gender: %[5]s
- Qloo cultural suggestions: %[6]s
- Variation seed: %[7]d

Return a JSON object with:
- personaName (string) - MUST be in %[1]s
- description (1-2 sentence string) - MUST be in %[1]s
- traits (list of 3 strings) - MUST be in %[1]s
- insights (object with:
    likelyInterests (string) - MUST be in %[1]s,
    likelyBehaviors (string) - MUST be in %[1]s
  )
- culturalTwin (string) - ONLY the famous person's name, no description or parentheses, can be in original language
- therapySuggestion (object with:
    summary (string) - MUST be in %[1]s,
    recommendation (string) - MUST be in %[1]s,
    resources (list of 1-2 URLs or names),
    dailyTip (string) - MUST be in %[1]s
  )
- culturalDNAScore (object with region names as keys and percentage numbers as values, max 4 regions) - REGION NAMES MUST be in %[1]s
- archetype (object with name and 1-sentence description - BOTH MUST be in %[1]s)

FINAL REMINDER: EVERYTHING must be in %[1]s except for the culturalTwin which should be ONLY the person's name (no description, no parentheses) and can remain in its original language.
Be creative and vary the result slightly each time using the variation seed.
Only respond with valid JSON.
`

// countryInsightsPromptTemplate recibe idioma destino y lista de paises.
const countryInsightsPromptTemplate = `
CRITICAL INSTRUCTION: You MUST respond ENTIRELY in %[1]s language.
ALL cultural insights and recommendations must be in %[1]s.

For each of the following countries, return a JSON array of objects.
Each object should include:
- country (string) - country name can be in original language
- culturalInsight (1-2 sentences about the culture) - MUST be in %[1]s
- recommendation (a film, artist, or brand that represents it) - MUST be in %[1]s

Countries: %[2]s

FINAL REMINDER: All descriptions and recommendations must be in %[1]s.
Only respond with a valid JSON list.
`

func buildPersonaPrompt(movies, music, brands, gender string, suggestions []string, languageName string, seed int) string {
	return fmt.Sprintf(personaPromptTemplate,
		languageName,
		movies,
		music,
		brands,
		gender,
		formatSuggestions(suggestions),
		seed,
	)
}

func buildCountryInsightsPrompt(countries []string, languageName string) string {
	return fmt.Sprintf(countryInsightsPromptTemplate, languageName, strings.Join(countries, ", "))
}

func formatSuggestions(suggestions []string) string {
	if len(suggestions) == 0 {
		return "None available"
	}
	return strings.Join(suggestions, ", ")
}
