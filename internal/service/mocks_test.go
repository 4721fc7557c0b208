package service

import (
	"context"
	"sync"

	"taste-persona/internal/domain"
)

type fakeTasteGraph struct {
	mu            sync.Mutex
	ids           map[domain.Category]string
	trends        map[string][]string
	resolveCalls  []string
	trendingCalls []string
}

func (f *fakeTasteGraph) Resolve(_ context.Context, query string, category domain.Category) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolveCalls = append(f.resolveCalls, string(category)+":"+query)
	id, ok := f.ids[category]
	return id, ok
}

func (f *fakeTasteGraph) Trending(_ context.Context, entityID string, category domain.Category) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trendingCalls = append(f.trendingCalls, entityID)
	return f.trends[entityID]
}

const validPersonaJSON = `{
  "personaName": "Le Reveur Urbain",
  "description": "Un esprit curieux.",
  "traits": ["curieux", "creatif", "sportif"],
  "insights": {"likelyInterests": "musique electronique", "likelyBehaviors": "explore la ville"},
  "culturalTwin": "Thomas Bangalter",
  "therapySuggestion": {"summary": "s", "recommendation": "r", "resources": ["Headspace"], "dailyTip": "t"},
  "culturalDNAScore": {"Europe": 50, "Asie": "20%", "Amerique du Nord": 20, "Afrique": 10},
  "archetype": {"name": "L'Explorateur", "description": "d"}
}`
