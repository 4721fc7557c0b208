package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"taste-persona/internal/domain"
	"taste-persona/internal/qloo"
)

// TasteService resuelve las tres preferencias y trae sus tendencias.
type TasteService struct {
	graph  qloo.TasteGraph
	logger *zap.Logger
}

func NewTasteService(graph qloo.TasteGraph, logger *zap.Logger) *TasteService {
	return &TasteService{
		graph:  graph,
		logger: logger,
	}
}

// CollectSignals corre musica, peliculas y marcas en paralelo. Cada categoria
// escribe en su propio slot, asi el orden de Combined no depende de la carrera.
func (s *TasteService) CollectSignals(ctx context.Context, in domain.PreferenceInput) domain.TasteSignals {
	var signals domain.TasteSignals

	// Las funciones nunca devuelven error: cada categoria degrada a lista vacia.
	var g errgroup.Group
	g.Go(func() error {
		signals.MusicTrends = s.trendsFor(ctx, in.Music, domain.CategoryArtist)
		return nil
	})
	g.Go(func() error {
		signals.MovieTrends = s.trendsFor(ctx, in.Movies, domain.CategoryMovie)
		return nil
	})
	g.Go(func() error {
		signals.BrandTrends = s.trendsFor(ctx, in.Brands, domain.CategoryBrand)
		return nil
	})
	_ = g.Wait()

	s.logger.Info("taste signals collected",
		zap.Int("music", len(signals.MusicTrends)),
		zap.Int("movies", len(signals.MovieTrends)),
		zap.Int("brands", len(signals.BrandTrends)),
	)
	return signals
}

func (s *TasteService) trendsFor(ctx context.Context, query string, category domain.Category) []string {
	id, ok := s.graph.Resolve(ctx, query, category)
	if !ok {
		return []string{}
	}
	return s.graph.Trending(ctx, id, category)
}
