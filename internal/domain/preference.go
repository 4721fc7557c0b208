package domain

// Category es el tipo de entidad del taste-graph.
type Category string

const (
	CategoryArtist Category = "artist"
	CategoryMovie  Category = "movie"
	CategoryBrand  Category = "brand"
)

// URN devuelve el filtro de tipo que espera el endpoint de trending.
func (c Category) URN() string {
	return "urn:entity:" + string(c)
}

// PreferenceInput son los gustos declarados por el usuario.
type PreferenceInput struct {
	Movies    string
	Music     string
	Brands    string
	Gender    string
	Language  string
	Variation int
}

// TasteSignals agrupa las tendencias obtenidas por categoria.
type TasteSignals struct {
	MusicTrends []string
	MovieTrends []string
	BrandTrends []string
}

// Combined concatena las tendencias en orden fijo: musica, peliculas, marcas.
func (s TasteSignals) Combined() []string {
	out := make([]string, 0, len(s.MusicTrends)+len(s.MovieTrends)+len(s.BrandTrends))
	out = append(out, s.MusicTrends...)
	out = append(out, s.MovieTrends...)
	out = append(out, s.BrandTrends...)
	return out
}
