package recommender

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"bookvault-backend/models/books"
	"bookvault-backend/services/catalog"
)

const (
	// DefaultResultSize — размер итогового списка по умолчанию
	DefaultResultSize = 10
	// Сколько затравок снимаем с ранжирования истории
	defaultSeedCount = 15
	// Таймаут одного обращения к каталогу
	defaultProviderTimeout = 10 * time.Second
)

// Engine — движок рекомендаций. Не хранит состояния между запросами:
// профиль и векторная модель строятся заново на каждый вызов.
type Engine struct {
	providers []catalog.Provider
	seedCount int
	timeout   time.Duration
}

func NewEngine(providers ...catalog.Provider) *Engine {
	return &Engine{
		providers: providers,
		seedCount: defaultSeedCount,
		timeout:   defaultProviderTimeout,
	}
}

// PatternStats — показатели разнообразия предпочтений
type PatternStats struct {
	GenreDiversity        int  `json:"genre_diversity"`
	AuthorDiversity       int  `json:"author_diversity"`
	TimePeriodDiversity   int  `json:"time_period_diversity"`
	LanguageDiversity     int  `json:"language_diversity"`
	SeriesPreference      bool `json:"series_preference"`
	TitlePatternDiversity int  `json:"title_pattern_diversity"`
}

// Metadata описывает профиль, по которому строились рекомендации
type Metadata struct {
	TopGenres              []string           `json:"top_genres"`
	TopAuthors             []string           `json:"top_authors"`
	PreferredTimePeriods   []string           `json:"preferred_time_periods"`
	PreferredLanguages     []string           `json:"preferred_languages"`
	PricePreferences       map[string]float64 `json:"price_preferences"`
	ContentTypePreferences map[string]float64 `json:"content_type_preferences"`
	ReadingPatterns        PatternStats       `json:"reading_patterns"`
}

// Recommend строит рекомендации по истории чтения одного пользователя.
// История должна быть упорядочена по возрастанию времени добавления
// (самая старая книга первой) — вызывающий обязан развернуть выборку,
// отсортированную по убыванию. Пустая история дает пустой результат
// без ошибки. Отказ каталога логируется и лишь уменьшает число
// кандидатов; либо возвращается полностью собранный список, либо
// ошибка — частичных результатов не бывает.
func (e *Engine) Recommend(ctx context.Context, history []books.Book, n int) ([]Recommendation, Metadata, error) {
	if n <= 0 {
		n = DefaultResultSize
	}
	if len(history) == 0 {
		return []Recommendation{}, Metadata{}, nil
	}

	profile := AnalyzePatterns(history)

	seeds := Rank(history, e.seedCount)
	seedBooks := make([]books.Book, len(seeds))
	for i, s := range seeds {
		seedBooks[i] = s.Book
	}

	external := e.fetchExternal(ctx, profile)

	merged := Merge(seedBooks, external, n)
	return merged, buildMetadata(profile), nil
}

// fetchExternal опрашивает каталоги параллельно. Каждый вызов ограничен
// собственным таймаутом, чтобы медленный каталог не задерживал
// остальные; результаты складываются в фиксированном порядке
// провайдеров, внутри провайдера — по убыванию оценки.
func (e *Engine) fetchExternal(ctx context.Context, profile Profile) []books.Book {
	signals := QuerySignals(profile)
	if len(signals) == 0 {
		return nil
	}

	results := make([][]books.Book, len(e.providers))
	var wg sync.WaitGroup
	for i, p := range e.providers {
		wg.Add(1)
		go func(i int, p catalog.Provider) {
			defer wg.Done()

			query := p.BuildQuery(signals)
			if query == "" {
				return
			}

			callCtx, cancel := context.WithTimeout(ctx, e.timeout)
			defer cancel()

			found, err := p.Search(callCtx, query)
			if err != nil {
				log.Printf("каталог %s: %v", p.Name(), err)
				return
			}

			scored := make([]ScoredCandidate, len(found))
			for j, b := range found {
				scored[j] = ScoredCandidate{Book: b, Score: ScoreCandidate(profile, b)}
			}
			sort.SliceStable(scored, func(a, b int) bool {
				return scored[a].Score > scored[b].Score
			})
			if len(scored) > catalog.MaxCandidates {
				scored = scored[:catalog.MaxCandidates]
			}

			ranked := make([]books.Book, len(scored))
			for j, s := range scored {
				ranked[j] = s.Book
			}
			results[i] = ranked
		}(i, p)
	}
	wg.Wait()

	var external []books.Book
	for _, r := range results {
		external = append(external, r...)
	}
	return external
}

func buildMetadata(p Profile) Metadata {
	return Metadata{
		TopGenres:              terms(p.Top(CategoryGenres, 3)),
		TopAuthors:             terms(p.Top(CategoryAuthors, 2)),
		PreferredTimePeriods:   terms(p.Top(CategoryTimePeriods, 2)),
		PreferredLanguages:     terms(p.Top(CategoryLanguages, 2)),
		PricePreferences:       copyWeights(p[CategoryPrices]),
		ContentTypePreferences: copyWeights(p[CategoryContentType]),
		ReadingPatterns: PatternStats{
			GenreDiversity:        len(p[CategoryGenres]),
			AuthorDiversity:       len(p[CategoryAuthors]),
			TimePeriodDiversity:   len(p[CategoryTimePeriods]),
			LanguageDiversity:     len(p[CategoryLanguages]),
			SeriesPreference:      len(p[CategoryAuthorSeries]) > 0,
			TitlePatternDiversity: len(p[CategoryTitleWords]),
		},
	}
}

func copyWeights(src map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
