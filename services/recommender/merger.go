package recommender

import (
	"sort"
	"strings"

	"bookvault-backend/models/books"
	"bookvault-backend/services/catalog"
)

// Происхождение элемента итогового списка
const (
	SourceModel         = "model"          // затравка из истории, внешних данных нет
	SourceEnhancedModel = "enhanced_model" // затравка, обогащенная ссылками каталога
	SourceExternal      = "external"       // кандидат из внешнего каталога
)

// Recommendation — элемент итогового списка рекомендаций
type Recommendation struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	PublicationYear int    `json:"publication_year"`
	Language        string `json:"language"`
	DownloadLink    string `json:"download_link"`
	PreviewLink     string `json:"preview_link"`
	Thumbnail       string `json:"thumbnail"`
	Source          string `json:"source"`
}

// Сколько компонентов попадает в запрос к каталогу
const maxQueryComponents = 3

// QuerySignals выбирает самые сильные сигналы профиля для внешнего
// поиска: до двух авторов, один "серийный" автор, до двух жанров, одно
// десятилетие, доминирующий тип контента и фильтр бесплатного — только
// если free перевешивает paid. Остаются три компонента с наибольшим
// весом.
func QuerySignals(p Profile) []catalog.QuerySignal {
	var signals []catalog.QuerySignal

	if top := p.Top(CategoryAuthors, 2); len(top) > 0 {
		signals = append(signals, catalog.QuerySignal{
			Kind:   catalog.SignalAuthors,
			Terms:  terms(top),
			Weight: top[0].Weight,
		})
	}
	if top := p.Top(CategoryAuthorSeries, 1); len(top) > 0 {
		signals = append(signals, catalog.QuerySignal{
			Kind:   catalog.SignalSeriesAuthor,
			Terms:  terms(top),
			Weight: top[0].Weight,
		})
	}
	if top := p.Top(CategoryGenres, 2); len(top) > 0 {
		signals = append(signals, catalog.QuerySignal{
			Kind:   catalog.SignalGenres,
			Terms:  terms(top),
			Weight: top[0].Weight,
		})
	}
	if top := p.Top(CategoryTimePeriods, 1); len(top) > 0 {
		signals = append(signals, catalog.QuerySignal{
			Kind:   catalog.SignalDecade,
			Terms:  terms(top),
			Weight: top[0].Weight,
		})
	}
	if top := p.Top(CategoryContentType, 1); len(top) > 0 {
		signals = append(signals, catalog.QuerySignal{
			Kind:   catalog.SignalContentType,
			Terms:  terms(top),
			Weight: top[0].Weight,
		})
	}
	if free := p.Weight(CategoryPrices, "free"); free > p.Weight(CategoryPrices, "paid") {
		signals = append(signals, catalog.QuerySignal{
			Kind:   catalog.SignalFreeOnly,
			Terms:  []string{"free"},
			Weight: free,
		})
	}

	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Weight > signals[j].Weight
	})
	if len(signals) > maxQueryComponents {
		signals = signals[:maxQueryComponents]
	}
	return signals
}

func terms(tw []TermWeight) []string {
	out := make([]string, len(tw))
	for i, t := range tw {
		out[i] = t.Term
	}
	return out
}

// ScoreCandidate оценивает внешнего кандидата по весам профиля:
// слова названия + авторы + жанры + язык + ценовой уровень.
// Отсутствующие в профиле термы дают 0.
func ScoreCandidate(p Profile, b books.Book) float64 {
	var score float64

	seen := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(b.Title)) {
		if len(word) <= 2 {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		score += p.Weight(CategoryTitleWords, word)
	}

	for _, author := range books.SplitList(b.Author) {
		score += p.Weight(CategoryAuthors, author)
	}
	for _, genre := range books.SplitList(b.Genre) {
		score += p.Weight(CategoryGenres, genre)
	}
	for _, lang := range books.SplitList(b.Languages) {
		score += p.Weight(CategoryLanguages, lang)
	}

	if b.DownloadLink != "" {
		tier := "paid"
		if books.IsFreeDownload(b.DownloadLink) {
			tier = "free"
		}
		score += p.Weight(CategoryPrices, tier)
	}
	return score
}

// Merge сводит затравки модели и внешних кандидатов в один список.
// Затравка, для которой во внешних результатах нашлась пара по
// названию и автору (без учета регистра), наследует её ссылки и
// помечается enhanced_model, иначе остается model. Затем добавляются
// внешние кандидаты, чьи названия еще не встречались (дедупликация
// только по названию). Обрезка до n — строго в самом конце.
func Merge(seeds []books.Book, external []books.Book, n int) []Recommendation {
	out := make([]Recommendation, 0, len(seeds)+len(external))
	seen := make(map[string]struct{}, len(seeds))

	for _, seed := range seeds {
		rec := Recommendation{
			Title:           seed.Title,
			Author:          seed.Author,
			Genre:           seed.Genre,
			PublicationYear: seed.PublicationYear,
			Language:        seed.Languages,
			DownloadLink:    seed.DownloadLink,
			PreviewLink:     seed.PreviewLink,
			Thumbnail:       seed.Thumbnail,
			Source:          SourceModel,
		}
		if match := findMatch(external, seed); match != nil {
			rec.DownloadLink = match.DownloadLink
			rec.PreviewLink = match.PreviewLink
			rec.Thumbnail = match.Thumbnail
			rec.Source = SourceEnhancedModel
		}

		key := strings.ToLower(seed.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}

	for _, ext := range external {
		key := strings.ToLower(ext.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Recommendation{
			Title:           ext.Title,
			Author:          ext.Author,
			Genre:           ext.Genre,
			PublicationYear: ext.PublicationYear,
			Language:        ext.Languages,
			DownloadLink:    ext.DownloadLink,
			PreviewLink:     ext.PreviewLink,
			Thumbnail:       ext.Thumbnail,
			Source:          SourceExternal,
		})
	}

	if len(out) > n {
		out = out[:n]
	}
	return out
}

func findMatch(external []books.Book, seed books.Book) *books.Book {
	for i := range external {
		if strings.EqualFold(external[i].Title, seed.Title) &&
			strings.EqualFold(external[i].Author, seed.Author) {
			return &external[i]
		}
	}
	return nil
}
