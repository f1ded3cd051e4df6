package recommender

import (
	"fmt"
	"sort"
	"strings"

	"bookvault-backend/models/books"
)

// Категории профиля предпочтений
const (
	CategoryGenres       = "genres"
	CategoryAuthors      = "authors"
	CategoryTimePeriods  = "time_periods"
	CategoryLanguages    = "languages"
	CategoryPrices       = "price_preferences"
	CategoryTitleWords   = "title_patterns"
	CategoryAuthorSeries = "author_series"
	CategoryContentType  = "content_type"
)

var profileCategories = []string{
	CategoryGenres, CategoryAuthors, CategoryTimePeriods,
	CategoryLanguages, CategoryPrices, CategoryTitleWords,
	CategoryAuthorSeries, CategoryContentType,
}

var seriesKeywords = []string{"book", "series", "part"}
var fictionKeywords = []string{"fiction", "novel", "story", "tale"}

// Profile — профиль предпочтений: категория -> терм -> вес [0,1].
// Веса каждой категории нормированы её максимумом, максимум равен 1.0.
// Профиль живет один запрос и нигде не сохраняется.
type Profile map[string]map[string]float64

// TermWeight — терм с весом, для отсортированных выборок из профиля
type TermWeight struct {
	Term   string
	Weight float64
}

// AnalyzePatterns строит профиль по истории чтения. История должна быть
// упорядочена по возрастанию времени добавления (старые книги первыми):
// вес записи растет линейно от 1.0 у самой старой до 1.5 у самой новой.
func AnalyzePatterns(history []books.Book) Profile {
	p := make(Profile, len(profileCategories))
	for _, c := range profileCategories {
		p[c] = make(map[string]float64)
	}

	n := float64(len(history))
	for i, b := range history {
		w := 1.0 + (float64(i)/n)*0.5

		for _, genre := range books.SplitList(b.Genre) {
			p[CategoryGenres][genre] += w
		}

		title := strings.ToLower(b.Title)
		series := false
		for _, kw := range seriesKeywords {
			if strings.Contains(title, kw) {
				series = true
				break
			}
		}

		for _, author := range books.SplitList(b.Author) {
			p[CategoryAuthors][author] += w
			if series {
				p[CategoryAuthorSeries][author] += w
			}
		}

		// Год может отсутствовать (0) — запись пропускается, это не ошибка
		if b.PublicationYear != 0 {
			decade := fmt.Sprintf("%ds", (b.PublicationYear/10)*10)
			p[CategoryTimePeriods][decade] += w
		}

		for _, lang := range books.SplitList(b.Languages) {
			p[CategoryLanguages][lang] += w
		}

		if b.DownloadLink != "" {
			tier := "paid"
			if books.IsFreeDownload(b.DownloadLink) {
				tier = "free"
			}
			p[CategoryPrices][tier] += w
		}

		for _, word := range strings.Fields(title) {
			if len(word) > 2 {
				p[CategoryTitleWords][word] += w
			}
		}

		if genres := books.SplitList(b.Genre); len(genres) > 0 {
			p[CategoryContentType][classifyContent(genres)] += w
		}
	}

	// Нормировка: максимальный терм каждой категории получает вес 1.0
	for _, weights := range p {
		var max float64
		for _, v := range weights {
			if v > max {
				max = v
			}
		}
		if max > 0 {
			for k := range weights {
				weights[k] /= max
			}
		}
	}
	return p
}

// classifyContent относит книгу к fiction, если хоть один жанровый тег
// содержит художественное ключевое слово
func classifyContent(genres []string) string {
	for _, g := range genres {
		for _, kw := range fictionKeywords {
			if strings.Contains(g, kw) {
				return "fiction"
			}
		}
	}
	return "non-fiction"
}

// Sorted возвращает термы категории по убыванию веса; при равных весах
// порядок алфавитный, чтобы выборка была детерминированной
func (p Profile) Sorted(category string) []TermWeight {
	weights := p[category]
	out := make([]TermWeight, 0, len(weights))
	for term, w := range weights {
		out = append(out, TermWeight{Term: term, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Term < out[j].Term
	})
	return out
}

// Top — первые n термов категории по весу
func (p Profile) Top(category string, n int) []TermWeight {
	sorted := p.Sorted(category)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Weight — вес терма в категории, 0 для неизвестных термов
func (p Profile) Weight(category, term string) float64 {
	return p[category][term]
}
