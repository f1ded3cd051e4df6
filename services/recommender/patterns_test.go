package recommender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookvault-backend/models/books"
)

func sciFiHistory() []books.Book {
	return []books.Book{
		{Title: "Dune", Author: "A", Genre: "Science Fiction", PublicationYear: 1965},
		{Title: "Ringworld", Author: "B", Genre: "Science Fiction", PublicationYear: 1970},
		{Title: "Gateway", Author: "A", Genre: "Science Fiction", PublicationYear: 1975},
	}
}

func TestAnalyzePatternsScenario(t *testing.T) {
	p := AnalyzePatterns(sciFiHistory())

	// Веса записей: 1.0, 1.1(6), 1.3(3)
	require.Len(t, p[CategoryGenres], 1)
	assert.InDelta(t, 1.0, p[CategoryGenres]["science fiction"], 1e-9)

	assert.InDelta(t, 1.0, p[CategoryAuthors]["a"], 1e-9)
	assert.InDelta(t, 0.5, p[CategoryAuthors]["b"], 1e-9) // 1.1667 / 2.3333

	assert.InDelta(t, 1.0, p[CategoryTimePeriods]["1970s"], 1e-9)
	assert.InDelta(t, 0.4, p[CategoryTimePeriods]["1960s"], 1e-9) // 1.0 / 2.5
}

func TestAnalyzePatternsNormalization(t *testing.T) {
	history := []books.Book{
		{Title: "First Book of Many", Author: "X, Y", Genre: "Fantasy, Epic", PublicationYear: 1988, Languages: "eng", DownloadLink: "https://gutenberg.org/1"},
		{Title: "Second Tome", Author: "X", Genre: "History", PublicationYear: 2001, Languages: "spa", DownloadLink: "https://shop.example/2"},
	}
	p := AnalyzePatterns(history)

	// Максимум каждой непустой категории равен 1.0, остальное в [0,1]
	for category, weights := range p {
		if len(weights) == 0 {
			continue
		}
		var max float64
		for term, w := range weights {
			assert.GreaterOrEqual(t, w, 0.0, "%s/%s", category, term)
			assert.LessOrEqual(t, w, 1.0, "%s/%s", category, term)
			if w > max {
				max = w
			}
		}
		assert.InDelta(t, 1.0, max, 1e-9, category)
	}
}

func TestAnalyzePatternsCategories(t *testing.T) {
	history := []books.Book{
		{Title: "Dragons Part One", Author: "Serial Author", Genre: "Fantasy Novel", PublicationYear: 1999, Languages: "eng", DownloadLink: "https://freebooks.example/d"},
		{Title: "Mushrooms", Author: "Plain Author", Genre: "Biology", DownloadLink: "https://shop.example/m"},
	}
	p := AnalyzePatterns(history)

	// "part" в названии помечает автора как серийного
	assert.Contains(t, p[CategoryAuthorSeries], "serial author")
	assert.NotContains(t, p[CategoryAuthorSeries], "plain author")

	// fiction по ключевому слову в жанре, иначе non-fiction
	assert.Contains(t, p[CategoryContentType], "fiction")
	assert.Contains(t, p[CategoryContentType], "non-fiction")

	assert.Contains(t, p[CategoryPrices], "free")
	assert.Contains(t, p[CategoryPrices], "paid")

	// Год без значения пропускается
	require.Len(t, p[CategoryTimePeriods], 1)
	assert.Contains(t, p[CategoryTimePeriods], "1990s")

	// Слова названия короче трех символов не учитываются
	assert.Contains(t, p[CategoryTitleWords], "dragons")
	assert.Contains(t, p[CategoryTitleWords], "one")
	assert.NotContains(t, p[CategoryTitleWords], "of")
}

func TestAnalyzePatternsEmptyHistory(t *testing.T) {
	p := AnalyzePatterns(nil)
	for _, category := range profileCategories {
		assert.Empty(t, p[category])
	}
}

func TestProfileTopDeterministic(t *testing.T) {
	p := Profile{
		CategoryAuthors: {"b": 0.5, "a": 0.5, "c": 1.0},
	}
	top := p.Top(CategoryAuthors, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "c", top[0].Term)
	assert.Equal(t, "a", top[1].Term) // при равных весах — алфавитный порядок
}

func TestProfileWeightMissing(t *testing.T) {
	p := Profile{}
	assert.Equal(t, 0.0, p.Weight(CategoryGenres, "unknown"))
}
