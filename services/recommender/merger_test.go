package recommender

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookvault-backend/models/books"
	"bookvault-backend/services/catalog"
)

func TestMergeEnhancesSeed(t *testing.T) {
	seed := books.Book{Title: "Dune", Author: "Frank Herbert"}
	external := books.Book{
		Title:        "DUNE",
		Author:       "FRANK HERBERT",
		DownloadLink: "https://example.com/free/dune.pdf",
		PreviewLink:  "https://example.com/preview/dune",
		Thumbnail:    "https://example.com/dune.jpg",
	}

	merged := Merge([]books.Book{seed}, []books.Book{external}, 10)
	require.Len(t, merged, 1)
	assert.Equal(t, SourceEnhancedModel, merged[0].Source)
	assert.Equal(t, "Dune", merged[0].Title)
	assert.Equal(t, external.DownloadLink, merged[0].DownloadLink)
	assert.Equal(t, external.PreviewLink, merged[0].PreviewLink)
	assert.Equal(t, external.Thumbnail, merged[0].Thumbnail)
}

func TestMergeSeedWithoutMatchKeepsOwnLinks(t *testing.T) {
	seed := books.Book{Title: "Dune", Author: "Frank Herbert", PreviewLink: "own"}
	external := books.Book{Title: "Dune", Author: "Someone Else", PreviewLink: "foreign"}

	// Совпало только название: обогащения нет, но дубль не добавляется
	merged := Merge([]books.Book{seed}, []books.Book{external}, 10)
	require.Len(t, merged, 1)
	assert.Equal(t, SourceModel, merged[0].Source)
	assert.Equal(t, "own", merged[0].PreviewLink)
}

func TestMergeTruncatesAfterBothPasses(t *testing.T) {
	var seeds, external []books.Book
	for i := 0; i < 7; i++ {
		seeds = append(seeds, books.Book{Title: fmt.Sprintf("Seed %d", i), Author: "S"})
	}
	for i := 0; i < 12; i++ {
		external = append(external, books.Book{Title: fmt.Sprintf("External %d", i), Author: "E"})
	}

	merged := Merge(seeds, external, 10)
	require.Len(t, merged, 10)
	for i := 0; i < 7; i++ {
		assert.Equal(t, fmt.Sprintf("Seed %d", i), merged[i].Title)
		assert.Equal(t, SourceModel, merged[i].Source)
	}
	for i := 0; i < 3; i++ {
		assert.Equal(t, fmt.Sprintf("External %d", i), merged[7+i].Title)
		assert.Equal(t, SourceExternal, merged[7+i].Source)
	}
}

func TestMergeDeterministic(t *testing.T) {
	seeds := []books.Book{
		{Title: "One", Author: "A"},
		{Title: "Two", Author: "B"},
	}
	external := []books.Book{
		{Title: "Three", Author: "C"},
		{Title: "two", Author: "B"},
	}

	first := Merge(seeds, external, 10)
	second := Merge(seeds, external, 10)
	assert.Equal(t, first, second)
}

func TestScoreCandidate(t *testing.T) {
	p := Profile{
		CategoryTitleWords: {"dune": 1.0},
		CategoryAuthors:    {"frank herbert": 0.8},
		CategoryGenres:     {"science fiction": 0.5},
		CategoryLanguages:  {"en": 0.3},
		CategoryPrices:     {"free": 0.9},
	}
	candidate := books.Book{
		Title:        "Dune Messiah",
		Author:       "Frank Herbert",
		Genre:        "Science Fiction",
		Languages:    "en",
		DownloadLink: "https://example.com/free/book",
	}
	assert.InDelta(t, 3.5, ScoreCandidate(p, candidate), 1e-9)

	// Кандидат без пересечений с профилем дает ноль
	assert.Equal(t, 0.0, ScoreCandidate(p, books.Book{Title: "Cooking", Author: "Chef"}))
}

func TestQuerySignalsSelection(t *testing.T) {
	p := Profile{
		CategoryAuthors:      {"a": 1.0, "b": 0.9, "c": 0.1},
		CategoryAuthorSeries: {"a": 0.6},
		CategoryGenres:       {"g1": 0.8},
		CategoryTimePeriods:  {"1990s": 0.7},
		CategoryContentType:  {"fiction": 1.0},
		CategoryPrices:       {"free": 1.0, "paid": 0.2},
	}

	signals := QuerySignals(p)
	require.Len(t, signals, 3)
	assert.Equal(t, catalog.SignalAuthors, signals[0].Kind)
	assert.Equal(t, []string{"a", "b"}, signals[0].Terms)
	assert.Equal(t, catalog.SignalContentType, signals[1].Kind)
	assert.Equal(t, catalog.SignalFreeOnly, signals[2].Kind)
}

func TestQuerySignalsNoFreeFilterWhenPaidWins(t *testing.T) {
	p := Profile{
		CategoryAuthors: {"a": 1.0},
		CategoryPrices:  {"free": 0.4, "paid": 1.0},
	}
	for _, s := range QuerySignals(p) {
		assert.NotEqual(t, catalog.SignalFreeOnly, s.Kind)
	}
}

func TestQuerySignalsEmptyProfile(t *testing.T) {
	assert.Empty(t, QuerySignals(AnalyzePatterns(nil)))
}
