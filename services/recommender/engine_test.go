package recommender

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookvault-backend/models/books"
	"bookvault-backend/services/catalog"
)

// stubProvider — каталог для тестов: отдает заранее заданные книги или
// ошибку и считает обращения.
type stubProvider struct {
	name        string
	books       []books.Book
	err         error
	emptyQuery  bool
	searchCalls int
	lastQuery   string
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) BuildQuery(signals []catalog.QuerySignal) string {
	if s.emptyQuery || len(signals) == 0 {
		return ""
	}
	return "stub-query"
}

func (s *stubProvider) TitleAuthorQuery(title, author string) string {
	return title + " " + author
}

func (s *stubProvider) Search(ctx context.Context, query string) ([]books.Book, error) {
	s.searchCalls++
	s.lastQuery = query
	if s.err != nil {
		return nil, s.err
	}
	return s.books, nil
}

// Три одинаковые книги: векторная модель на такой истории не строится,
// поэтому итог целиком состоит из внешних кандидатов.
func uniformHistory() []books.Book {
	b := books.Book{
		Title:           "Dune",
		Author:          "Frank Herbert",
		Genre:           "Science Fiction",
		PublicationYear: 1965,
		Languages:       "eng",
	}
	return []books.Book{b, b, b}
}

func TestRecommendEmptyHistory(t *testing.T) {
	stub := &stubProvider{name: "stub"}
	engine := NewEngine(stub)

	recs, meta, err := engine.Recommend(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Empty(t, meta.TopAuthors)
	assert.Equal(t, 0, stub.searchCalls)
}

func TestRecommendSurvivesProviderFailure(t *testing.T) {
	broken := &stubProvider{name: "broken", err: errors.New("timeout")}
	healthy := &stubProvider{name: "healthy", books: []books.Book{
		{Title: "Dune Messiah", Author: "Frank Herbert", Genre: "Science Fiction"},
	}}
	engine := NewEngine(broken, healthy)

	recs, _, err := engine.Recommend(context.Background(), uniformHistory(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Dune Messiah", recs[0].Title)
	assert.Equal(t, SourceExternal, recs[0].Source)
	assert.Equal(t, 1, broken.searchCalls)
	assert.Equal(t, 1, healthy.searchCalls)
}

func TestRecommendOrdersExternalByScore(t *testing.T) {
	stub := &stubProvider{name: "stub", books: []books.Book{
		{Title: "Cooking Basics", Author: "Chef"},
		{Title: "Dune Messiah", Author: "Frank Herbert", Genre: "Science Fiction"},
	}}
	engine := NewEngine(stub)

	recs, _, err := engine.Recommend(context.Background(), uniformHistory(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Dune Messiah", recs[0].Title)
	assert.Equal(t, "Cooking Basics", recs[1].Title)
	assert.Equal(t, "stub-query", stub.lastQuery)
}

func TestRecommendSkipsProviderWithoutQuery(t *testing.T) {
	mute := &stubProvider{name: "mute", emptyQuery: true}
	engine := NewEngine(mute)

	_, _, err := engine.Recommend(context.Background(), uniformHistory(), 10)
	require.NoError(t, err)
	assert.Equal(t, 0, mute.searchCalls)
}

func TestRecommendMetadata(t *testing.T) {
	engine := NewEngine()

	_, meta, err := engine.Recommend(context.Background(), uniformHistory(), 10)
	require.NoError(t, err)
	assert.Contains(t, meta.TopGenres, "science fiction")
	assert.Contains(t, meta.TopAuthors, "frank herbert")
	assert.Contains(t, meta.PreferredTimePeriods, "1960s")
	assert.Contains(t, meta.PreferredLanguages, "eng")
	assert.False(t, meta.ReadingPatterns.SeriesPreference)
	assert.Equal(t, 1, meta.ReadingPatterns.GenreDiversity)
	assert.Equal(t, 1, meta.ReadingPatterns.AuthorDiversity)
	assert.NotNil(t, meta.PricePreferences)
}
