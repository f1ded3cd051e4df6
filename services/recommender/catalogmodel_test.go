package recommender

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookvault-backend/models/books"
)

func catalogFixture() []books.Book {
	return []books.Book{
		{ID: 1, Title: "Left Hand Darkness", Author: "Ursula Le Guin", Genre: "Science Fiction"},
		{ID: 2, Title: "The Dispossessed", Author: "Ursula Le Guin", Genre: "Science Fiction"},
		{ID: 3, Title: "Sea Change", Author: "Sylvia Earle", Genre: "Marine Biology"},
		{ID: 4, Title: "Blue Hope", Author: "Sylvia Earle", Genre: "Marine Biology"},
	}
}

func countingLoader(calls *int) CatalogLoader {
	return func(ctx context.Context) ([]books.Book, error) {
		*calls++
		return catalogFixture(), nil
	}
}

func TestSimilarBooksSameClusterFirst(t *testing.T) {
	var calls int
	model := NewCatalogModel(countingLoader(&calls), time.Hour)

	similar, err := model.SimilarBooks(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, similar, 2)
	assert.Equal(t, "The Dispossessed", similar[0].Title)
	assert.Equal(t, "Sea Change", similar[1].Title)
}

func TestSimilarBooksUnknownID(t *testing.T) {
	var calls int
	model := NewCatalogModel(countingLoader(&calls), time.Hour)

	_, err := model.SimilarBooks(context.Background(), 99, 3)
	assert.ErrorIs(t, err, ErrUnknownBook)
}

func TestCatalogModelReusesFreshSnapshot(t *testing.T) {
	var calls int
	model := NewCatalogModel(countingLoader(&calls), time.Hour)

	_, err := model.SimilarBooks(context.Background(), 1, 2)
	require.NoError(t, err)
	_, err = model.SimilarBooks(context.Background(), 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCatalogModelRefitsWhenStale(t *testing.T) {
	var calls int
	model := NewCatalogModel(countingLoader(&calls), time.Nanosecond)

	_, err := model.SimilarBooks(context.Background(), 1, 2)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = model.SimilarBooks(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCatalogModelLoaderError(t *testing.T) {
	wantErr := errors.New("база недоступна")
	model := NewCatalogModel(func(ctx context.Context) ([]books.Book, error) {
		return nil, wantErr
	}, time.Hour)

	_, err := model.SimilarBooks(context.Background(), 1, 2)
	assert.ErrorIs(t, err, wantErr)
}
