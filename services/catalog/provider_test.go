package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookvault-backend/models/books"
)

type fakeProvider struct {
	name  string
	found []books.Book
	err   error
}

func (f *fakeProvider) Name() string                           { return f.name }
func (f *fakeProvider) BuildQuery(signals []QuerySignal) string { return "query" }
func (f *fakeProvider) TitleAuthorQuery(title, author string) string {
	return title + " " + author
}
func (f *fakeProvider) Search(ctx context.Context, query string) ([]books.Book, error) {
	return f.found, f.err
}

func TestSearchTitleAuthorFirstWithResults(t *testing.T) {
	providers := []Provider{
		&fakeProvider{name: "broken", err: errors.New("unavailable")},
		&fakeProvider{name: "empty"},
		&fakeProvider{name: "full", found: []books.Book{{Title: "Dune"}}},
	}

	found := SearchTitleAuthor(context.Background(), providers, "Dune", "Frank Herbert")
	require.Len(t, found, 1)
	assert.Equal(t, "Dune", found[0].Title)
}

func TestSearchTitleAuthorCapsResults(t *testing.T) {
	many := make([]books.Book, MaxCandidates+3)
	providers := []Provider{&fakeProvider{name: "full", found: many}}

	found := SearchTitleAuthor(context.Background(), providers, "Dune", "Frank Herbert")
	assert.Len(t, found, MaxCandidates)
}

func TestSearchTitleAuthorNothingFound(t *testing.T) {
	providers := []Provider{&fakeProvider{name: "empty"}}
	assert.Nil(t, SearchTitleAuthor(context.Background(), providers, "Dune", "Frank Herbert"))
}
