package recommender

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"bookvault-backend/models/books"
)

func countToken(encoded, token string) int {
	n := 0
	for _, f := range strings.Fields(encoded) {
		if f == token {
			n++
		}
	}
	return n
}

func TestEncodeBookTokenWeights(t *testing.T) {
	encoded := EncodeBook(books.Book{
		Title:           "The Go Way",
		Author:          "Rob Pike",
		Genre:           "Science Fiction, Essay",
		PublicationYear: 1994,
		Languages:       "eng",
		Thumbnail:       "https://example.com/cover.jpg",
		DownloadLink:    "https://example.com/book.pdf",
	})

	// Название целиком x4 плюс слова длиннее 2 символов x2
	assert.Equal(t, 6, countToken(encoded, "way"))
	assert.Equal(t, 6, countToken(encoded, "the"))
	assert.Equal(t, 4, countToken(encoded, "go"))

	// Автор x3 плюс части имени x2
	assert.Equal(t, 5, countToken(encoded, "rob"))
	assert.Equal(t, 5, countToken(encoded, "pike"))

	// Жанр x2 плюс слова жанра x1
	assert.Equal(t, 3, countToken(encoded, "science"))
	assert.Equal(t, 3, countToken(encoded, "fiction"))
	assert.Equal(t, 3, countToken(encoded, "essay"))

	assert.Equal(t, 1, countToken(encoded, "1994"))
	assert.Equal(t, 1, countToken(encoded, "1990"))

	assert.Equal(t, 1, countToken(encoded, "eng"))
	assert.Equal(t, 1, countToken(encoded, "english"))

	assert.Equal(t, 1, countToken(encoded, "has_thumbnail"))
	assert.Equal(t, 1, countToken(encoded, "has_download"))
	assert.Equal(t, 0, countToken(encoded, "has_preview"))
}

func TestEncodeBookEmpty(t *testing.T) {
	assert.Equal(t, "", EncodeBook(books.Book{}))
}

func TestEncodeBookUnknownLanguage(t *testing.T) {
	encoded := EncodeBook(books.Book{Title: "Kolobok", Languages: "rus"})
	assert.Equal(t, 1, countToken(encoded, "rus"))
	assert.Equal(t, 0, countToken(encoded, "russian"))
}
