package recommender

import (
	"strconv"
	"strings"

	"bookvault-backend/models/books"
)

// Расширение кодов языков до полного названия (eng -> english и т.д.)
var languageSynonyms = map[string]string{
	"eng": "english",
	"spa": "spanish",
	"fre": "french",
	"ger": "german",
}

// EncodeBook строит взвешенное bag-of-terms описание книги для TF-IDF.
// У векторизатора нет весов по полям, поэтому важность поля задается
// повторением токенов: полное название x4, слова названия x2, автор x3,
// части имени x2, жанр x2. Пустые поля ничего не добавляют.
func EncodeBook(b books.Book) string {
	var features []string
	add := func(tok string, n int) {
		for i := 0; i < n; i++ {
			features = append(features, tok)
		}
	}

	if b.Title != "" {
		title := strings.ToLower(b.Title)
		add(title, 4)
		for _, w := range strings.Fields(title) {
			if len(w) > 2 {
				add(w, 2)
			}
		}
	}

	for _, author := range books.SplitList(b.Author) {
		add(author, 3)
		for _, part := range strings.Fields(author) {
			if len(part) > 2 {
				add(part, 2)
			}
		}
	}

	for _, genre := range books.SplitList(b.Genre) {
		add(genre, 2)
		for _, part := range strings.Fields(genre) {
			if len(part) > 2 {
				add(part, 1)
			}
		}
	}

	if b.PublicationYear > 0 {
		add(strconv.Itoa(b.PublicationYear), 1)
		// Десятилетие: 1994 -> 1990
		add(strconv.Itoa(b.PublicationYear-b.PublicationYear%10), 1)
	}

	for _, lang := range books.SplitList(b.Languages) {
		add(lang, 1)
		if full, ok := languageSynonyms[lang]; ok {
			add(full, 1)
		}
	}

	if b.Thumbnail != "" {
		add("has_thumbnail", 1)
	}
	if b.PreviewLink != "" {
		add("has_preview", 1)
	}
	if b.DownloadLink != "" {
		add("has_download", 1)
	}

	return strings.Join(features, " ")
}
