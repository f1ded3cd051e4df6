package catalog

import (
	"context"
	"log"

	"bookvault-backend/models/books"
)

// Виды сигналов профиля, из которых собирается поисковый запрос.
// Каждый провайдер переводит их в собственный синтаксис.
const (
	SignalAuthors      = "authors"
	SignalSeriesAuthor = "series_author"
	SignalGenres       = "genres"
	SignalDecade       = "decade"
	SignalContentType  = "content_type"
	SignalFreeOnly     = "free_only"
)

// QuerySignal — один компонент запроса с весом из профиля
type QuerySignal struct {
	Kind   string
	Terms  []string
	Weight float64
}

// Сколько кандидатов берем от провайдера за один вызов
const MaxCandidates = 5

// Provider — внешний каталог книг. Поисковый синтаксис и разбор ответа
// у каждого каталога свои, наружу уходит нормализованный books.Book.
type Provider interface {
	Name() string
	// BuildQuery переводит сигналы профиля в запрос каталога
	BuildQuery(signals []QuerySignal) string
	// TitleAuthorQuery — точечный запрос по названию и автору
	TitleAuthorQuery(title, author string) string
	Search(ctx context.Context, query string) ([]books.Book, error)
}

// SearchTitleAuthor опрашивает провайдеров по очереди и возвращает
// результаты первого ответившего. Отказ провайдера логируется и не
// прерывает поиск.
func SearchTitleAuthor(ctx context.Context, providers []Provider, title, author string) []books.Book {
	for _, p := range providers {
		found, err := p.Search(ctx, p.TitleAuthorQuery(title, author))
		if err != nil {
			log.Printf("каталог %s: %v", p.Name(), err)
			continue
		}
		if len(found) > 0 {
			if len(found) > MaxCandidates {
				found = found[:MaxCandidates]
			}
			return found
		}
	}
	return nil
}
