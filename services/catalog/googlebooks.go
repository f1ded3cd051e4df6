package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	booksapi "google.golang.org/api/books/v1"
	"google.golang.org/api/option"

	"bookvault-backend/models/books"
)

// GoogleBooks — провайдер поверх Google Books API (volumes.list)
type GoogleBooks struct {
	service *booksapi.Service
}

func NewGoogleBooks(ctx context.Context, apiKey string) (*GoogleBooks, error) {
	svc, err := booksapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("google books service: %w", err)
	}
	return &GoogleBooks{service: svc}, nil
}

func (g *GoogleBooks) Name() string { return "google_books" }

func (g *GoogleBooks) TitleAuthorQuery(title, author string) string {
	return fmt.Sprintf("intitle:%s inauthor:%s", title, author)
}

func (g *GoogleBooks) BuildQuery(signals []QuerySignal) string {
	parts := make([]string, 0, len(signals))
	for _, s := range signals {
		switch s.Kind {
		case SignalAuthors:
			ors := make([]string, 0, len(s.Terms))
			for _, t := range s.Terms {
				ors = append(ors, fmt.Sprintf("inauthor:%q", t))
			}
			parts = append(parts, strings.Join(ors, " OR "))
		case SignalSeriesAuthor:
			parts = append(parts, fmt.Sprintf("inauthor:%q", s.Terms[0]))
		case SignalGenres:
			ors := make([]string, 0, len(s.Terms))
			for _, t := range s.Terms {
				ors = append(ors, fmt.Sprintf("subject:%q", t))
			}
			parts = append(parts, strings.Join(ors, " OR "))
		case SignalDecade:
			parts = append(parts, "publishedDate:"+s.Terms[0])
		case SignalContentType:
			parts = append(parts, fmt.Sprintf("subject:%q", s.Terms[0]))
		case SignalFreeOnly:
			parts = append(parts, "filter:free-ebooks")
		}
	}
	return strings.Join(parts, " AND ")
}

func (g *GoogleBooks) Search(ctx context.Context, query string) ([]books.Book, error) {
	resp, err := g.service.Volumes.List(query).
		MaxResults(MaxCandidates).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("volumes.list: %w", err)
	}

	out := make([]books.Book, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.VolumeInfo == nil {
			continue
		}
		out = append(out, g.parseVolume(item))
		if len(out) == MaxCandidates {
			break
		}
	}
	return out, nil
}

func (g *GoogleBooks) parseVolume(item *booksapi.Volume) books.Book {
	info := item.VolumeInfo

	author := "Unknown"
	if len(info.Authors) > 0 {
		author = strings.Join(info.Authors, ", ")
	}

	language := info.Language
	if language == "" {
		language = "en"
	}

	b := books.Book{
		Title:           info.Title,
		Author:          author,
		Genre:           strings.Join(info.Categories, ", "),
		PublicationYear: parseYear(info.PublishedDate),
		Languages:       language,
		BookID:          item.Id,
		PreviewLink:     info.PreviewLink,
		Source:          g.Name(),
	}
	if info.ImageLinks != nil {
		b.Thumbnail = info.ImageLinks.Thumbnail
	}
	if item.AccessInfo != nil && item.AccessInfo.Pdf != nil {
		b.DownloadLink = item.AccessInfo.Pdf.DownloadLink
	}
	b.IsFree = books.IsFreeDownload(b.DownloadLink)
	return b
}

// parseYear вытаскивает год из publishedDate вида "1965" или "1965-08-01"
func parseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
