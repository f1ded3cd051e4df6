package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bookvault-backend/models/books"
)

const openLibraryURL = "https://openlibrary.org/search.json"

// OpenLibrary — провайдер поверх поиска Open Library
type OpenLibrary struct {
	baseURL string
	client  *http.Client
}

func NewOpenLibrary() *OpenLibrary {
	return &OpenLibrary{
		baseURL: openLibraryURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (o *OpenLibrary) Name() string { return "open_library" }

func (o *OpenLibrary) TitleAuthorQuery(title, author string) string {
	return fmt.Sprintf("title:%q author:%q", title, author)
}

func (o *OpenLibrary) BuildQuery(signals []QuerySignal) string {
	parts := make([]string, 0, len(signals))
	for _, s := range signals {
		switch s.Kind {
		case SignalAuthors:
			ors := make([]string, 0, len(s.Terms))
			for _, t := range s.Terms {
				ors = append(ors, fmt.Sprintf("author:%q", t))
			}
			parts = append(parts, strings.Join(ors, " OR "))
		case SignalSeriesAuthor:
			parts = append(parts, fmt.Sprintf("author:%q", s.Terms[0]))
		case SignalGenres:
			ors := make([]string, 0, len(s.Terms))
			for _, t := range s.Terms {
				ors = append(ors, fmt.Sprintf("subject:%q", t))
			}
			parts = append(parts, strings.Join(ors, " OR "))
		case SignalDecade:
			// "1990s" -> диапазон по году первой публикации
			if decade, err := strconv.Atoi(strings.TrimSuffix(s.Terms[0], "s")); err == nil {
				parts = append(parts, fmt.Sprintf("first_publish_year:[%d TO %d]", decade, decade+9))
			}
		case SignalContentType:
			parts = append(parts, fmt.Sprintf("subject:%q", s.Terms[0]))
		case SignalFreeOnly:
			parts = append(parts, "has_fulltext:true")
		}
	}
	return strings.Join(parts, " AND ")
}

type openLibraryDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	Subject          []string `json:"subject"`
	Language         []string `json:"language"`
	CoverID          int64    `json:"cover_i"`
}

type openLibraryResponse struct {
	Docs []openLibraryDoc `json:"docs"`
}

func (o *OpenLibrary) Search(ctx context.Context, query string) ([]books.Book, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(MaxCandidates))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open library request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open library responded with status %d", resp.StatusCode)
	}

	var parsed openLibraryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := make([]books.Book, 0, len(parsed.Docs))
	for _, doc := range parsed.Docs {
		out = append(out, o.parseDoc(doc))
		if len(out) == MaxCandidates {
			break
		}
	}
	return out, nil
}

func (o *OpenLibrary) parseDoc(doc openLibraryDoc) books.Book {
	author := "Unknown"
	if len(doc.AuthorName) > 0 {
		author = strings.Join(doc.AuthorName, ", ")
	}

	subjects := doc.Subject
	if len(subjects) > 3 {
		subjects = subjects[:3]
	}

	language := "en"
	if len(doc.Language) > 0 {
		language = doc.Language[0]
	}

	b := books.Book{
		Title:           doc.Title,
		Author:          author,
		Genre:           strings.Join(subjects, ", "),
		PublicationYear: doc.FirstPublishYear,
		Languages:       language,
		BookID:          doc.Key,
		Source:          o.Name(),
	}
	if doc.Key != "" {
		b.DownloadLink = "https://openlibrary.org" + doc.Key
		b.PreviewLink = "https://openlibrary.org" + doc.Key
	}
	if doc.CoverID != 0 {
		b.Thumbnail = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", doc.CoverID)
	}
	b.IsFree = books.IsFreeDownload(b.DownloadLink)
	return b
}
