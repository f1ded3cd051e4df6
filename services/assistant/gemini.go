package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookvault-backend/models/books"
)

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// Client — клиент Gemini для генерации описаний книг
type Client struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: geminiEndpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

// Структура запроса
type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

// Структура ответа
type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// Description — разбор ответа на языковые секции
type Description struct {
	English string `json:"english"`
	Hindi   string `json:"hindi"`
	Marathi string `json:"marathi"`
}

// DescribeBook запрашивает у Gemini трехъязычное описание книги
func (c *Client) DescribeBook(ctx context.Context, b books.Book) (*Description, error) {
	reqBody, err := json.Marshal(generateRequest{
		Contents: []generateContent{{
			Parts: []generatePart{{Text: buildPrompt(b)}},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"?key="+c.apiKey, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Gemini: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini responded with status %d: %s", resp.StatusCode, respBody)
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	return splitSections(parsed.Candidates[0].Content.Parts[0].Text), nil
}

func buildPrompt(b books.Book) string {
	year := "N/A"
	if b.PublicationYear > 0 {
		year = fmt.Sprintf("%d", b.PublicationYear)
	}
	return fmt.Sprintf(`You are an expert book reviewer and assistant. Analyze and describe the book below in a way that is engaging, informative, and easy to understand.

Here is the book's information:
- Title: %s
- Author: %s
- Genre: %s
- Publication Year: %s
- Language: %s

Provide the response in THREE SEPARATE SECTIONS, each starting with "SECTION X - LANGUAGE:" on its own line: SECTION 1 - ENGLISH, SECTION 2 - HINDI, SECTION 3 - MARATHI. Every section covers: introduction and significance, plot summary without spoilers, main themes, writing style, target audience, final verdict. Do not mix languages within sections.`,
		orNA(b.Title), orNA(b.Author), orNA(b.Genre), year, orNA(b.Languages))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// splitSections режет ответ по маркерам секций; если маркеров нет,
// весь текст считается английским описанием
func splitSections(text string) *Description {
	d := &Description{}
	for _, section := range strings.Split(text, "SECTION") {
		section = strings.TrimSpace(section)
		switch {
		case strings.Contains(section, "ENGLISH:"):
			d.English = trimSection(section, "ENGLISH:")
		case strings.Contains(section, "HINDI:"):
			d.Hindi = trimSection(section, "HINDI:")
		case strings.Contains(section, "MARATHI:"):
			d.Marathi = trimSection(section, "MARATHI:")
		}
	}
	if d.English == "" && d.Hindi == "" && d.Marathi == "" {
		d.English = text
	}
	return d
}

func trimSection(section, marker string) string {
	_, after, _ := strings.Cut(section, marker)
	return strings.TrimSpace(after)
}
