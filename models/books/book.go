package books

import (
	"strings"
	"time"
)

// Book — единица истории чтения пользователя. Поля author, genre и
// languages хранятся как строки, склеенные запятыми (формат внешних
// каталогов); все потребители разбирают их через SplitList.
type Book struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"index;not null"`
	PreferenceID    uint      `json:"preference_id" gorm:"index"`
	Title           string    `json:"title" gorm:"size:500;not null"`
	Author          string    `json:"author" gorm:"size:255;not null"`
	Genre           string    `json:"genre" gorm:"size:255"`
	PublicationYear int       `json:"publication_year"`
	Languages       string    `json:"languages" gorm:"size:100"`
	BookID          string    `json:"book_id" gorm:"size:255"` // идентификатор в каталоге-источнике
	DownloadLink    string    `json:"download_link" gorm:"size:500"`
	IsFree          bool      `json:"is_free" gorm:"default:false"`
	PreviewLink     string    `json:"preview_link" gorm:"size:500"`
	Thumbnail       string    `json:"thumbnail" gorm:"size:500"`
	Description     string    `json:"description" gorm:"type:text"`
	Source          string    `json:"source" gorm:"size:50"`
	CreatedAt       time.Time `json:"created_at"`
}

// BookPreference — явные предпочтения, сохранённые пользователем
type BookPreference struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	UserID          uint   `json:"user_id" gorm:"index;not null"`
	Title           string `json:"title" gorm:"size:500"`
	Author          string `json:"author" gorm:"size:255"`
	Genre           string `json:"genre" gorm:"size:255"`
	PublicationYear int    `json:"publication_year"`
	Language        string `json:"language" gorm:"size:100"`
}

// SplitList разбирает склеенное запятыми поле: trim + lower, пустые
// элементы отбрасываются
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsFreeDownload — эвристика бесплатной книги по ссылке на скачивание
func IsFreeDownload(link string) bool {
	l := strings.ToLower(link)
	return strings.Contains(l, "free") || strings.Contains(l, "gutenberg")
}
