package preferences

import (
	"encoding/json"
	"log"
	"net/http"

	"bookvault-backend/config"
	"bookvault-backend/controllers/authentication"
	"bookvault-backend/models/books"
	"bookvault-backend/services/catalog"
)

var providers []catalog.Provider

// Init задает каталоги, в которых ищутся книги под новые предпочтения
func Init(p []catalog.Provider) {
	providers = p
}

type preferenceRequest struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	PublicationYear int    `json:"publication_year"`
	Language        string `json:"language"`
}

// Handle разводит методы маршрута /preferences
func Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		submitPreference(w, r)
	case http.MethodGet:
		listPreferences(w, r)
	default:
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
	}
}

// submitPreference сохраняет предпочтение, ищет подходящие книги во
// внешних каталогах и записывает найденное в историю пользователя
func submitPreference(w http.ResponseWriter, r *http.Request) {
	userID, err := authentication.UserIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var req preferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	preference := books.BookPreference{
		UserID:          userID,
		Title:           req.Title,
		Author:          req.Author,
		Genre:           req.Genre,
		PublicationYear: req.PublicationYear,
		Language:        req.Language,
	}
	if err := config.DB.Create(&preference).Error; err != nil {
		log.Printf("ошибка сохранения предпочтения: %v", err)
		http.Error(w, "Failed to save preference", http.StatusInternalServerError)
		return
	}

	found := catalog.SearchTitleAuthor(r.Context(), providers, req.Title, req.Author)

	// Найденные книги попадают в историю вместе с их ссылками
	saved := make([]books.Book, 0, len(found))
	for _, b := range found {
		b.UserID = userID
		b.PreferenceID = preference.ID
		if b.Author == "" {
			b.Author = "Unknown"
		}
		b.IsFree = books.IsFreeDownload(b.DownloadLink)
		if err := config.DB.Create(&b).Error; err != nil {
			log.Printf("ошибка сохранения книги %q: %v", b.Title, err)
			continue
		}
		saved = append(saved, b)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":         "Preferences saved successfully!",
		"recommendations": saved,
		"user_id":         userID,
		"preference_id":   preference.ID,
	})
}

func listPreferences(w http.ResponseWriter, r *http.Request) {
	userID, err := authentication.UserIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var prefs []books.BookPreference
	if err := config.DB.Where("user_id = ?", userID).Find(&prefs).Error; err != nil {
		http.Error(w, "Failed to fetch preferences", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"preferences": prefs})
}
