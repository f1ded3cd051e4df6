package books

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bookvault-backend/config"
	"bookvault-backend/models/books"
)

// ListBooks возвращает краткий список всех книг
func ListBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	var all []books.Book
	if err := config.DB.Find(&all).Error; err != nil {
		http.Error(w, "Failed to fetch books", http.StatusInternalServerError)
		return
	}

	type listItem struct {
		ID     uint   `json:"id"`
		Title  string `json:"title"`
		Author string `json:"author"`
	}
	result := make([]listItem, len(all))
	for i, b := range all {
		result[i] = listItem{ID: b.ID, Title: b.Title, Author: b.Author}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetBook возвращает книгу по id
func GetBook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "id parameter is required", http.StatusBadRequest)
		return
	}

	var book books.Book
	if err := config.DB.First(&book, id).Error; err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Book not found!"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(book)
}
