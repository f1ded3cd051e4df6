package assistant

import (
	"encoding/json"
	"log"
	"net/http"

	"bookvault-backend/models/books"
	"bookvault-backend/services/assistant"
)

var client *assistant.Client

// Init подключает клиента генерации описаний
func Init(c *assistant.Client) {
	client = c
}

// DescribeBook генерирует развернутое описание книги
func DescribeBook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	var book books.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		http.Error(w, "No book details provided", http.StatusBadRequest)
		return
	}

	description, err := client.DescribeBook(r.Context(), book)
	if err != nil {
		log.Printf("ошибка генерации описания: %v", err)
		http.Error(w, "Failed to generate book description", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"title":       book.Title,
		"description": description,
	})
}
