package recommendations

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"bookvault-backend/config"
	"bookvault-backend/models/books"
	"bookvault-backend/models/users"
	"bookvault-backend/services/recommender"
)

var (
	engine       *recommender.Engine
	catalogModel *recommender.CatalogModel
)

// Init подключает движок рекомендаций и модель каталога
func Init(e *recommender.Engine, m *recommender.CatalogModel) {
	engine = e
	catalogModel = m
}

func userIDParam(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.URL.Query().Get("user_id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// GetUserDetails возвращает данные пользователя
func GetUserDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		http.Error(w, "user_id parameter is required", http.StatusBadRequest)
		return
	}

	var user users.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "User not found",
			"message": "No user found with ID " + r.URL.Query().Get("user_id"),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// GetHistory возвращает историю чтения, новые книги первыми
func GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		http.Error(w, "user_id parameter is required", http.StatusBadRequest)
		return
	}

	var history []books.Book
	if err := config.DB.Where("user_id = ?", userID).
		Order("created_at desc").Find(&history).Error; err != nil {
		http.Error(w, "Failed to fetch history", http.StatusInternalServerError)
		return
	}

	if len(history) == 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "No history found for the user!"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"count":   len(history),
		"history": history,
	})
}

// DeleteFromHistory удаляет книгу из истории пользователя
func DeleteFromHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := userIDParam(r)
	if !ok {
		http.Error(w, "user_id parameter is required", http.StatusBadRequest)
		return
	}
	bookID, err := strconv.Atoi(r.URL.Query().Get("book_id"))
	if err != nil {
		http.Error(w, "book_id parameter is required", http.StatusBadRequest)
		return
	}

	// Книга должна принадлежать именно этому пользователю
	var book books.Book
	if err := config.DB.Where("id = ? AND user_id = ?", bookID, userID).
		First(&book).Error; err != nil {
		http.Error(w, "Book not found or unauthorized", http.StatusNotFound)
		return
	}

	if err := config.DB.Delete(&book).Error; err != nil {
		log.Printf("ошибка удаления книги %d: %v", bookID, err)
		http.Error(w, "Failed to delete book", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Book deleted successfully",
		"book_id": bookID,
	})
}

// AutoRecommend строит персональные рекомендации по истории чтения
func AutoRecommend(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r)
	if !ok {
		http.Error(w, "user_id parameter is required", http.StatusBadRequest)
		return
	}

	limit := recommender.DefaultResultSize
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	// Выборка по убыванию времени; движок ждет старые книги первыми
	var history []books.Book
	if err := config.DB.Where("user_id = ?", userID).
		Order("created_at desc").Find(&history).Error; err != nil {
		http.Error(w, "Failed to fetch history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if len(history) == 0 {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"recommendations": []recommender.Recommendation{},
			"message":         "No reading history found",
		})
		return
	}
	reverse(history)

	log.Printf("история пользователя %d: %d книг", userID, len(history))
	recs, metadata, err := engine.Recommend(r.Context(), history, limit)
	if err != nil {
		log.Printf("ошибка построения рекомендаций: %v", err)
		http.Error(w, "Failed to generate recommendations", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"recommendations": recs,
		"message":         "Successfully generated personalized recommendations",
		"metadata":        metadata,
	})
}

// SimilarBooks ищет похожие книги по всему каталогу
func SimilarBooks(w http.ResponseWriter, r *http.Request) {
	bookID, err := strconv.ParseUint(r.URL.Query().Get("book_id"), 10, 32)
	if err != nil {
		http.Error(w, "book_id parameter is required", http.StatusBadRequest)
		return
	}

	similar, err := catalogModel.SimilarBooks(r.Context(), uint(bookID), 5)
	if err != nil {
		if errors.Is(err, recommender.ErrUnknownBook) {
			http.Error(w, "Book not found", http.StatusNotFound)
			return
		}
		log.Printf("ошибка поиска похожих книг: %v", err)
		http.Error(w, "Failed to find similar books", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"similar_books": similar})
}

// Debug возвращает счетчики по базе
func Debug(w http.ResponseWriter, r *http.Request) {
	var totalBooks int64
	if err := config.DB.Model(&books.Book{}).Count(&totalBooks).Error; err != nil {
		http.Error(w, "Failed to get debug information", http.StatusInternalServerError)
		return
	}

	var userBooks, userPrefs int64
	if userID, ok := userIDParam(r); ok {
		config.DB.Model(&books.Book{}).Where("user_id = ?", userID).Count(&userBooks)
		config.DB.Model(&books.BookPreference{}).Where("user_id = ?", userID).Count(&userPrefs)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total_books":      totalBooks,
		"user_books":       userBooks,
		"user_preferences": userPrefs,
		"message":          "Debug information retrieved successfully",
	})
}

func reverse(history []books.Book) {
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
}
