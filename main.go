package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"bookvault-backend/config"
	"bookvault-backend/controllers/assistant"
	"bookvault-backend/controllers/authentication"
	bookscontroller "bookvault-backend/controllers/books"
	"bookvault-backend/controllers/httpCors"
	"bookvault-backend/controllers/preferences"
	"bookvault-backend/controllers/recommendations"
	"bookvault-backend/models/books"
	"bookvault-backend/models/users"
	assistantservice "bookvault-backend/services/assistant"
	"bookvault-backend/services/catalog"
	"bookvault-backend/services/recommender"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // Порт по умолчанию
	}

	// Инициализируем базу данных
	if err := config.InitDB(); err != nil {
		log.Fatalf("Ошибка инициализации базы данных: %v", err)
	}

	// Выполняем миграцию базы данных
	err := config.DB.AutoMigrate(
		&users.User{},
		&books.Book{},
		&books.BookPreference{},
	)
	if err != nil {
		log.Fatalf("Ошибка миграции базы данных: %v", err)
	}

	// Проверка подключения к базе данных
	sqlDB, err := config.DB.DB()
	if err != nil {
		log.Fatalf("Ошибка получения подключения к базе данных: %v", err)
	}
	if err = sqlDB.Ping(); err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	log.Println("Подключение к базе данных успешно")

	// Внешние каталоги книг
	providers := []catalog.Provider{catalog.NewOpenLibrary()}
	if google, err := catalog.NewGoogleBooks(context.Background(), os.Getenv("GOOGLE_BOOKS_API_KEY")); err != nil {
		log.Printf("Google Books недоступен: %v", err)
	} else {
		providers = append([]catalog.Provider{google}, providers...)
	}

	engine := recommender.NewEngine(providers...)
	catalogModel := recommender.NewCatalogModel(loadCatalog, recommender.DefaultRefitInterval)

	recommendations.Init(engine, catalogModel)
	preferences.Init(providers)
	assistant.Init(assistantservice.NewClient(os.Getenv("GEMINI_API_KEY")))

	http.HandleFunc("/auth/register", authentication.Register)
	http.HandleFunc("/auth/login", authentication.Login)

	http.HandleFunc("/books/list", bookscontroller.ListBooks)
	http.HandleFunc("/books/get", bookscontroller.GetBook)

	http.HandleFunc("/preferences", preferences.Handle)

	http.HandleFunc("/recommendations/user", recommendations.GetUserDetails)
	http.HandleFunc("/recommendations/history", recommendations.GetHistory)
	http.HandleFunc("/recommendations/history/delete", recommendations.DeleteFromHistory)
	http.HandleFunc("/recommendations/auto", recommendations.AutoRecommend)
	http.HandleFunc("/recommendations/similar", recommendations.SimilarBooks)
	http.HandleFunc("/recommendations/debug", recommendations.Debug)

	http.HandleFunc("/book-assistant", assistant.DescribeBook)

	handler := httpCors.CorsSettings().Handler(http.DefaultServeMux)

	// Запускаем сервер
	log.Printf("Сервер запущен на порту %s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}

// loadCatalog отдает все книги для модели сходства по каталогу
func loadCatalog(ctx context.Context) ([]books.Book, error) {
	var all []books.Book
	if err := config.DB.WithContext(ctx).Find(&all).Error; err != nil {
		return nil, err
	}
	return all, nil
}
