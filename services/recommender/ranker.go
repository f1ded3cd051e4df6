package recommender

import (
	"errors"
	"log"
	"sort"

	"bookvault-backend/models/books"
)

// ScoredCandidate — книга из истории с оценкой близости к центроиду
// вкуса пользователя. Оценка имеет смысл только внутри одного запроса.
type ScoredCandidate struct {
	Book  books.Book
	Score float64
}

// Rank ранжирует историю чтения против самой себя и возвращает до n
// ближайших к центроиду книг как затравки для рекомендаций.
//
// История подается по возрастанию времени (старые первыми). Центроид
// считается со спадающими весами 1.0 (старая) -> 0.5 (новая): он
// притянут к исторически доминирующему вкусу. Это сознательно обратная
// схема относительно AnalyzePatterns, где вес растет к новым записям.
// Бонус к сходству тоже спадает: 1.2 (старая) -> 1.0 (новая).
func Rank(history []books.Book, n int) []ScoredCandidate {
	if len(history) == 0 {
		return nil
	}

	docs := make([]string, len(history))
	for i, b := range history {
		docs[i] = EncodeBook(b)
	}

	model, err := NewVectorizer().Fit(docs)
	if err != nil {
		// Слишком однородная или скудная история не векторизуется —
		// рекомендации из модели в этом запросе не участвуют
		if !errors.Is(err, ErrEmptyCorpus) {
			log.Printf("ранжирование истории: %v", err)
		}
		return nil
	}

	rows := model.Vectors()
	k := len(rows)
	centroid := make([]float64, len(rows[0]))
	var totalWeight float64
	for i, row := range rows {
		w := linspace(1.0, 0.5, k, i)
		totalWeight += w
		for j, x := range row {
			centroid[j] += w * x
		}
	}
	for j := range centroid {
		centroid[j] /= totalWeight
	}

	sims := Similarities(centroid, rows)
	scored := make([]ScoredCandidate, k)
	for i := range history {
		scored[i] = ScoredCandidate{
			Book:  history[i],
			Score: sims[i] * linspace(1.2, 1.0, k, i),
		}
	}

	// Стабильная сортировка: при равных оценках раньше стоит более
	// старая запись
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

// linspace — i-я из k равноотстоящих точек отрезка [from, to]
func linspace(from, to float64, k, i int) float64 {
	if k <= 1 {
		return from
	}
	return from + (to-from)*float64(i)/float64(k-1)
}
