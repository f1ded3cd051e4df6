package recommender

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"bookvault-backend/models/books"
)

// ErrUnknownBook — книги нет в обученном срезе каталога
var ErrUnknownBook = errors.New("recommender: book is not in the catalog model")

// DefaultRefitInterval — как долго срез каталога считается свежим
const DefaultRefitInterval = time.Hour

// CatalogLoader отдает весь каталог для переобучения
type CatalogLoader func(ctx context.Context) ([]books.Book, error)

// CatalogModel — модель сходства по всему каталогу. Обученный срез
// неизменяем и подменяется атомарно целиком: пока один запрос
// переобучает модель, остальные читают предыдущий срез.
type CatalogModel struct {
	loader   CatalogLoader
	interval time.Duration

	snapshot atomic.Pointer[catalogSnapshot]
	refit    sync.Mutex
}

type catalogSnapshot struct {
	books    []books.Book
	index    map[uint]int // ID книги -> строка матрицы
	vectors  [][]float64
	fittedAt time.Time
}

func NewCatalogModel(loader CatalogLoader, interval time.Duration) *CatalogModel {
	if interval <= 0 {
		interval = DefaultRefitInterval
	}
	return &CatalogModel{loader: loader, interval: interval}
}

// SimilarBooks возвращает до n книг каталога, ближайших к заданной
func (m *CatalogModel) SimilarBooks(ctx context.Context, bookID uint, n int) ([]books.Book, error) {
	snap, err := m.current(ctx)
	if err != nil {
		return nil, err
	}

	target, ok := snap.index[bookID]
	if !ok {
		return nil, ErrUnknownBook
	}

	sims := Similarities(snap.vectors[target], snap.vectors)
	order := make([]int, 0, len(sims)-1)
	for i := range sims {
		if i != target {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sims[order[a]] > sims[order[b]]
	})
	if len(order) > n {
		order = order[:n]
	}

	out := make([]books.Book, len(order))
	for i, idx := range order {
		out[i] = snap.books[idx]
	}
	return out, nil
}

// current отдает свежий срез, при устаревании переобучает. Переобучение
// выполняет один запрос; конкурентные читатели получают предыдущий срез
// и никогда — наполовину построенный.
func (m *CatalogModel) current(ctx context.Context) (*catalogSnapshot, error) {
	if snap := m.snapshot.Load(); snap != nil && time.Since(snap.fittedAt) < m.interval {
		return snap, nil
	}

	if !m.refit.TryLock() {
		// Переобучение уже идет: устаревший срез лучше ожидания,
		// ждать приходится только самому первому обучению
		if snap := m.snapshot.Load(); snap != nil {
			return snap, nil
		}
		m.refit.Lock()
	}
	defer m.refit.Unlock()

	// Могли проиграть гонку тому, кто уже переобучил
	if snap := m.snapshot.Load(); snap != nil && time.Since(snap.fittedAt) < m.interval {
		return snap, nil
	}

	all, err := m.loader(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]string, len(all))
	index := make(map[uint]int, len(all))
	for i, b := range all {
		docs[i] = EncodeBook(b)
		index[b.ID] = i
	}

	model, err := NewVectorizer().Fit(docs)
	if err != nil {
		return nil, err
	}

	snap := &catalogSnapshot{
		books:    all,
		index:    index,
		vectors:  model.Vectors(),
		fittedAt: time.Now(),
	}
	m.snapshot.Store(snap)
	return snap, nil
}
