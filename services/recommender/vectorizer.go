package recommender

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

var (
	// ErrEmptyCorpus — попытка обучить модель на пустой коллекции
	ErrEmptyCorpus = errors.New("recommender: empty corpus")
	// ErrEmptyVocabulary — после отсечения по min_df/max_df не осталось термов
	ErrEmptyVocabulary = errors.New("recommender: no terms left after pruning")
)

// Токены из 2+ буквенно-цифровых символов
var tokenPattern = regexp.MustCompile(`\w\w+`)

// Vectorizer — конфигурация TF-IDF модели. Семантика повторяет
// TfidfVectorizer(stop_words='english', ngram_range=(1,3),
// max_features=5000, min_df=2, max_df=0.95).
type Vectorizer struct {
	NGramMax    int
	MaxFeatures int
	MinDF       int
	MaxDF       float64
	stopwords   map[string]struct{}
}

func NewVectorizer() *Vectorizer {
	return &Vectorizer{
		NGramMax:    3,
		MaxFeatures: 5000,
		MinDF:       2,
		MaxDF:       0.95,
		stopwords:   englishStopwords,
	}
}

// VectorModel — обученная модель: словарь, IDF и L2-нормированные
// TF-IDF векторы корпуса. Инкрементального обновления нет, при смене
// корпуса модель строится заново.
type VectorModel struct {
	vocabulary map[string]int
	idf        []float64
	vectors    [][]float64
}

func (m *VectorModel) Vectors() [][]float64 { return m.vectors }

// Fit строит словарь по корпусу и возвращает обученную модель
func (v *Vectorizer) Fit(corpus []string) (*VectorModel, error) {
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}

	docTerms := make([][]string, len(corpus))
	df := make(map[string]int)
	totals := make(map[string]int)

	for i, doc := range corpus {
		terms := v.extractTerms(doc)
		docTerms[i] = terms

		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			totals[t]++
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	// Отсечение по частоте документов
	maxCount := v.MaxDF * float64(len(corpus))
	kept := make([]string, 0, len(df))
	for term, count := range df {
		if count >= v.MinDF && float64(count) <= maxCount {
			kept = append(kept, term)
		}
	}
	if len(kept) == 0 {
		return nil, ErrEmptyVocabulary
	}

	// Словарь не больше MaxFeatures: берем самые частые термы,
	// при равной частоте — в алфавитном порядке
	if len(kept) > v.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if totals[kept[i]] != totals[kept[j]] {
				return totals[kept[i]] > totals[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:v.MaxFeatures]
	}
	sort.Strings(kept)

	model := &VectorModel{
		vocabulary: make(map[string]int, len(kept)),
		idf:        make([]float64, len(kept)),
	}
	n := float64(len(corpus))
	for i, term := range kept {
		model.vocabulary[term] = i
		// Сглаженный IDF: ln((1+N)/(1+df)) + 1
		model.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	model.vectors = make([][]float64, len(corpus))
	for i, terms := range docTerms {
		model.vectors[i] = model.vectorize(terms)
	}
	return model, nil
}

// extractTerms: нижний регистр, токенизация, стоп-слова, n-граммы 1..NGramMax
func (v *Vectorizer) extractTerms(doc string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(doc), -1)
	tokens := raw[:0]
	for _, t := range raw {
		if _, stop := v.stopwords[t]; !stop {
			tokens = append(tokens, t)
		}
	}

	terms := make([]string, 0, len(tokens)*v.NGramMax)
	for size := 1; size <= v.NGramMax; size++ {
		for i := 0; i+size <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+size], " "))
		}
	}
	return terms
}

// vectorize строит L2-нормированный TF-IDF вектор документа
func (m *VectorModel) vectorize(terms []string) []float64 {
	vec := make([]float64, len(m.vocabulary))
	for _, t := range terms {
		if idx, ok := m.vocabulary[t]; ok {
			vec[idx] += m.idf[idx]
		}
	}
	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// CosineSimilarity — косинусное сходство двух векторов, [-1, 1]
func CosineSimilarity(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Similarities — сходство запроса с каждым вектором корпуса
func Similarities(query []float64, rows [][]float64) []float64 {
	sims := make([]float64, len(rows))
	for i, row := range rows {
		sims[i] = CosineSimilarity(query, row)
	}
	return sims
}
