package review

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"bugana-shop/internal/models"
)

var (
	// ErrInvalidRating: la calificación debe estar entre 1 y 5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrEmptyComment: el comentario no puede quedar vacío tras recortar espacios.
	ErrEmptyComment = errors.New("comment must not be empty")
)

// Store guarda las reseñas por producto. Una reseña es inmutable una
// vez creada; los agregados se calculan bajo demanda.
type Store struct {
	mu      sync.RWMutex
	reviews []models.Review
}

func NewStore() *Store {
	return &Store{}
}

// Add valida y agrega una reseña nueva con id y timestamp generados.
func (s *Store) Add(productID int64, rating int, comment, author string) (models.Review, error) {
	if rating < 1 || rating > 5 {
		return models.Review{}, ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return models.Review{}, ErrEmptyComment
	}

	r := models.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		Author:    author,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.reviews = append(s.reviews, r)
	s.mu.Unlock()

	return r, nil
}

// ForProduct devuelve las reseñas del producto, la más reciente primero.
func (s *Store) ForProduct(productID int64) []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Review
	// el slice interno está en orden de creación; recorrer al revés da
	// la más reciente primero sin reordenar
	for i := len(s.reviews) - 1; i >= 0; i-- {
		if s.reviews[i].ProductID == productID {
			out = append(out, s.reviews[i])
		}
	}
	return out
}

// Aggregate calcula cantidad, promedio y distribución por estrellas de
// las reseñas del producto. Sin reseñas: promedio 0 y todos los
// porcentajes en 0, sin división por cero.
func (s *Store) Aggregate(productID int64) models.RatingSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int]int, 5)
	total := 0
	sum := 0
	for _, r := range s.reviews {
		if r.ProductID == productID {
			counts[r.Rating]++
			sum += r.Rating
			total++
		}
	}

	summary := models.RatingSummary{
		Count:        total,
		Distribution: make(map[int]models.RatingBucket, 5),
	}
	for star := 1; star <= 5; star++ {
		bucket := models.RatingBucket{Count: counts[star]}
		if total > 0 {
			bucket.Percentage = float64(counts[star]) / float64(total) * 100
		}
		summary.Distribution[star] = bucket
	}
	if total > 0 {
		summary.Average = float64(sum) / float64(total)
	}
	return summary
}

// All devuelve todas las reseñas en orden de creación (para persistir).
func (s *Store) All() []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Review, len(s.reviews))
	copy(out, s.reviews)
	return out
}

// Restore carga reseñas persistidas; solo se usa en el arranque.
func (s *Store) Restore(reviews []models.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reviews = make([]models.Review, len(reviews))
	copy(s.reviews, reviews)
}
