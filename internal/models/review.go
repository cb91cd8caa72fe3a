package models

import "time"

// Review es una reseña inmutable de un cliente sobre un producto.
// El productId no se valida contra el catálogo: una reseña puede
// referenciar un producto ya eliminado.
type Review struct {
	ID        string    `json:"id"`
	ProductID int64     `json:"product_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingBucket es una entrada de la distribución por estrellas.
type RatingBucket struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RatingSummary es el agregado de reseñas de un producto, calculado
// bajo demanda (nunca se almacena).
type RatingSummary struct {
	Count        int                  `json:"count"`
	Average      float64              `json:"average"`
	Distribution map[int]RatingBucket `json:"distribution"`
}
