package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bugana-shop/internal/repository"
	"bugana-shop/internal/review"
)

type ReviewHandler struct {
	reviews   *review.Store
	snapshots *repository.SnapshotStore // opcional
}

func NewReviewHandler(store *review.Store, snapshots *repository.SnapshotStore) *ReviewHandler {
	return &ReviewHandler{reviews: store, snapshots: snapshots}
}

type addReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
	Author  string `json:"author" binding:"required"`
}

// POST /v1/products/:id/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	r, err := h.reviews.Add(productID, req.Rating, req.Comment, req.Author)
	if err != nil {
		if errors.Is(err, review.ErrInvalidRating) || errors.Is(err, review.ErrEmptyComment) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create review"})
		return
	}

	if h.snapshots != nil {
		if err := h.snapshots.SaveReview(context.Background(), r); err != nil {
			log.Printf("snapshot save failed for review %s: %v", r.ID, err)
		}
	}

	c.JSON(http.StatusCreated, r)
}

// GET /v1/products/:id/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	reviews := h.reviews.ForProduct(productID)
	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"total":   len(reviews),
	})
}

// GET /v1/products/:id/rating
func (h *ReviewHandler) GetRating(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	c.JSON(http.StatusOK, h.reviews.Aggregate(productID))
}
