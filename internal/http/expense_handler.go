package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tripflux/internal/domain"
	"tripflux/internal/repository"
	"tripflux/internal/service"
)

// ExpenseHandler mantiene dependencias para endpoints de gastos.
type ExpenseHandler struct {
	logger   *zap.Logger
	expenses repository.ExpenseRepository
}

func NewExpenseHandler(logger *zap.Logger, expenses repository.ExpenseRepository) *ExpenseHandler {
	return &ExpenseHandler{logger: logger, expenses: expenses}
}

// Create maneja POST /api/expenses.
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID, _ := AuthUserID(c)

	var req struct {
		Description string     `json:"description"`
		Amount      *float64   `json:"amount"`
		Category    string     `json:"category"`
		Date        *time.Time `json:"date"`
		TravelLog   *string    `json:"travelLog"`
		GroupTrip   *string    `json:"groupTrip"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request"})
		return
	}
	if req.Description == "" || req.Amount == nil || req.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Description, amount and category are required"})
		return
	}
	if *req.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Amount must not be negative"})
		return
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	expense := domain.Expense{
		ID:          uuid.NewString(),
		UserID:      userID,
		Description: req.Description,
		Amount:      *req.Amount,
		Category:    req.Category,
		Date:        date,
		TravelLogID: emptyToNil(req.TravelLog),
		GroupTripID: emptyToNil(req.GroupTrip),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.expenses.Create(c.Request.Context(), expense); err != nil {
		h.logger.Error("create expense failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

// List maneja GET /api/expenses.
func (h *ExpenseHandler) List(c *gin.Context) {
	userID, _ := AuthUserID(c)
	expenses, err := h.expenses.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list expenses failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// Get maneja GET /api/expenses/:id.
func (h *ExpenseHandler) Get(c *gin.Context) {
	userID, _ := AuthUserID(c)
	expense, ok := h.fetch(c)
	if !ok {
		return
	}
	if !service.CanModify(userID, expense.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"msg": "User not authorized"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

// Update maneja PUT /api/expenses/:id.
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID, _ := AuthUserID(c)
	expense, ok := h.fetch(c)
	if !ok {
		return
	}
	if !service.CanModify(userID, expense.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"msg": "User not authorized"})
		return
	}

	var req struct {
		Description *string    `json:"description"`
		Amount      *float64   `json:"amount"`
		Category    *string    `json:"category"`
		Date        *time.Time `json:"date"`
		TravelLog   *string    `json:"travelLog"`
		GroupTrip   *string    `json:"groupTrip"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request"})
		return
	}

	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Amount must not be negative"})
			return
		}
		expense.Amount = *req.Amount
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}
	if req.TravelLog != nil {
		expense.TravelLogID = emptyToNil(req.TravelLog)
	}
	if req.GroupTrip != nil {
		expense.GroupTripID = emptyToNil(req.GroupTrip)
	}
	expense.UpdatedAt = time.Now().UTC()

	if err := h.expenses.Update(c.Request.Context(), expense); err != nil {
		h.logger.Error("update expense failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

// Delete maneja DELETE /api/expenses/:id.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID, _ := AuthUserID(c)
	expense, ok := h.fetch(c)
	if !ok {
		return
	}
	if !service.CanModify(userID, expense.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"msg": "User not authorized"})
		return
	}
	if err := h.expenses.Delete(c.Request.Context(), expense.ID); err != nil {
		h.logger.Error("delete expense failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Expense removed"})
}

func (h *ExpenseHandler) fetch(c *gin.Context) (domain.Expense, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Expense not found"})
		return domain.Expense{}, false
	}
	expense, err := h.expenses.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Expense not found"})
			return domain.Expense{}, false
		}
		h.logger.Error("fetch expense failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return domain.Expense{}, false
	}
	return expense, true
}

// emptyToNil traduce "" a NULL, como hacía el cliente con selects vacíos.
func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
