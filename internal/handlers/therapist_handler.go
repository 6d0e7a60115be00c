package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

type TherapistHandler struct {
	db *gorm.DB
}

func NewTherapistHandler(db *gorm.DB) *TherapistHandler {
	return &TherapistHandler{db: db}
}

// --------- Requests ---------

type CreateTherapistRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Specialty string `json:"specialty"`
}

type UpdateTherapistRequest struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *TherapistHandler) List(c *gin.Context) {
	q := h.db.Session(&gorm.Session{})

	if activeStr := strings.TrimSpace(c.Query("active")); activeStr != "" {
		if activeStr == "true" {
			q = q.Where("active = ?", true)
		} else if activeStr == "false" {
			q = q.Where("active = ?", false)
		}
	}

	var therapists []models.Therapist
	if err := q.Order("id ASC").Find(&therapists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_therapists"})
		return
	}

	c.JSON(http.StatusOK, therapists)
}

func (h *TherapistHandler) Get(c *gin.Context) {
	var therapist models.Therapist
	if err := h.db.First(&therapist, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "therapist_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_therapist"})
		return
	}

	c.JSON(http.StatusOK, therapist)
}

func (h *TherapistHandler) Create(c *gin.Context) {
	var req CreateTherapistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	therapist := models.Therapist{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Specialty: req.Specialty,
		Active:    true,
	}

	if err := h.db.Create(&therapist).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_therapist"})
		return
	}

	c.JSON(http.StatusCreated, therapist)
}

func (h *TherapistHandler) Update(c *gin.Context) {
	var therapist models.Therapist
	if err := h.db.First(&therapist, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "therapist_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_therapist"})
		return
	}

	var req UpdateTherapistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		therapist.Name = *req.Name
	}
	if req.Phone != nil {
		therapist.Phone = *req.Phone
	}
	if req.Email != nil {
		therapist.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Specialty != nil {
		therapist.Specialty = *req.Specialty
	}
	if req.Active != nil {
		therapist.Active = *req.Active
	}

	if err := h.db.Save(&therapist).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_therapist"})
		return
	}

	c.JSON(http.StatusOK, therapist)
}

func (h *TherapistHandler) Delete(c *gin.Context) {
	res := h.db.Delete(&models.Therapist{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_therapist"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "therapist_not_found"})
		return
	}

	c.Status(http.StatusNoContent)
}
