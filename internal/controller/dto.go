package controller

import (
	"errors"
	"io"
	"strings"

	"github.com/Freeeeeet/academy_booking/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type credentialsRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required,max=32"`
	Password    string `json:"password" binding:"required,max=72"`
}

type createReservationRequest struct {
	ScheduleID *int64   `json:"scheduleId" binding:"omitempty,gt=0"`
	Type       string   `json:"type" binding:"required"`
	Content    *string  `json:"content" binding:"omitempty,max=5000"`
	PhotoURLs  []string `json:"photoUrls" binding:"max=10,dive,url"`
}

type allowedStudentRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	PhoneNumber string `json:"phoneNumber" binding:"required,max=32"`
	SeatNumber  int    `json:"seatNumber" binding:"gte=0"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type uploadResponse struct {
	URLs []string `json:"urls"`
}

// bindJSON разбирает тело запроса. Ошибка уже превращена в Validation.
func bindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs) && len(verrs) > 0:
		return service.Validation("field %s failed on %s", lowerFirst(verrs[0].Field()), verrs[0].Tag())
	case errors.Is(err, io.EOF):
		return service.Validation("request body required")
	default:
		return service.Validation("invalid JSON body")
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
