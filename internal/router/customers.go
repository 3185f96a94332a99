package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/anupamdas/gokart/pkg/global"
	"github.com/anupamdas/gokart/pkg/models"
	"github.com/anupamdas/gokart/pkg/mongo"
)

func (a *API) CreateCustomer(c *gin.Context) {
	var req models.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create customer", nil))
		return
	}

	customer := &models.Customer{
		Email:     req.Email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if err := a.Customers.Insert(c.Request.Context(), customer); err != nil {
		if errors.Is(err, mongo.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, global.ErrorResponse("Email already registered", []global.ValidationError{
				{Field: "email", Message: "A customer with this email already exists", Code: "duplicate"},
			}))
			return
		}
		log.Printf("Error creating customer: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create customer", nil))
		return
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(customer))
}
