package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// CreateError writes the standard error envelope: a success flag and a
// human-readable message. Internal details never reach the caller.
func CreateError(statusCode int, title string, detail string, ctx iris.Context) {
	ctx.StopWithJSON(statusCode, iris.Map{
		"success": false,
		"error":   title,
		"message": detail,
	})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(iris.StatusInternalServerError, "Server Error", "Server error. Please try again later.", ctx)
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, "Not Found", "Resource not found.", ctx)
}

func CreateEmailAlreadyRegistered(ctx iris.Context) {
	CreateError(iris.StatusConflict, "Conflict", "Email already registered.", ctx)
}

// HandleValidationErrors renders validator tag failures from ctx.ReadJSON.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		validationErrors := make([]validationError, 0, len(errs))
		for _, e := range errs {
			validationErrors = append(validationErrors, validationError{
				Field: e.Field(),
				Tag:   e.Tag(),
				Value: e.Param(),
			})
		}
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{
			"success": false,
			"error":   "Validation Error",
			"message": "One or more fields failed validation.",
			"fields":  validationErrors,
		})
		return
	}
	CreateError(iris.StatusBadRequest, "Validation Error", "Invalid request payload.", ctx)
}

type validationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value string `json:"value,omitempty"`
}
