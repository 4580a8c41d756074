package routes

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/atharva1010/awaswala/services"
	"github.com/atharva1010/awaswala/utils"
	"github.com/kataras/iris/v12"
)

// handleServiceError translates the service error taxonomy into HTTP
// responses. Unknown errors become an opaque 500; details stay server-side.
func handleServiceError(err error, ctx iris.Context) {
	var validationErr *services.ValidationError
	var conflictErr *services.ConflictError
	var notFoundErr *services.NotFoundError
	var authErr *services.AuthError
	var transitionErr *services.InvalidTransitionError
	var upstreamErr *services.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		utils.CreateError(iris.StatusBadRequest, "Validation Error", validationErr.Error(), ctx)
	case errors.As(err, &conflictErr):
		utils.CreateError(iris.StatusConflict, "Conflict", conflictMessage(conflictErr.Field), ctx)
	case errors.As(err, &notFoundErr):
		utils.CreateError(iris.StatusNotFound, "Not Found", notFoundErr.Error(), ctx)
	case errors.As(err, &authErr):
		if authErr.Status == "" {
			utils.CreateError(iris.StatusUnauthorized, "Credentials Error", authErr.Message, ctx)
			return
		}
		ctx.StopWithJSON(iris.StatusForbidden, iris.Map{
			"success":         false,
			"error":           "Forbidden",
			"message":         authErr.Message,
			"status":          authErr.Status,
			"rejectionReason": authErr.RejectionReason,
		})
	case errors.As(err, &transitionErr):
		utils.CreateError(iris.StatusBadRequest, "Invalid Transition", transitionErr.Error(), ctx)
	case errors.As(err, &upstreamErr):
		utils.CreateError(iris.StatusInternalServerError, "Upstream Error", "Error uploading documents to cloud storage.", ctx)
	default:
		utils.CreateInternalServerError(ctx)
	}
}

func conflictMessage(field string) string {
	switch field {
	case "email":
		return "Agent with this email already exists"
	case "aadharNumber":
		return "Agent with this Aadhar number already exists"
	case "phone":
		return "Agent with this phone number already exists"
	default:
		return "Record already exists"
	}
}

// readFormFile reads one uploaded file into memory. A missing file is not
// an error here; validation of required documents happens in the services.
// Any other failure to read the part is reported to the caller.
func readFormFile(ctx iris.Context, name string) ([]byte, error) {
	_, header, err := ctx.FormFile(name)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	return readMultipartFile(header)
}

func readFormFiles(ctx iris.Context, name string) ([][]byte, error) {
	form := ctx.Request().MultipartForm
	if form == nil {
		return nil, nil
	}
	headers := form.File[name]
	files := make([][]byte, 0, len(headers))
	for _, header := range headers {
		data, err := readMultipartFile(header)
		if err != nil {
			return nil, err
		}
		files = append(files, data)
	}
	return files, nil
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
