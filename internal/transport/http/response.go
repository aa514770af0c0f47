package httptransport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	platformerrors "wavecast-server-go/internal/platform/errors"
)

// ErrorBody is the uniform error envelope of the API.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// RespondError writes the error envelope with the given status.
func RespondError(c *gin.Context, httpStatus int, detail string) {
	c.JSON(httpStatus, ErrorBody{Detail: detail})
}

// RespondDomainError maps a domain error to its HTTP representation and
// writes it. Internal faults never leak their cause; the caller gets a
// generic message while the detail stays in the logs.
func RespondDomainError(c *gin.Context, err error) {
	status, detail := TranslateError(err)
	c.Error(err)
	RespondError(c, status, detail)
}

// TranslateError maps domain error kinds onto HTTP statuses. Unclassified
// errors are treated as internal.
func TranslateError(err error) (int, string) {
	switch {
	case platformerrors.IsKind(err, platformerrors.KindValidation):
		return http.StatusBadRequest, platformerrors.Message(err)
	case platformerrors.IsKind(err, platformerrors.KindNotFound):
		return http.StatusNotFound, platformerrors.Message(err)
	case platformerrors.IsKind(err, platformerrors.KindPermission):
		return http.StatusForbidden, platformerrors.Message(err)
	case platformerrors.IsKind(err, platformerrors.KindStorage),
		platformerrors.IsKind(err, platformerrors.KindJob):
		return http.StatusInternalServerError, platformerrors.Message(err)
	default:
		return http.StatusInternalServerError, "An internal error occurred"
	}
}
