// Package httperr defines the typed errors the service layer raises and the
// route layer renders. Every error carries the HTTP status it should surface
// as, with a JSON {"detail": message} body.
package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string { return e.Detail }

// BadRequest: malformed/incomplete input or a reference to a related entity
// that does not exist.
func BadRequest(detail string) *Error {
	if detail == "" {
		detail = "Resource is invalid or the request was malformed"
	}
	return &Error{Status: http.StatusBadRequest, Detail: detail}
}

// NotFound: an entity lookup by id or email missed.
func NotFound(detail string) *Error {
	if detail == "" {
		detail = "Resource not found"
	}
	return &Error{Status: http.StatusNotFound, Detail: detail}
}

// Unauthorized: missing/invalid/undecodable token or wrong password.
func Unauthorized(detail string) *Error {
	if detail == "" {
		detail = "Could not validate credentials"
	}
	return &Error{Status: http.StatusUnauthorized, Detail: detail}
}

// Forbidden: authenticated, but as the wrong user kind for the route.
func Forbidden(detail string) *Error {
	if detail == "" {
		detail = "Not allowed for this user"
	}
	return &Error{Status: http.StatusForbidden, Detail: detail}
}

// Respond writes err to the response. Unexpected (untyped) errors are logged
// and surface as a generic 500.
func Respond(c *gin.Context, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"detail": apiErr.Detail})
		return
	}
	log.Printf("unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}
