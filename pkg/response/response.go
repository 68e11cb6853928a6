package response

import (
	"log"
	"net/http"

	"anoa.com/magangmatch/internal/model"
	"anoa.com/magangmatch/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// Identity is the authenticated caller as supplied by the auth middleware.
// The core only ever reads it; it never authenticates.
type Identity struct {
	Role  string
	Email string
}

// GetIdentity retrieves the authenticated identity from the context
func GetIdentity(c *gin.Context) (Identity, error) {
	email := c.GetString("email")
	role := c.GetString("role")
	if email == "" || role == "" {
		return Identity{}, apperror.ErrUnauthorized
	}
	if role != model.RoleCandidate && role != model.RoleCompany {
		return Identity{}, apperror.ErrUnauthorized
	}
	return Identity{Role: role, Email: email}, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
