package testutil

import (
	"github.com/abdougarali/Koutob-Library-sub000/middleware"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
)

// MockValidatedClaims creates a mock ValidatedClaims for testing
func MockValidatedClaims(subject, issuer string, scopes []string) *validator.ValidatedClaims {
	scopeString := ""
	if len(scopes) > 0 {
		for i, scope := range scopes {
			if i > 0 {
				scopeString += " "
			}
			scopeString += scope
		}
	}

	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  issuer,
			Subject: subject,
		},
		CustomClaims: &middleware.CustomClaims{
			Scope: scopeString,
		},
	}
}

// SetMockAuthContext sets up a mock authenticated admin context for testing
func SetMockAuthContext(c *gin.Context, actorID string, issuer string, scopes []string) {
	claims := MockValidatedClaims(actorID, issuer, scopes)
	c.Set("actor_id", actorID)
	c.Set("validated_claims", claims)
}
