package utils

import (
	"errors"

	"github.com/atharva1010/awaswala/models"
	"github.com/atharva1010/awaswala/storage"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

// UserIDFromTokenMiddleware extracts the subject id from the JWT and stores
// it in the request context for downstream handlers.
func UserIDFromTokenMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// AgentOnlyMiddleware gates agent-privileged routes. The role claim is not
// trusted on its own: the agent row is re-read on every request and must
// still be approved and verified, so an admin suspension cuts off access
// without waiting for token expiry.
func AgentOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != RoleAgent {
		CreateError(iris.StatusForbidden, "Forbidden", "Access denied. Agent role required.", ctx)
		return
	}

	var agent models.Agent
	if err := storage.DB.First(&agent, claims.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			CreateError(iris.StatusUnauthorized, "Unauthorized", "Agent not found. Token invalid.", ctx)
			return
		}
		CreateInternalServerError(ctx)
		return
	}

	if !agent.IsVerified || agent.Status != models.AgentStatusApproved {
		CreateError(iris.StatusForbidden, "Forbidden", "Agent account not verified. Please contact admin.", ctx)
		return
	}

	ctx.Values().Set("agent", &agent)
	ctx.Next()
}

// AdminOnlyMiddleware ensures the requester carries the admin role.
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != RoleAdmin {
		CreateError(iris.StatusForbidden, "Forbidden", "Access denied. Admin role required.", ctx)
		return
	}
	ctx.Values().Set("adminID", claims.ID)
	ctx.Next()
}

// AgentFromContext returns the agent loaded by AgentOnlyMiddleware.
func AgentFromContext(ctx iris.Context) *models.Agent {
	if v := ctx.Values().Get("agent"); v != nil {
		if agent, ok := v.(*models.Agent); ok {
			return agent
		}
	}
	return nil
}
