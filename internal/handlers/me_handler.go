package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
)

type ScopeResolver interface {
	AccessibleCompanies(ctx context.Context, principal access.Principal) (access.Scope, error)
}

type MeHandler struct {
	scopes ScopeResolver
}

func NewMeHandler(scopes ScopeResolver) *MeHandler {
	return &MeHandler{scopes: scopes}
}

// GetMe devolve o principal do token e as empresas que ele enxerga.
func (h *MeHandler) GetMe(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	scope, err := h.scopes.AccessibleCompanies(c.Request.Context(), principal)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	companies := scope.CompanyIDs
	if companies == nil {
		companies = []uint{}
	}

	c.JSON(http.StatusOK, gin.H{
		"usuario_id":    principal.UserID,
		"pessoa_id":     principal.PersonID,
		"administrador": scope.All,
		"empresas":      companies,
	})
}
