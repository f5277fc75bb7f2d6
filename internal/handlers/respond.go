package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Drumblow/modularcompany-sub001/internal/apperrors"
	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	"github.com/Drumblow/modularcompany-sub001/internal/middleware"
)

// respondError translates a service error into the HTTP response. Messages
// shown to users are in Portuguese; internals are only logged.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		logger.Warn("Request failed", slog.Int("status", appErr.Code), slog.String("error", appErr.Error()))
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrManagerWithoutCompany):
		c.JSON(http.StatusForbidden, gin.H{"error": "Gerente sem empresa associada. Contate um administrador."})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos.", "detail": rootMessage(err)})
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Operação não permitida no estado atual.", "detail": rootMessage(err)})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas."})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Acesso negado."})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recurso não encontrado."})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflito com o estado atual.", "detail": rootMessage(err)})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
	}
}

// rootMessage surfaces the wrapped sentinel chain without internal details.
func rootMessage(err error) string {
	return err.Error()
}

// respondBindingError translates a gin binding failure into a 400 with
// field-level detail when the error came from the validator.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos.", "fields": details})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Formato de requisição inválido."})
}

// mustPrincipal fetches the authenticated principal; the auth middleware
// guarantees it on /api/v1 routes, so a miss is a programming error.
func mustPrincipal(c *gin.Context) (domain.Principal, bool) {
	pr, found := middleware.GetPrincipalFromContext(c)
	if !found {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Principal missing from authenticated request")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Autenticação necessária."})
		return domain.Principal{}, false
	}
	return pr, true
}
