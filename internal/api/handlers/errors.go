package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
	"github.com/prefeitura-guaira/app-busca-cep/internal/storage"
)

// ErrorResponse é o corpo das respostas de erro
type ErrorResponse struct {
	Error string `json:"error" example:"nenhum endereço encontrado"`
}

// cepPattern aceita NNNNN-NNN, NNNNN.NNN, NNNNN NNN ou 8 dígitos seguidos
var cepPattern = regexp.MustCompile(`^\d{5}[-. ]?\d{3}$`)

// newValidator cria o validador com a tag cep registrada
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("cep", func(fl validator.FieldLevel) bool {
		return cepPattern.MatchString(fl.Field().String())
	})
	return v
}

// statusFor traduz os erros sentinela para o status HTTP
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, storage.ErrInvalidMode),
		errors.Is(err, storage.ErrInvalidClientID):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, ErrorResponse{Error: "erro interno"})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validação falhou: " + err.Error()})
}
