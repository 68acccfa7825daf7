package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	middlewares "github.com/prefeitura-guaira/app-busca-cep/internal/middleware"
	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
	"github.com/prefeitura-guaira/app-busca-cep/internal/storage"
	"github.com/prefeitura-guaira/app-busca-cep/internal/utils"
)

// FavoritesHandler gerencia os endereços salvos pelo cliente
type FavoritesHandler struct {
	store     storage.FavoritesStore
	validator *validator.Validate
}

func NewFavoritesHandler(store storage.FavoritesStore) *FavoritesHandler {
	return &FavoritesHandler{
		store:     store,
		validator: newValidator(),
	}
}

// FavoriteRequest é o endereço a salvar
type FavoriteRequest struct {
	CEP          string        `json:"cep" validate:"required,cep" example:"14790-000"`
	Street       string        `json:"logradouro" validate:"max=200"`
	Neighborhood string        `json:"bairro" validate:"max=200"`
	Locality     string        `json:"localidade" validate:"max=100"`
	Region       string        `json:"uf" validate:"omitempty,len=2,alpha"`
	Complement   string        `json:"complemento" validate:"max=200"`
	Source       models.Source `json:"origem" validate:"omitempty,oneof=local external"`
}

// FavoritesResponse lista os favoritos do cliente
type FavoritesResponse struct {
	Count     int                `json:"count"`
	Favorites []storage.Favorite `json:"favoritos"`
}

// FavoriteResult informa se o favorito foi criado ou já existia
type FavoriteResult struct {
	Added bool   `json:"adicionado"`
	CEP   string `json:"cep" example:"14790000"`
}

// List godoc
// @Summary Lista favoritos
// @Description Lista os endereços salvos pelo cliente, na ordem em que foram salvos
// @Tags favoritos
// @Produce json
// @Param X-Client-ID header string false "Identificador do cliente"
// @Success 200 {object} FavoritesResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/favoritos [get]
func (h *FavoritesHandler) List(c *gin.Context) {
	favs, err := h.store.ListFavorites(c.Request.Context(), middlewares.GetClientID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if favs == nil {
		favs = []storage.Favorite{}
	}
	c.JSON(http.StatusOK, FavoritesResponse{Count: len(favs), Favorites: favs})
}

// Add godoc
// @Summary Salva favorito
// @Description Salva o endereço; um CEP já salvo não é duplicado e o favorito existente é mantido
// @Tags favoritos
// @Accept json
// @Produce json
// @Param X-Client-ID header string false "Identificador do cliente"
// @Param request body FavoriteRequest true "Endereço"
// @Success 201 {object} FavoriteResult
// @Success 200 {object} FavoriteResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/favoritos [post]
func (h *FavoritesHandler) Add(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidation(c, err)
		return
	}

	fav := storage.Favorite{AddressRecord: models.AddressRecord{
		PostalCode:   req.CEP,
		Street:       req.Street,
		Neighborhood: req.Neighborhood,
		Locality:     req.Locality,
		Region:       req.Region,
		Complement:   req.Complement,
		Source:       req.Source,
	}}
	if fav.Source == "" {
		fav.Source = models.SourceLocal
	}

	added, err := h.store.AddFavorite(c.Request.Context(), middlewares.GetClientID(c), fav)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, FavoriteResult{Added: added, CEP: utils.DigitsOnly(req.CEP)})
}

// Remove godoc
// @Summary Remove favorito
// @Tags favoritos
// @Param X-Client-ID header string false "Identificador do cliente"
// @Param cep path string true "CEP"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/favoritos/{cep} [delete]
func (h *FavoritesHandler) Remove(c *gin.Context) {
	removed, err := h.store.RemoveFavorite(c.Request.Context(), middlewares.GetClientID(c), c.Param("cep"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "favorito não encontrado"})
		return
	}
	c.Status(http.StatusNoContent)
}
