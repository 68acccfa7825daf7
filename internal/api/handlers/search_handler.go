package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	middlewares "github.com/prefeitura-guaira/app-busca-cep/internal/middleware"
	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
	"github.com/prefeitura-guaira/app-busca-cep/internal/storage"
	"github.com/prefeitura-guaira/app-busca-cep/internal/utils"
)

// AddressSearcher é a parte do orquestrador usada pelos endpoints de busca
type AddressSearcher interface {
	Search(ctx context.Context, term string, limit int) (*models.SearchResponse, error)
	SearchAddress(ctx context.Context, q models.AddressQuery) (*models.SearchResponse, error)
	SearchByCode(ctx context.Context, code string) (*models.AddressRecord, error)
	Lookup(ctx context.Context, filter models.AddressFilter, limit int) ([]models.AddressRecord, error)
}

// SearchHandler atende as buscas por termo, por formulário e por CEP
type SearchHandler struct {
	searcher  AddressSearcher
	history   storage.HistoryStore
	validator *validator.Validate
	formCap   int
	city      string
	uf        string
	logger    *zap.Logger
}

// SearchOptions configura o SearchHandler
type SearchOptions struct {
	FormCap int
	City    string
	UF      string
	Logger  *zap.Logger
}

// NewSearchHandler cria o handler. history pode ser nil.
func NewSearchHandler(searcher AddressSearcher, history storage.HistoryStore, opts SearchOptions) *SearchHandler {
	if opts.FormCap <= 0 {
		opts.FormCap = 20
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &SearchHandler{
		searcher:  searcher,
		history:   history,
		validator: newValidator(),
		formCap:   opts.FormCap,
		city:      opts.City,
		uf:        opts.UF,
		logger:    opts.Logger,
	}
}

// SearchRequest são os parâmetros da busca livre
type SearchRequest struct {
	Query string `form:"q" validate:"required,max=200"`
	Limit int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

// AddressRequest são os parâmetros do formulário de endereço e da consulta direta
type AddressRequest struct {
	Street       string `form:"logradouro" validate:"required_without=Neighborhood,max=200"`
	Neighborhood string `form:"bairro" validate:"required_without=Street,max=200"`
	Limit        int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

// CEPRequest é o parâmetro de rota da busca por CEP
type CEPRequest struct {
	CEP string `uri:"cep" validate:"required,cep"`
}

// CEPResponse é o endereço de um CEP com os links de compartilhamento
type CEPResponse struct {
	models.AddressRecord
	FormattedCEP string           `json:"cep_formatado" example:"14790-000"`
	Share        utils.ShareLinks `json:"compartilhar"`
}

// Search godoc
// @Summary Busca livre de endereço
// @Description Busca o termo no logradouro e no bairro da base local e, conforme a política, na API ViaCEP. Os resultados vêm ordenados por similaridade.
// @Tags busca
// @Produce json
// @Param q query string true "Termo de busca (ex: rua oito)"
// @Param limit query int false "Máximo de resultados (padrão: 20)"
// @Param X-Client-ID header string false "Identificador do cliente para o histórico"
// @Success 200 {object} models.SearchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/busca [get]
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondValidation(c, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidation(c, err)
		return
	}

	resp, err := h.searcher.Search(c.Request.Context(), req.Query, h.limit(req.Limit))
	if err != nil {
		respondError(c, err)
		return
	}

	h.recordHistory(c, storage.HistoryAddress, req.Query)
	c.JSON(http.StatusOK, resp)
}

// Address godoc
// @Summary Busca pelo formulário de endereço
// @Description Com logradouro, busca as variantes no logradouro e filtra pelo bairro informado. Só com bairro, busca no campo bairro.
// @Tags busca
// @Produce json
// @Param logradouro query string false "Logradouro (ex: av 1a)"
// @Param bairro query string false "Bairro (ex: Maracá)"
// @Param limit query int false "Máximo de resultados (padrão: 20)"
// @Param X-Client-ID header string false "Identificador do cliente para o histórico"
// @Success 200 {object} models.SearchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/enderecos [get]
func (h *SearchHandler) Address(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondValidation(c, err)
		return
	}
	req.Street = strings.TrimSpace(req.Street)
	req.Neighborhood = strings.TrimSpace(req.Neighborhood)
	if err := h.validator.Struct(req); err != nil {
		respondValidation(c, err)
		return
	}

	resp, err := h.searcher.SearchAddress(c.Request.Context(), models.AddressQuery{
		Street:       req.Street,
		Neighborhood: req.Neighborhood,
		Cap:          h.limit(req.Limit),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.recordHistory(c, storage.HistoryAddress, strings.TrimSpace(req.Street+" "+req.Neighborhood))
	c.JSON(http.StatusOK, resp)
}

// CEP godoc
// @Summary Busca por CEP
// @Description Busca o CEP exato na base local e, sem resultado, na API ViaCEP
// @Tags busca
// @Produce json
// @Param cep path string true "CEP com ou sem hífen (ex: 14790-000)"
// @Param X-Client-ID header string false "Identificador do cliente para o histórico"
// @Success 200 {object} CEPResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/cep/{cep} [get]
func (h *SearchHandler) CEP(c *gin.Context) {
	var req CEPRequest
	if err := c.ShouldBindUri(&req); err != nil {
		respondValidation(c, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidation(c, err)
		return
	}

	rec, err := h.searcher.SearchByCode(c.Request.Context(), req.CEP)
	if err != nil {
		respondError(c, err)
		return
	}

	formatted := utils.FormatCEP(rec.PostalCode)
	h.recordHistory(c, storage.HistoryCEP, formatted)
	c.JSON(http.StatusOK, CEPResponse{
		AddressRecord: *rec,
		FormattedCEP:  formatted,
		Share:         utils.BuildShareLinks(*rec, h.city, h.uf),
	})
}

// Lookup godoc
// @Summary Consulta direta à base local
// @Description Filtra a base local por logradouro e/ou bairro (substring), sem variantes nem ranking
// @Tags busca
// @Produce json
// @Param logradouro query string false "Logradouro"
// @Param bairro query string false "Bairro"
// @Param limit query int false "Máximo de registros (padrão e máximo: 100)"
// @Success 200 {object} models.LookupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/lookup [get]
func (h *SearchHandler) Lookup(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondValidation(c, err)
		return
	}
	req.Street = strings.TrimSpace(req.Street)
	req.Neighborhood = strings.TrimSpace(req.Neighborhood)
	if err := h.validator.Struct(req); err != nil {
		respondValidation(c, err)
		return
	}

	records, err := h.searcher.Lookup(c.Request.Context(), models.AddressFilter{
		Street:       req.Street,
		Neighborhood: req.Neighborhood,
	}, req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.LookupResponse{
		Count:   len(records),
		Results: records,
	})
}

func (h *SearchHandler) limit(requested int) int {
	if requested > 0 {
		return requested
	}
	return h.formCap
}

// recordHistory grava o termo no histórico do cliente; falhas só vão para o log
func (h *SearchHandler) recordHistory(c *gin.Context, mode storage.HistoryMode, term string) {
	if h.history == nil {
		return
	}
	clientID := middlewares.GetClientID(c)
	if clientID == "" {
		return
	}
	if err := h.history.AddHistory(c.Request.Context(), clientID, mode, term); err != nil {
		h.logger.Warn("erro ao gravar histórico",
			zap.String("mode", string(mode)),
			zap.Error(err),
		)
	}
}
