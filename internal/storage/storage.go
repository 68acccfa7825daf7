// Package storage guarda favoritos e histórico de buscas por cliente.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
	"github.com/prefeitura-guaira/app-busca-cep/internal/utils"
)

// HistoryMode separa o histórico da busca por CEP do histórico da busca por endereço
type HistoryMode string

const (
	HistoryCEP     HistoryMode = "cep"
	HistoryAddress HistoryMode = "endereco"
)

// DefaultHistoryMax é quantos termos cada histórico guarda
const DefaultHistoryMax = 10

var (
	ErrInvalidMode     = errors.New("modo de histórico inválido")
	ErrInvalidClientID = errors.New("identificador de cliente inválido")
)

// Favorite é um endereço salvo pelo cliente, identificado pelo CEP
type Favorite struct {
	models.AddressRecord
	SavedAt time.Time `json:"salvo_em"`
}

// FavoritesStore guarda favoritos sem duplicar CEPs
type FavoritesStore interface {
	// AddFavorite retorna false quando o CEP já estava salvo; o favorito existente é mantido
	AddFavorite(ctx context.Context, clientID string, fav Favorite) (bool, error)
	RemoveFavorite(ctx context.Context, clientID, cep string) (bool, error)
	// ListFavorites devolve na ordem em que foram salvos
	ListFavorites(ctx context.Context, clientID string) ([]Favorite, error)
}

// HistoryStore guarda os últimos termos buscados, do mais recente para o mais antigo
type HistoryStore interface {
	AddHistory(ctx context.Context, clientID string, mode HistoryMode, term string) error
	ListHistory(ctx context.Context, clientID string, mode HistoryMode) ([]string, error)
	ClearHistory(ctx context.Context, clientID string, mode HistoryMode) error
}

// Store reúne os dois repositórios
type Store interface {
	FavoritesStore
	HistoryStore
	Ping(ctx context.Context) error
}

// ParseHistoryMode valida o modo vindo da URL
func ParseHistoryMode(s string) (HistoryMode, error) {
	switch HistoryMode(s) {
	case HistoryCEP, HistoryAddress:
		return HistoryMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

func validateClient(clientID string) error {
	if strings.TrimSpace(clientID) == "" || len(clientID) > 64 {
		return ErrInvalidClientID
	}
	return nil
}

// validateFavorite normaliza o CEP do favorito para 8 dígitos
func validateFavorite(fav *Favorite) error {
	fav.PostalCode = utils.DigitsOnly(fav.PostalCode)
	if !utils.IsValidCEP(fav.PostalCode) {
		return fmt.Errorf("%w: CEP deve ter 8 dígitos", models.ErrInvalidInput)
	}
	return nil
}

// normalizeTerm remove espaços extras; termos vazios não entram no histórico
func normalizeTerm(term string) string {
	return strings.Join(strings.Fields(term), " ")
}

func sortFavorites(favs []Favorite) {
	sort.SliceStable(favs, func(i, j int) bool {
		if favs[i].SavedAt.Equal(favs[j].SavedAt) {
			return favs[i].PostalCode < favs[j].PostalCode
		}
		return favs[i].SavedAt.Before(favs[j].SavedAt)
	})
}
