package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prefeitura-guaira/app-busca-cep/internal/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "busca-cep:"

// RedisStore guarda favoritos em um hash (campo = CEP) e cada histórico em uma lista
type RedisStore struct {
	rdb        redis.UniversalClient
	historyMax int
	logger     *zap.Logger
	now        func() time.Time
}

// NewRedisStore cria o store sobre um cliente já configurado
func NewRedisStore(rdb redis.UniversalClient, historyMax int, logger *zap.Logger) *RedisStore {
	if historyMax <= 0 {
		historyMax = DefaultHistoryMax
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{
		rdb:        rdb,
		historyMax: historyMax,
		logger:     logger,
		now:        time.Now,
	}
}

// Ping verifica a conexão com o Redis
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func favoritesKey(clientID string) string {
	return keyPrefix + "favoritos:" + clientID
}

// AddFavorite grava o favorito no hash do cliente; false se o CEP já existia
func (s *RedisStore) AddFavorite(ctx context.Context, clientID string, fav Favorite) (bool, error) {
	if err := validateClient(clientID); err != nil {
		return false, err
	}
	if err := validateFavorite(&fav); err != nil {
		return false, err
	}
	if fav.SavedAt.IsZero() {
		fav.SavedAt = s.now().UTC()
	}

	data, err := json.Marshal(fav)
	if err != nil {
		return false, fmt.Errorf("erro ao serializar favorito: %w", err)
	}

	added, err := s.rdb.HSetNX(ctx, favoritesKey(clientID), fav.PostalCode, data).Result()
	if err != nil {
		return false, fmt.Errorf("erro ao salvar favorito: %w", err)
	}
	return added, nil
}

// RemoveFavorite apaga o favorito; false se o CEP não estava salvo
func (s *RedisStore) RemoveFavorite(ctx context.Context, clientID, cep string) (bool, error) {
	if err := validateClient(clientID); err != nil {
		return false, err
	}

	n, err := s.rdb.HDel(ctx, favoritesKey(clientID), utils.DigitsOnly(cep)).Result()
	if err != nil {
		return false, fmt.Errorf("erro ao remover favorito: %w", err)
	}
	return n > 0, nil
}

// ListFavorites retorna os favoritos do cliente na ordem em que foram salvos
func (s *RedisStore) ListFavorites(ctx context.Context, clientID string) ([]Favorite, error) {
	if err := validateClient(clientID); err != nil {
		return nil, err
	}

	values, err := s.rdb.HGetAll(ctx, favoritesKey(clientID)).Result()
	if err != nil {
		return nil, fmt.Errorf("erro ao listar favoritos: %w", err)
	}

	favs := make([]Favorite, 0, len(values))
	for cep, raw := range values {
		var fav Favorite
		if err := json.Unmarshal([]byte(raw), &fav); err != nil {
			s.logger.Warn("favorito corrompido ignorado", zap.String("cep", cep), zap.Error(err))
			continue
		}
		favs = append(favs, fav)
	}
	sortFavorites(favs)
	return favs, nil
}

func (s *RedisStore) historyKey(clientID string, mode HistoryMode) (string, error) {
	key, err := historyKey(clientID, mode)
	if err != nil {
		return "", err
	}
	return keyPrefix + "historico:" + key, nil
}

// AddHistory move o termo para o topo da lista e corta o excedente numa única transação
func (s *RedisStore) AddHistory(ctx context.Context, clientID string, mode HistoryMode, term string) error {
	key, err := s.historyKey(clientID, mode)
	if err != nil {
		return err
	}
	term = normalizeTerm(term)
	if term == "" {
		return nil
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, key, 0, term)
		pipe.LPush(ctx, key, term)
		pipe.LTrim(ctx, key, 0, int64(s.historyMax-1))
		return nil
	})
	if err != nil {
		return fmt.Errorf("erro ao salvar histórico: %w", err)
	}
	return nil
}

// ListHistory retorna o histórico do modo, do termo mais recente ao mais antigo
func (s *RedisStore) ListHistory(ctx context.Context, clientID string, mode HistoryMode) ([]string, error) {
	key, err := s.historyKey(clientID, mode)
	if err != nil {
		return nil, err
	}

	items, err := s.rdb.LRange(ctx, key, 0, int64(s.historyMax-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("erro ao listar histórico: %w", err)
	}
	return items, nil
}

// ClearHistory apaga o histórico do modo
func (s *RedisStore) ClearHistory(ctx context.Context, clientID string, mode HistoryMode) error {
	key, err := s.historyKey(clientID, mode)
	if err != nil {
		return err
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("erro ao limpar histórico: %w", err)
	}
	return nil
}
