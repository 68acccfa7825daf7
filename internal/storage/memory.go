package storage

import (
	"context"
	"sync"
	"time"

	"github.com/prefeitura-guaira/app-busca-cep/internal/utils"
)

// MemoryStore guarda tudo em memória; usado quando não há Redis configurado
type MemoryStore struct {
	mu         sync.RWMutex
	favorites  map[string][]Favorite
	history    map[string][]string
	historyMax int
	now        func() time.Time
}

// NewMemoryStore cria o store em memória
func NewMemoryStore(historyMax int) *MemoryStore {
	if historyMax <= 0 {
		historyMax = DefaultHistoryMax
	}
	return &MemoryStore{
		favorites:  make(map[string][]Favorite),
		history:    make(map[string][]string),
		historyMax: historyMax,
		now:        time.Now,
	}
}

// Ping nunca falha
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// AddFavorite guarda o favorito; false se o CEP já existia
func (m *MemoryStore) AddFavorite(ctx context.Context, clientID string, fav Favorite) (bool, error) {
	if err := validateClient(clientID); err != nil {
		return false, err
	}
	if err := validateFavorite(&fav); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, f := range m.favorites[clientID] {
		if f.PostalCode == fav.PostalCode {
			return false, nil
		}
	}
	if fav.SavedAt.IsZero() {
		fav.SavedAt = m.now()
	}
	m.favorites[clientID] = append(m.favorites[clientID], fav)
	return true, nil
}

// RemoveFavorite apaga o favorito; false se o CEP não estava salvo
func (m *MemoryStore) RemoveFavorite(ctx context.Context, clientID, cep string) (bool, error) {
	if err := validateClient(clientID); err != nil {
		return false, err
	}

	cep = utils.DigitsOnly(cep)

	m.mu.Lock()
	defer m.mu.Unlock()

	favs := m.favorites[clientID]
	for i, f := range favs {
		if f.PostalCode == cep {
			m.favorites[clientID] = append(favs[:i:i], favs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListFavorites retorna uma cópia dos favoritos do cliente
func (m *MemoryStore) ListFavorites(ctx context.Context, clientID string) ([]Favorite, error) {
	if err := validateClient(clientID); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Favorite, len(m.favorites[clientID]))
	copy(out, m.favorites[clientID])
	return out, nil
}

// AddHistory move o termo para o topo e descarta o excedente
func (m *MemoryStore) AddHistory(ctx context.Context, clientID string, mode HistoryMode, term string) error {
	key, err := historyKey(clientID, mode)
	if err != nil {
		return err
	}
	term = normalizeTerm(term)
	if term == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	items := []string{term}
	for _, h := range m.history[key] {
		if h != term {
			items = append(items, h)
		}
	}
	if len(items) > m.historyMax {
		items = items[:m.historyMax]
	}
	m.history[key] = items
	return nil
}

// ListHistory retorna uma cópia do histórico do modo
func (m *MemoryStore) ListHistory(ctx context.Context, clientID string, mode HistoryMode) ([]string, error) {
	key, err := historyKey(clientID, mode)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.history[key]))
	copy(out, m.history[key])
	return out, nil
}

// ClearHistory apaga o histórico do modo
func (m *MemoryStore) ClearHistory(ctx context.Context, clientID string, mode HistoryMode) error {
	key, err := historyKey(clientID, mode)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.history, key)
	return nil
}

func historyKey(clientID string, mode HistoryMode) (string, error) {
	if err := validateClient(clientID); err != nil {
		return "", err
	}
	if _, err := ParseHistoryMode(string(mode)); err != nil {
		return "", err
	}
	return clientID + ":" + string(mode), nil
}
