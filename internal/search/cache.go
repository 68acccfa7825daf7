package search

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
	"github.com/prefeitura-guaira/app-busca-cep/internal/observability"
)

// SearchCache armazena resultados de busca em memória
type SearchCache struct {
	data    map[string]*CachedResult
	mu      sync.RWMutex
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

// CachedResult representa um resultado em cache
type CachedResult struct {
	Response  *models.SearchResponse
	Timestamp time.Time
}

// NewSearchCache cria um novo cache de busca
func NewSearchCache(ttl time.Duration, maxSize int) *SearchCache {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	if maxSize <= 0 {
		maxSize = 500
	}
	return &SearchCache{
		data:    make(map[string]*CachedResult),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get busca um resultado no cache
func (c *SearchCache) Get(key string) *models.SearchResponse {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if cached, ok := c.data[key]; ok {
		if c.now().Sub(cached.Timestamp) < c.ttl {
			observability.CacheTotal.WithLabelValues("search", "hit").Inc()
			return cached.Response
		}
	}
	observability.CacheTotal.WithLabelValues("search", "miss").Inc()
	return nil
}

// Set armazena um resultado no cache
func (c *SearchCache) Set(key string, response *models.SearchResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Limpa entradas expiradas se cache está cheio
	if len(c.data) >= c.maxSize {
		c.cleanup()
	}

	c.data[key] = &CachedResult{
		Response:  response,
		Timestamp: c.now(),
	}
}

// GenerateKey gera uma chave única a partir dos parâmetros da busca
func (c *SearchCache) GenerateKey(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(hash[:16])
}

// cleanup remove entradas expiradas
func (c *SearchCache) cleanup() {
	now := c.now()
	for key, cached := range c.data {
		if now.Sub(cached.Timestamp) > c.ttl {
			delete(c.data, key)
		}
	}

	// Se ainda está cheio, remove as mais antigas
	if len(c.data) >= c.maxSize {
		oldest := now
		oldestKey := ""
		for key, cached := range c.data {
			if oldestKey == "" || cached.Timestamp.Before(oldest) {
				oldest = cached.Timestamp
				oldestKey = key
			}
		}
		if oldestKey != "" {
			delete(c.data, oldestKey)
		}
	}
}

// Clear limpa todo o cache
func (c *SearchCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*CachedResult)
}

// Stats retorna estatísticas do cache
func (c *SearchCache) Stats() (size int, expired int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	size = len(c.data)
	now := c.now()
	for _, cached := range c.data {
		if now.Sub(cached.Timestamp) > c.ttl {
			expired++
		}
	}
	return
}
