// Package memory fornece implementações em memória dos repositórios,
// usadas nos testes de serviço. Mantêm a mesma semântica observável das
// implementações PostgreSQL: ordenação do mais recente para o mais antigo,
// unicidade de email/slug/token e o mesmo predicado de filtro.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rafabene/contenthub-backend/internal/domain/entities"
)

// clock permite fixar o tempo nos testes
type clock func() time.Time

func defaultClock() time.Time { return time.Now() }

type store struct {
	mu    sync.RWMutex
	now   clock
	users map[string]entities.User
	// seq desempata registros criados no mesmo instante
	seq        int64
	userSeq    map[string]int64
	tokens     map[string]entities.RefreshToken
	contents   map[string]entities.Content
	contentSeq map[string]int64
	categories map[string]entities.Category
}

// Store agrupa os repositórios em memória sobre um único estado compartilhado
type Store struct {
	inner *store

	Users         *UserRepository
	RefreshTokens *RefreshTokenRepository
	Contents      *ContentRepository
	Categories    *CategoryRepository
}

// NewStore cria um Store vazio
func NewStore() *Store {
	inner := &store{
		now:        defaultClock,
		users:      make(map[string]entities.User),
		userSeq:    make(map[string]int64),
		tokens:     make(map[string]entities.RefreshToken),
		contents:   make(map[string]entities.Content),
		contentSeq: make(map[string]int64),
		categories: make(map[string]entities.Category),
	}
	return &Store{
		inner:         inner,
		Users:         &UserRepository{s: inner},
		RefreshTokens: &RefreshTokenRepository{s: inner},
		Contents:      &ContentRepository{s: inner},
		Categories:    &CategoryRepository{s: inner},
	}
}

// SetClock fixa a fonte de tempo (para testes de expiração)
func (s *Store) SetClock(now func() time.Time) {
	s.inner.mu.Lock()
	defer s.inner.mu.Unlock()
	s.inner.now = now
}

func (s *store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func newID() string { return uuid.NewString() }

// sortByRecency ordena ids pela sequência de criação, mais recente primeiro
func sortByRecency(ids []string, seq map[string]int64) {
	sort.Slice(ids, func(i, j int) bool {
		return seq[ids[i]] > seq[ids[j]]
	})
}
