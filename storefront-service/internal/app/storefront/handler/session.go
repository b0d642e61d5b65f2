package handler

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"weblarek/pkg/logger"
	"weblarek/pkg/metrics"
	"weblarek/storefront-service/internal/app/storefront/events"
	"weblarek/storefront-service/internal/app/storefront/presenter"
	"weblarek/storefront-service/internal/app/storefront/state"
)

const sessionCookie = "wl_session"

// Session - одна сессия витрины: собственная шина событий, состояние
// и presenter. Мьютекс сериализует обращения: внутри сессии действует
// модель одной логической нити исполнения, блокировки состоянию не нужны
type Session struct {
	ID        string
	Bus       *events.Bus
	State     *state.AppState
	Presenter *presenter.Presenter

	mu       sync.Mutex
	lastSeen time.Time
}

// Do выполняет функцию под мьютексом сессии
func (s *Session) Do(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	fn()
}

// SessionFactory создает новую сессию витрины
type SessionFactory func(id string) *Session

// SessionStore хранит живые сессии и удаляет простаивающие
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	factory  SessionFactory
	ttl      time.Duration
	done     chan struct{}
}

// NewSessionStore создает хранилище сессий и запускает уборку
func NewSessionStore(factory SessionFactory, ttl time.Duration) *SessionStore {
	store := &SessionStore{
		sessions: make(map[string]*Session),
		factory:  factory,
		ttl:      ttl,
		done:     make(chan struct{}),
	}

	go store.janitor()
	return store
}

// Get возвращает сессию по идентификатору
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Create создает и регистрирует новую сессию
func (s *SessionStore) Create() *Session {
	session := s.factory(uuid.NewString())
	session.lastSeen = time.Now()

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	metrics.ActiveSessions.Inc()
	logger.Debug().Str("session_id", session.ID).Msg("session created")
	return session
}

// Close останавливает уборку сессий
func (s *SessionStore) Close() {
	close(s.done)
}

// janitor периодически удаляет простаивающие сессии
// Шина удаляемой сессии сбрасывается, чтобы подписки не держали память
func (s *SessionStore) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.evictStale()
		}
	}
}

func (s *SessionStore) evictStale() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, session := range s.sessions {
		session.mu.Lock()
		stale := session.lastSeen.Before(cutoff)
		session.mu.Unlock()

		if stale {
			session.Bus.Reset()
			delete(s.sessions, id)
			metrics.ActiveSessions.Dec()
			logger.Debug().Str("session_id", id).Msg("session evicted")
		}
	}
}

// SessionMiddleware привязывает запрос к сессии витрины через cookie
func SessionMiddleware(store *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var session *Session

		if id, err := c.Cookie(sessionCookie); err == nil {
			session, _ = store.Get(id)
		}

		if session == nil {
			session = store.Create()
			c.SetCookie(sessionCookie, session.ID, 0, "/", "", false, true)
		}

		c.Set("session", session)
		c.Next()
	}
}

// sessionFrom достает сессию запроса из контекста Gin
func sessionFrom(c *gin.Context) *Session {
	return c.MustGet("session").(*Session)
}
