package impl

import (
	"context"
	"sort"
	"strings"
	"sync"

	"eshop/internal/domain"

	"github.com/google/uuid"
)

// memoryStore is an in-memory dataStore with snapshot/rollback semantics so
// the transactional paths behave like the real store.
type memoryStore struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*domain.User
	emailIndex map[string]uuid.UUID
	orders     map[uuid.UUID]*domain.Order
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:      make(map[uuid.UUID]*domain.User),
		emailIndex: make(map[string]uuid.UUID),
		orders:     make(map[uuid.UUID]*domain.Order),
	}
}

type storeSnapshot struct {
	users      map[uuid.UUID]*domain.User
	emailIndex map[string]uuid.UUID
	orders     map[uuid.UUID]*domain.Order
}

func (m *memoryStore) WithTx(ctx context.Context, fn func(tx storeTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.snapshot()
	if err := fn(&memoryTx{store: m}); err != nil {
		m.restore(snapshot)
		return err
	}
	return nil
}

func (m *memoryStore) snapshot() storeSnapshot {
	users := make(map[uuid.UUID]*domain.User, len(m.users))
	for id, u := range m.users {
		cp := *u
		users[id] = &cp
	}
	emails := make(map[string]uuid.UUID, len(m.emailIndex))
	for k, v := range m.emailIndex {
		emails[k] = v
	}
	orders := make(map[uuid.UUID]*domain.Order, len(m.orders))
	for id, o := range m.orders {
		cp := *o
		orders[id] = &cp
	}
	return storeSnapshot{users: users, emailIndex: emails, orders: orders}
}

func (m *memoryStore) restore(s storeSnapshot) {
	m.users = s.users
	m.emailIndex = s.emailIndex
	m.orders = s.orders
}

// getUser reads outside any transaction, for assertions.
func (m *memoryStore) getUser(id uuid.UUID) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp
	}
	return nil
}

func (m *memoryStore) getUserByEmail(email string) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.emailIndex[strings.ToLower(email)]; ok {
		cp := *m.users[id]
		return &cp
	}
	return nil
}

type memoryTx struct{ store *memoryStore }

func (t *memoryTx) Users() userStore   { return &memoryUserStore{store: t.store} }
func (t *memoryTx) Orders() orderStore { return &memoryOrderStore{store: t.store} }

type memoryUserStore struct{ store *memoryStore }

func (s *memoryUserStore) Create(_ context.Context, u *domain.User) error {
	key := strings.ToLower(u.Email)
	if _, exists := s.store.emailIndex[key]; exists {
		return domain.ErrDuplicateUser
	}
	cp := *u
	s.store.users[u.ID] = &cp
	s.store.emailIndex[key] = u.ID
	return nil
}

func (s *memoryUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := s.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memoryUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	id, ok := s.store.emailIndex[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *s.store.users[id]
	return &cp, nil
}

func (s *memoryUserStore) Update(_ context.Context, u *domain.User) error {
	old, ok := s.store.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if !strings.EqualFold(old.Email, u.Email) {
		if _, exists := s.store.emailIndex[strings.ToLower(u.Email)]; exists {
			return domain.ErrDuplicateUser
		}
		delete(s.store.emailIndex, strings.ToLower(old.Email))
		s.store.emailIndex[strings.ToLower(u.Email)] = u.ID
	}
	cp := *u
	s.store.users[u.ID] = &cp
	return nil
}

func (s *memoryUserStore) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(s.store.users))
	for _, u := range s.store.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type memoryOrderStore struct{ store *memoryStore }

func (s *memoryOrderStore) Create(_ context.Context, o *domain.Order) error {
	cp := *o
	s.store.orders[o.ID] = &cp
	return nil
}

func (s *memoryOrderStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	o, ok := s.store.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *memoryOrderStore) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range s.store.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// stubMailer records sends and fails on demand.
type stubMailer struct {
	err   error
	calls []stubMailerCall
}

type stubMailerCall struct {
	subject string
	to      []string
	body    string
}

func (m *stubMailer) Send(_ context.Context, subject string, to []string, body string) error {
	m.calls = append(m.calls, stubMailerCall{subject: subject, to: to, body: body})
	return m.err
}

// stubNotifier satisfies both alert interfaces.
type stubNotifier struct {
	userAlerts  []*domain.User
	orderAlerts []string // usernames
	delivered   bool
}

func (n *stubNotifier) NewUserAlert(_ context.Context, u *domain.User) bool {
	n.userAlerts = append(n.userAlerts, u)
	return n.delivered
}

func (n *stubNotifier) NewOrderAlert(_ context.Context, username string, _ *domain.Order) bool {
	n.orderAlerts = append(n.orderAlerts, username)
	return n.delivered
}
