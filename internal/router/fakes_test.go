package router

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/iliyamo/little-lemon/internal/model"
	"github.com/iliyamo/little-lemon/internal/queue"
	"github.com/iliyamo/little-lemon/internal/repository"
	"github.com/iliyamo/little-lemon/internal/utils"
)

// memMenu is an in-memory MenuItemStore.  Ids are never reused.
type memMenu struct {
	mu   sync.Mutex
	next uint64
	rows map[uint64]model.MenuItem
	err  error // returned by every call when set
}

func newMemMenu() *memMenu { return &memMenu{rows: map[uint64]model.MenuItem{}} }

func (s *memMenu) List(context.Context) ([]model.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]model.MenuItem, 0, len(s.rows))
	for _, m := range s.rows {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memMenu) GetByID(_ context.Context, id uint64) (*model.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	m, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrMenuItemNotFound
	}
	return &m, nil
}

func (s *memMenu) Create(_ context.Context, m *model.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.next++
	m.ID = s.next
	s.rows[m.ID] = *m
	return nil
}

func (s *memMenu) Update(_ context.Context, m *model.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.rows[m.ID]; !ok {
		return repository.ErrMenuItemNotFound
	}
	s.rows[m.ID] = *m
	return nil
}

func (s *memMenu) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.rows[id]; !ok {
		return repository.ErrMenuItemNotFound
	}
	delete(s.rows, id)
	return nil
}

// memBookings is an in-memory BookingStore.
type memBookings struct {
	mu   sync.Mutex
	next uint64
	rows map[uint64]model.Booking
}

func newMemBookings() *memBookings { return &memBookings{rows: map[uint64]model.Booking{}} }

func (s *memBookings) List(context.Context) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Booking, 0, len(s.rows))
	for _, b := range s.rows {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memBookings) GetByID(_ context.Context, id uint64) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	return &b, nil
}

func (s *memBookings) Create(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	b.ID = s.next
	s.rows[b.ID] = *b
	return nil
}

func (s *memBookings) Update(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[b.ID]; !ok {
		return repository.ErrBookingNotFound
	}
	s.rows[b.ID] = *b
	return nil
}

func (s *memBookings) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return repository.ErrBookingNotFound
	}
	delete(s.rows, id)
	return nil
}

// memUsers is an in-memory UserStore.
type memUsers struct {
	mu     sync.Mutex
	next   uint64
	byID   map[uint64]model.User
	byName map[string]uint64
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uint64]model.User{}, byName: map[string]uint64{}}
}

func (s *memUsers) Create(_ context.Context, username, email, password string, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[username]; ok {
		return 0, repository.ErrUsernameExists
	}
	s.next++
	s.byID[s.next] = model.User{ID: s.next, Username: username, Email: email, PasswordHash: hash, IsActive: true}
	s.byName[username] = s.next
	return s.next, nil
}

func (s *memUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byName[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u := s.byID[id]
	return &u, nil
}

func (s *memUsers) GetByID(_ context.Context, id uint64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (s *memUsers) deactivate(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.byName[username]
	u := s.byID[id]
	u.IsActive = false
	s.byID[id] = u
}

// memTokens is an in-memory TokenStore holding one key per user.
type memTokens struct {
	mu     sync.Mutex
	users  *memUsers
	byKey  map[string]uint64
	byUser map[uint64]string
}

func newMemTokens(users *memUsers) *memTokens {
	return &memTokens{users: users, byKey: map[string]uint64{}, byUser: map[uint64]string{}}
}

func (s *memTokens) Create(_ context.Context, userID uint64, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byUser[userID]; ok {
		return repository.ErrTokenExists
	}
	s.byKey[key] = userID
	s.byUser[userID] = key
	return nil
}

func (s *memTokens) KeyForUser(_ context.Context, userID uint64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok := s.byUser[userID]
	if !ok {
		return "", repository.ErrTokenNotFound
	}
	return key, nil
}

func (s *memTokens) UserByKey(ctx context.Context, key string) (*model.User, error) {
	s.mu.Lock()
	id, ok := s.byKey[key]
	s.mu.Unlock()
	if !ok {
		return nil, repository.ErrTokenNotFound
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil || !u.IsActive {
		return nil, repository.ErrTokenNotFound
	}
	return u, nil
}

func (s *memTokens) DeleteByKey(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byKey[key]
	if !ok {
		return repository.ErrTokenNotFound
	}
	delete(s.byKey, key)
	delete(s.byUser, id)
	return nil
}

// memEvents records published events.
type memEvents struct {
	mu     sync.Mutex
	events []queue.BookingEvent
	err    error
}

func (p *memEvents) PublishBookingEvent(_ context.Context, ev queue.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *memEvents) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

var errStoreDown = errors.New("store down")
