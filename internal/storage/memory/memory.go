// Package memory provides map-backed implementations of the storage
// contracts for tests and development runs. All methods copy values on
// the way in and out so callers never share state with the store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/m3rciful/coachbot/internal/domain"
	"github.com/m3rciful/coachbot/internal/storage"
)

// New builds a fully wired in-memory store.
func New() *storage.Store {
	return &storage.Store{
		Users:    &userStore{users: make(map[int64]domain.User)},
		Profiles: &profileStore{profiles: make(map[uuid.UUID]domain.Profile)},
		Progress: &progressStore{},
		Content:  &contentStore{items: make(map[uuid.UUID]domain.ContentItem)},
		Relay:    &relayStore{msgs: make(map[uuid.UUID]domain.RelayedMessage)},
	}
}

type userStore struct {
	mu    sync.RWMutex
	users map[int64]domain.User
}

func (s *userStore) Get(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (s *userStore) Create(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = *u
	return nil
}

func (s *userStore) Update(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return storage.ErrNotFound
	}
	s.users[u.ID] = *u
	return nil
}

func (s *userStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

type profileStore struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]domain.Profile
}

func (s *profileStore) Get(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (s *profileStore) ByUser(_ context.Context, userID int64) ([]domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var profiles []domain.Profile
	for _, p := range s.profiles {
		if p.UserID == userID {
			profiles = append(profiles, p)
		}
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
	})
	return profiles, nil
}

func (s *profileStore) Create(_ context.Context, p *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = *p
	return nil
}

func (s *profileStore) Update(_ context.Context, p *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.ID]; !ok {
		return storage.ErrNotFound
	}
	s.profiles[p.ID] = *p
	return nil
}

func (s *profileStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.profiles, id)
	return nil
}

type progressStore struct {
	mu       sync.RWMutex
	weights  []domain.WeightEntry
	meals    []domain.MealEntry
	workouts []domain.WorkoutEntry
}

func (s *progressStore) AppendWeight(_ context.Context, e *domain.WeightEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights = append(s.weights, *e)
	return nil
}

func (s *progressStore) WeightHistory(_ context.Context, profileID uuid.UUID) ([]domain.WeightEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []domain.WeightEntry
	for _, e := range s.weights {
		if e.ProfileID == profileID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *progressStore) AppendMeal(_ context.Context, e *domain.MealEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meals = append(s.meals, *e)
	return nil
}

func (s *progressStore) Meals(_ context.Context, profileID uuid.UUID, limit int) ([]domain.MealEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []domain.MealEntry
	for i := len(s.meals) - 1; i >= 0 && len(entries) < limit; i-- {
		if s.meals[i].ProfileID == profileID {
			entries = append(entries, s.meals[i])
		}
	}
	return entries, nil
}

func (s *progressStore) AppendWorkout(_ context.Context, e *domain.WorkoutEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workouts = append(s.workouts, *e)
	return nil
}

func (s *progressStore) Workouts(_ context.Context, profileID uuid.UUID, limit int) ([]domain.WorkoutEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []domain.WorkoutEntry
	for i := len(s.workouts) - 1; i >= 0 && len(entries) < limit; i-- {
		if s.workouts[i].ProfileID == profileID {
			entries = append(entries, s.workouts[i])
		}
	}
	return entries, nil
}

type contentStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]domain.ContentItem
}

func (s *contentStore) Get(_ context.Context, id uuid.UUID) (*domain.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &item, nil
}

func (s *contentStore) Create(_ context.Context, item *domain.ContentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = *item
	return nil
}

func (s *contentStore) ListByKind(_ context.Context, kind domain.ContentKind) ([]domain.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []domain.ContentItem
	for _, item := range s.items {
		if item.Kind == kind {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (s *contentStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

type relayStore struct {
	mu   sync.RWMutex
	msgs map[uuid.UUID]domain.RelayedMessage
}

func (s *relayStore) Create(_ context.Context, m *domain.RelayedMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs[m.ID] = *m
	return nil
}

func (s *relayStore) Get(_ context.Context, id uuid.UUID) (*domain.RelayedMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.msgs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &m, nil
}

func (s *relayStore) Unread(_ context.Context) ([]domain.RelayedMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var msgs []domain.RelayedMessage
	for _, m := range s.msgs {
		if !m.Read {
			msgs = append(msgs, m)
		}
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].CreatedAt.Before(msgs[j].CreatedAt) })
	return msgs, nil
}

func (s *relayStore) MarkRead(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.msgs[id]
	if !ok {
		return storage.ErrNotFound
	}
	m.Read = true
	s.msgs[id] = m
	return nil
}
