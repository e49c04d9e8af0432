package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"mapify/internal/models"
)

// NewMemoryRepositories — хранилище в памяти процесса, живёт до рестарта.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Users:          NewMemoryUserRepository(),
		PasswordResets: NewMemoryPasswordResetRepository(),
		Places:         NewMemoryPlaceRepository(),
	}
}

type MemoryUserRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*models.User
	byEmail map[string]int64
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		nextID:  1,
		byID:    make(map[int64]*models.User),
		byEmail: make(map[string]int64),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *MemoryUserRepository) CreateUser(_ context.Context, user *models.User) error {
	key := emailKey(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[key]; taken {
		return ErrDuplicateEmail
	}

	user.ID = r.nextID
	r.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[key] = user.ID
	return nil
}

func (r *MemoryUserRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, ErrNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *MemoryUserRepository) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := *stored
	return &u, nil
}

func (r *MemoryUserRepository) UpdateUserPassword(_ context.Context, userID int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[userID]
	if !ok {
		return ErrNotFound
	}
	stored.PasswordHash = passwordHash
	return nil
}

func (r *MemoryUserRepository) CountUsers(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

type MemoryPasswordResetRepository struct {
	mu     sync.Mutex
	byHash map[string]*models.PasswordResetToken
	byUser map[int64]string
}

func NewMemoryPasswordResetRepository() *MemoryPasswordResetRepository {
	return &MemoryPasswordResetRepository{
		byHash: make(map[string]*models.PasswordResetToken),
		byUser: make(map[int64]string),
	}
}

func (r *MemoryPasswordResetRepository) Replace(_ context.Context, token *models.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byUser[token.UserID]; ok {
		delete(r.byHash, prev)
	}
	stored := *token
	r.byHash[token.TokenHash] = &stored
	r.byUser[token.UserID] = token.TokenHash
	return nil
}

func (r *MemoryPasswordResetRepository) Take(_ context.Context, tokenHash string, now time.Time) (*models.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byHash[tokenHash]
	if !ok || stored.Expired(now) {
		return nil, ErrNotFound
	}
	delete(r.byHash, tokenHash)
	delete(r.byUser, stored.UserID)

	t := *stored
	return &t, nil
}

type MemoryPlaceRepository struct {
	mu     sync.RWMutex
	nextID int64
	places map[int64]*models.Place
}

func NewMemoryPlaceRepository() *MemoryPlaceRepository {
	return &MemoryPlaceRepository{
		nextID: 1,
		places: make(map[int64]*models.Place),
	}
}

func (r *MemoryPlaceRepository) ListPlaces(_ context.Context) ([]*models.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Place, 0, len(r.places))
	for _, p := range r.places {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryPlaceRepository) GetPlace(_ context.Context, id int64) (*models.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.places[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *stored
	return &cp, nil
}

func (r *MemoryPlaceRepository) CreatePlace(_ context.Context, place *models.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	place.ID = r.nextID
	r.nextID++

	stored := *place
	r.places[place.ID] = &stored
	return nil
}

func (r *MemoryPlaceRepository) UpdatePlace(_ context.Context, id int64, in models.PlaceInput) (*models.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.places[id]
	if !ok {
		return nil, ErrNotFound
	}
	stored.Merge(in)

	cp := *stored
	return &cp, nil
}

func (r *MemoryPlaceRepository) DeletePlace(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.places[id]; !ok {
		return ErrNotFound
	}
	delete(r.places, id)
	return nil
}

func (r *MemoryPlaceRepository) CountPlaces(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.places), nil
}
