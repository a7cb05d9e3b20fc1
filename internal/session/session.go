package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vlogify/internal/config"
	"vlogify/internal/models"
	"vlogify/internal/store"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrUserNotFound       = errors.New("user not found")
)

// Manager tracks the current user over the content store's users
// collection. Anonymous is represented by a nil current user; every
// transition is mirrored so a restart restores the session.
type Manager struct {
	mu      sync.Mutex
	store   *store.ContentStore
	cfg     *config.Config
	current *models.User
}

func NewManager(st *store.ContentStore, cfg *config.Config) *Manager {
	return &Manager{store: st, cfg: cfg}
}

// Restore loads a previously persisted session, if any.
func (m *Manager) Restore(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = m.store.LoadSession(ctx)
}

// Current returns a copy of the authenticated user, or nil when anonymous.
func (m *Manager) Current() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil
	}
	user := *m.current
	return &user
}

// Register creates a new account. The email must not be taken (exact,
// case-sensitive match); the new user becomes the current session.
func (m *Manager) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:             uuid.New().String(),
		Name:           name,
		Email:          email,
		ProfilePicture: fmt.Sprintf("https://picsum.photos/seed/%s/200", url.PathEscape(name)),
		Role:           models.RoleUser,
		PasswordHash:   string(hash),
	}

	// The uniqueness check runs inside the collection update so a
	// concurrent registration cannot slip in between check and append.
	err = m.store.UpdateUsers(ctx, func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.Email == email {
				return nil, ErrEmailTaken
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return nil, err
	}

	m.current = &user
	m.store.SaveSession(ctx, user)

	result := user
	return &result, nil
}

// Login authenticates by exact email match and password verification,
// returning the user and a signed access token. On failure the session
// stays anonymous.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var found *models.User
	for _, u := range m.store.Users() {
		if u.Email == email {
			user := u
			found = &user
			break
		}
	}
	if found == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := m.GenerateAccessToken(found)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign access token: %w", err)
	}

	m.current = found
	m.store.SaveSession(ctx, *found)

	result := *found
	return &result, token, nil
}

// Logout unconditionally transitions to anonymous.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
	m.store.ClearSession(ctx)
}

type UpdateRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
}

// UpdateUser merges the non-empty fields into the current user, persists
// the session and updates the matching record in the users collection.
func (m *Manager) UpdateUser(ctx context.Context, req UpdateRequest) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil, ErrNotAuthenticated
	}

	return m.updateLocked(ctx, m.current.ID, req)
}

// UpdateUserByID is the token-authenticated variant: it edits the
// identified account and refreshes the persisted session when that
// account is the current one.
func (m *Manager) UpdateUserByID(ctx context.Context, userID string, req UpdateRequest) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.updateLocked(ctx, userID, req)
}

func (m *Manager) updateLocked(ctx context.Context, userID string, req UpdateRequest) (*models.User, error) {
	var updated models.User
	err := m.store.UpdateUsers(ctx, func(users []models.User) ([]models.User, error) {
		for i, u := range users {
			if u.ID != userID {
				continue
			}

			if req.Name != "" {
				users[i].Name = req.Name
			}
			if req.Email != "" {
				users[i].Email = req.Email
			}
			if req.ProfilePicture != "" {
				users[i].ProfilePicture = req.ProfilePicture
			}

			updated = users[i]
			return users, nil
		}

		// The account was deleted out from under the session.
		return nil, ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}

	if m.current != nil && m.current.ID == userID {
		current := updated
		m.current = &current
		m.store.SaveSession(ctx, current)
	}

	result := updated
	return &result, nil
}
