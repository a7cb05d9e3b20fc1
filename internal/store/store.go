package store

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"vlogify/internal/models"
	"vlogify/internal/persist"
)

// Mirror keys, one JSON document per collection plus the current session.
const (
	KeyUsers   = "vlogify_users"
	KeyPosts   = "vlogify_posts"
	KeyReports = "vlogify_reports"
	KeySession = "vlogify_user"
)

// ContentStore is the single owner of the users, posts and reports
// collections. Callers work on copies; blind replacement goes through
// Save*, and read-modify-write cycles through Update*, which hold the
// store lock for the whole cycle. In-memory state is authoritative, the
// mirror is best effort.
type ContentStore struct {
	mu     sync.Mutex
	mirror persist.Store
	logger *log.Logger

	users   []models.User
	posts   []models.Post
	reports []models.Report
}

func New(mirror persist.Store, logger *log.Logger) *ContentStore {
	if logger == nil {
		logger = log.Default()
	}

	return &ContentStore{
		mirror:  mirror,
		logger:  logger,
		users:   []models.User{},
		posts:   []models.Post{},
		reports: []models.Report{},
	}
}

// Initialize loads each collection from the mirror, seeding the default
// dataset where no snapshot exists. A snapshot that fails to parse is
// treated as absent. Safe to call repeatedly.
func (s *ContentStore) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []models.User
	if s.loadSnapshot(ctx, KeyUsers, &users) {
		s.users = users
	} else {
		s.users = SeedUsers()
		s.writeThrough(ctx, KeyUsers, s.users)
	}

	var posts []models.Post
	if s.loadSnapshot(ctx, KeyPosts, &posts) {
		s.posts = posts
	} else {
		s.posts = SeedPosts(s.users)
		s.writeThrough(ctx, KeyPosts, s.posts)
	}

	var reports []models.Report
	if s.loadSnapshot(ctx, KeyReports, &reports) {
		s.reports = reports
	} else {
		s.reports = []models.Report{}
		s.writeThrough(ctx, KeyReports, s.reports)
	}
}

func (s *ContentStore) loadSnapshot(ctx context.Context, key string, out interface{}) bool {
	raw, ok, err := s.mirror.Get(ctx, key)
	if err != nil {
		s.logger.Printf("store: failed to read snapshot %s: %v", key, err)
		return false
	}
	if !ok {
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Printf("store: snapshot %s is corrupt, re-seeding: %v", key, err)
		return false
	}

	return true
}

// writeThrough mirrors a collection; failures are logged and swallowed so
// the in-memory state stays usable for the rest of the session.
func (s *ContentStore) writeThrough(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Printf("store: failed to encode %s: %v", key, err)
		return
	}

	if err := s.mirror.Set(ctx, key, raw); err != nil {
		s.logger.Printf("store: failed to mirror %s: %v", key, err)
	}
}

func (s *ContentStore) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.User{}, s.users...)
}

func (s *ContentStore) Posts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]models.Post, len(s.posts))
	for i, p := range s.posts {
		posts[i] = clonePost(p)
	}
	return posts
}

func (s *ContentStore) Reports() []models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.Report{}, s.reports...)
}

// UpdateUsers runs fn over a copy of the users collection and replaces
// the collection with the result, all under the store lock. Every
// read-modify-write cycle on users must go through here so no two
// writers can interleave. An error from fn leaves the collection and the
// mirror untouched.
func (s *ContentStore) UpdateUsers(ctx context.Context, fn func(users []models.User) ([]models.User, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := fn(append([]models.User{}, s.users...))
	if err != nil {
		return err
	}

	s.users = append([]models.User{}, users...)
	s.writeThrough(ctx, KeyUsers, s.users)
	return nil
}

// UpdatePosts is the posts counterpart of UpdateUsers.
func (s *ContentStore) UpdatePosts(ctx context.Context, fn func(posts []models.Post) ([]models.Post, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := make([]models.Post, len(s.posts))
	for i, p := range s.posts {
		in[i] = clonePost(p)
	}

	posts, err := fn(in)
	if err != nil {
		return err
	}

	s.posts = make([]models.Post, len(posts))
	for i, p := range posts {
		s.posts[i] = clonePost(p)
	}
	s.writeThrough(ctx, KeyPosts, s.posts)
	return nil
}

// UpdateReports is the reports counterpart of UpdateUsers.
func (s *ContentStore) UpdateReports(ctx context.Context, fn func(reports []models.Report) ([]models.Report, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := fn(append([]models.Report{}, s.reports...))
	if err != nil {
		return err
	}

	s.reports = append([]models.Report{}, reports...)
	s.writeThrough(ctx, KeyReports, s.reports)
	return nil
}

func (s *ContentStore) SaveUsers(ctx context.Context, users []models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append([]models.User{}, users...)
	s.writeThrough(ctx, KeyUsers, s.users)
}

func (s *ContentStore) SavePosts(ctx context.Context, posts []models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = make([]models.Post, len(posts))
	for i, p := range posts {
		s.posts[i] = clonePost(p)
	}
	s.writeThrough(ctx, KeyPosts, s.posts)
}

func (s *ContentStore) SaveReports(ctx context.Context, reports []models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports = append([]models.Report{}, reports...)
	s.writeThrough(ctx, KeyReports, s.reports)
}

// LoadSession returns the persisted session user, or nil when anonymous.
func (s *ContentStore) LoadSession(ctx context.Context) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user models.User
	if !s.loadSnapshot(ctx, KeySession, &user) {
		return nil
	}
	if user.ID == "" {
		return nil
	}
	return &user
}

func (s *ContentStore) SaveSession(ctx context.Context, user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writeThrough(ctx, KeySession, user)
}

func (s *ContentStore) ClearSession(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mirror.Delete(ctx, KeySession); err != nil {
		s.logger.Printf("store: failed to clear session: %v", err)
	}
}

// clonePost copies the post with its likes and comments so callers can
// mutate their view without sharing backing arrays with the store.
func clonePost(p models.Post) models.Post {
	p.Likes = append([]string{}, p.Likes...)
	p.Comments = append([]models.Comment{}, p.Comments...)
	return p
}
