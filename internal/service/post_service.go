package service

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"vlogify/internal/config"
	"vlogify/internal/models"
	"vlogify/internal/storage"
	"vlogify/internal/store"
)

type PostService interface {
	Feed(ctx context.Context, page int) (*FeedPage, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	PostsByAuthor(ctx context.Context, authorID string) []models.Post
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, actor models.User, req UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, actor models.User, postID string) error
	ToggleLike(ctx context.Context, userID, postID string) (*models.Post, error)
	AddComment(ctx context.Context, author models.User, postID, text string) (*models.Comment, error)
	UploadImage(ctx context.Context, fileName string, file io.Reader, size int64) (string, error)
	DeleteImage(ctx context.Context, objectName string) error
}

type FeedPage struct {
	Posts      []models.Post `json:"posts"`
	Pagination Pagination    `json:"pagination"`
}

type CreatePostRequest struct {
	AuthorID    string
	Title       string
	Description string
	Image       string
}

type UpdatePostRequest struct {
	PostID      string
	Title       string
	Description string
	Image       string
}

type postService struct {
	store   *store.ContentStore
	cfg     *config.Config
	storage storage.Storage
}

func NewPostService(st *store.ContentStore, cfg *config.Config, storage storage.Storage) PostService {
	return &postService{store: st, cfg: cfg, storage: storage}
}

// Feed returns one page of posts, most recent first.
func (p *postService) Feed(ctx context.Context, page int) (*FeedPage, error) {
	posts := p.store.Posts()
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	start, end, meta := paginate(len(posts), page, p.cfg.PageSize)

	return &FeedPage{
		Posts:      posts[start:end],
		Pagination: meta,
	}, nil
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	for _, post := range p.store.Posts() {
		if post.ID == postID {
			found := post
			return &found, nil
		}
	}
	return nil, ErrPostNotFound
}

func (p *postService) PostsByAuthor(ctx context.Context, authorID string) []models.Post {
	var posts []models.Post
	for _, post := range p.store.Posts() {
		if post.Author.ID == authorID {
			posts = append(posts, post)
		}
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	return posts
}

// CreatePost appends a post authored by an existing user. The author is
// embedded as a sanitized snapshot.
func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	var author *models.User
	for _, u := range p.store.Users() {
		if u.ID == req.AuthorID {
			user := u
			author = &user
			break
		}
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	post := models.Post{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Author:      author.Sanitized(),
		Likes:       []string{},
		Comments:    []models.Comment{},
		CreatedAt:   time.Now(),
	}

	err := p.store.UpdatePosts(ctx, func(posts []models.Post) ([]models.Post, error) {
		return append(posts, post), nil
	})
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// UpdatePost edits title, description and image. Only the author or an
// admin may edit.
func (p *postService) UpdatePost(ctx context.Context, actor models.User, req UpdatePostRequest) (*models.Post, error) {
	var updated models.Post
	err := p.store.UpdatePosts(ctx, func(posts []models.Post) ([]models.Post, error) {
		for i, post := range posts {
			if post.ID != req.PostID {
				continue
			}

			if post.Author.ID != actor.ID && !actor.IsAdmin() {
				return nil, ErrForbidden
			}

			if req.Title != "" {
				posts[i].Title = req.Title
			}
			if req.Description != "" {
				posts[i].Description = req.Description
			}
			if req.Image != "" {
				posts[i].Image = req.Image
			}

			updated = posts[i]
			return posts, nil
		}

		return nil, ErrPostNotFound
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (p *postService) DeletePost(ctx context.Context, actor models.User, postID string) error {
	return p.store.UpdatePosts(ctx, func(posts []models.Post) ([]models.Post, error) {
		for i, post := range posts {
			if post.ID != postID {
				continue
			}

			if post.Author.ID != actor.ID && !actor.IsAdmin() {
				return nil, ErrForbidden
			}

			return append(posts[:i], posts[i+1:]...), nil
		}

		return nil, ErrPostNotFound
	})
}

// ToggleLike adds the user to the likes set, or removes them when already
// present. Likes never contain duplicates.
func (p *postService) ToggleLike(ctx context.Context, userID, postID string) (*models.Post, error) {
	var updated models.Post
	err := p.store.UpdatePosts(ctx, func(posts []models.Post) ([]models.Post, error) {
		for i, post := range posts {
			if post.ID != postID {
				continue
			}

			likes := make([]string, 0, len(post.Likes)+1)
			removed := false
			for _, id := range post.Likes {
				if id == userID {
					removed = true
					continue
				}
				likes = append(likes, id)
			}
			if !removed {
				likes = append(likes, userID)
			}

			posts[i].Likes = likes
			updated = posts[i]
			return posts, nil
		}

		return nil, ErrPostNotFound
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// AddComment appends a comment, preserving insertion order.
func (p *postService) AddComment(ctx context.Context, author models.User, postID, text string) (*models.Comment, error) {
	comment := models.Comment{
		ID:        uuid.New().String(),
		Text:      text,
		Author:    author.Sanitized(),
		CreatedAt: time.Now(),
	}

	err := p.store.UpdatePosts(ctx, func(posts []models.Post) ([]models.Post, error) {
		for i, post := range posts {
			if post.ID != postID {
				continue
			}

			posts[i].Comments = append(posts[i].Comments, comment)
			return posts, nil
		}

		return nil, ErrPostNotFound
	})
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// UploadImage stores an uploaded file in object storage and returns its
// URL. Posts fall back to inline data URIs when no storage is configured.
func (p *postService) UploadImage(ctx context.Context, fileName string, file io.Reader, size int64) (string, error) {
	if p.storage == nil {
		return "", ErrUploadsDisabled
	}

	_, imageURL, err := p.storage.UploadImage(ctx, fileName, file, size)
	if err != nil {
		return "", err
	}

	return imageURL, nil
}

// DeleteImage removes a previously uploaded object, used when a draft
// image is discarded before the post is saved.
func (p *postService) DeleteImage(ctx context.Context, objectName string) error {
	if p.storage == nil {
		return ErrUploadsDisabled
	}

	return p.storage.DeleteImage(ctx, objectName)
}
