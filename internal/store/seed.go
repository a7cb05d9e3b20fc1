package store

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vlogify/internal/models"
)

// SeedPassword is the credential every seeded account starts with.
const SeedPassword = "password123"

// SeedUsers builds the default demo accounts. Used when the mirror has no
// prior users snapshot.
func SeedUsers() []models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on an invalid cost
		log.Printf("store: failed to hash seed password: %v", err)
	}

	return []models.User{
		{
			ID:             "user_1",
			Name:           "TPG Coder",
			Email:          "admin@tpgcoder.com",
			ProfilePicture: "https://picsum.photos/seed/admin/200",
			Role:           models.RoleAdmin,
			PasswordHash:   string(hash),
		},
		{
			ID:             "user_2",
			Name:           "Jane Doe",
			Email:          "jane@example.com",
			ProfilePicture: "https://picsum.photos/seed/jane/200",
			Role:           models.RoleUser,
			PasswordHash:   string(hash),
		},
		{
			ID:             "user_3",
			Name:           "John Smith",
			Email:          "john@example.com",
			ProfilePicture: "https://picsum.photos/seed/john/200",
			Role:           models.RoleUser,
			PasswordHash:   string(hash),
		},
		{
			ID:             "user_4",
			Name:           "Demo Admin",
			Email:          "demo@admin.com",
			ProfilePicture: "https://picsum.photos/seed/demo_admin/200",
			Role:           models.RoleAdmin,
			PasswordHash:   string(hash),
		},
	}
}

// SeedPosts builds the default feed. Authors are embedded as sanitized
// snapshots of the seeded users.
func SeedPosts(users []models.User) []models.Post {
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u.Sanitized()
	}

	now := time.Now()

	comments := []models.Comment{
		{
			ID:        "comment_1",
			Text:      "This is an amazing post!",
			Author:    byID["user_3"],
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:        "comment_2",
			Text:      "Great insights, thank you for sharing.",
			Author:    byID["user_2"],
			CreatedAt: now.Add(-1 * time.Hour),
		},
	}

	return []models.Post{
		{
			ID:          "post_1",
			Title:       "My Journey into the Alps",
			Description: "A detailed story about my recent trip to the Swiss Alps. The views were breathtaking and the experience was unforgettable. Here are some of the highlights and tips for anyone planning a similar trip.",
			Image:       "https://picsum.photos/seed/alps/800/600",
			Author:      byID["user_2"],
			Likes:       []string{"user_3"},
			Comments:    comments,
			CreatedAt:   now.Add(-24 * time.Hour),
		},
		{
			ID:          "post_2",
			Title:       "The Art of Minimalist Living",
			Description: "Exploring the philosophy of minimalism and how it can declutter not just your space, but your mind. This post delves into the practical steps I took to adopt a minimalist lifestyle.",
			Image:       "https://picsum.photos/seed/minimalism/800/600",
			Author:      byID["user_3"],
			Likes:       []string{"user_1", "user_2"},
			Comments:    []models.Comment{},
			CreatedAt:   now.Add(-2 * 24 * time.Hour),
		},
		{
			ID:          "post_3",
			Title:       "A Culinary Adventure in Tokyo",
			Description: "From street food to Michelin-starred restaurants, Tokyo is a food lover's paradise. Join me as I recount my week-long culinary journey through this vibrant city.",
			Image:       "https://picsum.photos/seed/tokyo/800/600",
			Author:      byID["user_2"],
			Likes:       []string{},
			Comments:    []models.Comment{},
			CreatedAt:   now.Add(-5 * 24 * time.Hour),
		},
	}
}
