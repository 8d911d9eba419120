package store

import (
	"testing"
	"truthhub/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubAvatars stands in for the image-drawing collaborator.
type stubAvatars struct{}

func (stubAvatars) Generate(username string) ([]byte, error) { return []byte("png"), nil }
func (stubAvatars) Ref(username string) string               { return "/avatar/" + username }

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.Post{}, &models.Like{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func seedUser(t *testing.T, users *UserStore, username string) *models.User {
	t.Helper()
	user, err := users.Create(username, username+"-hash")
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedPost(t *testing.T, posts *PostStore, author *models.User, title string) *models.Post {
	t.Helper()
	post, err := posts.Create(title, "content of "+title, author)
	if err != nil {
		t.Fatalf("seed post %s: %v", title, err)
	}
	return post
}
