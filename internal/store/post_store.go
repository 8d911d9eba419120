package store

import (
	"errors"
	"truthhub/internal/models"

	"gorm.io/gorm"
)

// PostStore persists posts and their comments. Like rows belong to the
// LikeLedger; this store only reads the cached per-post counter.
type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

func (s *PostStore) Get(postID uint) (*models.Post, error) {
	return findPost(s.db, postID)
}

func (s *PostStore) ListAll(order SortOrder) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Order(order.orderClause()).Find(&posts).Error
	return posts, err
}

// ListPage is ListAll with the pagination the feed pages use.
// Returns the posts for the page plus the total number of pages.
func (s *PostStore) ListPage(order SortOrder, page, perPage int) ([]models.Post, int, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := s.db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages == 0 {
		totalPages = 1
	}

	var posts []models.Post
	err := s.db.Order(order.orderClause()).
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&posts).Error
	return posts, totalPages, err
}

func (s *PostStore) ListByUser(userID uint, order SortOrder) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Where("user_id = ?", userID).Order(order.orderClause()).Find(&posts).Error
	return posts, err
}

func (s *PostStore) CountByUser(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Post{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Create stores a post as submitted. Title and content are taken as-is;
// the author's username is copied in as a display snapshot.
func (s *PostStore) Create(title, content string, author *models.User) (*models.Post, error) {
	post := models.Post{
		UserID:   author.ID,
		Username: author.Username,
		Title:    title,
		Content:  content,
		Likes:    0,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Remove deletes a post together with its comments and like rows in one
// transaction.
func (s *PostStore) Remove(postID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		post, err := findPost(tx, postID)
		if err != nil {
			return err
		}
		return removePost(tx, post)
	})
}

// RemoveAs is Remove gated on ownership: only the recorded author may
// delete a post. Ownership is keyed by user id, not username.
func (s *PostStore) RemoveAs(postID, userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		post, err := findPost(tx, postID)
		if err != nil {
			return err
		}
		if post.UserID != userID {
			return ErrUnauthorized
		}
		return removePost(tx, post)
	})
}

func findPost(tx *gorm.DB, postID uint) (*models.Post, error) {
	var post models.Post
	if err := tx.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func removePost(tx *gorm.DB, post *models.Post) error {
	if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
		return err
	}
	if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Post{}, post.ID).Error
}

// AddComment inserts a comment in the same transaction as the existence
// check, so a concurrently removed post can never gain an orphan.
func (s *PostStore) AddComment(postID uint, author *models.User, body string) (*models.Comment, error) {
	comment := models.Comment{
		PostID:   postID,
		UserID:   author.ID,
		Username: author.Username,
		Body:     body,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findPost(tx, postID); err != nil {
			return err
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments returns a post's comments newest first.
func (s *PostStore) ListComments(postID uint) ([]models.Comment, error) {
	if _, err := findPost(s.db, postID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := s.db.Where("post_id = ?", postID).Order("id DESC").Find(&comments).Error
	return comments, err
}
