package store

import (
	"errors"
	"truthhub/internal/models"

	"gorm.io/gorm"
)

// AvatarGenerator draws and persists an avatar image for a username and
// hands back the reference the user record should carry.
type AvatarGenerator interface {
	Generate(username string) ([]byte, error)
	Ref(username string) string
}

// UserStore persists users keyed by an opaque external-identity hash.
type UserStore struct {
	db      *gorm.DB
	avatars AvatarGenerator
}

func NewUserStore(db *gorm.DB, avatars AvatarGenerator) *UserStore {
	return &UserStore{db: db, avatars: avatars}
}

func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByExternalID looks a user up by the digest of their provider
// subject id. The raw id is hashed before it ever reaches this layer.
func (s *UserStore) FindByExternalID(hash string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("external_id_hash = ?", hash).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// Create registers a new user for a previously unseen external identity.
// A taken username surfaces as ErrConflict whether it is caught by the
// pre-check or by the unique index under a concurrent register.
func (s *UserStore) Create(username, externalIDHash string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrConflict
	}

	user := models.User{
		Username:       username,
		ExternalIDHash: externalIDHash,
		AvatarRef:      s.avatars.Ref(username),
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return err
		}
		// Draw the avatar only once the username slot is won; the loser
		// of a concurrent register must not touch the winner's file.
		_, err := s.avatars.Generate(username)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Remove deletes a user and everything hanging off them in one
// transaction: likes and comments on the user's posts, the user's own
// comments and likes (fixing the counters of posts they had liked), the
// posts themselves, and finally the user row. Partial cascades are never
// visible to concurrent readers.
func (s *UserStore) Remove(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("user_id = ?", userID).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}

		// Likes this user placed on posts that survive them: the ledger
		// rows go away, so the cached counters have to come down too.
		var placed []models.Like
		if err := tx.Where("user_id = ?", userID).Find(&placed).Error; err != nil {
			return err
		}
		for _, like := range placed {
			if err := tx.Model(&models.Post{}).Where("id = ?", like.PostID).
				UpdateColumn("likes", gorm.Expr("likes - ?", 1)).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
