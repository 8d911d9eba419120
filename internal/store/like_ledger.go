package store

import (
	"errors"
	"truthhub/internal/models"

	"gorm.io/gorm"
)

// LikeLedger records individual like events and keeps the cached
// Post.Likes counter equal to the ledger cardinality for that post.
type LikeLedger struct {
	db *gorm.DB
}

func NewLikeLedger(db *gorm.DB) *LikeLedger {
	return &LikeLedger{db: db}
}

func (l *LikeLedger) HasLiked(userID, postID uint) (bool, error) {
	var count int64
	err := l.db.Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

// Toggle flips the (post, user) like state and moves the post's counter
// with it, all inside a single transaction. Each call inverts the state:
// a row present means un-like, a row absent means like. Two toggles
// racing on the same pair cannot both insert; the second one trips the
// composite unique index and the whole transaction rolls back, leaving
// the counter consistent with the ledger.
func (l *LikeLedger) Toggle(userID, postID uint) (liked bool, likes int, err error) {
	err = l.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			liked = false
			if err := tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("likes", gorm.Expr("likes - ?", res.RowsAffected)).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Create(&models.Like{PostID: postID, UserID: userID}).Error; err != nil {
				return err
			}
			liked = true
			if err := tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error; err != nil {
				return err
			}
		}

		// Report the counter as this transaction leaves it.
		var fresh models.Post
		if err := tx.Select("likes").First(&fresh, postID).Error; err != nil {
			return err
		}
		likes = fresh.Likes
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return liked, likes, nil
}
