package models

import "time"

// Follow records that Follower receives Following's posts in their follow feed.
// The pair is kept unique by the service layer, not by the schema.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"not null;index:idx_follower_following,priority:1"`
	Follower    User      `json:"-" gorm:"foreignKey:FollowerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	FollowingID uint      `json:"following_id" gorm:"not null;index;index:idx_follower_following,priority:2"`
	Following   User      `json:"-" gorm:"foreignKey:FollowingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time `json:"created_at"`
}
