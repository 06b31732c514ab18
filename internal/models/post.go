package models

import "time"

// MaxPostLength bounds the post text.
const MaxPostLength = 5000

// Post is a text entry written by a user, optionally tagged to a group and
// carrying an image. PubDate is set once on creation.
type Post struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
	AuthorID uint      `json:"author_id" gorm:"not null;index"`
	Author   User      `json:"author" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID  *uint     `json:"group_id,omitempty" gorm:"index"`
	Group    *Group    `json:"group,omitempty" gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Image    string    `json:"image,omitempty" gorm:"size:255"` // relative to the media root
}

// String returns the first 15 characters of the text.
func (p Post) String() string {
	r := []rune(p.Text)
	if len(r) > 15 {
		r = r[:15]
	}
	return string(r)
}

// PostForm is bound from the create and edit pages. Group holds the group ID
// or is empty. The image is read separately from the multipart body.
type PostForm struct {
	Text  string `form:"text" validate:"required,max=5000"`
	Group string `form:"group"`
}

// PostInput is a validated post submission.
type PostInput struct {
	Text    string
	GroupID *uint
	Image   string // empty keeps the current image on edit
}
