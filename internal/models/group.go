package models

// Group is a community that posts can optionally belong to.
// Slug is the external lookup key.
type Group struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:200;not null"`
	Slug        string `json:"slug" gorm:"size:50;uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
}

func (g Group) String() string {
	return g.Title
}

// GroupForm describes a new group.
type GroupForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"required,max=50,slug"`
	Description string `form:"description"`
}
