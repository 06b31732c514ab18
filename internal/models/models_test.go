package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPost_String(t *testing.T) {
	assert.Equal(t, "short", Post{Text: "short"}.String())
	assert.Equal(t, "exactly fifteen", Post{Text: "exactly fifteen"}.String())
	assert.Equal(t, "Тестовый пост д", Post{Text: "Тестовый пост для проверки"}.String())
}

func TestGroup_String(t *testing.T) {
	assert.Equal(t, "Cats", Group{Title: "Cats", Slug: "cats"}.String())
}

func TestUser_FullName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"both names", User{Username: "ann", FirstName: "Ann", LastName: "Lee"}, "Ann Lee"},
		{"first only", User{Username: "ann", FirstName: "Ann"}, "Ann"},
		{"last only", User{Username: "ann", LastName: "Lee"}, "Lee"},
		{"no names", User{Username: "ann"}, "ann"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.FullName())
			assert.Equal(t, "ann", tt.user.String())
		})
	}
}
