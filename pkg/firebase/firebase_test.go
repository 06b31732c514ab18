package firebase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitAuth_MissingCredentials(t *testing.T) {
	_, err := InitAuth(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoCredentials)

	_, err = InitAuth(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
