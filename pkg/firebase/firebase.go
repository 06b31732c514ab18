// Package firebase connects to Firebase Authentication, used as an optional
// login provider.
package firebase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ErrNoCredentials is returned when no credentials path is configured.
var ErrNoCredentials = errors.New("firebase credentials path not provided")

// InitAuth creates a Firebase auth client from a service account file.
// Extra client options are appended after the credentials.
func InitAuth(ctx context.Context, credentialsPath string, opts ...option.ClientOption) (*auth.Client, error) {
	if credentialsPath == "" {
		return nil, ErrNoCredentials
	}
	if _, err := os.Stat(credentialsPath); err != nil {
		return nil, fmt.Errorf("firebase credentials file %s: %w", credentialsPath, err)
	}

	opts = append([]option.ClientOption{option.WithCredentialsFile(credentialsPath)}, opts...)
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	log.Println("Firebase auth client initialized.")
	return authClient, nil
}
