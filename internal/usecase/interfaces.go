package usecase

import (
	"context"
	"io"
)

// AuthProvider is the identity collaborator. Two implementations exist: the
// Firebase client and the local demo-mode client; the choice is made once at
// startup.
type AuthProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
	SignInWithEmailPassword(ctx context.Context, email, password string) (idToken, refreshToken string, err error)
	VerifyToken(ctx context.Context, token string) (string, error)
	GenerateToken(ctx context.Context, uid string) (string, error)
	RefreshIDToken(ctx context.Context, refreshToken string) (string, error)
}

// FileStorage is the media upload collaborator (club/business logos).
type FileStorage interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}
