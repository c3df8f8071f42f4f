package localauth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sponsorconnect/internal/infrastructure/localstore"
	"sponsorconnect/pkg/errors"
)

// LocalAuthClient is the demo-mode identity provider: credentials live in the
// local store and sessions are HS256 JWTs, so the API works end to end with
// no Firebase project configured.
type LocalAuthClient struct {
	store  *localstore.Store
	secret []byte
}

type credentialRecord struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	DisplayName  string `json:"display_name"`
}

const credentialsCollection = "credentials"

func NewLocalAuthClient(store *localstore.Store, secret string) *LocalAuthClient {
	return &LocalAuthClient{
		store:  store,
		secret: []byte(secret),
	}
}

func (l *LocalAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	var existing credentialRecord
	if err := l.store.Get(credentialsCollection, email, &existing); err == nil {
		return "", errors.EmailInUse(nil)
	}

	if len(password) < 8 {
		return "", errors.WeakPassword(nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	record := credentialRecord{
		UID:          uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
	}
	if err := l.store.Set(credentialsCollection, email, record); err != nil {
		return "", err
	}

	return record.UID, nil
}

func (l *LocalAuthClient) DeleteUser(ctx context.Context, uid string) error {
	var email string
	l.store.All(credentialsCollection, func(id string, raw json.RawMessage) error {
		var record credentialRecord
		if err := json.Unmarshal(raw, &record); err == nil && record.UID == uid {
			email = id
		}
		return nil
	})
	if email == "" {
		return errors.UserNotFound(nil)
	}
	return l.store.Delete(credentialsCollection, email)
}

func (l *LocalAuthClient) SignInWithEmailPassword(ctx context.Context, email, password string) (string, string, error) {
	var record credentialRecord
	if err := l.store.Get(credentialsCollection, email, &record); err != nil {
		return "", "", errors.UserNotFound(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return "", "", errors.InvalidCredentials(err)
	}

	idToken, err := l.signToken(record.UID, 24*time.Hour)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := l.signToken(record.UID, 30*24*time.Hour)
	if err != nil {
		return "", "", err
	}

	return idToken, refreshToken, nil
}

func (l *LocalAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Unauthorized("Unexpected signing method", nil)
		}
		return l.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", errors.Unauthorized("Invalid or expired token", err)
	}

	claims := parsed.Claims.(*jwt.RegisteredClaims)
	return claims.Subject, nil
}

func (l *LocalAuthClient) GenerateToken(ctx context.Context, uid string) (string, error) {
	return l.signToken(uid, 24*time.Hour)
}

func (l *LocalAuthClient) RefreshIDToken(ctx context.Context, refreshToken string) (string, error) {
	uid, err := l.VerifyToken(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	return l.signToken(uid, 24*time.Hour)
}

func (l *LocalAuthClient) signToken(uid string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   uid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		Issuer:    "sponsorconnect-local",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(l.secret)
}
