package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"

	"sponsorconnect/pkg/errors"
)

type FirebaseAuthClient struct {
	client *auth.Client
	apiKey string
	http   *http.Client
}

func NewFirebaseAuthClient(client *auth.Client, apiKey string) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
		apiKey: apiKey,
		http:   &http.Client{Timeout: 8 * time.Second},
	}
}

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", mapAuthError(err)
	}

	return user.UID, nil
}

func (f *FirebaseAuthClient) DeleteUser(ctx context.Context, uid string) error {
	if err := f.client.DeleteUser(ctx, uid); err != nil {
		return mapAuthError(err)
	}
	return nil
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

func (f *FirebaseAuthClient) GenerateToken(ctx context.Context, uid string) (string, error) {
	token, err := f.client.CustomToken(ctx, uid)
	if err != nil {
		return "", err
	}

	return token, nil
}

// SignInWithEmailPassword exchanges credentials for an ID token and refresh
// token through the Identity Toolkit REST API; the Admin SDK has no
// password-based sign-in.
func (f *FirebaseAuthClient) SignInWithEmailPassword(ctx context.Context, email, password string) (string, string, error) {
	reqBody, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", "", err
	}

	signInURL := "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword?key=" + f.apiKey
	httpReq, err := http.NewRequestWithContext(ctx, "POST", signInURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := f.http.Do(httpReq)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil {
			return "", "", mapIdentityToolkitError(errResp.Error.Message)
		}
		return "", "", errors.Internal("Sign-in request failed", fmt.Errorf("status %d", resp.StatusCode))
	}

	var result struct {
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", "", err
	}

	return result.IDToken, result.RefreshToken, nil
}

// RefreshIDToken exchanges a refresh token for a fresh ID token.
func (f *FirebaseAuthClient) RefreshIDToken(ctx context.Context, refreshToken string) (string, error) {
	reqBody := strings.NewReader("grant_type=refresh_token&refresh_token=" + refreshToken)

	refreshURL := "https://securetoken.googleapis.com/v1/token?key=" + f.apiKey
	httpReq, err := http.NewRequestWithContext(ctx, "POST", refreshURL, reqBody)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", errors.Unauthorized("Invalid refresh token", fmt.Errorf("status %d", resp.StatusCode))
	}

	var result struct {
		IDToken string `json:"id_token"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	return result.IDToken, nil
}

func mapAuthError(err error) error {
	if auth.IsEmailAlreadyExists(err) {
		return errors.EmailInUse(err)
	}
	if strings.Contains(err.Error(), "password") {
		return errors.WeakPassword(err)
	}
	return err
}

func mapIdentityToolkitError(message string) error {
	switch {
	case strings.HasPrefix(message, "EMAIL_NOT_FOUND"):
		return errors.UserNotFound(nil)
	case strings.HasPrefix(message, "EMAIL_EXISTS"):
		return errors.EmailInUse(nil)
	case strings.HasPrefix(message, "WEAK_PASSWORD"):
		return errors.WeakPassword(nil)
	case strings.HasPrefix(message, "INVALID_PASSWORD"),
		strings.HasPrefix(message, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(message, "USER_DISABLED"):
		return errors.InvalidCredentials(nil)
	}
	return errors.Unauthorized("Authentication failed", fmt.Errorf("%s", message))
}
