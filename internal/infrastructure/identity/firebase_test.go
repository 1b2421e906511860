package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lromero86/tacopos-api/pkg/apperror"
)

func testProvider(handler http.HandlerFunc) (*Provider, *httptest.Server) {
	server := httptest.NewServer(handler)
	provider := &Provider{
		apiKey:     "test-key",
		httpClient: server.Client(),
		baseURL:    server.URL,
	}
	return provider, server
}

func TestSignInSuccess(t *testing.T) {
	provider, server := testProvider(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts:signInWithPassword" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in query")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"localId":"uid-1","email":"op@example.com","idToken":"tok","refreshToken":"ref"}`))
	})
	defer server.Close()

	cred, err := provider.SignIn(context.Background(), "op@example.com", "secret1")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if cred.UID != "uid-1" || cred.Email != "op@example.com" || cred.IDToken != "tok" || cred.RefreshToken != "ref" {
		t.Errorf("unexpected credential: %+v", cred)
	}
}

func TestSignInErrorMapping(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"INVALID_LOGIN_CREDENTIALS", apperror.ErrInvalidCredentials},
		{"EMAIL_NOT_FOUND", apperror.ErrInvalidCredentials},
		{"INVALID_PASSWORD", apperror.ErrInvalidCredentials},
		{"TOO_MANY_ATTEMPTS_TRY_LATER", apperror.ErrAuthRateLimited},
		{"TOO_MANY_ATTEMPTS_TRY_LATER : please try again later", apperror.ErrAuthRateLimited},
		{"USER_DISABLED", apperror.ErrAuthDisabled},
		{"OPERATION_NOT_ALLOWED", apperror.ErrAuthDisabled},
		{"SOMETHING_ENTIRELY_NEW", apperror.ErrAuthNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			provider, server := testProvider(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":{"message":"` + tt.code + `"}}`))
			})
			defer server.Close()

			_, err := provider.SignIn(context.Background(), "op@example.com", "bad")
			if !errors.Is(err, tt.want) {
				t.Errorf("code %q mapped to %v, want %v", tt.code, err, tt.want)
			}
		})
	}
}

func TestSignUpErrorMapping(t *testing.T) {
	provider, server := testProvider(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts:signUp" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"EMAIL_EXISTS"}}`))
	})
	defer server.Close()

	_, err := provider.SignUp(context.Background(), "op@example.com", "secret1")
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("EMAIL_EXISTS: expected validation kind, got %v", err)
	}
}

func TestSignInUnreachableProvider(t *testing.T) {
	provider, server := testProvider(func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := provider.SignIn(context.Background(), "op@example.com", "secret1")
	if !errors.Is(err, apperror.ErrAuthNetwork) {
		t.Fatalf("expected ErrAuthNetwork, got %v", err)
	}
}

func TestSignInGarbledResponse(t *testing.T) {
	provider, server := testProvider(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})
	defer server.Close()

	_, err := provider.SignIn(context.Background(), "op@example.com", "secret1")
	if !errors.Is(err, apperror.ErrAuthNetwork) {
		t.Fatalf("expected ErrAuthNetwork, got %v", err)
	}
}
