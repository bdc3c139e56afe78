package google

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/hardy-ethan/UMichEmailVerifier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

func TestAuthCodeURL(t *testing.T) {
	p := NewProvider("client-id", "secret", "https://verify.example.edu/auth/google/callback", "")

	u, err := url.Parse(p.AuthCodeURL("state-token"))
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "state-token", q.Get("state"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "openid email", q.Get("scope"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "https://verify.example.edu/auth/google/callback", q.Get("redirect_uri"))
	assert.False(t, q.Has("hd"))
}

func TestAuthCodeURL_HostedDomainHint(t *testing.T) {
	p := NewProvider("client-id", "secret", "https://verify.example.edu/cb", "umich.edu")

	u, err := url.Parse(p.AuthCodeURL("s"))
	require.NoError(t, err)
	assert.Equal(t, "umich.edu", u.Query().Get("hd"))
}

// newTestProvider points the token endpoint at srv and stubs ID token validation.
func newTestProvider(srv *httptest.Server, v validateFunc) *Provider {
	p := NewProvider("client-id", "secret", "https://verify.example.edu/cb", "")
	p.conf.Endpoint = oauth2.Endpoint{
		AuthURL:   srv.URL + "/auth",
		TokenURL:  srv.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
	p.validate = v
	return p
}

func tokenServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExchange_Success(t *testing.T) {
	srv := tokenServer(t, http.StatusOK, `{"access_token":"at","token_type":"Bearer","expires_in":3600,"id_token":"raw.id.token"}`)
	p := newTestProvider(srv, func(_ context.Context, raw, aud string) (*idtoken.Payload, error) {
		assert.Equal(t, "raw.id.token", raw)
		assert.Equal(t, "client-id", aud)
		return &idtoken.Payload{
			Subject: "1234",
			Claims: map[string]interface{}{
				"email":          "student@umich.edu",
				"email_verified": true,
				"hd":             "umich.edu",
			},
		}, nil
	})

	id, err := p.Exchange(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, &domain.Identity{Subject: "1234", HostedDomain: "umich.edu"}, id)
}

func TestExchange_TokenEndpointError(t *testing.T) {
	srv := tokenServer(t, http.StatusBadRequest, `{"error":"invalid_grant"}`)
	p := newTestProvider(srv, func(context.Context, string, string) (*idtoken.Payload, error) {
		t.Fatal("validate must not be called")
		return nil, nil
	})

	_, err := p.Exchange(context.Background(), "the-code")
	assert.ErrorIs(t, err, domain.ErrExchange)
}

func TestExchange_MissingIDToken(t *testing.T) {
	srv := tokenServer(t, http.StatusOK, `{"access_token":"at","token_type":"Bearer"}`)
	p := newTestProvider(srv, nil)

	_, err := p.Exchange(context.Background(), "the-code")
	assert.ErrorIs(t, err, domain.ErrExchange)
}

func TestExchange_InvalidIDToken(t *testing.T) {
	srv := tokenServer(t, http.StatusOK, `{"access_token":"at","token_type":"Bearer","id_token":"forged"}`)
	p := newTestProvider(srv, func(context.Context, string, string) (*idtoken.Payload, error) {
		return nil, errors.New("bad signature")
	})

	_, err := p.Exchange(context.Background(), "the-code")
	assert.ErrorIs(t, err, domain.ErrExchange)
	assert.Contains(t, err.Error(), "bad signature")
}

func TestExchange_EmptyCode(t *testing.T) {
	p := NewProvider("client-id", "secret", "https://verify.example.edu/cb", "")
	_, err := p.Exchange(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrExchange)
}
