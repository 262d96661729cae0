package calendar

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

var ErrNotAuthorized = errors.New("google calendar not authorized, run `asistente auth`")

// LoadOAuthConfig reads an OAuth client file downloaded from the Google Cloud
// console. Both "installed" and "web" client types are accepted.
func LoadOAuthConfig(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	type client struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
		AuthURI      string `json:"auth_uri"`
		TokenURI     string `json:"token_uri"`
	}
	var file struct {
		Installed *client `json:"installed"`
		Web       *client `json:"web"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}

	c := file.Installed
	if c == nil {
		c = file.Web
	}
	if c == nil || c.ClientID == "" {
		return nil, fmt.Errorf("credentials %s: missing installed or web client", path)
	}

	endpoint := endpoints.Google
	if c.AuthURI != "" {
		endpoint.AuthURL = c.AuthURI
	}
	if c.TokenURI != "" {
		endpoint.TokenURL = c.TokenURI
	}

	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       []string{Scope},
	}, nil
}

// TokenFile stores an OAuth token as JSON.
type TokenFile struct {
	Path string
	mu   sync.Mutex
}

func (f *TokenFile) Load() (*oauth2.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotAuthorized
	}
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, ErrNotAuthorized
	}
	return &tok, nil
}

func (f *TokenFile) Save(tok *oauth2.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}

	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return os.Rename(tmp, f.Path)
}

// Exists reports whether a token has been stored.
func (f *TokenFile) Exists() bool {
	_, err := os.Stat(f.Path)
	return err == nil
}

// savingTokenSource writes refreshed tokens back to the token file.
type savingTokenSource struct {
	ctx  context.Context
	src  oauth2.TokenSource
	file *TokenFile

	mu   sync.Mutex
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAuthorized, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		if err := s.file.Save(tok); err != nil {
			log.FromCtx(s.ctx).Warn().Err(err).Msg("failed to persist refreshed google token")
		}
	}
	return tok, nil
}

// HTTPClient returns a client authorized with the stored token. Refreshed
// tokens are saved back to the file.
func HTTPClient(ctx context.Context, cfg *oauth2.Config, file *TokenFile) (*http.Client, error) {
	tok, err := file.Load()
	if err != nil {
		return nil, err
	}

	src := &savingTokenSource{
		ctx:  ctx,
		src:  cfg.TokenSource(ctx, tok),
		file: file,
		last: tok.AccessToken,
	}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, src)), nil
}

// Authorize runs the installed-app flow: it serves a loopback redirect,
// hands the consent URL to prompt and stores the resulting token.
func Authorize(ctx context.Context, cfg *oauth2.Config, file *TokenFile, prompt func(url string)) error {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	flow := *cfg
	flow.RedirectURL = fmt.Sprintf("http://%s/", ln.Addr().String())

	state, err := randomState()
	if err != nil {
		return err
	}
	verifier := oauth2.GenerateVerifier()

	type result struct {
		code string
		err  error
	}
	done := make(chan result, 1)
	deliver := func(r result) {
		select {
		case done <- r:
		default:
		}
	}

	srv := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			switch {
			case q.Get("state") != state:
				http.Error(w, "estado OAuth no válido", http.StatusBadRequest)
				return
			case q.Get("error") != "":
				fmt.Fprintln(w, "Autorización cancelada. Puedes cerrar esta ventana.")
				deliver(result{err: fmt.Errorf("authorization denied: %s", q.Get("error"))})
				return
			}
			fmt.Fprintln(w, "Autorización completada. Puedes cerrar esta ventana.")
			deliver(result{code: q.Get("code")})
		}),
	}
	go func() { _ = srv.Serve(ln) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	prompt(flow.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier)))

	var res result
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res = <-done:
	}
	if res.err != nil {
		return res.err
	}

	tok, err := flow.Exchange(ctx, res.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return fmt.Errorf("exchange code: %w", err)
	}
	return file.Save(tok)
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}
