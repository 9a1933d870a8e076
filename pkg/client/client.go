// Package client é o cliente HTTP da API com gestão de sessão: guarda o
// par de tokens em um TokenStore, anexa o access token nas requisições
// autenticadas e, ao receber 401, tenta exatamente um refresh antes de
// repetir a requisição.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

var (
	// ErrNotAuthenticated indica que não há sessão válida no store.
	ErrNotAuthenticated = errors.New("client: not authenticated")
	// ErrSessionExpired indica que o refresh token foi rejeitado pelo
	// servidor e a sessão local foi descartada.
	ErrSessionExpired = errors.New("client: session expired")
)

// APIError carrega o payload RFC 7807 retornado pela API.
type APIError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Title)
}

// User é a projeção de usuário retornada pela API.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type authResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Client é um cliente da API com sessão persistida.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      TokenStore

	// serializa o refresh: requisições concorrentes que levarem 401
	// não devem disparar rotações paralelas do mesmo token
	refreshMu sync.Mutex
}

// Option configura o Client.
type Option func(*Client)

// WithHTTPClient substitui o http.Client padrão.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New cria um Client apontando para baseURL, persistindo a sessão em store.
func New(baseURL string, store TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		store:   store,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register cria uma conta e já estabelece a sessão retornada.
func (c *Client) Register(ctx context.Context, email, password, name string) (*User, error) {
	body := map[string]string{"email": email, "password": password, "name": name}

	var result authResponse
	if err := c.doPublic(ctx, http.MethodPost, "/auth/register", body, &result); err != nil {
		return nil, err
	}

	if err := c.store.Save(Session{AccessToken: result.AccessToken, RefreshToken: result.RefreshToken}); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &result.User, nil
}

// Login autentica e persiste a sessão retornada.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}

	var result authResponse
	if err := c.doPublic(ctx, http.MethodPost, "/auth/login", body, &result); err != nil {
		return nil, err
	}

	if err := c.store.Save(Session{AccessToken: result.AccessToken, RefreshToken: result.RefreshToken}); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &result.User, nil
}

// Logout revoga o refresh token no servidor e descarta a sessão local.
// A sessão local é descartada mesmo se a revogação remota falhar.
func (c *Client) Logout(ctx context.Context) error {
	session, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	if session.RefreshToken != "" {
		body := map[string]string{"refreshToken": session.RefreshToken}
		// best effort: 401 aqui só significa que a sessão já caiu
		_ = c.Do(ctx, http.MethodPost, "/auth/logout", body, nil)
	}

	return c.store.Clear()
}

// Me retorna o usuário autenticado.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.Do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Restore valida a sessão persistida na inicialização: tenta /auth/me
// com o access token salvo e, se ele expirou, tenta um refresh. Uma
// sessão irrecuperável é removida do store e ErrNotAuthenticated é
// retornado.
func (c *Client) Restore(ctx context.Context) (*User, error) {
	session, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session.AccessToken == "" && session.RefreshToken == "" {
		return nil, ErrNotAuthenticated
	}

	user, err := c.Me(ctx)
	if err != nil {
		var apiErr *APIError
		unauthorized := errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
		if unauthorized || errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrNotAuthenticated) {
			_ = c.store.Clear()
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	return user, nil
}

// Do executa uma requisição autenticada. Em caso de 401 tenta um único
// refresh e repete a requisição uma vez; se o refresh falhar, a sessão
// local é descartada e ErrSessionExpired é retornado.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	session, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if session.AccessToken == "" {
		return ErrNotAuthenticated
	}

	status, data, err := c.roundTrip(ctx, method, path, body, session.AccessToken)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		session, err = c.refresh(ctx)
		if err != nil {
			return err
		}

		status, data, err = c.roundTrip(ctx, method, path, body, session.AccessToken)
		if err != nil {
			return err
		}
	}

	return decodeResponse(status, data, out)
}

// refresh rotaciona o par de tokens e persiste o novo par. O refresh
// token é de uso único: o par antigo deixa de valer após a rotação.
func (c *Client) refresh(ctx context.Context) (Session, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Outra goroutine pode ter rotacionado enquanto esperávamos o lock
	session, err := c.store.Load()
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	if session.RefreshToken == "" {
		return Session{}, ErrNotAuthenticated
	}

	body := map[string]string{"refreshToken": session.RefreshToken}

	var pair tokenPairResponse
	if err := c.doPublic(ctx, http.MethodPost, "/auth/refresh", body, &pair); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			_ = c.store.Clear()
			return Session{}, ErrSessionExpired
		}
		return Session{}, err
	}

	newSession := Session{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}
	if err := c.store.Save(newSession); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	return newSession, nil
}

// doPublic executa uma requisição sem Authorization header.
func (c *Client) doPublic(ctx context.Context, method, path string, body, out interface{}) error {
	status, data, err := c.roundTrip(ctx, method, path, body, "")
	if err != nil {
		return err
	}
	return decodeResponse(status, data, out)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body interface{}, accessToken string) (int, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, data, nil
}

func decodeResponse(status int, data []byte, out interface{}) error {
	if status >= 400 {
		apiErr := &APIError{Status: status}
		if len(data) > 0 {
			_ = json.Unmarshal(data, apiErr)
			apiErr.Status = status
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
