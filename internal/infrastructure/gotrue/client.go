package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apenask/gest-oentregas/internal/application/auth"
	"github.com/apenask/gest-oentregas/internal/domain"
)

// Verificação em tempo de compilação de que Client implementa auth.Provedor.
var _ auth.Provedor = (*Client)(nil)

// Client adaptador REST para o provedor de autenticação hospedado (GoTrue/Supabase Auth).
// Usa net/http da biblioteca padrão; não há SDK Go oficial.
// Além das chamadas, publica eventos de mudança de estado (SIGNED_IN/SIGNED_OUT)
// no canal devolvido por Eventos, consumido pelo SessionBridge.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	eventos    chan auth.EventoAuth
}

// New constrói o cliente. baseURL é a raiz do serviço de auth
// (ex. https://<projeto>.supabase.co/auth/v1); anonKey acompanha toda chamada.
func New(baseURL, anonKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		eventos: make(chan auth.EventoAuth, 16),
	}
}

// ── Estruturas do protocolo GoTrue ────────────────────────────────────────────

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	User         gotrueUser `json:"user"`
}

type signupResponse struct {
	// Com confirmação de email ativa o GoTrue devolve o próprio usuário;
	// algumas versões aninham em "user".
	ID   string      `json:"id"`
	User *gotrueUser `json:"user"`
}

type errorResponse struct {
	Code             string `json:"code"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (e errorResponse) texto() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription} {
		if s != "" {
			return s
		}
	}
	return ""
}

// ── Implementação da porta ────────────────────────────────────────────────────

// SignInWithPassword autentica por email/senha (grant password) e, em caso de
// sucesso, publica SIGNED_IN no stream de eventos.
func (c *Client) SignInWithPassword(ctx context.Context, email, senha string) (*auth.Sessao, error) {
	payload := map[string]string{"email": email, "password": senha}
	var out tokenResponse
	if err := c.post(ctx, "/token?grant_type=password", "", payload, &out); err != nil {
		return nil, err
	}
	sessao := &auth.Sessao{
		AccessToken: out.AccessToken,
		Usuario:     auth.Identidade{ID: out.User.ID, Email: out.User.Email},
	}
	c.publicar(auth.EventoAuth{Tipo: auth.EventoLogin, Sessao: sessao})
	return sessao, nil
}

// SignUp cria a identidade no provedor. A conta nasce pendente de confirmação
// de email; nenhum evento é publicado aqui.
func (c *Client) SignUp(ctx context.Context, email, senha string) (*auth.Identidade, error) {
	payload := map[string]string{"email": email, "password": senha}
	var out signupResponse
	if err := c.post(ctx, "/signup", "", payload, &out); err != nil {
		return nil, err
	}
	id := out.ID
	mail := email
	if out.User != nil {
		id = out.User.ID
		if out.User.Email != "" {
			mail = out.User.Email
		}
	}
	if id == "" {
		return nil, fmt.Errorf("gotrue: signup sem id de usuário na resposta")
	}
	return &auth.Identidade{ID: id, Email: mail}, nil
}

// SignOut encerra a sessão no provedor e publica SIGNED_OUT mesmo em erro,
// para que o estado local nunca fique preso em autenticado.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	err := c.post(ctx, "/logout", accessToken, nil, nil)
	c.publicar(auth.EventoAuth{Tipo: auth.EventoLogout})
	return err
}

// ResetPasswordForEmail dispara o email de recuperação com o redirect configurado.
func (c *Client) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	path := "/recover"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	return c.post(ctx, path, "", map[string]string{"email": email}, nil)
}

// UpdateUserPassword troca a senha usando a sessão de recuperação já
// estabelecida pelo provedor (o token não é revalidado localmente).
func (c *Client) UpdateUserPassword(ctx context.Context, accessToken, novaSenha string) error {
	return c.put(ctx, "/user", accessToken, map[string]string{"password": novaSenha})
}

// ResendSignupConfirmation reenvia o email de confirmação de cadastro.
func (c *Client) ResendSignupConfirmation(ctx context.Context, email string) error {
	payload := map[string]string{"type": "signup", "email": email}
	return c.post(ctx, "/resend", "", payload, nil)
}

// Eventos devolve o stream de mudanças de estado de autenticação.
func (c *Client) Eventos() <-chan auth.EventoAuth {
	return c.eventos
}

func (c *Client) publicar(ev auth.EventoAuth) {
	select {
	case c.eventos <- ev:
	default:
		// Sem consumidor: descarta para não travar a chamada.
	}
}

// ── Transporte ────────────────────────────────────────────────────────────────

func (c *Client) post(ctx context.Context, path, bearer string, payload, out any) error {
	return c.do(ctx, http.MethodPost, path, bearer, payload, out)
}

func (c *Client) put(ctx context.Context, path, bearer string, payload any) error {
	return c.do(ctx, http.MethodPut, path, bearer, payload, nil)
}

func (c *Client) do(ctx context.Context, method, path, bearer string, payload, out any) error {
	if c.baseURL == "" {
		return fmt.Errorf("gotrue: AUTH_BASE_URL não configurado")
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("gotrue: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("gotrue: montar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else if c.anonKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gotrue: chamada %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gotrue: ler resposta: %w", err)
	}

	if resp.StatusCode >= 400 {
		return c.mapearErro(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("gotrue: decodificar resposta: %w", err)
		}
	}
	return nil
}

// mapearErro converte o payload de erro do provedor nas sentinelas de domínio.
func (c *Client) mapearErro(status int, raw []byte) error {
	var er errorResponse
	_ = json.Unmarshal(raw, &er)

	codigo := er.ErrorCode
	if codigo == "" {
		codigo = er.Code
	}
	texto := strings.ToLower(er.texto())

	switch {
	case codigo == "email_not_confirmed" || strings.Contains(texto, "email not confirmed"):
		return domain.ErrEmailNaoConfirmado
	case codigo == "invalid_credentials" || strings.Contains(texto, "invalid login credentials"):
		return domain.ErrCredenciaisInvalidas
	case codigo == "user_already_exists" || codigo == "email_exists" || strings.Contains(texto, "already registered"):
		return domain.ErrEmailJaCadastrado
	case codigo == "user_not_found" || strings.Contains(texto, "not found"):
		return domain.ErrEmailNaoEncontrado
	}
	if t := er.texto(); t != "" {
		return fmt.Errorf("gotrue: %s (HTTP %d)", t, status)
	}
	return fmt.Errorf("gotrue: HTTP %d", status)
}
