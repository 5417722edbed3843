package auth

import "context"

// Tipos de evento emitidos pelo provedor de autenticação.
const (
	EventoLogin         = "SIGNED_IN"
	EventoLogout        = "SIGNED_OUT"
	EventoTokenRenovado = "TOKEN_REFRESHED"
)

// Identidade é o usuário do provedor de auth (id opaco, nunca numérico).
type Identidade struct {
	ID    string
	Email string
}

// Sessao é uma sessão ativa no provedor.
type Sessao struct {
	AccessToken string
	Usuario     Identidade
}

// EventoAuth é uma notificação de mudança de estado de autenticação.
// Sessao é nil em SIGNED_OUT.
type EventoAuth struct {
	Tipo   string
	Sessao *Sessao
}

// Provedor é a porta para o serviço de autenticação hospedado (GoTrue).
// Erros conhecidos são mapeados para as sentinelas de domínio
// (ErrEmailNaoConfirmado, ErrCredenciaisInvalidas, ErrEmailJaCadastrado,
// ErrEmailNaoEncontrado).
type Provedor interface {
	SignInWithPassword(ctx context.Context, email, senha string) (*Sessao, error)
	SignUp(ctx context.Context, email, senha string) (*Identidade, error)
	SignOut(ctx context.Context, accessToken string) error
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
	UpdateUserPassword(ctx context.Context, accessToken, novaSenha string) error
	ResendSignupConfirmation(ctx context.Context, email string) error
	// Eventos devolve o stream de mudanças de estado de autenticação.
	Eventos() <-chan EventoAuth
}
