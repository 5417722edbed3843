package dto

// Tipos de erro de login expostos à UI.
const (
	TipoErroEmailNaoConfirmado   = "email_nao_confirmado"
	TipoErroCredenciaisInvalidas = "credenciais_invalidas"
	TipoErroGenerico             = "erro_generico"
)

// LoginRequest entrada do login.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// ResultadoLogin saída do login. Sucesso=true é apenas consultivo: o estado
// autenticado de fato chega pela notificação assíncrona do provedor.
type ResultadoLogin struct {
	Sucesso     bool   `json:"sucesso"`
	Mensagem    string `json:"mensagem,omitempty"`
	TipoErro    string `json:"tipo_erro,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
}

// CriarContaRequest entrada do cadastro. CodigoAcesso só é exigido para gerente.
type CriarContaRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Senha        string `json:"senha" validate:"required,min=6"`
	NomeCompleto string `json:"nome_completo" validate:"required,max=200"`
	Cargo        string `json:"cargo" validate:"required,oneof=gerente entregador"`
	CodigoAcesso string `json:"codigo_acesso" validate:"omitempty"`
}

// RecuperarSenhaRequest entrada da recuperação de senha.
type RecuperarSenhaRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RedefinirSenhaRequest entrada da redefinição. Token é o access token da sessão
// de recuperação estabelecida pelo provedor a partir do link do email.
type RedefinirSenhaRequest struct {
	Token     string `json:"token" validate:"required"`
	NovaSenha string `json:"nova_senha" validate:"required,min=6"`
}

// ReenviarConfirmacaoRequest entrada do reenvio de confirmação de cadastro.
type ReenviarConfirmacaoRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UsuarioResponse visão unificada identidade + perfil exposta pelo SessionBridge.
type UsuarioResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	NomeCompleto string `json:"nome_completo"`
	Cargo        string `json:"cargo"`
	EntregadorID *int64 `json:"entregador_id,omitempty"`
	Autenticado  bool   `json:"autenticado"`
	IsGerente    bool   `json:"is_gerente"`
	IsEntregador bool   `json:"is_entregador"`
}
