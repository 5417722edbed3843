package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/apenask/gest-oentregas/internal/application/dto"
	"github.com/apenask/gest-oentregas/internal/domain"
	"github.com/apenask/gest-oentregas/internal/domain/entity"
	"github.com/apenask/gest-oentregas/internal/domain/repository"
	"github.com/apenask/gest-oentregas/pkg/logger"
)

// Estado do SessionBridge.
type Estado int

const (
	EstadoNaoIniciado Estado = iota
	EstadoCarregando
	EstadoAutenticado
	EstadoNaoAutenticado
)

// Usuario é a visão unificada identidade + perfil exposta aos consumidores.
type Usuario struct {
	ID           string // uuid da identidade externa, carregado como veio
	Email        string
	NomeCompleto string
	Cargo        string
	EntregadorID *int64 // preenchido quando o cargo é entregador
}

// SessionBridge é a fonte única de verdade de "quem está logado e com qual cargo".
// Reconcilia a identidade do provedor de auth com o Perfil do domínio, dirigido
// pelas notificações assíncronas do provedor (login, logout, refresh de token).
// Uma instância por processo; Iniciar liga o consumo de eventos e Fechar desliga.
type SessionBridge struct {
	provedor       Provedor
	perfilRepo     repository.PerfilRepository
	entregadorRepo repository.EntregadorRepository
	codigoGerente  string
	resetRedirect  string
	log            *logger.Logger

	mu      sync.Mutex
	estado  Estado
	sessao  *Sessao
	perfil  *entity.Perfil
	vinculo *int64 // id do entregador vinculado, quando houver

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config parâmetros do SessionBridge.
type Config struct {
	CodigoGerente    string
	ResetRedirectURL string
}

// NewSessionBridge constrói o bridge. Chamar Iniciar antes de usar o estado derivado.
func NewSessionBridge(provedor Provedor, perfilRepo repository.PerfilRepository, entregadorRepo repository.EntregadorRepository, cfg Config, log *logger.Logger) *SessionBridge {
	return &SessionBridge{
		provedor:       provedor,
		perfilRepo:     perfilRepo,
		entregadorRepo: entregadorRepo,
		codigoGerente:  cfg.CodigoGerente,
		resetRedirect:  cfg.ResetRedirectURL,
		log:            log,
		estado:         EstadoNaoIniciado,
	}
}

// Iniciar liga o consumo do stream de eventos do provedor. O goroutine vive até
// Fechar (ou o cancelamento do ctx pai).
func (b *SessionBridge) Iniciar(ctx context.Context) {
	ctx, b.cancel = context.WithCancel(ctx)

	b.mu.Lock()
	if b.estado == EstadoNaoIniciado {
		b.estado = EstadoNaoAutenticado
	}
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		eventos := b.provedor.Eventos()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-eventos:
				if !ok {
					return
				}
				b.processarEvento(ev)
			}
		}
	}()
}

// Fechar encerra o consumo de eventos e aguarda o goroutine terminar.
func (b *SessionBridge) Fechar() {
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
}

// processarEvento aplica uma notificação do provedor: marca carregando, busca o
// perfil da identidade e resolve o estado. Sessão válida sem perfil resolve
// como não autenticado (perfil nulo), sem retry.
func (b *SessionBridge) processarEvento(ev EventoAuth) {
	b.mu.Lock()
	b.estado = EstadoCarregando
	b.sessao = ev.Sessao
	b.mu.Unlock()

	if ev.Sessao == nil {
		b.mu.Lock()
		b.perfil = nil
		b.vinculo = nil
		b.estado = EstadoNaoAutenticado
		b.mu.Unlock()
		return
	}

	perfil, err := b.perfilRepo.GetByID(ev.Sessao.Usuario.ID)
	if err != nil {
		// Falha que não é "linha inexistente": loga e segue sem perfil.
		b.log.Error().Err(err).Str("usuario_id", ev.Sessao.Usuario.ID).Msg("buscar perfil")
		perfil = nil
	}

	var vinculo *int64
	if perfil != nil && perfil.Cargo == entity.CargoEntregador {
		entregador, err := b.entregadorRepo.GetByUsuarioID(perfil.ID)
		if err != nil {
			b.log.Error().Err(err).Str("usuario_id", perfil.ID).Msg("buscar entregador vinculado")
		} else if entregador != nil {
			vinculo = &entregador.ID
		}
	}

	b.mu.Lock()
	b.perfil = perfil
	b.vinculo = vinculo
	if perfil != nil {
		b.estado = EstadoAutenticado
	} else {
		b.estado = EstadoNaoAutenticado
	}
	b.mu.Unlock()
}

// ── Visão derivada ────────────────────────────────────────────────────────────

// Estado devolve o estado atual do bridge.
func (b *SessionBridge) Estado() Estado {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.estado
}

// Usuario devolve a visão unificada, ou nil se identidade e perfil ainda não
// resolveram juntos.
func (b *SessionBridge) Usuario() *Usuario {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sessao == nil || b.perfil == nil || b.estado != EstadoAutenticado {
		return nil
	}
	return &Usuario{
		ID:           b.sessao.Usuario.ID,
		Email:        b.sessao.Usuario.Email,
		NomeCompleto: b.perfil.NomeCompleto,
		Cargo:        b.perfil.Cargo,
		EntregadorID: b.vinculo,
	}
}

// IsAuthenticated só é verdadeiro com identidade E perfil resolvidos, fora de carregamento.
func (b *SessionBridge) IsAuthenticated() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.estado == EstadoAutenticado && b.sessao != nil && b.perfil != nil
}

// IsGerente informa se o perfil atual tem cargo gerente.
func (b *SessionBridge) IsGerente() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.perfil != nil && b.perfil.Cargo == entity.CargoGerente
}

// IsEntregador informa se o perfil atual tem cargo entregador.
func (b *SessionBridge) IsEntregador() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.perfil != nil && b.perfil.Cargo == entity.CargoEntregador
}

// ── Operações públicas ────────────────────────────────────────────────────────

// Login autentica por email/senha. O retorno é consultivo: a transição de estado
// acontece pela notificação do provedor, não aqui.
func (b *SessionBridge) Login(ctx context.Context, email, senha string) dto.ResultadoLogin {
	email = strings.ToLower(strings.TrimSpace(email))

	sessao, err := b.provedor.SignInWithPassword(ctx, email, senha)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailNaoConfirmado):
			return dto.ResultadoLogin{
				Sucesso:  false,
				Mensagem: "Seu email ainda não foi confirmado. Verifique sua caixa de entrada e clique no link de confirmação.",
				TipoErro: dto.TipoErroEmailNaoConfirmado,
			}
		case errors.Is(err, domain.ErrCredenciaisInvalidas):
			return dto.ResultadoLogin{
				Sucesso:  false,
				Mensagem: "Email ou senha incorretos.",
				TipoErro: dto.TipoErroCredenciaisInvalidas,
			}
		}
		b.log.Error().Err(err).Str("email", email).Msg("login")
		return dto.ResultadoLogin{
			Sucesso:  false,
			Mensagem: "Erro ao fazer login. Tente novamente.",
			TipoErro: dto.TipoErroGenerico,
		}
	}
	return dto.ResultadoLogin{Sucesso: true, AccessToken: sessao.AccessToken}
}

// CriarConta registra uma conta nova: identidade no provedor, perfil no banco e,
// para entregadores, a linha em entregadores. Os passos não são transacionais
// entre si; falha parcial deixa a identidade órfã (logado em warn).
func (b *SessionBridge) CriarConta(ctx context.Context, in dto.CriarContaRequest) dto.ResultadoMensagem {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if email == "" || in.Senha == "" || in.NomeCompleto == "" {
		return dto.ResultadoMensagem{Sucesso: false, Mensagem: "Preencha todos os campos obrigatórios."}
	}
	if len(in.Senha) < 6 {
		return dto.ResultadoMensagem{Sucesso: false, Mensagem: "A senha deve ter pelo menos 6 caracteres."}
	}
	if !entity.CargoValido(in.Cargo) {
		return dto.ResultadoMensagem{Sucesso: false, Mensagem: "Cargo inválido."}
	}
	// Validação do código antes de qualquer chamada remota.
	if in.Cargo == entity.CargoGerente {
		if in.CodigoAcesso == "" || in.CodigoAcesso != b.codigoGerente {
			return dto.ResultadoMensagem{Sucesso: false, Mensagem: "Código de acesso inválido."}
		}
	}

	identidade, err := b.provedor.SignUp(ctx, email, in.Senha)
	if err != nil {
		if errors.Is(err, domain.ErrEmailJaCadastrado) {
			return dto.ResultadoMensagem{Sucesso: false, Mensagem: "Este email já está cadastrado no sistema."}
		}
		b.log.Error().Err(err).Str("email", email).Msg("criar identidade")
		return dto.ResultadoMensagem{Sucesso: false, Mensagem: "Erro ao criar conta de autenticação."}
	}
	if !entity.IdentidadeValida(identidade.ID) {
		b.log.Error().Str("usuario_id", identidade.ID).Msg("provedor devolveu identidade fora do formato uuid")
		return dto.ResultadoMensagem{Sucesso: false, Mensagem: "Erro ao criar conta de autenticação."}
	}

	perfil := &entity.Perfil{
		ID:           identidade.ID,
		NomeCompleto: in.NomeCompleto,
		Cargo:        in.Cargo,
	}
	if err := b.perfilRepo.Create(perfil); err != nil {
		// Identidade criada no provedor sem perfil correspondente: não temos
		// credencial para removê-la de lá, então fica órfã.
		b.log.Warn().Err(err).Str("usuario_id", identidade.ID).Msg("perfil não criado; identidade órfã no provedor")
		return dto.ResultadoMensagem{Sucesso: false, Mensagem: "Erro ao criar conta: " + err.Error()}
	}

	if in.Cargo == entity.CargoEntregador {
		entregador := &entity.Entregador{
			UsuarioID:    identidade.ID,
			NomeCompleto: in.NomeCompleto,
			Ativo:        true,
		}
		if err := b.entregadorRepo.Create(entregador); err != nil {
			b.log.Warn().Err(err).Str("usuario_id", identidade.ID).Msg("registro de entregador não criado")
			return dto.ResultadoMensagem{Sucesso: false, Mensagem: "Erro ao criar conta: " + err.Error()}
		}
	}

	return dto.ResultadoMensagem{
		Sucesso:  true,
		Mensagem: "Conta de " + in.Cargo + " criada com sucesso! Verifique seu email para confirmar a conta.",
	}
}

// RecuperarSenha dispara o email de recuperação via provedor.
func (b *SessionBridge) RecuperarSenha(ctx context.Context, email string) dto.ResultadoMensagem {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := b.provedor.ResetPasswordForEmail(ctx, email, b.resetRedirect); err != nil {
		if errors.Is(err, domain.ErrEmailNaoEncontrado) {
			return dto.ResultadoMensagem{Sucesso: false, Mensagem: "Email não encontrado no sistema."}
		}
		b.log.Error().Err(err).Str("email", email).Msg("recuperar senha")
		return dto.ResultadoMensagem{Sucesso: false, Mensagem: "Erro ao enviar email de recuperação."}
	}
	return dto.ResultadoMensagem{Sucesso: true, Mensagem: "Email de recuperação enviado! Verifique sua caixa de entrada."}
}

// RedefinirSenha troca a senha usando a sessão de recuperação do provedor.
// O token em si não é revalidado aqui.
func (b *SessionBridge) RedefinirSenha(ctx context.Context, token, novaSenha string) dto.ResultadoMensagem {
	if len(novaSenha) < 6 {
		return dto.ResultadoMensagem{Sucesso: false, Mensagem: "A senha deve ter pelo menos 6 caracteres."}
	}
	if err := b.provedor.UpdateUserPassword(ctx, token, novaSenha); err != nil {
		b.log.Error().Err(err).Msg("redefinir senha")
		return dto.ResultadoMensagem{Sucesso: false, Mensagem: "Erro ao redefinir senha."}
	}
	return dto.ResultadoMensagem{Sucesso: true, Mensagem: "Senha redefinida com sucesso!"}
}

// ReenviarConfirmacao reenvia o email de confirmação de cadastro.
func (b *SessionBridge) ReenviarConfirmacao(ctx context.Context, email string) dto.ResultadoMensagem {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := b.provedor.ResendSignupConfirmation(ctx, email); err != nil {
		b.log.Error().Err(err).Str("email", email).Msg("reenviar confirmação")
		return dto.ResultadoMensagem{Sucesso: false, Mensagem: "Erro ao reenviar email de confirmação."}
	}
	return dto.ResultadoMensagem{Sucesso: true, Mensagem: "Email de confirmação reenviado! Verifique sua caixa de entrada."}
}

// Logout encerra a sessão no provedor. Em erro, o estado local é limpo à força
// para a UI nunca ficar presa como autenticada.
func (b *SessionBridge) Logout(ctx context.Context) {
	b.mu.Lock()
	token := ""
	if b.sessao != nil {
		token = b.sessao.AccessToken
	}
	b.mu.Unlock()

	if err := b.provedor.SignOut(ctx, token); err != nil {
		b.log.Error().Err(err).Msg("logout")
		b.mu.Lock()
		b.sessao = nil
		b.perfil = nil
		b.vinculo = nil
		b.estado = EstadoNaoAutenticado
		b.mu.Unlock()
	}
}
