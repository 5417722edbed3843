package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apenask/gest-oentregas/internal/application/auth"
	"github.com/apenask/gest-oentregas/internal/application/dto"
	"github.com/apenask/gest-oentregas/internal/domain"
	"github.com/apenask/gest-oentregas/internal/domain/entity"
	"github.com/apenask/gest-oentregas/pkg/logger"
)

const (
	codigoGerente = "BORDA777"
	usuarioID     = "00000000-0000-0000-0000-00000000aa01"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// provedorFake implementa auth.Provedor em memória e conta chamadas remotas.
type provedorFake struct {
	mu       sync.Mutex
	eventos  chan auth.EventoAuth
	chamadas int

	signInErr  error
	signUpErr  error
	signOutErr error
	sessao     *auth.Sessao
	identidade auth.Identidade
}

func newProvedorFake() *provedorFake {
	return &provedorFake{
		eventos:    make(chan auth.EventoAuth, 16),
		identidade: auth.Identidade{ID: usuarioID, Email: "ana@borda.com"},
	}
}

func (p *provedorFake) contar() {
	p.mu.Lock()
	p.chamadas++
	p.mu.Unlock()
}

func (p *provedorFake) totalChamadas() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chamadas
}

func (p *provedorFake) SignInWithPassword(ctx context.Context, email, senha string) (*auth.Sessao, error) {
	p.contar()
	if p.signInErr != nil {
		return nil, p.signInErr
	}
	if p.sessao == nil {
		p.sessao = &auth.Sessao{AccessToken: "token-abc", Usuario: p.identidade}
	}
	return p.sessao, nil
}

func (p *provedorFake) SignUp(ctx context.Context, email, senha string) (*auth.Identidade, error) {
	p.contar()
	if p.signUpErr != nil {
		return nil, p.signUpErr
	}
	id := p.identidade
	id.Email = email
	return &id, nil
}

func (p *provedorFake) SignOut(ctx context.Context, accessToken string) error {
	p.contar()
	return p.signOutErr
}

func (p *provedorFake) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	p.contar()
	return nil
}

func (p *provedorFake) UpdateUserPassword(ctx context.Context, accessToken, novaSenha string) error {
	p.contar()
	return nil
}

func (p *provedorFake) ResendSignupConfirmation(ctx context.Context, email string) error {
	p.contar()
	return nil
}

func (p *provedorFake) Eventos() <-chan auth.EventoAuth {
	return p.eventos
}

// perfilRepoFake guarda perfis por id.
type perfilRepoFake struct {
	mu      sync.Mutex
	perfis  map[string]*entity.Perfil
	falhaEm error
}

func newPerfilRepoFake() *perfilRepoFake {
	return &perfilRepoFake{perfis: make(map[string]*entity.Perfil)}
}

func (r *perfilRepoFake) GetByID(id string) (*entity.Perfil, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.perfis[id], nil
}

func (r *perfilRepoFake) Create(perfil *entity.Perfil) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.falhaEm != nil {
		return r.falhaEm
	}
	r.perfis[perfil.ID] = perfil
	return nil
}

// entregadorRepoFake guarda entregadores por usuário.
type entregadorRepoFake struct {
	mu           sync.Mutex
	porUsuario   map[string]*entity.Entregador
	proximoID    int64
	criados      int
	falhaCriacao error
}

func newEntregadorRepoFake() *entregadorRepoFake {
	return &entregadorRepoFake{porUsuario: make(map[string]*entity.Entregador), proximoID: 1}
}

func (r *entregadorRepoFake) ListAtivos() ([]*entity.Entregador, error) { return nil, nil }

func (r *entregadorRepoFake) GetByID(id int64) (*entity.Entregador, error) { return nil, nil }

func (r *entregadorRepoFake) GetByUsuarioID(usuarioID string) (*entity.Entregador, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.porUsuario[usuarioID], nil
}

func (r *entregadorRepoFake) Create(entregador *entity.Entregador) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.falhaCriacao != nil {
		return r.falhaCriacao
	}
	entregador.ID = r.proximoID
	r.proximoID++
	r.criados++
	r.porUsuario[entregador.UsuarioID] = entregador
	return nil
}

func (r *entregadorRepoFake) UpdateNome(id int64, nomeCompleto string) error { return nil }

func (r *entregadorRepoFake) Desativar(id int64) error { return nil }

func novoBridge(t *testing.T, provedor *provedorFake, perfis *perfilRepoFake, entregadores *entregadorRepoFake) *auth.SessionBridge {
	t.Helper()
	bridge := auth.NewSessionBridge(provedor, perfis, entregadores, auth.Config{
		CodigoGerente:    codigoGerente,
		ResetRedirectURL: "http://localhost:5173/redefinir-senha",
	}, logger.NewNop())
	bridge.Iniciar(context.Background())
	t.Cleanup(bridge.Fechar)
	return bridge
}

// ──────────────────────────────────────────────────────────────────────────────
// Cadastro
// ──────────────────────────────────────────────────────────────────────────────

// Código de gerente errado deve falhar antes de qualquer chamada remota.
func TestCriarConta_CodigoGerenteInvalido_NaoChamaProvedor(t *testing.T) {
	provedor := newProvedorFake()
	bridge := novoBridge(t, provedor, newPerfilRepoFake(), newEntregadorRepoFake())

	out := bridge.CriarConta(context.Background(), dto.CriarContaRequest{
		Email:        "chefe@borda.com",
		Senha:        "segredo1",
		NomeCompleto: "Chefe",
		Cargo:        entity.CargoGerente,
		CodigoAcesso: "ERRADO",
	})

	assert.False(t, out.Sucesso)
	assert.Equal(t, "Código de acesso inválido.", out.Mensagem)
	assert.Zero(t, provedor.totalChamadas(), "validação local não deve tocar o provedor")
}

func TestCriarConta_SenhaCurta(t *testing.T) {
	provedor := newProvedorFake()
	bridge := novoBridge(t, provedor, newPerfilRepoFake(), newEntregadorRepoFake())

	out := bridge.CriarConta(context.Background(), dto.CriarContaRequest{
		Email:        "x@borda.com",
		Senha:        "12345",
		NomeCompleto: "X",
		Cargo:        entity.CargoEntregador,
	})

	assert.False(t, out.Sucesso)
	assert.Equal(t, "A senha deve ter pelo menos 6 caracteres.", out.Mensagem)
	assert.Zero(t, provedor.totalChamadas())
}

// Cadastro de entregador cria identidade, perfil e a linha em entregadores.
func TestCriarConta_EntregadorCriaLinhaVinculada(t *testing.T) {
	provedor := newProvedorFake()
	perfis := newPerfilRepoFake()
	entregadores := newEntregadorRepoFake()
	bridge := novoBridge(t, provedor, perfis, entregadores)

	out := bridge.CriarConta(context.Background(), dto.CriarContaRequest{
		Email:        "Carlos@Borda.com",
		Senha:        "segredo1",
		NomeCompleto: "Carlos Lima",
		Cargo:        entity.CargoEntregador,
	})

	require.True(t, out.Sucesso, out.Mensagem)

	perfil, err := perfis.GetByID(usuarioID)
	require.NoError(t, err)
	require.NotNil(t, perfil)
	assert.Equal(t, entity.CargoEntregador, perfil.Cargo)

	entregador, err := entregadores.GetByUsuarioID(usuarioID)
	require.NoError(t, err)
	require.NotNil(t, entregador)
	assert.Equal(t, "Carlos Lima", entregador.NomeCompleto)
	assert.True(t, entregador.Ativo)
}

func TestCriarConta_GerenteNaoCriaEntregador(t *testing.T) {
	provedor := newProvedorFake()
	entregadores := newEntregadorRepoFake()
	bridge := novoBridge(t, provedor, newPerfilRepoFake(), entregadores)

	out := bridge.CriarConta(context.Background(), dto.CriarContaRequest{
		Email:        "chefe@borda.com",
		Senha:        "segredo1",
		NomeCompleto: "Chefe",
		Cargo:        entity.CargoGerente,
		CodigoAcesso: codigoGerente,
	})

	require.True(t, out.Sucesso, out.Mensagem)
	assert.Zero(t, entregadores.criados)
}

func TestCriarConta_EmailJaCadastrado(t *testing.T) {
	provedor := newProvedorFake()
	provedor.signUpErr = domain.ErrEmailJaCadastrado
	bridge := novoBridge(t, provedor, newPerfilRepoFake(), newEntregadorRepoFake())

	out := bridge.CriarConta(context.Background(), dto.CriarContaRequest{
		Email:        "repetido@borda.com",
		Senha:        "segredo1",
		NomeCompleto: "Repetido",
		Cargo:        entity.CargoEntregador,
	})

	assert.False(t, out.Sucesso)
	assert.Equal(t, "Este email já está cadastrado no sistema.", out.Mensagem)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmailNaoConfirmado(t *testing.T) {
	provedor := newProvedorFake()
	provedor.signInErr = domain.ErrEmailNaoConfirmado
	bridge := novoBridge(t, provedor, newPerfilRepoFake(), newEntregadorRepoFake())

	out := bridge.Login(context.Background(), "ana@borda.com", "segredo1")

	assert.False(t, out.Sucesso)
	assert.Equal(t, dto.TipoErroEmailNaoConfirmado, out.TipoErro)
	assert.False(t, bridge.IsAuthenticated())
}

func TestLogin_CredenciaisInvalidas(t *testing.T) {
	provedor := newProvedorFake()
	provedor.signInErr = domain.ErrCredenciaisInvalidas
	bridge := novoBridge(t, provedor, newPerfilRepoFake(), newEntregadorRepoFake())

	out := bridge.Login(context.Background(), "ana@borda.com", "errada")

	assert.False(t, out.Sucesso)
	assert.Equal(t, dto.TipoErroCredenciaisInvalidas, out.TipoErro)
	assert.Equal(t, "Email ou senha incorretos.", out.Mensagem)
}

func TestLogin_ErroGenerico(t *testing.T) {
	provedor := newProvedorFake()
	provedor.signInErr = errors.New("rede fora")
	bridge := novoBridge(t, provedor, newPerfilRepoFake(), newEntregadorRepoFake())

	out := bridge.Login(context.Background(), "ana@borda.com", "segredo1")

	assert.False(t, out.Sucesso)
	assert.Equal(t, dto.TipoErroGenerico, out.TipoErro)
}

func TestLogin_SucessoDevolveAccessToken(t *testing.T) {
	provedor := newProvedorFake()
	bridge := novoBridge(t, provedor, newPerfilRepoFake(), newEntregadorRepoFake())

	out := bridge.Login(context.Background(), "  ANA@Borda.com  ", "segredo1")

	require.True(t, out.Sucesso)
	assert.Equal(t, "token-abc", out.AccessToken)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eventos do provedor → estado derivado
// ──────────────────────────────────────────────────────────────────────────────

func TestEventos_LoginResolveAutenticadoComPerfil(t *testing.T) {
	provedor := newProvedorFake()
	perfis := newPerfilRepoFake()
	perfis.perfis[usuarioID] = &entity.Perfil{ID: usuarioID, NomeCompleto: "Ana Souza", Cargo: entity.CargoGerente}
	bridge := novoBridge(t, provedor, perfis, newEntregadorRepoFake())

	provedor.eventos <- auth.EventoAuth{
		Tipo:   auth.EventoLogin,
		Sessao: &auth.Sessao{AccessToken: "token-abc", Usuario: provedor.identidade},
	}

	require.Eventually(t, bridge.IsAuthenticated, time.Second, 5*time.Millisecond)
	assert.True(t, bridge.IsGerente())
	assert.False(t, bridge.IsEntregador())

	usuario := bridge.Usuario()
	require.NotNil(t, usuario)
	assert.Equal(t, usuarioID, usuario.ID)
	assert.Equal(t, "Ana Souza", usuario.NomeCompleto)
	assert.Nil(t, usuario.EntregadorID)
}

// Sessão válida sem perfil correspondente resolve como não autenticado.
func TestEventos_SessaoSemPerfilResolveNaoAutenticado(t *testing.T) {
	provedor := newProvedorFake()
	bridge := novoBridge(t, provedor, newPerfilRepoFake(), newEntregadorRepoFake())

	provedor.eventos <- auth.EventoAuth{
		Tipo:   auth.EventoLogin,
		Sessao: &auth.Sessao{AccessToken: "token-abc", Usuario: provedor.identidade},
	}

	require.Eventually(t, func() bool {
		return bridge.Estado() == auth.EstadoNaoAutenticado
	}, time.Second, 5*time.Millisecond)
	assert.False(t, bridge.IsAuthenticated())
	assert.Nil(t, bridge.Usuario())
}

func TestEventos_EntregadorResolveVinculo(t *testing.T) {
	provedor := newProvedorFake()
	perfis := newPerfilRepoFake()
	perfis.perfis[usuarioID] = &entity.Perfil{ID: usuarioID, NomeCompleto: "Carlos Lima", Cargo: entity.CargoEntregador}
	entregadores := newEntregadorRepoFake()
	require.NoError(t, entregadores.Create(&entity.Entregador{UsuarioID: usuarioID, NomeCompleto: "Carlos Lima", Ativo: true}))
	bridge := novoBridge(t, provedor, perfis, entregadores)

	provedor.eventos <- auth.EventoAuth{
		Tipo:   auth.EventoLogin,
		Sessao: &auth.Sessao{AccessToken: "token-abc", Usuario: provedor.identidade},
	}

	require.Eventually(t, bridge.IsAuthenticated, time.Second, 5*time.Millisecond)
	assert.True(t, bridge.IsEntregador())

	usuario := bridge.Usuario()
	require.NotNil(t, usuario)
	require.NotNil(t, usuario.EntregadorID)
	assert.Equal(t, int64(1), *usuario.EntregadorID)
}

func TestEventos_LogoutLimpaEstado(t *testing.T) {
	provedor := newProvedorFake()
	perfis := newPerfilRepoFake()
	perfis.perfis[usuarioID] = &entity.Perfil{ID: usuarioID, NomeCompleto: "Ana Souza", Cargo: entity.CargoGerente}
	bridge := novoBridge(t, provedor, perfis, newEntregadorRepoFake())

	provedor.eventos <- auth.EventoAuth{
		Tipo:   auth.EventoLogin,
		Sessao: &auth.Sessao{AccessToken: "token-abc", Usuario: provedor.identidade},
	}
	require.Eventually(t, bridge.IsAuthenticated, time.Second, 5*time.Millisecond)

	provedor.eventos <- auth.EventoAuth{Tipo: auth.EventoLogout}

	require.Eventually(t, func() bool {
		return bridge.Estado() == auth.EstadoNaoAutenticado
	}, time.Second, 5*time.Millisecond)
	assert.Nil(t, bridge.Usuario())
	assert.False(t, bridge.IsGerente())
}

// ──────────────────────────────────────────────────────────────────────────────
// Logout
// ──────────────────────────────────────────────────────────────────────────────

// Erro do provedor no logout não pode deixar a sessão local presa.
func TestLogout_ErroDoProvedorLimpaEstadoLocal(t *testing.T) {
	provedor := newProvedorFake()
	perfis := newPerfilRepoFake()
	perfis.perfis[usuarioID] = &entity.Perfil{ID: usuarioID, NomeCompleto: "Ana Souza", Cargo: entity.CargoGerente}
	bridge := novoBridge(t, provedor, perfis, newEntregadorRepoFake())

	provedor.eventos <- auth.EventoAuth{
		Tipo:   auth.EventoLogin,
		Sessao: &auth.Sessao{AccessToken: "token-abc", Usuario: provedor.identidade},
	}
	require.Eventually(t, bridge.IsAuthenticated, time.Second, 5*time.Millisecond)

	provedor.signOutErr = errors.New("provedor fora do ar")
	bridge.Logout(context.Background())

	assert.Equal(t, auth.EstadoNaoAutenticado, bridge.Estado())
	assert.False(t, bridge.IsAuthenticated())
	assert.Nil(t, bridge.Usuario())
}

// ──────────────────────────────────────────────────────────────────────────────
// Senha
// ──────────────────────────────────────────────────────────────────────────────

func TestRedefinirSenha_Curta(t *testing.T) {
	provedor := newProvedorFake()
	bridge := novoBridge(t, provedor, newPerfilRepoFake(), newEntregadorRepoFake())

	out := bridge.RedefinirSenha(context.Background(), "token-rec", "123")

	assert.False(t, out.Sucesso)
	assert.Equal(t, "A senha deve ter pelo menos 6 caracteres.", out.Mensagem)
	assert.Zero(t, provedor.totalChamadas())
}

func TestRecuperarSenha_Sucesso(t *testing.T) {
	provedor := newProvedorFake()
	bridge := novoBridge(t, provedor, newPerfilRepoFake(), newEntregadorRepoFake())

	out := bridge.RecuperarSenha(context.Background(), "ana@borda.com")

	assert.True(t, out.Sucesso)
	assert.Equal(t, "Email de recuperação enviado! Verifique sua caixa de entrada.", out.Mensagem)
}
