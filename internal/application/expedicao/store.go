package expedicao

import (
	"sync"
	"time"

	"github.com/apenask/gest-oentregas/internal/application/dto"
	"github.com/apenask/gest-oentregas/internal/domain"
	"github.com/apenask/gest-oentregas/internal/domain/entity"
	"github.com/apenask/gest-oentregas/internal/domain/repository"
	"github.com/apenask/gest-oentregas/pkg/logger"
)

// Snapshot é a visão imutável-no-tempo das três coleções. É substituído por
// inteiro a cada FetchAll bem-sucedido; consumidores nunca mutam o conteúdo.
type Snapshot struct {
	Entregas     []*entity.Entrega
	Clientes     []*entity.Cliente
	Entregadores []*entity.Entregador
	AtualizadoEm time.Time
}

// Store é o dono exclusivo do cache em memória de entregas, clientes e
// entregadores. Toda mutação passa por aqui: uma escrita remota seguida de um
// reload completo (sem patch incremental nem atualização otimista).
type Store struct {
	entregaRepo    repository.EntregaRepository
	clienteRepo    repository.ClienteRepository
	entregadorRepo repository.EntregadorRepository
	log            *logger.Logger

	mu       sync.RWMutex
	snapshot Snapshot
	loading  bool
	lastErr  error
}

// NewStore constrói o store. Chamar FetchAll na subida para popular o cache.
func NewStore(entregaRepo repository.EntregaRepository, clienteRepo repository.ClienteRepository, entregadorRepo repository.EntregadorRepository, log *logger.Logger) *Store {
	return &Store{
		entregaRepo:    entregaRepo,
		clienteRepo:    clienteRepo,
		entregadorRepo: entregadorRepo,
		log:            log,
	}
}

// FetchAll recarrega as três coleções do banco e troca o snapshot por inteiro.
// A primeira consulta que falhar aborta as demais.
func (s *Store) FetchAll() error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	entregas, err := s.entregaRepo.ListComRelacionados()
	if err != nil {
		return s.falhaFetch(err)
	}
	clientes, err := s.clienteRepo.List()
	if err != nil {
		return s.falhaFetch(err)
	}
	entregadores, err := s.entregadorRepo.ListAtivos()
	if err != nil {
		return s.falhaFetch(err)
	}

	s.mu.Lock()
	s.snapshot = Snapshot{
		Entregas:     entregas,
		Clientes:     clientes,
		Entregadores: entregadores,
		AtualizadoEm: time.Now(),
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) falhaFetch(err error) error {
	s.log.Error().Err(err).Msg("recarregar dados")
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	return err
}

// Snapshot devolve a visão atual. O valor retornado não deve ser mutado.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Loading informa se um reload está em andamento.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err devolve o erro do último reload, se houver.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// recarregar roda o FetchAll pós-mutação. Falha aqui não derruba o resultado da
// mutação (a escrita remota já aconteceu); fica registrada em lastErr.
func (s *Store) recarregar() {
	_ = s.FetchAll()
}

// ── Entregas ──────────────────────────────────────────────────────────────────

// CreateEntrega cria uma entrega, inserindo antes o cliente inline se presente.
// Os dois inserts não são transacionais: se a entrega falhar depois do cliente,
// a compensação tenta remover o cliente recém-criado (uma única tentativa).
func (s *Store) CreateEntrega(in dto.NovaEntregaRequest) dto.Resultado {
	if !entity.FormaPagamentoValida(in.FormaPagamento) {
		return dto.Falha(domain.ErrEntradaInvalida)
	}
	if in.EntregadorID <= 0 {
		return dto.Falha(domain.ErrEntradaInvalida)
	}
	if in.ClienteNovo == nil && in.ClienteID <= 0 {
		return dto.Falha(domain.ErrEntradaInvalida)
	}

	clienteID := in.ClienteID
	clienteCriado := int64(0)
	if in.ClienteNovo != nil {
		novo := &entity.Cliente{
			NomeCompleto: in.ClienteNovo.Nome,
			RuaNumero:    in.ClienteNovo.RuaNumero,
			Bairro:       in.ClienteNovo.Bairro,
			Telefone:     in.ClienteNovo.Telefone,
		}
		id, err := s.clienteRepo.Create(novo)
		if err != nil {
			return dto.Falha(err)
		}
		clienteID = id
		clienteCriado = id
	}

	entrega := &entity.Entrega{
		NumeroPedido:   in.NumeroPedido,
		ClienteID:      clienteID,
		EntregadorID:   in.EntregadorID,
		FormaPagamento: in.FormaPagamento,
		ValorPedido:    in.ValorPedido,
		ValorCorrida:   in.ValorCorrida,
		Status:         entity.StatusAguardando,
		DataHoraPedido: time.Now(),
	}
	if err := s.entregaRepo.Create(entrega); err != nil {
		if clienteCriado != 0 {
			// Compensação de melhor esforço do insert inline.
			if derr := s.clienteRepo.Delete(clienteCriado); derr != nil {
				s.log.Warn().Err(derr).Int64("cliente_id", clienteCriado).Msg("compensação: cliente inline não removido")
			}
		}
		return dto.Falha(err)
	}

	s.recarregar()
	return dto.OK()
}

// UpdateEntregaStatus grava uma transição de status. Em Rota grava a saída;
// Entregue grava a chegada e, se o registro em memória tem saída e ainda não
// tem duração, grava a duração em segundos (piso). Cancelado grava só o status.
// Nenhuma legalidade de sucessão é imposta: qualquer status pode ser escrito.
func (s *Store) UpdateEntregaStatus(id int64, status string, dataHora *time.Time) dto.Resultado {
	if !entity.StatusValido(status) {
		return dto.Falha(domain.ErrEntradaInvalida)
	}

	atualizacao := entity.AtualizacaoStatus{Status: status}
	switch {
	case status == entity.StatusEmRota && dataHora != nil:
		atualizacao.DataHoraSaida = dataHora
	case status == entity.StatusEntregue && dataHora != nil:
		atualizacao.DataHoraEntrega = dataHora
		if atual := s.entregaEmMemoria(id); atual != nil &&
			atual.DataHoraSaida != nil && atual.DuracaoEntregaSegundos == nil {
			segundos := int64(dataHora.Sub(*atual.DataHoraSaida) / time.Second)
			atualizacao.DuracaoSegundos = &segundos
		}
	}

	if err := s.entregaRepo.UpdateStatus(id, atualizacao); err != nil {
		return dto.Falha(err)
	}

	s.recarregar()
	return dto.OK()
}

// UpdateEntrega grava a edição completa: primeiro a linha do cliente embutido
// (quando presente, mesmo sem mudanças), depois os campos mutáveis da entrega.
// Sem transação entre os dois passos.
func (s *Store) UpdateEntrega(in dto.EditarEntregaRequest) dto.Resultado {
	if in.Cliente != nil {
		cliente := &entity.Cliente{
			ID:           in.Cliente.ID,
			NomeCompleto: in.Cliente.Nome,
			RuaNumero:    in.Cliente.RuaNumero,
			Bairro:       in.Cliente.Bairro,
			Telefone:     in.Cliente.Telefone,
		}
		if err := s.clienteRepo.Update(cliente); err != nil {
			return dto.Falha(err)
		}
	}

	entrega := &entity.Entrega{
		ID:             in.ID,
		NumeroPedido:   in.NumeroPedido,
		ClienteID:      in.ClienteID,
		EntregadorID:   in.EntregadorID,
		FormaPagamento: in.FormaPagamento,
		ValorPedido:    in.ValorPedido,
		ValorCorrida:   in.ValorCorrida,
		Status:         in.Status,
	}
	if err := s.entregaRepo.Update(entrega); err != nil {
		return dto.Falha(err)
	}

	s.recarregar()
	return dto.OK()
}

// DeleteEntrega remove a entrega.
func (s *Store) DeleteEntrega(id int64) dto.Resultado {
	if err := s.entregaRepo.Delete(id); err != nil {
		return dto.Falha(err)
	}
	s.recarregar()
	return dto.OK()
}

// ── Clientes ──────────────────────────────────────────────────────────────────

// CreateCliente cria um cliente avulso.
func (s *Store) CreateCliente(in dto.ClienteRequest) dto.Resultado {
	if in.Nome == "" || in.RuaNumero == "" || in.Bairro == "" {
		return dto.Falha(domain.ErrEntradaInvalida)
	}
	cliente := &entity.Cliente{
		NomeCompleto: in.Nome,
		RuaNumero:    in.RuaNumero,
		Bairro:       in.Bairro,
		Telefone:     in.Telefone,
	}
	if _, err := s.clienteRepo.Create(cliente); err != nil {
		return dto.Falha(err)
	}
	s.recarregar()
	return dto.OK()
}

// UpdateCliente atualiza um cliente.
func (s *Store) UpdateCliente(id int64, in dto.ClienteRequest) dto.Resultado {
	cliente := &entity.Cliente{
		ID:           id,
		NomeCompleto: in.Nome,
		RuaNumero:    in.RuaNumero,
		Bairro:       in.Bairro,
		Telefone:     in.Telefone,
	}
	if err := s.clienteRepo.Update(cliente); err != nil {
		return dto.Falha(err)
	}
	s.recarregar()
	return dto.OK()
}

// DeleteCliente remove um cliente.
func (s *Store) DeleteCliente(id int64) dto.Resultado {
	if err := s.clienteRepo.Delete(id); err != nil {
		return dto.Falha(err)
	}
	s.recarregar()
	return dto.OK()
}

// ── Entregadores ──────────────────────────────────────────────────────────────

// CreateEntregador é um placeholder que devolve sucesso sem escrever: a criação
// real acontece no fluxo de cadastro de conta (SessionBridge.CriarConta).
func (s *Store) CreateEntregador(nome, email string) dto.Resultado {
	return dto.OK()
}

// UpdateEntregador atualiza apenas o nome; o email é aceito e ignorado aqui.
func (s *Store) UpdateEntregador(id int64, nome, email string) dto.Resultado {
	if err := s.entregadorRepo.UpdateNome(id, nome); err != nil {
		return dto.Falha(err)
	}
	s.recarregar()
	return dto.OK()
}

// DeleteEntregador desativa o entregador (remoção lógica), recusando quando há
// entregas Aguardando/Em Rota atribuídas a ele. A checagem roda antes de
// qualquer escrita.
func (s *Store) DeleteEntregador(id int64) dto.Resultado {
	pendentes, err := s.entregaRepo.CountPendentesPorEntregador(id)
	if err != nil {
		return dto.Falha(err)
	}
	if pendentes > 0 {
		return dto.Falha(domain.ErrEntregadorComPendencias)
	}
	if err := s.entregadorRepo.Desativar(id); err != nil {
		return dto.Falha(err)
	}
	s.recarregar()
	return dto.OK()
}

// entregaEmMemoria localiza a entrega no snapshot atual.
func (s *Store) entregaEmMemoria(id int64) *entity.Entrega {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.snapshot.Entregas {
		if e.ID == id {
			return e
		}
	}
	return nil
}
