package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/apenask/gest-oentregas/internal/domain"
	"github.com/apenask/gest-oentregas/internal/domain/entity"
	"github.com/apenask/gest-oentregas/internal/domain/repository"
)

var _ repository.EntregadorRepository = (*EntregadorRepo)(nil)

// EntregadorRepo implementação de EntregadorRepository (usável com pool ou tx).
type EntregadorRepo struct {
	q Querier
}

// NewEntregadorRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewEntregadorRepository(q Querier) *EntregadorRepo {
	return &EntregadorRepo{q: q}
}

// ListAtivos devolve os entregadores ativos ordenados por nome.
func (r *EntregadorRepo) ListAtivos() ([]*entity.Entregador, error) {
	query := `
		SELECT id, usuario_id, nome_completo, ativo, created_at, updated_at
		FROM entregadores WHERE ativo = true ORDER BY nome_completo`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list entregadores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Entregador
	for rows.Next() {
		var e entity.Entregador
		if err := rows.Scan(&e.ID, &e.UsuarioID, &e.NomeCompleto, &e.Ativo, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan entregador: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// GetByID busca um entregador pelo id. Devolve (nil, nil) se não houver linha.
func (r *EntregadorRepo) GetByID(id int64) (*entity.Entregador, error) {
	query := `
		SELECT id, usuario_id, nome_completo, ativo, created_at, updated_at
		FROM entregadores WHERE id = $1`
	var e entity.Entregador
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.UsuarioID, &e.NomeCompleto, &e.Ativo, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entregador: %w", err)
	}
	return &e, nil
}

// GetByUsuarioID busca o entregador vinculado à identidade externa.
func (r *EntregadorRepo) GetByUsuarioID(usuarioID string) (*entity.Entregador, error) {
	query := `
		SELECT id, usuario_id, nome_completo, ativo, created_at, updated_at
		FROM entregadores WHERE usuario_id = $1`
	var e entity.Entregador
	err := r.q.QueryRow(context.Background(), query, usuarioID).Scan(
		&e.ID, &e.UsuarioID, &e.NomeCompleto, &e.Ativo, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entregador por usuario: %w", err)
	}
	return &e, nil
}

// Create persiste um novo entregador.
func (r *EntregadorRepo) Create(entregador *entity.Entregador) error {
	query := `
		INSERT INTO entregadores (usuario_id, nome_completo, ativo)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		entregador.UsuarioID, entregador.NomeCompleto, entregador.Ativo,
	).Scan(&entregador.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert entregador: %w", err)
	}
	return nil
}

// UpdateNome atualiza apenas o nome do entregador (email fica no provedor de auth).
func (r *EntregadorRepo) UpdateNome(id int64, nomeCompleto string) error {
	query := `UPDATE entregadores SET nome_completo = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, nomeCompleto, time.Now())
	if err != nil {
		return fmt.Errorf("update entregador: %w", err)
	}
	return nil
}

// Desativar faz a remoção lógica (ativo=false). A checagem de entregas pendentes
// é responsabilidade da camada de aplicação, antes de chamar aqui.
func (r *EntregadorRepo) Desativar(id int64) error {
	query := `UPDATE entregadores SET ativo = false, updated_at = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, time.Now())
	if err != nil {
		return fmt.Errorf("desativar entregador: %w", err)
	}
	return nil
}
