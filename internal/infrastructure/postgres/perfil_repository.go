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

var _ repository.PerfilRepository = (*PerfilRepo)(nil)

// PerfilRepo implementação de PerfilRepository (usável com pool ou tx).
type PerfilRepo struct {
	q Querier
}

// NewPerfilRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPerfilRepository(q Querier) *PerfilRepo {
	return &PerfilRepo{q: q}
}

// GetByID busca o perfil pelo id da identidade. Devolve (nil, nil) se não houver linha.
func (r *PerfilRepo) GetByID(id string) (*entity.Perfil, error) {
	query := `
		SELECT id, nome_completo, cargo, updated_at
		FROM perfis WHERE id = $1`
	var p entity.Perfil
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.NomeCompleto, &p.Cargo, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get perfil: %w", err)
	}
	return &p, nil
}

// Create persiste um novo perfil vinculado à identidade externa.
func (r *PerfilRepo) Create(perfil *entity.Perfil) error {
	query := `
		INSERT INTO perfis (id, nome_completo, cargo, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		perfil.ID, perfil.NomeCompleto, perfil.Cargo, time.Now(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert perfil: %w", err)
	}
	return nil
}
