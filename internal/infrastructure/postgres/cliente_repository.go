package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/apenask/gest-oentregas/internal/domain/entity"
	"github.com/apenask/gest-oentregas/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementação de ClienteRepository (usável com pool ou tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

// List devolve todos os clientes ordenados por nome.
func (r *ClienteRepo) List() ([]*entity.Cliente, error) {
	query := `
		SELECT id, nome_completo, rua_numero, bairro, telefone, created_at, updated_at
		FROM clientes ORDER BY nome_completo`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(&c.ID, &c.NomeCompleto, &c.RuaNumero, &c.Bairro, &c.Telefone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// GetByID busca um cliente pelo id. Devolve (nil, nil) se não houver linha.
func (r *ClienteRepo) GetByID(id int64) (*entity.Cliente, error) {
	query := `
		SELECT id, nome_completo, rua_numero, bairro, telefone, created_at, updated_at
		FROM clientes WHERE id = $1`
	var c entity.Cliente
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.NomeCompleto, &c.RuaNumero, &c.Bairro, &c.Telefone, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// Create insere um cliente e devolve o id gerado pelo banco.
func (r *ClienteRepo) Create(cliente *entity.Cliente) (int64, error) {
	query := `
		INSERT INTO clientes (nome_completo, rua_numero, bairro, telefone)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		cliente.NomeCompleto, cliente.RuaNumero, cliente.Bairro, cliente.Telefone,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert cliente: %w", err)
	}
	return id, nil
}

// Update atualiza os campos do cliente.
func (r *ClienteRepo) Update(cliente *entity.Cliente) error {
	query := `
		UPDATE clientes SET nome_completo = $2, rua_numero = $3, bairro = $4, telefone = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.NomeCompleto, cliente.RuaNumero, cliente.Bairro, cliente.Telefone, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// Delete remove o cliente pelo id.
func (r *ClienteRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}
	return nil
}
