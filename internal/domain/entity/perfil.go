package entity

import (
	"time"

	"github.com/google/uuid"
)

// Cargos válidos para Perfil.
const (
	CargoGerente    = "gerente"
	CargoEntregador = "entregador"
)

// Perfil associa uma identidade do provedor de autenticação a um cargo do domínio.
// O ID é o mesmo uuid da identidade externa; nunca é convertido para numérico.
type Perfil struct {
	ID           string // uuid emitido pelo provedor de auth
	NomeCompleto string
	Cargo        string // gerente, entregador
	UpdatedAt    time.Time
}

// CargoValido informa se o cargo é um dos reconhecidos pelo sistema.
func CargoValido(cargo string) bool {
	return cargo == CargoGerente || cargo == CargoEntregador
}

// IdentidadeValida informa se o id tem a forma de uuid emitida pelo provedor.
// O valor nunca é reinterpretado: segue string de ponta a ponta.
func IdentidadeValida(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
