package dto

// EntregadorRequest entrada de edição de entregador. Email é aceito por
// compatibilidade com o formulário, mas só o nome é persistido aqui (o email
// pertence ao provedor de auth).
type EntregadorRequest struct {
	Nome  string `json:"nome" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// EntregadorResponse saída de um entregador ativo.
type EntregadorResponse struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}
