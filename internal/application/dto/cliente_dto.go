package dto

// ClienteRequest entrada de criação/edição de cliente.
type ClienteRequest struct {
	Nome      string  `json:"nome" validate:"required"`
	RuaNumero string  `json:"rua_numero" validate:"required"`
	Bairro    string  `json:"bairro" validate:"required"`
	Telefone  *string `json:"telefone"`
}

// ClienteResponse saída de um cliente.
type ClienteResponse struct {
	ID        int64   `json:"id"`
	Nome      string  `json:"nome"`
	RuaNumero string  `json:"rua_numero"`
	Bairro    string  `json:"bairro"`
	Telefone  *string `json:"telefone,omitempty"`
}
