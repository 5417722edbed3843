package dto

// Resultado é o valor de retorno das mutações do painel de dados:
// nada atravessa a fronteira do componente como panic/throw. O erro não é
// serializado; a camada HTTP o mapeia para um ErrorResponse.
type Resultado struct {
	Sucesso bool  `json:"sucesso"`
	Erro    error `json:"-"`
}

// OK devolve um resultado de sucesso.
func OK() Resultado {
	return Resultado{Sucesso: true}
}

// Falha devolve um resultado de falha carregando o erro original.
func Falha(err error) Resultado {
	return Resultado{Sucesso: false, Erro: err}
}

// ResultadoMensagem é o retorno dos fluxos de conta (cadastro, recuperação de senha).
type ResultadoMensagem struct {
	Sucesso  bool   `json:"sucesso"`
	Mensagem string `json:"mensagem"`
}

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
