package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNaoEncontrado       = errors.New("recurso não encontrado")
	ErrPerfilNaoEncontrado = errors.New("perfil não encontrado")
	ErrEntradaInvalida     = errors.New("entrada inválida")
	ErrDuplicado           = errors.New("recurso duplicado")
	ErrNaoAutorizado       = errors.New("não autorizado")
	ErrAcessoNegado        = errors.New("acesso negado")

	// Regras de negócio.
	ErrCodigoAcessoInvalido    = errors.New("código de acesso inválido")
	ErrEntregadorComPendencias = errors.New("não é possível remover este entregador pois há entregas pendentes")

	// Respostas do provedor de autenticação, mapeadas para sentinelas.
	ErrEmailNaoConfirmado   = errors.New("email ainda não confirmado")
	ErrCredenciaisInvalidas = errors.New("email ou senha incorretos")
	ErrEmailJaCadastrado    = errors.New("este email já está cadastrado no sistema")
	ErrEmailNaoEncontrado   = errors.New("email não encontrado no sistema")
)
