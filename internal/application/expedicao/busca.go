package expedicao

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/apenask/gest-oentregas/internal/domain/entity"
)

// normalizador remove marcas diacríticas (José -> Jose) para comparação.
var normalizador = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// dobrar normaliza um termo para busca: sem acentos e em minúsculas.
func dobrar(s string) string {
	out, _, err := transform.String(normalizador, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// BuscarClientes filtra o snapshot por nome, rua ou bairro, ignorando
// maiúsculas e acentos (nomes e bairros em português carregam diacríticos).
func (s *Store) BuscarClientes(termo string) []*entity.Cliente {
	termo = dobrar(strings.TrimSpace(termo))
	snapshot := s.Snapshot()
	if termo == "" {
		return snapshot.Clientes
	}

	var achados []*entity.Cliente
	for _, c := range snapshot.Clientes {
		if strings.Contains(dobrar(c.NomeCompleto), termo) ||
			strings.Contains(dobrar(c.RuaNumero), termo) ||
			strings.Contains(dobrar(c.Bairro), termo) {
			achados = append(achados, c)
		}
	}
	return achados
}
