package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apenask/gest-oentregas/internal/domain/entity"
	apphttp "github.com/apenask/gest-oentregas/internal/interfaces/http"
	pkgjwt "github.com/apenask/gest-oentregas/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret    = "test-secret-key-for-unit-tests"
	testGerenteID    = "00000000-0000-0000-0000-000000000001"
	testEntregadorID = "00000000-0000-0000-0000-000000000002"
	testSemPerfilID  = "00000000-0000-0000-0000-000000000099"
	testIssuer       = "gestao-entregas-test"
	testExpMin       = 60
)

// perfilRepoFake devolve perfis fixos: um gerente, um entregador e um id sem perfil.
type perfilRepoFake struct{}

func (perfilRepoFake) GetByID(id string) (*entity.Perfil, error) {
	switch id {
	case testGerenteID:
		return &entity.Perfil{ID: id, NomeCompleto: "Ana Souza", Cargo: entity.CargoGerente}, nil
	case testEntregadorID:
		return &entity.Perfil{ID: id, NomeCompleto: "Carlos Lima", Cargo: entity.CargoEntregador}, nil
	}
	return nil, nil
}

func (perfilRepoFake) Create(perfil *entity.Perfil) error { return nil }

type entregadorRepoFake struct{}

func (entregadorRepoFake) ListAtivos() ([]*entity.Entregador, error) { return nil, nil }

func (entregadorRepoFake) GetByID(id int64) (*entity.Entregador, error) { return nil, nil }

func (entregadorRepoFake) GetByUsuarioID(usuarioID string) (*entity.Entregador, error) {
	if usuarioID == testEntregadorID {
		return &entity.Entregador{ID: 7, UsuarioID: usuarioID, NomeCompleto: "Carlos Lima", Ativo: true}, nil
	}
	return nil, nil
}

func (entregadorRepoFake) Create(entregador *entity.Entregador) error { return nil }

func (entregadorRepoFake) UpdateNome(id int64, nomeCompleto string) error { return nil }

func (entregadorRepoFake) Desativar(id int64) error { return nil }

// buildTestApp monta uma rota protegida por AuthMiddleware + PerfilMiddleware e,
// opcionalmente, RequireGerente.
func buildTestApp(soGerente bool) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.PerfilMiddleware(perfilRepoFake{}, entregadorRepoFake{}),
	}
	if soGerente {
		handlers = append(handlers, apphttp.RequireGerente())
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"ok":            true,
			"cargo":         apphttp.GetCargo(c),
			"entregador_id": apphttp.GetEntregadorID(c),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

// tokenPara gera um access token assinado para o id informado.
func tokenPara(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, "alguem@borda.com", testIssuer, testExpMin)
	require.NoError(t, err, "o token de teste deve ser gerado")
	return "Bearer " + tok
}

// doRequest dispara um GET /protected e devolve a resposta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes RequireGerente
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: gerente acessa rota de gerente → HTTP 200.
func TestRequireGerente_GerenteAcessa(t *testing.T) {
	app := buildTestApp(true)
	resp := doRequest(t, app, tokenPara(t, testGerenteID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.CargoGerente, body["cargo"])
}

// Caso 2: entregador bloqueado em rota de gerente → HTTP 403.
func TestRequireGerente_EntregadorBloqueado(t *testing.T) {
	app := buildTestApp(true)
	resp := doRequest(t, app, tokenPara(t, testEntregadorID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Caso 3: identidade válida sem perfil → HTTP 401 (sessão sem perfil não conta
// como autenticada).
func TestPerfilMiddleware_SemPerfilRetorna401(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, tokenPara(t, testSemPerfilID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "PROFILE_NOT_FOUND")
}

// Caso 4: entregador autenticado carrega o vínculo nos locals.
func TestPerfilMiddleware_EntregadorCarregaVinculo(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, tokenPara(t, testEntregadorID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, entity.CargoEntregador, body["cargo"])
	assert.Equal(t, float64(7), body["entregador_id"])
}

// Caso 5: sem header Authorization → HTTP 401.
func TestAuthMiddleware_SemHeaderRetorna401(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Caso 6: token malformado → HTTP 401.
func TestAuthMiddleware_TokenInvalidoRetorna401(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes pkg/jwt — integridade do generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testGerenteID, "ana@borda.com", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, email, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testGerenteID, userID)
	assert.Equal(t, "ana@borda.com", email)
}

func TestJWT_TokenExpiradoRetornaErro(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testGerenteID, "ana@borda.com", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado deve retornar erro")
}

func TestJWT_SecretIncorretoRetornaErro(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testGerenteID, "ana@borda.com", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("outro-secret-completamente-diferente", tok)
	assert.Error(t, err, "secret incorreto deve invalidar o token")
}
