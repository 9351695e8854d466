package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/cwsite-users/internal/domain/entities"
	httphandlers "github.com/rafabene/cwsite-users/internal/handlers/http"
	"github.com/rafabene/cwsite-users/internal/infrastructure/i18n"
	"github.com/rafabene/cwsite-users/internal/infrastructure/logging"
	"github.com/rafabene/cwsite-users/internal/services"
)

// memoryRepo implementa repositories.UserRepository em memória
type memoryRepo struct {
	users    []entities.User
	err      error
	lastName string
}

func (m *memoryRepo) find(match func(entities.User) bool) (entities.User, bool, error) {
	if m.err != nil {
		return entities.User{}, false, m.err
	}
	for _, u := range m.users {
		if match(u) {
			return u, true, nil
		}
	}
	return entities.User{}, false, nil
}

func (m *memoryRepo) FindByID(_ context.Context, id uuid.UUID) (entities.User, bool, error) {
	return m.find(func(u entities.User) bool { return u.ID == id })
}

func (m *memoryRepo) FindByDiscordID(_ context.Context, discordID int64) (entities.User, bool, error) {
	return m.find(func(u entities.User) bool { return u.DiscordID == discordID })
}

func (m *memoryRepo) FindByName(_ context.Context, name string) (entities.User, bool, error) {
	m.lastName = name
	return m.find(func(u entities.User) bool { return u.Name == name })
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type problemBody struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
	Errors   []struct {
		Field string `json:"field"`
		Tag   string `json:"tag"`
		Value string `json:"value"`
	} `json:"errors"`
}

var alice = entities.User{
	ID:        uuid.MustParse("11111111-1111-1111-1111-111111111111"),
	Name:      "alice",
	DiscordID: 42,
}

var _ = Describe("UserHandler", func() {
	var (
		repo   *memoryRepo
		pinger stubPinger
		router *gin.Engine
	)

	newRouter := func() *gin.Engine {
		logger := logging.NewSlogLoggerWithWriter(io.Discard, "error")
		i18nService, err := i18n.NewDefaultService("en")
		Expect(err).NotTo(HaveOccurred())

		userService := services.NewUserService(repo, logger)
		return httphandlers.NewRouter(httphandlers.RouterConfig{
			BaseURL:        "https://api.cubicworld.space",
			AllowedOrigins: []string{"*"},
			EnableSwagger:  true,
			I18n:           i18nService,
			Logger:         logger,
			Users:          httphandlers.NewUserHandler(userService, logger),
			Health:         httphandlers.NewHealthHandler(pinger, "test", logger),
		})
	}

	get := func(path string, headers ...string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for i := 0; i+1 < len(headers); i += 2 {
			req.Header.Set(headers[i], headers[i+1])
		}
		router.ServeHTTP(w, req)
		return w
	}

	decodeUser := func(w *httptest.ResponseRecorder) map[string]any {
		var body map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		return body
	}

	decodeProblem := func(w *httptest.ResponseRecorder) problemBody {
		Expect(w.Header().Get("Content-Type")).To(HavePrefix("application/problem+json"))
		var body problemBody
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		return body
	}

	BeforeEach(func() {
		repo = &memoryRepo{users: []entities.User{alice}}
		pinger = stubPinger{}
		router = newRouter()
	})

	Describe("GET /user/id/{id}", func() {
		It("retorna o usuário encontrado", func() {
			w := get("/user/id/11111111-1111-1111-1111-111111111111")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeUser(w)).To(Equal(map[string]any{
				"uuid":      "11111111-1111-1111-1111-111111111111",
				"name":      "alice",
				"discordId": float64(42),
			}))
		})

		It("aceita UUID em maiúsculas", func() {
			w := get("/user/id/AAAAAAAA-AAAA-4AAA-8AAA-AAAAAAAAAAAA")
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("retorna 404 quando o UUID não existe", func() {
			w := get("/user/id/99999999-9999-9999-9999-999999999999")

			Expect(w.Code).To(Equal(http.StatusNotFound))
			problem := decodeProblem(w)
			Expect(problem.Status).To(Equal(http.StatusNotFound))
			Expect(problem.Type).To(Equal("https://api.cubicworld.space/problems/not-found"))
			Expect(problem.Instance).To(Equal("/user/id/99999999-9999-9999-9999-999999999999"))
		})

		DescribeTable("rejeita UUID malformado com 400",
			func(raw string) {
				w := get("/user/id/" + raw)

				Expect(w.Code).To(Equal(http.StatusBadRequest))
				problem := decodeProblem(w)
				Expect(problem.Type).To(HaveSuffix("/problems/validation-error"))
				Expect(problem.Errors).To(HaveLen(1))
				Expect(problem.Errors[0].Field).To(Equal("id"))
				Expect(problem.Errors[0].Tag).To(Equal("user_uuid"))
			},
			Entry("texto livre", "not-a-uuid"),
			Entry("sem hífens", "11111111111111111111111111111111"),
			Entry("curto demais", "1111-1111"),
			Entry("forma URN", "urn:uuid:11111111-1111-1111-1111-111111111111"),
		)
	})

	Describe("GET /user/discord/{discordId}", func() {
		It("retorna o usuário encontrado", func() {
			w := get("/user/discord/42")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeUser(w)).To(HaveKeyWithValue("uuid", alice.ID.String()))
		})

		It("retorna 404 quando o id não existe", func() {
			w := get("/user/discord/43")

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(decodeProblem(w).Detail).To(ContainSubstring("43"))
		})

		DescribeTable("rejeita id não inteiro com 400",
			func(raw string) {
				w := get("/user/discord/" + raw)

				Expect(w.Code).To(Equal(http.StatusBadRequest))
				problem := decodeProblem(w)
				Expect(problem.Errors).To(HaveLen(1))
				Expect(problem.Errors[0].Field).To(Equal("discordId"))
				Expect(problem.Errors[0].Value).To(Equal(raw))
			},
			Entry("letras", "abc"),
			Entry("decimal", "4.2"),
			Entry("estouro de int64", "99999999999999999999"),
		)
	})

	Describe("GET /user/name/{name}", func() {
		It("retorna o usuário encontrado", func() {
			w := get("/user/name/alice")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeUser(w)).To(HaveKeyWithValue("discordId", float64(42)))
		})

		It("retorna 404 para bob", func() {
			w := get("/user/name/bob")

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(decodeProblem(w).Detail).To(Equal("No user matches name 'bob'"))
		})

		It("decodifica o caminho uma única vez", func() {
			get("/user/name/john%20doe")
			Expect(repo.lastName).To(Equal("john doe"))

			get("/user/name/a%2Fb")
			Expect(repo.lastName).To(Equal("a/b"))
		})

		DescribeTable("mantém + literal e decodifica escapes do caminho",
			func(path, expected string) {
				get(path)
				Expect(repo.lastName).To(Equal(expected))
			},
			Entry("+ com barra escapada", "/user/name/a+b%2Fc", "a+b/c"),
			Entry("++ seguido de barra escapada", "/user/name/c++%2F", "c++/"),
			Entry("+ sem outros escapes", "/user/name/a+b", "a+b"),
			Entry("porcento escapado", "/user/name/100%25", "100%"),
			Entry("porcento e barra escapados", "/user/name/a%25%2Fb", "a%/b"),
		)

		It("localiza o problema conforme Accept-Language", func() {
			w := get("/user/name/bob", "Accept-Language", "pt-BR")

			Expect(w.Code).To(Equal(http.StatusNotFound))
			problem := decodeProblem(w)
			Expect(problem.Title).To(Equal("Não Encontrado"))
			Expect(problem.Detail).To(Equal("Nenhum usuário com name 'bob'"))
		})
	})

	Describe("falha de armazenamento", func() {
		BeforeEach(func() {
			repo.err = errors.New("dial tcp 10.0.0.1:5432: connection refused")
		})

		It("responde 500 sem expor a causa", func() {
			w := get("/user/name/alice")

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			problem := decodeProblem(w)
			Expect(problem.Type).To(HaveSuffix("/problems/internal-error"))
			Expect(w.Body.String()).NotTo(ContainSubstring("connection refused"))
		})

		It("não confunde falha com UUID malformado", func() {
			w := get("/user/id/11111111-1111-1111-1111-111111111111")
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("idempotência", func() {
		It("consultas repetidas retornam o mesmo corpo", func() {
			first := get("/user/discord/42")
			second := get("/user/discord/42")

			Expect(second.Code).To(Equal(first.Code))
			Expect(second.Body.String()).To(Equal(first.Body.String()))
		})
	})

	Describe("rotas auxiliares", func() {
		It("responde problema 404 para rota inexistente", func() {
			w := get("/users/alice")

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(decodeProblem(w).Detail).To(ContainSubstring("/users/alice"))
		})

		It("health check reporta ok", func() {
			w := get("/health")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeUser(w)).To(HaveKeyWithValue("status", "ok"))
		})

		It("health check reporta indisponibilidade do banco", func() {
			pinger = stubPinger{err: errors.New("down")}
			router = newRouter()

			w := get("/health")
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		})

		It("serve o documento OpenAPI", func() {
			w := get("/swagger/doc.json")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("/user/discord/{discordId}"))
		})
	})
})
