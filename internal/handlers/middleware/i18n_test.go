package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/cwsite-users/internal/infrastructure/i18n"
)

func setupTestI18n(t *testing.T) *i18n.Service {
	t.Helper()

	service, err := i18n.NewService(fstest.MapFS{
		"en.json":    {Data: []byte(`{"welcome": "Welcome"}`)},
		"pt-BR.json": {Data: []byte(`{"welcome": "Bem-vindo"}`)},
		"es.json":    {Data: []byte(`{"welcome": "Bienvenido"}`)},
	}, "en")
	if err != nil {
		t.Fatalf("failed to initialize i18n service: %v", err)
	}

	return service
}

func detect(t *testing.T, m *I18nMiddleware, target, acceptLanguage string) (string, *gin.Context) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest("GET", target, nil)
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	c.Request = req

	m.DetectLanguage()(c)

	lang, exists := c.Get(LanguageContextKey)
	if !exists {
		t.Fatal("idioma não foi definido no contexto")
	}
	return lang.(string), c
}

func TestI18nMiddleware_DetectLanguage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	middleware := NewI18nMiddleware(setupTestI18n(t))

	tests := []struct {
		name           string
		target         string
		acceptLanguage string
		expected       string
	}{
		{"detecta idioma do query parameter", "/?lang=pt-BR", "", "pt-BR"},
		{"detecta idioma do Accept-Language header", "/", "es,en;q=0.9", "es"},
		{"usa idioma padrão quando nenhum é especificado", "/", "", "en"},
		{"query parameter tem prioridade sobre Accept-Language", "/?lang=pt-BR", "es", "pt-BR"},
		{"ignora query parameter inválido e usa Accept-Language", "/?lang=fr", "es", "es"},
		{"segundo idioma do header é suportado", "/", "fr,pt-BR;q=0.9", "pt-BR"},
		{"nenhum idioma suportado cai no padrão", "/", "fr,de;q=0.9", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, c := detect(t, middleware, tt.target, tt.acceptLanguage)
			if lang != tt.expected {
				t.Errorf("esperava '%s', obteve '%s'", tt.expected, lang)
			}
			if got := c.Writer.Header().Get("Content-Language"); got != tt.expected {
				t.Errorf("esperava Content-Language '%s', obteve '%s'", tt.expected, got)
			}
		})
	}

	t.Run("define serviço i18n no contexto", func(t *testing.T) {
		_, c := detect(t, middleware, "/", "")

		service, exists := c.Get(I18nServiceContextKey)
		if !exists || service == nil {
			t.Fatal("serviço i18n não foi definido no contexto")
		}
	})
}

func TestI18nMiddleware_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	middleware := NewI18nMiddleware(setupTestI18n(t))

	router := gin.New()
	router.Use(middleware.DetectLanguage())
	router.GET("/test", func(c *gin.Context) {
		lang, _ := c.Get(LanguageContextKey)
		service, _ := c.Get(I18nServiceContextKey)
		i18nSvc := service.(*i18n.Service)

		c.JSON(http.StatusOK, gin.H{"message": i18nSvc.T(lang.(string), "welcome")})
	})

	t.Run("integração completa com espanhol via Accept-Language", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Accept-Language", "es")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("esperava status 200, obteve %d", w.Code)
		}

		expected := `{"message":"Bienvenido"}`
		if w.Body.String() != expected {
			t.Errorf("esperava '%s', obteve '%s'", expected, w.Body.String())
		}
	})
}
