package i18n

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"text/template"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

// Service gerencia traduções e negociação de idioma
// O catálogo é carregado uma vez e só é lido depois disso
type Service struct {
	translations    map[string]map[string]string // [language][key]message
	defaultLanguage string
	languages       []string // default primeiro, na ordem do matcher
	matcher         language.Matcher
}

// NewDefaultService carrega os locales embutidos no binário
func NewDefaultService(defaultLang string) (*Service, error) {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded locales: %w", err)
	}
	return NewService(sub, defaultLang)
}

// NewService cria um serviço de i18n a partir dos arquivos *.json na raiz de fsys
// defaultLang: idioma padrão (fallback)
func NewService(fsys fs.FS, defaultLang string) (*Service, error) {
	s := &Service{
		translations:    make(map[string]map[string]string),
		defaultLanguage: defaultLang,
	}

	files, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to find locale files: %w", err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}

	for _, file := range files {
		lang := strings.TrimSuffix(path.Base(file), ".json")

		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read locale file %s: %w", file, err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return nil, fmt.Errorf("failed to parse locale file %s: %w", file, err)
		}

		s.translations[lang] = translations
	}

	if _, ok := s.translations[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %s not found in locale files", defaultLang)
	}

	// O primeiro tag do matcher é o fallback
	s.languages = []string{defaultLang}
	others := make([]string, 0, len(s.translations)-1)
	for lang := range s.translations {
		if lang != defaultLang {
			others = append(others, lang)
		}
	}
	sort.Strings(others)
	s.languages = append(s.languages, others...)

	tags := make([]language.Tag, 0, len(s.languages))
	for _, lang := range s.languages {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("invalid locale name %s: %w", lang, err)
		}
		tags = append(tags, tag)
	}
	s.matcher = language.NewMatcher(tags)

	return s, nil
}

// T traduz uma chave para o idioma especificado
// Suporta interpolação de parâmetros usando templates Go ({{.Resource}}, {{.Value}}, etc.)
func (s *Service) T(lang, key string, params ...map[string]interface{}) string {
	message := s.getTranslation(lang, key)

	if message == "" {
		message = s.getTranslation(s.defaultLanguage, key)
	}

	if message == "" {
		return key
	}

	if len(params) == 0 {
		return message
	}

	tmpl, err := template.New("msg").Parse(message)
	if err != nil {
		return message
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params[0]); err != nil {
		return message
	}

	return buf.String()
}

func (s *Service) getTranslation(lang, key string) string {
	if langMap, ok := s.translations[lang]; ok {
		if msg, ok := langMap[key]; ok {
			return msg
		}
	}
	return ""
}

// Match escolhe o melhor idioma suportado para um header Accept-Language
// Retorna "" quando nenhum idioma suportado é aceitável
func (s *Service) Match(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return ""
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return ""
	}

	_, idx, confidence := s.matcher.Match(tags...)
	if confidence == language.No {
		return ""
	}
	return s.languages[idx]
}

// GetDefaultLanguage retorna o idioma padrão configurado
func (s *Service) GetDefaultLanguage() string {
	return s.defaultLanguage
}

// GetSupportedLanguages retorna lista de idiomas suportados, padrão primeiro
func (s *Service) GetSupportedLanguages() []string {
	langs := make([]string, len(s.languages))
	copy(langs, s.languages)
	return langs
}

// IsLanguageSupported verifica se um idioma é suportado
func (s *Service) IsLanguageSupported(lang string) bool {
	_, ok := s.translations[lang]
	return ok
}
