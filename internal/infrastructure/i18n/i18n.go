// Package i18n resolve mensagens traduzidas a partir de arquivos JSON de
// locale. As chaves são identificadores estáveis (error.*, message.*) e os
// valores podem interpolar parâmetros com templates Go.
package i18n

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"text/template"
)

// Service resolve traduções por idioma, com fallback para o idioma padrão.
// Imutável após NewService; seguro para uso concorrente.
type Service struct {
	messages        map[string]map[string]string // idioma -> chave -> mensagem
	templates       map[string]map[string]*template.Template
	defaultLanguage string
}

// NewService carrega todos os arquivos <lang>.json de localesDir.
// O nome do arquivo define o idioma (en.json -> "en", pt-BR.json -> "pt-BR").
func NewService(localesDir, defaultLang string) (*Service, error) {
	return NewServiceFS(os.DirFS(localesDir), defaultLang)
}

// NewServiceFS é como NewService, mas lê os locales de um fs.FS qualquer
// (diretório real ou embed.FS).
func NewServiceFS(fsys fs.FS, defaultLang string) (*Service, error) {
	files, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to find locale files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}

	s := &Service{
		messages:        make(map[string]map[string]string, len(files)),
		templates:       make(map[string]map[string]*template.Template, len(files)),
		defaultLanguage: defaultLang,
	}

	for _, file := range files {
		lang := strings.TrimSuffix(file, ".json")

		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read locale file %s: %w", file, err)
		}

		var messages map[string]string
		if err := json.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("failed to parse locale file %s: %w", file, err)
		}

		s.messages[lang] = messages

		// Templates compilados uma única vez, na carga
		compiled := make(map[string]*template.Template)
		for key, msg := range messages {
			if !strings.Contains(msg, "{{") {
				continue
			}
			tmpl, err := template.New(key).Parse(msg)
			if err != nil {
				return nil, fmt.Errorf("invalid template in %s (key %s): %w", file, key, err)
			}
			compiled[key] = tmpl
		}
		s.templates[lang] = compiled
	}

	if _, ok := s.messages[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %s not found in locale files", defaultLang)
	}

	return s, nil
}

// T resolve a chave no idioma pedido, caindo para o idioma padrão quando a
// tradução não existe. Chave desconhecida retorna a própria chave, para que
// um locale incompleto nunca derrube uma resposta.
func (s *Service) T(lang, key string, params ...map[string]interface{}) string {
	resolved := lang
	msg, ok := s.messages[resolved][key]
	if !ok {
		resolved = s.defaultLanguage
		msg, ok = s.messages[resolved][key]
	}
	if !ok {
		return key
	}

	if len(params) == 0 {
		return msg
	}

	tmpl, ok := s.templates[resolved][key]
	if !ok {
		return msg
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params[0]); err != nil {
		return msg
	}
	return buf.String()
}

// GetDefaultLanguage retorna o idioma padrão configurado
func (s *Service) GetDefaultLanguage() string {
	return s.defaultLanguage
}

// GetSupportedLanguages retorna os idiomas carregados, em ordem estável
func (s *Service) GetSupportedLanguages() []string {
	langs := make([]string, 0, len(s.messages))
	for lang := range s.messages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// IsLanguageSupported verifica se um idioma foi carregado
func (s *Service) IsLanguageSupported(lang string) bool {
	_, ok := s.messages[lang]
	return ok
}
