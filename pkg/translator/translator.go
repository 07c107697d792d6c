package translator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string // Languages to load, matched against file names (en.toml, fr.toml)
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

var matcher = language.NewMatcher([]language.Tag{language.English, language.French})

// InitTranslator loads every <lang>.toml file of the translation folder whose
// language is supported. English is always the fallback.
func InitTranslator(cfg Config) error {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		return fmt.Errorf("list translation folder %s: %w", cfg.TranslationFolder, err)
	}

	supported := make(map[string]struct{}, len(cfg.SupportedLanguages))
	for _, lang := range cfg.SupportedLanguages {
		supported[lang] = struct{}{}
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}

		lang := strings.TrimSuffix(entry.Name(), ".toml")
		if _, ok := supported[lang]; len(supported) > 0 && !ok {
			continue
		}

		if _, err := Translator.LoadMessageFile(filepath.Join(cfg.TranslationFolder, entry.Name())); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", entry.Name()), zap.Error(err))
		}
	}
	return nil
}

// MatchLanguage picks the best supported language for an Accept-Language
// header value, falling back to English.
func MatchLanguage(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return LanguageEn
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}

	_, index, _ := matcher.Match(tags...)
	if index == 1 {
		return LanguageFr
	}
	return LanguageEn
}
