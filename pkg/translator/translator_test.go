package translator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/require"

	"taskmanager/pkg/translator"
)

func TestInitTranslator_LoadsMessages(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.toml"), []byte(`hello = "Hello english"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fr.toml"), []byte(`hello = "Bonjour"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "de.toml"), []byte(`hello = "Hallo"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`ignored`), 0o644))

	require.NoError(t, translator.InitTranslator(translator.Config{
		TranslationFolder:  dir,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	}))

	localize := func(lang string) string {
		msg, err := i18n.NewLocalizer(translator.Translator, lang).Localize(&i18n.LocalizeConfig{MessageID: "hello"})
		require.NoError(t, err)
		return msg
	}

	require.Equal(t, "Hello english", localize(translator.LanguageEn))
	require.Equal(t, "Bonjour", localize(translator.LanguageFr))
	require.Equal(t, "Hello english", localize("de"))
}

func TestInitTranslator_ShippedTranslations(t *testing.T) {
	require.NoError(t, translator.InitTranslator(translator.Config{
		TranslationFolder:  "translation",
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	}))

	for _, lang := range []string{translator.LanguageEn, translator.LanguageFr} {
		msg, err := i18n.NewLocalizer(translator.Translator, lang).Localize(&i18n.LocalizeConfig{MessageID: "taskNotFound"})
		require.NoError(t, err)
		require.NotEmpty(t, msg)
	}
}

func TestInitTranslator_InvalidFolder(t *testing.T) {
	err := translator.InitTranslator(translator.Config{
		TranslationFolder:  "/path/does/not/exist",
		SupportedLanguages: []string{translator.LanguageEn},
	})
	require.Error(t, err)
	require.NotNil(t, translator.Translator)
}

func TestMatchLanguage(t *testing.T) {
	cases := map[string]string{
		"":                        translator.LanguageEn,
		"fr":                      translator.LanguageFr,
		"fr-CA,fr;q=0.9,en;q=0.8": translator.LanguageFr,
		"en-US,en;q=0.9":          translator.LanguageEn,
		"de-DE":                   translator.LanguageEn,
		"not a header;;":          translator.LanguageEn,
	}

	for header, want := range cases {
		require.Equal(t, want, translator.MatchLanguage(header), header)
	}
}
