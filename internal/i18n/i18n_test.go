package i18n

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"desyncbot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_EveryKeyHasEveryLanguage(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	for _, key := range table.Keys() {
		for _, lang := range domain.SupportedLanguages {
			assert.NotEmpty(t, table.Text(key, lang), "key %s lang %s", key, lang)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		document string
		contains string
	}{
		{
			name:     "missing translation",
			document: "back:\n  en: Back\n",
			contains: "missing translations",
		},
		{
			name:     "unsupported language",
			document: completeKey("back") + "    de: Zurück\n",
			contains: "unsupported language",
		},
		{
			name:     "empty document",
			document: "",
			contains: "cannot be blank",
		},
		{
			name:     "malformed yaml",
			document: "back: [",
			contains: "parse locales",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse([]byte(tt.document))
			assert.Nil(t, table)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestTable_Format(t *testing.T) {
	table, err := Parse([]byte(completeKey("greet")))
	require.NoError(t, err)

	text := table.Format("greet", domain.LanguageRussian, Vars{"name": "PUBG", "unused": "x"})
	assert.Equal(t, "ru hello PUBG {missing}", text)
}

func TestTable_TextUnknownKey(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "no_such_key", table.Text("no_such_key", domain.LanguageEnglish))
}

func TestTable_Require(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	assert.NoError(t, table.Require("menu_title", "back"))

	err = table.Require("menu_title", "zzz", "aaa")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "aaa, zzz")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locales.yaml")
	require.NoError(t, os.WriteFile(path, []byte(completeKey("greet")), 0o600))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"greet"}, table.Keys())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	table, err = Load("")
	require.NoError(t, err)
	assert.True(t, table.Has("menu_title"))
}

func completeKey(key string) string {
	var b strings.Builder
	b.WriteString(key + ":\n")
	for _, lang := range domain.SupportedLanguages {
		b.WriteString("    " + string(lang) + ": \"" + string(lang) + " hello {name} {missing}\"\n")
	}
	return b.String()
}
