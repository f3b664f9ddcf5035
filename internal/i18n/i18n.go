// Package i18n holds the localized message table.
package i18n

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"desyncbot/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

//go:embed locales.yaml
var defaultLocales []byte

// Vars are substituted into templates written as {name}
type Vars map[string]string

// Table maps message keys to per-language templates. It is immutable after load.
type Table struct {
	messages map[string]map[domain.Language]string
}

// Default returns the table compiled into the binary
func Default() (*Table, error) {
	return Parse(defaultLocales)
}

// Load reads the table from path, or returns the default one for an empty path
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read locales: %v", domain.ErrConfiguration, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML document of key -> language -> text
func Parse(data []byte) (*Table, error) {
	var messages map[string]map[domain.Language]string
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("%w: parse locales: %v", domain.ErrConfiguration, err)
	}

	t := &Table{messages: messages}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks that every key is translated into every supported language
func (t *Table) Validate() error {
	err := validation.Validate(t.messages,
		validation.Required,
		validation.Each(validation.By(translations)),
	)
	if err != nil {
		return fmt.Errorf("%w: locales: %v", domain.ErrConfiguration, err)
	}
	return nil
}

// Require fails when any of the keys is absent from the table
func (t *Table) Require(keys ...string) error {
	var missing []string
	for _, key := range keys {
		if !t.Has(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing message keys: %s", domain.ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// Has reports whether the key exists
func (t *Table) Has(key string) bool {
	_, ok := t.messages[key]
	return ok
}

// Keys returns all message keys in sorted order
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.messages))
	for key := range t.messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Text returns the template for key in lang. Unknown keys are returned as is.
func (t *Table) Text(key string, lang domain.Language) string {
	byLang, ok := t.messages[key]
	if !ok {
		return key
	}
	if text, ok := byLang[lang]; ok {
		return text
	}
	return byLang[domain.DefaultLanguage]
}

// Format returns the template for key in lang with vars substituted
func (t *Table) Format(key string, lang domain.Language, vars Vars) string {
	text := t.Text(key, lang)
	if len(vars) == 0 {
		return text
	}

	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func translations(value interface{}) error {
	m, ok := value.(map[domain.Language]string)
	if !ok {
		return fmt.Errorf("unexpected translation map %T", value)
	}
	return domain.CheckTranslations(m)
}
