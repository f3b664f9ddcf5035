package domain

import "strings"

// IntentKind identifies what a pressed button asks for
type IntentKind int

const (
	IntentUnknown IntentKind = iota
	IntentChooseLanguage
	IntentProductMenu
	IntentChooseProduct
	IntentChooseDuration
	IntentGuide
	IntentLoader
	IntentFAQ
	IntentFAQTopic
	IntentSupport
	IntentChangeLanguage
	IntentBack
)

// MaxTokenLength is the Telegram limit for callback data
const MaxTokenLength = 64

// Fixed callback tokens
const (
	TokenProductMenu    = "menu_choose_game"
	TokenLoader         = "download_loader"
	TokenFAQ            = "faq"
	TokenSupport        = "support"
	TokenBack           = "back_to_main"
	TokenChangeLanguage = "change_language"
	TokenGuide          = "guide"
)

// Prefixes of parameterised callback tokens
const (
	prefixLanguage = "lang_"
	prefixProduct  = "choose_"
	prefixDuration = "sub_"
	prefixFAQTopic = "faq_"
)

var fixedTokens = map[string]IntentKind{
	TokenProductMenu:    IntentProductMenu,
	TokenLoader:         IntentLoader,
	TokenFAQ:            IntentFAQ,
	TokenSupport:        IntentSupport,
	TokenBack:           IntentBack,
	TokenChangeLanguage: IntentChangeLanguage,
	TokenGuide:          IntentGuide,
}

var kindNames = map[IntentKind]string{
	IntentUnknown:        "unknown",
	IntentChooseLanguage: "choose_language",
	IntentProductMenu:    "product_menu",
	IntentChooseProduct:  "choose_product",
	IntentChooseDuration: "choose_duration",
	IntentGuide:          "guide",
	IntentLoader:         "loader",
	IntentFAQ:            "faq",
	IntentFAQTopic:       "faq_topic",
	IntentSupport:        "support",
	IntentChangeLanguage: "change_language",
	IntentBack:           "back",
}

func (k IntentKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Intent is a decoded callback token. Value carries the product id,
// duration code, FAQ topic id or language code for parameterised kinds.
type Intent struct {
	Kind  IntentKind
	Value string
}

// LanguageIntent builds the intent for picking a language
func LanguageIntent(lang Language) Intent {
	return Intent{Kind: IntentChooseLanguage, Value: string(lang)}
}

// ProductIntent builds the intent for picking a product
func ProductIntent(id string) Intent {
	return Intent{Kind: IntentChooseProduct, Value: id}
}

// DurationIntent builds the intent for picking a subscription duration
func DurationIntent(duration string) Intent {
	return Intent{Kind: IntentChooseDuration, Value: duration}
}

// FAQTopicIntent builds the intent for opening a FAQ topic
func FAQTopicIntent(id string) Intent {
	return Intent{Kind: IntentFAQTopic, Value: id}
}

// Token encodes the intent as callback data. Unknown intents encode to "".
func (i Intent) Token() string {
	switch i.Kind {
	case IntentChooseLanguage:
		return prefixLanguage + i.Value
	case IntentChooseProduct:
		return prefixProduct + i.Value
	case IntentChooseDuration:
		return prefixDuration + i.Value
	case IntentFAQTopic:
		return prefixFAQTopic + i.Value
	}
	for token, kind := range fixedTokens {
		if kind == i.Kind {
			return token
		}
	}
	return ""
}

// ParseIntent decodes callback data. It never fails: malformed or
// unrecognised tokens yield IntentUnknown.
func ParseIntent(token string) Intent {
	if token == "" || len(token) > MaxTokenLength {
		return Intent{Kind: IntentUnknown}
	}
	if kind, ok := fixedTokens[token]; ok {
		return Intent{Kind: kind}
	}

	switch {
	case strings.HasPrefix(token, prefixLanguage):
		lang, ok := ParseLanguage(strings.TrimPrefix(token, prefixLanguage))
		if !ok {
			return Intent{Kind: IntentUnknown}
		}
		return LanguageIntent(lang)
	case strings.HasPrefix(token, prefixProduct):
		return parameterised(IntentChooseProduct, strings.TrimPrefix(token, prefixProduct))
	case strings.HasPrefix(token, prefixDuration):
		return parameterised(IntentChooseDuration, strings.TrimPrefix(token, prefixDuration))
	case strings.HasPrefix(token, prefixFAQTopic):
		return parameterised(IntentFAQTopic, strings.TrimPrefix(token, prefixFAQTopic))
	}
	return Intent{Kind: IntentUnknown}
}

func parameterised(kind IntentKind, value string) Intent {
	if !IsTokenSafe(value) {
		return Intent{Kind: IntentUnknown}
	}
	return Intent{Kind: kind, Value: value}
}

// IsTokenSafe reports whether an id may be embedded into a callback token
func IsTokenSafe(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
