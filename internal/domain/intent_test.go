package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected Intent
	}{
		{name: "language", token: "lang_ru", expected: Intent{Kind: IntentChooseLanguage, Value: "ru"}},
		{name: "unsupported language", token: "lang_de", expected: Intent{Kind: IntentUnknown}},
		{name: "product", token: "choose_pubg", expected: Intent{Kind: IntentChooseProduct, Value: "pubg"}},
		{name: "duration", token: "sub_7", expected: Intent{Kind: IntentChooseDuration, Value: "7"}},
		{name: "faq topic", token: "faq_2", expected: Intent{Kind: IntentFAQTopic, Value: "2"}},
		{name: "faq list", token: "faq", expected: Intent{Kind: IntentFAQ}},
		{name: "product menu", token: "menu_choose_game", expected: Intent{Kind: IntentProductMenu}},
		{name: "loader", token: "download_loader", expected: Intent{Kind: IntentLoader}},
		{name: "support", token: "support", expected: Intent{Kind: IntentSupport}},
		{name: "back", token: "back_to_main", expected: Intent{Kind: IntentBack}},
		{name: "change language", token: "change_language", expected: Intent{Kind: IntentChangeLanguage}},
		{name: "guide", token: "guide", expected: Intent{Kind: IntentGuide}},
		{name: "empty", token: "", expected: Intent{Kind: IntentUnknown}},
		{name: "prefix without value", token: "sub_", expected: Intent{Kind: IntentUnknown}},
		{name: "value with separator", token: "choose_pubg_7", expected: Intent{Kind: IntentUnknown}},
		{name: "garbage", token: "drop table", expected: Intent{Kind: IntentUnknown}},
		{name: "too long", token: "choose_" + strings.Repeat("a", 64), expected: Intent{Kind: IntentUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseIntent(tt.token))
		})
	}
}

func TestIntent_TokenRoundTrip(t *testing.T) {
	intents := []Intent{
		LanguageIntent(LanguageKorean),
		ProductIntent("pubg"),
		DurationIntent("30"),
		FAQTopicIntent("1"),
		{Kind: IntentProductMenu},
		{Kind: IntentLoader},
		{Kind: IntentFAQ},
		{Kind: IntentSupport},
		{Kind: IntentBack},
		{Kind: IntentChangeLanguage},
		{Kind: IntentGuide},
	}

	for _, in := range intents {
		t.Run(in.Kind.String(), func(t *testing.T) {
			assert.Equal(t, in, ParseIntent(in.Token()))
		})
	}
}

func TestIntent_UnknownHasNoToken(t *testing.T) {
	assert.Equal(t, "", Intent{Kind: IntentUnknown}.Token())
}
