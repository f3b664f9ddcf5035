package dialog

import (
	"strings"

	"desyncbot/internal/catalog"
	"desyncbot/internal/domain"
	"desyncbot/internal/i18n"
)

// Button is an inline button. Exactly one of Token and URL is set.
type Button struct {
	Label string
	Token string
	URL   string
}

// View is one outbound message
type View struct {
	Text      string
	Rows      [][]Button
	Markdown  bool
	NoPreview bool
	// Replace asks to edit the message that carried the pressed button
	// instead of sending a new one.
	Replace bool
}

// Message keys used by the views
const (
	keyStart              = "start"
	keyLanguageLabel      = "language_label"
	keyLanguageSelected   = "language_selected"
	keyChooseGame         = "choose_game"
	keyChooseSubscription = "choose_subscription"
	keyDay                = "day"
	keyDays               = "days"
	keySubscriptionResult = "subscription_result"
	keySelectionMissing   = "selection_missing"
	keyBack               = "back"
	keyMenuTitle          = "menu_title"
	keyMenuWebsite        = "menu_website"
	keyMenuGame           = "menu_game"
	keyMenuLoader         = "menu_loader"
	keyMenuStatus         = "menu_status"
	keyMenuFAQ            = "menu_faq"
	keyMenuSupport        = "menu_support"
	keyMenuLanguage       = "menu_language"
	keyMenuInstruction    = "menu_instruction"
	keyLoaderPassword     = "loader_password"
	keyFAQNotFound        = "faq_not_found"
	keySupportTitle       = "support_title"
	keySessionTimeout     = "session_timeout"
)

// RequiredKeys lists every message key the views use
var RequiredKeys = []string{
	keyStart, keyLanguageLabel, keyLanguageSelected, keyChooseGame,
	keyChooseSubscription, keyDay, keyDays, keySubscriptionResult,
	keySelectionMissing, keyBack, keyMenuTitle, keyMenuWebsite, keyMenuGame,
	keyMenuLoader, keyMenuStatus, keyMenuFAQ, keyMenuSupport, keyMenuLanguage,
	keyMenuInstruction, keyLoaderPassword, keyFAQNotFound, keySupportTitle,
	keySessionTimeout,
}

// screens renders views from the catalog and the message table
type screens struct {
	catalog *catalog.Catalog
	texts   *i18n.Table
}

func (s screens) tokenButton(key string, lang domain.Language, intent domain.Intent) Button {
	return Button{Label: s.texts.Text(key, lang), Token: intent.Token()}
}

func (s screens) backRow(lang domain.Language) []Button {
	return []Button{s.tokenButton(keyBack, lang, domain.Intent{Kind: domain.IntentBack})}
}

func (s screens) languageChoice(lang domain.Language) View {
	rows := make([][]Button, 0, len(domain.SupportedLanguages))
	for _, l := range domain.SupportedLanguages {
		rows = append(rows, []Button{s.tokenButton(keyLanguageLabel, l, domain.LanguageIntent(l))})
	}
	return View{Text: s.texts.Text(keyStart, lang), Rows: rows}
}

func (s screens) languageConfirmed(lang domain.Language) View {
	return View{Text: s.texts.Text(keyLanguageSelected, lang), Replace: true}
}

func (s screens) mainMenu(lang domain.Language) View {
	links := s.catalog.Links()
	return View{
		Text: s.texts.Text(keyMenuTitle, lang),
		Rows: [][]Button{
			{{Label: s.texts.Text(keyMenuWebsite, lang), URL: links.Website}},
			{s.tokenButton(keyMenuGame, lang, domain.Intent{Kind: domain.IntentProductMenu})},
			{s.tokenButton(keyMenuLoader, lang, domain.Intent{Kind: domain.IntentLoader})},
			{{Label: s.texts.Text(keyMenuStatus, lang), URL: links.Status}},
			{s.tokenButton(keyMenuFAQ, lang, domain.Intent{Kind: domain.IntentFAQ})},
			{s.tokenButton(keyMenuSupport, lang, domain.Intent{Kind: domain.IntentSupport})},
			{s.tokenButton(keyMenuLanguage, lang, domain.Intent{Kind: domain.IntentChangeLanguage})},
		},
	}
}

func (s screens) productList(lang domain.Language) View {
	products := s.catalog.Products()
	rows := make([][]Button, 0, len(products)+1)
	for _, p := range products {
		rows = append(rows, []Button{{Label: p.Title, Token: domain.ProductIntent(p.ID).Token()}})
	}
	rows = append(rows, s.backRow(lang))
	return View{Text: s.texts.Text(keyChooseGame, lang), Rows: rows}
}

// productFallback re-offers the product list after a missing selection
func (s screens) productFallback(lang domain.Language) View {
	v := s.productList(lang)
	v.Text = s.texts.Text(keySelectionMissing, lang) + "\n\n" + v.Text
	v.Replace = true
	return v
}

func (s screens) durationList(lang domain.Language, p domain.Product) View {
	rows := make([][]Button, 0, len(p.Durations)+2)
	for _, d := range p.Durations {
		rows = append(rows, []Button{{Label: s.durationLabel(lang, d), Token: domain.DurationIntent(d).Token()}})
	}
	rows = append(rows,
		[]Button{s.tokenButton(keyMenuInstruction, lang, domain.Intent{Kind: domain.IntentGuide})},
		s.backRow(lang),
	)
	return View{Text: s.texts.Text(keyChooseSubscription, lang), Rows: rows, Replace: true}
}

func (s screens) durationLabel(lang domain.Language, duration string) string {
	unit := keyDays
	if duration == "1" {
		unit = keyDay
	}
	return duration + " " + s.texts.Text(unit, lang)
}

func (s screens) subscriptionResult(lang domain.Language, p domain.Product, duration, link string) View {
	text := s.texts.Format(keySubscriptionResult, lang, i18n.Vars{
		"title":       EscapeMarkdown(p.Title),
		"duration":    EscapeMarkdown(duration),
		"description": EscapeMarkdown(p.Description[lang]),
		"link":        link,
	})
	return View{
		Text:      text,
		Rows:      [][]Button{s.backRow(lang)},
		Markdown:  true,
		NoPreview: true,
		Replace:   true,
	}
}

func (s screens) guide(lang domain.Language, p domain.Product) View {
	return View{
		Text:    s.texts.Text(keyMenuInstruction, lang) + "\n" + p.Guide[lang],
		Rows:    [][]Button{s.backRow(lang)},
		Replace: true,
	}
}

func (s screens) loaderInfo(lang domain.Language) View {
	links := s.catalog.Links()
	return View{
		Text: s.texts.Format(keyLoaderPassword, lang, i18n.Vars{
			"url":  links.Loader,
			"code": EscapeMarkdown(links.LoaderCode),
		}),
		Markdown: true,
	}
}

func (s screens) faqList(lang domain.Language) View {
	topics := s.catalog.Topics()
	rows := make([][]Button, 0, len(topics)+1)
	for _, topic := range topics {
		rows = append(rows, []Button{{Label: topic.Title[lang], Token: domain.FAQTopicIntent(topic.ID).Token()}})
	}
	rows = append(rows, s.backRow(lang))
	return View{Text: s.texts.Text(keyMenuFAQ, lang), Rows: rows, Replace: true}
}

func (s screens) faqLink(lang domain.Language, url string) View {
	return View{Text: "📄 " + url, Rows: [][]Button{s.backRow(lang)}, Replace: true}
}

func (s screens) faqNotFound(lang domain.Language) View {
	return View{Text: s.texts.Text(keyFAQNotFound, lang), Rows: [][]Button{s.backRow(lang)}, Replace: true}
}

func (s screens) support(lang domain.Language) View {
	var b strings.Builder
	b.WriteString(s.texts.Text(keySupportTitle, lang))
	for _, name := range s.catalog.Support() {
		b.WriteString("\n• ")
		b.WriteString(EscapeMarkdown(name))
	}
	return View{Text: b.String(), Rows: [][]Button{s.backRow(lang)}, Markdown: true, Replace: true}
}

func (s screens) timeoutNotice(lang domain.Language) View {
	return View{Text: s.texts.Text(keySessionTimeout, lang)}
}
