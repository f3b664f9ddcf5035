package domain

// Session holds per-user conversational state
type Session struct {
	UserID          int64
	Language        Language
	SelectedProduct string
}

// HasLanguage reports whether the user explicitly picked a language
func (s Session) HasLanguage() bool {
	return s.Language != ""
}

// HasProduct reports whether the user picked a product
func (s Session) HasProduct() bool {
	return s.SelectedProduct != ""
}
