package domain

// Product is a catalog entry offered for subscription
type Product struct {
	ID          string              `yaml:"id"`
	Title       string              `yaml:"title"`
	Description map[Language]string `yaml:"description"`
	Guide       map[Language]string `yaml:"guide"`
	Durations   []string            `yaml:"durations"`
	Links       map[string]string   `yaml:"links"`
}

// PaymentLink returns the payment URL registered for a duration
func (p Product) PaymentLink(duration string) (string, bool) {
	link, ok := p.Links[duration]
	return link, ok
}

// Offers reports whether the duration is one of the offered ones
func (p Product) Offers(duration string) bool {
	for _, d := range p.Durations {
		if d == duration {
			return true
		}
	}
	return false
}

// FAQTopic is a question with a localized title and a document link
type FAQTopic struct {
	ID    string              `yaml:"id"`
	Title map[Language]string `yaml:"title"`
	URL   string              `yaml:"url"`
}

// Links holds fixed URLs shown in the main menu and the loader view
type Links struct {
	Website    string `yaml:"website"`
	Status     string `yaml:"status"`
	Loader     string `yaml:"loader"`
	LoaderCode string `yaml:"loader_code"`
}
