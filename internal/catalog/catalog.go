// Package catalog loads the static product, FAQ and link configuration.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"desyncbot/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

const maxIDLength = 32

// Catalog is the immutable product and content configuration shared by all sessions
type Catalog struct {
	links    domain.Links
	support  []string
	products []domain.Product
	topics   []domain.FAQTopic

	productIdx map[string]int
	topicIdx   map[string]int
}

type document struct {
	Links    domain.Links      `yaml:"links"`
	Support  []string          `yaml:"support"`
	Products []domain.Product  `yaml:"products"`
	FAQ      []domain.FAQTopic `yaml:"faq"`
}

// Default returns the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads the catalog from path, or returns the default one for an empty path
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read catalog: %v", domain.ErrConfiguration, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse catalog: %v", domain.ErrConfiguration, err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("%w: catalog: %v", domain.ErrConfiguration, err)
	}

	c := &Catalog{
		links:      doc.Links,
		support:    doc.Support,
		products:   doc.Products,
		topics:     doc.FAQ,
		productIdx: make(map[string]int, len(doc.Products)),
		topicIdx:   make(map[string]int, len(doc.FAQ)),
	}
	for i, p := range doc.Products {
		if _, dup := c.productIdx[p.ID]; dup {
			return nil, fmt.Errorf("%w: catalog: duplicate product %q", domain.ErrConfiguration, p.ID)
		}
		c.productIdx[p.ID] = i
	}
	for i, topic := range doc.FAQ {
		if _, dup := c.topicIdx[topic.ID]; dup {
			return nil, fmt.Errorf("%w: catalog: duplicate faq topic %q", domain.ErrConfiguration, topic.ID)
		}
		c.topicIdx[topic.ID] = i
	}
	return c, nil
}

// Products returns the products in their declared order
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Product looks a product up by id
func (c *Catalog) Product(id string) (domain.Product, error) {
	i, ok := c.productIdx[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %q", domain.ErrUnknownProduct, id)
	}
	return c.products[i], nil
}

// Topics returns the FAQ topics in their declared order
func (c *Catalog) Topics() []domain.FAQTopic {
	out := make([]domain.FAQTopic, len(c.topics))
	copy(out, c.topics)
	return out
}

// TopicURL returns the document link of a FAQ topic
func (c *Catalog) TopicURL(id string) (string, error) {
	i, ok := c.topicIdx[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownTopic, id)
	}
	return c.topics[i].URL, nil
}

// Links returns the fixed menu and loader links
func (c *Catalog) Links() domain.Links {
	return c.links
}

// Support returns the support contact names
func (c *Catalog) Support() []string {
	out := make([]string, len(c.support))
	copy(out, c.support)
	return out
}

func (d *document) validate() error {
	if err := validateLinks(&d.Links); err != nil {
		return fmt.Errorf("links: %v", err)
	}
	if err := validation.Validate(d.Support, validation.Required, validation.Each(validation.Required)); err != nil {
		return fmt.Errorf("support: %v", err)
	}
	if err := validation.Validate(d.Products, validation.Required); err != nil {
		return fmt.Errorf("products: %v", err)
	}
	for i := range d.Products {
		if err := validateProduct(&d.Products[i]); err != nil {
			return fmt.Errorf("product %q: %v", d.Products[i].ID, err)
		}
	}
	for i := range d.FAQ {
		if err := validateTopic(&d.FAQ[i]); err != nil {
			return fmt.Errorf("faq %q: %v", d.FAQ[i].ID, err)
		}
	}
	return nil
}

func validateLinks(l *domain.Links) error {
	return validation.ValidateStruct(l,
		validation.Field(&l.Website, validation.Required, is.URL),
		validation.Field(&l.Status, validation.Required, is.URL),
		validation.Field(&l.Loader, validation.Required, is.URL),
		validation.Field(&l.LoaderCode, validation.Required),
	)
}

func validateProduct(p *domain.Product) error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.ID, validation.Required, validation.Length(1, maxIDLength), validation.By(tokenSafe)),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Description, validation.By(translations)),
		validation.Field(&p.Guide, validation.By(translations), validation.Each(is.URL)),
		validation.Field(&p.Durations, validation.Required, validation.Each(validation.By(tokenSafe))),
		validation.Field(&p.Links, validation.Required, validation.Each(validation.Required, is.URL)),
	)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(p.Durations))
	for _, d := range p.Durations {
		if seen[d] {
			return fmt.Errorf("duplicate duration %q", d)
		}
		seen[d] = true
		if _, ok := p.Links[d]; !ok {
			return fmt.Errorf("no payment link for duration %q", d)
		}
	}
	for d := range p.Links {
		if !seen[d] {
			return fmt.Errorf("payment link for duration %q that is not offered", d)
		}
	}
	return nil
}

func validateTopic(t *domain.FAQTopic) error {
	return validation.ValidateStruct(t,
		validation.Field(&t.ID, validation.Required, validation.Length(1, maxIDLength), validation.By(tokenSafe)),
		validation.Field(&t.Title, validation.By(translations)),
		validation.Field(&t.URL, validation.Required, is.URL),
	)
}

func tokenSafe(value interface{}) error {
	s, _ := value.(string)
	if !domain.IsTokenSafe(s) {
		return errors.New("must contain only a-z and 0-9")
	}
	return nil
}

func translations(value interface{}) error {
	m, _ := value.(map[domain.Language]string)
	return domain.CheckTranslations(m)
}
