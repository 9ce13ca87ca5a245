// Package refdata loads the static texts and the letter table used to describe
// calculated numbers.
package refdata

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/numerology/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// Brief is the short text shown for a number in brief mode.
type Brief struct {
	Keyword     string `yaml:"keyword" json:"keyword"`
	Description string `yaml:"description" json:"description"`
}

// Detail is the long text shown for a number in detail mode.
type Detail struct {
	Description string `yaml:"description" json:"description"`
	Advice      string `yaml:"advice" json:"advice"`
}

// KindEntry describes one kind of number and every value it can take.
type KindEntry struct {
	Title    string         `yaml:"title" json:"title"`
	Subtitle string         `yaml:"subtitle" json:"subtitle"`
	Meaning  string         `yaml:"meaning" json:"meaning"`
	Brief    map[int]Brief  `yaml:"brief" json:"-"`
	Detail   map[int]Detail `yaml:"detail" json:"-"`
}

// LetterSpec is the serialized form of a domain.LetterTable.
type LetterSpec struct {
	Values map[string]int `yaml:"values"`
	Vowels []string       `yaml:"vowels"`
}

type document struct {
	Letters  LetterSpec                      `yaml:"letters"`
	Keywords map[int][]string                `yaml:"keywords"`
	Kinds    map[domain.NumberKind]KindEntry `yaml:"kinds"`
}

// Catalog is complete reference data: every kind has brief and detail text
// for every number in its domain, and every such number has keywords.
type Catalog struct {
	letters  domain.LetterTable
	keywords map[int][]string
	kinds    map[domain.NumberKind]KindEntry
}

// Load decodes the catalog compiled into the binary.
func Load() (*Catalog, error) {
	return Parse(embedded)
}

// MustLoad is Load for package initialisation and tests.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFile decodes a catalog from disk, for deployments that replace the texts.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML and checks that the catalog is complete.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	letters, err := domain.NewLetterTable(doc.Letters.Values, doc.Letters.Vowels)
	if err != nil {
		return nil, fmt.Errorf("catalog letters: %w", err)
	}

	c := &Catalog{
		letters:  letters,
		keywords: doc.Keywords,
		kinds:    doc.Kinds,
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) check() error {
	var errs []error
	seen := make(map[int]bool)
	for _, k := range domain.Kinds() {
		entry, ok := c.kinds[k]
		if !ok {
			errs = append(errs, fmt.Errorf("kind %s: missing", k))
			continue
		}
		if entry.Title == "" || entry.Meaning == "" {
			errs = append(errs, fmt.Errorf("kind %s: title and meaning are required", k))
		}
		for _, n := range k.NumberDomain() {
			seen[n] = true
			b, ok := entry.Brief[n]
			if !ok || b.Keyword == "" || b.Description == "" {
				errs = append(errs, fmt.Errorf("kind %s: incomplete brief text for %d", k, n))
			}
			d, ok := entry.Detail[n]
			if !ok || d.Description == "" || d.Advice == "" {
				errs = append(errs, fmt.Errorf("kind %s: incomplete detail text for %d", k, n))
			}
		}
	}
	for n := range seen {
		if len(c.keywords[n]) == 0 {
			errs = append(errs, fmt.Errorf("keywords for %d: missing", n))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("incomplete catalog: %w", errors.Join(errs...))
	}
	return nil
}

// Letters returns the letter table the catalog was published with.
func (c *Catalog) Letters() domain.LetterTable {
	return c.letters
}

// Kind returns the header texts and all values for a kind.
func (c *Catalog) Kind(k domain.NumberKind) KindEntry {
	return c.kinds[k]
}

// Brief returns the brief text of number n for kind k.
func (c *Catalog) Brief(k domain.NumberKind, n int) Brief {
	return c.kinds[k].Brief[n]
}

// Detail returns the detail text of number n for kind k.
func (c *Catalog) Detail(k domain.NumberKind, n int) Detail {
	return c.kinds[k].Detail[n]
}

// Keywords returns a copy of the keyword list for n.
func (c *Catalog) Keywords(n int) []string {
	return append([]string(nil), c.keywords[n]...)
}
