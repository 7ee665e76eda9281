package state

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var catalogRaw []byte

var ErrEmptyCatalog = errors.New("catalog has an empty vocabulary")

// Catalog is the vocabulary the dataset generator draws from.
type Catalog struct {
	Users    []string `yaml:"users"`
	Sellers  []string `yaml:"sellers"`
	Products []string `yaml:"products"`
	Statuses []string `yaml:"statuses"`
}

// LoadCatalog parses the embedded catalog.
func LoadCatalog() (Catalog, error) {
	return ParseCatalog(catalogRaw)
}

func MustLoadCatalog() Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

func ParseCatalog(raw []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func (c Catalog) Validate() error {
	switch {
	case len(c.Users) == 0:
		return fmt.Errorf("%w: users", ErrEmptyCatalog)
	case len(c.Sellers) == 0:
		return fmt.Errorf("%w: sellers", ErrEmptyCatalog)
	case len(c.Products) == 0:
		return fmt.Errorf("%w: products", ErrEmptyCatalog)
	case len(c.Statuses) == 0:
		return fmt.Errorf("%w: statuses", ErrEmptyCatalog)
	}
	return nil
}

// Generate fills a new store with one order per user, seller and product, in
// that nesting order, with tracking numbers counting up from zero. Statuses are
// drawn from rng.
func Generate(c Catalog, emailDomain string, rng *rand.Rand) (*MemoryStore, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	domain := strings.TrimSpace(emailDomain)
	if !strings.HasPrefix(domain, "@") {
		domain = "@" + domain
	}

	store := NewMemoryStore()
	id := 0
	for _, user := range c.Users {
		email := strings.TrimSpace(user) + domain
		if err := store.RegisterUser(email); err != nil {
			return nil, err
		}
		for _, seller := range c.Sellers {
			for _, product := range c.Products {
				_, err := store.Add(Order{
					ID:          id,
					UserEmail:   email,
					Seller:      seller,
					ProductName: product,
					Status:      c.Statuses[rng.IntN(len(c.Statuses))],
				})
				if err != nil {
					return nil, err
				}
				id++
			}
		}
	}
	return store, nil
}
