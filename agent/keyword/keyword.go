package keyword

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/pelletier/go-toml/v2"
)

//go:embed keywords.toml
var defaultRaw []byte

var ErrMissingKeyword = errors.New("keyword set is empty")

// Book holds the fixed vocabularies the dialogue reacts to.
type Book struct {
	Help    string   `toml:"help"`
	Exit    []string `toml:"exit"`
	Yes     []string `toml:"yes"`
	No      []string `toml:"no"`
	Seller  []string `toml:"seller"`
	Product []string `toml:"product"`

	YesSubstring string `toml:"yes_substring"`
	NoSubstring  string `toml:"no_substring"`
}

const (
	defaultYesSubstring = "yes"
	defaultNoSubstring  = "no"
)

// Default returns the embedded keyword book.
func Default() Book {
	b, err := Parse(defaultRaw)
	if err != nil {
		panic(err)
	}
	return b
}

// Load reads a TOML keyword book from path. An empty path yields Default.
func Load(path string) (Book, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Book{}, fmt.Errorf("read keywords file: %w", err)
	}
	return Parse(raw)
}

func MustLoad(path string) Book {
	b, err := Load(path)
	if err != nil {
		panic(err)
	}
	return b
}

func Parse(raw []byte) (Book, error) {
	var b Book
	if err := toml.Unmarshal(raw, &b); err != nil {
		return Book{}, fmt.Errorf("decode keywords: %w", err)
	}
	b.normalize()
	if err := b.Validate(); err != nil {
		return Book{}, err
	}
	return b, nil
}

func (b *Book) normalize() {
	b.Help = strings.ToLower(strings.TrimSpace(b.Help))
	b.YesSubstring = strings.ToLower(strings.TrimSpace(b.YesSubstring))
	if b.YesSubstring == "" {
		b.YesSubstring = defaultYesSubstring
	}
	b.NoSubstring = strings.ToLower(strings.TrimSpace(b.NoSubstring))
	if b.NoSubstring == "" {
		b.NoSubstring = defaultNoSubstring
	}
	for _, set := range []*[]string{&b.Exit, &b.Yes, &b.No, &b.Seller, &b.Product} {
		out := (*set)[:0]
		for _, w := range *set {
			if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
				out = append(out, w)
			}
		}
		*set = out
	}
}

func (b Book) Validate() error {
	switch {
	case b.Help == "":
		return fmt.Errorf("%w: help", ErrMissingKeyword)
	case len(b.Exit) == 0:
		return fmt.Errorf("%w: exit", ErrMissingKeyword)
	case len(b.Yes) == 0:
		return fmt.Errorf("%w: yes", ErrMissingKeyword)
	case len(b.No) == 0:
		return fmt.Errorf("%w: no", ErrMissingKeyword)
	case len(b.Seller) == 0:
		return fmt.Errorf("%w: seller", ErrMissingKeyword)
	case len(b.Product) == 0:
		return fmt.Errorf("%w: product", ErrMissingKeyword)
	}
	return nil
}

// IsHelp and IsExit compare the whole input only; they gate every read.
func (b Book) IsHelp(input string) bool {
	return input == b.Help
}

func (b Book) IsExit(input string) bool {
	return slices.Contains(b.Exit, input)
}

func (b Book) Affirmative(input string) bool {
	return Match(input, b.Yes)
}

func (b Book) Negative(input string) bool {
	return Match(input, b.No)
}

// Accepts and Declines answer yes/no questions: a keyword match or a reply
// containing the yes/no fragment. Check Accepts first when both could apply.
func (b Book) Accepts(input string) bool {
	return b.Affirmative(input) || containsFragment(input, b.YesSubstring)
}

func (b Book) Declines(input string) bool {
	return b.Negative(input) || containsFragment(input, b.NoSubstring)
}

func containsFragment(input, fragment string) bool {
	return fragment != "" && strings.Contains(input, fragment)
}

func (b Book) MentionsSeller(input string) bool {
	return Match(input, b.Seller)
}

func (b Book) MentionsProduct(input string) bool {
	return Match(input, b.Product)
}

// Match reports whether input, or any word in it, belongs to set.
func Match(input string, set []string) bool {
	if input == "" {
		return false
	}
	if slices.Contains(set, input) {
		return true
	}
	for _, word := range strings.FieldsFunc(input, isSeparator) {
		if slices.Contains(set, word) {
			return true
		}
	}
	return false
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
}
