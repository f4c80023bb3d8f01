package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultBillTitle replaces an empty or whitespace-only bill title.
	DefaultBillTitle = "Untitled"

	// IDLayout is the id format: UTC timestamp with microseconds and no separators.
	IDLayout = "20060102150405.000000"

	// CreatedAtLayout is the created_at format: ISO-8601 without zone, microseconds.
	CreatedAtLayout = "2006-01-02T15:04:05.000000"

	listDateLayout = "2006-01-02 15:04"
)

var validate = validator.New()

var (
	// ErrInvalidItem reports an item with an empty title or person.
	ErrInvalidItem = errors.New("invalid item")

	// ErrParse reports a price that is not a finite number.
	ErrParse = errors.New("price is not a number")
)

type StorageConfig struct {
	Backend string `yaml:"backend" validate:"omitempty,oneof=json sqlite"`
	Path    string `yaml:"path"`
}

type Config struct {
	Storage  StorageConfig `yaml:"storage"`
	LogLevel string        `yaml:"logLevel" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	Currency string        `yaml:"currency"`

	// LedgerUnit is the commodity written by the ledger export.
	LedgerUnit string `yaml:"ledgerUnit" validate:"omitempty,uppercase,alpha"`
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

type Item struct {
	Title  string  `json:"title" validate:"required"`
	Price  float64 `json:"price"`
	Person string  `json:"person" validate:"required"`
}

// NewItem builds an item from raw user input. Title and person are trimmed
// and must be non-empty; price must parse to a finite number.
func NewItem(title, price, person string) (Item, error) {
	item := Item{
		Title:  strings.TrimSpace(title),
		Person: strings.TrimSpace(person),
	}
	if err := item.Validate(); err != nil {
		return Item{}, fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}

	p, err := ParsePrice(price)
	if err != nil {
		return Item{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	item.Price = p

	return item, nil
}

func (i Item) Validate() error {
	return validate.Struct(i)
}

func (i Item) Label(currency string) string {
	return fmt.Sprintf("%s - %s%s - %s", i.Title, FormatPrice(i.Price), currency, i.Person)
}

// ParsePrice parses a user supplied price. NaN and infinities are rejected
// because they cannot be encoded as JSON numbers.
func ParsePrice(s string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, fmt.Errorf("price %q is not a finite number", s)
	}

	return p, nil
}

func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

type Bill struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	Items     []Item `json:"items"`
}

// NewBill returns a bill stamped with now. The title is trimmed and
// replaced by DefaultBillTitle when nothing is left.
func NewBill(title string, now time.Time) Bill {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultBillTitle
	}

	now = now.UTC()
	return Bill{
		ID:        BillID(now),
		Title:     title,
		CreatedAt: now.Format(CreatedAtLayout),
		Items:     []Item{},
	}
}

func BillID(t time.Time) string {
	return strings.Replace(t.UTC().Format(IDLayout), ".", "", 1)
}

func (b Bill) Total() float64 {
	var total float64
	for _, item := range b.Items {
		total += item.Price
	}

	return total
}

// Label renders the bill for a list row: title and creation time to the
// minute, or the raw created_at when it does not parse.
func (b Bill) Label() string {
	title := b.Title
	if title == "" {
		title = DefaultBillTitle
	}
	if b.CreatedAt == "" {
		return title
	}

	created := b.CreatedAt
	if t, err := ParseCreatedAt(b.CreatedAt); err == nil {
		created = t.Format(listDateLayout)
	}

	return fmt.Sprintf("%s — %s", title, created)
}

// ParseCreatedAt accepts created_at values with or without fractional
// seconds and with an optional zone offset.
func ParseCreatedAt(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised created_at %q", s)
}

func GetBill(bills []Bill, id string) (Bill, bool) {
	for _, bill := range bills {
		if bill.ID == id {
			return bill, true
		}
	}

	return Bill{}, false
}

func HasBill(bills []Bill, id string) bool {
	_, ok := GetBill(bills, id)
	return ok
}
