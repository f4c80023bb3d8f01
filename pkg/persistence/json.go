package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/goodnight/goodnight/pkg/types"
)

// billRecord and itemRecord mirror the on-disk shape with pointer fields so
// that missing keys can be told apart from zero values.
type billRecord struct {
	ID        *string         `json:"id"`
	Title     *string         `json:"title"`
	CreatedAt *string         `json:"created_at"`
	Items     json.RawMessage `json:"items"`
}

type itemRecord struct {
	Title  *string  `json:"title"`
	Price  *float64 `json:"price"`
	Person *string  `json:"person"`
}

type billOutput struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	CreatedAt string       `json:"created_at"`
	Items     []itemOutput `json:"items"`
}

type itemOutput struct {
	Title  string      `json:"title"`
	Price  json.Number `json:"price"`
	Person string      `json:"person"`
}

// DumpBills writes the full collection to path, replacing the previous
// content atomically.
func DumpBills(path string, bills []types.Bill) error {
	data, err := encodeBills(bills)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal bills: %w", ErrWrite, err)
	}

	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return nil
}

// LoadBills reads the collection at path. The returned slice is never nil.
// On a read failure it is empty; on a *SchemaError it holds every record
// that could be salvaged.
func LoadBills(path string) ([]types.Bill, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return []types.Bill{}, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return decodeBills(data)
}

func encodeBills(bills []types.Bill) ([]byte, error) {
	out := make([]billOutput, len(bills))
	for i, bill := range bills {
		items := make([]itemOutput, len(bill.Items))
		for j, item := range bill.Items {
			items[j] = itemOutput{
				Title:  item.Title,
				Price:  encodePrice(item.Price),
				Person: item.Person,
			}
		}
		out[i] = billOutput{ID: bill.ID, Title: bill.Title, CreatedAt: bill.CreatedAt, Items: items}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// encodePrice writes prices as decimals, keeping a fractional part on whole
// numbers so the file reads 450.0 rather than 450.
func encodePrice(p float64) json.Number {
	s := types.FormatPrice(p)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return json.Number(s)
}

func decodeBills(data []byte) ([]types.Bill, error) {
	bills := []types.Bill{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return bills, nil
	}
	if !json.Valid(trimmed) {
		return bills, fmt.Errorf("%w: content is not valid JSON", ErrRead)
	}
	if trimmed[0] != '[' {
		schemaErr := &SchemaError{}
		schemaErr.add("top level value is not an array")
		return bills, schemaErr
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return bills, fmt.Errorf("%w: %w", ErrRead, err)
	}

	schemaErr := &SchemaError{}
	seen := make(map[string]bool, len(raws))
	for i, raw := range raws {
		bill, ok := decodeBill(i, raw, schemaErr)
		if !ok {
			continue
		}
		if seen[bill.ID] {
			schemaErr.add("bill %d: duplicate id %q", i, bill.ID)
			continue
		}
		seen[bill.ID] = true
		bills = append(bills, bill)
	}

	return bills, schemaErr.orNil()
}

func decodeBill(idx int, raw json.RawMessage, schemaErr *SchemaError) (types.Bill, bool) {
	var rec billRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		schemaErr.add("bill %d: %v", idx, err)
		return types.Bill{}, false
	}
	if rec.ID == nil || *rec.ID == "" {
		schemaErr.add("bill %d: missing id", idx)
		return types.Bill{}, false
	}

	bill := types.Bill{
		ID:    *rec.ID,
		Title: types.DefaultBillTitle,
		Items: []types.Item{},
	}

	if rec.Title != nil && strings.TrimSpace(*rec.Title) != "" {
		bill.Title = *rec.Title
	} else {
		schemaErr.add("bill %q: missing title", bill.ID)
	}

	if rec.CreatedAt != nil {
		bill.CreatedAt = *rec.CreatedAt
	} else {
		schemaErr.add("bill %q: missing created_at", bill.ID)
	}

	if len(rec.Items) == 0 || string(rec.Items) == "null" {
		return bill, true
	}

	var items []json.RawMessage
	if err := json.Unmarshal(rec.Items, &items); err != nil {
		schemaErr.add("bill %q: items is not an array", bill.ID)
		return bill, true
	}

	for j, rawItem := range items {
		item, err := decodeItem(rawItem)
		if err != nil {
			schemaErr.add("bill %q item %d: %v", bill.ID, j, err)
			continue
		}
		bill.Items = append(bill.Items, item)
	}

	return bill, true
}

func decodeItem(raw json.RawMessage) (types.Item, error) {
	var rec itemRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return types.Item{}, err
	}
	if rec.Title == nil || rec.Person == nil || rec.Price == nil {
		return types.Item{}, fmt.Errorf("missing title, price or person")
	}

	item := types.Item{Title: *rec.Title, Price: *rec.Price, Person: *rec.Person}
	check := types.Item{Title: strings.TrimSpace(item.Title), Person: strings.TrimSpace(item.Person)}
	if err := check.Validate(); err != nil {
		return types.Item{}, err
	}

	return item, nil
}
