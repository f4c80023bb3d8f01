package dump

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goodnight/goodnight/pkg/types"
)

func testBills() []types.Bill {
	return []types.Bill{
		{
			ID:        "2",
			Title:     "Ужин",
			CreatedAt: "not a date",
			Items:     []types.Item{{Title: "Tea", Price: 120, Person: "sam"}},
		},
		{
			ID:        "1",
			Title:     "Team dinner",
			CreatedAt: "2024-01-15T10:30:45.123456",
			Items: []types.Item{
				{Title: "Pizza \"XL\"", Price: 450.5, Person: "Alex"},
			},
		},
	}
}

func TestAccountName(t *testing.T) {
	tests := map[string]string{
		"Team dinner": "Teamdinner",
		"alex":        "Alex",
		"Ужин в кафе": "Ужинвкафе",
		"саша":        "Саша",
		"":            "Unknown",
		"!?":          "Unknown",
		"2nd round!":  "2ndround",
	}

	for in, want := range tests {
		if got := accountName(in); got != want {
			t.Errorf("accountName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, testBills(), "USD"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"2000-01-01 open Expenses:Bills:Teamdinner",
		"2000-01-01 open Expenses:Bills:Ужин",
		"2000-01-01 open Liabilities:Alex",
		"2000-01-01 open Liabilities:Sam",
		`2024-01-15 * "Alex" "Pizza \"XL\"" #bill1`,
		"Expenses:Bills:Teamdinner 450.5 USD",
		`1970-01-01 * "sam" "Tea" #bill2`,
		`bill: "Ужин"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}

	if strings.Index(out, "#bill1") > strings.Index(out, "#bill2") {
		t.Errorf("expected oldest bill first, got:\n%s", out)
	}
}

func TestRenderKeepsCyrillicPeopleApart(t *testing.T) {
	bills := []types.Bill{{
		ID:        "1",
		Title:     "Ужин",
		CreatedAt: "2024-01-15T10:30:45.123456",
		Items: []types.Item{
			{Title: "Пицца", Price: 450, Person: "Саша"},
			{Title: "Чай", Price: 120, Person: "Маша"},
		},
	}}

	var buf bytes.Buffer
	if err := Render(&buf, bills, ""); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	if n := strings.Count(out, "open Liabilities:"); n != 2 {
		t.Errorf("expected 2 liability accounts, got %d:\n%s", n, out)
	}
	for _, want := range []string{
		"Expenses:Bills:Ужин 450 RUB\n    Liabilities:Саша",
		"Expenses:Bills:Ужин 120 RUB\n    Liabilities:Маша",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Unknown") {
		t.Errorf("expected no Unknown accounts, got:\n%s", out)
	}
}

func TestRenderAmountsWithoutExponent(t *testing.T) {
	bills := []types.Bill{{
		ID:        "1",
		Title:     "Tip",
		CreatedAt: "2024-01-15T10:30:45.123456",
		Items: []types.Item{
			{Title: "Small", Price: 0.0000001, Person: "Sam"},
			{Title: "Large", Price: 1e21, Person: "Sam"},
		},
	}}

	var buf bytes.Buffer
	if err := Render(&buf, bills, "RUB"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Expenses:Bills:Tip 0.0000001 RUB",
		"Expenses:Bills:Tip 1000000000000000000000 RUB",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "e-") || strings.Contains(out, "e+") {
		t.Errorf("expected no exponent notation, got:\n%s", out)
	}
}

func TestDumpWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bills.beancount")
	if err := Dump(path, testBills(), ""); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read ledger: %v", err)
	}
	if !strings.Contains(string(data), DefaultUnit) {
		t.Errorf("expected default unit %s in ledger:\n%s", DefaultUnit, data)
	}
}
