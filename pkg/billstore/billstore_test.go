package billstore

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goodnight/goodnight/pkg/persistence"
	"github.com/goodnight/goodnight/pkg/types"
)

var testTime = time.Date(2024, 1, 15, 10, 30, 45, 123456000, time.UTC)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestStore(t *testing.T) (*BillStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", "bills.json")
	store, err := persistence.NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	return New(store, WithClock(func() time.Time { return testTime }), WithLogger(quietLogger())), path
}

type failingStore struct {
	bills []types.Bill
}

func (s *failingStore) LoadBills() ([]types.Bill, error) {
	return s.bills, nil
}

func (s *failingStore) DumpBills([]types.Bill) error {
	return persistence.ErrWrite
}

func (s *failingStore) Close() error {
	return nil
}

func (s *failingStore) Path() string {
	return ""
}

func TestCreateBill(t *testing.T) {
	s, _ := newTestStore(t)

	bill, err := s.CreateBill("  Dinner  ")
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	want := types.Bill{
		ID:        "20240115103045123456",
		Title:     "Dinner",
		CreatedAt: "2024-01-15T10:30:45.123456",
		Items:     []types.Item{},
	}
	if !reflect.DeepEqual(want, bill) {
		t.Fatalf("unexpected bill.\nExpected: %+v\nActual:   %+v", want, bill)
	}

	loaded := s.Load()
	if len(loaded) != 1 || !reflect.DeepEqual(loaded[0], want) {
		t.Fatalf("expected persisted bill %+v, got %+v", want, loaded)
	}
}

func TestCreateBillDefaultTitle(t *testing.T) {
	s, _ := newTestStore(t)

	for _, title := range []string{"", "   ", "\t\n"} {
		bill, err := s.CreateBill(title)
		if err != nil {
			t.Fatalf("CreateBill(%q): %v", title, err)
		}
		if bill.Title != types.DefaultBillTitle {
			t.Errorf("CreateBill(%q): expected title %q, got %q", title, types.DefaultBillTitle, bill.Title)
		}
	}
}

func TestCreateBillOrderingAndUniqueness(t *testing.T) {
	s, _ := newTestStore(t)

	a, err := s.CreateBill("A")
	if err != nil {
		t.Fatalf("CreateBill(A): %v", err)
	}
	b, err := s.CreateBill("B")
	if err != nil {
		t.Fatalf("CreateBill(B): %v", err)
	}

	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, both are %s", a.ID)
	}
	if b.ID != "20240115103045123457" {
		t.Errorf("expected colliding id to move forward by 1µs, got %s", b.ID)
	}

	bills := s.Load()
	if len(bills) != 2 {
		t.Fatalf("expected 2 bills, got %d", len(bills))
	}
	if bills[0].Title != "B" || bills[1].Title != "A" {
		t.Fatalf("expected B before A, got %q, %q", bills[0].Title, bills[1].Title)
	}
}

func TestCreateBillReportsWriteError(t *testing.T) {
	s := New(&failingStore{}, WithClock(func() time.Time { return testTime }), WithLogger(quietLogger()))

	bill, err := s.CreateBill("Lost")
	if !errors.Is(err, persistence.ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
	if bill.Title != "Lost" {
		t.Errorf("expected bill to be returned alongside the error, got %+v", bill)
	}
}

func TestAddItem(t *testing.T) {
	s, _ := newTestStore(t)

	bill, err := s.CreateBill("Cafe")
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	if err := s.AddItem(bill.ID, "Tea", "120", "Sam"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	got, ok := s.FindByID(bill.ID)
	if !ok {
		t.Fatalf("FindByID(%s): not found", bill.ID)
	}
	want := []types.Item{{Title: "Tea", Price: 120.0, Person: "Sam"}}
	if !reflect.DeepEqual(want, got.Items) {
		t.Fatalf("unexpected items.\nExpected: %+v\nActual:   %+v", want, got.Items)
	}
}

func TestAddItemAppendsInOrder(t *testing.T) {
	s, _ := newTestStore(t)

	bill, _ := s.CreateBill("Cafe")
	for _, title := range []string{"Tea", "Cake", "Coffee"} {
		if err := s.AddItem(bill.ID, title, "1.5", "Sam"); err != nil {
			t.Fatalf("AddItem(%s): %v", title, err)
		}
	}

	got, _ := s.FindByID(bill.ID)
	if len(got.Items) != 3 || got.Items[0].Title != "Tea" || got.Items[2].Title != "Coffee" {
		t.Fatalf("unexpected items: %+v", got.Items)
	}
}

func TestAddItemNotFound(t *testing.T) {
	s, path := newTestStore(t)

	if _, err := s.CreateBill("Only"); err != nil {
		t.Fatalf("CreateBill: %v", err)
	}
	before := s.Load()

	err := s.AddItem("nonexistent-id", "Tea", "120", "Sam")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	after := s.Load()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("store changed.\nBefore: %+v\nAfter:  %+v", before, after)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("store file missing after no-op: %v", err)
	}
}

func TestAddItemRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name                 string
		title, price, person string
		want                 error
	}{
		{name: "non-numeric price", title: "Tea", price: "cheap", person: "Sam", want: types.ErrParse},
		{name: "empty price", title: "Tea", price: "", person: "Sam", want: types.ErrParse},
		{name: "nan price", title: "Tea", price: "NaN", person: "Sam", want: types.ErrParse},
		{name: "blank title", title: "  ", price: "1", person: "Sam", want: types.ErrInvalidItem},
		{name: "blank person", title: "Tea", price: "1", person: "", want: types.ErrInvalidItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			bill, _ := s.CreateBill("Cafe")

			err := s.AddItem(bill.ID, tt.title, tt.price, tt.person)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}

			got, _ := s.FindByID(bill.ID)
			if len(got.Items) != 0 {
				t.Fatalf("expected no items, got %+v", got.Items)
			}
		})
	}
}

func TestFindByIDMissing(t *testing.T) {
	s, _ := newTestStore(t)

	if _, ok := s.FindByID("nope"); ok {
		t.Fatal("expected not found")
	}
}

func TestLoadCorruptFileIsEmpty(t *testing.T) {
	for _, content := range []string{`"not an array"`, `{}`, `{"broken": `} {
		s, path := newTestStore(t)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if bills := s.Load(); len(bills) != 0 {
			t.Errorf("content %s: expected empty collection, got %+v", content, bills)
		}
		if err := s.Check(); err == nil {
			t.Errorf("content %s: expected Check to report a problem", content)
		}
	}
}

func TestCheckCleanStore(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.CreateBill("Fine"); err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	if err := s.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	bills := []types.Bill{
		{
			ID:        "2",
			Title:     "Ужин",
			CreatedAt: "2024-01-15T10:30:45.123456",
			Items:     []types.Item{{Title: "Пицца", Price: 450, Person: "Саша"}},
		},
		{ID: "1", Title: "晚饭", CreatedAt: "2024-01-14T10:30:45.000000", Items: []types.Item{}},
	}
	if err := s.Save(bills); err != nil {
		t.Fatalf("Save: %v", err)
	}

	first := s.Load()
	if err := s.Save(first); err != nil {
		t.Fatalf("Save (second): %v", err)
	}
	second := s.Load()

	if !reflect.DeepEqual(bills, second) {
		t.Fatalf("round-trip mismatch.\nExpected: %+v\nActual:   %+v", bills, second)
	}
}

func TestBillStoreOnSQLite(t *testing.T) {
	store, err := persistence.NewSQLiteStore(filepath.Join(t.TempDir(), "bills.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()

	s := New(store, WithClock(func() time.Time { return testTime }), WithLogger(quietLogger()))
	a, _ := s.CreateBill("A")
	b, _ := s.CreateBill("B")
	if err := s.AddItem(a.ID, "Tea", "120", "Sam"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	bills := s.Load()
	if len(bills) != 2 || bills[0].ID != b.ID || bills[1].ID != a.ID {
		t.Fatalf("unexpected order: %+v", bills)
	}
	if len(bills[1].Items) != 1 || bills[1].Items[0].Price != 120 {
		t.Fatalf("unexpected items: %+v", bills[1].Items)
	}
}
