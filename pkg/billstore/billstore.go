// Package billstore is the single source of truth for bill data. Every
// operation reloads the full collection from the backing store, mutates it
// in memory and writes it back in full.
//
// A BillStore serialises its own operations, but the file it owns must not
// be shared with another process: concurrent writers overwrite each other.
package billstore

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goodnight/goodnight/pkg/persistence"
	"github.com/goodnight/goodnight/pkg/types"
)

// ErrNotFound reports that no bill carries the requested id.
var ErrNotFound = errors.New("bill not found")

type BillStore struct {
	mu    sync.Mutex
	store persistence.Store
	now   func() time.Time
	log   logrus.FieldLogger
}

type Option func(*BillStore)

// WithClock overrides the time source used for ids and created_at.
func WithClock(now func() time.Time) Option {
	return func(s *BillStore) {
		s.now = now
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *BillStore) {
		s.log = log
	}
}

func New(store persistence.Store, opts ...Option) *BillStore {
	s := &BillStore{
		store: store,
		now:   time.Now,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load returns every bill, most recent first. It never fails: read and
// schema problems are logged and whatever could be salvaged is returned.
func (s *BillStore) Load() []types.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// Save overwrites the store with bills. A failure is logged and returned
// so callers can tell the user the change was not persisted.
func (s *BillStore) Save(bills []types.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(bills)
}

// CreateBill inserts a new, empty bill at the head of the collection.
// The returned bill is valid even when the error is non-nil; the error then
// wraps persistence.ErrWrite.
func (s *BillStore) CreateBill(title string) (types.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bills := s.load()

	now := s.now()
	bill := types.NewBill(title, now)
	for types.HasBill(bills, bill.ID) {
		now = now.Add(time.Microsecond)
		bill.ID = types.BillID(now)
	}

	bills = append([]types.Bill{bill}, bills...)
	if err := s.save(bills); err != nil {
		return bill, err
	}

	s.log.WithFields(logrus.Fields{"bill_id": bill.ID, "title": bill.Title}).Info("bill created")
	return bill, nil
}

// AddItem appends an item to the first bill whose id matches billID.
// Input is validated before anything is read, so types.ErrInvalidItem and
// types.ErrParse leave the store untouched. The collection is rewritten
// even when no bill matches, in which case ErrNotFound is returned.
func (s *BillStore) AddItem(billID, title, price, person string) error {
	item, err := types.NewItem(title, price, person)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bills := s.load()

	found := false
	for i := range bills {
		if bills[i].ID == billID {
			bills[i].Items = append(bills[i].Items, item)
			found = true
			break
		}
	}

	if err := s.save(bills); err != nil {
		return err
	}

	if !found {
		s.log.WithField("bill_id", billID).Warn("add item: bill not found")
		return fmt.Errorf("%w: %s", ErrNotFound, billID)
	}

	s.log.WithFields(logrus.Fields{"bill_id": billID, "item": item.Title}).Info("item added")
	return nil
}

// FindByID returns the first bill with the given id.
func (s *BillStore) FindByID(billID string) (types.Bill, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return types.GetBill(s.load(), billID)
}

// Check reports the read or schema error of the current store content, or
// nil when it loads cleanly. Load hides these errors; Check surfaces them.
func (s *BillStore) Check() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.store.LoadBills()
	return err
}

func (s *BillStore) load() []types.Bill {
	bills, err := s.store.LoadBills()
	if err != nil {
		var schemaErr *persistence.SchemaError
		if errors.As(err, &schemaErr) {
			s.log.WithField("problems", len(schemaErr.Problems)).WithError(err).Warn("bills loaded with problems")
		} else {
			s.log.WithError(err).Error("failed to load bills")
		}
	}
	if bills == nil {
		bills = []types.Bill{}
	}

	return bills
}

func (s *BillStore) save(bills []types.Bill) error {
	if err := s.store.DumpBills(bills); err != nil {
		s.log.WithError(err).Error("failed to save bills")
		return err
	}

	return nil
}
