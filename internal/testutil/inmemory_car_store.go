package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/carsapp/cars/internal/domain/car"
	ierr "github.com/carsapp/cars/internal/errors"
)

// InMemoryCarStore implements car.Repository
type InMemoryCarStore struct {
	*InMemoryStore[*car.Car]

	// Now stamps created_at and updated_at; defaults to the wall clock
	Now func() time.Time

	mu       sync.Mutex
	failures map[int64]error
	calls    map[string]int
}

// NewInMemoryCarStore creates a new in-memory car store
func NewInMemoryCarStore() *InMemoryCarStore {
	return &InMemoryCarStore{
		InMemoryStore: NewInMemoryStore[*car.Car](),
		Now:           func() time.Time { return time.Now().UTC() },
		failures:      make(map[int64]error),
		calls:         make(map[string]int),
	}
}

func copyCar(c *car.Car) *car.Car {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// FailUpdate makes every Update and Activate of the car fail with err
func (s *InMemoryCarStore) FailUpdate(id int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[id] = err
}

// Calls returns how many times the named method ran
func (s *InMemoryCarStore) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// Writes returns the number of Create, Update, Activate and Delete calls
func (s *InMemoryCarStore) Writes() int {
	return s.Calls("Create") + s.Calls("Update") + s.Calls("Activate") + s.Calls("Delete")
}

func (s *InMemoryCarStore) record(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[method]++
}

func (s *InMemoryCarStore) failure(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures[id]
}

func notFound(id int64) error {
	return ierr.NewError("car not found").
		WithHintf("Car with id %d not found.", id).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryCarStore) Create(ctx context.Context, c *car.Car) error {
	s.record("Create")
	c.OnCreate(s.Now())
	c.ID = s.NextID()
	return s.InMemoryStore.Create(ctx, c.ID, copyCar(c))
}

func (s *InMemoryCarStore) Find(ctx context.Context, id int64) (*car.Car, error) {
	s.record("Find")
	c, ok := s.InMemoryStore.Get(ctx, id)
	if !ok {
		return nil, nil
	}
	return copyCar(c), nil
}

func (s *InMemoryCarStore) FindAll(ctx context.Context) ([]*car.Car, error) {
	s.record("FindAll")
	return s.list(ctx, nil), nil
}

func (s *InMemoryCarStore) FindByStatus(ctx context.Context, status bool) ([]*car.Car, error) {
	s.record("FindByStatus")
	return s.list(ctx, func(_ context.Context, c *car.Car) bool {
		return c.Status == status
	}), nil
}

func (s *InMemoryCarStore) list(ctx context.Context, filterFn FilterFunc[*car.Car]) []*car.Car {
	items := s.InMemoryStore.List(ctx, filterFn, func(i, j *car.Car) bool {
		return i.ID < j.ID
	})
	result := make([]*car.Car, 0, len(items))
	for _, c := range items {
		result = append(result, copyCar(c))
	}
	return result
}

// Update keeps the stored created_at and never clears status, as the postgres
// repository does
func (s *InMemoryCarStore) Update(ctx context.Context, c *car.Car) error {
	s.record("Update")
	if err := s.failure(c.ID); err != nil {
		return err
	}

	now := s.Now()
	stored, ok := s.InMemoryStore.Modify(ctx, c.ID, func(stored *car.Car) *car.Car {
		next := copyCar(c)
		next.Status = stored.Status || c.Status
		next.CreatedAt = stored.CreatedAt
		next.OnUpdate(now)
		return next
	})
	if !ok {
		return notFound(c.ID)
	}

	c.Status = stored.Status
	c.CreatedAt = stored.CreatedAt
	c.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *InMemoryCarStore) Activate(ctx context.Context, id int64) (bool, error) {
	s.record("Activate")
	if err := s.failure(id); err != nil {
		return false, err
	}

	now := s.Now()
	activated := false
	s.InMemoryStore.Modify(ctx, id, func(stored *car.Car) *car.Car {
		if stored.Status {
			return stored
		}
		next := copyCar(stored)
		next.Activate()
		next.OnUpdate(now)
		activated = true
		return next
	})
	return activated, nil
}

func (s *InMemoryCarStore) Delete(ctx context.Context, c *car.Car) error {
	s.record("Delete")
	if err := s.InMemoryStore.Delete(ctx, c.ID); err != nil {
		return notFound(c.ID)
	}
	return nil
}
