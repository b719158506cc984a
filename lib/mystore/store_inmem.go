package mystore

import (
	"context"
	"reflect"
	"sync"
)

type InMemoryStore[T any] struct {
	sync.Mutex
	Items map[string]T
}

func NewInMemoryStore[T any](c context.Context) (*InMemoryStore[T], func(), error) {
	return &InMemoryStore[T]{
		Items: make(map[string]T),
	}, func() {}, nil
}

func (s *InMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	// Start transaction
	s.Lock()
	defer s.Unlock()

	// Within this block everything is transactional for this store only
	ctx := context.WithValue(c, ctxTransactionKey{}, s)

	before := make(map[string]T, len(s.Items))
	for k, v := range s.Items {
		before[k] = v
	}

	err := f(ctx)
	if err != nil {
		// rollback
		s.Items = before
		return err
	}

	return nil
}

func (s *InMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	nonTransactional := !s.inTransaction(c)

	if nonTransactional {
		s.Lock()
		defer s.Unlock()
	}

	s.Items[uid] = value

	return nil
}

func (s *InMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	nonTransactional := !s.inTransaction(c)

	if nonTransactional {
		s.Lock()
		defer s.Unlock()
	}

	result, exists := s.Items[uid]

	return result, exists, nil
}

func (s *InMemoryStore[T]) List(c context.Context) ([]T, error) {
	return s.Query(c, nil, "")
}

// Query only supports equality filters on exported fields; ordering is ignored.
func (s *InMemoryStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	nonTransactional := !s.inTransaction(c)

	if nonTransactional {
		s.Lock()
		defer s.Unlock()
	}

	result := make([]T, 0, len(s.Items))
	for _, v := range s.Items {
		if matches(v, filters) {
			result = append(result, v)
		}
	}

	return result, nil
}

func (s *InMemoryStore[T]) inTransaction(c context.Context) bool {
	store, ok := c.Value(ctxTransactionKey{}).(*InMemoryStore[T])
	return ok && store == s
}

func matches(value any, filters []Filter) bool {
	rv := reflect.Indirect(reflect.ValueOf(value))
	for _, f := range filters {
		if f.Compare != "=" || rv.Kind() != reflect.Struct {
			continue
		}
		field := rv.FieldByName(f.Field)
		if !field.IsValid() || !reflect.DeepEqual(field.Interface(), f.Value) {
			return false
		}
	}
	return true
}
