package data

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// CompoundDataFactory combines several factories into one.
//
// Query resolution first tries every static factory in registration order,
// then every free-form factory in registration order. The first factory that
// reports the query as executable answers it. This order decides which source
// answers a query name that several factories claim.
type CompoundDataFactory struct {
	factories []DataFactory
}

// NewCompoundDataFactory creates a compound factory over the given factories.
// Nil factories are skipped.
func NewCompoundDataFactory(factories ...DataFactory) *CompoundDataFactory {
	c := &CompoundDataFactory{}
	for _, f := range factories {
		if f != nil {
			c.factories = append(c.factories, f)
		}
	}
	return c
}

// Normalize flattens nested compound factories so that the static/free-form
// ordering applies to every leaf factory. A nil factory yields an empty compound.
func Normalize(f DataFactory) *CompoundDataFactory {
	result := &CompoundDataFactory{}
	result.appendNormalized(f)
	return result
}

func (c *CompoundDataFactory) appendNormalized(f DataFactory) {
	if f == nil {
		return
	}
	if nested, ok := f.(*CompoundDataFactory); ok {
		for _, child := range nested.factories {
			c.appendNormalized(child)
		}
		return
	}
	c.factories = append(c.factories, f)
}

// Add appends a factory.
func (c *CompoundDataFactory) Add(f DataFactory) error {
	if f == nil {
		return errors.New("data factory must not be nil")
	}
	c.factories = append(c.factories, f)
	return nil
}

// Insert places a factory at the given position.
func (c *CompoundDataFactory) Insert(index int, f DataFactory) error {
	if f == nil {
		return errors.New("data factory must not be nil")
	}
	if index < 0 || index > len(c.factories) {
		return fmt.Errorf("index %d out of range [0, %d]", index, len(c.factories))
	}
	c.factories = append(c.factories, nil)
	copy(c.factories[index+1:], c.factories[index:])
	c.factories[index] = f
	return nil
}

// Set replaces the factory at the given position.
func (c *CompoundDataFactory) Set(index int, f DataFactory) error {
	if f == nil {
		return errors.New("data factory must not be nil")
	}
	if index < 0 || index >= len(c.factories) {
		return fmt.Errorf("index %d out of range [0, %d)", index, len(c.factories))
	}
	c.factories[index] = f
	return nil
}

// RemoveAt removes the factory at the given position.
func (c *CompoundDataFactory) RemoveAt(index int) error {
	if index < 0 || index >= len(c.factories) {
		return fmt.Errorf("index %d out of range [0, %d)", index, len(c.factories))
	}
	c.factories = slices.Delete(c.factories, index, index+1)
	return nil
}

// Remove removes the first occurrence of f and reports whether it was found.
func (c *CompoundDataFactory) Remove(f DataFactory) bool {
	for i, existing := range c.factories {
		if existing == f {
			c.factories = slices.Delete(c.factories, i, i+1)
			return true
		}
	}
	return false
}

// Len returns the number of registered factories.
func (c *CompoundDataFactory) Len() int { return len(c.factories) }

// IsEmpty reports whether no factory is registered.
func (c *CompoundDataFactory) IsEmpty() bool { return len(c.factories) == 0 }

// At returns the factory at the given position, or nil if out of range.
func (c *CompoundDataFactory) At(index int) DataFactory {
	if index < 0 || index >= len(c.factories) {
		return nil
	}
	return c.factories[index]
}

// DataFactoryForQuery returns the first factory of the requested class that
// can execute the query, or nil.
func (c *CompoundDataFactory) DataFactoryForQuery(query string, freeForm bool) DataFactory {
	return c.lookup(query, EmptyDataRow, freeForm)
}

func (c *CompoundDataFactory) lookup(query string, params DataRow, freeForm bool) DataFactory {
	for _, f := range c.factories {
		if f.MetaData().FreeFormQuery != freeForm {
			continue
		}
		if f.IsQueryExecutable(query, params) {
			return f
		}
	}
	return nil
}

// Resolve returns the factory that answers the query and the resolution
// path: "static", "free_form" or "not_found".
func (c *CompoundDataFactory) Resolve(query string, params DataRow) (DataFactory, string) {
	if params == nil {
		params = EmptyDataRow
	}
	return c.resolve(query, params)
}

func (c *CompoundDataFactory) resolve(query string, params DataRow) (DataFactory, string) {
	if f := c.lookup(query, params, false); f != nil {
		return f, "static"
	}
	if f := c.lookup(query, params, true); f != nil {
		return f, "free_form"
	}
	return nil, "not_found"
}

// QueryData resolves the query and runs it on the answering factory. When
// params carry the reserved timeout, the query runs under that deadline and
// a query failing past it returns a *QueryTimeoutError.
func (c *CompoundDataFactory) QueryData(ctx context.Context, query string, params DataRow) (TableModel, error) {
	if params == nil {
		params = EmptyDataRow
	}
	f, path := c.resolve(query, params)
	queryResolutionTotal.WithLabelValues(path).Inc()
	if f == nil {
		return nil, NewQueryNotFoundError(query)
	}
	timeout, limited := QueryTimeout(params)
	if limited {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	start := time.Now()
	result, err := f.QueryData(ctx, query, params)
	queryDuration.WithLabelValues(f.MetaData().Name).Observe(time.Since(start).Seconds())
	if err != nil && limited && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		var timeoutErr *QueryTimeoutError
		if !errors.As(err, &timeoutErr) {
			err = &QueryTimeoutError{Query: query, Timeout: timeout, Cause: err}
		}
		f.CancelRunningQuery()
	}
	return result, err
}

// IsQueryExecutable reports whether any static or free-form factory claims the query.
func (c *CompoundDataFactory) IsQueryExecutable(query string, params DataRow) bool {
	if params == nil {
		params = EmptyDataRow
	}
	f, _ := c.resolve(query, params)
	return f != nil
}

// QueryNames returns the declared query names of all factories in
// registration order, without duplicates.
func (c *CompoundDataFactory) QueryNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range c.factories {
		for _, n := range f.QueryNames() {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}

// MetaData describes the compound. A compound is not itself free-form.
func (c *CompoundDataFactory) MetaData() MetaData {
	return MetaData{Name: "compound"}
}

// Derive derives every contained factory.
func (c *CompoundDataFactory) Derive() DataFactory {
	derived := &CompoundDataFactory{factories: make([]DataFactory, len(c.factories))}
	for i, f := range c.factories {
		derived.factories[i] = f.Derive()
	}
	return derived
}

// Initialize initializes all contained factories concurrently and returns
// the first failure.
func (c *CompoundDataFactory) Initialize(ctx context.Context, ic InitContext) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, f := range c.factories {
		g.Go(func() error {
			return f.Initialize(gctx, ic)
		})
	}
	return g.Wait()
}

// CancelRunningQuery forwards the cancel hint to every contained factory.
func (c *CompoundDataFactory) CancelRunningQuery() {
	for _, f := range c.factories {
		f.CancelRunningQuery()
	}
}

// Close closes every contained factory, even if some fail.
func (c *CompoundDataFactory) Close() error {
	var errs []error
	for _, f := range c.factories {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ReferencedFields delegates to the factory answering the query.
func (c *CompoundDataFactory) ReferencedFields(query string, params DataRow) ([]string, error) {
	if params == nil {
		params = EmptyDataRow
	}
	f, _ := c.resolve(query, params)
	if f == nil {
		return nil, NewQueryNotFoundError(query)
	}
	if qi, ok := f.(QueryIntrospector); ok {
		return qi.ReferencedFields(query, params)
	}
	return nil, nil
}

// QueryHash delegates to the factory answering the query. Factories that
// cannot describe their queries yield an empty hash.
func (c *CompoundDataFactory) QueryHash(query string, params DataRow) (string, error) {
	if params == nil {
		params = EmptyDataRow
	}
	f, _ := c.resolve(query, params)
	if f == nil {
		return "", NewQueryNotFoundError(query)
	}
	if qi, ok := f.(QueryIntrospector); ok {
		return qi.QueryHash(query, params)
	}
	return "", nil
}
