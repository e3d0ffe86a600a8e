package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/crudkeeper/internal/client/models"
	"github.com/dmitrijs2005/crudkeeper/internal/client/services"
)

// screen is one collection's set of console views.
type screen interface {
	name() string
	list(ctx context.Context, fresh bool) error
	show(ctx context.Context) error
	add(ctx context.Context) error
	edit(ctx context.Context) error
	remove(ctx context.Context) error
	invalidate()
	reset(ctx context.Context) error
	count(ctx context.Context) (int, error)
	ping(ctx context.Context) error
}

type recordScreen[T models.Record] struct {
	coll   services.Collection[T]
	form   form[T]
	label  string
	reader *bufio.Reader
	out    io.Writer
}

func newScreen[T models.Record](coll services.Collection[T], f form[T], label string, r *bufio.Reader, w io.Writer) *recordScreen[T] {
	return &recordScreen[T]{coll: coll, form: f, label: label, reader: r, out: w}
}

func (s *recordScreen[T]) name() string { return s.coll.Name() }

func (s *recordScreen[T]) list(ctx context.Context, fresh bool) error {
	items, err := s.coll.List(ctx, !fresh)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintf(s.out, "no %s yet\n", s.coll.Name())
		return nil
	}
	for _, it := range items {
		fmt.Fprintln(s.out, it)
	}
	return nil
}

func (s *recordScreen[T]) askID(action string) (string, error) {
	return GetSimpleText(s.reader, fmt.Sprintf("Enter %s id to %s", s.label, action), s.out)
}

func (s *recordScreen[T]) show(ctx context.Context) error {
	id, err := s.askID("show")
	if err != nil {
		return err
	}
	rec, err := s.coll.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, rec)
	return nil
}

func (s *recordScreen[T]) add(ctx context.Context) error {
	var blank T
	rec, err := s.form(s.reader, s.out, blank)
	if err != nil {
		return err
	}
	created, err := s.coll.Create(ctx, rec)
	if err != nil {
		return err
	}
	notifySuccess(s.out, fmt.Sprintf("%s %s created", s.label, created.GetID()))
	return s.list(ctx, false)
}

func (s *recordScreen[T]) edit(ctx context.Context) error {
	id, err := s.askID("edit")
	if err != nil {
		return err
	}
	cur, err := s.coll.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	rec, err := s.form(s.reader, s.out, cur)
	if err != nil {
		return err
	}
	if _, err := s.coll.Update(ctx, id, rec); err != nil {
		return err
	}
	notifySuccess(s.out, fmt.Sprintf("%s %s updated", s.label, id))
	return s.list(ctx, false)
}

func (s *recordScreen[T]) remove(ctx context.Context) error {
	id, err := s.askID("delete")
	if err != nil {
		return err
	}
	ok, err := Confirm(s.reader, fmt.Sprintf("Delete %s %s?", s.label, id), s.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "cancelled")
		return nil
	}
	if err := s.coll.Delete(ctx, id); err != nil {
		return err
	}
	notifySuccess(s.out, fmt.Sprintf("%s %s deleted", s.label, id))
	return s.list(ctx, false)
}

func (s *recordScreen[T]) invalidate() { s.coll.InvalidateAll() }

type resetter interface {
	Reset(ctx context.Context) error
}

func (s *recordScreen[T]) reset(ctx context.Context) error {
	r, ok := s.coll.(resetter)
	if !ok {
		return fmt.Errorf("%s: %w", s.coll.Name(), ErrNotLocal)
	}
	return r.Reset(ctx)
}

func (s *recordScreen[T]) count(ctx context.Context) (int, error) {
	items, err := s.coll.List(ctx, true)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (s *recordScreen[T]) ping(ctx context.Context) error { return s.coll.Ping(ctx) }
