package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/crudkeeper/internal/client/cache"
	"github.com/dmitrijs2005/crudkeeper/internal/client/client"
	"github.com/dmitrijs2005/crudkeeper/internal/client/config"
	"github.com/dmitrijs2005/crudkeeper/internal/client/models"
	"github.com/dmitrijs2005/crudkeeper/internal/client/repositories/fallback"
	"github.com/dmitrijs2005/crudkeeper/internal/client/services"
	"github.com/dmitrijs2005/crudkeeper/internal/logging"
	"golang.org/x/sync/errgroup"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
	// ModeLocal: no endpoint configured, every collection is local.
	ModeLocal Mode = "local"
)

var (
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrNotLocal is returned when resetting data that lives on the remote store.
	ErrNotLocal = errors.New("not kept in the local store")
)

const defaultOnlineCheckInterval = 5 * time.Second

type App struct {
	config *config.Config
	log    logging.Logger

	screens map[string]screen
	order   []string
	active  string

	closers []io.Closer
	// store is the fallback repository, nil when every collection is remote.
	store fallback.Repository

	mu   sync.Mutex
	mode Mode

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires one screen per collection: a cached remote service when the
// collection is served by the endpoint, a fallback-store service otherwise.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	a := &App{
		config:  c,
		log:     log,
		screens: map[string]screen{},
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}

	var (
		remote client.Client
		repo   fallback.Repository
	)

	for _, name := range []string{models.CollectionUnicorns, models.CollectionProducts} {
		if c.IsLocal(name) && repo == nil {
			r, err := fallback.Open(ctx, c.FallbackDriver, c.FallbackPath)
			if err != nil {
				a.Close()
				return nil, fmt.Errorf("open fallback store: %w", err)
			}
			repo = r
			a.store = r
			a.closers = append(a.closers, r)
		}
		if !c.IsLocal(name) && remote == nil {
			hc, err := client.NewHTTPClient(c.BaseURL, c.EndpointID, client.WithTimeout(c.RequestTimeout))
			if err != nil {
				a.Close()
				return nil, err
			}
			remote = hc
			a.closers = append(a.closers, hc)
		}
	}

	newCache := func() *cache.Cache { return cache.New(cache.WithMaxAge(c.CacheMaxAge)) }

	var unicorns services.Collection[models.Unicorn]
	if c.IsLocal(models.CollectionUnicorns) {
		unicorns = services.NewLocalService[models.Unicorn](repo, models.CollectionUnicorns, log)
	} else {
		unicorns = services.NewCollectionService[models.Unicorn](remote, models.CollectionUnicorns, newCache(), log)
	}

	var products services.Collection[models.Product]
	if c.IsLocal(models.CollectionProducts) {
		products = services.NewLocalService[models.Product](repo, models.CollectionProducts, log).
			WithSeed(models.DefaultProducts()...)
	} else {
		products = services.NewCollectionService[models.Product](remote, models.CollectionProducts, newCache(), log)
	}

	a.addScreen(newScreen(unicorns, unicornForm, "unicorn", a.reader, a.out))
	a.addScreen(newScreen(products, productForm, "product", a.reader, a.out))

	if c.EndpointID == "" {
		a.mode = ModeLocal
	}
	return a, nil
}

func (a *App) addScreen(s screen) {
	if a.screens == nil {
		a.screens = map[string]screen{}
	}
	a.screens[s.name()] = s
	a.order = append(a.order, s.name())
	if a.active == "" {
		a.active = s.name()
	}
}

// Close releases the remote client and the fallback store.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connection mode changed", "mode", string(mode))
	}
}

func (a *App) screen(name string) (screen, error) {
	if name == "" {
		name = a.active
	}
	s, ok := a.screens[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCollection, name)
	}
	return s, nil
}

// Run starts the online watcher and the REPL, and closes resources on exit.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to crudkeeper (type 'help' for commands)")

	if a.Mode() != ModeLocal {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out, interactive())
}

// StartOnlineStatusWatcher pings the first remote collection every interval
// and flips the mode between online and offline. A non-positive interval
// falls back to five seconds.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultOnlineCheckInterval
	}

	check := func() {
		pctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
		defer cancel()
		if err := a.pingRemote(pctx); err != nil {
			a.setMode(ModeOffline)
			return
		}
		a.setMode(ModeOnline)
	}

	check()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			check()
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) pingRemote(ctx context.Context) error {
	for _, name := range a.order {
		if a.config.IsLocal(name) {
			continue
		}
		return a.screens[name].ping(ctx)
	}
	return nil
}

func (a *App) getStatus() string {
	s := a.active
	if m := a.Mode(); m != "" {
		s += " " + string(m)
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Use(name string) error {
	if _, err := a.screen(name); err != nil || name == "" {
		return fmt.Errorf("%w %q", ErrUnknownCollection, name)
	}
	a.active = name
	return nil
}

func (a *App) List(ctx context.Context, name string, fresh bool) error {
	s, err := a.screen(name)
	if err != nil {
		return err
	}
	return s.list(ctx, fresh)
}

func (a *App) Show(ctx context.Context, name string) error {
	s, err := a.screen(name)
	if err != nil {
		return err
	}
	return s.show(ctx)
}

func (a *App) Add(ctx context.Context, name string) error {
	s, err := a.screen(name)
	if err != nil {
		return err
	}
	return s.add(ctx)
}

func (a *App) Edit(ctx context.Context, name string) error {
	s, err := a.screen(name)
	if err != nil {
		return err
	}
	return s.edit(ctx)
}

func (a *App) Delete(ctx context.Context, name string) error {
	s, err := a.screen(name)
	if err != nil {
		return err
	}
	return s.remove(ctx)
}

// Refresh drops every cached response of every collection.
func (a *App) Refresh(ctx context.Context) error {
	for _, name := range a.order {
		a.screens[name].invalidate()
	}
	notifySuccess(a.out, "cache cleared")
	return nil
}

// Reset wipes local data after a confirmation: the named collection goes
// back to its seed, and with no name the whole fallback store is cleared.
func (a *App) Reset(ctx context.Context, name string) error {
	if name != "" {
		s, err := a.screen(name)
		if err != nil {
			return err
		}
		if !a.config.IsLocal(name) {
			return fmt.Errorf("%s: %w", name, ErrNotLocal)
		}
		ok, err := Confirm(a.reader, fmt.Sprintf("Reset local %s?", name), a.out)
		if err != nil || !ok {
			return err
		}
		if err := s.reset(ctx); err != nil {
			return err
		}
		notifySuccess(a.out, name+" reset")
		return nil
	}

	if a.store == nil {
		return fmt.Errorf("fallback store: %w", ErrNotLocal)
	}
	keys, err := a.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list local store: %w", err)
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Wipe %d local collection(s)?", len(keys)), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear local store: %w", err)
	}
	notifySuccess(a.out, fmt.Sprintf("cleared %d local collection(s)", len(keys)))
	return nil
}

// Stats counts every collection concurrently.
func (a *App) Stats(ctx context.Context) error {
	counts := make([]int, len(a.order))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range a.order {
		i := i
		s := a.screens[name]
		g.Go(func() error {
			n, err := s.count(gctx)
			if err != nil {
				return err
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, name := range a.order {
		fmt.Fprintf(a.out, "%-10s %d\n", name, counts[i])
	}
	return nil
}
