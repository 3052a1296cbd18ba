/*
provisioner.go - Yearly vacation balance provisioning

PURPOSE:
  Makes sure every active user has a vacation balance row for the current
  year. Users created through the API get one immediately; this covers the
  turn of the year and users imported directly into the database.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Creates missing rows only, never touches an existing balance
  - New rows use the user's own yearly days (store.DefaultVacationBalance)

CONFIGURATION:
  - Interval: How often to check (default: 1 hour, PROVISION_INTERVAL)
  - Enabled: Whether the provisioner runs at all (PROVISION_ENABLED)

USAGE:
  p := NewBalanceProvisioner(store, logger, reports.Today)
  p.Start()
  // ... later
  p.Stop()

SEE ALSO:
  - handlers.go: CreateUser creates the row for new users
  - report/vacation.go: Falls back to the default entitlement when no row exists
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/store"
)

// BalanceProvisioner creates missing current-year vacation balances.
type BalanceProvisioner struct {
	Store    store.Store
	Log      *zap.Logger
	Interval time.Duration
	Enabled  bool
	Today    func() generic.Date

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewBalanceProvisioner creates a provisioner with an hourly interval.
// today decides which year is provisioned.
func NewBalanceProvisioner(st store.Store, log *zap.Logger, today func() generic.Date) *BalanceProvisioner {
	return &BalanceProvisioner{
		Store:    st,
		Log:      log,
		Interval: time.Hour,
		Enabled:  true,
		Today:    today,
	}
}

// Start begins the provisioner. The first pass runs immediately.
func (p *BalanceProvisioner) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.Enabled {
		p.Log.Info("balance provisioner disabled")
		return
	}
	if p.ticker != nil {
		return
	}

	p.ticker = time.NewTicker(p.Interval)
	p.stop = make(chan struct{})
	p.wg.Add(1)

	go p.run()

	p.Log.Info("balance provisioner started", zap.Duration("interval", p.Interval))
}

// Stop stops the provisioner and waits for a running pass to finish.
func (p *BalanceProvisioner) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ticker != nil {
		p.ticker.Stop()
		close(p.stop)
		p.wg.Wait()
		p.ticker = nil
		p.Log.Info("balance provisioner stopped")
	}
}

func (p *BalanceProvisioner) run() {
	defer p.wg.Done()

	p.tick()

	for {
		select {
		case <-p.ticker.C:
			p.tick()
		case <-p.stop:
			return
		}
	}
}

func (p *BalanceProvisioner) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), p.Interval)
	defer cancel()

	year := p.Today().Year
	created, err := p.Provision(ctx, year)
	if err != nil {
		p.Log.Error("balance provisioning failed", zap.Int("year", year), zap.Error(err))
		return
	}
	if created > 0 {
		p.Log.Info("vacation balances created", zap.Int("year", year), zap.Int("count", created))
	}
}

// Provision creates the balance for year of every active user who has
// none and returns how many rows it created.
func (p *BalanceProvisioner) Provision(ctx context.Context, year int) (int, error) {
	users, err := p.Store.ListUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	created := 0
	for _, u := range users {
		if !u.IsActive {
			continue
		}
		_, err := p.Store.GetVacationBalance(ctx, u.ID, year)
		if err == nil {
			continue
		}
		if !errors.Is(err, generic.ErrNotFound) {
			return created, fmt.Errorf("vacation balance %s/%d: %w", u.ID, year, err)
		}
		if err := p.Store.SaveVacationBalance(ctx, store.DefaultVacationBalance(u, year)); err != nil {
			return created, fmt.Errorf("create vacation balance %s/%d: %w", u.ID, year, err)
		}
		created++
	}
	return created, nil
}
