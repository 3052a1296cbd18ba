// Package memory provides an in-memory store.Store for tests and demos.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/store"
)

var _ store.Store = (*Memory)(nil)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	users     map[string]store.User
	entries   map[string][]store.TimeEntry // by user, sorted by date
	vacations map[string][]store.VacationEntry
	balances  map[balanceKey]store.VacationBalance
}

type balanceKey struct {
	UserID string
	Year   int
}

func New() *Memory {
	return &Memory{
		users:     make(map[string]store.User),
		entries:   make(map[string][]store.TimeEntry),
		vacations: make(map[string][]store.VacationEntry),
		balances:  make(map[balanceKey]store.VacationBalance),
	}
}

func (m *Memory) Close() error { return nil }

// =============================================================================
// USERS
// =============================================================================

func (m *Memory) CreateUser(_ context.Context, u store.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if _, exists := m.users[u.ID]; exists {
		return fmt.Errorf("user %s: %w", u.ID, generic.ErrDuplicate)
	}
	if m.emailTakenLocked(u.Email, "") {
		return fmt.Errorf("email %q: %w", u.Email, generic.ErrDuplicate)
	}

	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	m.users[u.ID] = u
	return nil
}

func (m *Memory) GetUser(_ context.Context, id string) (store.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return store.User{}, fmt.Errorf("user %s: %w", id, generic.ErrNotFound)
	}
	return u, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (store.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return store.User{}, fmt.Errorf("user %s: %w", email, generic.ErrNotFound)
}

func (m *Memory) ListUsers(_ context.Context) ([]store.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]store.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].Email < users[j].Email
	})
	return users, nil
}

func (m *Memory) UpdateUser(_ context.Context, u store.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.users[u.ID]
	if !ok {
		return fmt.Errorf("user %s: %w", u.ID, generic.ErrNotFound)
	}
	if m.emailTakenLocked(u.Email, u.ID) {
		return fmt.Errorf("email %q: %w", u.Email, generic.ErrDuplicate)
	}
	u.CreatedAt = old.CreatedAt
	u.UpdatedAt = time.Now().UTC()
	m.users[u.ID] = u
	return nil
}

func (m *Memory) CountActiveAdmins(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, u := range m.users {
		if u.IsActive && u.IsAdmin() {
			n++
		}
	}
	return n, nil
}

func (m *Memory) emailTakenLocked(email, exceptID string) bool {
	for id, u := range m.users {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// =============================================================================
// TIME ENTRIES
// =============================================================================

func (m *Memory) SaveTimeEntry(_ context.Context, e store.TimeEntry) (store.TimeEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[e.UserID]; !ok {
		return e, fmt.Errorf("user %s: %w", e.UserID, generic.ErrNotFound)
	}

	now := time.Now().UTC()
	entries := m.entries[e.UserID]

	// Binary search for the day: replace in place or insert keeping order
	i := sort.Search(len(entries), func(i int) bool {
		return !entries[i].Date.Before(e.Date)
	})
	if i < len(entries) && entries[i].Date == e.Date {
		e.ID = entries[i].ID
		e.CreatedAt = entries[i].CreatedAt
		e.UpdatedAt = now
		entries[i] = e
		return e, nil
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt, e.UpdatedAt = now, now
	entries = append(entries, store.TimeEntry{})
	copy(entries[i+1:], entries[i:])
	entries[i] = e
	m.entries[e.UserID] = entries
	return e, nil
}

func (m *Memory) DeleteTimeEntry(_ context.Context, userID string, date generic.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.entries[userID]
	for i, e := range entries {
		if e.Date == date {
			m.entries[userID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("time entry %s/%s: %w", userID, date, generic.ErrNotFound)
}

func (m *Memory) ListTimeEntries(_ context.Context, userID string, p generic.Period) ([]store.TimeEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []store.TimeEntry
	for _, e := range m.entries[userID] {
		if p.Contains(e.Date) {
			result = append(result, e)
		}
	}
	return result, nil
}

// =============================================================================
// VACATIONS
// =============================================================================

func (m *Memory) CreateVacation(_ context.Context, v store.VacationEntry) error {
	if err := v.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[v.UserID]; !ok {
		return fmt.Errorf("user %s: %w", v.UserID, generic.ErrNotFound)
	}
	for _, existing := range m.vacations[v.UserID] {
		if existing.Overlaps(v.Entry) {
			return &generic.OverlapError{ExistingID: existing.ID, Existing: existing.Period()}
		}
	}

	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	vacations := append(m.vacations[v.UserID], v)
	sort.SliceStable(vacations, func(i, j int) bool {
		return vacations[i].StartDate.Before(vacations[j].StartDate)
	})
	m.vacations[v.UserID] = vacations
	return nil
}

func (m *Memory) DeleteVacation(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	vacations := m.vacations[userID]
	for i, v := range vacations {
		if v.ID == id {
			m.vacations[userID] = append(vacations[:i], vacations[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("vacation %s: %w", id, generic.ErrNotFound)
}

func (m *Memory) ListVacations(_ context.Context, userID string, p generic.Period) ([]store.VacationEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return overlapping(m.vacations[userID], p), nil
}

func (m *Memory) ListAllVacations(_ context.Context, p generic.Period) ([]store.VacationEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []store.VacationEntry
	for _, vacations := range m.vacations {
		result = append(result, overlapping(vacations, p)...)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartDate != result[j].StartDate {
			return result[i].StartDate.Before(result[j].StartDate)
		}
		return result[i].UserID < result[j].UserID
	})
	return result, nil
}

func overlapping(vacations []store.VacationEntry, p generic.Period) []store.VacationEntry {
	var result []store.VacationEntry
	for _, v := range vacations {
		if v.Period().Overlaps(p) {
			result = append(result, v)
		}
	}
	return result
}

func (m *Memory) GetVacationBalance(_ context.Context, userID string, year int) (store.VacationBalance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.balances[balanceKey{UserID: userID, Year: year}]
	if !ok {
		return store.VacationBalance{UserID: userID, Year: year},
			fmt.Errorf("vacation balance %s/%d: %w", userID, year, generic.ErrNotFound)
	}
	return b, nil
}

func (m *Memory) SaveVacationBalance(_ context.Context, b store.VacationBalance) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[b.UserID]; !ok {
		return fmt.Errorf("user %s: %w", b.UserID, generic.ErrNotFound)
	}
	m.balances[balanceKey{UserID: b.UserID, Year: b.Year}] = b
	return nil
}
