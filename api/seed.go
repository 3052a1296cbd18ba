/*
seed.go - Initial admin account

PURPOSE:
  A fresh database has no users, and only admins can create users. On
  startup SeedAdmin creates one admin account unless an admin already
  exists, together with its vacation balance for the current year.

PASSWORD:
  A configured password is used as given. Without one a password is
  generated, returned to the caller and logged once at warn level so the
  operator can sign in and change it.

SEE ALSO:
  - cmd/server/main.go: Calls SeedAdmin before serving
  - config/config.go: SEED_* settings
*/
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lu-ally/AllyTimeTracking/generic"
	"github.com/lu-ally/AllyTimeTracking/holiday"
	"github.com/lu-ally/AllyTimeTracking/store"
)

// AdminSeed describes the account SeedAdmin creates.
type AdminSeed struct {
	Email    string
	Name     string
	Password string
	State    holiday.State
}

// SeedResult reports what SeedAdmin did. Password is only set when it was
// generated.
type SeedResult struct {
	Created  bool
	User     store.User
	Password string
}

// SeedAdmin creates the initial admin if no admin account exists.
func SeedAdmin(ctx context.Context, st store.Store, seed AdminSeed, today generic.Date, log *zap.Logger) (SeedResult, error) {
	users, err := st.ListUsers(ctx)
	if err != nil {
		return SeedResult{}, fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		if u.IsAdmin() {
			log.Debug("admin exists, skipping seed", zap.String("email", u.Email))
			return SeedResult{User: u}, nil
		}
	}

	u := store.User{
		ID:                  uuid.NewString(),
		Email:               normalizeEmail(seed.Email),
		Name:                seed.Name,
		Role:                store.RoleAdmin,
		WeeklyHours:         decimal.NewFromInt(defaultWeeklyHours),
		VacationDaysPerYear: decimal.NewFromInt(defaultVacationDays),
		State:               seed.State.Normalize(),
		IsActive:            true,
		CreatedAt:           time.Now().UTC(),
	}
	if err := validateEmail(u.Email); err != nil {
		return SeedResult{}, fmt.Errorf("seed admin: %w", err)
	}
	if err := validateName(u.Name); err != nil {
		return SeedResult{}, fmt.Errorf("seed admin: %w", err)
	}

	password, generated := seed.Password, false
	if password == "" {
		if password, err = GeneratePassword(GeneratedPasswordLength); err != nil {
			return SeedResult{}, err
		}
		generated = true
	} else if err := validatePassword(password); err != nil {
		return SeedResult{}, fmt.Errorf("seed admin: %w", err)
	}
	if u.PasswordHash, err = HashPassword(password); err != nil {
		return SeedResult{}, err
	}

	if err := st.CreateUser(ctx, u); err != nil {
		return SeedResult{}, fmt.Errorf("create admin: %w", err)
	}
	if err := st.SaveVacationBalance(ctx, store.DefaultVacationBalance(u, today.Year)); err != nil {
		return SeedResult{}, fmt.Errorf("create admin vacation balance: %w", err)
	}

	result := SeedResult{Created: true, User: u}
	if generated {
		result.Password = password
		log.Warn("admin account created with generated password, change it after first login",
			zap.String("email", u.Email),
			zap.String("password", password))
	} else {
		log.Info("admin account created", zap.String("email", u.Email))
	}
	return result, nil
}
