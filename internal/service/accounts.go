package service

import (
	"context"
	"errors"
	"time"

	"tshort_dashboard/internal/config"
	"tshort_dashboard/internal/domain"
	"tshort_dashboard/internal/logger"
	"tshort_dashboard/internal/store"
)

// Status reports whether EnsureAccount found or created the account.
type Status string

const (
	StatusNew      Status = "new"
	StatusExisting Status = "existing"
)

// AccountService provisions and repairs per-owner record trees.
type AccountService struct {
	store *store.Client
	cfg   *config.Config
}

func NewAccountService(st *store.Client, cfg *config.Config) *AccountService {
	return &AccountService{store: st, cfg: cfg}
}

// EnsureAccount makes sure the owner's tree exists. A missing tree is
// created whole; an existing one only gets lastLogin refreshed plus any
// individually missing section backfilled with its zero state. Existing
// non-empty sections are never touched.
func (s *AccountService) EnsureAccount(ctx context.Context, id Identity) (Status, error) {
	key := domain.OwnerKey(id.Email)

	var acct domain.Account
	err := s.store.Get(ctx, "users/"+key, &acct)
	if errors.Is(err, store.ErrPathNotFound) {
		if err := s.CreateAccount(ctx, id, id.DisplayName()); err != nil {
			return "", err
		}
		logger.Info("account created", "owner", key)
		return StatusNew, nil
	}
	if err != nil {
		return "", err
	}

	now := time.Now().UnixMilli()
	patch := map[string]any{}

	if acct.Profile != nil {
		patch["profile/lastLogin"] = now
	} else {
		patch["profile"] = domain.Profile{
			Email:     id.Email,
			Name:      id.DisplayName(),
			UID:       id.UID,
			CreatedAt: now,
			LastLogin: now,
		}
	}
	if acct.Dashboard == nil {
		patch["dashboard"] = domain.NewDashboard(s.cfg.DashboardWindowDays, time.Now())
	}
	if acct.Wallet == nil {
		patch["wallet"] = domain.NewWallet()
	}
	if acct.Links == nil {
		patch["links"] = domain.NewLinks()
	}

	if err := s.store.Update(ctx, "users/"+key, patch); err != nil {
		return "", err
	}
	return StatusExisting, nil
}

// CreateAccount writes the full account skeleton in one call. It overwrites
// any existing data at the owner path; callers must go through
// EnsureAccount unless they know the path is vacant.
func (s *AccountService) CreateAccount(ctx context.Context, id Identity, name string) error {
	return s.createAccount(ctx, id, name, nil, "")
}

// CreateAccountWithReferral writes the skeleton plus the referral section
// recording who invited this account. Used by the referred-signup flow.
func (s *AccountService) CreateAccountWithReferral(ctx context.Context, id Identity, name string, ref *domain.ReferrerInfo, code string) error {
	return s.createAccount(ctx, id, name, ref, code)
}

func (s *AccountService) createAccount(ctx context.Context, id Identity, name string, ref *domain.ReferrerInfo, code string) error {
	now := time.Now()
	nowMs := now.UnixMilli()

	acct := domain.Account{
		Profile: &domain.Profile{
			Email:     id.Email,
			Name:      name,
			UID:       id.UID,
			CreatedAt: nowMs,
			LastLogin: nowMs,
		},
		Dashboard: domain.NewDashboard(s.cfg.DashboardWindowDays, now),
		Wallet:    domain.NewWallet(),
		Links:     domain.NewLinks(),
	}

	if ref != nil {
		acct.Referral = &domain.Referral{
			ReferredBy:         ref.OwnerKey,
			ReferredByEmail:    ref.Email,
			ReferralCode:       code,
			ReferralLinkID:     ref.LinkID,
			ReferralPercentage: ref.Percentage,
			JoinedAt:           nowMs,
			Daily:              domain.NewDailyWindow(s.cfg.ReferralWindowDays, now),
		}
	}

	return s.store.Set(ctx, "users/"+domain.OwnerKey(id.Email), acct)
}

// GetAccount reads the full tree for an owner.
func (s *AccountService) GetAccount(ctx context.Context, ownerKey string) (*domain.Account, error) {
	var acct domain.Account
	if err := s.store.Get(ctx, "users/"+ownerKey, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// GetDashboard returns the dashboard projection, zero-state if absent.
func (s *AccountService) GetDashboard(ctx context.Context, ownerKey string) (*domain.Dashboard, error) {
	var d domain.Dashboard
	err := s.store.Get(ctx, "users/"+ownerKey+"/dashboard", &d)
	if errors.Is(err, store.ErrPathNotFound) {
		return domain.NewDashboard(s.cfg.DashboardWindowDays, time.Now()), nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
