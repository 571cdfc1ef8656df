package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"tshort_dashboard/internal/config"
	"tshort_dashboard/internal/domain"
	"tshort_dashboard/internal/logger"
	"tshort_dashboard/internal/store"

	"github.com/google/uuid"
)

// GenerateReferralCode derives a code from (email, link index) with the
// platform's historical fold hash: ((h<<5)-h)+c accumulated over
// email+index, absolute value rendered base-36, first 8 chars, upper-cased.
// The shift operand wraps to 32 bits but the subtracted accumulator does
// not, matching how the codes were minted historically. Deterministic and
// collision-prone; collisions are not detected here.
func GenerateReferralCode(email string, index int) string {
	var acc int64
	for _, ch := range email + strconv.Itoa(index) {
		shifted := int32(acc) << 5
		acc = int64(shifted) - acc + int64(ch)
	}
	if acc < 0 {
		acc = -acc
	}
	code := strconv.FormatInt(acc, 36)
	if len(code) > 8 {
		code = code[:8]
	}
	return strings.ToUpper(code)
}

// ReferralService issues referral links, resolves codes and accounts for
// signups.
type ReferralService struct {
	store *store.Client
	cfg   *config.Config
}

func NewReferralService(st *store.Client, cfg *config.Config) *ReferralService {
	return &ReferralService{store: st, cfg: cfg}
}

// SignupURL builds the public invitation URL for a code.
func (s *ReferralService) SignupURL(code string) string {
	return s.cfg.SignupBaseURL + "/signup-referral?ref=" + code
}

// CreateReferralLink issues a new referral link for the owner. Percentage
// must be within [0, max]; each owner gets at most MaxReferralLinks links.
// The code is derived from (email, current link count) with no global
// uniqueness check, and the referralCodes index row is written in a second
// round trip after the link itself.
func (s *ReferralService) CreateReferralLink(ctx context.Context, ownerKey, email string, percentage float64) (*domain.ReferralLink, error) {
	if percentage < 0 || percentage > s.cfg.MaxReferralPercent {
		return nil, validationf("percentage must be between 0 and %g", s.cfg.MaxReferralPercent)
	}

	var p domain.Partnership
	err := s.store.Get(ctx, "users/"+ownerKey+"/partnership", &p)
	if err != nil && !errors.Is(err, store.ErrPathNotFound) {
		return nil, err
	}
	if len(p.Links) >= s.cfg.MaxReferralLinks {
		return nil, capacityf("maximum of %d referral links reached", s.cfg.MaxReferralLinks)
	}

	now := time.Now()
	link := domain.ReferralLink{
		ID:           uuid.NewString(),
		ReferralCode: GenerateReferralCode(email, len(p.Links)),
		Percentage:   percentage,
		Signups:      0,
		MaxSignups:   s.cfg.MaxReferralSignups,
		CreatedAt:    now.UnixMilli(),
		Daily:        domain.NewDailyWindow(s.cfg.ReferralWindowDays, now),
	}

	if err := s.store.Set(ctx, "users/"+ownerKey+"/partnership/links/"+link.ID, link); err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, "referralCodes/"+link.ReferralCode, domain.ReferralCodeEntry{
		OwnerKey:  ownerKey,
		LinkID:    link.ID,
		CreatedAt: now.UnixMilli(),
	}); err != nil {
		return nil, err
	}

	return &link, nil
}

// FindReferrerByCode resolves a referral code to its issuer. Returns nil
// when the code is unknown; returns CapacityError when the link has already
// hit its signup cap. The check is read-then-decide with no lock, so two
// concurrent signups can both pass it at cap-1.
func (s *ReferralService) FindReferrerByCode(ctx context.Context, code string) (*domain.ReferrerInfo, error) {
	if code == "" {
		return nil, nil
	}

	var entry domain.ReferralCodeEntry
	err := s.store.Get(ctx, "referralCodes/"+code, &entry)
	if err != nil && !errors.Is(err, store.ErrPathNotFound) {
		return nil, err
	}
	if err == nil {
		link, lerr := s.getLink(ctx, entry.OwnerKey, entry.LinkID)
		if lerr != nil {
			return nil, lerr
		}
		if link != nil {
			return s.buildReferrerInfo(ctx, entry.OwnerKey, entry.LinkID, link)
		}
		// Stale index row; fall back to the scan.
	}

	return s.scanForCode(ctx, code)
}

func (s *ReferralService) getLink(ctx context.Context, ownerKey, linkID string) (*domain.ReferralLink, error) {
	var link domain.ReferralLink
	err := s.store.Get(ctx, "users/"+ownerKey+"/partnership/links/"+linkID, &link)
	if errors.Is(err, store.ErrPathNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// scanForCode walks every account's partnership links. Kept for codes
// issued before the referralCodes index existed; found rows are indexed on
// the way out so the next lookup is O(1).
func (s *ReferralService) scanForCode(ctx context.Context, code string) (*domain.ReferrerInfo, error) {
	keys, err := s.store.Keys(ctx, "users")
	if err != nil {
		return nil, err
	}

	for _, ownerKey := range keys {
		var p domain.Partnership
		err := s.store.Get(ctx, "users/"+ownerKey+"/partnership", &p)
		if errors.Is(err, store.ErrPathNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		for linkID, link := range p.Links {
			if link.ReferralCode != code {
				continue
			}
			if err := s.store.Set(ctx, "referralCodes/"+code, domain.ReferralCodeEntry{
				OwnerKey:  ownerKey,
				LinkID:    linkID,
				CreatedAt: time.Now().UnixMilli(),
			}); err != nil {
				logger.Warn("failed to backfill referral code index", "code", code, "error", err)
			}
			return s.buildReferrerInfo(ctx, ownerKey, linkID, &link)
		}
	}

	return nil, nil
}

func (s *ReferralService) buildReferrerInfo(ctx context.Context, ownerKey, linkID string, link *domain.ReferralLink) (*domain.ReferrerInfo, error) {
	maxSignups := link.MaxSignups
	if maxSignups == 0 {
		maxSignups = s.cfg.MaxReferralSignups
	}
	if link.Signups >= maxSignups {
		return nil, capacityf("referral link full: signup limit (%d) reached", maxSignups)
	}

	email := domain.OwnerKeyEmail(ownerKey)
	var profile domain.Profile
	if err := s.store.Get(ctx, "users/"+ownerKey+"/profile", &profile); err == nil && profile.Email != "" {
		email = profile.Email
	}

	return &domain.ReferrerInfo{
		OwnerKey:   ownerKey,
		Email:      email,
		Percentage: link.Percentage,
		LinkID:     linkID,
	}, nil
}

// RegisterSignup records a referred signup on the issuer's link: the new
// user entry and the signups counter go back in one patch. There is no
// optimistic-concurrency guard, so concurrent signups on the same link can
// lose an increment.
func (s *ReferralService) RegisterSignup(ctx context.Context, ref *domain.ReferrerInfo, id Identity) error {
	path := "users/" + ref.OwnerKey + "/partnership/links/" + ref.LinkID

	var link domain.ReferralLink
	err := s.store.Get(ctx, path, &link)
	if errors.Is(err, store.ErrPathNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	newKey := domain.OwnerKey(id.Email)
	return s.store.Update(ctx, path, map[string]any{
		"signups": link.Signups + 1,
		"users/" + newKey: domain.ReferralUser{
			Email:    id.Email,
			Name:     id.DisplayName(),
			JoinedAt: time.Now().UnixMilli(),
		},
	})
}

// ListReferralLinks returns the owner's referral links keyed by link ID.
func (s *ReferralService) ListReferralLinks(ctx context.Context, ownerKey string) (map[string]domain.ReferralLink, error) {
	var p domain.Partnership
	err := s.store.Get(ctx, "users/"+ownerKey+"/partnership", &p)
	if errors.Is(err, store.ErrPathNotFound) {
		return map[string]domain.ReferralLink{}, nil
	}
	if err != nil {
		return nil, err
	}
	if p.Links == nil {
		p.Links = map[string]domain.ReferralLink{}
	}
	return p.Links, nil
}
