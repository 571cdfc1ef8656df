package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"tshort_dashboard/internal/config"
	"tshort_dashboard/internal/domain"
	"tshort_dashboard/internal/store"

	"github.com/google/uuid"
)

// Link sources. Website links additionally feed the global allLinks index;
// telegram links live only in the owner's collection.
const (
	SourceWebsite  = "website"
	SourceTelegram = "telegram"
)

var codePattern = regexp.MustCompile(`/s/([A-Za-z0-9_-]+)`)

// ExtractCode pulls the short code out of a submitted URL: the first
// /s/<id> segment, id drawn from [A-Za-z0-9_-].
func ExtractCode(rawURL string) (string, bool) {
	m := codePattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SaveResult is what SaveLink hands back. AlreadyExists marks a dedup hit:
// the owner had the code already and nothing in their collection changed.
type SaveResult struct {
	Item          domain.LinkItem `json:"item"`
	AlreadyExists bool            `json:"alreadyExists"`
}

// LinkService maintains per-owner link collections and the global dedup
// index.
type LinkService struct {
	store *store.Client
	cfg   *config.Config
}

func NewLinkService(st *store.Client, cfg *config.Config) *LinkService {
	return &LinkService{store: st, cfg: cfg}
}

// ShortURL builds the canonical short URL for a code.
func (s *LinkService) ShortURL(code string) string {
	return "https://" + s.cfg.BaseShortDomain + "/s/" + code
}

// SaveLink registers rawURL under the owner's collection for source.
// Per-owner dedup is by code: a hit leaves the owner's list and counters
// alone and only touches the global index. Each step is a separate store
// round trip; a failure partway leaves the earlier writes committed.
func (s *LinkService) SaveLink(ctx context.Context, ownerKey, email, rawURL, source string) (*SaveResult, error) {
	if source != SourceWebsite && source != SourceTelegram {
		return nil, validationf("unknown link source %q", source)
	}

	code, ok := ExtractCode(rawURL)
	if !ok {
		return nil, validationf("no embedded code: URL must contain /s/<id>")
	}
	shortURL := s.ShortURL(code)

	base := "users/" + ownerKey + "/links/" + source

	var list domain.LinkList
	err := s.store.Get(ctx, base+"/list", &list)
	if err != nil && !errors.Is(err, store.ErrPathNotFound) {
		return nil, err
	}

	if existing, found := list.FindByCode(code); found {
		if source == SourceWebsite {
			if err := s.touchGlobalIndex(ctx, code, existing.OriginalURL, existing.ShortURL, ownerKey); err != nil {
				return nil, err
			}
		}
		return &SaveResult{Item: existing, AlreadyExists: true}, nil
	}

	now := time.Now()
	item := domain.LinkItem{
		ID:          uuid.NewString(),
		CreatedAt:   now.UnixMilli(),
		Date:        now.UTC().Format(time.DateOnly),
		OriginalURL: rawURL,
		ShortURL:    shortURL,
		Code:        code,
		Source:      source,
		Clicks:      0,
		Active:      true,
		OwnerKey:    ownerKey,
		Email:       email,
	}

	if err := s.store.Set(ctx, base+"/list/"+item.ID, item); err != nil {
		return nil, err
	}

	var col domain.LinkCollection
	err = s.store.Get(ctx, base, &col)
	if err != nil && !errors.Is(err, store.ErrPathNotFound) {
		return nil, err
	}
	if err := s.store.Update(ctx, base, map[string]any{
		"totalLinks":  col.TotalLinks + 1,
		"activeLinks": col.ActiveLinks + 1,
		"totalClicks": col.TotalClicks,
	}); err != nil {
		return nil, err
	}

	if source == SourceWebsite {
		if err := s.touchGlobalIndex(ctx, code, rawURL, shortURL, ownerKey); err != nil {
			return nil, err
		}
	}

	return &SaveResult{Item: item, AlreadyExists: false}, nil
}

// touchGlobalIndex bumps allLinks/<code>: totalUses counts every save
// attempt for the code across all owners, dedup hits included.
func (s *LinkService) touchGlobalIndex(ctx context.Context, code, originalURL, shortURL, ownerKey string) error {
	path := "allLinks/" + code
	now := time.Now().UnixMilli()

	var g domain.GlobalLink
	err := s.store.Get(ctx, path, &g)
	if errors.Is(err, store.ErrPathNotFound) {
		return s.store.Set(ctx, path, domain.GlobalLink{
			Code:           code,
			OriginalURL:    originalURL,
			ShortURL:       shortURL,
			FirstCreatedAt: now,
			CreatedAt:      now,
			LastUsedAt:     now,
			TotalUses:      1,
			Users:          map[string]bool{ownerKey: true},
		})
	}
	if err != nil {
		return err
	}

	return s.store.Update(ctx, path, map[string]any{
		"lastUsedAt":       now,
		"totalUses":        g.TotalUses + 1,
		"users/" + ownerKey: true,
	})
}

// GetCollection returns the owner's collection for source, zero-state if
// absent.
func (s *LinkService) GetCollection(ctx context.Context, ownerKey, source string) (*domain.LinkCollection, error) {
	if source != SourceWebsite && source != SourceTelegram {
		return nil, validationf("unknown link source %q", source)
	}
	var col domain.LinkCollection
	err := s.store.Get(ctx, "users/"+ownerKey+"/links/"+source, &col)
	if errors.Is(err, store.ErrPathNotFound) {
		c := domain.NewLinkCollection()
		return &c, nil
	}
	if err != nil {
		return nil, err
	}
	if col.List == nil {
		col.List = domain.LinkList{}
	}
	return &col, nil
}

// GetGlobalLink reads the allLinks index entry for a code, nil when the
// code was never saved.
func (s *LinkService) GetGlobalLink(ctx context.Context, code string) (*domain.GlobalLink, error) {
	var g domain.GlobalLink
	err := s.store.Get(ctx, "allLinks/"+code, &g)
	if errors.Is(err, store.ErrPathNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}
