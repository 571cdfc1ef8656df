package service

import (
	"context"
	"testing"

	"tshort_dashboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReferralCode(t *testing.T) {
	// Known values from the historical implementation; they pin down the
	// 32-bit shift / unbounded subtract mix exactly.
	cases := []struct {
		email string
		index int
		code  string
	}{
		{"vishan@gmail.com", 0, "4VVFW6"},
		{"vishan@gmail.com", 1, "4VVFW5"},
		{"vishan@gmail.com", 4, "4VVFW2"},
		{"a@test.com", 0, "EEW70S"},
		{"someone.long.email@example.co.in", 3, "2OJ3KWA"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, GenerateReferralCode(tc.email, tc.index),
			"GenerateReferralCode(%q, %d)", tc.email, tc.index)
	}

	// Deterministic across calls.
	assert.Equal(t,
		GenerateReferralCode("x@y.com", 2),
		GenerateReferralCode("x@y.com", 2))
	assert.LessOrEqual(t, len(GenerateReferralCode("x@y.com", 2)), 8)
}

func TestCreateReferralLink(t *testing.T) {
	st := newTestStore()
	svc := NewReferralService(st, testConfig())
	ctx := context.Background()

	owner := domain.OwnerKey("a@test.com")
	link, err := svc.CreateReferralLink(ctx, owner, "a@test.com", 20)
	require.NoError(t, err)

	assert.Equal(t, "EEW70S", link.ReferralCode)
	assert.Equal(t, 20.0, link.Percentage)
	assert.Zero(t, link.Signups)
	assert.Equal(t, int64(50), link.MaxSignups)
	assert.Len(t, link.Daily, 10)

	// The secondary index row points back at the link.
	var entry domain.ReferralCodeEntry
	require.NoError(t, st.Get(ctx, "referralCodes/"+link.ReferralCode, &entry))
	assert.Equal(t, owner, entry.OwnerKey)
	assert.Equal(t, link.ID, entry.LinkID)
}

func TestCreateReferralLinkPercentageBounds(t *testing.T) {
	st := newTestStore()
	svc := NewReferralService(st, testConfig())
	ctx := context.Background()

	var verr *ValidationError
	_, err := svc.CreateReferralLink(ctx, "a@test,com", "a@test.com", -1)
	require.ErrorAs(t, err, &verr)

	_, err = svc.CreateReferralLink(ctx, "a@test,com", "a@test.com", 31)
	require.ErrorAs(t, err, &verr)

	// Both endpoints are allowed.
	_, err = svc.CreateReferralLink(ctx, "a@test,com", "a@test.com", 0)
	require.NoError(t, err)
	_, err = svc.CreateReferralLink(ctx, "a@test,com", "a@test.com", 30)
	require.NoError(t, err)
}

func TestCreateReferralLinkCap(t *testing.T) {
	st := newTestStore()
	svc := NewReferralService(st, testConfig())
	ctx := context.Background()

	owner := domain.OwnerKey("a@test.com")
	for i := 0; i < 5; i++ {
		_, err := svc.CreateReferralLink(ctx, owner, "a@test.com", 10)
		require.NoError(t, err, "link %d", i)
	}

	_, err := svc.CreateReferralLink(ctx, owner, "a@test.com", 10)
	var cerr *CapacityError
	require.ErrorAs(t, err, &cerr)

	links, err := svc.ListReferralLinks(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, links, 5)
}

func TestFindReferrerByCode(t *testing.T) {
	st := newTestStore()
	cfg := testConfig()
	accounts := NewAccountService(st, cfg)
	svc := NewReferralService(st, cfg)
	ctx := context.Background()

	_, err := accounts.EnsureAccount(ctx, Identity{UID: "u1", Email: "ref@test.com", Name: "Ref"})
	require.NoError(t, err)

	owner := domain.OwnerKey("ref@test.com")
	link, err := svc.CreateReferralLink(ctx, owner, "ref@test.com", 25)
	require.NoError(t, err)

	info, err := svc.FindReferrerByCode(ctx, link.ReferralCode)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, owner, info.OwnerKey)
	assert.Equal(t, "ref@test.com", info.Email)
	assert.Equal(t, 25.0, info.Percentage)
	assert.Equal(t, link.ID, info.LinkID)
}

func TestFindReferrerUnknownCode(t *testing.T) {
	st := newTestStore()
	svc := NewReferralService(st, testConfig())

	info, err := svc.FindReferrerByCode(context.Background(), "NOPE1234")
	require.NoError(t, err)
	assert.Nil(t, info)

	info, err = svc.FindReferrerByCode(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestFindReferrerFullLink(t *testing.T) {
	st := newTestStore()
	svc := NewReferralService(st, testConfig())
	ctx := context.Background()

	owner := domain.OwnerKey("ref@test.com")
	link, err := svc.CreateReferralLink(ctx, owner, "ref@test.com", 25)
	require.NoError(t, err)

	require.NoError(t, st.Update(ctx, "users/"+owner+"/partnership/links/"+link.ID, map[string]any{
		"signups": link.MaxSignups,
	}))

	_, err = svc.FindReferrerByCode(ctx, link.ReferralCode)
	var cerr *CapacityError
	require.ErrorAs(t, err, &cerr)
}

func TestFindReferrerScanFallbackBackfillsIndex(t *testing.T) {
	st := newTestStore()
	svc := NewReferralService(st, testConfig())
	ctx := context.Background()

	owner := domain.OwnerKey("ref@test.com")
	link, err := svc.CreateReferralLink(ctx, owner, "ref@test.com", 15)
	require.NoError(t, err)

	// Simulate a code minted before the index existed.
	require.NoError(t, st.Delete(ctx, "referralCodes/"+link.ReferralCode))

	info, err := svc.FindReferrerByCode(ctx, link.ReferralCode)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, owner, info.OwnerKey)

	ok, err := st.Exists(ctx, "referralCodes/"+link.ReferralCode)
	require.NoError(t, err)
	assert.True(t, ok, "scan hit must backfill the index")
}

func TestRegisterSignup(t *testing.T) {
	st := newTestStore()
	svc := NewReferralService(st, testConfig())
	ctx := context.Background()

	owner := domain.OwnerKey("ref@test.com")
	link, err := svc.CreateReferralLink(ctx, owner, "ref@test.com", 15)
	require.NoError(t, err)

	info, err := svc.FindReferrerByCode(ctx, link.ReferralCode)
	require.NoError(t, err)
	require.NotNil(t, info)

	require.NoError(t, svc.RegisterSignup(ctx, info, Identity{UID: "n1", Email: "new1@test.com", Name: "New One"}))
	require.NoError(t, svc.RegisterSignup(ctx, info, Identity{UID: "n2", Email: "new2@test.com"}))

	links, err := svc.ListReferralLinks(ctx, owner)
	require.NoError(t, err)
	got := links[link.ID]
	assert.Equal(t, int64(2), got.Signups)
	require.Len(t, got.Users, 2)

	u1 := got.Users[domain.OwnerKey("new1@test.com")]
	assert.Equal(t, "new1@test.com", u1.Email)
	assert.Equal(t, "New One", u1.Name)

	u2 := got.Users[domain.OwnerKey("new2@test.com")]
	assert.Equal(t, "new2", u2.Name, "missing name falls back to email local part")
}

func TestSignupURL(t *testing.T) {
	svc := NewReferralService(newTestStore(), testConfig())
	assert.Equal(t, "https://tshortner.in/signup-referral?ref=ABC123", svc.SignupURL("ABC123"))
}
