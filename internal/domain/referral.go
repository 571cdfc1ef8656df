package domain

// ReferralUser is one signup recorded under a referral link.
type ReferralUser struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	JoinedAt int64  `json:"joinedAt"`
}

// ReferralLink is a capped, percentage-bearing invitation link.
// Signups always equals len(Users) and never exceeds MaxSignups.
type ReferralLink struct {
	ID           string                  `json:"id"`
	ReferralCode string                  `json:"referralCode"`
	Percentage   float64                 `json:"percentage"`
	Signups      int64                   `json:"signups"`
	MaxSignups   int64                   `json:"maxSignups"`
	CreatedAt    int64                   `json:"createdAt"`
	Daily        DailyWindow             `json:"daily"`
	Users        map[string]ReferralUser `json:"users,omitempty"`
}

// ReferralCodeEntry is the referralCodes/<code> secondary index row mapping
// a code to the owner and link that issued it.
type ReferralCodeEntry struct {
	OwnerKey  string `json:"ownerKey"`
	LinkID    string `json:"linkId"`
	CreatedAt int64  `json:"createdAt"`
}

// ReferrerInfo is the resolved owner of a referral code, handed from lookup
// to signup registration.
type ReferrerInfo struct {
	OwnerKey   string  `json:"ownerKey"`
	Email      string  `json:"email"`
	Percentage float64 `json:"percentage"`
	LinkID     string  `json:"linkId"`
}
