package domain

import (
	"strings"
	"time"
)

// OwnerKey derives the store path segment for an account from its email.
// The store rejects dots in key segments, so they are swapped for commas.
// Valid emails never contain commas, so the mapping is injective and
// reversible.
func OwnerKey(email string) string {
	return strings.ReplaceAll(email, ".", ",")
}

// OwnerKeyEmail reverses OwnerKey.
func OwnerKeyEmail(key string) string {
	return strings.ReplaceAll(key, ",", ".")
}

// Profile holds the identity section of an account.
type Profile struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	UID       string `json:"uid"`
	CreatedAt int64  `json:"createdAt"`
	LastLogin int64  `json:"lastLogin"`
}

// Dashboard holds the earning counters plus a 90-day metrics window.
type Dashboard struct {
	DailyEarning     float64     `json:"dailyEarning"`
	DailyCPM         float64     `json:"dailyCPM"`
	TotalEarning     float64     `json:"totalEarning"`
	TotalImpressions int64       `json:"totalImpressions"`
	OverallCPM       float64     `json:"overallCPM"`
	WithdrawnAmount  float64     `json:"withdrawnAmount"`
	Daily            DailyWindow `json:"daily"`
}

// NewDashboard returns the zero-state dashboard with a fresh trailing window.
func NewDashboard(windowDays int, now time.Time) *Dashboard {
	return &Dashboard{Daily: NewDailyWindow(windowDays, now)}
}

// Links groups the two per-source link collections of an account.
type Links struct {
	Telegram LinkCollection `json:"telegram"`
	Website  LinkCollection `json:"website"`
}

// NewLinks returns empty collections for both sources.
func NewLinks() *Links {
	return &Links{Telegram: NewLinkCollection(), Website: NewLinkCollection()}
}

// Partnership holds an account's referral links, keyed by link ID.
type Partnership struct {
	Links map[string]ReferralLink `json:"links"`
}

// Referral is the section written on a referred signup, recording who
// invited the account and through which link.
type Referral struct {
	ReferredBy         string      `json:"referredBy"`
	ReferredByEmail    string      `json:"referredByEmail"`
	ReferralCode       string      `json:"referralCode"`
	ReferralLinkID     string      `json:"referralLinkId"`
	ReferralPercentage float64     `json:"referralPercentage"`
	JoinedAt           int64       `json:"joinedAt"`
	Daily              DailyWindow `json:"daily"`
}

// Account is the full per-owner record tree. Sections are pointers so a
// missing subtree in the store stays distinguishable from a zeroed one.
type Account struct {
	Profile     *Profile     `json:"profile,omitempty"`
	Dashboard   *Dashboard   `json:"dashboard,omitempty"`
	Wallet      *Wallet      `json:"wallet,omitempty"`
	Links       *Links       `json:"links,omitempty"`
	Partnership *Partnership `json:"partnership,omitempty"`
	Referral    *Referral    `json:"referral,omitempty"`
}
