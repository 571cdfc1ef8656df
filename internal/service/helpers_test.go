package service

import (
	"tshort_dashboard/internal/config"
	"tshort_dashboard/internal/store"
)

func testConfig() *config.Config {
	return &config.Config{
		BaseShortDomain:     "teraboxlinke.com",
		SignupBaseURL:       "https://tshortner.in",
		MinWithdrawal:       10,
		MaxReferralLinks:    5,
		MaxReferralSignups:  50,
		MaxReferralPercent:  30,
		DashboardWindowDays: 90,
		ReferralWindowDays:  10,
	}
}

func newTestStore() *store.Client {
	return store.NewClient(store.NewMemoryBackend())
}
