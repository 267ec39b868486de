package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/coffrefort/internal/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestEvaluate_Admin(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expired := now.Add(-time.Hour)
	oldStart := now.Add(-2 * time.Hour)

	tests := []struct {
		name       string
		expiresAt  *time.Time
		trialStart *time.Time
	}{
		{name: "no expiration, no trial marker"},
		{name: "stale expiration ignored", expiresAt: &expired},
		{name: "exhausted trial marker ignored", trialStart: &oldStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(models.RoleAdmin, tt.expiresAt, tt.trialStart, now)
			assert.Equal(t, Admin, got.Kind)
			assert.True(t, got.Allows())
		})
	}
}

func TestEvaluate_Premium(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt *time.Time
		wantKind  Kind
	}{
		{
			name:      "active premium",
			expiresAt: timePtr(now.Add(10 * 24 * time.Hour)),
			wantKind:  PremiumActive,
		},
		{
			name:      "expiration one second ahead is still active",
			expiresAt: timePtr(now.Add(time.Second)),
			wantKind:  PremiumActive,
		},
		{
			name:      "expiration exactly now is lapsed",
			expiresAt: timePtr(now),
			wantKind:  FreeTrial,
		},
		{
			name:      "expiration in the past is lapsed",
			expiresAt: timePtr(now.Add(-time.Minute)),
			wantKind:  FreeTrial,
		},
		{
			name:     "premium without expiration falls back to trial",
			wantKind: FreeTrial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(models.RolePremium, tt.expiresAt, nil, now)
			assert.Equal(t, tt.wantKind, got.Kind)
		})
	}
}

func TestEvaluate_FreeTrialCountdown(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		elapsed     time.Duration
		wantMinutes int
		wantExpired bool
	}{
		{name: "fresh session", elapsed: 0, wantMinutes: 30, wantExpired: false},
		{name: "one second in", elapsed: time.Second, wantMinutes: 29, wantExpired: false},
		{name: "halfway", elapsed: 15 * time.Minute, wantMinutes: 15, wantExpired: false},
		{name: "29:59 floors to zero", elapsed: 29*time.Minute + 59*time.Second, wantMinutes: 0, wantExpired: false},
		{name: "exactly 30:00 not yet expired", elapsed: 30 * time.Minute, wantMinutes: 0, wantExpired: false},
		{name: "30:00.001 expired", elapsed: 30*time.Minute + time.Millisecond, wantMinutes: 0, wantExpired: true},
		{name: "30:01 expired", elapsed: 30*time.Minute + time.Second, wantMinutes: 0, wantExpired: true},
		{name: "long dead session", elapsed: 5 * time.Hour, wantMinutes: 0, wantExpired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := now.Add(-tt.elapsed)
			got := Evaluate(models.RoleUser, nil, &start, now)
			assert.Equal(t, FreeTrial, got.Kind)
			assert.Equal(t, tt.wantMinutes, got.MinutesRemaining)
			assert.Equal(t, tt.wantExpired, got.Expired)
			assert.Equal(t, !tt.wantExpired, got.Allows())
		})
	}
}

func TestEvaluate_NilTrialStartTreatedAsNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	got := Evaluate(models.RoleUser, nil, nil, now)
	assert.Equal(t, FreeTrial, got.Kind)
	assert.Equal(t, 30, got.MinutesRemaining)
	assert.False(t, got.Expired)
}

// Два браузера одного пользователя ведут независимый отсчёт: второй вход
// не наследует израсходованное время первой сессии.
func TestEvaluate_IndependentSessions(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	firstStart := now.Add(-45 * time.Minute)
	secondStart := now.Add(-5 * time.Minute)

	first := Evaluate(models.RoleUser, nil, &firstStart, now)
	second := Evaluate(models.RoleUser, nil, &secondStart, now)

	assert.True(t, first.Expired)
	assert.False(t, second.Expired)
	assert.Equal(t, 25, second.MinutesRemaining)
}

// Просроченный премиум оценивается как свежее бесплатное окно, якорь —
// метка сессии, а не дата истечения.
func TestEvaluate_LapsedPremiumGetsTrial(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expired := now.Add(-24 * time.Hour)
	start := now.Add(-10 * time.Minute)

	got := Evaluate(models.RolePremium, &expired, &start, now)
	assert.Equal(t, FreeTrial, got.Kind)
	assert.Equal(t, 20, got.MinutesRemaining)
	assert.False(t, got.Expired)
}

func TestLandingPath(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		access Access
		want   string
	}{
		{name: "admin", role: models.RoleAdmin, access: Access{Kind: Admin}, want: "/admin/users"},
		{name: "active premium", role: models.RolePremium, access: Access{Kind: PremiumActive}, want: "/dashboard"},
		{name: "lapsed premium", role: models.RolePremium, access: Access{Kind: FreeTrial, MinutesRemaining: 30}, want: "/premium"},
		{name: "fresh user", role: models.RoleUser, access: Access{Kind: FreeTrial, MinutesRemaining: 30}, want: "/dashboard"},
		{name: "user with expired window", role: models.RoleUser, access: Access{Kind: FreeTrial, Expired: true}, want: "/premium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LandingPath(tt.role, tt.access))
		})
	}
}
