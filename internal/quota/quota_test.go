package quota

import (
	"errors"
	"strings"
	"testing"

	"simulado/api/internal/models"
)

func TestLimitFor(t *testing.T) {
	t.Parallel()

	policy := DefaultPolicy()

	tests := []struct {
		name string
		role models.UserRole
		want int
	}{
		{"free", models.UserRoleFree, 5},
		{"premium", models.UserRolePremium, 10},
		{"unknown role falls back to free", models.UserRole("enterprise"), 5},
		{"empty role falls back to free", models.UserRole(""), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.LimitFor(tt.role); got != tt.want {
				t.Fatalf("LimitFor(%q) = %d, want %d", tt.role, got, tt.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	policy := DefaultPolicy()

	tests := []struct {
		name      string
		requested int
		role      models.UserRole
		wantLimit int
		wantErr   bool
	}{
		{"free at limit", 5, models.UserRoleFree, 0, false},
		{"free over limit", 6, models.UserRoleFree, 5, true},
		{"premium at limit", 10, models.UserRolePremium, 0, false},
		{"premium over limit", 11, models.UserRolePremium, 10, true},
		{"unknown role over free limit", 6, models.UserRole("enterprise"), 5, true},
		{"single question", 1, models.UserRoleFree, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Check(tt.requested, tt.role)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Check(%d, %q) unexpected error: %v", tt.requested, tt.role, err)
				}
				return
			}

			var limitErr *LimitError
			if !errors.As(err, &limitErr) {
				t.Fatalf("Check(%d, %q) = %v, want *LimitError", tt.requested, tt.role, err)
			}
			if limitErr.Limit != tt.wantLimit {
				t.Fatalf("limit = %d, want %d", limitErr.Limit, tt.wantLimit)
			}
		})
	}
}

func TestLimitErrorMessage(t *testing.T) {
	t.Parallel()

	err := &LimitError{Limit: 5, Role: models.UserRoleFree}
	msg := err.Error()

	if !strings.Contains(msg, "5") {
		t.Fatalf("message %q does not mention the limit", msg)
	}
	if !strings.Contains(msg, "FREE") {
		t.Fatalf("message %q does not mention the role", msg)
	}
}

func TestNewPolicyDefaultsOnInvalidLimits(t *testing.T) {
	t.Parallel()

	policy := NewPolicy(0, -1)

	if got := policy.LimitFor(models.UserRoleFree); got != DefaultFreeLimit {
		t.Fatalf("free limit = %d, want %d", got, DefaultFreeLimit)
	}
	if got := policy.LimitFor(models.UserRolePremium); got != DefaultPremiumLimit {
		t.Fatalf("premium limit = %d, want %d", got, DefaultPremiumLimit)
	}
}
