// Package quota maps a user's role to the maximum question count a single
// generation request may ask for. The check is pure and runs strictly before
// the provider call, so an over-limit request never incurs generation cost.
package quota

import (
	"fmt"
	"strings"

	"simulado/api/internal/models"
)

const (
	DefaultFreeLimit    = 5
	DefaultPremiumLimit = 10
)

// LimitError reports a request that exceeds the caller's plan ceiling. It
// carries enough detail for the client to self-correct.
type LimitError struct {
	Limit int
	Role  models.UserRole
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("your %s plan allows at most %d questions per request; upgrade to premium to generate more",
		strings.ToUpper(string(e.Role)), e.Limit)
}

type Policy struct {
	freeLimit    int
	premiumLimit int
}

func NewPolicy(freeLimit, premiumLimit int) Policy {
	if freeLimit <= 0 {
		freeLimit = DefaultFreeLimit
	}
	if premiumLimit <= 0 {
		premiumLimit = DefaultPremiumLimit
	}
	return Policy{freeLimit: freeLimit, premiumLimit: premiumLimit}
}

func DefaultPolicy() Policy {
	return NewPolicy(DefaultFreeLimit, DefaultPremiumLimit)
}

// LimitFor returns the per-request ceiling for role. Unknown roles get the
// free limit, the most restrictive default.
func (p Policy) LimitFor(role models.UserRole) int {
	if role == models.UserRolePremium {
		return p.premiumLimit
	}
	return p.freeLimit
}

// Check returns nil when requested fits within role's limit, or a
// *LimitError otherwise. It has no side effects.
func (p Policy) Check(requested int, role models.UserRole) error {
	limit := p.LimitFor(role)
	if requested > limit {
		return &LimitError{Limit: limit, Role: role}
	}
	return nil
}
