package rewards

//go:generate mockgen -package=mocks -destination=mocks/mock_issuer.go github.com/housielive/housie/internal/services/rewards Issuer

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/housielive/housie/internal/common/clock"
	"github.com/housielive/housie/internal/models"
)

// couponChars is the alphabet used for coupon codes
const couponChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// couponCodeLength is how many random characters a coupon code carries
const couponCodeLength = 8

// couponValidity is how long an issued coupon stays redeemable
const couponValidity = 30 * 24 * time.Hour

// Coupon is a reward issued for an accepted win claim
type Coupon struct {
	// Code is the redeemable coupon code
	Code string

	// Value is the coupon's worth
	Value int

	// ExpiresAt is when the coupon stops being redeemable
	ExpiresAt time.Time
}

// Issuer creates reward coupons for win claims
type Issuer interface {
	// Issue creates a coupon for a win at the given tier
	Issue(tier models.WinTier) Coupon
}

// Config for the rewards service
type Config struct {
	// Optional seed for testing
	Seed int64

	// Clock for expiry computation; defaults to the system clock
	Clock clock.Clock
}

// service implements Issuer with tier-prefixed codes and fixed tier values
type service struct {
	mu     sync.Mutex
	random *rand.Rand
	clock  clock.Clock
}

// New creates a new rewards service
func New(cfg *Config) *service {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	var clk clock.Clock = &clock.DefaultClock{}
	if cfg != nil && cfg.Clock != nil {
		clk = cfg.Clock
	}

	return &service{
		random: rand.New(rand.NewSource(seed)),
		clock:  clk,
	}
}

// Issue creates a coupon for a win at the given tier.
func (s *service) Issue(tier models.WinTier) Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := make([]byte, couponCodeLength)
	for i := range code {
		code[i] = couponChars[s.random.Intn(len(couponChars))]
	}

	return Coupon{
		Code:      fmt.Sprintf("%s-%s", couponPrefix(tier), string(code)),
		Value:     CouponValue(tier),
		ExpiresAt: s.clock.Now().Add(couponValidity),
	}
}

// couponPrefix returns the tier-specific code prefix.
func couponPrefix(tier models.WinTier) string {
	switch tier {
	case models.WinTierHousie:
		return "GRAND"
	case models.WinTierJaldi:
		return "FAST"
	case models.WinTierFirstLine:
		return "LINE1"
	case models.WinTierSecondLine:
		return "LINE2"
	case models.WinTierThirdLine:
		return "LINE3"
	}
	return "WIN"
}

// CouponValue returns the reward value for a tier.
func CouponValue(tier models.WinTier) int {
	switch tier {
	case models.WinTierHousie:
		return 500
	case models.WinTierJaldi:
		return 200
	case models.WinTierFirstLine, models.WinTierSecondLine, models.WinTierThirdLine:
		return 100
	}
	return 50
}

var _ Issuer = (*service)(nil)
