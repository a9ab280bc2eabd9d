package rewards

import (
	"strings"
	"testing"
	"time"

	"github.com/housielive/housie/internal/common/clock/mocks"
	"github.com/housielive/housie/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestIssue(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClock := mocks.NewMockClock(ctrl)

	testNow := time.Date(2025, 6, 10, 19, 0, 0, 0, time.UTC)
	mockClock.EXPECT().Now().Return(testNow).AnyTimes()

	svc := New(&Config{Seed: 42, Clock: mockClock})

	cases := []struct {
		tier   models.WinTier
		prefix string
		value  int
	}{
		{models.WinTierHousie, "GRAND-", 500},
		{models.WinTierJaldi, "FAST-", 200},
		{models.WinTierFirstLine, "LINE1-", 100},
		{models.WinTierSecondLine, "LINE2-", 100},
		{models.WinTierThirdLine, "LINE3-", 100},
	}

	for _, tc := range cases {
		coupon := svc.Issue(tc.tier)

		assert.True(t, strings.HasPrefix(coupon.Code, tc.prefix), "code %q should start with %q", coupon.Code, tc.prefix)
		assert.Equal(t, tc.value, coupon.Value)
		assert.Equal(t, testNow.Add(couponValidity), coupon.ExpiresAt)

		random := strings.TrimPrefix(coupon.Code, tc.prefix)
		require.Len(t, random, couponCodeLength)
		for _, c := range random {
			assert.Contains(t, couponChars, string(c))
		}
	}
}

func TestIssueDeterministicWithSeed(t *testing.T) {
	first := New(&Config{Seed: 7}).Issue(models.WinTierHousie)
	second := New(&Config{Seed: 7}).Issue(models.WinTierHousie)

	assert.Equal(t, first.Code, second.Code)
}
