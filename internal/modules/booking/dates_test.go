package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Friday 2026-10-16, mid-morning.
var fixedNow = time.Date(2026, 10, 16, 10, 30, 0, 0, time.UTC)

func newTestResolver(now time.Time) *DateResolver {
	return NewDateResolver(time.UTC, func() time.Time { return now })
}

func TestResolve_Table(t *testing.T) {
	r := newTestResolver(fixedNow)

	tests := []struct {
		in   string
		want string
	}{
		{"today", "2026-10-16"},
		{"  Today ", "2026-10-16"},
		{"tomorrow", "2026-10-17"},
		{"tommorow", "2026-10-17"},
		{"TMRW", "2026-10-17"},
		{"day after tomorrow", "2026-10-18"},
		{"2026-12-01", "2026-12-01"},
		{"2 days after", "2026-10-18"},
		{"3 days later", "2026-10-19"},
		{"in 5 days", "2026-10-21"},
		{"1 week from now", "2026-10-23"},
		{"2 weeks 3 days", "2026-11-02"},
		{"2 weeks, 3 days", "2026-11-02"},
		{"2 weeks and 3 days", "2026-11-02"},
		{"1 month later", "2026-11-16"},
		{"1 year from now", "2027-10-16"},
		{"0 days", "2026-10-16"},
		{"20 october", "2026-10-20"},
		{"October 16", "2026-10-16"},
		{"12 July", "2027-07-12"},
		{"12th of july", "2027-07-12"},
		{"july 12, 2026", "2026-07-12"},
		{"1 jan 2028", "2028-01-01"},
		{"next monday", "2026-10-19"},
		{"monday", "2026-10-19"},
		{"friday", "2026-10-23"},
		{"on tomorrow", "2026-10-17"},
		{"the day after tomorrow", "2026-10-18"},
		{"on 12 july", "2027-07-12"},
		{"by 3 march", "2027-03-03"},
		{"for 20 october", "2026-10-20"},
		{"on the 12th of july", "2027-07-12"},
		{"july", "2027-07-16"},
		{"9 years", "2035-10-16"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := r.ResolveISO(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_TodayAndTomorrowFollowClock(t *testing.T) {
	for _, now := range []time.Time{
		fixedNow,
		time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC),
		time.Date(2028, 2, 28, 0, 0, 0, 0, time.UTC),
	} {
		r := newTestResolver(now)

		today, err := r.Resolve("today")
		require.NoError(t, err)
		assert.Equal(t, now.Format(DateLayout), today.Format(DateLayout))

		tomorrow, err := r.Resolve("tomorrow")
		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, 0, 1).Format(DateLayout), tomorrow.Format(DateLayout))
	}
}

func TestResolve_RelativeClausesCommute(t *testing.T) {
	r := newTestResolver(time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC))

	pairs := [][2]string{
		{"2 weeks 3 days", "3 days 2 weeks"},
		{"1 month 1 day", "1 day 1 month"},
		{"1 year 2 months 5 days", "5 days 1 year 2 months"},
	}
	for _, p := range pairs {
		a, err := r.Resolve(p[0])
		require.NoError(t, err)
		b, err := r.Resolve(p[1])
		require.NoError(t, err)
		assert.Equal(t, a, b, "%q vs %q", p[0], p[1])
	}
}

func TestResolve_MonthOffsetClampsToMonthEnd(t *testing.T) {
	r := newTestResolver(time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC))

	got, err := r.ResolveISO("1 month")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", got)

	got, err = r.ResolveISO("1 month 1 day")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", got)
}

func TestResolve_Failures(t *testing.T) {
	r := newTestResolver(fixedNow)

	for _, in := range []string{
		"", "   ", "blorp", "31 february", "30 feb 2027",
		"2026-02-30", "2026-13-01", "2027-04-31", "2026-1-45",
		"next monday please", "yesterday",
		"11 years", "1000000 years", "99999999999999999999 days",
		"2040-01-01",
	} {
		_, err := r.Resolve(in)
		assert.ErrorIs(t, err, ErrUnresolvableDate, in)
	}
}

func TestResolve_PastMonthRollsToNextYear(t *testing.T) {
	r := newTestResolver(fixedNow)

	for _, in := range []string{"on 12 july", "by 3 march", "july", "12 july"} {
		got, err := r.Resolve(in)
		require.NoError(t, err, in)
		assert.False(t, got.Before(r.Today()), "%q resolved to past date %s", in, got.Format(DateLayout))
	}
}

func TestResolve_UsesResolverLocation(t *testing.T) {
	karachi := time.FixedZone("PKT", 5*60*60)
	// 21:00 UTC on the 16th is already the 17th in Karachi.
	now := time.Date(2026, 10, 16, 21, 0, 0, 0, time.UTC)
	r := NewDateResolver(karachi, func() time.Time { return now })

	got, err := r.ResolveISO("today")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-17", got)
}
