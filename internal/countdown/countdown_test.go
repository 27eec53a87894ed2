package countdown

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		deadline time.Time
		now      time.Time
		want     RemainingTime
	}{
		{
			name:     "mixed breakdown",
			deadline: base.Add(3*24*time.Hour + 2*time.Hour + 5*time.Minute + 9*time.Second),
			now:      base,
			want:     RemainingTime{Days: 3, Hours: 2, Minutes: 5, Seconds: 9},
		},
		{
			name:     "ninety seconds",
			deadline: base.Add(90 * time.Second),
			now:      base,
			want:     RemainingTime{Minutes: 1, Seconds: 30},
		},
		{
			name:     "exactly one day",
			deadline: base.Add(24 * time.Hour),
			now:      base,
			want:     RemainingTime{Days: 1},
		},
		{
			name:     "one millisecond past",
			deadline: base.Add(-time.Millisecond),
			now:      base,
			want:     RemainingTime{Expired: true},
		},
		{
			name:     "deadline equals now",
			deadline: base,
			now:      base,
			want:     RemainingTime{Expired: true},
		},
		{
			name:     "far past",
			deadline: base.AddDate(-3, 0, 0),
			now:      base,
			want:     RemainingTime{Expired: true},
		},
		{
			name:     "sub-second left is not expired",
			deadline: base.Add(999 * time.Millisecond),
			now:      base,
			want:     RemainingTime{},
		},
		{
			name:     "sub-millisecond remainder is truncated",
			deadline: base.Add(2*time.Second + 999*time.Microsecond),
			now:      base,
			want:     RemainingTime{Seconds: 2},
		},
		{
			name:     "days are unbounded",
			deadline: base.Add(400*24*time.Hour + 23*time.Hour + 59*time.Minute + 59*time.Second),
			now:      base,
			want:     RemainingTime{Days: 400, Hours: 23, Minutes: 59, Seconds: 59},
		},
		{
			name:     "instants compare across zones",
			deadline: base.Add(time.Hour).In(time.FixedZone("UTC+3", 3*3600)),
			now:      base,
			want:     RemainingTime{Hours: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.deadline, tt.now))
		})
	}
}

func TestComputeTotalSecondsMatchesDiff(t *testing.T) {
	tests := []struct {
		name     string
		deadline time.Time
		now      time.Time
		want     int64
	}{
		{"one millisecond", base.Add(time.Millisecond), base, 0},
		{"hour minus a millisecond", base.Add(time.Hour - time.Millisecond), base, 3599},
		{"thousand days", base.Add(1000*24*time.Hour + 7*time.Minute), base, 1000*86400 + 420},
		{"now with a sub-millisecond part", base.Add(time.Second), base.Add(400 * time.Microsecond), 1},
		{"both unaligned", base.Add(1999*time.Millisecond + 5), base.Add(999*time.Millisecond + 900*time.Microsecond), 1},
		{"less than a millisecond ahead", base.Add(400), base.Add(100), 0},
		{"beyond duration range", time.Date(2500, time.January, 15, 9, 0, 0, 0, time.UTC), base, 14958000000},
		{"far past now", base, time.Date(1400, time.March, 1, 0, 0, 0, 0, time.UTC), base.Unix() - time.Date(1400, time.March, 1, 0, 0, 0, 0, time.UTC).Unix()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.deadline, tt.now)
			assert.False(t, r.Expired)
			assert.Equal(t, tt.want, r.TotalSeconds())
			assertBounded(t, r)
		})
	}

	r := Compute(time.Date(2500, time.January, 15, 9, 0, 0, 0, time.UTC), base)
	assert.Equal(t, RemainingTime{Days: 173125}, r)
}

func TestComputeExpiredIsZero(t *testing.T) {
	tests := []struct {
		name     string
		deadline time.Time
		now      time.Time
	}{
		{"equal", base, base},
		{"equal with nanoseconds", base.Add(123456789), base.Add(123456789)},
		{"one nanosecond late", base, base.Add(1)},
		{"three hundred years late", time.Date(1726, time.January, 15, 9, 0, 0, 0, time.UTC), base},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, RemainingTime{Expired: true}, Compute(tt.deadline, tt.now))
		})
	}
}

func TestComputeRandomPairs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	// roughly +-1600 years around the epoch, with a nanosecond part
	const spanMS = int64(100_000_000_000_000)
	instant := func() time.Time {
		ms := rng.Int63n(spanMS) - spanMS/2
		return time.UnixMilli(ms).Add(time.Duration(rng.Int63n(int64(time.Millisecond))))
	}

	for i := 0; i < 2000; i++ {
		deadline, now := instant(), instant()
		if i%4 == 0 {
			// keep some gaps short
			deadline = now.Add(time.Duration(rng.Int63n(int64(48*time.Hour))) - 24*time.Hour)
		}

		r := Compute(deadline, now)
		if !now.Before(deadline) {
			assert.Equal(t, RemainingTime{Expired: true}, r, "deadline %s now %s", deadline, now)
			continue
		}

		want := (deadline.UnixMilli() - now.UnixMilli()) / 1000
		assert.False(t, r.Expired)
		assert.Equal(t, want, r.TotalSeconds(), "deadline %s now %s", deadline, now)
		assertBounded(t, r)
	}
}

func assertBounded(t *testing.T, r RemainingTime) {
	t.Helper()
	assert.GreaterOrEqual(t, r.Days, 0)
	assert.True(t, r.Hours >= 0 && r.Hours < 24, "hours %d", r.Hours)
	assert.True(t, r.Minutes >= 0 && r.Minutes < 60, "minutes %d", r.Minutes)
	assert.True(t, r.Seconds >= 0 && r.Seconds < 60, "seconds %d", r.Seconds)
}

func TestComputeIsMonotonic(t *testing.T) {
	deadline := base.Add(2*time.Hour + 30*time.Second)

	prev := Compute(deadline, base).TotalSeconds()
	for now := base; now.Before(deadline.Add(5 * time.Second)); now = now.Add(733 * time.Millisecond) {
		cur := Compute(deadline, now).TotalSeconds()
		assert.LessOrEqual(t, cur, prev, now.String())
		prev = cur
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	deadline := base.Add(42*time.Hour + 7*time.Second)
	now := base.Add(13 * time.Minute)

	assert.Equal(t, Compute(deadline, now), Compute(deadline, now))
}

func TestComputeOneSecondSteps(t *testing.T) {
	deadline := base.Add(5 * time.Second)

	var got []int64
	for i := 0; i < 9; i++ {
		got = append(got, Compute(deadline, base.Add(time.Duration(i)*time.Second)).TotalSeconds())
	}
	assert.Equal(t, []int64{5, 4, 3, 2, 1, 0, 0, 0, 0}, got)

	for i := 5; i < 9; i++ {
		r := Compute(deadline, base.Add(time.Duration(i)*time.Second))
		assert.True(t, r.Expired)
		assert.Equal(t, RemainingTime{Expired: true}, r)
	}
}
