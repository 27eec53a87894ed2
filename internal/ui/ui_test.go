package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/notexe/countdown/internal/calendar"
	"github.com/notexe/countdown/internal/catalog"
	"github.com/notexe/countdown/internal/countdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)

func plain() *Formatter {
	return NewFormatter(false, FormatterOptions{ExpiredLabel: "time is up", ShowTimestamps: true})
}

func TestFormatRemaining(t *testing.T) {
	f := plain()
	r := countdown.RemainingTime{Days: 3, Hours: 2, Minutes: 5, Seconds: 9}

	assert.Equal(t, "3:02:05:09", f.FormatRemaining(r, countdown.ModeCompact))
	assert.Equal(t, "time is up", f.FormatRemaining(countdown.RemainingTime{Expired: true}, countdown.ModeCompact))
	assert.Equal(t, "time is up", f.FormatRemaining(countdown.RemainingTime{Expired: true}, countdown.ModeFull))

	full := f.FormatRemaining(r, countdown.ModeFull)
	lines := strings.Split(full, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"03", "02", "05", "09"}, strings.Fields(strings.ReplaceAll(lines[0], ":", "")))
	assert.Equal(t, []string{"days", "hours", "minutes", "seconds"}, strings.Fields(lines[1]))
}

func TestFormatFullCustomLabels(t *testing.T) {
	f := NewFormatter(false, FormatterOptions{Labels: countdown.Labels{Days: "d", Hours: "h", Minutes: "m", Seconds: "s"}})
	full := f.FormatFull(countdown.RemainingTime{Days: 12, Seconds: 1})
	assert.Equal(t, "12 : 00 : 00 : 01\nd    h    m    s ", full)
}

func TestFormatColoredKeepsDigits(t *testing.T) {
	f := NewFormatter(true, FormatterOptions{})
	out := f.FormatCompact(countdown.RemainingTime{Days: 1, Hours: 2, Minutes: 3, Seconds: 4})
	for _, part := range []string{"1", "02", "03", "04"} {
		assert.Contains(t, out, part)
	}
	assert.Contains(t, f.FormatFull(countdown.RemainingTime{Days: 1}), "days")
}

func TestFormatEntryList(t *testing.T) {
	f := plain()
	entries := []catalog.Entry{
		{ID: "CS310", Title: "Artificial Intelligence", Kind: catalog.KindExam, Due: now.Add(26*time.Hour + 90*time.Second)},
		{ID: "old", Title: "Past event", Kind: catalog.KindEvent, Due: now.Add(-time.Hour)},
	}

	out := f.FormatEntryList(entries, now)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[exam]  CS310  Artificial Intelligence  1:02:01:30  (Fri 16 Jan 2026 11:01)", lines[0])
	assert.Equal(t, "[event]  old  Past event  time is up  (Thu 15 Jan 2026 08:00)", lines[1])

	assert.Equal(t, "No deadlines found.", f.FormatEntryList(nil, now))
}

func TestFormatDetail(t *testing.T) {
	f := plain()
	e := catalog.Entry{
		ID: "SE301", Title: "Advanced Requirements Engineering", Code: "SE301",
		Kind: catalog.KindExam, Location: "Building C - Hall 101", Due: now.Add(72 * time.Hour),
	}

	out := f.FormatDetail(e, now)
	assert.Contains(t, out, "Advanced Requirements Engineering")
	assert.Contains(t, out, "Building C - Hall 101")
	assert.Contains(t, out, "days")
	assert.Contains(t, out, "03")
}

func TestFormatCalendar(t *testing.T) {
	f := plain()
	g := calendar.Month(2026, time.January, now, time.Sunday, []calendar.Mark{
		{At: time.Date(2026, time.January, 18, 9, 0, 0, 0, time.UTC), Kind: catalog.KindExam},
	})

	lines := strings.Split(f.FormatCalendar(g), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "January 2026", lines[0])
	assert.Equal(t, "Su  Mo  Tu  We  Th  Fr  Sa", lines[1])
	assert.Equal(t, "                 1   2   3", lines[2])
	assert.Equal(t, "11  12  13  14  15* 16  17", lines[4])
	assert.Equal(t, "18e 19  20  21  22  23  24", lines[5])
}

func TestStatusDisplayInPlace(t *testing.T) {
	var buf bytes.Buffer
	s := NewStatusDisplay(&buf, true)

	s.Update("a\nb")
	s.Update("c")
	s.Done()

	assert.Equal(t, "\r\033[Ja\nb\033[1A\r\033[Jc\n", buf.String())
}

func TestStatusDisplayLineMode(t *testing.T) {
	var buf bytes.Buffer
	s := NewStatusDisplay(&buf, false)

	s.Update("0:00:00:02")
	s.Update("0:00:00:01")
	s.Hide()
	s.Done()

	assert.Equal(t, "0:00:00:02\n0:00:00:01\n", buf.String())
}

func TestPicker(t *testing.T) {
	p := NewPicker("Which deadline?", []PickerOption{
		{Value: "SE301", Label: "Requirements", Description: "exam"},
		{Value: "project", Label: "Project"},
	}, false)

	assert.Equal(t, "Which deadline?\n 1) Requirements  exam\n 2) Project\n", p.Menu())

	v, err := p.Resolve("2")
	require.NoError(t, err)
	assert.Equal(t, "project", v)

	v, err = p.Resolve(" se301 ")
	require.NoError(t, err)
	assert.Equal(t, "SE301", v)

	_, err = p.Resolve("3")
	assert.Error(t, err)
	_, err = p.Resolve("")
	assert.Error(t, err)
	_, err = p.Resolve("nope")
	assert.Error(t, err)
}
