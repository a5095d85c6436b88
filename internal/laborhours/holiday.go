package laborhours

import (
	"sort"
	"strconv"
)

// HolidayCalendar は年ごとの공휴일一覧。設定ファイルから注入し、生成後は変更しない。
type HolidayCalendar struct {
	days   map[string]struct{}
	byYear map[int][]string
}

// NewHolidayCalendar builds a calendar from year -> ISO dates.
// Unparsable entries are skipped; each date is filed under its own year.
func NewHolidayCalendar(byYear map[int][]string) *HolidayCalendar {
	c := &HolidayCalendar{
		days:   make(map[string]struct{}),
		byYear: make(map[int][]string),
	}
	for _, dates := range byYear {
		for _, d := range dates {
			t, ok := parseDate(d)
			if !ok {
				continue
			}
			key := t.Format(DateLayout)
			if _, dup := c.days[key]; dup {
				continue
			}
			c.days[key] = struct{}{}
			c.byYear[t.Year()] = append(c.byYear[t.Year()], key)
		}
	}
	for y := range c.byYear {
		sort.Strings(c.byYear[y])
	}
	return c
}

// IsHoliday: 解析できない日付・nil カレンダーは false
func (c *HolidayCalendar) IsHoliday(date string) bool {
	if c == nil {
		return false
	}
	key := NormalizeDate(date)
	if key == "" {
		return false
	}
	_, ok := c.days[key]
	return ok
}

// Holidays returns a copy of the configured dates for year.
func (c *HolidayCalendar) Holidays(year int) []string {
	if c == nil {
		return []string{}
	}
	out := make([]string, len(c.byYear[year]))
	copy(out, c.byYear[year])
	return out
}

func (c *HolidayCalendar) Years() []int {
	if c == nil {
		return nil
	}
	out := make([]int, 0, len(c.byYear))
	for y := range c.byYear {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

func (c *HolidayCalendar) String() string {
	if c == nil {
		return "HolidayCalendar(nil)"
	}
	return "HolidayCalendar(" + strconv.Itoa(len(c.days)) + " days)"
}
