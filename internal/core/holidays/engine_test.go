package holidays

import (
	"encoding/json"
	"slices"
	"sync"
	"testing"
	"time"

	"holidays/internal/core/calendars"
	"holidays/internal/core/catalog"
	"holidays/internal/core/date"
	perr "holidays/internal/platform/errors"
)

const scenarioCatalog = `{
  "version": 1,
  "categories": ["public"],
  "policies": [{
    "name": "tight",
    "rules": [{"weekday": "saturday", "shift": 2}, {"weekday": "sunday", "shift": 1}],
    "collision": "forward", "skip_weekend": true, "max_shift": 2
  }],
  "entities": [
    {
      "code": "HX", "name": "Scenarioland", "weekend": ["saturday", "sunday"],
      "categories": ["public"], "default_policy": "none",
      "rules": [
        {"id": "hanukkah", "name": "Hanukkah", "kind": "calendar", "calendar": "hebrew", "event": "hanukkah"},
        {"id": "new_year", "name": "New Year's Day", "kind": "fixed", "month": 1, "day": 1},
        {"id": "founders", "name": "Founders' Day", "kind": "fixed", "month": 1, "day": 1}
      ]
    },
    {
      "code": "EX", "name": "Exhaustia", "weekend": ["saturday", "sunday"],
      "categories": ["public"], "default_policy": "tight",
      "rules": [
        {"id": "a", "name": "A", "kind": "fixed", "month": 12, "day": 25},
        {"id": "b", "name": "B", "kind": "fixed", "month": 12, "day": 26},
        {"id": "c", "name": "C", "kind": "fixed", "month": 12, "day": 27},
        {"id": "d", "name": "D", "kind": "fixed", "month": 12, "day": 28}
      ]
    }
  ]
}`

func scenarioEngine(t *testing.T) *Engine {
	t.Helper()
	cat, err := catalog.Parse([]byte(scenarioCatalog), calendars.Default())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return New(cat, calendars.Default())
}

func sampleEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return New(cat, calendars.Default(), opts...)
}

func mustFor(t *testing.T, e *Engine, q Query) *Collection {
	t.Helper()
	c, err := e.HolidaysFor(q)
	if err != nil {
		t.Fatalf("HolidaysFor(%+v): %v", q, err)
	}
	return c
}

func d(y int, m time.Month, day int) date.Date { return date.MustNew(y, m, day) }

func TestHanukkah1999(t *testing.T) {
	e := scenarioEngine(t)
	c := mustFor(t, e, Query{Entity: "HX", Categories: []string{"public"}, From: 1999})
	if got := c.Names(d(1999, time.December, 4)); !slices.Contains(got, "Hanukkah") {
		t.Fatalf("1999-12-04 names = %v", got)
	}
}

func TestSameDayRulesMerge(t *testing.T) {
	e := scenarioEngine(t)
	c := mustFor(t, e, Query{Entity: "HX", From: 2024})
	n := 0
	for _, dt := range c.Dates() {
		if dt == d(2024, time.January, 1) {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("Jan 1 appears %d times", n)
	}
	if got := c.Names(d(2024, time.January, 1)); !slices.Equal(got, []string{"New Year's Day", "Founders' Day"}) {
		t.Fatalf("Jan 1 names = %v", got)
	}
}

func TestOutOfRange(t *testing.T) {
	e := sampleEngine(t)
	for _, y := range []int{1946, 2101} {
		if _, err := e.HolidaysFor(Query{Entity: "IL", From: y}); !perr.IsCode(err, perr.ErrorCodeRange) {
			t.Fatalf("IL %d: want range error, got %v", y, err)
		}
	}
	if _, err := e.HolidaysFor(Query{Entity: "US", From: 0}); !perr.IsCode(err, perr.ErrorCodeRange) {
		t.Fatalf("year 0: want range error, got %v", err)
	}
	if _, err := e.HolidaysFor(Query{Entity: "US", From: 1800, To: 2100}); !perr.IsCode(err, perr.ErrorCodeRange) {
		t.Fatalf("span beyond max: want range error, got %v", err)
	}
	if _, err := e.HolidaysFor(Query{Entity: "US", From: 2024, To: 2020}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("reversed span: %v", err)
	}
	if st := e.Stats(); st.Cells != 0 {
		t.Fatalf("failed populations must not stay cached: %+v", st)
	}
}

func TestConfigErrors(t *testing.T) {
	e := sampleEngine(t)
	cases := []Query{
		{Entity: "ZZ", From: 2024},
		{Entity: "US", Subdivisions: []string{"XX"}, From: 2024},
		{Entity: "US", Categories: []string{"school"}, From: 2024},
	}
	for _, q := range cases {
		if _, err := e.HolidaysFor(q); !perr.IsCode(err, perr.ErrorCodeConfig) {
			t.Fatalf("%+v: want config error, got %v", q, err)
		}
	}
	if e.Stats().Populations != 0 {
		t.Fatalf("config errors must surface before any population")
	}
	if _, err := e.HolidaysFor(Query{Entity: "US", From: 2024, View: "sideways"}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("bad view: %v", err)
	}
}

func TestObservedSaturdayToFriday(t *testing.T) {
	e := sampleEngine(t)
	c := mustFor(t, e, Query{Entity: "US", From: 2020})

	sat, fri := d(2020, time.July, 4), d(2020, time.July, 3)
	actual := c.Get(sat)
	if len(actual) != 1 || actual[0].Observed || !actual[0].Shifted {
		t.Fatalf("Jul 4 entries = %+v", actual)
	}
	obs := c.Get(fri)
	if len(obs) != 1 || !obs[0].Observed || obs[0].Name != "Independence Day" {
		t.Fatalf("Jul 3 entries = %+v", obs)
	}
	if !mustFor(t, e, Query{Entity: "US", From: 2020, View: ViewActual}).Has(sat) {
		t.Fatalf("actual view should keep Jul 4")
	}
	ov := mustFor(t, e, Query{Entity: "US", From: 2020, View: ViewObserved})
	if ov.Has(sat) || !ov.Has(fri) {
		t.Fatalf("observed view should move Jul 4 to Jul 3")
	}
}

func TestCollisionMovesSecondHoliday(t *testing.T) {
	e := sampleEngine(t)
	c := mustFor(t, e, Query{Entity: "GB", From: 2021, View: ViewObserved})
	if got := c.Names(d(2021, time.December, 27)); !slices.Equal(got, []string{"Christmas Day"}) {
		t.Fatalf("Dec 27 = %v", got)
	}
	if got := c.Names(d(2021, time.December, 28)); !slices.Equal(got, []string{"Boxing Day"}) {
		t.Fatalf("Dec 28 = %v", got)
	}

	// Christmas on Sunday lands on Tuesday because Boxing Day holds Monday
	c22 := mustFor(t, e, Query{Entity: "GB", From: 2022, View: ViewObserved})
	if got := c22.Names(d(2022, time.December, 27)); !slices.Equal(got, []string{"Christmas Day"}) {
		t.Fatalf("2022 Dec 27 = %v", got)
	}

	scot := mustFor(t, e, Query{Entity: "GB", Subdivisions: []string{"sct"}, From: 2022, View: ViewObserved})
	if !scot.Has(d(2022, time.January, 3)) || !scot.Has(d(2022, time.January, 4)) {
		t.Fatalf("Scottish New Year substitutes missing: %v", scot.Dates())
	}
	if scot.Has(d(2022, time.April, 18)) {
		t.Fatalf("Scotland has no Easter Monday")
	}
}

func TestIsraelIndependenceShift(t *testing.T) {
	e := sampleEngine(t)
	c := mustFor(t, e, Query{Entity: "IL", From: 2025, View: ViewObserved})
	if got := c.Names(d(2025, time.May, 1)); !slices.Equal(got, []string{"Independence Day"}) {
		t.Fatalf("2025 Independence Day observed = %v", got)
	}
	if c.Has(d(2025, time.May, 3)) {
		t.Fatalf("Saturday actual should not be in the observed view")
	}
	school := mustFor(t, e, Query{Entity: "IL", Categories: []string{"school"}, From: 1999})
	if !school.Has(d(1999, time.December, 4)) || !school.Has(d(1999, time.December, 11)) {
		t.Fatalf("eight days of Hanukkah expected")
	}
}

func TestGermanRules(t *testing.T) {
	e := sampleEngine(t)
	bb := mustFor(t, e, Query{Entity: "DE", Subdivisions: []string{"BB"}, From: 2017})
	if got := bb.Names(d(2017, time.October, 31)); !slices.Equal(got, []string{"Reformation Day"}) {
		t.Fatalf("Reformation Day 2017 should merge to one name, got %v", got)
	}
	sn := mustFor(t, e, Query{Entity: "DE", Subdivisions: []string{"SN"}, From: 2024})
	if !sn.Has(d(2024, time.November, 20)) {
		t.Fatalf("Repentance and Prayer Day 2024 missing")
	}
	nrw := mustFor(t, e, Query{Entity: "Deutschland", Subdivisions: []string{"NW"}, From: 2024})
	for _, want := range []date.Date{d(2024, time.March, 29), d(2024, time.April, 1), d(2024, time.May, 9), d(2024, time.May, 20), d(2024, time.May, 30)} {
		if !nrw.Has(want) {
			t.Fatalf("NRW 2024 missing %v", want)
		}
	}
}

func TestDeterminism(t *testing.T) {
	q := Query{Entity: "GB", Subdivisions: []string{"SCT", "NIR"}, Categories: []string{"public", "bank"}, From: 2015, To: 2030}
	a, _ := json.Marshal(mustFor(t, sampleEngine(t), q))
	b, _ := json.Marshal(mustFor(t, sampleEngine(t), q))
	e := sampleEngine(t)
	c1, _ := json.Marshal(mustFor(t, e, q))
	c2, _ := json.Marshal(mustFor(t, e, q))
	if string(a) != string(b) || string(c1) != string(c2) || string(a) != string(c1) {
		t.Fatalf("same query gave different collections")
	}
	x := mustFor(t, e, q)
	y := mustFor(t, e, q)
	if !slices.Equal(x.Dates(), y.Dates()) {
		t.Fatalf("insertion order differs between calls")
	}
}

func TestRangeMonotonicity(t *testing.T) {
	e := sampleEngine(t)
	base := Query{Entity: "US", Subdivisions: []string{"MA"}, Categories: []string{"public", "unofficial"}}

	whole := base
	whole.From, whole.To = 2018, 2026
	want, _ := json.Marshal(mustFor(t, e, whole))

	for _, split := range [][2]int{{2018, 2020}, {2018, 2025}, {2018, 2018}} {
		out := NewCollection()
		for _, r := range [][2]int{{split[0], split[1]}, {split[1] + 1, 2026}} {
			if r[0] > r[1] {
				continue
			}
			q := base
			q.From, q.To = r[0], r[1]
			out.Merge(mustFor(t, e, q))
		}
		got, _ := json.Marshal(out)
		if string(got) != string(want) {
			t.Fatalf("split at %v differs from whole range", split)
		}
	}
}

func TestIsHolidayAndNameOf(t *testing.T) {
	e := sampleEngine(t)
	names, ok, err := e.NameOf("US", nil, d(2021, time.December, 31), nil)
	if err != nil || !ok || !slices.Equal(names, []string{"New Year's Day (observed)"}) {
		t.Fatalf("NameOf(2021-12-31) = %v %v %v", names, ok, err)
	}
	if ok, _ := e.IsHoliday("US", nil, d(2021, time.December, 30), nil); ok {
		t.Fatalf("Dec 30 is not a holiday")
	}
	if ok, _ := e.IsHoliday("US", nil, d(2024, time.May, 27), []string{"public"}); !ok {
		t.Fatalf("Memorial Day 2024")
	}
	if ok, _ := e.IsHoliday("usa", []string{"ma"}, d(2024, time.April, 15), nil); !ok {
		t.Fatalf("Patriots' Day 2024 in MA")
	}
	// the adjacent year is outside the table; the date's own year is fine
	if _, err := e.IsHoliday("IL", nil, d(2100, time.December, 20), []string{"school"}); err != nil {
		t.Fatalf("adjacent range error should be ignored: %v", err)
	}
	if _, err := e.IsHoliday("IL", nil, d(2101, time.January, 2), nil); !perr.IsCode(err, perr.ErrorCodeRange) {
		t.Fatalf("own-year range error should surface: %v", err)
	}
	if _, _, err := e.NameOf("XX", nil, d(2024, time.January, 1), nil); !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("unknown entity: %v", err)
	}
}

func TestWorkingDayNextNamed(t *testing.T) {
	e := sampleEngine(t)
	cases := []struct {
		ent  string
		day  date.Date
		want bool
	}{
		{"US", d(2020, time.July, 3), false},
		{"US", d(2020, time.July, 6), true},
		{"US", d(2020, time.July, 4), false},
		{"IL", d(2024, time.March, 1), false},
		{"IL", d(2024, time.March, 3), true},
	}
	for _, c := range cases {
		got, err := e.IsWorkingDay(c.ent, nil, c.day, nil)
		if err != nil || got != c.want {
			t.Fatalf("IsWorkingDay(%s,%v) = %v %v", c.ent, c.day, got, err)
		}
	}

	day, ok, err := e.Next("US", nil, nil, d(2024, time.July, 5))
	if err != nil || !ok || day.Date != d(2024, time.September, 2) {
		t.Fatalf("Next = %+v %v %v", day, ok, err)
	}
	day, _, _ = e.Next("US", nil, nil, d(2021, time.December, 26))
	if day.Date != d(2021, time.December, 31) {
		t.Fatalf("Next should see the spilled New Year, got %v", day.Date)
	}

	found, err := e.Named(Query{Entity: "DE", From: 2024}, "UNITY")
	if err != nil || found.Len() != 1 || !found.Has(d(2024, time.October, 3)) {
		t.Fatalf("Named = %v %v", found, err)
	}
	if _, err := e.Named(Query{Entity: "DE", From: 2024}, "  "); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("blank name: %v", err)
	}

	b, err := e.Between("US", nil, nil, d(2021, time.December, 20), d(2022, time.January, 20), ViewObserved)
	if err != nil {
		t.Fatalf("Between: %v", err)
	}
	want := []date.Date{d(2021, time.December, 24), d(2021, time.December, 31), d(2022, time.January, 17)}
	var got []date.Date
	for _, day := range b.Sorted() {
		got = append(got, day.Date)
	}
	if !slices.Equal(got, want) {
		t.Fatalf("Between = %v, want %v", got, want)
	}
}

func TestShiftExhaustedNotCached(t *testing.T) {
	e := scenarioEngine(t)
	for i := 0; i < 2; i++ {
		if _, err := e.HolidaysFor(Query{Entity: "EX", From: 2021}); !perr.IsCode(err, perr.ErrorCodeShiftExhausted) {
			t.Fatalf("want shift exhausted, got %v", err)
		}
	}
	st := e.Stats()
	if st.Cells != 0 || st.Failures != 2 || st.Populations != 0 {
		t.Fatalf("stats after failures = %+v", st)
	}
	if _, err := e.HolidaysFor(Query{Entity: "EX", From: 2019}); err != nil {
		t.Fatalf("other years still resolve: %v", err)
	}
}

func TestConcurrentPopulationOnce(t *testing.T) {
	e := sampleEngine(t)
	ent, _ := e.Catalog().Entity("GB")
	var wg sync.WaitGroup
	results := make([]*Collection, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := e.Year(ent, nil, "public", 2030)
			if err != nil {
				t.Errorf("Year: %v", err)
			}
			results[i] = c
		}(i)
	}
	wg.Wait()
	for _, c := range results {
		if c != results[0] {
			t.Fatalf("callers got different collections")
		}
	}
	st := e.Stats()
	if st.Populations != 1 || st.Cells != 1 || st.Hits != 63 {
		t.Fatalf("stats = %+v", st)
	}

	// extending the range adds cells without repopulating
	mustFor(t, e, Query{Entity: "GB", From: 2030, To: 2031})
	if st := e.Stats(); st.Populations != 2 || st.Cells != 2 {
		t.Fatalf("after extension = %+v", st)
	}
}

func TestWarmAndOptions(t *testing.T) {
	e := sampleEngine(t, WithMaxSpan(5), WithLabels(Labels{Observed: "%s [sub]", Estimated: "no placeholder"}))
	if e.MaxSpan() != 5 {
		t.Fatalf("MaxSpan = %d", e.MaxSpan())
	}
	if e.Labels().Observed != "%s [sub]" || e.Labels().Estimated != DefaultLabels.Estimated {
		t.Fatalf("labels = %+v", e.Labels())
	}
	if err := e.Warm([]string{"US", "GB"}, 2024, 2025); err != nil {
		t.Fatalf("Warm: %v", err)
	}
	// US: public, unofficial; GB: public, bank; two years each
	if st := e.Stats(); st.Cells != 8 {
		t.Fatalf("cells after warm = %d", st.Cells)
	}
	if err := e.Warm([]string{"US"}, 2000, 2010); !perr.IsCode(err, perr.ErrorCodeRange) {
		t.Fatalf("warm beyond max span: %v", err)
	}
	names, _, _ := e.NameOf("US", nil, d(2021, time.December, 31), nil)
	if !slices.Equal(names, []string{"New Year's Day [sub]"}) {
		t.Fatalf("custom label not used: %v", names)
	}
}

func TestEstimatedEntriesAreLabelled(t *testing.T) {
	tab, err := calendars.ParseTable([]byte(`{"version":1,"system":"test","first_year":2000,"last_year":2002,"estimated_from":2001,
		"events":{"fest":["06-10","06-01","05-20"]}}`))
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	reg := calendars.NewRegistry(tab)
	cat, err := catalog.Parse([]byte(`{
	  "version": 1,
	  "categories": ["public"],
	  "policies": [],
	  "entities": [{
	    "code": "TX", "name": "Tableland", "weekend": ["saturday", "sunday"],
	    "categories": ["public"], "default_policy": "none",
	    "rules": [{"id": "fest", "name": "Fest", "kind": "calendar", "calendar": "test", "event": "fest"}]
	  }]
	}`), reg)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	e := New(cat, reg)

	coll := mustFor(t, e, Query{Entity: "TX", From: 2000, To: 2001})
	if got := coll.Get(d(2000, time.June, 10)); len(got) != 1 || got[0].Estimated {
		t.Fatalf("2000 entries = %+v", got)
	}
	if got := coll.Get(d(2001, time.June, 1)); len(got) != 1 || !got[0].Estimated {
		t.Fatalf("2001 entries = %+v", got)
	}

	names, ok, err := e.NameOf("TX", nil, d(2001, time.June, 1), nil)
	if err != nil || !ok || !slices.Equal(names, []string{"Fest (estimated)"}) {
		t.Fatalf("NameOf(2001-06-01) = %v %v %v", names, ok, err)
	}
	names, _, _ = e.NameOf("TX", nil, d(2000, time.June, 10), nil)
	if !slices.Equal(names, []string{"Fest"}) {
		t.Fatalf("NameOf(2000-06-10) = %v", names)
	}

	e = New(cat, reg, WithLabels(Labels{Estimated: "%s (approx.)"}))
	names, _, _ = e.NameOf("TX", nil, d(2001, time.June, 1), nil)
	if !slices.Equal(names, []string{"Fest (approx.)"}) {
		t.Fatalf("custom label = %v", names)
	}
}
