package catalog

import (
	"strings"
	"testing"

	"holidays/internal/core/calendars"
	"holidays/internal/core/rule"
	perr "holidays/internal/platform/errors"
	"holidays/internal/platform/testkit"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	again, _ := Load()
	if c != again {
		t.Fatalf("Load should parse once")
	}
	var codes []string
	for _, e := range c.List() {
		codes = append(codes, e.Code)
	}
	if got := strings.Join(codes, ","); got != "DE,GB,IL,US" {
		t.Fatalf("entities = %s", got)
	}
	for _, key := range []string{"us", "USA", "united states of america", "Deutschland", "uk", "isr"} {
		if _, err := c.Entity(key); err != nil {
			t.Fatalf("Entity(%q): %v", key, err)
		}
	}
	if _, err := c.Entity("atlantis"); !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("want config error, got %v", err)
	}
	if _, ok := c.Policy("next_weekday"); !ok {
		t.Fatalf("next_weekday policy missing")
	}
}

func ids(rs []rule.Rule) string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return strings.Join(out, ",")
}

func TestSelect(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	us, _ := c.Entity("US")

	federal, err := us.Select(nil, "public")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	got := ids(federal)
	if strings.Contains(got, "patriots") || strings.Contains(got, "valentines") {
		t.Fatalf("federal selection leaked state or unofficial rules: %s", got)
	}
	if !strings.HasPrefix(got, "new_year,mlk,washington") {
		t.Fatalf("rule order not kept: %s", got)
	}

	ma, err := us.Select([]string{"ma"}, "public")
	if err != nil {
		t.Fatalf("Select(MA): %v", err)
	}
	testkit.MustContain(t, ids(ma), "patriots")

	ca, _ := us.Select([]string{"CA"}, "public")
	if strings.Contains(ids(ca), "columbus") {
		t.Fatalf("CA excludes columbus: %s", ids(ca))
	}
	testkit.MustContain(t, ids(ca), "cesar_chavez")

	again, _ := us.Select([]string{"MA"}, "public")
	if &again[0] != &ma[0] {
		t.Fatalf("selection should be memoised")
	}

	if _, err := us.Select([]string{"ZZ"}, "public"); !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("unknown subdivision: %v", err)
	}
	if _, err := us.Select(nil, "school"); !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("unknown category: %v", err)
	}
}

func TestPolicyFor(t *testing.T) {
	c, _ := Load()
	us, _ := c.Entity("US")
	il, _ := c.Entity("IL")
	for _, r := range us.Rules {
		p, ok := us.PolicyFor(r)
		switch r.ID {
		case "new_year":
			if !ok || p.Name != "nearest_weekday" {
				t.Fatalf("new_year policy = %v %v", p.Name, ok)
			}
		case "texas_independence":
			if ok {
				t.Fatalf("observed none should disable shifting")
			}
		}
	}
	for _, r := range il.Rules {
		_, ok := il.PolicyFor(r)
		if r.ID == "independence" && !ok {
			t.Fatalf("independence should carry its own policy")
		}
		if r.ID == "passover" && ok {
			t.Fatalf("IL default policy is none")
		}
	}
	if !il.WeekendSet().Has(5) || il.WeekendSet().Has(0) {
		t.Fatalf("IL weekend should be Friday and Saturday")
	}
}

const tmpl = `{
  "version": 1,
  "categories": ["public", "bank"],
  "policies": [{"name": "sat_fri", "rules": [{"weekday": "saturday", "shift": -1}]}],
  "entities": [{
    "code": "XX", "name": "Testland", "aliases": ["Testia"], "weekend": ["saturday", "sunday"],
    "categories": ["public"], "default_policy": "sat_fri",
    "subdivisions": [{"code": "N", "name": "North"}],
    "rules": [RULES]
  }]
}`

func parseWith(rules string) error {
	_, err := Parse([]byte(strings.Replace(tmpl, "RULES", rules, 1)), calendars.Default())
	return err
}

func TestParseValid(t *testing.T) {
	err := parseWith(`{"id":"a","name":"A","kind":"fixed","month":2,"day":29,"leap_day":"clamp"},
		{"id":"b","name":"B","kind":"calendar","calendar":"hebrew","event":"purim","subdivisions":["N"]}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"feb30":        `{"id":"a","name":"A","kind":"fixed","month":2,"day":30}`,
		"apr31":        `{"id":"a","name":"A","kind":"fixed","month":4,"day":31}`,
		"no kind":      `{"id":"a","name":"A","month":1,"day":1}`,
		"bad kind":     `{"id":"a","name":"A","kind":"lunar"}`,
		"dup id":       `{"id":"a","name":"A","kind":"fixed","month":1,"day":1},{"id":"a","name":"B","kind":"fixed","month":1,"day":2}`,
		"category":     `{"id":"a","name":"A","kind":"fixed","month":1,"day":1,"categories":["bank"]}`,
		"subdivision":  `{"id":"a","name":"A","kind":"fixed","month":1,"day":1,"subdivisions":["S"]}`,
		"policy":       `{"id":"a","name":"A","kind":"fixed","month":1,"day":1,"observed":"moon"}`,
		"event":        `{"id":"a","name":"A","kind":"calendar","calendar":"hebrew","event":"diwali"}`,
		"system":       `{"id":"a","name":"A","kind":"calendar","calendar":"mayan","event":"x"}`,
		"anchor event": `{"id":"a","name":"A","kind":"offset","offset":1,"anchor":{"kind":"calendar","calendar":"christian","event":"pentecost"}}`,
		"ordinal":      `{"id":"a","name":"A","kind":"nth_weekday","month":5,"weekday":"monday","ordinal":9}`,
		"weekday":      `{"id":"a","name":"A","kind":"nth_weekday","month":5,"weekday":"funday","ordinal":1}`,
		"missing name": `{"id":"a","kind":"fixed","month":1,"day":1}`,
	}
	for name, rules := range cases {
		if err := parseWith(rules); err == nil {
			t.Fatalf("%s: expected load failure", name)
		}
	}

	err := parseWith(`{"id":"feb","name":"A","kind":"fixed","month":2,"day":30}`)
	if e, ok := perr.As(err); !ok || e.Field() != "feb" || e.Code() != perr.ErrorCodeValidation {
		t.Fatalf("error should name the rule, got %v", err)
	}
}

func TestParseCatalogueLevel(t *testing.T) {
	dupAlias := strings.Replace(tmpl, `"aliases": ["Testia"]`, `"aliases": ["xx"]`, 1)
	if _, err := Parse([]byte(strings.Replace(dupAlias, "RULES", "", 1)), calendars.Default()); err == nil {
		t.Fatalf("alias colliding with code should fail")
	}
	badDefault := strings.Replace(tmpl, `"default_policy": "sat_fri"`, `"default_policy": "nope"`, 1)
	if _, err := Parse([]byte(strings.Replace(badDefault, "RULES", "", 1)), calendars.Default()); err == nil {
		t.Fatalf("unknown default policy should fail")
	}
	badCat := strings.Replace(tmpl, `"categories": ["public"], "default_policy"`, `"categories": ["holy"], "default_policy"`, 1)
	if _, err := Parse([]byte(strings.Replace(badCat, "RULES", "", 1)), calendars.Default()); err == nil {
		t.Fatalf("unknown entity category should fail")
	}
	if _, err := Parse([]byte(`{`), calendars.Default()); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("broken JSON should be a json error, got %v", err)
	}
	if _, err := Parse([]byte(`{"version":1,"categories":["public"],"entities":[]}`), calendars.Default()); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("empty entity list should fail validation, got %v", err)
	}
}
