package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"holidays/internal/platform/config"
	kit "holidays/internal/platform/testkit"
)

func TestRunText(t *testing.T) {
	var buf bytes.Buffer
	err := run(config.FromMap(nil), options{entity: "US", from: 2020, view: "all", format: "text"}, &buf)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	kit.MustContain(t, buf.String(), "2020-07-03  Independence Day (observed)")
	kit.MustContain(t, buf.String(), "2020-07-04  Independence Day")
}

func TestRunJSON(t *testing.T) {
	var buf bytes.Buffer
	err := run(config.FromMap(nil), options{entity: "GB", from: 2024, view: "observed", format: "json"}, &buf)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var days []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &days); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(days) != 8 {
		t.Fatalf("GB 2024 days = %d, want 8", len(days))
	}
}

func TestRunRejects(t *testing.T) {
	cases := map[string]options{
		"no entity":      {from: 2024, format: "text"},
		"bad view":       {entity: "US", from: 2024, view: "sideways", format: "text"},
		"bad format":     {entity: "US", from: 2024, format: "yaml"},
		"unknown entity": {entity: "ZZ", from: 2024, format: "text"},
	}
	for name, o := range cases {
		t.Run(name, func(t *testing.T) {
			if err := run(config.FromMap(nil), o, &bytes.Buffer{}); err == nil {
				t.Fatalf("run should fail")
			}
		})
	}
}

func TestDefaultsFromEnv(t *testing.T) {
	o := defaults(config.FromMap(nil))
	if o.view != "all" || o.format != "text" || o.from == 0 {
		t.Fatalf("defaults = %+v", o)
	}
	o = defaults(config.FromMap(map[string]string{
		"HOLIDAYS_DUMP_VIEW":   "Observed",
		"HOLIDAYS_DUMP_FORMAT": "JSON",
	}))
	if o.view != "observed" || o.format != "json" {
		t.Fatalf("env defaults = %+v", o)
	}
	kit.MustPanic(t, func() { defaults(config.FromMap(map[string]string{"HOLIDAYS_DUMP_FORMAT": "yaml"})) })
}
