package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"holidays/internal/core/calendars"
	"holidays/internal/core/catalog"
)

type coreFile struct {
	Version    int               `json:"version"`
	Meta       map[string]any    `json:"meta"`
	Categories []string          `json:"categories"`
	Policies   []json.RawMessage `json:"policies"`
}

type packed struct {
	Version    int               `json:"version"`
	Meta       map[string]any    `json:"meta,omitempty"`
	Categories []string          `json:"categories"`
	Policies   []json.RawMessage `json:"policies"`
	Entities   []json.RawMessage `json:"entities"`
}

func readJSON[T any](path string, into *T) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, into); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func findFragmentFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if d.IsDir() {
			if strings.HasPrefix(rel, "schema") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Base(path) == "core.json" && filepath.Dir(path) == root {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(path), ".json") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func pathExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func hasCore(dir string) bool {
	return pathExists(filepath.Join(dir, "core.json"))
}

func latestNumericSubdir(dir string) (string, bool) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	var nums []int
	for _, e := range ents {
		if !e.IsDir() {
			continue
		}
		n, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		if hasCore(filepath.Join(dir, e.Name())) {
			nums = append(nums, n)
		}
	}
	if len(nums) == 0 {
		return "", false
	}
	sort.Ints(nums)
	return filepath.Join(dir, strconv.Itoa(nums[len(nums)-1])), true
}

// resolveRoot tries, in order: flag, env, common locations.
// - If you pass ./catalog, it picks the latest numeric subdir containing core.json.
// - If you pass ./catalog/1, it uses that.
// Returns chosen root and an ordered list of attempts (for error messages)
func resolveRoot(flagRoot, envRoot string) (string, []string, error) {
	var attempts []string
	try := func(p string) (string, bool) {
		if p == "" {
			return "", false
		}
		attempts = append(attempts, p)
		if hasCore(p) {
			return p, true
		}
		if sub, ok := latestNumericSubdir(p); ok {
			attempts = append(attempts, sub)
			return sub, true
		}
		return "", false
	}

	for _, c := range []string{flagRoot, envRoot, "./catalog", "/app/catalog"} {
		if root, ok := try(strings.TrimSpace(c)); ok {
			return root, attempts, nil
		}
	}
	return "", attempts, errors.New("core.json not found in any known location")
}

// assemble merges core.json with every entity fragment under root, sorted by
// entity code, and proves the result loads
func assemble(root string) (packed, []byte, error) {
	var core coreFile
	if err := readJSON(filepath.Join(root, "core.json"), &core); err != nil {
		return packed{}, nil, fmt.Errorf("read core.json: %w", err)
	}

	fragPaths, err := findFragmentFiles(root)
	if err != nil {
		return packed{}, nil, err
	}
	if len(fragPaths) == 0 {
		return packed{}, nil, errors.New("no entity fragments found under " + root)
	}

	type frag struct {
		code string
		path string
		raw  json.RawMessage
	}
	var frags []frag
	seen := map[string]string{}
	for _, p := range fragPaths {
		var raw json.RawMessage
		if err := readJSON(p, &raw); err != nil {
			return packed{}, nil, err
		}
		var head struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return packed{}, nil, fmt.Errorf("decode %s: %w", p, err)
		}
		code := strings.ToUpper(strings.TrimSpace(head.Code))
		if code == "" {
			return packed{}, nil, fmt.Errorf("fragment missing code: %s", p)
		}
		if prev, dup := seen[code]; dup {
			return packed{}, nil, fmt.Errorf("entity %s defined twice: %s and %s", code, prev, p)
		}
		seen[code] = p
		frags = append(frags, frag{code: code, path: p, raw: raw})
	}
	sort.Slice(frags, func(i, j int) bool { return frags[i].code < frags[j].code })

	out := packed{
		Version:    core.Version,
		Meta:       core.Meta,
		Categories: core.Categories,
		Policies:   core.Policies,
	}
	for _, f := range frags {
		out.Entities = append(out.Entities, f.raw)
	}

	enc, err := json.Marshal(out)
	if err != nil {
		return packed{}, nil, err
	}
	if _, err := catalog.Parse(enc, calendars.Default()); err != nil {
		return packed{}, nil, fmt.Errorf("packed catalogue does not load: %w", err)
	}
	return out, enc, nil
}
