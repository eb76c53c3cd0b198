// Command shadow_compare replays read-only requests against the legacy
// scheduling backend and this API side by side and reports divergences.
// Used while cutting traffic over; bodies are compared as normalized JSON
// with volatile keys stripped.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type targetsFile struct {
	Targets []target `json:"targets"`
}

type result struct {
	Target       target
	NewStatus    int
	LegacyStatus int
	StatusMatch  bool
	BodyMatch    bool
	NewDuration  time.Duration
	LegacyDur    time.Duration
	Err          error
}

// volatileKeys are generated per-system and never expected to match.
var volatileKeys = map[string]bool{
	"id":          true,
	"booking_uid": true,
	"created_at":  true,
	"updated_at":  true,
}

func main() {
	var (
		newBase     string
		legacyBase  string
		targetsPath string
		timeout     time.Duration
	)
	flag.StringVar(&newBase, "new-base", "http://localhost:8080/api", "new API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:8000/api", "legacy API base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "per-request timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	breaking := 0
	results := make([]result, 0, len(targets))
	for _, tgt := range targets {
		res := compare(client, newBase, legacyBase, tgt)
		if tgt.Critical && (res.Err != nil || !res.StatusMatch || !res.BodyMatch) {
			breaking++
		}
		results = append(results, res)
	}

	report(results)
	fmt.Printf("breaking diffs: %d\n", breaking)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets in %s", path)
	}
	return file.Targets, nil
}

func compare(client *http.Client, newBase, legacyBase string, tgt target) result {
	res := result{Target: tgt}

	newBody, newStatus, newDur, err := fetch(client, newBase, tgt)
	if err != nil {
		res.Err = fmt.Errorf("new api: %w", err)
		return res
	}
	legacyBody, legacyStatus, legacyDur, err := fetch(client, legacyBase, tgt)
	if err != nil {
		res.Err = fmt.Errorf("legacy api: %w", err)
		return res
	}

	res.NewStatus = newStatus
	res.LegacyStatus = legacyStatus
	res.NewDuration = newDur
	res.LegacyDur = legacyDur
	res.StatusMatch = newStatus == legacyStatus
	res.BodyMatch = bodiesEqual(newBody, legacyBody)
	return res
}

func fetch(client *http.Client, base string, tgt target) ([]byte, int, time.Duration, error) {
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return nil, 0, 0, err
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, 0, err
	}
	return body, resp.StatusCode, time.Since(start), nil
}

func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	scrub(&aj)
	scrub(&bj)
	return reflect.DeepEqual(aj, bj)
}

// scrub drops volatile keys and collapses float64 integers so the two
// backends' JSON normalizes to the same shape.
func scrub(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k := range val {
			if volatileKeys[k] {
				delete(val, k)
			}
		}
		for k, inner := range val {
			scrub(&inner)
			val[k] = inner
		}
	case []interface{}:
		for i, inner := range val {
			scrub(&inner)
			val[i] = inner
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func report(results []result) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("=====================")
	for _, res := range results {
		status := "OK"
		switch {
		case res.Err != nil:
			status = "ERROR"
		case !res.StatusMatch || !res.BodyMatch:
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		if res.Err != nil {
			fmt.Printf("  error: %v\n", res.Err)
			continue
		}
		fmt.Printf("  new: %d (%s) | legacy: %d (%s)\n", res.NewStatus, res.NewDuration, res.LegacyStatus, res.LegacyDur)
		fmt.Printf("  status match: %t | body match: %t | critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
	}
}
