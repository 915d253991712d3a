package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

const validDoc = `{
  "assessmentId": "apest-test",
  "name": "Test Instrument",
  "version": "1.2.0",
  "questions": [
    {"id": "ap-1", "type": "scale", "dimension": "apostolic"},
    {"id": "pr-1", "type": "scale", "dimension": "prophetic"},
    {"id": "ev-1", "type": "scale", "dimension": "evangelistic"},
    {"id": "sh-1", "type": "scale", "dimension": "shepherding", "reverseScored": true},
    {"id": "te-1", "type": "scale", "dimension": "teaching", "weight": 2}
  ]
}`

func TestParseAppliesDefaults(t *testing.T) {
	c, err := Parse([]byte(validDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	q := c.Question("ap-1")
	if q == nil {
		t.Fatal("question ap-1 missing")
	}
	if q.Weight != 1 {
		t.Errorf("default weight = %g, want 1", q.Weight)
	}
	if q.Domain != (ValueDomain{Min: 1, Max: 5}) {
		t.Errorf("default domain = %+v, want [1,5]", q.Domain)
	}
	if c.Question("te-1").Weight != 2 {
		t.Errorf("explicit weight lost: %g", c.Question("te-1").Weight)
	}
	if !c.Question("sh-1").ReverseScored {
		t.Error("reverseScored flag lost")
	}
}

func TestParseRejectsBadShape(t *testing.T) {
	bad := []string{
		`{`, // malformed JSON
		`{"assessmentId": "x", "version": "1.0.0", "questions": []}`,                                          // empty questions
		`{"assessmentId": "x", "version": "1.0.0", "questions": [{"id": "q", "type": "essay", "dimension": "teaching"}]}`, // bad type enum
		`{"version": "1.0.0", "questions": [{"id": "q", "type": "scale", "dimension": "teaching"}]}`,          // missing assessmentId
		`{"assessmentId": "x", "version": "1.0.0", "questions": [{"id": "q", "type": "scale", "dimension": "teaching", "weight": 0}]}`, // zero weight
	}
	for i, doc := range bad {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("case %d: Parse succeeded, want error", i)
		}
	}
}

func TestLoadDirPicksHighestVersion(t *testing.T) {
	dir := t.TempDir()
	write := func(name, version string) {
		doc := `{"assessmentId": "apest-test", "version": "` + version + `", "questions": [
			{"id": "ap-1", "type": "scale", "dimension": "apostolic"},
			{"id": "pr-1", "type": "scale", "dimension": "prophetic"},
			{"id": "ev-1", "type": "scale", "dimension": "evangelistic"},
			{"id": "sh-1", "type": "scale", "dimension": "shepherding"},
			{"id": "te-1", "type": "scale", "dimension": "teaching"}
		]}`
		if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("old.json", "1.2.0")
	write("new.json", "1.10.0")
	write("prefixed.json", "v1.3.0")

	cats, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	c, ok := cats["apest-test"]
	if !ok {
		t.Fatal("assessment apest-test not loaded")
	}
	if c.Version != "1.10.0" {
		t.Errorf("selected version %s, want 1.10.0 (semver, not lexical)", c.Version)
	}
}
