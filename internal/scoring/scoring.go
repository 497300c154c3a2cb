/*
PURPOSE:
  Validation strategies applied to the text of every run.
  SchemaCheck is a strict structural check; HeuristicScore is a crude lexical score.

REQUIREMENTS:
  User-specified:
  - Schema check: JSON object with insights, risk, next_action; insights has exactly 3 items.
  - Heuristic score: 7 fixed tokens, case-insensitive, 0-100.

  Implementation-discovered:
  - Both strategies must stay selectable and recorded separately.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine, internal/cli (score command)
  - Writes into: internal/model.RunResult

ERROR HANDLING:
  - Validators never fail. An unparseable text is a data point, not an error.

IMPLEMENTATION RULES:
  - No deep value checks; insights members are not type-checked.
  - The heuristic truncates, it does not round.

USAGE:
  v, err := scoring.Lookup("schema")
  sig := v.Validate(text)
  sig.Record(&result)

SELF-HEALING INSTRUCTIONS:
  - If the prompt schema changes, update RequiredKeys and InsightCount.

RELATED FILES:
  - internal/config/presets.go (DefaultPrompt)

MAINTENANCE:
  - Register new strategies in Lookup.
*/

package scoring

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/daryltucker/prompt-sweep/internal/model"
)

const (
	NameSchema    = "schema"
	NameAdherence = "adherence"
)

// RequiredKeys must all be present in a schema-valid response.
var RequiredKeys = []string{"insights", "risk", "next_action"}

// InsightCount is the exact length required of the insights array.
const InsightCount = 3

// AdherenceTokens are searched for in lower-cased text.
var AdherenceTokens = []string{"1)", "2)", "3)", "insight", "risk", "action", "next action"}

// Signal is the outcome of one validator. Exactly one of Valid or Score is set.
type Signal struct {
	Strategy string
	Valid    *bool
	Score    *int
}

// Record copies the signal into the matching result field.
func (s Signal) Record(r *model.RunResult) {
	if s.Valid != nil {
		v := *s.Valid
		r.JSONValid = &v
	}
	if s.Score != nil {
		v := *s.Score
		r.Adherence = &v
	}
}

func (s Signal) String() string {
	switch {
	case s.Valid != nil:
		return fmt.Sprintf("%s=%t", s.Strategy, *s.Valid)
	case s.Score != nil:
		return fmt.Sprintf("%s=%d", s.Strategy, *s.Score)
	}
	return s.Strategy + "=n/a"
}

// Validator turns response text into a validity or quality signal.
type Validator interface {
	Name() string
	Validate(text string) Signal
}

// SchemaCheck is the strict boolean check.
type SchemaCheck struct{}

func (SchemaCheck) Name() string { return NameSchema }

func (SchemaCheck) Validate(text string) Signal {
	ok := SchemaValid(text)
	return Signal{Strategy: NameSchema, Valid: &ok}
}

// HeuristicScore is the 0-100 lexical adherence score.
type HeuristicScore struct{}

func (HeuristicScore) Name() string { return NameAdherence }

func (HeuristicScore) Validate(text string) Signal {
	score := AdherenceScore(text)
	return Signal{Strategy: NameAdherence, Score: &score}
}

// SchemaValid reports whether text is a JSON object carrying the required keys
// with an insights array of exactly InsightCount members.
func SchemaValid(text string) bool {
	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return false
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return false
	}
	for _, key := range RequiredKeys {
		if _, ok := obj[key]; !ok {
			return false
		}
	}
	insights, ok := obj["insights"].([]any)
	if !ok {
		return false
	}
	return len(insights) == InsightCount
}

// AdherenceScore counts how many AdherenceTokens appear in text.
func AdherenceScore(text string) int {
	lower := strings.ToLower(text)
	matches := 0
	for _, token := range AdherenceTokens {
		if strings.Contains(lower, token) {
			matches++
		}
	}
	return min(100, matches*100/len(AdherenceTokens))
}

var registry = map[string]Validator{
	NameSchema:     SchemaCheck{},
	"schema-check": SchemaCheck{},
	NameAdherence:  HeuristicScore{},
	"heuristic":    HeuristicScore{},
}

// Lookup resolves a validator by name or alias.
func Lookup(name string) (Validator, error) {
	v, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown validator %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return v, nil
}

// LookupAll resolves names in order, dropping duplicates of the same strategy.
func LookupAll(names []string) ([]Validator, error) {
	seen := make(map[string]bool)
	var out []Validator
	for _, name := range names {
		v, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		if seen[v.Name()] {
			continue
		}
		seen[v.Name()] = true
		out = append(out, v)
	}
	return out, nil
}

// Names lists registered names and aliases.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
