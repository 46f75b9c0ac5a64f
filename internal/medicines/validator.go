// Package medicines validates requested medicine names against the
// authorized reference list.
//
// Matching tries, in order: an exact name, a normalised name (lower case,
// hyphens as spaces, collapsed whitespace), and a fuzzy edit-similarity scan
// over every reference name. The fuzzy scan is linear in the reference size,
// so a batch costs O(items x references).
package medicines

import (
	"math"
	"sort"
	"strings"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// RejectionReason is attached to every rejected medicine.
const RejectionReason = "Not found in authorized medicines database"

// searchThreshold is the similarity above which Search reports a reference entry.
const searchThreshold = 0.6

// Verdict is the result of validating one name.
type Verdict struct {
	Authorized bool
	Match      *domain.AuthorizedMedicine
	Confidence float64
}

// Validator matches names against an immutable reference list.
// It is safe for concurrent use.
type Validator struct {
	entries    []domain.AuthorizedMedicine
	normalised []string
	exact      map[string]int
	byNorm     map[string]int
	threshold  float64
}

// New indexes the reference list. A threshold of 0 or less uses the default.
// When names repeat, the first entry wins.
func New(entries []domain.AuthorizedMedicine, threshold float64) *Validator {
	if threshold <= 0 {
		threshold = domain.DefaultMinConfidence
	}
	v := &Validator{
		entries:    make([]domain.AuthorizedMedicine, 0, len(entries)),
		normalised: make([]string, 0, len(entries)),
		exact:      make(map[string]int, len(entries)),
		byNorm:     make(map[string]int, len(entries)),
		threshold:  threshold,
	}
	for _, e := range entries {
		name := strings.TrimSpace(e.INNName)
		if name == "" {
			continue
		}
		if _, dup := v.exact[name]; dup {
			continue
		}
		e.INNName = name
		idx := len(v.entries)
		v.entries = append(v.entries, e)
		norm := Normalize(name)
		v.normalised = append(v.normalised, norm)
		v.exact[name] = idx
		if _, ok := v.byNorm[norm]; !ok {
			v.byNorm[norm] = idx
		}
	}
	return v
}

// Size returns the number of indexed reference entries.
func (v *Validator) Size() int {
	return len(v.entries)
}

// Threshold returns the fuzzy acceptance threshold.
func (v *Validator) Threshold() float64 {
	return v.threshold
}

// Normalize lower-cases a name, turns hyphens into spaces and collapses whitespace.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(strings.ToLower(name), "-", " ")), " ")
}

// Validate checks one name. Dosage and form are accepted for interface
// completeness but do not affect the verdict.
func (v *Validator) Validate(name, _, _ string) Verdict {
	name = strings.TrimSpace(name)
	if name == "" {
		return Verdict{}
	}

	if idx, ok := v.exact[name]; ok {
		return v.hit(idx, 1)
	}

	norm := Normalize(name)
	if idx, ok := v.byNorm[norm]; ok {
		return v.hit(idx, 1)
	}

	lower := strings.ToLower(name)
	best, bestIdx := 0.0, -1
	for i, e := range v.entries {
		score := math.Max(
			Similarity(lower, strings.ToLower(e.INNName)),
			Similarity(norm, v.normalised[i]),
		)
		if score > best {
			best, bestIdx = score, i
		}
	}

	if bestIdx >= 0 && best >= v.threshold {
		return v.hit(bestIdx, best)
	}
	return Verdict{Confidence: best}
}

func (v *Validator) hit(idx int, confidence float64) Verdict {
	match := v.entries[idx]
	return Verdict{Authorized: true, Match: &match, Confidence: confidence}
}

// FilterAuthorized partitions queries into authorized and rejected sets.
// A query is authorized when it validates with confidence at least
// minConfidence (0 or less uses the validator threshold). Both results are
// non-nil and preserve input order.
func (v *Validator) FilterAuthorized(queries []domain.MedicineQuery, minConfidence float64) (authorized, rejected []domain.ValidatedMedicine) {
	if minConfidence <= 0 {
		minConfidence = v.threshold
	}
	authorized = []domain.ValidatedMedicine{}
	rejected = []domain.ValidatedMedicine{}

	for _, q := range queries {
		verdict := v.Validate(q.Name, q.Dosage, q.Form)
		out := domain.ValidatedMedicine{MedicineQuery: q, Confidence: verdict.Confidence}
		if verdict.Authorized && verdict.Confidence >= minConfidence {
			out.MatchedReference = verdict.Match
			authorized = append(authorized, out)
			continue
		}
		out.RejectionReason = RejectionReason
		rejected = append(rejected, out)
	}
	return authorized, rejected
}

// Report validates queries and summarises the outcome. The authorization
// rate is a percentage rounded to two decimals.
func (v *Validator) Report(queries []domain.MedicineQuery, minConfidence float64) *domain.ValidationReport {
	authorized, rejected := v.FilterAuthorized(queries, minConfidence)
	report := &domain.ValidationReport{
		Total:           len(queries),
		AuthorizedCount: len(authorized),
		RejectedCount:   len(rejected),
		Authorized:      authorized,
		Rejected:        rejected,
		DatabaseSize:    v.Size(),
	}
	if len(queries) > 0 {
		report.AuthorizationRate = math.Round(float64(len(authorized))/float64(len(queries))*10000) / 100
	}
	return report
}

// Search returns reference entries whose normalised name contains or is
// contained in the query, or is more than 60% similar, best first.
// A limit of 0 or less returns every match.
func (v *Validator) Search(query string, limit int) []domain.AuthorizedMedicine {
	q := Normalize(query)
	if q == "" {
		return []domain.AuthorizedMedicine{}
	}

	type scored struct {
		idx   int
		score float64
	}
	var hits []scored
	for i, n := range v.normalised {
		score := Similarity(q, n)
		if strings.Contains(n, q) || strings.Contains(q, n) || score > searchThreshold {
			hits = append(hits, scored{idx: i, score: score})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].score > hits[b].score
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]domain.AuthorizedMedicine, len(hits))
	for i, h := range hits {
		out[i] = v.entries[h.idx]
	}
	return out
}

// QueriesFromItems converts line items into validator queries.
func QueriesFromItems(items []domain.LineItem) []domain.MedicineQuery {
	out := make([]domain.MedicineQuery, len(items))
	for i, it := range items {
		out[i] = domain.MedicineQuery{ItemNumber: it.ItemNumber, Name: it.Name, Dosage: it.Dosage, Form: it.Form}
	}
	return out
}
