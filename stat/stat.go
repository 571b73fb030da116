package stat

import (
	"sort"
	"strings"
)

// Handler aggregates labeled feature lines: "label f1 f2 ...".
type Handler struct {
	stats Stats

	// per feature, lines carrying it by label
	features map[string]map[string]int
}

type Stats struct {
	NumRecords int
	Labels     map[string]int
}

// LabelCount is the number of records of a label.
type LabelCount struct {
	Label string
	Count int
}

func NewHandler() *Handler {
	return &Handler{
		stats:    Stats{Labels: map[string]int{}},
		features: map[string]map[string]int{},
	}
}

func (h *Handler) Get() Stats {
	return h.stats
}

// Aggregate adds one record. The first field is the label, the rest are
// features. Repeated features count once.
func (h *Handler) Aggregate(fields []string) {
	if len(fields) == 0 {
		return
	}
	label := fields[0]
	h.stats.NumRecords++
	h.stats.Labels[label]++

	seen := map[string]struct{}{}
	for _, f := range fields[1:] {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}

		byLabel, ok := h.features[f]
		if !ok {
			byLabel = map[string]int{}
			h.features[f] = byLabel
		}
		byLabel[label]++
	}
}

// Sorted returns the label counts, most frequent first. Labels in exclude
// are left out.
func (s Stats) Sorted(exclude ...string) []LabelCount {
	var counts []LabelCount
	for l, n := range s.Labels {
		if contains(exclude, l) {
			continue
		}
		counts = append(counts, LabelCount{Label: l, Count: n})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Label < counts[j].Label
	})
	return counts
}

// Score is the quality of one feature as a predictor of the positive
// label.
type Score struct {
	Feature        string
	TP, TN, FP, FN int
}

// Precision is 1 when the feature never fires.
func (s Score) Precision() float64 {
	return ratio(s.TP, s.TP+s.FP)
}

func (s Score) Recall() float64 {
	return ratio(s.TP, s.TP+s.FN)
}

func (s Score) F1() float64 {
	return ratio(2*s.TP, 2*s.TP+s.FP+s.FN)
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 1.0
	}
	return float64(a) / float64(b)
}

// Evaluate scores every feature seen, sorted by name: a positive record
// with the feature is a true positive, a negative one a false positive.
// Records with other labels count as true negatives. Features with one of
// the skip prefixes are left out.
func (h *Handler) Evaluate(positive, negative string, skip ...string) []Score {
	pos := h.stats.Labels[positive]

	var scores []Score
	for f, byLabel := range h.features {
		if f == positive || f == negative || hasPrefix(f, skip) {
			continue
		}
		s := Score{Feature: f, TP: byLabel[positive], FP: byLabel[negative]}
		s.FN = pos - s.TP
		s.TN = h.stats.NumRecords - s.TP - s.FP - s.FN
		scores = append(scores, s)
	}

	sort.Slice(scores, func(i, j int) bool { return scores[i].Feature < scores[j].Feature })
	return scores
}

func hasPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}
