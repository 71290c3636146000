// ABOUTME: Scoring for the extraction benchmark
// ABOUTME: Deterministic comparisons of intents, stored records, replies and context against ground truth

package extraction

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harper/daily-coach/internal/models"
)

// PassThreshold is the overall score a scenario needs to pass
const PassThreshold = 0.8

// Result is the outcome of one scenario
type Result struct {
	ScenarioID         string                 `json:"scenario_id"`
	ScenarioName       string                 `json:"scenario_name"`
	IntentAccuracy     float64                `json:"intent_accuracy"`
	ExtractionScore    float64                `json:"extraction_score"`
	FaithfulnessScore  float64                `json:"faithfulness_score"`
	ContextRecallScore float64                `json:"context_recall_score"`
	OverallScore       float64                `json:"overall_score"`
	Status             string                 `json:"status"` // "PASS" or "FAIL"
	Details            map[string]interface{} `json:"details"`
	ErrorMessage       string                 `json:"error_message,omitempty"`
}

// Observation is what the runner saw after playing a scenario
type Observation struct {
	Intents       []models.Intent
	FinalResponse string
	Context       string
	Routines      []models.Routine
	Tasks         []models.Task
	Activities    []models.Activity
}

// MetricsCalculator computes scores for benchmark scenarios
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateIntentAccuracy is the fraction of turns routed as labelled
func (m *MetricsCalculator) CalculateIntentAccuracy(turns []Turn, got []models.Intent) (float64, string) {
	if len(turns) == 0 {
		return 1.0, "No turns to classify"
	}

	correct := 0
	var misses []string
	for i, turn := range turns {
		if i < len(got) && got[i] == turn.WantIntent {
			correct++
			continue
		}
		actual := models.Intent("none")
		if i < len(got) {
			actual = got[i]
		}
		misses = append(misses, fmt.Sprintf("%q: want %s, got %s", turn.Message, turn.WantIntent, actual))
	}

	accuracy := float64(correct) / float64(len(turns))
	if len(misses) == 0 {
		return 1.0, "Every turn routed to its labelled intent"
	}
	return accuracy, fmt.Sprintf("Misrouted turns: %s", strings.Join(misses, "; "))
}

// CalculateExtraction scores stored records against the expected ones as
// an F1 over routine keys, task matches and activity categories
func (m *MetricsCalculator) CalculateExtraction(truth GroundTruth, obs Observation) (float64, string) {
	var want, got []string

	want = append(want, truth.Routines...)
	for _, r := range obs.Routines {
		if r.Active {
			got = append(got, r.Key())
		}
	}

	for _, t := range truth.Tasks {
		want = append(want, "task:"+strings.ToLower(t.NameContains)+"@"+t.Time)
	}
	for _, t := range obs.Tasks {
		label := "task:" + strings.ToLower(t.Name) + "@" + t.Time
		for _, expected := range truth.Tasks {
			if strings.Contains(strings.ToLower(t.Name), strings.ToLower(expected.NameContains)) && t.Time == expected.Time {
				label = "task:" + strings.ToLower(expected.NameContains) + "@" + expected.Time
				break
			}
		}
		got = append(got, label)
	}

	for category, n := range truth.Activities {
		for i := 0; i < n; i++ {
			want = append(want, fmt.Sprintf("activity:%s#%d", category, i))
		}
	}
	seen := make(map[models.ActivityCategory]int)
	for _, a := range obs.Activities {
		got = append(got, fmt.Sprintf("activity:%s#%d", a.Category, seen[a.Category]))
		seen[a.Category]++
	}

	if len(want) == 0 && len(got) == 0 {
		return 1.0, "Nothing expected, nothing stored"
	}

	matched, missing, extra := compareLabels(want, got)
	precision := ratio(matched, len(got))
	recall := ratio(matched, len(want))
	if precision+recall == 0 {
		return 0.0, fmt.Sprintf("No expected records stored - missing: %v, unexpected: %v", missing, extra)
	}

	f1 := 2 * precision * recall / (precision + recall)
	if len(missing) == 0 && len(extra) == 0 {
		return 1.0, "Stored records match exactly"
	}
	return f1, fmt.Sprintf("Record mismatch (precision %.2f, recall %.2f) - missing: %v, unexpected: %v",
		precision, recall, missing, extra)
}

// CalculateFaithfulness checks the final reply for required and forbidden strings
func (m *MetricsCalculator) CalculateFaithfulness(
	response string,
	expectedInResponse []string,
	forbiddenInResponse []string,
) (float64, string) {
	responseUpper := strings.ToUpper(response)

	missingItems := []string{}
	for _, expected := range expectedInResponse {
		if !strings.Contains(responseUpper, strings.ToUpper(expected)) {
			missingItems = append(missingItems, expected)
		}
	}

	forbiddenFound := []string{}
	for _, forbidden := range forbiddenInResponse {
		if strings.Contains(responseUpper, strings.ToUpper(forbidden)) {
			forbiddenFound = append(forbiddenFound, forbidden)
		}
	}

	switch {
	case len(missingItems) == 0 && len(forbiddenFound) == 0:
		return 1.0, "Reply matches expected ground truth"
	case len(missingItems) > 0 && len(forbiddenFound) > 0:
		return 0.0, fmt.Sprintf("Reply missing expected items: %v, forbidden items found: %v", missingItems, forbiddenFound)
	case len(missingItems) > 0:
		return 0.5, fmt.Sprintf("Reply missing expected items: %v", missingItems)
	default:
		return 0.5, fmt.Sprintf("Reply contains forbidden items: %v", forbiddenFound)
	}
}

// CalculateContextRecall is the fraction of expected items found in the digest
func (m *MetricsCalculator) CalculateContextRecall(context string, expectedContextItems []string) (float64, string) {
	if len(expectedContextItems) == 0 {
		return 1.0, "No context expectations"
	}

	contextUpper := strings.ToUpper(context)
	foundCount := 0
	missingItems := []string{}
	for _, item := range expectedContextItems {
		if strings.Contains(contextUpper, strings.ToUpper(item)) {
			foundCount++
		} else {
			missingItems = append(missingItems, item)
		}
	}

	recall := float64(foundCount) / float64(len(expectedContextItems))
	if recall == 1.0 {
		return 1.0, "All expected items present in context"
	}
	return recall, fmt.Sprintf("Partial context recall (%.2f) - missing items: %v", recall, missingItems)
}

// Evaluate scores one scenario. The overall score is the mean of the four
// metrics.
func (m *MetricsCalculator) Evaluate(scenario Scenario, obs Observation) Result {
	intent, intentDetail := m.CalculateIntentAccuracy(scenario.Turns, obs.Intents)
	extraction, extractionDetail := m.CalculateExtraction(scenario.GroundTruth, obs)
	faithfulness, faithfulnessDetail := m.CalculateFaithfulness(
		obs.FinalResponse,
		scenario.GroundTruth.ExpectedInResponse,
		scenario.GroundTruth.ForbiddenInResponse,
	)
	recall, recallDetail := m.CalculateContextRecall(obs.Context, scenario.GroundTruth.ExpectedContextItems)

	overall := (intent + extraction + faithfulness + recall) / 4
	status := "FAIL"
	if overall >= PassThreshold {
		status = "PASS"
	}

	return Result{
		ScenarioID:         scenario.ID,
		ScenarioName:       scenario.Name,
		IntentAccuracy:     intent,
		ExtractionScore:    extraction,
		FaithfulnessScore:  faithfulness,
		ContextRecallScore: recall,
		OverallScore:       overall,
		Status:             status,
		Details: map[string]interface{}{
			"intent":         intentDetail,
			"extraction":     extractionDetail,
			"faithfulness":   faithfulnessDetail,
			"context_recall": recallDetail,
			"final_response": obs.FinalResponse,
		},
	}
}

// compareLabels matches labels as multisets
func compareLabels(want, got []string) (matched int, missing, extra []string) {
	remaining := make(map[string]int)
	for _, g := range got {
		remaining[g]++
	}
	for _, w := range want {
		if remaining[w] > 0 {
			remaining[w]--
			matched++
		} else {
			missing = append(missing, w)
		}
	}
	for label, n := range remaining {
		for i := 0; i < n; i++ {
			extra = append(extra, label)
		}
	}
	sort.Strings(extra)
	return matched, missing, extra
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
