package analyzer

import "math"

// Posture question keys recognized in the questionnaire.
const (
	QuestionWebhooks   = "webhooks"
	QuestionSandboxEnv = "sandbox_env"
	QuestionRetries    = "retries"
)

// PostureQuestions lists the recognized keys. The posture score always divides by its length.
var PostureQuestions = []string{QuestionWebhooks, QuestionSandboxEnv, QuestionRetries}

// DataScore is the data-quality category score. Structural and type checks are not implemented yet,
// so every dataset receives full marks.
const DataScore = 100

// Category weights of the overall score.
const (
	weightData     = 0.25
	weightCoverage = 0.35
	weightRules    = 0.30
	weightPosture  = 0.10
)

// Questionnaire holds the self-assessment answers keyed by question.
type Questionnaire map[string]bool

// QuestionnaireFrom converts loosely typed answers, e.g. decoded JSON, using Truthy.
func QuestionnaireFrom(raw map[string]any) Questionnaire {
	q := make(Questionnaire, len(raw))
	for k, v := range raw {
		q[k] = Truthy(v)
	}
	return q
}

// CalculateScores derives the category scores and the weighted overall score.
// Each category is rounded on its own, and overall is computed from the rounded categories.
// Rounding is half away from zero.
func CalculateScores(cov Coverage, findings []RuleFinding, q Questionnaire) Scores {
	s := Scores{Data: DataScore}

	if total := cov.Total(); total > 0 {
		s.Coverage = percent((float64(len(cov.Matched)) + float64(len(cov.Close))*0.5) / float64(total))
	}

	passing := 0
	for _, f := range findings {
		if f.OK {
			passing++
		}
	}
	s.Rules = percent(float64(passing) / RuleCount)

	answered := 0
	for _, key := range PostureQuestions {
		if q[key] {
			answered++
		}
	}
	s.Posture = percent(float64(answered) / float64(len(PostureQuestions)))

	// Explicit conversions keep each product rounded, so no platform fuses them into FMA.
	s.Overall = int(math.Round(
		float64(float64(s.Data)*weightData) +
			float64(float64(s.Coverage)*weightCoverage) +
			float64(float64(s.Rules)*weightRules) +
			float64(float64(s.Posture)*weightPosture),
	))
	return s
}

func percent(ratio float64) int {
	return int(math.Round(ratio * 100))
}
