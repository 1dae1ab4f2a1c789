package models

// 질문 분류 결과
type Intent string

const (
	IntentPolicy  Intent = "policy"
	IntentHR      Intent = "hr"
	IntentHybrid  Intent = "hybrid"
	IntentUnknown Intent = "unknown"
)

// /ask 응답 바디
type AnswerResponse struct {
	Answer             string         `json:"answer" example:"With 2 years of service your overtime rate is 1.50x."`
	Intent             Intent         `json:"intent" example:"policy"`
	HRFacts            map[string]any `json:"hr_facts"`
	UsedPolicy         bool           `json:"used_policy" example:"true"`
	ComputedMultiplier string         `json:"computed_multiplier,omitempty" example:"1.50x"`
}
