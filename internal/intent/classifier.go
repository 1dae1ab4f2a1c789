// Package intent labels a question with the data sources it needs.
package intent

import (
	"strings"

	"HRPolicyGateway/internal/models"
)

type signal int

const (
	signalHR signal = iota
	signalPolicy
)

// 키워드 테이블 (소문자, 부분 문자열 매칭)
var keywords = []struct {
	phrase string
	kind   signal
}{
	{"date of birth", signalHR},
	{"dob", signalHR},
	{"manager", signalHR},
	{"title", signalHR},
	{"salary", signalHR},
	{"pto", signalHR},
	{"pto balance", signalHR},
	{"years of service", signalHR},
	{"years", signalHR},
	{"start date", signalHR},
	{"email", signalHR},
	{"phone", signalHR},
	{"employee id", signalHR},

	{"overtime", signalPolicy},
	{"leave policy", signalPolicy},
	{"travel policy", signalPolicy},
	{"expense policy", signalPolicy},
	{"holiday", signalPolicy},
	{"paid time off", signalPolicy},
	{"policy", signalPolicy},
}

// Classify is total and deterministic. Text with no signal at all falls back
// to hybrid so both sources are consulted.
func Classify(question string) models.Intent {
	q := strings.ToLower(question)

	var hr, policy bool
	for _, k := range keywords {
		if !strings.Contains(q, k.phrase) {
			continue
		}
		switch k.kind {
		case signalHR:
			hr = true
		case signalPolicy:
			policy = true
		}
	}

	switch {
	case hr && policy:
		return models.IntentHybrid
	case hr:
		return models.IntentHR
	case policy:
		return models.IntentPolicy
	default:
		return models.IntentHybrid
	}
}

// MentionsOvertime reports whether the overtime rule applies to the question.
func MentionsOvertime(question string) bool {
	return strings.Contains(strings.ToLower(question), "overtime")
}
