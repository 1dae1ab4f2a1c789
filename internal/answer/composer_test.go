package answer

import (
	"context"
	"errors"
	"testing"

	"HRPolicyGateway/internal/facts"
	"HRPolicyGateway/internal/models"
	"HRPolicyGateway/internal/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var sampleFacts = facts.Bag{{Field: models.FieldYears, Value: 2.0}}

func TestPrompt_PolicyOmitsFacts(t *testing.T) {
	c := NewComposer(nil)
	p, err := c.Prompt(Request{
		Intent:   models.IntentPolicy,
		Question: "How is overtime computed?",
		Snippets: []string{"Employees with exactly 2 years receive 1.5x."},
		Facts:    sampleFacts,
	})
	require.NoError(t, err)
	assert.Contains(t, p, "ONLY the policy context")
	assert.Contains(t, p, "Employees with exactly 2 years receive 1.5x.")
	assert.Contains(t, p, "Q: How is overtime computed?")
	assert.NotContains(t, p, "years: 2")
}

func TestPrompt_HROmitsPolicy(t *testing.T) {
	c := NewComposer(nil)
	p, err := c.Prompt(Request{
		Intent:   models.IntentHR,
		User:     "carol",
		Question: "Who is my manager?",
		Snippets: []string{"secret policy text"},
		Facts:    facts.Bag{{Field: models.FieldManager, Value: "dave"}},
	})
	require.NoError(t, err)
	assert.Contains(t, p, "- manager: dave")
	assert.NotContains(t, p, "secret policy text")
}

func TestPrompt_HybridIncludesBothAndDerived(t *testing.T) {
	c := NewComposer(nil)
	p, err := c.Prompt(Request{
		Intent:   models.IntentHybrid,
		User:     "carol",
		Question: "Given my 2 years, what overtime am I eligible for?",
		Facts:    sampleFacts,
		Derived:  map[string]string{"overtime_multiplier": "1.50x"},
	})
	require.NoError(t, err)
	assert.Contains(t, p, "- years: 2")
	assert.Contains(t, p, "(no policy context found)")
	assert.Contains(t, p, "- overtime_multiplier: 1.50x")
}

func TestPrompt_UnknownIntent(t *testing.T) {
	_, err := NewComposer(nil).Prompt(Request{Intent: models.IntentUnknown})
	require.ErrorIs(t, err, ErrNoTemplate)
}

func TestCompose_DelegatesOnceAndReturnsTextUnmodified(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return("  Your rate is 1.50x.\n", nil).
		Times(1)

	out, err := NewComposer(completer).Compose(context.Background(), Request{Intent: models.IntentPolicy, Question: "q"})
	require.NoError(t, err)
	assert.Equal(t, "  Your rate is 1.50x.\n", out)
}

func TestCompose_PropagatesFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	boom := errors.New("upstream down")
	completer.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", boom)

	_, err := NewComposer(completer).Compose(context.Background(), Request{Intent: models.IntentHR, Question: "q"})
	require.ErrorIs(t, err, boom)
}
