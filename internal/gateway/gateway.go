// Package gateway routes an authenticated question through classification,
// authorized fact release, policy retrieval, the overtime rule and answer
// composition.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"HRPolicyGateway/internal/answer"
	"HRPolicyGateway/internal/auth"
	"HRPolicyGateway/internal/facts"
	"HRPolicyGateway/internal/fields"
	"HRPolicyGateway/internal/intent"
	"HRPolicyGateway/internal/metrics"
	"HRPolicyGateway/internal/models"
	"HRPolicyGateway/internal/ports"
	"HRPolicyGateway/internal/rules"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTopK = 4

	derivedOvertime = "overtime_multiplier"
	unknownAnswer   = "I can only help with HR and company policy questions."
)

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrSubjectNotFound = errors.New("user not found")
	ErrGeneration      = errors.New("answer generation failed")
)

// Caller is the identity proven by a verified bearer token.
type Caller struct {
	User  string
	Roles []models.Role
}

func CallerFromClaims(c *auth.Claims) Caller {
	return Caller{User: models.NormalizeUser(c.Subject), Roles: c.RoleSet()}
}

// Question is one /ask request. User names the subject being asked about and
// defaults to the caller.
type Question struct {
	User string
	Text string
}

type Deps struct {
	Profiles  facts.ProfileLookup
	Retriever ports.Retriever
	Completer ports.Completer
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	TopK      int
	// Classify defaults to intent.Classify.
	Classify func(question string) models.Intent
}

// Gateway holds no per-request state; one instance serves all requests.
type Gateway struct {
	aggregator *facts.Aggregator
	retriever  ports.Retriever
	composer   *answer.Composer
	classify   func(string) models.Intent
	topK       int
	logger     *zap.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

func New(d Deps) *Gateway {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	topK := d.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	classify := d.Classify
	if classify == nil {
		classify = intent.Classify
	}
	m := d.Metrics
	return &Gateway{
		aggregator: facts.NewAggregator(d.Profiles, logger, facts.WithDenialHook(func(f models.Field) {
			m.IncFieldDenial(string(f))
		})),
		retriever: d.Retriever,
		composer:  answer.NewComposer(d.Completer),
		classify:  classify,
		topK:      topK,
		logger:    logger,
		metrics:   m,
		tracer:    otel.Tracer("HRPolicyGateway/internal/gateway"),
	}
}

// Ask answers one question. Every authorization decision is made fresh for
// this call.
func (g *Gateway) Ask(ctx context.Context, caller Caller, q Question) (*models.AnswerResponse, error) {
	ctx, span := g.tracer.Start(ctx, "gateway.Ask")
	defer span.End()

	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: question is required", ErrInvalidRequest)
	}
	subject := models.NormalizeUser(q.User)
	if subject == "" {
		subject = caller.User
	}

	label := g.classify(text)
	overtime := intent.MentionsOvertime(text)
	span.SetAttributes(
		attribute.String("hr.intent", string(label)),
		attribute.Bool("hr.overtime", overtime),
		attribute.Bool("hr.on_behalf", subject != caller.User),
	)

	// The composer has no unknown template; refuse here without generation.
	if label == models.IntentUnknown {
		g.metrics.IncQuestion(string(label))
		return &models.AnswerResponse{Answer: unknownAnswer, Intent: label, HRFacts: map[string]any{}}, nil
	}

	wantPolicy := label == models.IntentPolicy || label == models.IntentHybrid
	wantFacts := label == models.IntentHR || label == models.IntentHybrid || overtime

	var (
		snippets []string
		bag      = facts.Bag{}
	)
	eg, egCtx := errgroup.WithContext(ctx)
	if wantPolicy {
		eg.Go(func() error {
			var err error
			snippets, err = g.retrieve(egCtx, text)
			return err
		})
	}
	if wantFacts {
		eg.Go(func() error {
			bag = g.aggregator.Aggregate(subject, fields.For(text), caller.User, caller.Roles)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	resp := &models.AnswerResponse{
		Intent:     label,
		HRFacts:    bag.Map(),
		UsedPolicy: usedPolicy(snippets),
	}
	derived := map[string]string{}
	if overtime {
		if m, ok := overtimeMultiplier(bag); ok {
			derived[derivedOvertime] = m
			resp.ComputedMultiplier = m
		}
	}

	answerText, err := g.composer.Compose(ctx, answer.Request{
		Intent:   label,
		User:     subject,
		Question: text,
		Snippets: snippets,
		Facts:    bag,
		Derived:  derived,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "compose failed")
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, answer.ErrNoTemplate) {
			return nil, err
		}
		g.metrics.IncUpstreamFailure("completion")
		g.logger.Error("Ask(): generation failed", zap.String("intent", string(label)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	resp.Answer = answerText
	g.metrics.IncQuestion(string(label))

	g.logger.Info("Ask(): answered",
		zap.String("caller", caller.User),
		zap.String("subject", subject),
		zap.String("intent", string(label)),
		zap.Int("facts", len(bag)),
		zap.Bool("used_policy", resp.UsedPolicy),
		zap.String("multiplier", resp.ComputedMultiplier))
	return resp, nil
}

// Profile returns every field of subject that caller may see.
func (g *Gateway) Profile(ctx context.Context, caller Caller, subject string) (map[string]any, error) {
	_, span := g.tracer.Start(ctx, "gateway.Profile")
	defer span.End()

	bag, ok := g.aggregator.All(subject, caller.User, caller.Roles)
	if !ok {
		return nil, ErrSubjectNotFound
	}
	return bag.Map(), nil
}

// retrieve degrades to no policy context when the index fails. Only
// cancellation is reported as an error.
func (g *Gateway) retrieve(ctx context.Context, query string) ([]string, error) {
	if g.retriever == nil {
		return nil, nil
	}
	snippets, err := g.retriever.Search(ctx, query, g.topK)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		g.metrics.IncUpstreamFailure("policy_index")
		g.logger.Warn("retrieve(): policy index unavailable, answering without policy context", zap.Error(err))
		return nil, nil
	}
	return snippets, nil
}

func usedPolicy(snippets []string) bool {
	for _, s := range snippets {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}

func overtimeMultiplier(bag facts.Bag) (string, bool) {
	v, ok := bag.Get(models.FieldYears)
	if !ok {
		return "", false
	}
	years, ok := v.(float64)
	if !ok || years < 0 {
		return "", false
	}
	return rules.FormatMultiplier(rules.OvertimeMultiplier(years)), true
}
