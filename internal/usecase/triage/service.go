package triage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/navegador/internal/domain"
	"github.com/kailas-cloud/navegador/internal/domain/location"
	"github.com/kailas-cloud/navegador/internal/domain/query"
	domtriage "github.com/kailas-cloud/navegador/internal/domain/triage"
	"github.com/kailas-cloud/navegador/internal/logger"
	"github.com/kailas-cloud/navegador/internal/metrics"
)

// Defaults applied when options are zero.
const (
	DefaultMaxReportChars = 4000
	DefaultTimezone       = "America/Sao_Paulo"
)

// Service turns a free-text report into a recommendation with one chat session.
type Service struct {
	chat           ChatModel
	matcher        Matcher
	topK           int
	maxReportChars int
	loc            *time.Location
	now            func() time.Time
}

// New creates a triage service. topK <= 0 lets the matcher pick its default.
func New(chat ChatModel, matcher Matcher, topK int) *Service {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return &Service{
		chat:           chat,
		matcher:        matcher,
		topK:           topK,
		maxReportChars: DefaultMaxReportChars,
		loc:            loc,
		now:            time.Now,
	}
}

// WithMaxReportChars sets the report length limit (in runes).
func (s *Service) WithMaxReportChars(n int) *Service {
	if n > 0 {
		s.maxReportChars = n
	}
	return s
}

// WithLocation sets the time zone used for the current-time hint.
func (s *Service) WithLocation(loc *time.Location) *Service {
	if loc != nil {
		s.loc = loc
	}
	return s
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Clock returns the current local time as HH:MM.
func (s *Service) Clock() string {
	return s.now().In(s.loc).Format("15:04")
}

// Analyze runs the tool-assisted chat for report and returns the parsed recommendation.
func (s *Service) Analyze(ctx context.Context, report string) (domtriage.Result, error) {
	if strings.TrimSpace(report) == "" {
		return domtriage.Result{}, fmt.Errorf("%w: report is required", domain.ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(report); n > s.maxReportChars {
		return domtriage.Result{}, fmt.Errorf("%w: report has %d characters, max %d",
			domain.ErrInvalidInput, n, s.maxReportChars)
	}

	log := logger.FromContext(ctx)
	domain.UsageFromContext(ctx).MarkUsed()

	messages := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: systemInstruction},
		{Role: domain.RoleUser, Content: userMessage(report, s.Clock())},
	}

	resp, err := s.chat.Complete(ctx, domain.ChatRequest{
		Messages: messages,
		Tools:    []domain.ToolDefinition{toolDefinition},
	})
	if err != nil {
		return domtriage.Result{}, fmt.Errorf("initial completion: %w", err)
	}

	if len(resp.Message.ToolCalls) > 0 {
		messages = append(messages, resp.Message)
		messages = append(messages, s.answerToolCalls(log, resp.Message.ToolCalls)...)

		resp, err = s.chat.Complete(ctx, domain.ChatRequest{
			Messages: messages,
			Tools:    []domain.ToolDefinition{toolDefinition},
		})
		if err != nil {
			return domtriage.Result{}, fmt.Errorf("completion after tool call: %w", err)
		}
		if strings.TrimSpace(resp.Message.Content) == "" && len(resp.Message.ToolCalls) > 0 {
			metrics.TriageOutcomesTotal.WithLabelValues("failed").Inc()
			return domtriage.Result{}, fmt.Errorf("%w: model requested another tool round",
				domain.ErrMalformedResponse)
		}
	}

	text := stripFences(resp.Message.Content)
	result, err := parseResult(text)
	if err == nil {
		metrics.TriageOutcomesTotal.WithLabelValues("direct").Inc()
		return result, nil
	}

	log.Warn("Final answer is not valid JSON, requesting repair",
		zap.Int("length", len(text)),
		zap.Error(err),
	)

	result, err = s.repair(ctx, text)
	if err != nil {
		metrics.TriageOutcomesTotal.WithLabelValues("failed").Inc()
		return domtriage.Result{}, err
	}
	metrics.TriageOutcomesTotal.WithLabelValues("repaired").Inc()
	return result, nil
}

// answerToolCalls produces one tool message per requested call.
func (s *Service) answerToolCalls(log *zap.Logger, calls []domain.ToolCall) []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0, len(calls))
	for _, call := range calls {
		var payload any
		if call.Name != ToolName {
			metrics.ToolCallsTotal.WithLabelValues(call.Name, "unknown").Inc()
			log.Warn("Model called unknown tool", zap.String("tool", call.Name))
			payload = map[string]string{"error": "unknown tool " + call.Name}
		} else {
			payload = s.runMatcher(log, call.Arguments)
		}

		body, err := json.Marshal(payload)
		if err != nil {
			body = []byte(`{"error":"internal error"}`)
		}
		out = append(out, domain.ChatMessage{
			Role:       domain.RoleTool,
			ToolCallID: call.ID,
			Name:       call.Name,
			Content:    string(body),
		})
	}
	return out
}

func (s *Service) runMatcher(log *zap.Logger, arguments string) any {
	attrs, err := decodeAttributes(arguments)
	if err != nil {
		log.Warn("Invalid tool arguments, matching with empty attributes",
			zap.String("arguments", arguments),
			zap.Error(err),
		)
	} else if attrs.IsEmpty() {
		log.Info("Tool called without attributes, matching in catalog order",
			zap.String("arguments", arguments),
		)
	}

	scored, err := s.matcher.Match(attrs, s.topK)
	if err != nil {
		metrics.ToolCallsTotal.WithLabelValues(ToolName, "error").Inc()
		log.Error("Matcher failed", zap.Error(err))
		return map[string]string{"error": "consulta indisponível"}
	}

	metrics.ToolCallsTotal.WithLabelValues(ToolName, "ok").Inc()
	log.Debug("Tool executed",
		zap.String("tool", ToolName),
		zap.String("demanda", attrs.Demanda),
		zap.String("gravidade", string(attrs.Gravidade)),
		zap.Int("results", len(scored)),
	)
	return toolResult{Result: toToolLocations(scored)}
}

// repair makes the single JSON-mode call that converts free text into the final schema.
func (s *Service) repair(ctx context.Context, text string) (domtriage.Result, error) {
	resp, err := s.chat.Complete(ctx, domain.ChatRequest{
		Messages: []domain.ChatMessage{{Role: domain.RoleUser, Content: repairMessage(text)}},
		JSONMode: true,
	})
	if err != nil {
		return domtriage.Result{}, fmt.Errorf("repair completion: %w", err)
	}

	result, err := parseResult(stripFences(resp.Message.Content))
	if err != nil {
		return domtriage.Result{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return result, nil
}

type toolArguments struct {
	Demanda       string `json:"demanda"`
	PerfilUsuario string `json:"perfil_usuario"`
	HorarioAtual  string `json:"horario_atual"`
	Gravidade     string `json:"gravidade"`
}

func decodeAttributes(arguments string) (query.Attributes, error) {
	if strings.TrimSpace(arguments) == "" {
		return query.Attributes{}, nil
	}
	var args toolArguments
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return query.Attributes{}, fmt.Errorf("decode tool arguments: %w", err)
	}
	return query.Attributes{
		Demanda:       args.Demanda,
		PerfilUsuario: args.PerfilUsuario,
		HorarioAtual:  args.HorarioAtual,
		Gravidade:     query.Gravidade(args.Gravidade),
	}, nil
}

type toolLocation struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Contact string   `json:"contact"`
	Tags    []string `json:"tags"`
	Score   int      `json:"score"`
}

type toolResult struct {
	Result []toolLocation `json:"result"`
}

func toToolLocations(scored []location.Scored) []toolLocation {
	out := make([]toolLocation, len(scored))
	for i, sc := range scored {
		loc := sc.Location()
		out[i] = toolLocation{
			Name:    loc.Name(),
			Address: loc.Address(),
			Contact: loc.Contact(),
			Tags:    loc.Tags(),
			Score:   sc.Score(),
		}
	}
	return out
}

type resultDTO struct {
	Destination    string   `json:"destination"`
	Justification  string   `json:"justification"`
	AddressContact string   `json:"address_contact"`
	Procedures     []string `json:"procedures"`
	SeverityLevel  string   `json:"severity_level"`
}

var errEmptyAnswer = errors.New("empty answer")

func parseResult(text string) (domtriage.Result, error) {
	if text == "" {
		return domtriage.Result{}, errEmptyAnswer
	}
	var dto resultDTO
	if err := json.Unmarshal([]byte(text), &dto); err != nil {
		return domtriage.Result{}, fmt.Errorf("decode answer: %w", err)
	}
	return domtriage.New(
		dto.Destination, dto.Justification, dto.AddressContact,
		dto.Procedures, domtriage.Severity(dto.SeverityLevel),
	)
}

// stripFences removes markdown code fences around a JSON answer.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
