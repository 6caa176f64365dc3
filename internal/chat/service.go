package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/harshpimparkar/AapdaMitra-chatbot-api/internal/format"
	"github.com/harshpimparkar/AapdaMitra-chatbot-api/internal/langdetect"
	"github.com/harshpimparkar/AapdaMitra-chatbot-api/internal/models"
	"github.com/harshpimparkar/AapdaMitra-chatbot-api/internal/persona"
)

// CompletionClient is the upstream LLM collaborator.
type CompletionClient interface {
	Chat(ctx context.Context, messages []models.Message) (string, models.Usage, error)
}

// Service turns inbound chat requests into persona-prefixed upstream calls
// and formats the reply for mobile display. Stateless between requests.
type Service struct {
	client   CompletionClient
	detector langdetect.Detector
}

// NewService constructs a Service.
func NewService(client CompletionClient, detector langdetect.Detector) (*Service, error) {
	if client == nil {
		return nil, errors.New("chat: completion client must not be nil")
	}
	if detector == nil {
		return nil, errors.New("chat: language detector must not be nil")
	}
	return &Service{client: client, detector: detector}, nil
}

// Respond processes one chat request for the given persona variant.
//
// Requests with no usable input get the variant's canned greeting without an
// upstream call. Otherwise every inbound message is forced to the user role
// and language detection on each message rewrites the system message's
// language directive, so the directive reflects the last message's language.
func (s *Service) Respond(ctx context.Context, variant persona.Variant, inbound []models.Message) (models.ChatResponse, error) {
	if !hasInput(inbound) {
		return models.ChatResponse{
			Message:    persona.Greeting(variant),
			TokensUsed: 0,
		}, nil
	}

	outgoing := make([]models.Message, 1, len(inbound)+1)
	outgoing[0] = models.Message{
		Role:    models.RoleSystem,
		Content: persona.Prompt(variant, ""),
	}

	for _, msg := range inbound {
		lang, err := s.detector.Detect(msg.Content)
		if err != nil {
			return models.ChatResponse{}, newError(KindDetection, err)
		}

		outgoing[0].Content = persona.Prompt(variant, lang)
		outgoing = append(outgoing, models.Message{
			Role:    models.RoleUser,
			Content: msg.Content,
		})
	}

	text, usage, err := s.client.Chat(ctx, outgoing)
	if err != nil {
		return models.ChatResponse{}, newError(KindUpstream, err)
	}

	return models.ChatResponse{
		Message:    format.Mobile(text),
		TokensUsed: usage.TotalTokens,
	}, nil
}

func hasInput(messages []models.Message) bool {
	for _, msg := range messages {
		if strings.TrimSpace(msg.Content) != "" {
			return true
		}
	}
	return false
}
