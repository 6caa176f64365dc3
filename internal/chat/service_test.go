package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harshpimparkar/AapdaMitra-chatbot-api/internal/models"
	"github.com/harshpimparkar/AapdaMitra-chatbot-api/internal/persona"
)

type stubClient struct {
	text  string
	usage models.Usage
	err   error

	gotMessages []models.Message
}

func (s *stubClient) Chat(_ context.Context, messages []models.Message) (string, models.Usage, error) {
	s.gotMessages = messages
	return s.text, s.usage, s.err
}

type stubDetector struct {
	langs map[string]string
	err   error
}

func (s *stubDetector) Detect(text string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if lang, ok := s.langs[text]; ok {
		return lang, nil
	}
	return "en", nil
}

func newTestService(t *testing.T, client CompletionClient, detector *stubDetector) *Service {
	t.Helper()
	if detector == nil {
		detector = &stubDetector{}
	}
	svc, err := NewService(client, detector)
	require.NoError(t, err)
	return svc
}

func TestNewService_ValidatesDependencies(t *testing.T) {
	_, err := NewService(nil, &stubDetector{})
	require.Error(t, err)

	_, err = NewService(&stubClient{}, nil)
	require.Error(t, err)
}

func TestRespond_EmptyMessagesReturnsGreeting(t *testing.T) {
	client := &stubClient{}
	svc := newTestService(t, client, nil)

	for _, messages := range [][]models.Message{
		nil,
		{},
		{{Content: ""}},
		{{Content: "   "}, {Content: ""}},
	} {
		resp, err := svc.Respond(context.Background(), persona.Public, messages)
		require.NoError(t, err)
		require.Equal(t, persona.Greeting(persona.Public), resp.Message)
		require.Equal(t, 0, resp.TokensUsed)
		require.Nil(t, client.gotMessages, "upstream must not be called for empty input")
	}
}

func TestRespond_GreetingMatchesVariant(t *testing.T) {
	svc := newTestService(t, &stubClient{}, nil)

	resp, err := svc.Respond(context.Background(), persona.Personnel, nil)
	require.NoError(t, err)
	require.Equal(t, persona.Greeting(persona.Personnel), resp.Message)
}

func TestRespond_BuildsSystemMessageAndForcesUserRole(t *testing.T) {
	client := &stubClient{text: "Move to higher ground.", usage: models.Usage{TotalTokens: 42}}
	svc := newTestService(t, client, &stubDetector{langs: map[string]string{
		"What should I do during a flood?": "en",
	}})

	resp, err := svc.Respond(context.Background(), persona.Public, []models.Message{
		{Role: models.RoleAssistant, Content: "What should I do during a flood?"},
	})
	require.NoError(t, err)

	require.Len(t, client.gotMessages, 2)
	require.Equal(t, models.RoleSystem, client.gotMessages[0].Role)
	require.Equal(t, persona.Prompt(persona.Public, "en"), client.gotMessages[0].Content)
	require.Equal(t, models.RoleUser, client.gotMessages[1].Role)
	require.Equal(t, "What should I do during a flood?", client.gotMessages[1].Content)

	require.Equal(t, "Move to higher ground.", resp.Message)
	require.Equal(t, 42, resp.TokensUsed)
}

func TestRespond_LastDetectedLanguageWins(t *testing.T) {
	client := &stubClient{text: "ok"}
	svc := newTestService(t, client, &stubDetector{langs: map[string]string{
		"first":  "en",
		"second": "hi",
	}})

	_, err := svc.Respond(context.Background(), persona.Public, []models.Message{
		{Content: "first"},
		{Content: "second"},
	})
	require.NoError(t, err)

	require.Len(t, client.gotMessages, 3)
	require.Equal(t, persona.Prompt(persona.Public, "hi"), client.gotMessages[0].Content)
	require.Equal(t, "first", client.gotMessages[1].Content)
	require.Equal(t, "second", client.gotMessages[2].Content)
}

func TestRespond_FormatsLongRepliesForMobile(t *testing.T) {
	long := strings.TrimRight(strings.Repeat("evacuate the area immediately ", 40), " ")
	client := &stubClient{text: long}
	svc := newTestService(t, client, nil)

	resp, err := svc.Respond(context.Background(), persona.Public, []models.Message{{Content: "help"}})
	require.NoError(t, err)

	require.Contains(t, resp.Message, "\n\n")
	for _, chunk := range strings.Split(resp.Message, "\n\n") {
		require.LessOrEqual(t, len(chunk), 300)
	}
}

func TestRespond_UpstreamFailure(t *testing.T) {
	client := &stubClient{err: errors.New("connection refused")}
	svc := newTestService(t, client, nil)

	_, err := svc.Respond(context.Background(), persona.Public, []models.Message{{Content: "help"}})
	require.Error(t, err)

	var chatErr *Error
	require.ErrorAs(t, err, &chatErr)
	require.Equal(t, KindUpstream, chatErr.Kind)
	require.ErrorContains(t, err, "connection refused")
}

func TestRespond_DetectionFailure(t *testing.T) {
	client := &stubClient{}
	svc := newTestService(t, client, &stubDetector{err: errors.New("no features in text")})

	_, err := svc.Respond(context.Background(), persona.Public, []models.Message{{Content: ":-)"}})
	require.Error(t, err)

	var chatErr *Error
	require.ErrorAs(t, err, &chatErr)
	require.Equal(t, KindDetection, chatErr.Kind)
	require.Nil(t, client.gotMessages, "upstream must not be called when detection fails")
}
