package content

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

// PassageClient generates a short practice passage for ai mode.
type PassageClient interface {
	GeneratePassage(ctx context.Context, topic, level string) (string, error)
}

// NewPassageClient picks an implementation from the environment: the mock
// for local development, the Anthropic API otherwise.
func NewPassageClient() PassageClient {
	if os.Getenv("USE_CLI_GENERATOR") == "true" {
		cliPath := os.Getenv("CLAUDE_CLI_PATH")
		if cliPath == "" {
			cliPath = "claude"
		}
		log.Println("[content] passage generator using Claude CLI (local plan)")
		return NewCLIClient(cliPath)
	}
	if os.Getenv("MOCK_GENERATOR") == "true" {
		log.Println("[content] passage generator using mock data")
		return NewMockClient()
	}

	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		model = "claude-3-5-haiku-20241022"
	}
	log.Println("[content] passage generator using Anthropic API:", model)
	return NewAPIClient(model)
}

const passageSystemPrompt = `You write short passages for typing practice. Respond with the passage text only: no title, no preamble, no markdown. Use plain ASCII punctuation.`

func buildPassagePrompt(topic, level string) string {
	var b strings.Builder
	b.WriteString("Write one paragraph of 60 to 90 words for typing practice.\n")
	switch level {
	case "easy":
		b.WriteString("Use short, common words and simple sentence structure.\n")
	case "hard":
		b.WriteString("Use varied vocabulary, longer sentences, and occasional uncommon words.\n")
	default:
		b.WriteString("Use everyday vocabulary with moderate sentence variety.\n")
	}
	if topic != "" {
		fmt.Fprintf(&b, "The passage should be about: %s\n", topic)
	}
	return b.String()
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) GeneratePassage(ctx context.Context, topic, level string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   512,
		Temperature: param.NewOpt(0.8),
		System: []anthropic.TextBlockParam{
			{Text: passageSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPassagePrompt(topic, level))),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return "", err
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no text content in API response")
	}
	return text, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("[content] retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("[content] Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient — Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) GeneratePassage(ctx context.Context, topic, level string) (string, error) {
	subject := topic
	if subject == "" {
		subject = "keyboards"
	}
	return fmt.Sprintf(
		"The history of %s is longer than most people expect. Early designs were "+
			"awkward and slow, shaped more by the limits of their materials than by the "+
			"people who used them. Over the years small refinements accumulated, each one "+
			"making the experience a little smoother, until the modern form emerged and "+
			"became so familiar that hardly anyone stops to think about it at all.",
		subject,
	), nil
}
