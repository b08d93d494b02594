package content

import (
	"context"
	"strings"
	"testing"
)

func newTestService() *Service {
	return NewService(NewMockClient())
}

func TestWordsMode(t *testing.T) {
	svc := newTestService()

	c, err := svc.Get(context.Background(), "words", Options{Count: 30, Level: "easy"})
	if err != nil {
		t.Fatalf("words mode failed: %v", err)
	}
	if c.Mode != "words" || c.Level != "easy" {
		t.Errorf("mode/level = %q/%q, want words/easy", c.Mode, c.Level)
	}
	if len(c.Words) != 30 {
		t.Errorf("got %d words, want 30", len(c.Words))
	}

	// Default count and level
	c, err = svc.Get(context.Background(), "words", Options{})
	if err != nil {
		t.Fatalf("default words failed: %v", err)
	}
	if len(c.Words) != 25 || c.Level != "easy" {
		t.Errorf("defaults: %d words at level %q, want 25 at easy", len(c.Words), c.Level)
	}
}

func TestWordsModeInvalidLevel(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Get(context.Background(), "words", Options{Level: "impossible"}); err == nil {
		t.Error("invalid level accepted")
	}
}

func TestWordsModeNumbersInjection(t *testing.T) {
	svc := newTestService()

	c, err := svc.Get(context.Background(), "words", Options{Count: 100, IncludeNumbers: true})
	if err != nil {
		t.Fatalf("words with numbers failed: %v", err)
	}

	numeric := 0
	for _, w := range c.Words {
		if w != "" && strings.IndexFunc(w, func(r rune) bool { return r < '0' || r > '9' }) == -1 {
			numeric++
		}
	}
	if numeric == 0 {
		t.Error("no number tokens injected")
	}
}

func TestWordsModePunctuationInjection(t *testing.T) {
	svc := newTestService()

	c, err := svc.Get(context.Background(), "words", Options{Count: 100, IncludePunctuation: true})
	if err != nil {
		t.Fatalf("words with punctuation failed: %v", err)
	}

	punctuated := 0
	for _, w := range c.Words {
		if strings.ContainsAny(w, ",.;:!?-") {
			punctuated++
		}
	}
	if punctuated == 0 {
		t.Error("no punctuation injected")
	}
}

func TestSentencesMode(t *testing.T) {
	svc := newTestService()

	c, err := svc.Get(context.Background(), "sentences", Options{Count: 3})
	if err != nil {
		t.Fatalf("sentences mode failed: %v", err)
	}
	if c.Mode != "sentences" || c.Text == "" {
		t.Errorf("sentences content = %+v", c)
	}

	// Asking for more than the pool holds is an error
	if _, err := svc.Get(context.Background(), "sentences", Options{Count: 10000}); err == nil {
		t.Error("oversized sentence request accepted")
	}
}

func TestCodeMode(t *testing.T) {
	svc := newTestService()

	c, err := svc.Get(context.Background(), "code", Options{})
	if err != nil {
		t.Fatalf("code mode failed: %v", err)
	}
	if c.Mode != "code" || c.Text == "" || c.Source == "" {
		t.Errorf("code content = %+v", c)
	}
}

func TestZenMode(t *testing.T) {
	svc := newTestService()

	c, err := svc.Get(context.Background(), "zen", Options{})
	if err != nil {
		t.Fatalf("zen mode failed: %v", err)
	}
	if len(c.Words) != 200 {
		t.Errorf("zen default returned %d words, want 200", len(c.Words))
	}
}

func TestCustomMode(t *testing.T) {
	svc := newTestService()

	c, err := svc.Get(context.Background(), "custom", Options{})
	if err != nil {
		t.Fatalf("custom mode failed: %v", err)
	}
	if c.Mode != "custom" || c.Text != "" || len(c.Words) != 0 {
		t.Errorf("custom content = %+v, want empty echo", c)
	}
}

func TestInvalidMode(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Get(context.Background(), "telepathy", Options{}); err == nil {
		t.Error("invalid mode accepted")
	}
}

func TestAIMode(t *testing.T) {
	svc := newTestService()

	c, err := svc.Get(context.Background(), "ai", Options{Topic: "typewriters", Level: "easy"})
	if err != nil {
		t.Fatalf("ai mode failed: %v", err)
	}
	if c.Mode != "ai" || c.Text == "" {
		t.Errorf("ai content = %+v", c)
	}
	if !strings.Contains(c.Text, "typewriters") {
		t.Errorf("mock passage does not mention the topic: %q", c.Text)
	}

	// Unconfigured generator fails loudly
	bare := NewService(nil)
	if _, err := bare.Get(context.Background(), "ai", Options{}); err == nil {
		t.Error("ai mode without a generator accepted")
	}
}

func TestBuildPassagePrompt(t *testing.T) {
	p := buildPassagePrompt("ocean currents", "hard")
	if !strings.Contains(p, "ocean currents") {
		t.Errorf("prompt missing topic: %q", p)
	}
	if !strings.Contains(p, "uncommon words") {
		t.Errorf("prompt missing hard-level guidance: %q", p)
	}

	p = buildPassagePrompt("", "easy")
	if strings.Contains(p, "about:") {
		t.Errorf("topicless prompt mentions a topic: %q", p)
	}
}
