package content

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/typedrill/backend/internal/models"
)

// Word pools partitioned by frequency: easy is everyday high-frequency
// vocabulary, medium is general prose, hard is longer or less common words.
var (
	easyWords = []string{
		"the", "of", "and", "to", "a", "in", "that", "is", "was", "he",
		"for", "it", "with", "as", "his", "on", "be", "at", "by", "had",
		"not", "are", "but", "from", "or", "have", "an", "they", "which", "one",
		"you", "were", "her", "all", "she", "there", "would", "their", "we", "him",
		"been", "has", "when", "who", "will", "more", "no", "if", "out", "so",
		"said", "what", "up", "its", "about", "into", "than", "them", "can", "only",
		"other", "new", "some", "could", "time", "these", "two", "may", "then", "do",
		"first", "any", "my", "now", "such", "like", "our", "over", "man", "me",
		"even", "most", "made", "after", "also", "did", "many", "before", "must", "through",
		"back", "years", "where", "much", "your", "way", "well", "down", "should", "because",
	}
	mediumWords = []string{
		"government", "development", "national", "business", "company", "system", "program", "question",
		"during", "number", "course", "against", "general", "office", "interest", "public",
		"perhaps", "rather", "himself", "several", "toward", "members", "others", "however",
		"believe", "problem", "country", "together", "children", "percent", "example", "service",
		"important", "different", "possible", "without", "another", "between", "social", "present",
		"though", "nothing", "certain", "special", "provide", "action", "effect", "control",
		"further", "evening", "result", "morning", "period", "change", "although", "history",
		"policy", "increase", "situation", "behind", "report", "college", "church", "minutes",
		"required", "decision", "earlier", "position", "century", "evidence", "average", "various",
		"community", "experience", "following", "themselves", "knowledge", "political", "available", "education",
	}
	hardWords = []string{
		"accommodate", "bureaucracy", "consciousness", "phenomenon", "simultaneously", "questionnaire",
		"entrepreneur", "miscellaneous", "pronunciation", "rhythm", "silhouette", "liaison",
		"maintenance", "acknowledgment", "conscientious", "idiosyncrasy", "juxtaposition", "kaleidoscope",
		"hierarchy", "guarantee", "fluorescent", "exaggerate", "embarrass", "definitely",
		"committee", "occurrence", "perseverance", "privilege", "recommend", "restaurant",
		"schedule", "separate", "threshold", "unanimous", "vacuum", "yacht",
		"archaeologist", "bourgeois", "chauffeur", "connoisseur", "dilemma", "ecstasy",
		"fahrenheit", "gauge", "hypocrisy", "indispensable", "jeopardize", "khaki",
		"lieutenant", "mnemonic", "nuisance", "omniscient", "pneumonia", "quarantine",
		"reconnaissance", "sovereignty", "surveillance", "temperament", "ubiquitous", "vengeance",
	}
)

// sentences are moderate-length public-domain prose, the same band the
// original corpus filter kept (20 to 120 characters).
var sentences = []string{
	"The family of Dashwood had long been settled in Sussex.",
	"It is a truth universally acknowledged, that a single man in possession of a good fortune, must be in want of a wife.",
	"She was the youngest of the two daughters of a most affectionate, indulgent father.",
	"Sixteen years had Miss Taylor been in the family, less as a governess than a friend.",
	"The real evils, indeed, of Emma's situation were the power of having rather too much her own way.",
	"Sorrow came, a gentle sorrow, but not at all in the shape of any disagreeable consciousness.",
	"The evening of this day was very long, and melancholy, at Hartfield.",
	"He was a comfort to his father in his sickness.",
	"Her sister was married, and the house was very lonely without her.",
	"With all these recommendations, the match was an excellent one.",
	"The weather was remarkably fine, and the roads were in excellent order.",
	"A few days brought the party to London, and there they remained a week.",
	"It was a sweet view, sweet to the eye and the mind.",
	"He had been too successful in life to think anything impossible.",
	"They walked together some time, talking of the weather and the roads.",
	"The morning was fine, and she resolved to walk into the village.",
	"Nobody could tell how much she had been wishing for this very thing.",
	"There was no recovering the subject after that.",
	"She listened, and found it was not meant for her to hear.",
	"Every moment had brought a fresh surprise.",
	"He stopped again, rose again, and seemed quite embarrassed.",
	"The carriage came, and they were off at last.",
	"Dinner was on the table before the subject could be renewed.",
	"It was a long, well written letter, giving the particulars of the journey.",
	"The contrast between the two places was ever present to her mind.",
	"His spirits required support, and his health demanded attention.",
	"She had a great deal to say, and said it all with cheerful ease.",
	"Time passed on, and the day of the party drew near.",
	"A mind lively and at ease can do with seeing nothing.",
	"The distance was nothing when one had a motive.",
}

// codeSnippets are short real-looking fragments for code mode, one per
// language.
var codeSnippets = []models.TestContent{
	{Mode: "code", Source: "go", Text: "func sum(nums []int) int {\n\ttotal := 0\n\tfor _, n := range nums {\n\t\ttotal += n\n\t}\n\treturn total\n}"},
	{Mode: "code", Source: "go", Text: "if err := db.Ping(); err != nil {\n\tlog.Fatalf(\"database unreachable: %v\", err)\n}"},
	{Mode: "code", Source: "python", Text: "def fibonacci(n):\n    a, b = 0, 1\n    for _ in range(n):\n        a, b = b, a + b\n    return a"},
	{Mode: "code", Source: "python", Text: "with open(path) as f:\n    lines = [line.strip() for line in f if line.strip()]"},
	{Mode: "code", Source: "javascript", Text: "const unique = (items) => [...new Set(items)];"},
	{Mode: "code", Source: "javascript", Text: "fetch(url)\n  .then((res) => res.json())\n  .then((data) => setItems(data.items))\n  .catch(console.error);"},
	{Mode: "code", Source: "sql", Text: "SELECT user_id, COUNT(*) AS total\nFROM events\nWHERE created_at > NOW() - INTERVAL '7 days'\nGROUP BY user_id\nORDER BY total DESC;"},
	{Mode: "code", Source: "rust", Text: "let evens: Vec<i32> = (1..=20).filter(|n| n % 2 == 0).collect();"},
}

var numberTokens = buildNumberTokens()

func buildNumberTokens() []string {
	tokens := make([]string, 0, 1429)
	for n := 0; n < 10000; n += 7 {
		tokens = append(tokens, fmt.Sprintf("%d", n))
	}
	return tokens
}

var punctuationMarks = []string{",", ".", ";", ":", "!", "?", "-"}

// Options are the knobs on a content request.
type Options struct {
	Count              int
	Level              string
	IncludeNumbers     bool
	IncludePunctuation bool
	Topic              string
}

// Service serves typing-practice content. The rng is guarded because
// handlers call in from concurrent requests; the passage generator is
// optional and only used for ai mode.
type Service struct {
	mu        sync.Mutex
	rng       *rand.Rand
	generator PassageClient
}

func NewService(generator PassageClient) *Service {
	return &Service{
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		generator: generator,
	}
}

// Get returns content for the requested mode. Unknown modes error so the
// frontend fails loudly instead of practicing on an empty screen.
func (s *Service) Get(ctx context.Context, mode string, opts Options) (*models.TestContent, error) {
	switch mode {
	case "words":
		return s.words(opts)
	case "sentences":
		return s.sentences(opts)
	case "code":
		return s.code()
	case "zen":
		return s.zen(opts)
	case "custom":
		// Custom text lives on the client; the server only echoes the mode.
		return &models.TestContent{Mode: "custom"}, nil
	case "ai":
		return s.aiPassage(ctx, opts)
	default:
		return nil, fmt.Errorf("invalid mode %q", mode)
	}
}

func wordPool(level string) ([]string, error) {
	switch level {
	case "", "easy":
		return easyWords, nil
	case "medium":
		return mediumWords, nil
	case "hard":
		return hardWords, nil
	default:
		return nil, fmt.Errorf("invalid level %q", level)
	}
}

func (s *Service) words(opts Options) (*models.TestContent, error) {
	pool, err := wordPool(opts.Level)
	if err != nil {
		return nil, err
	}

	count := opts.Count
	if count <= 0 {
		count = 25
	}
	if count > 500 {
		count = 500
	}

	s.mu.Lock()
	words := make([]string, count)
	for i := range words {
		words[i] = pool[s.rng.Intn(len(pool))]
	}

	if opts.IncludeNumbers {
		// Replace roughly 15% of words with number tokens
		for _, idx := range s.sampleIndices(count, count*15/100) {
			words[idx] = numberTokens[s.rng.Intn(len(numberTokens))]
		}
	}
	if opts.IncludePunctuation {
		// Append punctuation to roughly 20% of words
		for _, idx := range s.sampleIndices(count, count*20/100) {
			words[idx] += punctuationMarks[s.rng.Intn(len(punctuationMarks))]
		}
	}
	s.mu.Unlock()

	level := opts.Level
	if level == "" {
		level = "easy"
	}
	return &models.TestContent{Mode: "words", Words: words, Level: level}, nil
}

// sampleIndices picks n distinct indices in [0, limit). Caller holds s.mu.
func (s *Service) sampleIndices(limit, n int) []int {
	if n < 1 {
		n = 1
	}
	if n > limit {
		n = limit
	}
	perm := s.rng.Perm(limit)
	return perm[:n]
}

func (s *Service) sentences(opts Options) (*models.TestContent, error) {
	count := opts.Count
	if count <= 0 {
		count = 5
	}
	if count > len(sentences) {
		return nil, fmt.Errorf("requested %d sentences, only %d available", count, len(sentences))
	}

	s.mu.Lock()
	picked := make([]string, 0, count)
	for _, idx := range s.sampleIndices(len(sentences), count) {
		picked = append(picked, sentences[idx])
	}
	s.mu.Unlock()

	text := ""
	for i, sent := range picked {
		if i > 0 {
			text += " "
		}
		text += sent
	}
	return &models.TestContent{Mode: "sentences", Text: text, Source: "classic prose"}, nil
}

func (s *Service) code() (*models.TestContent, error) {
	s.mu.Lock()
	snippet := codeSnippets[s.rng.Intn(len(codeSnippets))]
	s.mu.Unlock()
	return &snippet, nil
}

// zen mode is an open-ended stream: a large mixed-difficulty word sample
// the frontend can keep feeding from.
func (s *Service) zen(opts Options) (*models.TestContent, error) {
	count := opts.Count
	if count <= 0 {
		count = 200
	}
	if count > 1000 {
		count = 1000
	}

	pool := make([]string, 0, len(easyWords)+len(mediumWords)+len(hardWords))
	pool = append(pool, easyWords...)
	pool = append(pool, mediumWords...)
	pool = append(pool, hardWords...)

	s.mu.Lock()
	words := make([]string, count)
	for i := range words {
		words[i] = pool[s.rng.Intn(len(pool))]
	}
	s.mu.Unlock()

	return &models.TestContent{Mode: "zen", Words: words}, nil
}

func (s *Service) aiPassage(ctx context.Context, opts Options) (*models.TestContent, error) {
	if s.generator == nil {
		return nil, fmt.Errorf("ai mode is not configured")
	}

	level := opts.Level
	if level == "" {
		level = "medium"
	}
	passage, err := s.generator.GeneratePassage(ctx, opts.Topic, level)
	if err != nil {
		return nil, fmt.Errorf("generate passage: %w", err)
	}
	return &models.TestContent{Mode: "ai", Text: passage, Source: "generated", Level: level}, nil
}
