package content

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CLIClient shells out to the claude CLI for local dev generation.
// Uses your existing Claude plan — no API key needed, no per-token charges.
type CLIClient struct {
	cliPath string
}

func NewCLIClient(cliPath string) *CLIClient {
	return &CLIClient{cliPath: cliPath}
}

func (c *CLIClient) GeneratePassage(ctx context.Context, topic, level string) (string, error) {
	cmd := exec.CommandContext(ctx,
		c.cliPath,
		"--print",
		"--output-format", "text",
		"--system-prompt", passageSystemPrompt,
		"--max-turns", "1",
	)

	cmd.Stdin = strings.NewReader(buildPassagePrompt(topic, level))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("claude CLI error: %w\nstderr: %s", err, stderr.String())
	}

	passage := strings.TrimSpace(stdout.String())
	if passage == "" {
		return "", fmt.Errorf("claude CLI returned empty response")
	}
	return passage, nil
}
