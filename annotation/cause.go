package annotation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	oAIClient "github.com/guidograzioli/build-failure-analyzer-plugin/openai"
)

const (
	onceLimit = 4000
	chunkSize = 3000
	// failures are reported at the end of a log, older chunks are dropped
	maxChunks = 8
)

type Completer interface {
	ChatCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}

// GenerateCause drafts a failure cause description from a build console log.
func GenerateCause(ctx context.Context, client Completer, log string) (string, error) {
	log = strings.TrimSpace(log)
	if log == "" {
		return "", errors.New("build log is empty")
	}

	var cause string
	var err error
	if len(log) < onceLimit {
		cause, err = genCauseOnce(ctx, client, log)
	} else {
		cause, err = genCausePerChunk(ctx, client, splitLog(log, chunkSize))
	}

	return strings.TrimSpace(cause), err
}

func genCauseOnce(ctx context.Context, client Completer, log string) (string, error) {
	slog.Debug("Generating failure cause once")
	completion, err := client.ChatCompletion(ctx, []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: oAIClient.PromptDescribeFailure,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: log,
		},
	})
	if err != nil {
		return "", fmt.Errorf("error completing prompt: %w", err)
	}

	return completion, nil
}

func genCausePerChunk(ctx context.Context, client Completer, chunks []string) (string, error) {
	if len(chunks) > maxChunks {
		chunks = chunks[len(chunks)-maxChunks:]
	}

	var summaries strings.Builder
	for i, chunk := range chunks {
		slog.Debug("Summarizing build log chunk", "chunk", i+1, "total", len(chunks))
		completion, err := client.ChatCompletion(ctx, []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(oAIClient.PromptDescribeChunk, chunk),
			},
		})
		if err != nil {
			return "", fmt.Errorf("error summarizing chunk %d: %w", i+1, err)
		}
		fmt.Fprintf(&summaries, "Part %d: %s\n", i+1, strings.TrimSpace(completion))
	}

	slog.Debug("Generating overall failure cause")
	overall, err := client.ChatCompletion(ctx, []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf(oAIClient.PromptDescribeOverall, summaries.String()),
		},
	})
	if err != nil {
		return "", fmt.Errorf("error completing final prompt: %w", err)
	}

	return overall, nil
}

// splitLog cuts a log into chunks of at most size bytes at line boundaries.
// Lines longer than size are truncated.
func splitLog(log string, size int) []string {
	var chunks []string
	var current strings.Builder

	for _, line := range strings.Split(log, "\n") {
		if len(line) > size {
			cut := size - 3
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			line = fmt.Sprintf("%s...", line[:cut])
		}
		if current.Len() > 0 && current.Len()+len(line)+1 > size {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}
