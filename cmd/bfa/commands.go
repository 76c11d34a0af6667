package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	gh "github.com/google/go-github/v51/github"

	"github.com/guidograzioli/build-failure-analyzer-plugin/annotation"
	ghClient "github.com/guidograzioli/build-failure-analyzer-plugin/github"
	"github.com/guidograzioli/build-failure-analyzer-plugin/hostname"
	oAIClient "github.com/guidograzioli/build-failure-analyzer-plugin/openai"
)

var errNoHost = errors.New("no host name could be resolved")

type hostnameCommand struct {
	out io.Writer
}

func (c *hostnameCommand) Execute(_ []string) error {
	env, err := environment()
	if err != nil {
		return err
	}

	host, ok := hostname.Resolve(env)
	if !ok {
		return errNoHost
	}

	_, err = fmt.Fprintln(c.out, host)
	return err
}

type autolinkCommand struct {
	Args struct {
		Text []string `positional-arg-name:"TEXT"`
	} `positional-args:"yes"`

	in  io.Reader
	out io.Writer
}

func (c *autolinkCommand) Execute(_ []string) error {
	env, err := environment()
	if err != nil {
		return err
	}

	text := strings.Join(c.Args.Text, " ")
	if len(c.Args.Text) == 0 {
		data, err := io.ReadAll(c.in)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		text = strings.TrimRight(string(data), "\n")
	}

	_, err = fmt.Fprintln(c.out, newProcessor(env).Process(text))
	return err
}

// PullRequestPublisher is the part of the GitHub client used to publish annotations.
type PullRequestPublisher interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*gh.PullRequest, error)
	UpdatePullRequest(ctx context.Context, owner, repo string, number int, pr *gh.PullRequest) (*gh.PullRequest, error)
	CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) (*gh.IssueComment, error)
}

type annotateCommand struct {
	GithubToken string `long:"gh-token" env:"GITHUB_TOKEN" description:"GitHub token"`
	Owner       string `long:"owner" env:"OWNER" description:"GitHub owner"`
	Repo        string `long:"repo" env:"REPO" description:"GitHub repo"`
	PRNumber    int    `long:"pr-number" env:"PR_NUMBER" description:"Pull request number"`
	OpenAIToken string `long:"openai-token" env:"OPENAI_TOKEN" description:"OpenAI token, used to draft the cause from --build-log"`
	OpenAIModel string `long:"openai-model" env:"OPENAI_MODEL" description:"OpenAI model" default:"gpt-3.5-turbo"`
	Cause       string `long:"cause" env:"BFA_CAUSE" description:"Failure cause description"`
	CauseFile   string `long:"cause-file" description:"File containing the failure cause description"`
	BuildLog    string `long:"build-log" description:"Build console log to draft the failure cause from"`
	BuildURL    string `long:"build-url" env:"BUILD_URL" description:"URL of the failed build"`
	UpdateBody  bool   `long:"update-body" description:"Update the pull request body instead of adding a comment"`
	Test        bool   `long:"test" env:"TEST" description:"Test mode, print the annotation instead of publishing it"`

	ctx          context.Context
	out          io.Writer
	newCompleter func(token, model string) annotation.Completer
	newPublisher func(ctx context.Context, token string) PullRequestPublisher
}

func newAnnotateCommand(ctx context.Context, out io.Writer) *annotateCommand {
	return &annotateCommand{
		ctx: ctx,
		out: out,
		newCompleter: func(token, model string) annotation.Completer {
			return oAIClient.NewClient(token, model)
		},
		newPublisher: func(ctx context.Context, token string) PullRequestPublisher {
			return ghClient.NewClient(ctx, token)
		},
	}
}

func (c *annotateCommand) Execute(_ []string) error {
	env, err := environment()
	if err != nil {
		return err
	}

	cause, err := c.loadCause()
	if err != nil {
		return err
	}

	info := annotation.Info{
		Cause:    newProcessor(env).Process(cause),
		BuildURL: c.BuildURL,
	}
	if host, ok := hostname.Resolve(env); ok {
		info.Host = host
	}

	if c.Test {
		_, err := fmt.Fprintln(c.out, annotation.Build(info))
		return err
	}

	if c.GithubToken == "" || c.Owner == "" || c.Repo == "" || c.PRNumber == 0 {
		return errors.New("--gh-token, --owner, --repo and --pr-number are required outside of test mode")
	}
	publisher := c.newPublisher(c.ctx, c.GithubToken)

	if c.UpdateBody {
		return c.updateBody(publisher, info)
	}

	slog.Info("Adding failure cause comment", "owner", c.Owner, "repo", c.Repo, "pr", c.PRNumber)
	if _, err := publisher.CreateIssueComment(c.ctx, c.Owner, c.Repo, c.PRNumber, annotation.Build(info)); err != nil {
		return fmt.Errorf("error creating comment: %w", err)
	}
	return nil
}

func (c *annotateCommand) updateBody(publisher PullRequestPublisher, info annotation.Info) error {
	pr, err := publisher.GetPullRequest(c.ctx, c.Owner, c.Repo, c.PRNumber)
	if err != nil {
		return fmt.Errorf("error getting pull request: %w", err)
	}

	slog.Info("Updating pull request", "owner", c.Owner, "repo", c.Repo, "pr", c.PRNumber)
	updatedPr := annotation.BuildUpdatedPullRequest(pr.GetBody(), info)
	if _, err := publisher.UpdatePullRequest(c.ctx, c.Owner, c.Repo, c.PRNumber, updatedPr); err != nil {
		return fmt.Errorf("error updating pull request: %w", err)
	}
	return nil
}

func (c *annotateCommand) loadCause() (string, error) {
	switch {
	case c.Cause != "":
		return c.Cause, nil
	case c.CauseFile != "":
		data, err := os.ReadFile(c.CauseFile)
		if err != nil {
			return "", fmt.Errorf("error reading cause file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	case c.BuildLog != "":
		if c.OpenAIToken == "" {
			return "", errors.New("--openai-token is required with --build-log")
		}
		data, err := os.ReadFile(c.BuildLog)
		if err != nil {
			return "", fmt.Errorf("error reading build log: %w", err)
		}
		slog.Info("Drafting failure cause from build log", "path", c.BuildLog)
		cause, err := annotation.GenerateCause(c.ctx, c.newCompleter(c.OpenAIToken, c.OpenAIModel), string(data))
		if err != nil {
			return "", fmt.Errorf("error generating failure cause: %w", err)
		}
		return cause, nil
	}
	return "", errors.New("one of --cause, --cause-file or --build-log is required")
}
