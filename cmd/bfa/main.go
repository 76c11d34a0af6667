package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/guidograzioli/build-failure-analyzer-plugin/autolink"
	"github.com/guidograzioli/build-failure-analyzer-plugin/config"
)

var opts struct {
	Config          string        `long:"config" env:"BFA_CONFIG" description:"Path to a YAML config file"`
	Verbose         bool          `short:"v" long:"verbose" env:"BFA_VERBOSE" description:"Enable debug logging"`
	RootURL         string        `long:"root-url" env:"BFA_ROOT_URL" description:"Root URL of the CI instance. Example: https://jenkins.example.com/"`
	MarkupFormatter string        `long:"markup-formatter" env:"BFA_MARKUP_FORMATTER" description:"Markup formatter: escaped, markdown or safe-html"`
	AutolinkPattern string        `long:"autolink-pattern" env:"BFA_AUTOLINK_PATTERN" description:"Regular expression the whole cause has to match to be autolinked"`
	AutolinkURL     string        `long:"autolink-url" env:"BFA_AUTOLINK_URL" description:"Autolink target, may reference groups. Example: https://jira.example.com/browse/$1"`
	MatchTimeout    time.Duration `long:"autolink-timeout" env:"BFA_AUTOLINK_TIMEOUT" description:"Timeout of a single autolink pattern evaluation"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
	}

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		setupLogger(opts.Verbose)
		return command.Execute(args)
	}

	if _, err := parser.AddCommand("hostname", "Print the host name of the root URL", "", &hostnameCommand{out: os.Stdout}); err != nil {
		panic(err)
	}
	if _, err := parser.AddCommand("autolink", "Translate a failure cause and apply autolinks", "Reads the cause from the arguments, or from stdin when none are given.", &autolinkCommand{in: os.Stdin, out: os.Stdout}); err != nil {
		panic(err)
	}
	if _, err := parser.AddCommand("annotate", "Publish a failure cause on a pull request", "", newAnnotateCommand(ctx, os.Stdout)); err != nil {
		panic(err)
	}

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) {
			if flagsErr.Type == flags.ErrHelp {
				fmt.Println(flagsErr.Message)
				os.Exit(0)
			}
			fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
			os.Exit(2)
		}
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// environment loads the config file and lets command line options override it.
func environment() (*config.Environment, error) {
	settings, err := config.Load(opts.Config)
	if err != nil {
		return nil, err
	}

	settings.Merge(config.Settings{
		RootURL:         opts.RootURL,
		MarkupFormatter: opts.MarkupFormatter,
		Autolink: config.Autolink{
			Pattern:      opts.AutolinkPattern,
			URL:          opts.AutolinkURL,
			MatchTimeout: opts.MatchTimeout,
		},
	})

	return settings.Environment()
}

func newProcessor(env *config.Environment) *autolink.Processor {
	var options []autolink.Option
	if env.MatchTimeout() > 0 {
		options = append(options, autolink.WithMatchTimeout(env.MatchTimeout()))
	}
	return autolink.NewProcessor(env, env, options...)
}
