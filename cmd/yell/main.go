// Command yell shouts greetings at people.
//
// It exists to demonstrate declarative argument matching end to end:
// required multi-value arguments, optional parameters, validated integer
// conversion, wildcards, dependency gating, and rendered help. Run with
// --help for the full synopsis.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/snare"
	"github.com/ardnew/snare/help"
	"github.com/ardnew/snare/log"
	"github.com/ardnew/snare/profile"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr, os.Args[1:]))
}

type args struct {
	s *snare.Snare

	names     *snare.Matcher[string]
	greeting  *snare.Matcher[string]
	count     *snare.Matcher[int]
	files     *snare.Matcher[string]
	dump      *snare.Matcher[string]
	logLevel  *snare.Matcher[log.Level]
	pprofMode *snare.Matcher[string]
	pprofDir  *snare.Matcher[string]
	help      *snare.Matcher[string]
}

func makeArgs(logger log.Logger) args {
	s := snare.Make(
		snare.WithDelimiterSkip(),
		snare.WithSuggestions(),
		snare.WithLog(logger),
	)

	a := args{s: s}

	a.names = s.Add("--name", "-n").
		RequireAndMulti().
		WithSample("name").
		WithHelp("Name(s) to greet")
	a.greeting = s.Add("--greeting", "-g").
		WithSample("word").
		WithHelp("Greeting word (default: hey)")
	a.count = snare.AddFunc(s, parseCount, "--count", "-c").
		RequireParam().
		WithSample("number").
		WithHelp("Times to repeat each greeting (default: 1)")
	a.files = s.AddWildcard().
		Multi().
		WithSample("filename").
		WithHelp("Files whose lines are shouted as well")
	a.dump = s.Add("--dump").
		WithHelp("Print matched arguments as YAML and exit")
	// Registered so the flag is documented and validated; the value itself
	// is consumed by peekLevel before matching so the pass can be traced.
	a.logLevel = snare.AddFunc(s, parseLevel, "--log-level").
		WithSample(strings.Join(log.Levels(), "|")).
		WithHelp("Minimum log level (default: " + log.DefaultLevel.String() + ")")
	a.pprofMode = s.Add("--pprof-mode").
		WithSample("mode").
		WithHelp("Profiling mode: " + pprofModes())
	a.pprofDir = s.Add("--pprof-dir").
		OnlyIf(a.pprofMode).
		WithSample("dir").
		WithHelp("Profile output directory")
	a.help = s.Add("--help", "-h").
		WithHelp("Show this help")

	return a
}

func parseCount(raw string) (int, error) {
	v, err := snare.ParseInt(raw)
	if err != nil {
		return 0, err
	}

	if v < 1 {
		return 0, fmt.Errorf("count must be at least 1, got %d", v)
	}

	return v, nil
}

func parseLevel(raw string) (log.Level, error) {
	return log.ParseLevel(raw), nil
}

func pprofModes() string {
	if modes := profile.Modes(); len(modes) > 0 {
		return strings.Join(modes, ", ")
	}

	return "(requires a build with the " + profile.Tag + " tag)"
}

// peekLevel extracts the log level ahead of the real matching pass so that
// the matching itself can be traced.
func peekLevel(argv []string) log.Level {
	for i, tok := range argv {
		switch {
		case strings.HasPrefix(tok, "--log-level="):
			return log.ParseLevel(strings.TrimPrefix(tok, "--log-level="))

		case tok == "--log-level" && i+1 < len(argv):
			return log.ParseLevel(argv[i+1])
		}
	}

	return log.DefaultLevel
}

func run(stdout, stderr io.Writer, argv []string) int {
	logger := log.Make(stderr,
		log.WithLevel(peekLevel(argv)),
		log.WithPretty(true),
	)

	a := makeArgs(logger)
	a.s.Match(argv)

	r := help.Make(a.s,
		help.WithProgram("yell"),
		help.WithIntro("Shout greetings at people, loudly."),
	)

	// Help is checked before errors so that "yell -h" alone works even
	// though --name is required.
	if a.help.Found() {
		if err := r.Render(stdout); err != nil {
			return 1
		}

		fmt.Fprintln(stdout)

		return 0
	}

	if a.s.HasErrors() {
		_ = r.Errors(stderr)
		_ = r.Synopsis(stderr)

		return 1
	}

	if a.dump.Found() {
		return dumpMatched(stdout, stderr, a)
	}

	defer profile.Profiler{
		Mode: a.pprofMode.Value(""),
		Path: a.pprofDir.Value(""),
	}.Start().Stop()

	return yell(stdout, a, logger)
}

func yell(stdout io.Writer, a args, logger log.Logger) int {
	greeting := strings.ToUpper(a.greeting.Value("hey"))
	count := a.count.Value(1)

	logger.Debug("yelling",
		slog.String("greeting", greeting),
		slog.Int("count", count),
		slog.Int("names", len(a.names.Values())),
	)

	for _, name := range a.names.Values() {
		line := fmt.Sprintf("%s, %s!", greeting, strings.ToUpper(name))

		for range count {
			fmt.Fprintln(stdout, line)
		}
	}

	for _, path := range a.files.Values() {
		if err := shoutFile(stdout, path); err != nil {
			logger.Error("cannot shout file",
				slog.String("path", path),
				slog.Any("error", err),
			)

			return 1
		}
	}

	return 0
}

func shoutFile(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil
	}

	for line := range strings.Lines(text) {
		fmt.Fprintln(w, strings.ToUpper(strings.TrimRight(line, "\n"))+"!")
	}

	return nil
}

type matched struct {
	Names    []string `yaml:"names"`
	Greeting string   `yaml:"greeting"`
	Count    int      `yaml:"count"`
	Files    []string `yaml:"files,omitempty"`
}

func dumpMatched(stdout, stderr io.Writer, a args) int {
	out, err := yaml.Marshal(matched{
		Names:    a.names.Values(),
		Greeting: a.greeting.Value("hey"),
		Count:    a.count.Value(1),
		Files:    a.files.Values(),
	})
	if err != nil {
		fmt.Fprintln(stderr, err)

		return 1
	}

	_, _ = stdout.Write(out)

	return 0
}
