// Command termtag queries the termbase from the command line.
//
// Subcommands:
//
//	translate  find approved translations:  termtag translate -from 306 -to 314 "torque wrench"
//	check      check terminology usage:     termtag check -lang 314 "Drehmomentschlüssel"
//	chat       augment a chat prompt and, with -llm, translate it with Claude:
//	           termtag chat -llm "Translate from English to German: Tighten the nut."
//	search     search the termbase:          termtag search -from 306 -mode concordance "torque"
//	analyze    list the termbase terms found in a sentence:
//	           termtag analyze -from 306 -to 314 "Use a torque wrench."
//	languages  list the termbase languages
//	termbases  list the termbases enabled for the service account
//
// Configuration is read the same way as the server's. Exit codes: 0 = success,
// 1 = error, 2 = usage error.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/heartmarshall/termtag/internal/adapter/llm"
	"github.com/heartmarshall/termtag/internal/adapter/provider/kalcium"
	"github.com/heartmarshall/termtag/internal/app"
	"github.com/heartmarshall/termtag/internal/chatfilter"
	"github.com/heartmarshall/termtag/internal/config"
	"github.com/heartmarshall/termtag/internal/domain"
	"github.com/heartmarshall/termtag/internal/service/tag"
	"github.com/heartmarshall/termtag/internal/transport/rest"
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "termtag:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return usageError("missing subcommand (translate, check, chat, search, analyze, languages, termbases)")
	}

	cmd, sub := args[0], args[1:]
	switch cmd {
	case "translate", "check", "chat", "search", "analyze", "languages", "termbases":
	default:
		return usageError("unknown subcommand %q", cmd)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	deps, err := app.Build(cfg, logger)
	if err != nil {
		return err
	}

	switch cmd {
	case "translate":
		return runTranslate(ctx, deps, cfg.Tag, sub, out)
	case "check":
		return runCheck(ctx, deps, cfg.Tag, sub, out)
	case "chat":
		return runChat(ctx, deps, cfg.Tag, sub, out)
	case "search":
		return runSearch(ctx, deps, sub, out)
	case "analyze":
		return runAnalyze(ctx, deps, sub, out)
	case "languages":
		langs, err := deps.Termbase.Languages(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, langs)
	default:
		tbs, err := deps.Termbase.Termbases(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, tbs)
	}
}

// lookupFlags are shared by translate and check.
type lookupFlags struct {
	profile int
	format  string
	exact   bool
}

func (f *lookupFlags) register(fs *flag.FlagSet, defaults config.TagConfig) {
	fs.IntVar(&f.profile, "profile", defaults.DefaultProfileID, "retrieval profile id")
	fs.StringVar(&f.format, "format", defaults.DefaultFormat, "output format: markdown, yaml or unchanged")
	fs.BoolVar(&f.exact, "exact", defaults.ExactMatchesOnly, "keep only concepts whose term occurs in the text")
}

func runTranslate(ctx context.Context, deps *app.Deps, defaults config.TagConfig, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	var lf lookupFlags
	lf.register(fs, defaults)
	from := fs.String("from", "", "source language ids, comma separated")
	to := fs.String("to", "", "target language ids, comma separated")
	if err := fs.Parse(args); err != nil {
		return usageError("%v", err)
	}

	req, err := lookupRequest(lf, *from, *to, fs.Args())
	if err != nil {
		return err
	}
	res, err := deps.Tags.FindTranslation(ctx, req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, res.Text)
	return err
}

func runCheck(ctx context.Context, deps *app.Deps, defaults config.TagConfig, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	var lf lookupFlags
	lf.register(fs, defaults)
	lang := fs.String("lang", "", "language id of the text")
	if err := fs.Parse(args); err != nil {
		return usageError("%v", err)
	}

	req, err := lookupRequest(lf, *lang, *lang, fs.Args())
	if err != nil {
		return err
	}
	res, err := deps.Tags.CheckTerminology(ctx, req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, res.Text)
	return err
}

func runChat(ctx context.Context, deps *app.Deps, defaults config.TagConfig, args []string, out io.Writer) error {
	opts := rest.DefaultOptions(defaults)

	fs := flag.NewFlagSet("chat", flag.ContinueOnError)
	fs.IntVar(&opts.ProfileID, "profile", opts.ProfileID, "retrieval profile id")
	fs.BoolVar(&opts.ExactMatchesOnly, "exact", opts.ExactMatchesOnly, "keep only concepts whose term occurs in the text")
	useLLM := fs.Bool("llm", false, "send the augmented prompt to Claude and print the answer")
	if err := fs.Parse(args); err != nil {
		return usageError("%v", err)
	}
	prompt := strings.Join(fs.Args(), " ")
	if prompt == "" {
		return usageError("chat: missing prompt")
	}

	in, err := deps.Filter.Inlet(ctx, chatfilter.Body{Messages: []chatfilter.Message{{Role: "user", Content: prompt}}}, opts)
	if err != nil {
		return err
	}
	if !*useLLM {
		_, err = fmt.Fprintln(out, in.Body.Messages[0].Content)
		return err
	}
	if deps.LLM == nil {
		return fmt.Errorf("chat: -llm needs LLM_API_KEY")
	}

	answer, err := deps.LLM.Translate(ctx, []llm.Message{{Role: "user", Content: in.Body.Messages[0].Content}})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, answer)
	return err
}

// termbaseFlags are shared by search and analyze.
type termbaseFlags struct {
	from, to   string
	mode       string
	similarity float64
	stem       bool
}

func (f *termbaseFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.from, "from", "", "source language ids, comma separated")
	fs.StringVar(&f.to, "to", "", "target language ids, comma separated")
	fs.StringVar(&f.mode, "mode", string(kalcium.ModeFuzzy), "search mode, e.g. fuzzy, concordance, wildcard")
	fs.Float64Var(&f.similarity, "similarity", 0, "similarity rate between 0 and 1 (0 = server default)")
	fs.BoolVar(&f.stem, "stem", false, "use the termbase stemmer")
}

func (f termbaseFlags) languages() (src, tgt []int, err error) {
	if src, err = parseIDs(f.from); err != nil {
		return nil, nil, err
	}
	if tgt, err = parseIDs(f.to); err != nil {
		return nil, nil, err
	}
	return src, tgt, nil
}

func runSearch(ctx context.Context, deps *app.Deps, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	var tf termbaseFlags
	tf.register(fs)
	limit := fs.Int("max", 0, "maximum number of results (0 = 100)")
	if err := fs.Parse(args); err != nil {
		return usageError("%v", err)
	}
	term := strings.Join(fs.Args(), " ")
	if term == "" {
		return usageError("search: missing term")
	}
	src, tgt, err := tf.languages()
	if err != nil {
		return err
	}

	res, err := deps.Termbase.Search(ctx, kalcium.SearchRequest{
		Term:              term,
		SourceLanguageIDs: src,
		TargetLanguageIDs: tgt,
		Mode:              kalcium.SearchMode(tf.mode),
		SimilarityRate:    tf.similarity,
		UseStemmer:        tf.stem,
		MaxCount:          *limit,
	})
	if err != nil {
		return err
	}
	return printJSON(out, res)
}

func runAnalyze(ctx context.Context, deps *app.Deps, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	var tf termbaseFlags
	tf.register(fs)
	entries := fs.Bool("entries", false, "include the matched entries")
	if err := fs.Parse(args); err != nil {
		return usageError("%v", err)
	}
	sentence := strings.Join(fs.Args(), " ")
	if sentence == "" {
		return usageError("analyze: missing sentence")
	}
	src, tgt, err := tf.languages()
	if err != nil {
		return err
	}

	res, err := deps.Termbase.AnalyzeSentence(ctx, kalcium.AnalyzeRequest{
		Sentence:          sentence,
		SourceLanguageIDs: src,
		TargetLanguageIDs: tgt,
		Mode:              kalcium.SearchMode(tf.mode),
		SimilarityRate:    tf.similarity,
		UseStemmer:        tf.stem,
		IncludeEntries:    *entries,
	})
	if err != nil {
		return err
	}
	return printJSON(out, res)
}

func lookupRequest(lf lookupFlags, from, to string, words []string) (tag.Request, error) {
	src, err := parseIDs(from)
	if err != nil {
		return tag.Request{}, err
	}
	tgt, err := parseIDs(to)
	if err != nil {
		return tag.Request{}, err
	}
	req := tag.Request{
		Text:              strings.Join(words, " "),
		ProfileID:         lf.profile,
		SourceLanguageIDs: src,
		TargetLanguageIDs: tgt,
		Format:            domain.Format(lf.format),
		ExactMatchesOnly:  lf.exact,
	}
	if req.Text == "" {
		return tag.Request{}, usageError("missing text")
	}
	return req, nil
}

// parseIDs reads a comma separated list of language ids.
func parseIDs(raw string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, usageError("invalid language id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}
