package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/browser"
	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/session"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

var (
	cfg         Config
	logLevel    string
	excludeUsed bool
	seed        uint64
	seedSet     bool
)

// Execute builds the command tree and runs it.
func Execute() error {
	root := &cobra.Command{
		Use:           "wordle-solver",
		Short:         "Solve Wordle by narrowing candidates from tile feedback",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = loadConfig(); err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("exclude-used") {
				cfg.ExcludeUsed = excludeUsed
			}
			seedSet = cmd.Flags().Changed("seed")
			setupLogging(stderr, cfg.LogLevel)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	root.PersistentFlags().BoolVar(&excludeUsed, "exclude-used", false, "never guess a word twice (overrides EXCLUDE_USED)")
	root.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed for guess selection (unset picks one)")

	root.AddCommand(solveCmd(), simulateCmd(), benchCmd(), assistCmd(), narrowCmd(), serveCmd())
	return root.Execute()
}

// newEngine builds an engine from the persistent flags.
func newEngine() *solver.Engine {
	return seededEngine(solver.Options{ExcludeUsedWords: cfg.ExcludeUsed}, seed, seedSet)
}

// seededEngine seeds the engine when a seed was given (0 included) and
// leaves it unseeded otherwise.
func seededEngine(opts solver.Options, seed uint64, set bool) *solver.Engine {
	if set {
		return solver.NewSeeded(seed, opts)
	}
	return solver.New(nil, opts)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// loadLists reads the answers (dictionary) and allowed-guess lists.
func loadLists(ctx context.Context) (dictionary, allowed []string, err error) {
	answersSrc, allowedSrc := words.Sources(cfg.words())
	if dictionary, err = answersSrc.Words(ctx); err != nil {
		return nil, nil, fmt.Errorf("load answers: %w", err)
	}
	if allowed, err = allowedSrc.Words(ctx); err != nil {
		return nil, nil, fmt.Errorf("load allowed: %w", err)
	}
	log.Info().Int("answers", len(dictionary)).Int("allowed", len(allowed)).Msg("word lists loaded")
	return dictionary, allowed, nil
}

func printResult(res session.Result) {
	fmt.Println(renderBoard(res.History))
	switch res.State {
	case session.StateSolved:
		fmt.Println(renderVerdict(true, fmt.Sprintf("%s in %d", strings.ToUpper(res.Answer), res.Turns)))
	case session.StateExhausted:
		fmt.Println(renderVerdict(false, "out of turns"))
	default:
		fmt.Println(renderVerdict(false, string(res.State)))
	}
}

// solve: play the live puzzle in Chrome.
func solveCmd() *cobra.Command {
	var headful bool
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Play today's live puzzle in a browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			answers, _ := words.Sources(cfg.words())
			bcfg := cfg.browser()
			if headful {
				bcfg.Headless = false
			}
			drv, err := browser.Open(ctx, bcfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := drv.Close(context.Background()); err != nil {
					log.Warn().Err(err).Msg("close browser")
				}
			}()

			d := &session.Driver{Dictionary: answers, Feedback: drv, Sink: drv, Engine: newEngine()}
			res, err := d.Run(ctx)
			printResult(res)
			return err
		},
	}
	cmd.Flags().BoolVar(&headful, "headful", false, "show the browser window")
	return cmd
}

// simulate: play an offline game against a known answer.
func simulateCmd() *cobra.Command {
	var (
		answer string
		useDay bool
		date   string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play an offline game with a chosen or daily answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			dictionary, allowed, err := loadLists(ctx)
			if err != nil {
				return err
			}
			if useDay || answer == "" {
				day := time.Now().UTC()
				if date != "" {
					if day, err = time.Parse("2006-01-02", date); err != nil {
						return fmt.Errorf("bad --date: %w", err)
					}
				}
				var ok bool
				if answer, ok = daily.Answer(day, cfg.DailySalt, dictionary); !ok {
					return fmt.Errorf("no answers loaded")
				}
				log.Info().Str("date", daily.DateKey(day)).Msg("using daily answer")
			}
			g, err := game.New(answer, words.ToSet(allowed))
			if err != nil {
				return err
			}
			d := &session.Driver{Dictionary: words.Static(dictionary), Feedback: g, Sink: g, Engine: newEngine()}
			res, err := d.Run(ctx)
			printResult(res)
			return err
		},
	}
	cmd.Flags().StringVar(&answer, "answer", "", "answer to play against (default: daily answer)")
	cmd.Flags().BoolVar(&useDay, "daily", false, "use the daily answer")
	cmd.Flags().StringVar(&date, "date", "", "date for --daily, YYYY-MM-DD (default today)")
	return cmd
}

// bench: play every answer offline and report the guess distribution.
func benchCmd() *cobra.Command {
	var (
		concurrency int
		limit       int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Play offline games over the answer list",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			dictionary, _, err := loadLists(ctx)
			if err != nil {
				return err
			}
			answers := dictionary
			if limit > 0 && limit < len(answers) {
				answers = answers[:limit]
			}
			factory := func(i int) *solver.Engine {
				return seededEngine(solver.Options{ExcludeUsedWords: cfg.ExcludeUsed}, seed+uint64(i), seedSet)
			}
			start := time.Now()
			res, err := session.Bench(ctx, factory, dictionary, answers, concurrency)
			if err != nil {
				return err
			}
			log.Info().Dur("took", time.Since(start)).Int("games", res.Games).Msg("bench finished")
			fmt.Println(renderBench(res))
			return nil
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 8, "games played in parallel")
	cmd.Flags().IntVar(&limit, "limit", 0, "only play the first N answers")
	return cmd
}

// assist: suggest guesses for a game played elsewhere; tiles are typed in.
func assistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assist",
		Short: "Suggest guesses and read tile patterns from stdin",
		Long: "Prints a guess, then reads the tiles as a pattern (g=correct, y=present, b=absent).\n" +
			"Enter \"word pattern\" to report a different word than the one suggested.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			answers, _ := words.Sources(cfg.words())
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			d := &session.Driver{
				Dictionary: answers,
				Feedback:   p,
				Sink:       p,
				Engine:     newEngine(),
				Options:    []session.Option{session.AllowOverride()},
			}
			res, err := d.Run(ctx)
			printResult(res)
			return err
		},
	}
}

// narrow: print the candidates left after some rows.
func narrowCmd() *cobra.Command {
	var (
		rows  []string
		limit int
	)
	cmd := &cobra.Command{
		Use:     "narrow",
		Short:   "List candidates consistent with the given rows",
		Example: "  wordle-solver narrow --row crane:bgybg --row sloth:bbybb",
		RunE: func(cmd *cobra.Command, args []string) error {
			dictionary, _, err := loadLists(cmd.Context())
			if err != nil {
				return err
			}
			h, err := parseRows(rows)
			if err != nil {
				return err
			}
			candidates := newEngine().Narrow(h, dictionary)
			if h.Len() > 0 {
				fmt.Println(renderBoard(h))
			}
			fmt.Printf("%d candidates\n", len(candidates))
			if limit > 0 && len(candidates) > limit {
				candidates = candidates[:limit]
			}
			fmt.Println(strings.Join(candidates, " "))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&rows, "row", nil, "feedback row as word:pattern, e.g. crane:bgybg (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", 50, "print at most N candidates (0 for all)")
	return cmd
}

// parseRows turns word:pattern flags into a history.
func parseRows(args []string) (feedback.History, error) {
	var h feedback.History
	for _, arg := range args {
		word, pattern, ok := strings.Cut(arg, ":")
		if !ok {
			return feedback.History{}, fmt.Errorf("%w: %q is not word:pattern", feedback.ErrMalformedRow, arg)
		}
		row, err := feedback.ParsePattern(word, pattern)
		if err != nil {
			return feedback.History{}, err
		}
		if h, err = h.Append(row); err != nil {
			return feedback.History{}, err
		}
	}
	return h, nil
}

// serve: run the HTTP API.
func serveCmd() *cobra.Command {
	var sessionTTL time.Duration
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			dictionary, allowed, err := loadLists(ctx)
			if err != nil {
				return err
			}
			mem := store.NewMemoryStore()
			go pruneLoop(ctx, mem, sessionTTL)

			srv := httpserver.New(mem, dictionary, allowed, cfg.server())
			log.Info().Str("port", cfg.Port).Msg("starting go-solver")
			return srv.Start(ctx, ":"+cfg.Port)
		},
	}
	cmd.Flags().DurationVar(&sessionTTL, "session-ttl", time.Hour, "forget sessions created longer ago than this")
	return cmd
}

func pruneLoop(ctx context.Context, mem *store.Memory, ttl time.Duration) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := mem.Prune(ttl); n > 0 {
				log.Debug().Int("pruned", n).Int("live", mem.Len()).Msg("sessions pruned")
			}
		}
	}
}
