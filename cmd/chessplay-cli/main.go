// Command chessplay-cli drives the board and engine packages from the
// command line: best-move search, perft and engine self-play for standard
// chess and Chess960.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"os/signal"
	"runtime/pprof"
	"slices"
	"strings"
	"time"

	"github.com/hailam/chessplay960/internal/board"
	"github.com/hailam/chessplay960/internal/engine"
	"github.com/hailam/chessplay960/internal/storage"
)

// options holds the parsed command line.
type options struct {
	variant    string
	seed       int64
	fen        string
	moves      string
	strategy   string
	depth      int
	difficulty string
	perft      int
	divide     bool
	selfplay   int
	timeout    time.Duration
	save       bool
	stats      bool
	verbose    bool
	cpuprofile string

	set map[string]bool
}

func parseFlags(args []string) (*options, error) {
	o := &options{set: make(map[string]bool)}
	fs := flag.NewFlagSet("chessplay-cli", flag.ContinueOnError)
	fs.StringVar(&o.variant, "variant", "", "rule set: classic or chess960 (default: stored preference)")
	fs.Int64Var(&o.seed, "seed", -1, "Chess960 setup seed (-1 = random)")
	fs.StringVar(&o.fen, "fen", "", "start from this FEN instead of an initial position")
	fs.StringVar(&o.moves, "moves", "", "space separated moves to play first (e2e4 or SAN)")
	fs.StringVar(&o.strategy, "strategy", "", "search strategy: minimax or alphabeta")
	fs.IntVar(&o.depth, "depth", 0, "search depth in plies (default: difficulty preset)")
	fs.StringVar(&o.difficulty, "difficulty", "", "easy, medium or hard")
	fs.IntVar(&o.perft, "perft", 0, "count leaf nodes to this depth and exit")
	fs.BoolVar(&o.divide, "divide", false, "with -perft, print the count below each root move")
	fs.IntVar(&o.selfplay, "selfplay", 0, "play the engine against itself for at most this many plies")
	fs.DurationVar(&o.timeout, "timeout", 0, "abort each search after this long (0 = no limit)")
	fs.BoolVar(&o.save, "save", false, "store the given variant, strategy, depth and difficulty as defaults")
	fs.BoolVar(&o.stats, "stats", false, "print recorded self-play statistics and exit")
	fs.BoolVar(&o.verbose, "v", false, "log search statistics")
	fs.StringVar(&o.cpuprofile, "cpuprofile", "", "write cpu profile to file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes one command and returns the process exit code. Every
// resource opened here is released before it returns.
func run(args []string, out io.Writer) int {
	opts, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := opts.cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Print("could not create CPU profile: ", err)
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Print("could not start CPU profile: ", err)
			return 1
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	store, err := storage.NewStorage()
	if err != nil {
		log.Printf("Warning: storage unavailable: %v (using defaults)", err)
	} else {
		defer store.Close()
		welcome(store)
	}

	prefs := loadPreferences(store)
	opts.apply(prefs)
	if opts.save && store != nil {
		if err := store.SavePreferences(prefs); err != nil {
			log.Printf("Warning: preferences not saved: %v", err)
		}
	}

	if opts.stats {
		if err := printStats(out, store); err != nil {
			log.Print(err)
			return 1
		}
		return 0
	}

	b, err := opts.startBoard(prefs)
	if err != nil {
		log.Print(err)
		return 1
	}

	if opts.perft > 0 {
		runPerft(out, b, opts.perft, opts.divide)
		return 0
	}

	eng, err := opts.newEngine(prefs)
	if err != nil {
		log.Print(err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if opts.selfplay > 0 {
		res := selfPlay(ctx, out, opts, eng, b, prefs)
		recordGame(store, res)
		return 0
	}

	fmt.Fprint(out, b)
	m, err := opts.search(ctx, eng, b)
	switch {
	case errors.Is(err, engine.ErrNoLegalMoves):
		fmt.Fprintln(out, "No legal moves:", outcome(b))
	case err != nil && m.IsNull():
		log.Print(err)
		return 1
	default:
		fmt.Fprintf(out, "bestmove %s (%s), eval %s\n", m, m.SAN(), engine.ScoreToString(eng.Evaluate(m.Execute())))
	}
	return 0
}

// welcome tells a first-time user where their data is kept.
func welcome(store *storage.Storage) {
	first, err := store.IsFirstLaunch()
	if err != nil || !first {
		return
	}
	if dir, err := storage.GetDataDir(); err == nil {
		log.Printf("Preferences and statistics are stored in %s", dir)
	}
	if err := store.MarkFirstLaunchComplete(); err != nil {
		log.Printf("Warning: first launch not recorded: %v", err)
	}
}

// loadPreferences returns the stored preferences, or the defaults when
// storage is unavailable.
func loadPreferences(store *storage.Storage) *storage.Preferences {
	if store == nil {
		return storage.DefaultPreferences()
	}
	prefs, err := store.LoadPreferences()
	if err != nil {
		log.Printf("Warning: preferences not loaded: %v", err)
		return storage.DefaultPreferences()
	}
	return prefs
}

// apply overrides preferences with the flags given on the command line.
func (o *options) apply(prefs *storage.Preferences) {
	if o.set["variant"] {
		prefs.Variant = o.variant
	}
	if o.set["strategy"] {
		prefs.Strategy = o.strategy
	}
	if o.set["difficulty"] {
		prefs.Difficulty = o.difficulty
		prefs.Depth = 0
	}
	if o.set["depth"] {
		prefs.Depth = o.depth
	}
}

// newEngine configures an engine from the difficulty preset, then the
// explicit depth and strategy.
func (o *options) newEngine(prefs *storage.Preferences) (*engine.Engine, error) {
	diff, err := engine.ParseDifficulty(prefs.Difficulty)
	if err != nil {
		return nil, err
	}
	eng := engine.NewEngine(engine.DefaultConfig())
	eng.SetDifficulty(diff)
	if prefs.Depth > 0 {
		eng.SetDepth(prefs.Depth)
	}
	if err := eng.SetStrategy(prefs.Strategy); err != nil {
		return nil, err
	}
	if o.verbose {
		eng.OnInfo = func(info engine.SearchInfo) {
			log.Printf("%s depth %d score %s move %v nodes %d cutoffs %d extensions %d time %v",
				info.Strategy, info.Depth, engine.ScoreToString(info.Score), info.Move,
				info.Nodes, info.Cutoffs, info.Extensions, info.Time.Round(time.Millisecond))
		}
	}
	return eng, nil
}

// startBoard builds the requested initial position and plays -moves on it.
func (o *options) startBoard(prefs *storage.Preferences) (*board.Board, error) {
	var b *board.Board
	if o.fen != "" {
		var err error
		if b, err = board.ParseFEN(o.fen); err != nil {
			return nil, err
		}
	} else {
		v, err := board.ParseVariant(prefs.Variant)
		if err != nil {
			return nil, err
		}
		seed := o.seed
		if seed < 0 {
			seed = time.Now().UnixNano()
		}
		b = board.NewBoardForVariant(v, seed)
	}
	return playMoves(b, strings.Fields(o.moves))
}

func playMoves(b *board.Board, moves []string) (*board.Board, error) {
	for _, s := range moves {
		m, err := board.ParseMove(b, s)
		if err != nil {
			if m, err = board.ParseSAN(b, s); err != nil {
				return nil, err
			}
		}
		tr := b.CurrentPlayer().MakeMove(m)
		if !tr.Status.IsDone() {
			return nil, fmt.Errorf("move %s: %s", s, tr.Status)
		}
		b = tr.To
	}
	return b, nil
}

func (o *options) search(ctx context.Context, eng *engine.Engine, b *board.Board) (board.Move, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	return eng.SearchContext(ctx, b)
}

func runPerft(out io.Writer, b *board.Board, depth int, divide bool) {
	start := time.Now()
	var nodes int64
	if divide {
		counts := board.Divide(b, depth)
		for _, m := range slices.Sorted(maps.Keys(counts)) {
			fmt.Fprintf(out, "%s: %d\n", m, counts[m])
			nodes += counts[m]
		}
		fmt.Fprintln(out)
	} else {
		nodes = board.Perft(b, depth)
	}
	elapsed := time.Since(start)
	nps := float64(nodes) / max(elapsed.Seconds(), 1e-9)
	fmt.Fprintf(out, "perft %d: %d nodes in %v (%.0f nps)\n", depth, nodes, elapsed.Round(time.Millisecond), nps)
}

func printStats(out io.Writer, store *storage.Storage) error {
	if store == nil {
		return errors.New("storage unavailable")
	}
	stats, err := store.LoadStats()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Games: %d  Wins: %d  Losses: %d  Draws: %d  Win rate: %.1f%%\n",
		stats.GamesPlayed, stats.Wins, stats.Losses, stats.Draws, stats.GetWinRate())
	fmt.Fprintf(out, "Longest win streak: %d  Plies played: %d  Time: %v\n",
		stats.LongestWinStrk, stats.TotalPlies, stats.TotalPlayTime.Round(time.Second))
	for _, v := range slices.Sorted(maps.Keys(stats.WinsByVariant)) {
		fmt.Fprintf(out, "  wins as %s: %d\n", v, stats.WinsByVariant[v])
	}
	for _, d := range slices.Sorted(maps.Keys(stats.WinsByDiff)) {
		fmt.Fprintf(out, "  wins at %s: %d\n", d, stats.WinsByDiff[d])
	}
	return nil
}
