// Package gtp implements the line-oriented text protocol used to drive
// Gongo interactively: a handler-table dispatcher in the shape of the
// teacher's gongo_gtp.go, generalized from a toy Color/MoveResult pair of
// interfaces to a real board.Position + mcts.Driver collaborator pair,
// with request ids, error wrapping, and the supplemented commands (undo,
// time_settings/time_left, opg_parameters) the distilled protocol left
// implicit.
package gtp

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/op/go-logging"

	"github.com/skybrian/gongo/internal/board"
	"github.com/skybrian/gongo/internal/config"
	"github.com/skybrian/gongo/internal/mcts"
)

var log = logging.MustGetLogger("gongo.gtp")

// EngineName and EngineVersion are reported by the "name"/"version"
// commands.
const (
	EngineName    = "gongo"
	EngineVersion = "2.0.0"
)

// Clock is the per-colour time state tracked by time_settings/time_left.
// The budget calculation itself is out of scope (§4.8's collaborator
// sleeps for a budget and calls stop); this only stores what the
// controller reports.
type Clock struct {
	MainSeconds    int
	ByoyomiSeconds int
	ByoyomiStones  int
	StonesLeft     int
}

// Engine holds the live position, search parameters, and clocks that
// persist across GTP commands on a single connection.
type Engine struct {
	mu  sync.Mutex
	pos *board.Position
	cfg config.Config

	moves []board.Move // replay history, for undo

	black, white Clock

	selection func() mcts.SelectionPolicy
	playout   func() mcts.PlayoutPolicy
	seed      int64

	searchBudget time.Duration

	params   []float64
	paramsMu sync.Mutex
}

// NewEngine builds an Engine from cfg, starting with a cleared board of
// cfg.BoardSize.
func NewEngine(cfg config.Config) (*Engine, error) {
	e := &Engine{
		cfg:          cfg,
		seed:         cfg.Seed,
		searchBudget: time.Second,
	}
	e.selection = func() mcts.SelectionPolicy {
		if cfg.UsePriors {
			return mcts.MCRAVEWithPriors{K: cfg.RaveK, Priors: mcts.DefaultPriors()}
		}
		return mcts.MCRAVE{K: cfg.RaveK}
	}
	e.playout = func() mcts.PlayoutPolicy { return mcts.BiasedBestOfN{K: cfg.PlayoutSamples} }

	if err := e.resetBoard(cfg.BoardSize, cfg.Komi); err != nil {
		return nil, err
	}
	return e, nil
}

// SetSearchBudget overrides the per-genmove thinking time (default 1s).
func (e *Engine) SetSearchBudget(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.searchBudget = d
}

func (e *Engine) resetBoard(size int, komi float64) error {
	pos, err := board.NewPosition(size)
	if err != nil {
		return err
	}
	pos.Komi = komi
	e.pos = pos
	e.moves = nil
	return nil
}

// === public API ===

// Run reads GTP commands from in, one per line, writes responses to out,
// and returns after "quit" is handled or a non-nil I/O error occurs on
// read.
func Run(e *Engine, in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)
	for {
		id, command, args, err := parseCommand(r)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if command == "" {
			continue
		}

		h, ok := handlers[command]
		var resp response
		if !ok {
			resp = failure("unknown command")
		} else {
			resp = h(e, args)
		}
		fmt.Fprint(out, resp.render(id))

		if command == "quit" {
			return nil
		}
	}
}

// === request parsing ===

var wordRegexp = regexp.MustCompile(`\S+`)
var leadingIDRegexp = regexp.MustCompile(`^\d+$`)

// parseCommand reads lines until it finds a non-blank, non-comment one,
// stripping '#' comments, converting tabs to spaces, and dropping other
// control characters (§6).
func parseCommand(r *bufio.Reader) (id string, cmd string, args []string, err error) {
	for {
		line, readErr := r.ReadString('\n')
		if line == "" && readErr != nil {
			return "", "", nil, readErr
		}

		line = sanitizeLine(line)
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)

		if line != "" {
			words := wordRegexp.FindAllString(line, -1)
			if len(words) > 0 {
				if leadingIDRegexp.MatchString(words[0]) && len(words) > 1 {
					return words[0], words[1], words[2:], nil
				}
				return "", words[0], words[1:], nil
			}
		}

		if readErr != nil {
			return "", "", nil, readErr
		}
	}
}

// sanitizeLine converts tabs to spaces and drops other ASCII control
// characters, per §6's input pre-processing rule.
func sanitizeLine(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		switch {
		case r == '\t':
			b.WriteByte(' ')
		case r == '\n' || r == '\r':
			// line terminators; drop, ReadString already consumed them
		case r < 0x20:
			// other control characters: drop
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// === response formatting ===

type response struct {
	message string
	success bool
}

func success(message string) response { return response{message, true} }
func failure(message string) response { return response{message, false} }

func (r response) render(id string) string {
	prefix := "="
	if !r.success {
		prefix = "?"
	}
	if id != "" {
		prefix += " " + id
	}
	if r.message == "" {
		return prefix + "\n\n"
	}
	return prefix + " " + r.message + "\n\n"
}

// === handler table ===

type handler func(e *Engine, args []string) response

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		"protocol_version": func(e *Engine, args []string) response { return success("2.0") },
		"name":             func(e *Engine, args []string) response { return success(EngineName) },
		"version":          func(e *Engine, args []string) response { return success(EngineVersion) },
		"known_command":    handleKnownCommand,
		"list_commands":    handleListCommands,
		"boardsize":        handleBoardsize,
		"clear_board":      handleClearBoard,
		"komi":             handleKomi,
		"play":             handlePlay,
		"genmove":          handleGenmove,
		"undo":             handleUndo,
		"time_settings":    handleTimeSettings,
		"time_left":        handleTimeLeft,
		"quit":             func(e *Engine, args []string) response { return success("") },
		"opg_parameters":   handleOpgParameters,
		"showboard":        handleShowboard,
	}
}

func handleKnownCommand(e *Engine, args []string) response {
	if len(args) != 1 {
		return failure("wrong number of arguments")
	}
	_, ok := handlers[args[0]]
	return success(strconv.FormatBool(ok))
}

func handleListCommands(e *Engine, args []string) response {
	if len(args) != 0 {
		return failure("wrong number of arguments")
	}
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return success(strings.Join(names, "\n"))
}

func handleBoardsize(e *Engine, args []string) response {
	if len(args) != 1 {
		return failure("wrong number of arguments")
	}
	size, err := strconv.Atoi(args[0])
	if err != nil || size < 1 || size > board.MaxBoardSize {
		return failure("unacceptable size")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	komi := e.cfg.Komi
	if e.pos != nil {
		komi = e.pos.Komi
	}
	if err := e.resetBoard(size, komi); err != nil {
		return failure("unacceptable size")
	}
	return success("")
}

func handleClearBoard(e *Engine, args []string) response {
	if len(args) != 0 {
		return failure("wrong number of arguments")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	komi := e.pos.Komi
	size := e.pos.Size
	if err := e.resetBoard(size, komi); err != nil {
		return failure(err.Error())
	}
	return success("")
}

func handleKomi(e *Engine, args []string) response {
	if len(args) != 1 {
		return failure("wrong number of arguments")
	}
	komi, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return failure("syntax error")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pos.Komi = komi
	return success("")
}

func handlePlay(e *Engine, args []string) response {
	if len(args) != 2 {
		return failure("wrong number of arguments")
	}
	color, ok := board.ParseColor(args[0])
	if !ok || color == board.Empty {
		return failure("syntax error")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	coord, ok := board.ParseCoord(args[1], e.pos.Size)
	if !ok {
		return failure("syntax error")
	}
	if coord != board.PASS {
		info := e.pos.Check(color, coord)
		if info.Illegal() {
			return failure("illegal move")
		}
	}
	if err := e.pos.MakeMove(color, coord); err != nil {
		log.Errorf("play %v %v rejected by engine after passing classification: %v", color, coord, err)
		return failure("illegal move")
	}
	e.moves = append(e.moves, board.Move{Color: color, Coord: coord})
	return success("")
}

func handleGenmove(e *Engine, args []string) response {
	if len(args) != 1 {
		return failure("wrong number of arguments")
	}
	color, ok := board.ParseColor(args[0])
	if !ok || color == board.Empty {
		return failure("syntax error")
	}

	e.mu.Lock()
	pos := e.pos
	if pos.SideToMove() != color {
		// GTP allows asking either colour to move next; reflect it by
		// forcing a pass from the side actually to move so the search
		// runs from the requested colour's perspective, mirroring the
		// teacher's "if the same player plays twice, assume the other
		// passed" convention for GoBoard.Play.
		passer := pos.SideToMove()
		_ = pos.MakeMove(passer, board.PASS)
		e.moves = append(e.moves, board.Move{Color: passer, Coord: board.PASS})
	}
	budget := e.searchBudget
	selection := e.selection
	playout := e.playout
	seed := e.seed
	e.seed++
	e.mu.Unlock()

	driver := &mcts.Driver{
		NumWorkers: e.cfg.NumWorkers,
		Selection:  selection,
		Playout:    playout,
		Seed:       seed,
	}
	driver.Start(pos)
	time.Sleep(budget)
	best := driver.Stop()

	log.Infof("genmove %v: move=%v winrate=%.4f tree=%d", color, best.Move, best.Winrate, best.TreeSize)

	switch {
	case best.Winrate >= e.cfg.PassWinrate:
		e.commitGenmove(color, board.PASS)
		return success("pass")
	case best.TreeSize > 0 && best.Winrate <= e.cfg.ResignWinrate:
		return success("resign")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if best.Move.Coord != board.PASS {
		if info := e.pos.Check(color, best.Move.Coord); info.Illegal() {
			log.Warningf("search returned illegal move %v, passing instead", best.Move)
			if err := e.pos.MakeMove(color, board.PASS); err != nil {
				return failure(err.Error())
			}
			e.moves = append(e.moves, board.Move{Color: color, Coord: board.PASS})
			return success("pass")
		}
	}
	if err := e.pos.MakeMove(color, best.Move.Coord); err != nil {
		return failure(err.Error())
	}
	e.moves = append(e.moves, board.Move{Color: color, Coord: best.Move.Coord})
	return success(board.CoordString(best.Move.Coord, e.pos.Size))
}

// commitGenmove plays move for color while already holding no lock;
// used by the pass branch of handleGenmove which returns before the
// main locked section.
func (e *Engine) commitGenmove(color board.Color, coord int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_ = e.pos.MakeMove(color, coord)
	e.moves = append(e.moves, board.Move{Color: color, Coord: coord})
}

func handleUndo(e *Engine, args []string) response {
	if len(args) != 0 {
		return failure("wrong number of arguments")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.moves) == 0 {
		return failure("cannot undo")
	}
	history := e.moves[:len(e.moves)-1]
	size, komi := e.pos.Size, e.pos.Komi
	pos, err := board.NewPositionFromMoves(size, komi, history)
	if err != nil {
		return failure(err.Error())
	}
	e.pos = pos
	e.moves = history
	return success("")
}

func handleTimeSettings(e *Engine, args []string) response {
	if len(args) != 3 {
		return failure("wrong number of arguments")
	}
	main, err1 := strconv.Atoi(args[0])
	byoyomi, err2 := strconv.Atoi(args[1])
	stones, err3 := strconv.Atoi(args[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return failure("syntax error")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	clock := Clock{MainSeconds: main, ByoyomiSeconds: byoyomi, ByoyomiStones: stones, StonesLeft: stones}
	e.black, e.white = clock, clock
	return success("")
}

func handleTimeLeft(e *Engine, args []string) response {
	if len(args) != 3 {
		return failure("wrong number of arguments")
	}
	color, ok := board.ParseColor(args[0])
	if !ok || color == board.Empty {
		return failure("syntax error")
	}
	secs, err1 := strconv.Atoi(args[1])
	stones, err2 := strconv.Atoi(args[2])
	if err1 != nil || err2 != nil {
		return failure("syntax error")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	clock := e.clockFor(color)
	clock.MainSeconds = secs
	clock.StonesLeft = stones
	e.setClockFor(color, clock)
	return success("")
}

func (e *Engine) clockFor(c board.Color) Clock {
	if c == board.Black {
		return e.black
	}
	return e.white
}

func (e *Engine) setClockFor(c board.Color, clock Clock) {
	if c == board.Black {
		e.black = clock
	} else {
		e.white = clock
	}
}

func handleOpgParameters(e *Engine, args []string) response {
	if len(args) == 0 {
		return failure("wrong number of arguments")
	}
	values := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return failure("syntax error")
		}
		values[i] = v
	}
	e.paramsMu.Lock()
	e.params = append(e.params, values...)
	e.paramsMu.Unlock()
	return success("")
}

// Params returns a snapshot of the parameter vector accumulated by
// opg_parameters, for an external tuning harness to read.
func (e *Engine) Params() []float64 {
	e.paramsMu.Lock()
	defer e.paramsMu.Unlock()
	out := make([]float64, len(e.params))
	copy(out, e.params)
	return out
}

func handleShowboard(e *Engine, args []string) response {
	if len(args) != 0 {
		return failure("wrong number of arguments")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return success("\n" + e.pos.String())
}
