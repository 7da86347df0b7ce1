// Command sh_game runs one or more Secret Hitler games between named
// agents and reports how each one ended. Grounded on run_sh_game.py's
// argument validation and role-assignment logic, and structurally on
// the teacher's flag + sync.WaitGroup concurrent-games idiom.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/secrethitler/internal/agent"
	"github.com/freeeve/secrethitler/internal/config"
	"github.com/freeeve/secrethitler/internal/logger"
	"github.com/freeeve/secrethitler/internal/resultstore"
	"github.com/freeeve/secrethitler/internal/runner"
	"github.com/freeeve/secrethitler/pkg/hitler"
)

const usage = `Run Secret Hitler Game

Usage:
  sh_game <agent>... [--roles=<roles>] [--games=<num>] [--log=<level>] [--workers=<n>] [--iterations=<n>] [--enable-store]
  sh_game -h | --help

Options:
  -h --help                 Show this screen.
  --roles=<roles>           Comma-separated role per seat (l,l,l,f,h). Empty entries are unconstrained.
  --games=<num>             Number of games to play. [default: 1]
  --log=<level>             Log level (debug, info, warn, error). [default: info]
  --workers=<n>             Number of games to run concurrently. [default: 1]
  --iterations=<n>          Search budget for soismcts/pimc agents. [default: SEARCH_ITERATIONS env, else 100]
  --enable-store            Record results to the database named by DATABASE_URL.

Agent names: random, selfish, soismcts, pimc
Role letters: l (liberal), f (fascist), h (hitler), or empty for unconstrained
`

var hiddenStateMap = map[string]*hitler.SecretRole{
	"h": rolePtr(hitler.RoleHitler),
	"f": rolePtr(hitler.RoleFascist),
	"l": rolePtr(hitler.RoleLiberal),
	"":  nil,
}

func rolePtr(r hitler.SecretRole) *hitler.SecretRole { return &r }

func main() {
	logger.Init()

	var (
		rolesFlag   string
		numGames    int
		logLevel    string
		workers     int
		iterations  int
		enableStore bool
	)

	args := os.Args[1:]
	agentNames, flags := splitArgs(args)
	if len(agentNames) == 0 || hasHelp(flags) {
		fmt.Fprint(os.Stderr, usage)
		if len(agentNames) == 0 {
			os.Exit(1)
		}
		return
	}

	rolesFlag = flagValue(flags, "--roles", "")
	numGames = flagIntValue(flags, "--games", 1)
	logLevel = flagValue(flags, "--log", "info")
	workers = flagIntValue(flags, "--workers", 1)
	enableStore = flagBoolValue(flags, "--enable-store")

	if level, err := zerolog.ParseLevel(logLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	numPlayers := len(agentNames)
	if numPlayers < 5 || numPlayers > 10 {
		fmt.Fprintf(os.Stderr, "invalid number of players: %d. Only 5-10 players allowed.\n%s", numPlayers, usage)
		os.Exit(1)
	}

	for _, name := range agentNames {
		if !validAgentName(name) {
			fmt.Fprintf(os.Stderr, "unknown agent name %q.\n%s", name, usage)
			os.Exit(1)
		}
	}

	roleList := strings.Split(rolesFlag, ",")
	if rolesFlag == "" {
		roleList = make([]string, numPlayers)
	}
	if len(roleList) != numPlayers {
		fmt.Fprintf(os.Stderr, "agent list and role list must be the same length.\n%s", usage)
		os.Exit(1)
	}
	for _, r := range roleList {
		if _, ok := hiddenStateMap[strings.ToLower(r)]; !ok {
			fmt.Fprintf(os.Stderr, "role list may only contain h, f, l, or empty.\n%s", usage)
			os.Exit(1)
		}
	}

	cfg := config.Load()
	iterations = flagIntValue(flags, "--iterations", cfg.DefaultIterations)

	var store *resultstore.Store
	if enableStore {
		s, err := resultstore.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to result store")
		}
		defer s.Close()
		store = s
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("shutting down")
		cancel()
	}()

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i := 0; i < numGames; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := playOneGame(ctx, idx, agentNames, roleList, numPlayers, iterations, cfg.OpponentTremble, store); err != nil {
				log.Error().Err(err).Int("game", idx).Msg("game failed")
			}
		}(i)
	}
	wg.Wait()
}

func playOneGame(ctx context.Context, idx int, agentNames, roleList []string, numPlayers, iterations int, tremble float64, store *resultstore.Store) error {
	gameID := uuid.NewString()
	gctx := logger.WithGameID(ctx, gameID)
	start := time.Now()
	log.Info().Str("gameId", gameID).Int("game", idx).Msg("game started")

	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(idx)))
	roles := resolveRoles(roleList, numPlayers, rng)

	shuffled := fullDeckCards()
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	pub, hidden, err := hitler.StartState(numPlayers, 0, roles, hitler.NewPolicyDeck(shuffled))
	if err != nil {
		return err
	}

	agents := make([]agent.Agent, numPlayers)
	for i, name := range agentNames {
		a, err := agent.ForKind(name, i, numPlayers, roles[i], iterations, tremble)
		if err != nil {
			return err
		}
		agents[i] = a
	}
	runner.RevealFascistTeam(agents, roles, numPlayers)

	result, err := runner.RunGame(gctx, pub, hidden, agents, rng)
	if err != nil {
		return err
	}
	log.Info().
		Str("gameId", gameID).
		Int("game", idx).
		Str("winner", result.WinningParty.String()).
		Str("reason", fmt.Sprint(result.Reason)).
		Dur("elapsed", time.Since(start)).
		Msg("game finished")

	if store != nil {
		players := make([]resultstore.PlayerSummary, numPlayers)
		for i, a := range agents {
			players[i] = resultstore.PlayerSummary{Seat: i, AgentName: a.Name(), Role: roles[i].String()}
		}
		summary := resultstore.GameSummary{
			ID:           gameID,
			NumPlayers:   numPlayers,
			WinningParty: result.WinningParty.String(),
			WinReason:    fmt.Sprint(result.Reason),
			Players:      players,
			PlayedAt:     time.Now(),
		}
		if err := store.RecordGame(gctx, summary); err != nil {
			log.Error().Err(err).Str("gameId", gameID).Msg("failed to record game result")
		}
	}
	return nil
}

func resolveRoles(roleList []string, numPlayers int, rng *rand.Rand) []hitler.SecretRole {
	constrained := make([]*hitler.SecretRole, numPlayers)
	for i, r := range roleList {
		constrained[i] = hiddenStateMap[strings.ToLower(r)]
	}

	candidates := hitler.PossibleRoles(numPlayers)
	var possible [][]hitler.SecretRole
	for _, candidate := range candidates {
		valid := true
		for i, given := range constrained {
			if given != nil && candidate[i] != *given {
				valid = false
				break
			}
		}
		if valid {
			possible = append(possible, candidate)
		}
	}
	if len(possible) == 0 {
		fmt.Fprintf(os.Stderr, "role list is invalid.\n%s", usage)
		os.Exit(1)
	}
	return possible[rng.Intn(len(possible))]
}

func fullDeckCards() []hitler.Party {
	cards := make([]hitler.Party, 0, hitler.DeckSize)
	for i := 0; i < hitler.NumLibPolicy; i++ {
		cards = append(cards, hitler.Liberal)
	}
	for i := 0; i < hitler.NumFasPolicy; i++ {
		cards = append(cards, hitler.Fascist)
	}
	return cards
}

func validAgentName(name string) bool {
	for _, k := range agent.Kinds {
		if name == k {
			return true
		}
	}
	return false
}

func splitArgs(args []string) (positional, flags []string) {
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			flags = append(flags, a)
		} else {
			positional = append(positional, a)
		}
	}
	return positional, flags
}

func hasHelp(flags []string) bool {
	for _, f := range flags {
		if f == "-h" || f == "--help" {
			return true
		}
	}
	return false
}

func flagValue(flags []string, name, fallback string) string {
	prefix := name + "="
	for _, f := range flags {
		if strings.HasPrefix(f, prefix) {
			return strings.TrimPrefix(f, prefix)
		}
	}
	return fallback
}

func flagIntValue(flags []string, name string, fallback int) int {
	v := flagValue(flags, name, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func flagBoolValue(flags []string, name string) bool {
	for _, f := range flags {
		if f == name {
			return true
		}
	}
	return false
}
