package engine

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/KirkDiggler/grimoire/internal/common/uuid"
)

// settleLimit bounds the reaction loop; each pass either applies something
// or stops.
const settleLimit = 64

type cursor struct {
	seat   PlayerIndex
	rank   int
	ranked bool
}

// Game drives one State through the step machine. The moderator paces it:
// Advance resolves one player at a time, Submit answers one pending change
// request at a time, NextStep moves on once a step is done.
type Game struct {
	state     *State
	queue     []*ChangeRequest
	cursor    *cursor
	exhausted bool
	reacted   map[PlayerIndex]int
	over      bool

	ids    uuid.UUID
	logger *zap.Logger
}

// NewGame seats a game and holds it at StepStart.
func NewGame(cfg *Config) (*Game, error) {
	state, err := New(cfg)
	if err != nil {
		return nil, err
	}

	ids := cfg.UUID
	if ids == nil {
		ids = uuid.New()
	}

	return &Game{
		state:   state,
		reacted: make(map[PlayerIndex]int),
		ids:     ids,
		logger:  state.logger,
	}, nil
}

// State is a read-only view of the game.
func (g *Game) State() View {
	return g.state
}

// Step is the current step.
func (g *Game) Step() Step {
	return g.state.step
}

// Exhausted reports whether every active player has resolved this step.
// Steps without night order are always exhausted.
func (g *Game) Exhausted() bool {
	return g.exhausted || !g.state.step.Resolves()
}

// Pending returns the change requests waiting for the moderator, oldest first.
func (g *Game) Pending() []*ChangeRequest {
	return slices.Clone(g.queue)
}

// GameOver reports whether the game has ended. The outcome is not settled
// while change requests are pending.
func (g *Game) GameOver() (bool, error) {
	if g.over {
		return true, nil
	}
	if len(g.queue) > 0 {
		return false, nil
	}
	return g.state.GameOver()
}

// Winner returns the winning team once the game has ended.
func (g *Game) Winner() (Alignment, bool, error) {
	if !g.over && len(g.queue) > 0 {
		return AlignmentAny, false, nil
	}
	return g.state.Winner()
}

// Advance resolves the next active player of a Setup or Night step and
// issues their change requests. It returns false once the step is exhausted.
func (g *Game) Advance() (PlayerIndex, bool, error) {
	if g.over {
		return NoPlayer, false, ErrGameOver
	}
	if !g.state.step.Resolves() {
		return NoPlayer, false, fmt.Errorf("%w: nobody acts in order during %s", ErrWrongStep, g.state.step)
	}
	if len(g.queue) > 0 {
		return NoPlayer, false, ErrRequestsPending
	}
	if g.exhausted {
		return NoPlayer, false, nil
	}

	var next PlayerIndex
	var ok bool
	if g.cursor == nil {
		next, ok = g.state.NextActive(nil)
	} else {
		next, ok = g.state.nextActive(g.cursor.seat, g.cursor.rank, g.cursor.ranked)
	}
	if !ok {
		g.exhausted = true
		g.logger.Debug("step exhausted", zap.Stringer("step", g.state.step))
		return NoPlayer, false, nil
	}

	rank, ranked := g.state.Rank(next)
	g.cursor = &cursor{seat: next, rank: rank, ranked: ranked}

	reqs, err := g.resolve(next)
	if err != nil {
		return NoPlayer, false, err
	}
	g.logger.Debug("player resolved",
		zap.Stringer("step", g.state.step),
		zap.Int("player", next),
		zap.Int("rank", rank),
		zap.Int("requests", len(reqs)),
	)
	g.issue(reqs...)

	return next, true, g.settle()
}

func (g *Game) resolve(p PlayerIndex) ([]*ChangeRequest, error) {
	role, err := g.state.ActingRole(p)
	if err != nil {
		return nil, err
	}

	var reqs []*ChangeRequest
	switch g.state.step {
	case StepSetup:
		reqs = role.SetupAbility(p, g.state)
	case StepNightOne:
		reqs = role.NightOneAbility(p, g.state)
	case StepNight:
		reqs = role.NightAbility(p, g.state)
	}
	return g.prepare(p, reqs), nil
}

// prepare stamps the acting player and strips the effect of impaired players.
func (g *Game) prepare(p PlayerIndex, reqs []*ChangeRequest) []*ChangeRequest {
	reqs = slices.DeleteFunc(reqs, func(cr *ChangeRequest) bool { return cr == nil })
	for _, cr := range reqs {
		if cr.Player == NoPlayer {
			cr.By(p)
		}
	}
	if label := g.state.impairment(p); label != "" {
		return Impair(reqs, label)
	}
	return reqs
}

func (g *Game) issue(reqs ...*ChangeRequest) {
	g.insert(len(g.queue), reqs...)
}

func (g *Game) insert(at int, reqs ...*ChangeRequest) {
	reqs = slices.DeleteFunc(reqs, func(cr *ChangeRequest) bool { return cr == nil })
	for _, cr := range reqs {
		cr.ID = g.ids.NewUUID()
		g.logger.Debug("change request issued",
			zap.String("id", cr.ID),
			zap.Stringer("kind", cr.Kind),
			zap.String("description", cr.Description),
		)
	}
	g.queue = slices.Insert(g.queue, at, reqs...)
}

func (g *Game) find(id string) (int, error) {
	i := slices.IndexFunc(g.queue, func(cr *ChangeRequest) bool { return cr.ID == id })
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrUnknownRequest, id)
	}
	return i, nil
}

// Submit answers a pending change request. A rejected answer (see
// IsRecoverable) leaves the game untouched and the request pending.
func (g *Game) Submit(id string, a Answer) error {
	if g.over {
		return ErrGameOver
	}
	i, err := g.find(id)
	if err != nil {
		return err
	}

	if err := g.queue[i].Check(g.state, a); err != nil {
		if IsRecoverable(err) {
			g.logger.Debug("answer rejected", zap.String("id", id), zap.Error(err))
		}
		return err
	}
	if err := g.apply(i, a); err != nil {
		return err
	}
	return g.settle()
}

// Acknowledge resolves a pending display request.
func (g *Game) Acknowledge(id string) error {
	if g.over {
		return ErrGameOver
	}
	i, err := g.find(id)
	if err != nil {
		return err
	}
	if g.queue[i].Kind != KindDisplay {
		return fmt.Errorf("%w: %s is not a display request", ErrWrongAnswerKind, id)
	}
	if err := g.apply(i, nil); err != nil {
		return err
	}
	return g.settle()
}

// apply runs the mutator of queue[i] and puts its follow-ups in its place.
func (g *Game) apply(i int, a Answer) error {
	cr := g.queue[i]
	follow, err := cr.Apply(g.state, a)
	if err != nil {
		return fmt.Errorf("applying %q: %w", cr.Description, err)
	}
	g.queue = slices.Delete(g.queue, i, i+1)

	next := append([]*ChangeRequest{follow}, g.state.drainPending()...)
	for _, x := range next {
		if x != nil && x.Player == NoPlayer {
			x.By(cr.Player)
		}
	}
	g.insert(i, next...)
	return nil
}

// settle applies automatic requests and reactions until nothing changes,
// forces night after an execution and checks for game over.
func (g *Game) settle() error {
	for range settleLimit {
		applied, err := g.applyAutomatic()
		if err != nil {
			return err
		}
		reacted := g.react()

		forced := false
		if g.state.step == StepDayExecution && g.state.executed && len(g.queue) == 0 {
			g.enter(StepNight)
			forced = true
		}
		if !applied && !reacted && !forced {
			break
		}
	}
	g.checkOver()
	return nil
}

func (g *Game) applyAutomatic() (bool, error) {
	applied := false
	for {
		i := slices.IndexFunc(g.queue, func(cr *ChangeRequest) bool { return cr.Kind == KindNoModerator })
		if i < 0 {
			return applied, nil
		}
		if err := g.apply(i, nil); err != nil {
			return applied, err
		}
		applied = true
	}
}

// react issues automatic day abilities. A player reacts at most once per
// batch of new log events.
func (g *Game) react() bool {
	if !g.state.step.IsDay() {
		return false
	}
	seen := len(g.state.log.Current().Events)
	reacted := false
	for p := range g.state.players {
		if last, ok := g.reacted[p]; ok && last == seen {
			continue
		}
		reqs, automatic := g.dayAbility(p)
		if !automatic {
			continue
		}
		g.reacted[p] = seen
		g.issue(reqs...)
		reacted = true
	}
	return reacted
}

// dayAbility returns a player's available day ability and whether it is
// applied without the moderator.
func (g *Game) dayAbility(p PlayerIndex) ([]*ChangeRequest, bool) {
	role, err := g.state.ActingRole(p)
	if err != nil || !role.HasDayAbility(g.state.step, p, g.state) {
		return nil, false
	}
	reqs := g.prepare(p, role.DayAbility(g.state.step, p, g.state))
	if len(reqs) == 0 {
		return nil, false
	}
	automatic := !slices.ContainsFunc(reqs, func(cr *ChangeRequest) bool { return cr.Kind != KindNoModerator })
	return reqs, automatic
}

// DayAbilities lists players who may use a day ability now.
func (g *Game) DayAbilities() []PlayerIndex {
	if !g.state.step.IsDay() {
		return nil
	}
	var out []PlayerIndex
	for p := range g.state.players {
		if reqs, automatic := g.dayAbility(p); len(reqs) > 0 && !automatic {
			out = append(out, p)
		}
	}
	return out
}

// TriggerDayAbility issues a player's day ability.
func (g *Game) TriggerDayAbility(p PlayerIndex) error {
	if g.over {
		return ErrGameOver
	}
	if !g.state.step.IsDay() {
		return fmt.Errorf("%w: day abilities are used during the day", ErrWrongStep)
	}
	if err := g.state.checkPlayer(p); err != nil {
		return err
	}
	reqs, automatic := g.dayAbility(p)
	if len(reqs) == 0 || automatic {
		return InvalidPlayer(g.state.players[p].Name + " has no day ability to use")
	}
	g.issue(reqs...)
	return g.settle()
}

// Nominate records a nomination and issues the vote on it.
func (g *Game) Nominate(nominator, nominee PlayerIndex) error {
	if err := g.dayExecution(); err != nil {
		return err
	}
	if err := g.state.nominate(nominator, nominee); err != nil {
		return err
	}

	maxVotes := g.state.eligibleVoters()
	name := g.state.players[nominee].Name
	vote := Vote(fmt.Sprintf("How many players voted to execute %s?", name)).
		By(nominator).
		WithValidator(func(v View, a Answer) error {
			n, err := Votes(a)
			if err != nil {
				return err
			}
			if n > maxVotes {
				return InvalidPlayer(fmt.Sprintf("only %d players can vote", maxVotes))
			}
			return nil
		}).
		WithMutator(func(s *State, a Answer) (*ChangeRequest, error) {
			n, err := Votes(a)
			if err != nil {
				return nil, err
			}
			s.recordVotes(nominee, n)
			return nil, nil
		})
	g.issue(vote)
	return g.settle()
}

// SpendGhostVote records that a dead player used their one ghost vote.
// Later votes no longer count them.
func (g *Game) SpendGhostVote(p PlayerIndex) error {
	if err := g.dayExecution(); err != nil {
		return err
	}
	return g.state.spendGhostVote(p)
}

// Execute executes a player immediately and ends the day.
func (g *Game) Execute(target PlayerIndex) error {
	if err := g.dayExecution(); err != nil {
		return err
	}
	if _, err := g.state.Execute(target); err != nil {
		return err
	}
	return g.settle()
}

// EndDay closes the day: the player on the block, if any, is executed and
// the game moves to night.
func (g *Game) EndDay() error {
	if err := g.dayExecution(); err != nil {
		return err
	}

	if !g.state.executed {
		if target, ok := g.state.onTheBlock(); ok {
			if _, err := g.state.Execute(target); err != nil {
				return err
			}
		}
	}

	executed := g.state.executed
	for p, pl := range g.state.players {
		if pl.Dead || g.state.IsImpaired(p) {
			continue
		}
		if closer, ok := pl.Role.(DayCloser); ok {
			closer.CloseDay(p, executed, g.state)
		}
	}

	if err := g.settle(); err != nil {
		return err
	}
	if !g.over && g.state.step == StepDayExecution && len(g.queue) == 0 {
		g.enter(StepNight)
		return g.settle()
	}
	return nil
}

func (g *Game) dayExecution() error {
	if g.over {
		return ErrGameOver
	}
	if g.state.step != StepDayExecution {
		return fmt.Errorf("%w: nominations happen during %s", ErrWrongStep, StepDayExecution)
	}
	if len(g.queue) > 0 {
		return ErrRequestsPending
	}
	return nil
}

// NextStep moves the game to the following step. Night-order steps must be
// exhausted first; leaving DayExecution ends the day.
func (g *Game) NextStep() error {
	if g.over {
		return ErrGameOver
	}
	if len(g.queue) > 0 {
		return ErrRequestsPending
	}
	step := g.state.step
	if step.Resolves() && !g.exhausted {
		return ErrPhaseNotExhausted
	}
	if step == StepDayExecution {
		return g.EndDay()
	}
	g.enter(step.Next())
	return g.settle()
}

func (g *Game) enter(step Step) {
	g.state.advance(step)
	g.cursor = nil
	g.exhausted = false
	g.reacted = make(map[PlayerIndex]int)
	g.logger.Info("step started",
		zap.Stringer("step", step),
		zap.Int("day", g.state.day),
		zap.Int("living", g.state.LivingCount()),
	)
}

func (g *Game) checkOver() {
	if g.over || len(g.queue) > 0 {
		return
	}
	winner, over, err := g.state.Winner()
	if err != nil || !over {
		return
	}
	g.over = true
	g.logger.Info("game over", zap.Stringer("winner", winner))
}
