package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	clockMocks "github.com/KirkDiggler/grimoire/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/grimoire/internal/common/uuid/mocks"
	"github.com/KirkDiggler/grimoire/internal/dice"
	"github.com/KirkDiggler/grimoire/internal/engine"
	"github.com/KirkDiggler/grimoire/internal/engine/roles"
	"github.com/KirkDiggler/grimoire/internal/models"
	"github.com/KirkDiggler/grimoire/internal/repositories/archive"
	archiveMocks "github.com/KirkDiggler/grimoire/internal/repositories/archive/mocks"
	"github.com/KirkDiggler/grimoire/internal/script"
)

var fivePlayers = []string{"Alice", "Bob", "Carol", "Dave", "Eve"}

type GameServiceTestSuite struct {
	suite.Suite

	mockCtrl        *gomock.Controller
	mockArchiveRepo *archiveMocks.MockRepository
	mockClock       *clockMocks.MockClock
	mockUUID        *uuidMocks.MockUUID

	ctx         context.Context
	testGameID  string
	testTime    time.Time
	gameService *service
}

func (s *GameServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockArchiveRepo = archiveMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = context.Background()
	s.testGameID = "game-123"
	s.testTime = time.Date(2025, 4, 19, 20, 0, 0, 0, time.UTC)

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	svc, err := New(s.config())
	s.Require().NoError(err)
	s.gameService = svc
}

func (s *GameServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestGameServiceSuite(t *testing.T) {
	suite.Run(t, new(GameServiceTestSuite))
}

func (s *GameServiceTestSuite) config() *Config {
	return &Config{
		Registry:      roles.NewRegistry(),
		Script:        script.TroubleBrewing(),
		ArchiveRepo:   s.mockArchiveRepo,
		DiceRoller:    dice.New(&dice.Config{Seed: 7}),
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Logger:        zap.NewNop(),
	}
}

// createGame seats the roles in the given order under testGameID
func (s *GameServiceTestSuite) createGame(rs ...engine.RoleName) {
	s.mockUUID.EXPECT().NewUUID().Return(s.testGameID)

	out, err := s.gameService.CreateGame(s.ctx, &CreateGameInput{
		Names:       fivePlayers[:len(rs)],
		Roles:       rs,
		KeepSeating: true,
	})
	s.Require().NoError(err)
	s.Require().Equal(s.testGameID, out.GameID)
}

// drain answers every pending request with answer, acknowledging displays
func (s *GameServiceTestSuite) drain(pending []*engine.ChangeRequest, answer engine.Answer) {
	for len(pending) > 0 {
		cr := pending[0]
		if cr.Kind == engine.KindDisplay {
			out, err := s.gameService.Acknowledge(s.ctx, &AcknowledgeInput{GameID: s.testGameID, RequestID: cr.ID})
			s.Require().NoError(err)
			pending = out.Pending
			continue
		}
		s.Require().NotNil(answer, "no answer for %q", cr.Description)
		out, err := s.gameService.SubmitAnswer(s.ctx, &SubmitAnswerInput{
			GameID:    s.testGameID,
			RequestID: cr.ID,
			Answer:    answer,
		})
		s.Require().NoError(err)
		s.Require().True(out.Accepted, out.Reason)
		pending = out.Pending
	}
}

// toDay plays the game through to the execution step of the next day
func (s *GameServiceTestSuite) toDay(answer engine.Answer) {
	for {
		game, err := s.gameService.GetGame(s.ctx, &GetGameInput{GameID: s.testGameID})
		s.Require().NoError(err)
		if game.Step == engine.StepDayExecution {
			return
		}
		if game.Step.Resolves() {
			for {
				out, err := s.gameService.Advance(s.ctx, &AdvanceInput{GameID: s.testGameID})
				s.Require().NoError(err)
				if !out.Resolved {
					break
				}
				s.drain(out.Pending, answer)
			}
		}
		_, err = s.gameService.NextStep(s.ctx, &NextStepInput{GameID: s.testGameID})
		s.Require().NoError(err)
	}
}

func (s *GameServiceTestSuite) TestNew_MissingDependencies() {
	testCases := []struct {
		name   string
		modify func(cfg *Config)
		err    error
	}{
		{"registry", func(cfg *Config) { cfg.Registry = nil }, ErrNilRegistry},
		{"archive repo", func(cfg *Config) { cfg.ArchiveRepo = nil }, ErrNilArchiveRepo},
		{"dice roller", func(cfg *Config) { cfg.DiceRoller = nil }, ErrNilDiceRoller},
		{"clock", func(cfg *Config) { cfg.Clock = nil }, ErrNilClock},
		{"uuid", func(cfg *Config) { cfg.UUIDGenerator = nil }, ErrNilUUIDGenerator},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg := s.config()
			tc.modify(cfg)
			svc, err := New(cfg)
			s.ErrorIs(err, tc.err)
			s.Nil(svc)
		})
	}

	svc, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)
	s.Nil(svc)
}

func (s *GameServiceTestSuite) TestCreateGame_HappyPath() {
	s.createGame(engine.RoleChef, engine.RoleEmpath, engine.RoleImp, engine.RoleMonk, engine.RoleSoldier)

	game, err := s.gameService.GetGame(s.ctx, &GetGameInput{GameID: s.testGameID})
	s.Require().NoError(err)
	s.Equal(engine.StepStart, game.Step)
	s.Equal("tb", game.Script.ID)
	s.Require().Len(game.Players, 5)
	s.Equal("Carol", game.Players[2].Name)
	s.Equal(engine.RoleImp, game.Players[2].Role.Name())
	s.Equal(engine.AlignmentEvil, game.Players[2].Alignment)
	s.Empty(game.Pending)
	s.False(game.Over)
}

func (s *GameServiceTestSuite) TestCreateGame_DrawsRoles() {
	s.mockUUID.EXPECT().NewUUID().Return(s.testGameID)

	out, err := s.gameService.CreateGame(s.ctx, &CreateGameInput{
		Names: []string{"Alice", "Bob", "Carol", "Dave", "Eve", "Frank", "Grace"},
	})
	s.Require().NoError(err)
	s.Len(out.Roles, 7)

	registry := roles.NewRegistry()
	demons := 0
	for _, name := range out.Roles {
		kind, err := registry.TypeOf(name)
		s.Require().NoError(err)
		if kind == engine.Demon {
			demons++
		}
	}
	s.Equal(1, demons)
}

func (s *GameServiceTestSuite) TestCreateGame_UnsupportedPlayerCount() {
	out, err := s.gameService.CreateGame(s.ctx, &CreateGameInput{Names: []string{"Alice", "Bob"}})
	s.ErrorIs(err, script.ErrUnsupportedPlayerCount)
	s.Nil(out)

	out, err = s.gameService.CreateGame(s.ctx, &CreateGameInput{})
	s.ErrorIs(err, ErrNoPlayers)
	s.Nil(out)
}

func (s *GameServiceTestSuite) TestCreateGame_TooManyGames() {
	cfg := s.config()
	cfg.MaxGames = 1
	svc, err := New(cfg)
	s.Require().NoError(err)
	s.gameService = svc

	s.createGame(engine.RoleChef, engine.RoleEmpath, engine.RoleImp, engine.RoleMonk, engine.RoleSoldier)

	s.mockUUID.EXPECT().NewUUID().Return("game-456")
	out, err := s.gameService.CreateGame(s.ctx, &CreateGameInput{
		Names: fivePlayers,
		Roles: []engine.RoleName{engine.RoleChef, engine.RoleEmpath, engine.RoleImp, engine.RoleMonk, engine.RoleSoldier},
	})
	s.ErrorIs(err, ErrTooManyGames)
	s.Nil(out)
}

func (s *GameServiceTestSuite) TestGameNotFound() {
	_, err := s.gameService.GetGame(s.ctx, &GetGameInput{GameID: "missing"})
	s.ErrorIs(err, ErrGameNotFound)

	_, err = s.gameService.Advance(s.ctx, &AdvanceInput{GameID: "missing"})
	s.ErrorIs(err, ErrGameNotFound)

	_, err = s.gameService.EndGame(s.ctx, &EndGameInput{GameID: "missing", Abandon: true})
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *GameServiceTestSuite) TestCancelledContext() {
	s.createGame(engine.RoleChef, engine.RoleEmpath, engine.RoleImp, engine.RoleMonk, engine.RoleSoldier)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err := s.gameService.NextStep(ctx, &NextStepInput{GameID: s.testGameID})
	s.ErrorIs(err, context.Canceled)
}

func (s *GameServiceTestSuite) TestNextStep_EngineErrors() {
	s.createGame(engine.RoleInvestigator, engine.RoleInnkeeper, engine.RoleImp, engine.RoleChef, engine.RolePoisoner)

	out, err := s.gameService.NextStep(s.ctx, &NextStepInput{GameID: s.testGameID})
	s.Require().NoError(err)
	s.Equal(engine.StepSetup, out.Step)

	_, err = s.gameService.NextStep(s.ctx, &NextStepInput{GameID: s.testGameID})
	s.ErrorIs(err, engine.ErrPhaseNotExhausted)

	_, err = s.gameService.Nominate(s.ctx, &NominateInput{GameID: s.testGameID, Nominator: 0, Nominee: 1})
	s.ErrorIs(err, engine.ErrWrongStep)
}

func (s *GameServiceTestSuite) TestSubmitAnswer_RejectedAnswerIsReported() {
	s.createGame(engine.RoleInvestigator, engine.RoleInnkeeper, engine.RoleImp, engine.RoleChef, engine.RolePoisoner)
	_, err := s.gameService.NextStep(s.ctx, &NextStepInput{GameID: s.testGameID})
	s.Require().NoError(err)

	adv, err := s.gameService.Advance(s.ctx, &AdvanceInput{GameID: s.testGameID})
	s.Require().NoError(err)
	s.Require().True(adv.Resolved)
	s.Equal(0, adv.Player)
	s.Require().Len(adv.Pending, 2)

	out, err := s.gameService.SubmitAnswer(s.ctx, &SubmitAnswerInput{
		GameID:    s.testGameID,
		RequestID: adv.Pending[0].ID,
		Answer:    engine.PlayersAnswer{3},
	})
	s.Require().NoError(err)
	s.False(out.Accepted)
	s.NotEmpty(out.Reason)
	s.Len(out.Pending, 2)

	_, err = s.gameService.SubmitAnswer(s.ctx, &SubmitAnswerInput{
		GameID:    s.testGameID,
		RequestID: "req-999",
		Answer:    engine.PlayersAnswer{4},
	})
	s.ErrorIs(err, engine.ErrUnknownRequest)

	out, err = s.gameService.SubmitAnswer(s.ctx, &SubmitAnswerInput{
		GameID:    s.testGameID,
		RequestID: adv.Pending[0].ID,
		Answer:    engine.PlayersAnswer{4},
	})
	s.Require().NoError(err)
	s.True(out.Accepted)
	s.Len(out.Pending, 1)
}

func (s *GameServiceTestSuite) TestVoteExecutesDemonAndArchives() {
	s.createGame(engine.RoleChef, engine.RoleEmpath, engine.RoleImp, engine.RoleMonk, engine.RoleSoldier)
	s.toDay(nil)

	nominated, err := s.gameService.Nominate(s.ctx, &NominateInput{GameID: s.testGameID, Nominator: 0, Nominee: 2})
	s.Require().NoError(err)
	s.Require().Len(nominated.Pending, 1)
	vote := nominated.Pending[0]
	s.Equal(engine.KindVoting, vote.Kind)

	out, err := s.gameService.SubmitAnswer(s.ctx, &SubmitAnswerInput{GameID: s.testGameID, RequestID: vote.ID, Answer: engine.VoteAnswer(3)})
	s.Require().NoError(err)
	s.True(out.Accepted)

	_, err = s.gameService.EndDay(s.ctx, &EndDayInput{GameID: s.testGameID})
	s.Require().NoError(err)

	game, err := s.gameService.GetGame(s.ctx, &GetGameInput{GameID: s.testGameID})
	s.Require().NoError(err)
	s.True(game.Over)
	s.Equal(engine.AlignmentGood, game.Winner)

	var saved *models.ArchivedGame
	s.mockArchiveRepo.EXPECT().
		SaveGame(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *archive.SaveGameInput) error {
			saved = input.Game
			return nil
		})

	ended, err := s.gameService.EndGame(s.ctx, &EndGameInput{GameID: s.testGameID})
	s.Require().NoError(err)
	s.Equal(saved, ended.Archived)
	s.Equal(s.testGameID, saved.ID)
	s.Equal(models.GameOutcomeGood, saved.Outcome)
	s.Equal("tb", saved.ScriptID)
	s.Equal(1, saved.Day)
	s.Equal(s.testTime, saved.FinishedAt)
	s.Require().Len(saved.Players, 5)
	s.Equal(engine.RoleImp, saved.Players[2].Role)
	s.Equal("Evil", saved.Players[2].Alignment)
	s.True(saved.Players[2].Dead)
	s.NotEmpty(saved.Log)

	_, err = s.gameService.GetGame(s.ctx, &GetGameInput{GameID: s.testGameID})
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *GameServiceTestSuite) TestExecuteForcesNight() {
	s.createGame(engine.RoleChef, engine.RoleEmpath, engine.RoleImp, engine.RoleMonk, engine.RoleSoldier)
	s.toDay(nil)

	out, err := s.gameService.Execute(s.ctx, &ExecuteInput{GameID: s.testGameID, Target: 0})
	s.Require().NoError(err)
	s.Equal(engine.StepNight, out.Step)

	history, err := s.gameService.GetLog(s.ctx, &GetLogInput{GameID: s.testGameID})
	s.Require().NoError(err)
	s.Require().NotEmpty(history.Phases)
	s.Equal(engine.StepNight, history.Phases[len(history.Phases)-1].Step)
	s.True(history.Players[0].Dead)
}

func (s *GameServiceTestSuite) TestSpendGhostVote() {
	s.createGame(engine.RoleChef, engine.RoleEmpath, engine.RoleImp, engine.RoleMonk, engine.RoleSoldier)
	s.toDay(nil)

	_, err := s.gameService.SpendGhostVote(s.ctx, &SpendGhostVoteInput{GameID: s.testGameID, Player: 0})
	s.True(engine.IsRecoverable(err), "the living keep their vote")

	_, err = s.gameService.SpendGhostVote(s.ctx, &SpendGhostVoteInput{GameID: "missing", Player: 0})
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *GameServiceTestSuite) TestDayAbilities() {
	s.createGame(engine.RoleSlayer, engine.RoleImp, engine.RoleScarletWoman, engine.RoleChef, engine.RoleEmpath)
	s.toDay(nil)

	listed, err := s.gameService.ListDayAbilities(s.ctx, &ListDayAbilitiesInput{GameID: s.testGameID})
	s.Require().NoError(err)
	s.Equal([]engine.PlayerIndex{0}, listed.Players)

	triggered, err := s.gameService.TriggerDayAbility(s.ctx, &TriggerDayAbilityInput{GameID: s.testGameID, Player: 0})
	s.Require().NoError(err)
	s.Require().Len(triggered.Pending, 1)
	s.drain(triggered.Pending, engine.PlayersAnswer{1})

	game, err := s.gameService.GetGame(s.ctx, &GetGameInput{GameID: s.testGameID})
	s.Require().NoError(err)
	s.True(game.Players[1].Dead)
	s.Equal(engine.RoleImp, game.Players[2].Role.Name())
	s.False(game.Over)

	_, err = s.gameService.TriggerDayAbility(s.ctx, &TriggerDayAbilityInput{GameID: s.testGameID, Player: 0})
	s.True(engine.IsRecoverable(err))
}

func (s *GameServiceTestSuite) TestEndGame_NotOver() {
	s.createGame(engine.RoleChef, engine.RoleEmpath, engine.RoleImp, engine.RoleMonk, engine.RoleSoldier)

	_, err := s.gameService.EndGame(s.ctx, &EndGameInput{GameID: s.testGameID})
	s.ErrorIs(err, ErrGameNotOver)

	s.mockArchiveRepo.EXPECT().
		SaveGame(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *archive.SaveGameInput) error {
			s.Equal(models.GameOutcomeAbandoned, input.Game.Outcome)
			return nil
		})

	out, err := s.gameService.EndGame(s.ctx, &EndGameInput{GameID: s.testGameID, Abandon: true})
	s.Require().NoError(err)
	s.Equal(models.GameOutcomeAbandoned, out.Archived.Outcome)
}

func (s *GameServiceTestSuite) TestEndGame_SaveError() {
	s.createGame(engine.RoleChef, engine.RoleEmpath, engine.RoleImp, engine.RoleMonk, engine.RoleSoldier)
	expectedError := errors.New("redis is down")

	s.mockArchiveRepo.EXPECT().
		SaveGame(gomock.Any(), gomock.Any()).
		Return(expectedError)

	out, err := s.gameService.EndGame(s.ctx, &EndGameInput{GameID: s.testGameID, Abandon: true})
	s.ErrorIs(err, expectedError)
	s.Nil(out)

	_, err = s.gameService.GetGame(s.ctx, &GetGameInput{GameID: s.testGameID})
	s.NoError(err, "the game stays in memory when archiving fails")
}

func (s *GameServiceTestSuite) TestListArchivedGames() {
	games := []*models.ArchivedGame{{ID: "game-2"}, {ID: "game-1"}}
	s.mockArchiveRepo.EXPECT().
		ListGames(gomock.Any(), &archive.ListGamesInput{Limit: 2}).
		Return(&archive.ListGamesOutput{Games: games}, nil)

	out, err := s.gameService.ListArchivedGames(s.ctx, &ListArchivedGamesInput{Limit: 2})
	s.Require().NoError(err)
	s.Equal(games, out.Games)
}
