package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/grimoire/internal/common/clock"
	"github.com/KirkDiggler/grimoire/internal/common/uuid"
	"github.com/KirkDiggler/grimoire/internal/config"
	"github.com/KirkDiggler/grimoire/internal/dice"
	"github.com/KirkDiggler/grimoire/internal/engine"
	"github.com/KirkDiggler/grimoire/internal/engine/roles"
	"github.com/KirkDiggler/grimoire/internal/handlers/moderator"
	"github.com/KirkDiggler/grimoire/internal/script"
	"github.com/KirkDiggler/grimoire/internal/services/game"
	"github.com/KirkDiggler/grimoire/internal/services/messaging"
)

var (
	playPlayers     []string
	playRoles       []string
	playScript      string
	playSeed        int64
	playKeepSeating bool
	playPrivate     bool
	playTone        string
)

func newPlayCmd() *cobra.Command {
	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Run a game at the terminal and archive it when it ends",
		Example: `  grimoire play --players Alice,Bob,Carol,Dave,Eve
  grimoire play --players Alice,Bob,Carol,Dave,Eve --roles chef,empath,imp,monk,soldier --keep-seating`,
		RunE: runPlay,
	}

	playCmd.Flags().StringSliceVar(&playPlayers, "players", nil, "Player names in seating order")
	playCmd.Flags().StringSliceVar(&playRoles, "roles", nil, "Role ids to hand out; drawn from the script when empty")
	playCmd.Flags().StringVar(&playScript, "script", "", "Script file (overrides SCRIPT_PATH)")
	playCmd.Flags().Int64Var(&playSeed, "seed", 0, "Seed for role draws and seating (overrides SEED)")
	playCmd.Flags().BoolVar(&playKeepSeating, "keep-seating", false, "Hand --roles out in seat order instead of shuffling")
	playCmd.Flags().BoolVar(&playPrivate, "private", true, "Include statuses and learned information in phase summaries")
	playCmd.Flags().StringVar(&playTone, "tone", "", "Announcement tone: neutral or dramatic (overrides TONE)")
	_ = playCmd.MarkFlagRequired("players")

	return playCmd
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, lgr, err := setup()
	if err != nil {
		return err
	}
	defer lgr.Sync()

	sc, err := loadScript(cmd, cfg)
	if err != nil {
		return err
	}

	archiveRepo, closeArchive, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer closeArchive()

	seed := cfg.Seed
	if cmd.Flags().Changed("seed") {
		seed = playSeed
	}
	tone := messaging.MessageTone(cfg.Tone)
	if cmd.Flags().Changed("tone") {
		tone = messaging.MessageTone(playTone)
	}

	gameSvc, err := game.New(&game.Config{
		Registry:      roles.NewRegistry(),
		Script:        sc,
		MaxGames:      cfg.MaxGames,
		ArchiveRepo:   archiveRepo,
		DiceRoller:    dice.New(&dice.Config{Seed: seed}),
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
		Logger:        lgr,
	})
	if err != nil {
		return fmt.Errorf("failed to create game service: %w", err)
	}

	msgSvc, err := messaging.NewService(&messaging.ServiceConfig{Tone: tone, Seed: seed})
	if err != nil {
		return fmt.Errorf("failed to create messaging service: %w", err)
	}

	driver, err := moderator.New(&moderator.Config{
		GameService: gameSvc,
		Messaging:   msgSvc,
		Moderator:   moderator.NewConsole(os.Stdin, cmd.OutOrStdout()),
		Private:     playPrivate,
		Tone:        tone,
		Logger:      lgr,
	})
	if err != nil {
		return err
	}

	created, err := gameSvc.CreateGame(ctx, &game.CreateGameInput{
		Names:       playPlayers,
		Roles:       roleNames(playRoles),
		KeepSeating: playKeepSeating,
	})
	if err != nil {
		return err
	}

	_, runErr := driver.Run(ctx, created.GameID)
	if runErr != nil {
		lgr.Warn("game stopped early", zap.String("game_id", created.GameID), zap.Error(runErr))
	}

	// ctx may already be cancelled; the archive write should still happen
	ended, err := gameSvc.EndGame(context.WithoutCancel(ctx), &game.EndGameInput{
		GameID:  created.GameID,
		Abandon: runErr != nil,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "archived game %s (%s)\n", ended.Archived.ID, ended.Archived.Outcome)
	return runErr
}

// loadScript reads the script named by --script or SCRIPT_PATH, or returns Trouble Brewing
func loadScript(cmd *cobra.Command, cfg *config.Config) (engine.Script, error) {
	path := cfg.ScriptPath
	if cmd.Flags().Changed("script") {
		path = playScript
	}
	if path == "" {
		return script.TroubleBrewing(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return engine.Script{}, err
	}
	defer f.Close()

	sc, err := script.Load(f)
	if err != nil {
		return engine.Script{}, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func roleNames(ids []string) []engine.RoleName {
	var out []engine.RoleName
	for _, id := range ids {
		out = append(out, engine.RoleName(strings.ToLower(strings.TrimSpace(id))))
	}
	return out
}
