package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/grimoire/internal/engine"
	"github.com/KirkDiggler/grimoire/internal/engine/roles"
	"github.com/KirkDiggler/grimoire/internal/repositories/archive"
	"github.com/KirkDiggler/grimoire/internal/script"
	"github.com/KirkDiggler/grimoire/internal/services/messaging"
)

var historyLimit int

func newHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List archived games, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := setup()
			if err != nil {
				return err
			}
			defer lgr.Sync()

			repo, closeArchive, err := openArchive(cfg)
			if err != nil {
				return err
			}
			defer closeArchive()

			out, err := repo.ListGames(cmd.Context(), &archive.ListGamesInput{Limit: historyLimit})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSCRIPT\tOUTCOME\tDAY\tPLAYERS\tFINISHED")
			for _, g := range out.Games {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
					g.ID, g.ScriptName, g.Outcome, g.Day, len(g.Players), g.FinishedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of games to list (0 lists all)")
	return historyCmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <game-id>",
		Short: "Print the final grimoire and full history of an archived game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := setup()
			if err != nil {
				return err
			}
			defer lgr.Sync()

			repo, closeArchive, err := openArchive(cfg)
			if err != nil {
				return err
			}
			defer closeArchive()

			g, err := repo.GetGame(cmd.Context(), &archive.GetGameInput{GameID: args[0]})
			if err != nil {
				return err
			}

			msgSvc, err := messaging.NewService(&messaging.ServiceConfig{Tone: messaging.ToneNeutral})
			if err != nil {
				return err
			}

			// the archive keeps role names; rebuild players for the renderer
			registry := roles.NewRegistry()
			players := make([]engine.Player, len(g.Players))
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: %s won on day %d\n", g.ScriptName, g.Outcome, g.Day)
			for i, p := range g.Players {
				role, err := registry.New(p.Role)
				if err != nil {
					return err
				}
				players[i] = engine.Player{Name: p.Name, Role: role, Dead: p.Dead}
				state := "alive"
				if p.Dead {
					state = "dead"
				}
				fmt.Fprintf(w, "  %2d. %-10s %-15s %-5s %s\n", p.Seat, p.Name, p.Role, p.Alignment, state)
			}

			for _, phase := range g.Log {
				if phase.Step == engine.StepStart {
					continue
				}
				summary, err := msgSvc.GetPhaseSummary(cmd.Context(), &messaging.GetPhaseSummaryInput{
					Phase:          phase,
					Players:        players,
					IncludePrivate: true,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "== %s ==\n", summary.Title)
				for _, line := range summary.Lines {
					fmt.Fprintf(w, "  %s\n", line)
				}
			}
			return nil
		},
	}
}

func newForgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forget <game-id>",
		Short: "Delete an archived game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := setup()
			if err != nil {
				return err
			}
			defer lgr.Sync()

			repo, closeArchive, err := openArchive(cfg)
			if err != nil {
				return err
			}
			defer closeArchive()

			if err := repo.DeleteGame(cmd.Context(), &archive.DeleteGameInput{GameID: args[0]}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newQuotasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quotas <players>",
		Short: "Print how many of each character type a game holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%q is not a player count", args[0])
			}
			q, err := script.Quotas(n)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Townsfolk %d, Outsiders %d, Minions %d, Demons %d\n",
				q.Townsfolk, q.Outsiders, q.Minions, q.Demons)
			return nil
		},
	}
}
