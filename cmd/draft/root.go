package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	appplayers "github.com/preston-bernstein/team-draft-service/internal/app/players"
	appteams "github.com/preston-bernstein/team-draft-service/internal/app/teams"
	"github.com/preston-bernstein/team-draft-service/internal/config"
	"github.com/preston-bernstein/team-draft-service/internal/domain/players"
	"github.com/preston-bernstein/team-draft-service/internal/draft"
	"github.com/preston-bernstein/team-draft-service/internal/export"
	"github.com/preston-bernstein/team-draft-service/internal/logging"
	"github.com/preston-bernstein/team-draft-service/internal/providers/fixture"
	"github.com/preston-bernstein/team-draft-service/internal/store"
)

type generateOptions struct {
	roster      string
	perTeam     int
	balance     bool
	seed        int64
	showRatings bool
	verbose     bool
}

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "draft",
		Short:        "Split a roster into balanced teams",
		SilenceUsage: true,
	}
	root.AddCommand(newGenerateCmd(cfg))
	return root
}

func newGenerateCmd(cfg config.Config) *cobra.Command {
	opts := generateOptions{
		perTeam:     cfg.Draft.PlayersPerTeam,
		balance:     cfg.Draft.BalanceByRating,
		seed:        cfg.Draft.Seed,
		showRatings: true,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Draft teams from a roster file",
		Long: `Draft teams from a roster file and print them as shareable text.

The roster is either a JSON array of players ({"name", "rating", "isGoalkeeper"})
or plain text with one name per line; list numbering and trailing notes are ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seeded := cfg.Draft.HasSeed || cmd.Flags().Changed("seed")
			return runGenerate(cmd, cfg, opts, seeded)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.roster, "roster", "", "Path to the roster file (JSON or one name per line)")
	flags.IntVar(&opts.perTeam, "per-team", opts.perTeam, "Players per team")
	flags.BoolVar(&opts.balance, "balance", opts.balance, "Balance teams by rating")
	flags.Int64Var(&opts.seed, "seed", opts.seed, "Seed the shuffle for repeatable drafts")
	flags.BoolVar(&opts.showRatings, "ratings", opts.showRatings, "Show ratings in the output (balanced drafts only)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log at the configured LOG_LEVEL instead of warnings only")
	_ = cmd.MarkFlagRequired("roster")

	return cmd
}

func runGenerate(cmd *cobra.Command, cfg config.Config, opts generateOptions, seeded bool) error {
	raw, err := os.ReadFile(opts.roster)
	if err != nil {
		return fmt.Errorf("failed to read roster: %w", err)
	}

	level := "warn"
	if opts.verbose {
		level = cfg.Logging.Level
	}
	logger := logging.NewLogger(logging.Config{
		Level:  level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})

	allocator := draft.New(nil)
	if seeded {
		allocator = draft.NewSeeded(opts.seed)
	}

	memoryStore := store.NewMemoryStore()
	playerSvc := appplayers.NewService(memoryStore, fixture.New(), logger)
	teamSvc := appteams.NewService(memoryStore, allocator, nil, logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := loadRoster(ctx, playerSvc, string(raw), opts.balance); err != nil {
		return err
	}

	run, err := teamSvc.Generate(ctx, opts.perTeam, opts.balance)
	if err != nil {
		return fmt.Errorf("failed to generate teams: %w", err)
	}

	exportOpts := export.Options{ShowRatings: opts.showRatings}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, teamSvc.Export(exportOpts))
	exportOpts.ShowRatings = exportOpts.ShowRatings && run.BalanceByRating
	if unassigned := export.FormatUnassigned(run.Unassigned, exportOpts); unassigned != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, unassigned)
	}
	return nil
}

func loadRoster(ctx context.Context, svc *appplayers.Service, raw string, balance bool) error {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		var drafts []players.Draft
		if err := json.Unmarshal([]byte(trimmed), &drafts); err != nil {
			return fmt.Errorf("failed to parse roster JSON: %w", err)
		}
		if _, err := svc.AddBatch(drafts, balance); err != nil {
			return err
		}
		return nil
	}

	if _, err := svc.Import(ctx, trimmed, balance); err != nil {
		return fmt.Errorf("failed to import roster: %w", err)
	}
	return nil
}
