package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkordes/tripvote/internal/app"
	"github.com/pkordes/tripvote/internal/config"
	"github.com/pkordes/tripvote/internal/domain"
	"github.com/pkordes/tripvote/internal/service"
	"github.com/pkordes/tripvote/internal/voting"
)

// cli carries what every command needs. load is swapped in tests.
type cli struct {
	load   func() (config.Config, error)
	logger *slog.Logger
}

// withApp opens the configured store, runs fn and closes the store.
func (c *cli) withApp(ctx context.Context, fn func(*app.App) error) error {
	cfg, err := c.load()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	a, err := app.New(ctx, cfg, c.logger)
	if err != nil {
		cancel()
		return err
	}
	defer func() {
		cancel()
		a.Close()
	}()
	return fn(a)
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "tripctl",
		Short:         "Operate the trip planner store",
		SilenceUsage: true,
	}
	root.AddCommand(
		newMigrateCmd(c),
		newTripCmd(c),
		newScheduleCmd(c),
		newVoteCmd(c),
		newUserCmd(c),
	)
	return root
}

// ---- migrate ---------------------------------------------------------------

func newMigrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations (sqlite and postgres drivers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.load()
			if err != nil {
				return err
			}
			if err := app.Migrate(cmd.Context(), cfg, c.logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations up to date (%s)\n", cfg.StoreDriver)
			return nil
		},
	}
}

// ---- trip ------------------------------------------------------------------

func newTripCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Inspect and create trips",
	}
	cmd.AddCommand(newTripFindCmd(c), newTripCreateCmd(c))
	return cmd
}

func newTripFindCmd(c *cli) *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Look up a trip by its join code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd.Context(), func(a *app.App) error {
				trip, err := a.Trips.FindByCode(cmd.Context(), code)
				if err != nil {
					return err
				}
				return printJSON(cmd, trip)
			})
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "join code (case-insensitive)")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func newTripCreateCmd(c *cli) *cobra.Command {
	var (
		in                   service.TripInput
		deadline, start, end string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a trip and print its join code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if in.Deadline, err = parseDateFlag("deadline", deadline); err != nil {
				return err
			}
			if in.StartDate, err = parseDateFlag("start", start); err != nil {
				return err
			}
			if in.EndDate, err = parseDateFlag("end", end); err != nil {
				return err
			}
			return c.withApp(cmd.Context(), func(a *app.App) error {
				trip, err := a.Trips.Create(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", trip.ID, trip.Code)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "trip title")
	f.StringVar(&in.Location, "location", "", "destination")
	f.StringVar(&in.Description, "description", "", "free-form description")
	f.StringVar(&deadline, "deadline", "", "voting deadline (YYYY-MM-DD)")
	f.StringVar(&start, "start", "", "first day (YYYY-MM-DD)")
	f.StringVar(&end, "end", "", "last day (YYYY-MM-DD)")
	f.StringSliceVar(&in.Participants, "participant", nil, "participant name (repeatable)")
	return cmd
}

// ---- schedule --------------------------------------------------------------

func newScheduleCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Work with trip schedules",
	}

	var tripID string
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate and store the day-by-day schedule of a trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd.Context(), func(a *app.App) error {
				days, err := a.Schedules.Generate(cmd.Context(), tripID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, d := range days {
					fmt.Fprintln(out, d.Date)
					for _, it := range d.Items {
						fmt.Fprintf(out, "  %s  %s\n", it.Time, it.Title)
					}
				}
				return nil
			})
		},
	}
	generate.Flags().StringVar(&tripID, "trip", "", "trip id")
	_ = generate.MarkFlagRequired("trip")

	cmd.AddCommand(generate)
	return cmd
}

// ---- vote ------------------------------------------------------------------

func newVoteCmd(c *cli) *cobra.Command {
	var tripID, category, proposalID, as string
	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Toggle a participant's vote on a proposal",
		Long: `Toggle a participant's vote on a proposal and print the category ranking.

The voter is --as, or the current user stored with "tripctl user set".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := domain.ParseCategory(category)
			if err != nil {
				return err
			}
			return c.withApp(cmd.Context(), func(a *app.App) error {
				voter := strings.TrimSpace(as)
				if voter == "" {
					if voter, err = a.Identity.CurrentUser(cmd.Context()); err != nil {
						return err
					}
				}
				if voter == "" {
					return errors.New("no voter: pass --as or run \"tripctl user set NAME\"")
				}

				trip, err := a.Proposals.ToggleVote(cmd.Context(), tripID, cat, proposalID, voter)
				if err != nil {
					return err
				}
				proposals, _ := trip.Categories.Get(cat)
				out := cmd.OutOrStdout()
				for _, r := range voting.RankWithRates(proposals, len(trip.Participants)) {
					marker := " "
					if r.Proposal.HasVoter(voter) {
						marker = "*"
					}
					fmt.Fprintf(out, "%d. %s %s (%d votes, %.0f%%)\n", r.Position, marker, r.Proposal.Name, r.Proposal.Votes, r.Rate)
				}
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&tripID, "trip", "", "trip id")
	f.StringVar(&category, "category", "", "restaurant, accommodation, attraction or activity")
	f.StringVar(&proposalID, "proposal", "", "proposal id")
	f.StringVar(&as, "as", "", "participant name (defaults to the current user)")
	for _, name := range []string{"trip", "category", "proposal"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

// ---- user ------------------------------------------------------------------

func newUserCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Show or set the current participant name",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the current participant name",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withApp(cmd.Context(), func(a *app.App) error {
					name, err := a.Identity.CurrentUser(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), name)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set NAME",
			Short: "Store the current participant name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := strings.TrimSpace(args[0])
				if name == "" {
					return fmt.Errorf("%w: name is required", domain.ErrValidation)
				}
				return c.withApp(cmd.Context(), func(a *app.App) error {
					return a.Identity.SetCurrentUser(cmd.Context(), name)
				})
			},
		},
	)
	return cmd
}

// ---- helpers ---------------------------------------------------------------

func parseDateFlag(name, value string) (*domain.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &d, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
