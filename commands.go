package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"eve-navigator/internal/dataset"
	"eve-navigator/internal/db"
	"eve-navigator/internal/engine"
	"eve-navigator/internal/logger"

	"github.com/spf13/cobra"
)

func output(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.QueryTimeout.Std())
}

func newRouteCmd() *cobra.Command {
	var mode string
	var avoid []string
	cmd := &cobra.Command{
		Use:   "route <origin> <destination>",
		Short: "Find a route between two systems",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := loadNavigator()
			if err != nil {
				return err
			}
			origin, err := nav.ResolveSystem(args[0])
			if err != nil {
				return err
			}
			dest, err := nav.ResolveSystem(args[1])
			if err != nil {
				return err
			}
			parsedMode, err := engine.ParseMode(mode)
			if err != nil {
				return err
			}
			avoidIDs, err := nav.ResolveSystems(avoid)
			if err != nil {
				return err
			}
			ctx, cancel := queryContext()
			defer cancel()
			result, err := nav.Route(ctx, origin, dest, parsedMode, avoidIDs)
			if err != nil {
				return err
			}
			return output(result)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "shortest", "Cost mode: shortest|safe|unsafe")
	cmd.Flags().StringSliceVar(&avoid, "avoid", nil, "Systems to exclude from the search")
	return cmd
}

func newSystemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "systems <ref>...",
		Short: "Show details for one or more systems (id or name)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := loadNavigator()
			if err != nil {
				return err
			}
			details, err := nav.Systems(args)
			if err != nil {
				return err
			}
			return output(details)
		},
	}
}

func newBordersCmd() *cobra.Command {
	var maxJumps, limit int
	cmd := &cobra.Command{
		Use:   "borders <origin>",
		Short: "List border systems reachable from an origin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := loadNavigator()
			if err != nil {
				return err
			}
			origin, err := nav.ResolveSystem(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := queryContext()
			defer cancel()
			result, err := nav.Borders(ctx, origin, maxJumps, limit)
			if err != nil {
				return err
			}
			return output(result)
		},
	}
	cmd.Flags().IntVar(&maxJumps, "max-jumps", 5, "Search radius in jumps")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (0 for default)")
	return cmd
}

func newNearestCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "nearest <origin> <predicate>",
		Short: "Find the closest systems matching highsec|lowsec|nullsec|border",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := loadNavigator()
			if err != nil {
				return err
			}
			origin, err := nav.ResolveSystem(args[0])
			if err != nil {
				return err
			}
			predicate, err := engine.ParsePredicate(args[1])
			if err != nil {
				return err
			}
			ctx, cancel := queryContext()
			defer cancel()
			result, err := nav.Nearest(ctx, origin, predicate, limit)
			if err != nil {
				return err
			}
			return output(result)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (0 for default)")
	return cmd
}

func newLoopCmd() *cobra.Command {
	var targetJumps, minBorders int
	var avoid []string
	cmd := &cobra.Command{
		Use:   "loop <origin>",
		Short: "Plan a closed patrol tour through border systems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := loadNavigator()
			if err != nil {
				return err
			}
			origin, err := nav.ResolveSystem(args[0])
			if err != nil {
				return err
			}
			avoidIDs, err := nav.ResolveSystems(avoid)
			if err != nil {
				return err
			}
			ctx, cancel := queryContext()
			defer cancel()
			result, err := nav.Loop(ctx, origin, targetJumps, minBorders, avoidIDs)
			if err != nil {
				return err
			}
			return output(result)
		},
	}
	cmd.Flags().IntVar(&targetJumps, "target-jumps", 10, "Desired tour length in jumps")
	cmd.Flags().IntVar(&minBorders, "min-borders", 1, "Minimum distinct border systems to visit")
	cmd.Flags().StringSliceVar(&avoid, "avoid", nil, "Systems to exclude from the tour")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <system>...",
		Short: "Validate a route and report its chokepoints",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := loadNavigator()
			if err != nil {
				return err
			}
			route, err := nav.ResolveSystems(args)
			if err != nil {
				return err
			}
			ctx, cancel := queryContext()
			defer cancel()
			result, err := nav.Analyze(ctx, route)
			if err != nil {
				return err
			}
			return output(result)
		},
	}
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Run the dataset integrity and invariant checks without serving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dataset.Verify(cfg.DatasetPath, cfg.ManifestPath); err != nil {
				logger.Error("Verify", err.Error())
				return err
			}
			logger.Success("Verify", fmt.Sprintf("%s passed all checks", cfg.DatasetPath))
			return nil
		},
	}
}

func newVersionsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List known-good dataset versions from the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := db.Open(cfg.RegistryPath)
			if err != nil {
				return err
			}
			defer registry.Close()
			history, err := registry.History(limit)
			if err != nil {
				return err
			}
			return output(history)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Max versions to list (0 for all)")
	return cmd
}
