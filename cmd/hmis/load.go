package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hmis/internal/hud"
	"hmis/internal/ingest/service"
	"hmis/internal/ingest/source"
)

type loadOptions struct {
	dryRun         bool
	sheet          string
	interactive    bool
	strongMatching bool
	equivalents    string
}

func newLoadClientsCmd(a *app) *cobra.Command {
	var opts loadOptions
	cmd := &cobra.Command{
		Use:   "load-clients FILE",
		Short: "Load clients, households and assessments from a CSV or XLSX export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("interactive") {
				opts.interactive = a.cfg.Interactive
			}
			if !flags.Changed("strong-matching") {
				opts.strongMatching = a.cfg.StrongMatching
			}
			if opts.equivalents == "" {
				opts.equivalents = a.cfg.EquivalentsFile
			}
			return runLoadClients(cmd, a, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "load everything, then roll back")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "sheet to read from an .xlsx file (default: first)")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "ask for corrections instead of failing (HMIS_INTERACTIVE)")
	cmd.Flags().BoolVar(&opts.strongMatching, "strong-matching", false,
		"match SSNs only when name and date of birth also agree (HMIS_STRONG_MATCHING)")
	cmd.Flags().StringVar(&opts.equivalents, "equivalents", "", "YAML file extending the equivalents table (HMIS_EQUIVALENTS_FILE)")
	return cmd
}

func runLoadClients(cmd *cobra.Command, a *app, path string, opts loadOptions) error {
	ctx := cmd.Context()
	table, err := source.ReadFile(path, opts.sheet)
	if err != nil {
		return err
	}

	normalizerOpts := []hud.Option{}
	if opts.equivalents != "" {
		eq, err := hud.LoadEquivalentsFile(opts.equivalents)
		if err != nil {
			return err
		}
		normalizerOpts = append(normalizerOpts, hud.WithEquivalents(eq))
	}
	if opts.interactive {
		normalizerOpts = append(normalizerOpts, hud.WithPrompter(hud.NewConsolePrompter(os.Stdin, os.Stderr)))
	}
	normalizer := hud.NewNormalizer(normalizerOpts...)
	a.log.Debug("equivalents table", "version", normalizer.Equivalents().Version, "entries", normalizer.Equivalents().Len())

	loader, err := service.New(a.store, a.store,
		service.WithLogger(a.log),
		service.WithMetrics(a.metrics),
		service.WithNormalizer(normalizer),
		service.WithStrongMatching(opts.strongMatching),
	)
	if err != nil {
		return err
	}

	var report *service.Report
	err = a.withLock(ctx, func() error {
		var err error
		report, err = loader.Load(ctx, table, service.LoadOptions{DryRun: opts.dryRun})
		return err
	})
	a.writeMetrics()
	if err != nil {
		return err
	}
	printReport(cmd, report)
	return nil
}

func newLoadProjectsCmd(a *app) *cobra.Command {
	var dryRun bool
	var sheet string
	cmd := &cobra.Command{
		Use:   "load-projects FILE",
		Short: "Create the projects named in a ProjectName column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			table, err := source.ReadFile(args[0], sheet)
			if err != nil {
				return err
			}
			loader, err := service.New(a.store, a.store, service.WithLogger(a.log), service.WithMetrics(a.metrics))
			if err != nil {
				return err
			}
			var report *service.Report
			err = a.withLock(ctx, func() error {
				var err error
				report, err = loader.LoadProjects(ctx, table, service.LoadOptions{DryRun: dryRun})
				return err
			})
			if err != nil {
				return err
			}
			printReport(cmd, report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "load everything, then roll back")
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet to read from an .xlsx file (default: first)")
	return cmd
}

func printReport(cmd *cobra.Command, r *service.Report) {
	out := cmd.OutOrStdout()
	for _, w := range r.Warnings {
		fmt.Fprintln(out, "warning:", w)
	}
	fmt.Fprintf(out, "rows: %d\n", r.Rows)
	fmt.Fprintf(out, "clients: %d created, %d matched, %d updated\n", r.ClientsCreated, r.ClientsMatched, r.ClientsUpdated)
	fmt.Fprintf(out, "projects: %d created\n", r.ProjectsCreated)
	fmt.Fprintf(out, "households: %d created\n", r.HouseholdsCreated)
	fmt.Fprintf(out, "members: %d created, %d reused, %d no-shows\n", r.MembersCreated, r.MembersReused, r.NoShows)
	fmt.Fprintf(out, "assessments: %d created\n", r.TotalAssessments())
	if r.DryRun {
		fmt.Fprintln(out, "dry run: nothing was saved")
	}
}
