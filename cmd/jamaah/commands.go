package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"jamaah/internal/format"
	"jamaah/internal/httpapi"
	"jamaah/pkg/domain"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the admin HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			app := httpapi.New(e.svc, httpapi.Options{
				Logger:    e.logger,
				AccessLog: cmd.OutOrStdout(),
				Gatherer:  e.registry,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				e.logger.Info("listening", "addr", e.cfg.HTTPAddr, "driver", e.cfg.Storage.Driver)
				errCh <- app.Listen(e.cfg.HTTPAddr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			e.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return app.ShutdownWithContext(shutdownCtx)
		},
	}
}

func newSeedCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demonstration data into empty collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := e.svc.Seed(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, k := range domain.Kinds {
				fmt.Fprintf(out, "%-14s %d\n", k.Collection(), report[k])
			}
			fmt.Fprintf(out, "seeded %d records\n", report.Total())
			return nil
		},
	}
}

func newStatsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			stats, err := e.svc.DashboardStats(ctx)
			if err != nil {
				return err
			}
			donations, err := e.svc.ListDonations(ctx)
			if err != nil {
				return err
			}
			var collected int64
			for _, d := range donations {
				if d.Status == domain.DonationActive {
					collected += d.CollectedAmount
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total members:     %s\n", humanize.Comma(int64(stats.TotalMembers)))
			fmt.Fprintf(out, "Pending members:   %s\n", humanize.Comma(int64(stats.PendingMembers)))
			fmt.Fprintf(out, "Pending contents:  %s\n", humanize.Comma(int64(stats.PendingContents)))
			fmt.Fprintf(out, "Active donations:  %s\n", humanize.Comma(int64(stats.ActiveDonations)))
			fmt.Fprintf(out, "Collected (active): %s\n", format.Rupiah(collected))
			return nil
		},
	}
}

func newListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list <kind>",
		Short: "List the records of one kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := domain.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("unknown kind %q", args[0])
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if err := e.listKind(cmd.Context(), tw, kind); err != nil {
				return err
			}
			return tw.Flush()
		},
	}
}

func (e *env) listKind(ctx context.Context, w io.Writer, kind domain.Kind) error {
	ago := func(b domain.Base) string { return humanize.Time(b.UpdatedAt) }
	switch kind {
	case domain.KindMember:
		items, err := e.svc.ListMembers(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSTATUS\tUPDATED")
		for _, m := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Email, m.Status, ago(m.Base))
		}
	case domain.KindContent:
		items, err := e.svc.ListContents(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tTITLE\tMEMBER\tTYPE\tSTATUS\tUPDATED")
		for _, c := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Title, c.MemberName, c.Type, c.Status, ago(c.Base))
		}
	case domain.KindMasjidPost:
		items, err := e.svc.ListMasjidPosts(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tTITLE\tTYPE\tUPDATED")
		for _, p := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Type, ago(p.Base))
		}
	case domain.KindSchedule:
		items, err := e.svc.ListSchedules(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tDATE\tTIME\tLOCATION")
		for _, s := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Date, s.Time, s.Location)
		}
	case domain.KindArticle:
		items, err := e.svc.ListArticles(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tSTATUS\tUPDATED")
		for _, a := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Title, a.Category, a.Status, ago(a.Base))
		}
	case domain.KindDonation:
		items, err := e.svc.ListDonations(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tTITLE\tCOLLECTED\tTARGET\tPROGRESS\tSTATUS")
		for _, d := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", d.ID, d.Title,
				format.Rupiah(d.CollectedAmount), format.Rupiah(d.TargetAmount), format.Percent(d.Progress()), d.Status)
		}
	}
	return nil
}

func newExportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write every collection as JSON to file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := e.svc.Export(cmd.Context())
			if err != nil {
				return err
			}
			data, err := sonic.ConfigStd.MarshalIndent(snap, "", "  ")
			if err != nil {
				return fmt.Errorf("encode snapshot: %w", err)
			}
			data = append(data, '\n')
			if len(args) == 0 || args[0] == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(args[0], data, 0o600); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d records to %s\n", total(snap.Counts()), args[0])
			return nil
		},
	}
}

func newImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load a JSON snapshot, skipping ids that already exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}
			var snap domain.Snapshot
			if err := sonic.Unmarshal(data, &snap); err != nil {
				return fmt.Errorf("decode snapshot: %w", err)
			}
			report, err := e.svc.Import(cmd.Context(), snap)
			if err != nil {
				return fmt.Errorf("import snapshot: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, k := range domain.Kinds {
				r := report[k]
				fmt.Fprintf(out, "%-14s inserted %d, skipped %d\n", k.Collection(), r.Inserted, r.Skipped)
			}
			return nil
		},
	}
}

func total(counts map[domain.Kind]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}
