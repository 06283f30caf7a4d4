package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"imagique/config"
	"imagique/internal/i18n"
	"imagique/models"
)

// Execute runs the root command. main only calls this.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "imagique",
		Short:         "Event booking client",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.LoadConfig()
			if err != nil {
				return err
			}
			cfg = c
			slog.SetDefault(setupLogger(cfg))
			return nil
		},
	}

	// withApp wires the client for one command and releases it afterwards.
	withApp := func(run func(ctx context.Context, a *app, out io.Writer, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()
			return run(cmd.Context(), a, cmd.OutOrStdout(), args)
		}
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the local API",
		RunE: func(*cobra.Command, []string) error {
			return serve(cfg)
		},
	})

	var email, password string
	signin := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and persist the session",
		RunE: withApp(func(ctx context.Context, a *app, out io.Writer, _ []string) error {
			if password == "" {
				password = os.Getenv("IMAGIQUE_PASSWORD")
			}
			s, err := a.account.SignIn(ctx, email, password)
			if err != nil {
				return fmt.Errorf("%s: %w", a.tr.T(cfg.Locale, i18n.MsgInvalidCredentials, nil), err)
			}
			fmt.Fprintf(out, "signed in as %s (%s)\n", s.Email, s.Role)
			return nil
		}),
	}
	signin.Flags().StringVarP(&email, "email", "e", "", "account email")
	signin.Flags().StringVarP(&password, "password", "p", "", "account password (or IMAGIQUE_PASSWORD)")
	_ = signin.MarkFlagRequired("email")
	root.AddCommand(signin)

	root.AddCommand(&cobra.Command{
		Use:   "signout",
		Short: "Clear the persisted session",
		RunE: withApp(func(ctx context.Context, a *app, out io.Writer, _ []string) error {
			if err := a.account.SignOut(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "signed out")
			return nil
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: withApp(func(_ context.Context, a *app, out io.Writer, _ []string) error {
			return printSession(out, a)
		}),
	})

	var eventName string
	revenue := &cobra.Command{
		Use:   "revenue <eventId>",
		Short: "Show ticket sales for an event",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, out io.Writer, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid event id %q", args[0])
			}
			role := a.gate.Role()
			if role != models.RoleAdmin && role != models.RoleOrganizer {
				return fmt.Errorf("revenue is only available to organizers and admins")
			}
			report, err := a.revenue.Report(ctx, id, eventName, role)
			if err != nil {
				return err
			}
			return printRevenue(out, report)
		}),
	}
	revenue.Flags().StringVar(&eventName, "name", "", "event name shown in the report")
	root.AddCommand(revenue)

	return root
}

func printSession(out io.Writer, a *app) error {
	s, ok := a.gate.Current()
	if !ok {
		_, err := fmt.Fprintln(out, "not signed in")
		return err
	}
	links := make([]string, 0, 4)
	for _, l := range a.gate.NavLinks() {
		links = append(links, l.Label)
	}
	_, err := fmt.Fprintf(out, "%s (%s)\nmenu: %s\n", s.Email, s.Role, strings.Join(links, ", "))
	return err
}

func printRevenue(out io.Writer, r models.RevenueReport) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Event\t%s\n", r.EventName)
	fmt.Fprintf(w, "Tickets sold\t%d\n", r.TicketsSold)
	fmt.Fprintf(w, "Total revenue\t%s\n", r.TotalRevenue.StringFixed(2))
	if r.Commission != nil {
		fmt.Fprintf(w, "Commission\t%s\n", r.Commission.StringFixed(2))
	}
	return w.Flush()
}
