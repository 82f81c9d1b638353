package main

import (
	"context"
	"fmt"
	"log" // Use standard log only for fatal errors before the logger is set up
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fxledger/config"
	"fxledger/internal/adapters/logger"
	"fxledger/internal/adapters/sqlite"
	"fxledger/internal/adapters/zerologger"
	"fxledger/internal/app"
	"fxledger/internal/domain"
	"fxledger/internal/ports"
)

// sampleSnapshot is the documented dashboard fallback used when the store is
// unreachable: the dashboard stays up with placeholder figures instead of
// failing outright.
var sampleSnapshot = app.Snapshot{
	TotalBalance:   decimal.NewFromInt(15000),
	WeeklyPnL:      decimal.RequireFromString("150.25"),
	ActiveAccounts: 2,
	WeeklyTrades:   24,
}

// application carries the wired dependencies shared by every command.
type application struct {
	cfg    *config.Config
	logger ports.Logger
	repo   *sqlite.Repository
	svc    *app.Service
}

func (a *application) init() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg

	switch cfg.LogFormat {
	case config.LogFormatStd:
		a.logger = logger.NewStdLogger(cfg.LogLevel)
	case config.LogFormatJSON:
		a.logger = zerologger.New(zerologger.Config{Level: cfg.LogLevel})
	default:
		a.logger = zerologger.New(zerologger.Config{Level: cfg.LogLevel, Console: true})
	}

	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: a.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database repository: %w", err)
	}
	a.repo = repo

	svc, err := app.New(cfg, a.logger, repo, repo)
	if err != nil {
		repo.Close()
		return fmt.Errorf("failed to initialize application service: %w", err)
	}
	a.svc = svc
	return nil
}

func (a *application) close() {
	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			a.logger.Error(context.Background(), err, "Error closing database repository")
		}
	}
}

func main() {
	appl := &application{}
	root := newRootCmd(appl)
	if err := root.Execute(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func newRootCmd(a *application) *cobra.Command {
	root := &cobra.Command{
		Use:           "fxledger",
		Short:         "Investment ledger and weekly performance tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.AddCommand(
		newAccountCmd(a),
		newDepositCmd(a),
		newWithdrawCmd(a),
		newTransactionsCmd(a),
		newPerfCmd(a),
		newDashboardCmd(a),
	)
	return root
}

func newAccountCmd(a *application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage trading accounts",
	}

	var description string
	create := &cobra.Command{
		Use:   "create <id> <name> <initial-deposit>",
		Short: "Register a new account with its opening deposit",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			deposit, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid initial deposit %q: %w", args[2], err)
			}
			acc, err := a.svc.CreateAccount(cmd.Context(), args[0], args[1], deposit, description)
			if err != nil {
				return err
			}
			fmt.Printf("Created account %s with balance %s\n", acc.AccountID, formatUSD(acc.CurrentBalance))
			return nil
		},
	}
	create.Flags().StringVar(&description, "desc", "", "account description")

	list := &cobra.Command{
		Use:   "list",
		Short: "List active accounts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := a.svc.ActiveAccounts(cmd.Context())
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				fmt.Println("No active accounts.")
				return nil
			}
			for _, acc := range accounts {
				fmt.Printf("%-8s %-24s %12s  created %s\n",
					acc.AccountID, acc.Name, formatUSD(acc.CurrentBalance), acc.CreatedAt.Format("2006-01-02"))
			}
			return nil
		},
	}

	deactivate := &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Soft-delete an account, keeping its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.DeactivateAccount(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deactivated account %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(create, list, deactivate)
	return cmd
}

func newDepositCmd(a *application) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "deposit <account-id> <amount>",
		Short: "Deposit funds into an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			acc, err := a.svc.Deposit(cmd.Context(), args[0], amount, description)
			if err != nil {
				return err
			}
			fmt.Printf("Deposited %s into %s, new balance %s\n", formatUSD(amount), acc.AccountID, formatUSD(acc.CurrentBalance))
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "desc", "", "transaction description")
	return cmd
}

func newWithdrawCmd(a *application) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "withdraw <account-id> <amount>",
		Short: "Withdraw funds from an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			acc, err := a.svc.Withdraw(cmd.Context(), args[0], amount, description)
			if err != nil {
				return err
			}
			fmt.Printf("Withdrew %s from %s, new balance %s\n", formatUSD(amount), acc.AccountID, formatUSD(acc.CurrentBalance))
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "desc", "", "transaction description")
	return cmd
}

func newTransactionsCmd(a *application) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "transactions [account-id]",
		Short: "List recent ledger entries, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID := ports.AllAccounts
			if len(args) == 1 {
				accountID = args[0]
			}
			transactions, err := a.svc.Transactions(cmd.Context(), accountID, limit)
			if err != nil {
				return err
			}
			if len(transactions) == 0 {
				fmt.Println("No transactions.")
				return nil
			}
			for _, tx := range transactions {
				fmt.Printf("%s  %-8s %-10s %12s  %s\n",
					tx.OccurredAt.Format("2006-01-02 15:04"), tx.AccountID, tx.Type, formatUSD(tx.Amount), tx.Description)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows (default from config)")
	return cmd
}

func newPerfCmd(a *application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perf",
		Short: "Manage weekly performance records",
	}
	cmd.AddCommand(
		newPerfImportCmd(a),
		newPerfListCmd(a),
		newPerfUpdateCmd(a),
		newPerfDeleteCmd(a),
	)
	return cmd
}

func newPerfImportCmd(a *application) *cobra.Command {
	var (
		results  string
		comments string
		dateStr  string
	)
	cmd := &cobra.Command{
		Use:   "import <account-id> <csv-path>",
		Short: "Ingest a weekly trade export into a performance record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resultsDec := decimal.Zero
			if results != "" {
				var err error
				resultsDec, err = decimal.NewFromString(results)
				if err != nil {
					return fmt.Errorf("invalid results %q: %w", results, err)
				}
			}
			var at time.Time
			if dateStr != "" {
				var err error
				at, err = time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", dateStr, err)
				}
			}
			rec, err := a.svc.ImportWeeklyStatement(cmd.Context(), args[0], args[1], resultsDec, comments, at)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %s: %d trades, total profit %s (max win %s, min win %s)\n",
				rec.FxID, rec.TotalTrades, formatUSD(rec.TotalProfit), formatUSD(rec.MaxWin), formatUSD(rec.MinWin))
			return nil
		},
	}
	cmd.Flags().StringVar(&results, "results", "", "aggregate result amount for the week")
	cmd.Flags().StringVar(&comments, "comments", "", "free-text comments")
	cmd.Flags().StringVar(&dateStr, "date", "", "trade date the week is derived from (default today)")
	return cmd
}

func newPerfListCmd(a *application) *cobra.Command {
	return &cobra.Command{
		Use:   "list [account-id]",
		Short: "List performance records, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID := ports.AllAccounts
			if len(args) == 1 {
				accountID = args[0]
			}
			records, err := a.svc.RecordsForAccount(cmd.Context(), accountID)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No performance records.")
				return nil
			}
			for _, rec := range records {
				fmt.Printf("%-12s %-8s %d-%02d wk%d %12s  %3d trades  %s\n",
					rec.FxID, rec.AccountID, rec.Year, rec.Month, rec.Week,
					formatUSD(rec.Results), rec.TotalTrades, rec.Comments)
			}
			return nil
		},
	}
}

func newPerfUpdateCmd(a *application) *cobra.Command {
	var (
		results     string
		comments    string
		totalTrades int
		totalProfit string
		maxWin      string
		minWin      string
	)
	cmd := &cobra.Command{
		Use:   "update <fx-id>",
		Short: "Update the mutable fields of a performance record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resultsDec, err := decimal.NewFromString(results)
			if err != nil {
				return fmt.Errorf("invalid results %q: %w", results, err)
			}
			stats := domain.TradeStats{TotalTrades: totalTrades}
			if stats.TotalProfit, err = parseDecimalFlag(totalProfit, "total-profit"); err != nil {
				return err
			}
			if stats.MaxWin, err = parseDecimalFlag(maxWin, "max-win"); err != nil {
				return err
			}
			if stats.MinWin, err = parseDecimalFlag(minWin, "min-win"); err != nil {
				return err
			}
			if err := a.svc.UpdateRecord(cmd.Context(), args[0], resultsDec, comments, stats); err != nil {
				return err
			}
			fmt.Printf("Updated %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&results, "results", "0", "aggregate result amount")
	cmd.Flags().StringVar(&comments, "comments", "", "free-text comments")
	cmd.Flags().IntVar(&totalTrades, "trades", 0, "total trade count")
	cmd.Flags().StringVar(&totalProfit, "total-profit", "0", "total profit")
	cmd.Flags().StringVar(&maxWin, "max-win", "0", "maximum single win")
	cmd.Flags().StringVar(&minWin, "min-win", "0", "minimum single win")
	return cmd
}

func newPerfDeleteCmd(a *application) *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "delete <fx-id>",
		Short: "Hard-delete a performance record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("deletion is irreversible; re-run with --yes to confirm")
			}
			if err := a.svc.DeleteRecord(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the irreversible delete")
	return cmd
}

func newDashboardCmd(a *application) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show dashboard figures for the current week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := a.svc.DashboardSnapshot(cmd.Context(), sampleSnapshot)
			fmt.Printf("Total balance:   %s\n", formatUSD(snap.TotalBalance))
			fmt.Printf("Weekly P&L:      %s\n", formatUSD(snap.WeeklyPnL))
			fmt.Printf("Active accounts: %d\n", snap.ActiveAccounts)
			fmt.Printf("Weekly trades:   %d\n", snap.WeeklyTrades)
			if snap.Degraded {
				fmt.Println("(degraded: some figures are fallback values)")
			}
			return nil
		},
	}
}

func parseDecimalFlag(value, name string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return d, nil
}

// formatUSD renders an amount for display. All amounts in this domain are USD.
func formatUSD(d decimal.Decimal) string {
	cents := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}
