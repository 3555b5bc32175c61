package sweep

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/govindrajkumar/easy-lease-sub000/app"
	"github.com/govindrajkumar/easy-lease-sub000/util"
)

func NewSweepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "runs the rent reminder sweep once",
		RunE:  run,
	}
	cmd.Flags().String("month", "", "month to sweep as YYYY-MM (default is the current month)")
	return cmd
}

// ParseMonth returns the first instant of month, or now when month is empty
func ParseMonth(month string, now time.Time) (time.Time, error) {
	if month == "" {
		return now.UTC(), nil
	}
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid month %q, expected YYYY-MM", month)
	}
	return t.UTC(), nil
}

func run(cmd *cobra.Command, args []string) error {
	month, _ := cmd.Flags().GetString("month")
	at, err := ParseMonth(month, time.Now())
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	res, err := app.ReminderService.Sweep(ctx, at)
	if err != nil {
		return err
	}
	return util.PrettyPrint("rent reminder sweep "+at.Format("2006-01"), res)
}
