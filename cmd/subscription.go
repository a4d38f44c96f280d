package main

import (
	"time"

	"planify-backend/internal/billing"
	"planify-backend/internal/config"
	"planify-backend/internal/repo"

	"github.com/go-faster/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newSubscriptionCmd(load func() (*config.Configuration, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscription",
		Short: "Inspect or record organization subscriptions",
	}
	cmd.AddCommand(newSubscriptionSetCmd(load))
	return cmd
}

// newSubscriptionSetCmd records a billing period by hand, for replaying a
// missed provider webhook or granting an organization the paid tier.
func newSubscriptionSetCmd(load func() (*config.Configuration, error)) *cobra.Command {
	var (
		p         billing.Period
		periodEnd string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Record the current billing period of an organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			end, err := time.Parse(time.RFC3339, periodEnd)
			if err != nil {
				return errors.Wrap(err, "invalid --period-end")
			}
			p.PeriodEnd = end

			cfg, err := load()
			if err != nil {
				return err
			}
			db, err := config.ConnectDB(cfg.DBURL)
			if err != nil {
				return err
			}
			defer config.CloseDB(db)

			svc := billing.NewService(repo.NewSubscriptionRepository(db), cfg.SubscriptionGrace)
			if err := svc.Upsert(cmd.Context(), p); err != nil {
				return err
			}
			log.WithField("org_id", p.OrgID).WithField("period_end", end).Info("subscription recorded")
			return nil
		},
	}

	cmd.Flags().StringVar(&p.OrgID, "org", "", "Organization id (required)")
	cmd.Flags().StringVar(&p.CustomerID, "customer", "", "Payment provider customer id (required)")
	cmd.Flags().StringVar(&p.SubscriptionID, "subscription", "", "Payment provider subscription id (required)")
	cmd.Flags().StringVar(&p.PriceID, "price", "", "Payment provider price id (required)")
	cmd.Flags().StringVar(&periodEnd, "period-end", "", "End of the current period, RFC3339 (required)")
	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("period-end")
	return cmd
}
