package reminder

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/govindrajkumar/easy-lease-sub000/app/config"
	"github.com/govindrajkumar/easy-lease-sub000/model"
	"github.com/govindrajkumar/easy-lease-sub000/util"
)

// Service - monthly rent reminder sweep
type Service interface {
	Sweep(ctx context.Context, now time.Time) (*model.SweepResult, error)
}

type service struct {
	config    *config.Config
	payments  model.RentPaymentRepository
	reminders model.RentReminderRepository
}

// NewService create new reminder service
func NewService(repos *model.Repos, conf *config.Config) Service {
	svc := &service{
		config:    conf,
		payments:  repos.RentPayments,
		reminders: repos.RentReminders,
	}
	return svc
}

// Sweep writes one reminder for every unpaid payment due in the month of now.
// Reminders are committed as a single batch.
func (s *service) Sweep(ctx context.Context, now time.Time) (*model.SweepResult, error) {
	ctx, cancel := util.ContextWithTimeout(ctx, s.config.ContextTimeout)
	defer cancel()

	payments, err := s.payments.ListUnpaid(ctx, s.config.Reminder.PageSize)
	if err != nil {
		return nil, errors.Wrap(err, "unable to list unpaid rent payments")
	}

	result := &model.SweepResult{Scanned: len(payments)}
	reminders := make([]*model.RentReminder, 0)
	for _, p := range payments {
		if !DueInMonth(p.DueDate, now) {
			continue
		}
		reminders = append(reminders, &model.RentReminder{
			ID:          ReminderID(p.ID, now),
			PaymentID:   p.ID,
			TenantUID:   p.TenantUID,
			LandlordUID: p.LandlordUID,
			PropertyID:  p.PropertyID,
			Amount:      p.Amount,
			DueDate:     p.DueDate,
		})
	}
	result.Matched = len(reminders)

	if len(reminders) > 0 {
		result.Created, err = s.reminders.CreateBatch(ctx, reminders)
		if err != nil {
			return nil, errors.Wrap(err, "unable to commit rent reminders")
		}
	}

	logrus.WithFields(logrus.Fields{
		"month":   now.UTC().Format("2006-01"),
		"scanned": result.Scanned,
		"matched": result.Matched,
		"created": result.Created,
	}).Info("rent reminder sweep finished")
	return result, nil
}
