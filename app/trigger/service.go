package trigger

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/govindrajkumar/easy-lease-sub000/app/config"
	"github.com/govindrajkumar/easy-lease-sub000/app/notification"
	"github.com/govindrajkumar/easy-lease-sub000/model"
)

// Service - routes committed writes to notification handlers
type Service interface {
	Handle(ctx context.Context, event *model.ChangeEvent) error
	Collections() []string
}

type service struct {
	config *config.Config
	table  Table
	cache  model.ChangeCache
}

// NewService create new trigger service using the default subscription table
func NewService(repos *model.Repos, conf *config.Config, notifier notification.Service) Service {
	return NewServiceWithTable(repos, conf, DefaultTable(notifier, repos.Properties))
}

// NewServiceWithTable create new trigger service over a custom table
func NewServiceWithTable(repos *model.Repos, conf *config.Config, table Table) Service {
	svc := &service{
		config: conf,
		table:  table,
		cache:  repos.Cache,
	}
	return svc
}

func (s *service) Collections() []string {
	return s.table.Collections()
}

// Handle runs every matching handler for the event. An event marked handled by
// an earlier delivery is skipped; the mark is written only once every handler
// succeeded, so a failed dispatch is retried on redelivery.
func (s *service) Handle(ctx context.Context, event *model.ChangeEvent) error {
	subs := s.table.Match(event.Collection, event.Kind)
	if len(subs) == 0 {
		return nil
	}

	logger := logrus.WithFields(logrus.Fields{
		"collection":  event.Collection,
		"kind":        event.Kind,
		"document_id": event.DocumentID,
	})

	dedupe := s.cache != nil && event.ID != ""
	if dedupe {
		handled, err := s.cache.EventHandled(event.ID)
		if err != nil {
			logger.WithError(err).Warn("unable to check change event, dispatching anyway")
		} else if handled {
			logger.Debug("change event already handled")
			return nil
		}
	}

	var firstErr error
	for _, sub := range subs {
		if err := sub.Handler(ctx, event); err != nil {
			logger.WithError(err).WithField("handler", sub.Name).Error("change handler failed")
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "handler %s", sub.Name)
			}
		}
	}
	if firstErr != nil {
		return firstErr
	}

	if dedupe {
		if err := s.cache.MarkEventHandled(event.ID, s.config.Trigger.DedupeTTL); err != nil {
			logger.WithError(err).Warn("unable to mark change event handled")
		}
	}
	return nil
}
