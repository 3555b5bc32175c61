package notification

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/govindrajkumar/easy-lease-sub000/app/config"
	"github.com/govindrajkumar/easy-lease-sub000/model"
	"github.com/govindrajkumar/easy-lease-sub000/util"
)

// Service - push notification dispatcher
type Service interface {
	Notify(ctx context.Context, userIDs []string, title, body string) error
}

type service struct {
	config *config.Config
	users  model.UserRepository
	push   model.PushSender
}

// NewService create new notification service
func NewService(repos *model.Repos, conf *config.Config) Service {
	svc := &service{
		config: conf,
		users:  repos.Users,
		push:   repos.Push,
	}
	return svc
}

// Notify sends one multicast to the push tokens of the given users.
// Blank and repeated ids are ignored; users without a token are skipped.
func (s *service) Notify(ctx context.Context, userIDs []string, title, body string) error {
	ids := util.RemoveArrayDuplicate(userIDs)
	if len(ids) == 0 {
		return nil
	}

	ctx, cancel := util.ContextWithTimeout(ctx, s.config.ContextTimeout)
	defer cancel()

	tokens, err := s.lookupTokens(ctx, ids)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		logrus.WithField("users", len(ids)).Debug("no push tokens for recipients")
		return nil
	}

	resp, err := s.push.SendMulticast(ctx, &model.MulticastMessage{
		Tokens: tokens,
		Title:  title,
		Body:   body,
	})
	if err != nil {
		return errors.Wrap(err, "unable to send multicast notification")
	}

	logrus.WithFields(logrus.Fields{
		"title":   title,
		"tokens":  len(tokens),
		"success": resp.SuccessCount,
		"failure": resp.FailureCount,
	}).Info("notification dispatched")
	return nil
}

// lookupTokens reads every user concurrently. Any failure other than a
// missing user aborts the whole lookup.
func (s *service) lookupTokens(ctx context.Context, ids []string) ([]string, error) {
	found := make([]string, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			user, err := s.users.GetByID(gctx, id)
			if errors.Is(err, model.ErrNotFound) {
				return nil
			}
			if err != nil {
				return errors.Wrapf(err, "unable to fetch user %s", id)
			}
			found[i] = user.PushToken
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tokens := []string{}
	for _, token := range found {
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens, nil
}
