package push

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/govindrajkumar/easy-lease-sub000/model"
)

// tokenSender delivers one notification to one device token
type tokenSender interface {
	send(ctx context.Context, token, title, body string) error
}

// New create the configured push sender
func New(conf *Config) (model.PushSender, error) {
	switch conf.Type {
	case "log", "":
		return NewLogSender(), nil
	case "apns":
		s, err := NewAPNsSender(conf)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "webpush":
		return NewWebPushSender(conf), nil
	case "multi":
		apns, err := NewAPNsSender(conf)
		if err != nil {
			return nil, err
		}
		return &Router{APNs: apns, WebPush: NewWebPushSender(conf)}, nil
	default:
		return nil, errors.Errorf("unknown push type %q", conf.Type)
	}
}

// ErrAllFailed - no token of a multicast was delivered
var ErrAllFailed = errors.New("push delivery failed for every token")

// fanOut sends to every token with at most concurrency sends in flight.
// Individual failures are counted; the last one is returned only when no
// token was delivered.
func fanOut(ctx context.Context, provider string, s tokenSender, concurrency int, msg *model.MulticastMessage) (*model.BatchResponse, error) {
	var success, failure int64
	var mu sync.Mutex
	var lastErr error
	g := &errgroup.Group{}
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for _, token := range msg.Tokens {
		token := token
		g.Go(func() error {
			if err := s.send(ctx, token, msg.Title, msg.Body); err != nil {
				atomic.AddInt64(&failure, 1)
				mu.Lock()
				lastErr = err
				mu.Unlock()
				logrus.WithError(err).WithFields(logrus.Fields{
					"provider": provider,
					"token":    shortToken(token),
				}).Warn("push delivery failed")
				return nil
			}
			atomic.AddInt64(&success, 1)
			return nil
		})
	}
	g.Wait()
	resp := &model.BatchResponse{SuccessCount: int(success), FailureCount: int(failure)}
	if resp.SuccessCount == 0 && resp.FailureCount > 0 {
		return resp, errors.Wrapf(ErrAllFailed, "%s: %d tokens, last error: %v", provider, resp.FailureCount, lastErr)
	}
	return resp, nil
}

func shortToken(token string) string {
	if len(token) <= 12 {
		return token
	}
	return token[:12] + "..."
}

// Router splits tokens between providers: JSON subscriptions go to web push,
// everything else to APNs.
type Router struct {
	APNs    model.PushSender
	WebPush model.PushSender
}

// SendMulticast sends msg through each provider that owns some of its tokens
func (r *Router) SendMulticast(ctx context.Context, msg *model.MulticastMessage) (*model.BatchResponse, error) {
	var web, apple []string
	for _, token := range msg.Tokens {
		if IsWebPushToken(token) {
			web = append(web, token)
		} else {
			apple = append(apple, token)
		}
	}

	total := &model.BatchResponse{}
	for _, part := range []struct {
		sender model.PushSender
		tokens []string
	}{{r.WebPush, web}, {r.APNs, apple}} {
		if len(part.tokens) == 0 {
			continue
		}
		if part.sender == nil {
			total.FailureCount += len(part.tokens)
			continue
		}
		resp, err := part.sender.SendMulticast(ctx, &model.MulticastMessage{Tokens: part.tokens, Title: msg.Title, Body: msg.Body})
		if resp != nil {
			total.SuccessCount += resp.SuccessCount
			total.FailureCount += resp.FailureCount
		}
		if err != nil && !errors.Is(err, ErrAllFailed) {
			return nil, err
		}
	}
	if total.SuccessCount == 0 && total.FailureCount > 0 {
		return total, errors.Wrapf(ErrAllFailed, "%d tokens", total.FailureCount)
	}
	return total, nil
}

// IsWebPushToken reports whether token is a JSON encoded push subscription
func IsWebPushToken(token string) bool {
	return strings.HasPrefix(strings.TrimSpace(token), "{")
}
