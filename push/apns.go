package push

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/certificate"
	"github.com/sideshow/apns2/payload"

	"github.com/govindrajkumar/easy-lease-sub000/model"
)

// APNsSender - apple push notification sender
type APNsSender struct {
	Client      *apns2.Client
	Topic       string
	Concurrency int
}

// NewAPNsSender create an APNs sender from a p12 certificate
func NewAPNsSender(conf *Config) (*APNsSender, error) {
	cert, err := certificate.FromP12File(conf.APNs.CertFile, conf.APNs.CertPassword)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s cert from file", conf.APNs.CertFile)
	}
	client := apns2.NewClient(cert)
	if conf.APNs.Production {
		client = client.Production()
	} else {
		client = client.Development()
	}
	return &APNsSender{
		Client:      client,
		Topic:       conf.APNs.Topic,
		Concurrency: conf.Concurrency,
	}, nil
}

func (s *APNsSender) SendMulticast(ctx context.Context, msg *model.MulticastMessage) (*model.BatchResponse, error) {
	return fanOut(ctx, "apns", s, s.Concurrency, msg)
}

func (s *APNsSender) send(ctx context.Context, token, title, body string) error {
	notification := &apns2.Notification{
		DeviceToken: token,
		Topic:       s.Topic,
		Payload:     payload.NewPayload().AlertTitle(title).AlertBody(body).Sound("default"),
	}
	res, err := s.Client.PushWithContext(ctx, notification)
	if err != nil {
		return err
	}
	if !res.Sent() {
		return errors.Errorf("apns rejected notification: %d %s", res.StatusCode, res.Reason)
	}
	return nil
}
