package push

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/pkg/errors"

	"github.com/govindrajkumar/easy-lease-sub000/model"
)

// WebPushSender - VAPID web push sender; tokens are JSON encoded subscriptions
type WebPushSender struct {
	Config      WebPushConfig
	Concurrency int
	HTTPClient  webpush.HTTPClient
}

// NewWebPushSender create a web push sender
func NewWebPushSender(conf *Config) *WebPushSender {
	return &WebPushSender{
		Config:      conf.WebPush,
		Concurrency: conf.Concurrency,
		HTTPClient:  &http.Client{Timeout: conf.Timeout},
	}
}

type webPushMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (s *WebPushSender) SendMulticast(ctx context.Context, msg *model.MulticastMessage) (*model.BatchResponse, error) {
	return fanOut(ctx, "webpush", s, s.Concurrency, msg)
}

func (s *WebPushSender) send(ctx context.Context, token, title, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	subscription := &webpush.Subscription{}
	if err := json.Unmarshal([]byte(token), subscription); err != nil {
		return errors.Wrap(err, "invalid web push subscription")
	}
	data, err := json.Marshal(&webPushMessage{Title: title, Body: body})
	if err != nil {
		return err
	}

	resp, err := webpush.SendNotification(data, subscription, &webpush.Options{
		HTTPClient:      s.HTTPClient,
		Subscriber:      s.Config.Subscriber,
		VAPIDPublicKey:  s.Config.VapidPublicKey,
		VAPIDPrivateKey: s.Config.VapidPrivateKey,
		TTL:             s.Config.TTL,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("push service responded %d", resp.StatusCode)
	}
	return nil
}
