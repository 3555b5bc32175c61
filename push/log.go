package push

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/govindrajkumar/easy-lease-sub000/model"
)

// LogSender - development sender that only logs notifications
type LogSender struct{}

// NewLogSender create a log sender
func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) SendMulticast(_ context.Context, msg *model.MulticastMessage) (*model.BatchResponse, error) {
	logrus.WithFields(logrus.Fields{
		"tokens": len(msg.Tokens),
		"title":  msg.Title,
		"body":   msg.Body,
	}).Info("push notification")
	return &model.BatchResponse{SuccessCount: len(msg.Tokens)}, nil
}
