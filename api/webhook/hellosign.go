package webhook

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/govindrajkumar/easy-lease-sub000/app"
	"github.com/govindrajkumar/easy-lease-sub000/model"
)

const ack = "ok"

// HelloSign receives HelloSign callbacks. The callback is always acknowledged
// with 200 so the provider does not retry.
func (a *API) HelloSign(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	event, err := a.parseEvent(r)
	switch {
	case err != nil:
		ctx.Logger.WithError(err).Warn("unable to parse hellosign callback")
	case !a.esign.VerifyEvent(event):
		ctx.Logger.WithField("event_type", event.Event.EventType).Warn("hellosign callback hash mismatch")
	default:
		logger := ctx.Logger.WithFields(logrus.Fields{
			"event_type":           event.Event.EventType,
			"signature_request_id": event.RequestID(),
		})
		if err := a.esign.HandleEvent(r.Context(), event); err != nil {
			logger.WithError(err).Error("hellosign callback handling failed")
		} else {
			logger.Debug("hellosign callback handled")
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = io.WriteString(w, ack)
	return err
}

func (a *API) parseEvent(r *http.Request) (*model.SignatureEvent, error) {
	payload, err := a.readPayload(r)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(payload) == "" {
		return nil, errors.New("empty callback payload")
	}
	event := &model.SignatureEvent{}
	if err := json.Unmarshal([]byte(payload), event); err != nil {
		return nil, errors.Wrap(err, "invalid callback json")
	}
	return event, nil
}

// readPayload returns the event JSON from the "json" form field or the raw body
func (a *API) readPayload(r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(a.config.MaxContentSize * 1024 * 1024); err != nil {
			return "", errors.Wrap(err, "invalid multipart callback")
		}
		return r.FormValue("json"), nil
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return "", errors.Wrap(err, "invalid form callback")
		}
		return r.PostForm.Get("json"), nil
	default:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return "", errors.Wrap(err, "unable to read callback body")
		}
		return string(body), nil
	}
}
