package trigger

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/govindrajkumar/easy-lease-sub000/app/notification"
	"github.com/govindrajkumar/easy-lease-sub000/consts"
	"github.com/govindrajkumar/easy-lease-sub000/model"
	"github.com/govindrajkumar/easy-lease-sub000/util"
)

// DefaultTable wires the rent payment, maintenance request and message notifications.
func DefaultTable(notifier notification.Service, properties model.PropertyRepository) Table {
	h := &handlers{notifier: notifier, properties: properties}
	return Table{
		{Name: "rentPaymentChanged", Collection: consts.RentPayments, Kind: model.KindWrite, Handler: h.rentPaymentChanged},
		{Name: "maintenanceRequestChanged", Collection: consts.MaintenanceRequests, Kind: model.KindWrite, Handler: h.maintenanceRequestChanged},
		{Name: "messageCreated", Collection: consts.Messages, Kind: model.KindCreate, Handler: h.messageCreated},
	}
}

type handlers struct {
	notifier   notification.Service
	properties model.PropertyRepository
}

func (h *handlers) rentPaymentChanged(ctx context.Context, event *model.ChangeEvent) error {
	payment := &model.RentPayment{}
	if err := event.Decode(payment); err != nil {
		return err
	}
	landlord := h.landlordOf(ctx, payment.LandlordUID, payment.PropertyID)
	return h.notifier.Notify(ctx, []string{payment.TenantUID, landlord}, consts.RentPaymentTitle, consts.RentPaymentBody)
}

func (h *handlers) maintenanceRequestChanged(ctx context.Context, event *model.ChangeEvent) error {
	request := &model.MaintenanceRequest{}
	if err := event.Decode(request); err != nil {
		return err
	}
	landlord := h.landlordOf(ctx, request.LandlordUID, request.PropertyID)
	body := util.FirstNonEmpty(request.Title, consts.MaintenanceFallbackBody)
	return h.notifier.Notify(ctx, []string{request.TenantUID, landlord}, consts.MaintenanceTitle, body)
}

func (h *handlers) messageCreated(ctx context.Context, event *model.ChangeEvent) error {
	msg := &model.Message{}
	if err := event.Decode(msg); err != nil {
		return err
	}
	body := util.FirstNonEmpty(msg.Text, consts.MessageFallbackBody)
	return h.notifier.Notify(ctx, []string{msg.To}, consts.MessageTitle, body)
}

// landlordOf falls back to the property's landlord when the record carries none.
func (h *handlers) landlordOf(ctx context.Context, landlordUID, propertyID string) string {
	if landlordUID != "" || propertyID == "" || h.properties == nil {
		return landlordUID
	}
	property, err := h.properties.GetByID(ctx, propertyID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			logrus.WithError(err).WithField("property_id", propertyID).Warn("unable to resolve landlord from property")
		}
		return ""
	}
	return property.LandlordUID
}
