package esign

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/govindrajkumar/easy-lease-sub000/app/config"
	"github.com/govindrajkumar/easy-lease-sub000/consts"
	"github.com/govindrajkumar/easy-lease-sub000/model"
	"github.com/govindrajkumar/easy-lease-sub000/util"
)

// Service - lease e-signature orchestration
type Service interface {
	CreateLeaseSignature(ctx context.Context, caller *model.Caller, leaseID string) (*model.SignatureURL, error)
	HandleEvent(ctx context.Context, event *model.SignatureEvent) error
	VerifyEvent(event *model.SignatureEvent) bool
	SignedAgreementURL(ctx context.Context, caller *model.Caller, leaseID string) (string, error)
}

type service struct {
	config     *config.Config
	leases     model.LeaseRepository
	users      model.UserRepository
	properties model.PropertyRepository
	storage  model.FileStorage
	provider model.SignatureProvider
}

// NewService create new e-signature service
func NewService(repos *model.Repos, conf *config.Config) Service {
	svc := &service{
		config:     conf,
		leases:     repos.Leases,
		users:      repos.Users,
		properties: repos.Properties,
		storage:    repos.Storage,
		provider:   repos.ESign,
	}
	return svc
}

// CreateLeaseSignature opens an embedded signature request for the caller on
// the lease agreement and returns the signing URL.
func (s *service) CreateLeaseSignature(ctx context.Context, caller *model.Caller, leaseID string) (*model.SignatureURL, error) {
	if caller == nil || caller.UserID == "" {
		return nil, model.Unauthenticated("User must be authenticated")
	}
	if s.provider == nil || !s.provider.Configured() {
		return nil, model.FailedPrecondition("HelloSign credentials are not configured")
	}
	leaseID = strings.TrimSpace(leaseID)
	if leaseID == "" {
		return nil, model.InvalidArgument("leaseId is required")
	}

	ctx, cancel := util.ContextWithTimeout(ctx, s.config.ContextTimeout)
	defer cancel()

	lease, err := s.leases.GetByID(ctx, leaseID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.NotFound("Lease not found")
	}
	if err != nil {
		return nil, s.internal(err, "unable to fetch lease")
	}

	user, err := s.users.GetByID(ctx, caller.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.NotFound("User not found")
	}
	if err != nil {
		return nil, s.internal(err, "unable to fetch user")
	}

	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		name = consts.DefaultSignerName
	}

	req, err := s.provider.CreateEmbeddedSignatureRequest(ctx, &model.EmbeddedSignatureRequest{
		Title:    consts.LeaseSignatureTitle,
		Subject:  consts.LeaseSignatureSubject,
		Message:  consts.LeaseSignatureMessage,
		Signers:  []model.Signer{{Name: name, EmailAddress: user.Email}},
		FileURLs: []string{util.FirstNonEmpty(lease.AgreementURL, s.config.ESign.FallbackAgreementURL)},
		TestMode: s.config.ESign.TestMode,
	})
	if err != nil {
		return nil, s.internal(err, "unable to create signature request")
	}
	if len(req.SignatureIDs) == 0 {
		return nil, s.internal(errors.New("signature request has no signatures"), "unable to create signature request")
	}
	signatureID := req.SignatureIDs[0]

	if err := s.leases.SetSignatureIDs(ctx, lease.ID, req.SignatureRequestID, signatureID); err != nil {
		return nil, s.internal(err, "unable to save signature request")
	}

	url, err := s.provider.GetEmbeddedSignURL(ctx, signatureID)
	if err != nil {
		return nil, s.internal(err, "unable to fetch signing url")
	}

	logrus.WithFields(logrus.Fields{
		"lease_id":             lease.ID,
		"user_id":              caller.UserID,
		"signature_request_id": req.SignatureRequestID,
	}).Info("lease signature request created")
	return &model.SignatureURL{URL: url}, nil
}

// HandleEvent stores the signed agreement once every party has signed.
// Other events and events for unknown requests are ignored.
func (s *service) HandleEvent(ctx context.Context, event *model.SignatureEvent) error {
	if event == nil || event.Event.EventType != consts.EventAllSigned {
		return nil
	}
	requestID := event.RequestID()
	if requestID == "" {
		return nil
	}
	if s.provider == nil || s.storage == nil {
		return errors.New("e-signature provider or file storage is not configured")
	}

	ctx, cancel := util.ContextWithTimeout(ctx, s.config.ContextTimeout)
	defer cancel()

	lease, err := s.leases.FindBySignatureRequestID(ctx, requestID)
	if errors.Is(err, model.ErrNotFound) {
		logrus.WithField("signature_request_id", requestID).Info("no lease for signature request")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "unable to find lease for signature request")
	}

	data, err := s.provider.DownloadSignedFiles(ctx, requestID, consts.SignedFileType)
	if err != nil {
		return errors.Wrap(err, "unable to download signed agreement")
	}

	key := SignedAgreementKey(lease.ID)
	if err := s.storage.StoreFile(ctx, key, data, consts.SignedAgreementContentType); err != nil {
		return errors.Wrap(err, "unable to store signed agreement")
	}

	if err := s.leases.SetSignedAgreement(ctx, lease.ID, key, s.AgreementLink(lease.ID)); err != nil {
		return errors.Wrap(err, "unable to save signed agreement")
	}

	logrus.WithFields(logrus.Fields{
		"lease_id":             lease.ID,
		"signature_request_id": requestID,
		"bytes":                len(data),
	}).Info("signed lease agreement stored")
	return nil
}

// SignedAgreementURL presigns a short lived read url of the lease's signed
// agreement for its tenant or landlord.
func (s *service) SignedAgreementURL(ctx context.Context, caller *model.Caller, leaseID string) (string, error) {
	if caller == nil || caller.UserID == "" {
		return "", model.Unauthenticated("User must be authenticated")
	}
	leaseID = strings.TrimSpace(leaseID)
	if leaseID == "" {
		return "", model.InvalidArgument("leaseId is required")
	}

	ctx, cancel := util.ContextWithTimeout(ctx, s.config.ContextTimeout)
	defer cancel()

	lease, err := s.leases.GetByID(ctx, leaseID)
	if errors.Is(err, model.ErrNotFound) {
		return "", model.NotFound("Lease not found")
	}
	if err != nil {
		return "", s.internal(err, "unable to fetch lease")
	}

	allowed, err := s.isParty(ctx, lease, caller.UserID)
	if err != nil {
		return "", s.internal(err, "unable to fetch property")
	}
	if !allowed {
		return "", model.PermissionDenied("User is not a party to this lease")
	}
	if lease.SignedAgreementKey == "" {
		return "", model.NotFound("Signed agreement not available")
	}
	if s.storage == nil {
		return "", model.FailedPrecondition("File storage is not configured")
	}

	signed, err := s.storage.GetSignedURL(ctx, lease.SignedAgreementKey, s.config.ESign.SignedURLExpiry)
	if err != nil {
		return "", s.internal(err, "unable to sign agreement url")
	}
	return signed, nil
}

func (s *service) isParty(ctx context.Context, lease *model.Lease, userID string) (bool, error) {
	if userID == lease.TenantUID || userID == lease.LandlordUID {
		return true, nil
	}
	if lease.LandlordUID != "" || lease.PropertyID == "" || s.properties == nil {
		return false, nil
	}
	property, err := s.properties.GetByID(ctx, lease.PropertyID)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return property.LandlordUID == userID, nil
}

// AgreementLink is the stable url of a lease's signed agreement; it redirects
// to a freshly presigned storage url on every request.
func (s *service) AgreementLink(leaseID string) string {
	return strings.TrimRight(s.config.ESign.PublicBaseURL, "/") + "/api/leases/" + url.PathEscape(leaseID) + "/agreement"
}

// VerifyEvent checks the event hash when verification is enabled on the provider.
func (s *service) VerifyEvent(event *model.SignatureEvent) bool {
	if s.provider == nil {
		return false
	}
	return s.provider.VerifyEventHash(event.Event.EventTime, event.Event.EventType, event.Event.EventHash)
}

func (s *service) internal(err error, msg string) error {
	logrus.WithError(err).Error(msg)
	return model.Internal(msg + ": " + err.Error())
}

// SignedAgreementKey is the storage key of a lease's signed agreement.
func SignedAgreementKey(leaseID string) string {
	return "leases/" + leaseID + "/signed-agreement.pdf"
}
