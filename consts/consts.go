package consts

// collections
const (
	Users               = "users"
	Properties          = "properties"
	Leases              = "leases"
	RentPayments        = "rent_payments"
	RentReminders       = "rent_reminders"
	MaintenanceRequests = "maintenance_requests"
	Messages            = "messages"
	Announcements       = "announcements"
)

// notification copy
const (
	RentPaymentTitle        = "Rent Payment Updated"
	RentPaymentBody         = "A rent payment record has changed."
	MaintenanceTitle        = "Maintenance Request Updated"
	MaintenanceFallbackBody = "A maintenance request has been updated."
	MessageTitle            = "New Message"
	MessageFallbackBody     = "You have a new message."
)

// e-signature copy
const (
	LeaseSignatureTitle   = "Lease Agreement"
	LeaseSignatureSubject = "Please sign your lease agreement"
	LeaseSignatureMessage = "Please review and sign your lease agreement."
	DefaultSignerName     = "Tenant"
)

// hellosign events
const (
	EventAllSigned    = "signature_request_all_signed"
	EventCallbackTest = "callback_test"
)

const (
	SignedAgreementContentType = "application/pdf"
	SignedFileType             = "pdf"
)
