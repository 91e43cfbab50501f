package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Invoice  InvoiceSvcFacade
	Approval ApprovalSvc
	Payment  PaymentSvcFacade
	Todo     TodoSvc

	// Directory is optional; the login route is only served when it is set.
	Directory IdentityDirectory
}
