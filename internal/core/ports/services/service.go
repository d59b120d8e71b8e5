package services

// ServiceContainer holds the service facades handed to the handler layer.
type ServiceContainer struct {
	Voucher   VoucherSvcFacade
	Journal   JournalSvcFacade
	Projector ProjectorSvcFacade
}
