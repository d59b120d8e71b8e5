package services

import (
	"github.com/0minute/VoucherAI/internal/core/domain"
	portsrepo "github.com/0minute/VoucherAI/internal/core/ports/repositories"
	portssvc "github.com/0minute/VoucherAI/internal/core/ports/services"
)

// NewServiceContainer wires the service facades in dependency order.
func NewServiceContainer(accounting *domain.AccountingConfig, schema domain.FieldSchema, voucherRepo portsrepo.VoucherRepositoryFacade) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	resolver := NewAccountResolver(accounting)

	container.Projector = NewProjectorService(schema)
	container.Voucher = NewVoucherService(voucherRepo, resolver)
	container.Journal = NewJournalService(accounting, resolver, voucherRepo, container.Projector)

	return container
}
