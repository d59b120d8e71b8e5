package services

import (
	"fmt"

	"github.com/0minute/VoucherAI/internal/apperrors"
	"github.com/0minute/VoucherAI/internal/core/domain"
	portssvc "github.com/0minute/VoucherAI/internal/core/ports/services"
)

// projectorService renames canonical journal-line fields into a target ERP's
// column names. It is a pure projection: no destination types are validated,
// and canonical fields without a column for the target are dropped because
// SAP and the internal DZ layout expose different column subsets.
type projectorService struct {
	schema domain.FieldSchema
}

// NewProjectorService creates a projector over the injected field schema.
func NewProjectorService(schema domain.FieldSchema) portssvc.ProjectorSvcFacade {
	return &projectorService{schema: schema}
}

var _ portssvc.ProjectorSvcFacade = (*projectorService)(nil)

// Project renders each line under the target system's column names.
func (s *projectorService) Project(lines []domain.JournalLine, target string) ([]map[string]any, error) {
	if !s.knowsTarget(target) {
		return nil, fmt.Errorf("%w: unknown export target %q", apperrors.ErrValidation, target)
	}
	rows := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		canonical := l.Canonical()
		row := make(map[string]any, len(canonical))
		for field, value := range canonical {
			targets, ok := s.schema[field]
			if !ok {
				continue
			}
			column, ok := targets[target]
			if !ok {
				continue
			}
			row[column] = value
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// knowsTarget distinguishes a completely unknown target system, which is a
// caller error, from per-field gaps, which are deliberate column subsetting.
func (s *projectorService) knowsTarget(target string) bool {
	for _, targets := range s.schema {
		if _, ok := targets[target]; ok {
			return true
		}
	}
	return false
}
