package integration

import (
	"context"

	"go.uber.org/zap"

	"github.com/kobo/backend/internal/domain/integration"
)

// MappingService keeps the product-name mapping table in sync with its
// spreadsheet source and resolves raw names against the stored table.
type MappingService struct {
	mappingRepo integration.MappingRepository
	source      integration.MappingSource
	logger      *zap.Logger
}

// NewMappingService creates a new MappingService. The source is optional;
// when nil Sync is a no-op and only the stored table is used.
func NewMappingService(mappingRepo integration.MappingRepository, source integration.MappingSource, logger *zap.Logger) *MappingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MappingService{
		mappingRepo: mappingRepo,
		source:      source,
		logger:      logger,
	}
}

// Sync reloads the mapping table from the spreadsheet source, replacing the
// stored rows wholesale. Returns the number of rows loaded.
func (s *MappingService) Sync(ctx context.Context) (int, error) {
	if s.source == nil {
		return 0, nil
	}
	rows, err := s.source.Load(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.mappingRepo.ReplaceAll(ctx, rows); err != nil {
		return 0, err
	}
	s.logger.Info("product name mappings synced", zap.Int("rows", len(rows)))
	return len(rows), nil
}

// List returns every stored mapping row
func (s *MappingService) List(ctx context.Context) ([]MappingResponse, error) {
	rows, err := s.mappingRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]MappingResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, MappingResponse{
			RawKey:     row.RawKey,
			MappedName: row.MappedName,
		})
	}
	return responses, nil
}

// Resolve maps a raw product name through the stored table. A name with no
// matching row comes back unchanged, so callers can use this unconditionally.
func (s *MappingService) Resolve(ctx context.Context, rawName string) (string, error) {
	rows, err := s.mappingRepo.FindAll(ctx)
	if err != nil {
		return "", err
	}
	return integration.NewMappingTable(rows).Resolve(rawName), nil
}

// MappingResponse is a single mapping row
type MappingResponse struct {
	RawKey     string `json:"raw_key"`
	MappedName string `json:"mapped_name"`
}
