package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/pantry/internal/store"
)

func (s *Server) registerAdminRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getStorageStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats",
		Summary:     "Storage statistics",
		Description: "Draft counts per kind and approximate bytes used",
		Tags:        []string{"Admin"},
	}, s.handleGetStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "repairIndexes",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/repair",
		Summary:     "Repair draft indexes",
		Description: "Drops index entries without a blob and adopts decodable orphan drafts",
		Tags:        []string{"Admin"},
	}, s.handleRepair)
}

// StatsOutput wraps storage statistics for Huma.
type StatsOutput struct {
	Body *store.StorageStats
}

// RepairOutput wraps a repair report for Huma.
type RepairOutput struct {
	Body *store.RepairReport
}

func (s *Server) handleGetStats(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
	stats, err := s.drafts.StorageStats(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsOutput{Body: stats}, nil
}

func (s *Server) handleRepair(ctx context.Context, _ *struct{}) (*RepairOutput, error) {
	report, err := s.drafts.Repair(ctx)
	if err != nil {
		return nil, err
	}
	return &RepairOutput{Body: report}, nil
}
