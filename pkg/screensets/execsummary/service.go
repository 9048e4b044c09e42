package execsummary

import (
	"context"

	"github.com/go-go-golems/screenctl/pkg/api"
	"github.com/pkg/errors"
)

type SummaryAPI interface {
	GetSummary(ctx context.Context) (*Summary, error)
	GetAlerts(ctx context.Context) ([]ActiveAlert, error)
	GetSoftwareInventory(ctx context.Context) ([]DeviceSoftwareInventory, error)
}

// SummaryService reads the executive summary endpoints under /api.
type SummaryService struct {
	proto *api.RestProtocol
}

var _ SummaryAPI = (*SummaryService)(nil)

func NewSummaryService(env api.Env) (any, error) {
	return &SummaryService{proto: env.Protocol("/api")}, nil
}

func (s *SummaryService) GetSummary(ctx context.Context) (*Summary, error) {
	var out Summary
	if err := s.proto.Get(ctx, "/executive-summary", &out); err != nil {
		return nil, errors.Wrap(err, "get executive summary")
	}
	return &out, nil
}

func (s *SummaryService) GetAlerts(ctx context.Context) ([]ActiveAlert, error) {
	var out []ActiveAlert
	if err := s.proto.Get(ctx, "/executive-summary/alerts", &out); err != nil {
		return nil, errors.Wrap(err, "get alerts")
	}
	return out, nil
}

func (s *SummaryService) GetSoftwareInventory(ctx context.Context) ([]DeviceSoftwareInventory, error) {
	var out []DeviceSoftwareInventory
	if err := s.proto.Get(ctx, "/executive-summary/software-inventory", &out); err != nil {
		return nil, errors.Wrap(err, "get software inventory")
	}
	return out, nil
}
