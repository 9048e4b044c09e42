package monitoring

import (
	"context"
	"net/url"

	"github.com/go-go-golems/screenctl/pkg/api"
	"github.com/pkg/errors"
)

// MonitoringAPI is what actions need from the monitoring backend.
type MonitoringAPI interface {
	GetMachines(ctx context.Context) ([]MachineInfo, error)
	GetMachine(ctx context.Context, machineID string) (*MachineInfo, error)
	GetMetrics(ctx context.Context, machineID string, tr TimeRange) ([]MetricsSnapshot, error)
	GetCurrentMetrics(ctx context.Context, machineID string) (MetricsSnapshot, error)
	GetProcesses(ctx context.Context, machineID string) ([]Process, error)
	GetFleetMachines(ctx context.Context, filters *FleetFilters) ([]MachineFleetInfo, error)
	GetFleetStatistics(ctx context.Context) (FleetStats, error)
	GetFleetMachine(ctx context.Context, machineID string) (*MachineFleetInfo, error)
}

// MonitoringService talks to the monitoring endpoints under /api/monitoring.
type MonitoringService struct {
	proto *api.RestProtocol
}

var _ MonitoringAPI = (*MonitoringService)(nil)

func NewMonitoringService(env api.Env) (any, error) {
	return &MonitoringService{proto: env.Protocol("/api/monitoring")}, nil
}

func (s *MonitoringService) GetMachines(ctx context.Context) ([]MachineInfo, error) {
	var out []MachineInfo
	if err := s.proto.Get(ctx, "/machines", &out); err != nil {
		return nil, errors.Wrap(err, "get machines")
	}
	return out, nil
}

func (s *MonitoringService) GetMachine(ctx context.Context, machineID string) (*MachineInfo, error) {
	var out *MachineInfo
	if err := s.proto.Get(ctx, "/machines/"+url.PathEscape(machineID), &out); err != nil {
		return nil, errors.Wrapf(err, "get machine %s", machineID)
	}
	return out, nil
}

// GetMetrics returns the history of a machine. The range is sent as a query
// parameter; mock lookups ignore it and always answer with the default range.
func (s *MonitoringService) GetMetrics(ctx context.Context, machineID string, tr TimeRange) ([]MetricsSnapshot, error) {
	var out []MetricsSnapshot
	req := api.Request{
		Path:  "/machines/" + url.PathEscape(machineID) + "/metrics",
		Query: url.Values{"range": {string(tr)}},
	}
	if err := s.proto.Do(ctx, req, &out); err != nil {
		return nil, errors.Wrapf(err, "get metrics for %s", machineID)
	}
	return out, nil
}

func (s *MonitoringService) GetCurrentMetrics(ctx context.Context, machineID string) (MetricsSnapshot, error) {
	var out MetricsSnapshot
	if err := s.proto.Get(ctx, "/machines/"+url.PathEscape(machineID)+"/metrics/current", &out); err != nil {
		return MetricsSnapshot{}, errors.Wrapf(err, "get current metrics for %s", machineID)
	}
	return out, nil
}

func (s *MonitoringService) GetProcesses(ctx context.Context, machineID string) ([]Process, error) {
	var out []Process
	if err := s.proto.Get(ctx, "/machines/"+url.PathEscape(machineID)+"/processes", &out); err != nil {
		return nil, errors.Wrapf(err, "get processes for %s", machineID)
	}
	return out, nil
}

func (s *MonitoringService) GetFleetMachines(ctx context.Context, filters *FleetFilters) ([]MachineFleetInfo, error) {
	q := url.Values{}
	if filters != nil {
		if filters.Location != "" {
			q.Set("location", string(filters.Location))
		}
		if filters.Status != "" {
			q.Set("status", string(filters.Status))
		}
		if filters.IssueType != "" {
			q.Set("issueType", string(filters.IssueType))
		}
		if filters.Search != "" {
			q.Set("search", filters.Search)
		}
	}
	var out []MachineFleetInfo
	if err := s.proto.Do(ctx, api.Request{Path: "/fleet", Query: q}, &out); err != nil {
		return nil, errors.Wrap(err, "get fleet")
	}
	return out, nil
}

func (s *MonitoringService) GetFleetStatistics(ctx context.Context) (FleetStats, error) {
	var out FleetStats
	if err := s.proto.Get(ctx, "/fleet/statistics", &out); err != nil {
		return FleetStats{}, errors.Wrap(err, "get fleet statistics")
	}
	return out, nil
}

func (s *MonitoringService) GetFleetMachine(ctx context.Context, machineID string) (*MachineFleetInfo, error) {
	var out *MachineFleetInfo
	if err := s.proto.Get(ctx, "/fleet/"+url.PathEscape(machineID), &out); err != nil {
		return nil, errors.Wrapf(err, "get fleet machine %s", machineID)
	}
	return out, nil
}
