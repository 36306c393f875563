package gateway

import (
	"context"

	"tn-weather/datasource"
	"tn-weather/models"
)

// Connection banner messages
const (
	msgKeyRequired = "API key required for real weather data"
	msgConnected   = "Real-time weather data active"
	msgChecking    = "Checking connection..."
)

// CheckStatus probes the vendor with a request for the probe city.
// The HTTP status is kept so an invalid key can be told apart from other failures.
func (g *Gateway) CheckStatus(ctx context.Context) models.APIStatus {
	if !g.HasCredential() {
		return models.APIStatus{Status: models.StatusNoKey, Message: "API key not configured"}
	}

	probeCtx, cancel := context.WithTimeout(ctx, g.cfg.ProbeTimeout)
	defer cancel()

	_, err := g.vendor.Fetch(probeCtx, QueryName(g.cfg.ProbeCity))
	if err == nil {
		return models.APIStatus{
			Status:  models.StatusConnected,
			Message: msgConnected,
			Service: g.cfg.Service,
		}
	}

	g.logger.Warn("status probe failed", "vendor", g.cfg.Service, "error", err)

	status := models.APIStatus{
		Status:     models.StatusError,
		Message:    "Connection failed: " + err.Error(),
		Service:    g.cfg.Service,
		HTTPStatus: datasource.StatusCode(err),
	}
	if datasource.IsUnauthorized(err) {
		status.Message = "Invalid API key"
	}
	return status
}

// ConnectionStatus turns a probe result into the dashboard banner.
// An empty or unknown status means the probe has not completed yet.
func ConnectionStatus(status models.APIStatus) models.ConnectionStatus {
	switch status.Status {
	case models.StatusNoKey:
		return models.ConnectionStatus{Message: msgKeyRequired, Type: "warning"}
	case models.StatusConnected:
		return models.ConnectionStatus{Connected: true, Message: msgConnected, Type: "success"}
	case models.StatusError:
		return models.ConnectionStatus{Message: status.Message, Type: "error"}
	default:
		return models.ConnectionStatus{Message: msgChecking, Type: "info"}
	}
}
