package referencedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"precheck/internal/referencedata/metrics"
	"precheck/internal/validation/ports"
	id "precheck/pkg/domain"
)

const (
	sourceHTTP         = "http"
	defaultHTTPTimeout = 5 * time.Second
	maxResponseBytes   = 8 << 20
)

// HTTPGateway reads reference data from a remote reference data service.
// Keyed lookups answered with 404 are "no match".
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	token   string
	metrics *metrics.Metrics
}

// HTTPOption configures the HTTP gateway.
type HTTPOption func(*HTTPGateway)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(g *HTTPGateway) {
		g.client = c
	}
}

// WithBearerToken sends token on every request.
func WithBearerToken(token string) HTTPOption {
	return func(g *HTTPGateway) {
		g.token = token
	}
}

func WithHTTPMetrics(m *metrics.Metrics) HTTPOption {
	return func(g *HTTPGateway) {
		g.metrics = m
	}
}

// NewHTTPGateway creates a gateway for the service rooted at baseURL.
func NewHTTPGateway(baseURL string, opts ...HTTPOption) *HTTPGateway {
	g := &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *HTTPGateway) CountryNationalities(ctx context.Context) ([]ports.CountryNationality, error) {
	var out []ports.CountryNationality
	_, err := g.get(ctx, "country_nationalities", "/country-nationalities", nil, &out)
	return out, err
}

func (g *HTTPGateway) BailStatuses(ctx context.Context) ([]ports.BailStatus, error) {
	var out []ports.BailStatus
	_, err := g.get(ctx, "bail_statuses", "/bail-statuses", nil, &out)
	return out, err
}

func (g *HTTPGateway) ObservedEthnicities(ctx context.Context) ([]ports.Ethnicity, error) {
	var out []ports.Ethnicity
	_, err := g.get(ctx, "observed_ethnicities", "/ethnicities/observed", nil, &out)
	return out, err
}

func (g *HTTPGateway) SelfDefinedEthnicities(ctx context.Context) ([]ports.Ethnicity, error) {
	var out []ports.Ethnicity
	_, err := g.get(ctx, "self_defined_ethnicities", "/ethnicities/self-defined", nil, &out)
	return out, err
}

func (g *HTTPGateway) OffenderCodes(ctx context.Context) ([]ports.OffenderCode, error) {
	var out []ports.OffenderCode
	_, err := g.get(ctx, "offender_codes", "/offender-codes", nil, &out)
	return out, err
}

func (g *HTTPGateway) HearingTypes(ctx context.Context) ([]ports.HearingType, error) {
	var out []ports.HearingType
	_, err := g.get(ctx, "hearing_types", "/hearing-types", nil, &out)
	return out, err
}

func (g *HTTPGateway) DocumentTypeAccess(ctx context.Context) ([]ports.DocumentTypeAccess, error) {
	var out []ports.DocumentTypeAccess
	_, err := g.get(ctx, "document_types", "/document-types-access", nil, &out)
	return out, err
}

func (g *HTTPGateway) OrganisationUnits(ctx context.Context, ouCode string) ([]ports.OrganisationUnit, error) {
	var out []ports.OrganisationUnit
	_, err := g.get(ctx, "organisation_units", "/organisation-units", url.Values{"oucode": {ouCode}}, &out)
	return out, err
}

func (g *HTTPGateway) OrganisationUnitWithCourtrooms(ctx context.Context, ouCode string) (*ports.CourtCentre, error) {
	var out ports.CourtCentre
	found, err := g.get(ctx, "court_centres", "/organisation-units/"+url.PathEscape(ouCode)+"/courtrooms", nil, &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

func (g *HTTPGateway) ProsecutorByOUCode(ctx context.Context, ouCode string) (*ports.Prosecutor, error) {
	var out ports.Prosecutor
	found, err := g.get(ctx, "prosecutors", "/prosecutors", url.Values{"oucode": {ouCode}}, &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

func (g *HTTPGateway) ProsecutorByID(ctx context.Context, prosecutorID id.ProsecutorID) (*ports.Prosecutor, error) {
	var out ports.Prosecutor
	found, err := g.get(ctx, "prosecutors", "/prosecutors/"+prosecutorID.String(), nil, &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

// get fetches path into out. found is false on 404.
func (g *HTTPGateway) get(ctx context.Context, lookup, path string, query url.Values, out any) (found bool, err error) {
	start := time.Now()
	defer func() {
		g.metrics.ObserveLookup(sourceHTTP, lookup, time.Since(start).Seconds())
		if err != nil {
			g.metrics.RecordLookupError(sourceHTTP, string(CategoryOf(err)))
		}
	}()

	target := g.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false, NewGatewayError(ErrorInternal, sourceHTTP, lookup, err)
	}
	req.Header.Set("Accept", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return false, NewGatewayError(transportCategory(err), sourceHTTP, lookup, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return false, NewGatewayError(ErrorAuthentication, sourceHTTP, lookup, statusError(resp))
	case resp.StatusCode == http.StatusTooManyRequests:
		return false, NewGatewayError(ErrorRateLimited, sourceHTTP, lookup, statusError(resp))
	case resp.StatusCode >= 500:
		return false, NewGatewayError(ErrorOutage, sourceHTTP, lookup, statusError(resp))
	case resp.StatusCode != http.StatusOK:
		return false, NewGatewayError(ErrorInternal, sourceHTTP, lookup, statusError(resp))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return false, NewGatewayError(ErrorBadData, sourceHTTP, lookup, err)
	}
	return true, nil
}

func transportCategory(err error) ErrorCategory {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return ErrorTimeout
	default:
		return ErrorOutage
	}
}

func statusError(resp *http.Response) error {
	return fmt.Errorf("unexpected status %d", resp.StatusCode)
}
