package verification

import (
	"context"
	"net/http"
	"time"

	apierrors "idvdemo/internal/pkg/errors"
	"idvdemo/internal/platform/audit"
	"idvdemo/internal/platform/config"
)

type Service struct {
	client   *Client
	products map[Product]config.ProductConfig
	audit    *audit.Logger
	now      func() time.Time
}

func NewService(client *Client, cfg config.VendorConfig, auditLogger *audit.Logger) *Service {
	return &Service{
		client: client,
		products: map[Product]config.ProductConfig{
			CrossCheck: cfg.CrossCheck,
			DOB:        cfg.DOB,
			SSN:        cfg.SSN,
		},
		audit: auditLogger,
		now:   time.Now,
	}
}

// Configured reports whether the server holds a secret for p.
func (s *Service) Configured(p Product) bool {
	return s.products[p].APIKey.IsSet()
}

type Status struct {
	Service    string `json:"service"`
	Status     string `json:"status"`
	Configured bool   `json:"configured"`
	Timestamp  string `json:"timestamp"`
}

// Status never calls the vendor.
func (s *Service) Status(p Product) Status {
	return Status{
		Service:    p.Service(),
		Status:     "active",
		Configured: s.Configured(p),
		Timestamp:  s.now().UTC().Format(time.RFC3339),
	}
}

// Verify validates req, forwards it with the product secret and normalizes the
// vendor response. No retries; one upstream attempt per call.
func (s *Service) Verify(ctx context.Context, p Product, req *Request, r *http.Request) Outcome {
	if s.audit != nil {
		s.audit.LogVerification(ctx, string(p), audit.Subject{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			Phone:       req.Phone,
			SSN:         req.SSN,
			DateOfBirth: req.DateOfBirth,
		}, r)
	}

	outcome := s.verify(ctx, p, req)

	if s.audit != nil {
		s.audit.LogOutcome(ctx, string(p), outcome.Status, outcome.Code())
	}
	return outcome
}

func (s *Service) verify(ctx context.Context, p Product, req *Request) Outcome {
	if verr := req.Validate(p); verr != nil {
		return failed(verr)
	}

	product := s.products[p]
	if !product.APIKey.IsSet() {
		return failed(apierrors.Configuration(apierrors.ErrCodeMissingAPIKey,
			p.Service()+" is not configured on this server"))
	}

	status, body, err := s.client.Post(ctx, product.Path, product.APIKey.RawString(), req.upstream())
	return classify(status, body, err)
}
