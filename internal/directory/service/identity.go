package service

import (
	"context"
	"errors"

	"smartgym/internal/directory/repository"
	"smartgym/internal/directory/validator"
	"smartgym/pkg/config"
	apperrors "smartgym/pkg/errors"
	"smartgym/pkg/model"
	"smartgym/pkg/sanitizer"
)

// IdentityService links national IDs to registered parties so the access
// desk and member tools can work from a DNI alone.
type IdentityService interface {
	LinkCustomer(ctx context.Context, req *model.IdentityLinkRequest) (*model.IdentityLink, error)
	LinkTrainer(ctx context.Context, req *model.IdentityLinkRequest) (*model.IdentityLink, error)
	Resolve(ctx context.Context, dni string) (*model.IdentityLink, error)
	CustomerByDNI(ctx context.Context, dni string) (*model.Customer, error)
}

type identityService struct {
	identities repository.IdentityRepository
	parties    repository.PartyRepository
	validator  *validator.PartyValidator
	cfg        *config.Config
}

func NewIdentityService(
	identities repository.IdentityRepository,
	parties repository.PartyRepository,
	validator *validator.PartyValidator,
	cfg *config.Config,
) IdentityService {
	return &identityService{
		identities: identities,
		parties:    parties,
		validator:  validator,
		cfg:        cfg,
	}
}

func (s *identityService) LinkCustomer(ctx context.Context, req *model.IdentityLinkRequest) (*model.IdentityLink, error) {
	return s.link(ctx, req, model.RoleCustomer)
}

func (s *identityService) LinkTrainer(ctx context.Context, req *model.IdentityLinkRequest) (*model.IdentityLink, error) {
	return s.link(ctx, req, model.RoleTrainer)
}

// link only accepts emails already registered under role. Relinking a DNI
// replaces its email.
func (s *identityService) link(ctx context.Context, req *model.IdentityLinkRequest, role string) (*model.IdentityLink, error) {
	if req == nil {
		return nil, apperrors.InvalidInput("Identity link cannot be empty")
	}
	req.DNI = sanitizer.NormalizeID(req.DNI)
	req.Email = sanitizer.NormalizeID(req.Email)
	if err := s.validator.ValidateIdentity(req); err != nil {
		s.cfg.Log.Warn("Identity link validation failed", "dni", req.DNI, "error", err)
		return nil, identityValidationError(err)
	}

	if err := s.ensureParty(ctx, req.Email, role); err != nil {
		return nil, err
	}

	link := &model.IdentityLink{
		DNI:      req.DNI,
		Email:    req.Email,
		Role:     role,
		LinkedAt: nowUTC(),
	}
	if err := s.identities.UpsertIdentity(ctx, link); err != nil {
		s.cfg.Log.Error("Failed to link identity", "dni", link.DNI, "error", err)
		return nil, apperrors.Internal("Failed to link identity", err)
	}

	s.cfg.Log.Info("Identity linked", "dni", link.DNI, "email", link.Email, "role", role)
	return link, nil
}

func (s *identityService) ensureParty(ctx context.Context, email, role string) error {
	var err error
	label := "customer"
	if role == model.RoleTrainer {
		label = "trainer"
		_, err = s.parties.FindTrainer(ctx, email)
	} else {
		_, err = s.parties.FindCustomer(ctx, email)
	}
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.UnknownParty(label, email)
	}
	s.cfg.Log.Error("Failed to look up party for identity link", "email", email, "error", err)
	return apperrors.Internal("Failed to look up "+label, err)
}

func (s *identityService) Resolve(ctx context.Context, dni string) (*model.IdentityLink, error) {
	dni = sanitizer.NormalizeID(dni)
	if dni == "" {
		return nil, apperrors.InvalidInput("DNI cannot be empty")
	}
	link, err := s.identities.FindIdentity(ctx, dni)
	if err != nil {
		if errors.Is(err, repository.ErrNotLinked) {
			return nil, apperrors.DNINotLinked(dni)
		}
		return nil, apperrors.Internal("Failed to resolve DNI", err)
	}
	return link, nil
}

func (s *identityService) CustomerByDNI(ctx context.Context, dni string) (*model.Customer, error) {
	link, err := s.Resolve(ctx, dni)
	if err != nil {
		return nil, err
	}
	customer, err := s.parties.FindCustomer(ctx, link.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Customer", link.Email)
		}
		return nil, apperrors.Internal("Failed to retrieve customer", err)
	}
	return customer, nil
}

func identityValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Invalid identity link", verrs.Details())
	}
	return apperrors.Validation("Invalid identity link", map[string]any{"error": err.Error()})
}
