package handlers

import (
	"errors"
	"net/http"

	"github.com/rigma/metadata/internal"
	"github.com/rigma/metadata/internal/repositories"
	"github.com/rigma/metadata/pkg/problem"
	"github.com/rigma/metadata/repository"
)

// Domains serves domain lookups.
type Domains struct {
	state *State
}

func NewDomains(state *State) *Domains {
	return &Domains{state: state}
}

// Routes implements internal.Handler.
func (h *Domains) Routes(r internal.Router) {
	show := repository.Handle(h.state, repositories.NewDomainRepository, h.show)
	r.GET("/domains/{domain_name}", show)
	r.HEAD("/domains/{domain_name}", show)

	byID := repository.Handle(h.state, repositories.NewDomainRepository, h.showByID)
	r.GET("/by-id/domains/{id}", byID)
	r.HEAD("/by-id/domains/{id}", byID)
}

func (h *Domains) show(c internal.Context, repo *repositories.DomainRepository) error {
	name := pathParam(c, "domain_name")

	domain, err := repo.FindByName(c, name)
	if errors.Is(err, repositories.ErrNotFound) {
		return &DomainNotFoundError{Name: name}
	}
	if err != nil {
		return problem.Database(err)
	}
	return c.JSON(http.StatusOK, domain)
}

func (h *Domains) showByID(c internal.Context, repo *repositories.DomainRepository) error {
	domainID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	domain, err := repo.FindByID(c, domainID)
	if errors.Is(err, repositories.ErrNotFound) {
		return &DomainNotFoundError{Name: domainID.String()}
	}
	if err != nil {
		return problem.Database(err)
	}
	return c.JSON(http.StatusOK, domain)
}
