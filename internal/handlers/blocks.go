package handlers

import (
	"errors"
	"net/http"

	"github.com/rigma/metadata/internal"
	"github.com/rigma/metadata/internal/repositories"
	"github.com/rigma/metadata/pkg/problem"
	"github.com/rigma/metadata/repository"
)

// Blocks serves block lookups.
type Blocks struct {
	state *State
}

func NewBlocks(state *State) *Blocks {
	return &Blocks{state: state}
}

// Routes implements internal.Handler.
func (h *Blocks) Routes(r internal.Router) {
	show := repository.Handle(h.state, repositories.NewBlockRepository, h.show)
	r.GET("/domains/{domain_name}/{block_name}", show)
	r.HEAD("/domains/{domain_name}/{block_name}", show)

	byID := repository.Handle(h.state, repositories.NewBlockRepository, h.showByID)
	r.GET("/by-id/blocks/{id}", byID)
	r.HEAD("/by-id/blocks/{id}", byID)
}

// show looks a block up by name alone. The domain segment only scopes the URL.
func (h *Blocks) show(c internal.Context, repo *repositories.BlockRepository) error {
	name := pathParam(c, "block_name")
	c.LogDebug("block lookup", "domain_name", pathParam(c, "domain_name"), "block_name", name)

	block, err := repo.FindByName(c, name)
	if errors.Is(err, repositories.ErrNotFound) {
		return &BlockNotFoundError{Name: name}
	}
	if err != nil {
		return problem.Database(err)
	}
	return c.JSON(http.StatusOK, block)
}

func (h *Blocks) showByID(c internal.Context, repo *repositories.BlockRepository) error {
	blockID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	block, err := repo.FindByID(c, blockID)
	if errors.Is(err, repositories.ErrNotFound) {
		return &BlockNotFoundError{Name: blockID.String()}
	}
	if err != nil {
		return problem.Database(err)
	}
	return c.JSON(http.StatusOK, block)
}
