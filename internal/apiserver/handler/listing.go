package handler

import (
	"errors"
	"net/http"

	"github.com/amoylab/rentboard/internal/apiserver/database"
	"github.com/amoylab/rentboard/internal/common/cnst"
	"github.com/amoylab/rentboard/internal/common/dto"
	"github.com/amoylab/rentboard/internal/i18n"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// SearchListings handles the public listing search
func (h *Handler) SearchListings(c *gin.Context) {
	var params dto.ListingSearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		i18n.Error(i18n.ErrInvalidPayload).WithParam("reason", err.Error()).Send(c)
		return
	}
	q, err := params.ToQuery()
	if err != nil {
		h.fail(c, err)
		return
	}

	span := tracer.Start(c.Request.Context(), cnst.SpanListingSearch).
		WithAttrs(attribute.Int("query.limit", q.Limit), attribute.Int("query.offset", q.Offset))
	defer span.End()

	listings, err := h.db.SearchListings(span.Ctx, q)
	if err != nil {
		span.Fail(err)
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(listings))
}

// GetListing handles fetching a single listing
func (h *Handler) GetListing(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if cached, hit := h.cache.Get(ctx, id); hit {
		h.metrics.CacheLookup(true)
		c.JSON(http.StatusOK, cached)
		return
	}
	h.metrics.CacheLookup(false)

	listing, err := h.db.GetListing(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		i18n.RespondWithError(c, i18n.ErrListingNotFound)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cache.Set(ctx, listing)
	c.JSON(http.StatusOK, listing)
}

// CreateListing handles listing creation by the caller
func (h *Handler) CreateListing(c *gin.Context) {
	owner, ok := h.identity(c)
	if !ok {
		return
	}
	var req dto.ListingRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(c, err)
		return
	}

	listing := &database.Listing{UserRef: owner}
	req.ApplyTo(listing)
	if err := h.db.CreateListing(c.Request.Context(), listing); err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.ListingCreated(string(listing.Status))
	c.JSON(http.StatusCreated, listing)
}

// ownedListing loads the :id listing and checks that the caller owns it.
// It responds and returns nil on any failure.
func (h *Handler) ownedListing(c *gin.Context) *database.Listing {
	caller, ok := h.identity(c)
	if !ok {
		return nil
	}
	id, ok := pathID(c)
	if !ok {
		return nil
	}

	listing, err := h.db.GetListing(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		i18n.RespondWithError(c, i18n.ErrListingNotFound)
		return nil
	}
	if err != nil {
		h.fail(c, err)
		return nil
	}
	if listing.UserRef != caller {
		i18n.RespondWithError(c, i18n.ErrListingNotOwned)
		return nil
	}
	return listing
}

// UpdateListing replaces the mutable fields of a listing owned by the caller
func (h *Handler) UpdateListing(c *gin.Context) {
	listing := h.ownedListing(c)
	if listing == nil {
		return
	}
	var req dto.ListingRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	req.ApplyTo(listing)
	err := h.db.UpdateListing(ctx, listing)
	if errors.Is(err, database.ErrNotFound) {
		i18n.RespondWithError(c, i18n.ErrListingNotFound)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cache.Invalidate(ctx, listing.ID)
	c.JSON(http.StatusOK, listing)
}

// DeleteListing deletes a listing owned by the caller
func (h *Handler) DeleteListing(c *gin.Context) {
	listing := h.ownedListing(c)
	if listing == nil {
		return
	}

	ctx := c.Request.Context()
	err := h.db.DeleteListing(ctx, listing.ID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		h.fail(c, err)
		return
	}
	h.cache.Invalidate(ctx, listing.ID)
	i18n.Success().Message(i18n.SuccessListingDeleted).Send(c)
}
