package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/amoylab/rentboard/internal/apiserver/database"
	"github.com/amoylab/rentboard/internal/common/cnst"
	"github.com/amoylab/rentboard/internal/common/dto"
	"github.com/amoylab/rentboard/internal/i18n"
	"github.com/amoylab/rentboard/pkg/trace"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = trace.Tracer(cnst.TraceAPIServer)

// totalEarnings sums amounts in decimal so that many small amounts do not drift
func totalEarnings(earnings []*database.Earning) float64 {
	total := decimal.Zero
	for _, e := range earnings {
		total = total.Add(decimal.NewFromFloat(e.Amount))
	}
	f, _ := total.Float64()
	return f
}

// ActiveListings returns the caller's active listings
func (h *Handler) ActiveListings(c *gin.Context) {
	owner, ok := h.identity(c)
	if !ok {
		return
	}
	active, err := h.db.ListListingsByOwner(c.Request.Context(), owner, cnst.ListingStatusActive)
	if err != nil {
		h.fail(c, err)
		return
	}
	i18n.Success().
		With("count", len(active)).
		With("active", orEmpty(active)).
		Send(c)
}

// PendingListings returns the caller's pending listings
func (h *Handler) PendingListings(c *gin.Context) {
	owner, ok := h.identity(c)
	if !ok {
		return
	}
	pending, err := h.db.ListListingsByOwner(c.Request.Context(), owner, cnst.ListingStatusPending)
	if err != nil {
		h.fail(c, err)
		return
	}
	i18n.Success().
		With("count", len(pending)).
		With("pending", orEmpty(pending)).
		Send(c)
}

// IncomingRequests returns the pending tenant requests addressed to the caller
func (h *Handler) IncomingRequests(c *gin.Context) {
	landlord, ok := h.identity(c)
	if !ok {
		return
	}
	requests, err := h.db.ListPendingRequestsByLandlord(c.Request.Context(), landlord, cnst.RequestStatusPending)
	if err != nil {
		h.fail(c, err)
		return
	}
	i18n.Success().
		With("count", len(requests)).
		With("requests", orEmpty(requests)).
		Send(c)
}

// CreateActiveListing creates an active listing together with its earning
// record. When the earning cannot be stored the listing is removed again.
func (h *Handler) CreateActiveListing(c *gin.Context) {
	owner, ok := h.identity(c)
	if !ok {
		return
	}
	var req dto.ActiveListingRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(c, err)
		return
	}

	// Owner and status never come from the body
	listing := &database.Listing{UserRef: owner}
	req.ApplyTo(listing)
	listing.Status = cnst.ListingStatusActive
	earning := &database.Earning{LandlordID: owner, Amount: req.EarningAmount()}

	span := tracer.Start(c.Request.Context(), cnst.SpanCreateActiveListing).
		WithAttrs(attribute.String(cnst.AttrUserID, owner.String()))
	defer span.End()

	err := h.db.Transaction(span.Ctx, func(ctx context.Context) error {
		// Store the listing first, the earning references its id
		if err := h.db.CreateListing(ctx, listing); err != nil {
			return err
		}
		earning.ListingID = listing.ID
		if err := h.db.CreateEarning(ctx, earning); err != nil {
			// Remove the listing again so no active listing exists without its earning
			if derr := h.db.DeleteListing(ctx, listing.ID); derr != nil {
				return &database.PartialWriteError{ListingID: listing.ID, Err: errors.Join(err, derr)}
			}
			return err
		}
		return nil
	})
	if err != nil {
		span.Fail(err)
		h.fail(c, err)
		return
	}
	span.WithAttrs(attribute.String(cnst.AttrListingID, listing.ID.String()))

	h.metrics.ListingCreated(string(listing.Status))
	h.metrics.EarningRecorded()
	i18n.Created().With("listing", listing).Send(c)
}

// CreatePendingListing records a tenant's request for a listing
func (h *Handler) CreatePendingListing(c *gin.Context) {
	tenant, ok := h.identity(c)
	if !ok {
		return
	}
	var body dto.PendingRequestBody
	if !bindJSON(c, &body) {
		return
	}
	req, err := body.ToModel(tenant)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.db.CreatePendingRequest(c.Request.Context(), req); err != nil {
		h.fail(c, err)
		return
	}
	i18n.Created().
		Message(i18n.SuccessPendingRequestCreated).
		With("data", req).
		Send(c)
}

// Earnings returns the caller's earning records and their total
func (h *Handler) Earnings(c *gin.Context) {
	landlord, ok := h.identity(c)
	if !ok {
		return
	}
	earnings, err := h.db.ListEarningsByLandlord(c.Request.Context(), landlord)
	if err != nil {
		h.fail(c, err)
		return
	}
	i18n.Success().
		With("count", len(earnings)).
		With("totalEarnings", totalEarnings(earnings)).
		With("earnings", orEmpty(earnings)).
		Send(c)
}

// Account returns the caller's account details and earnings
func (h *Handler) Account(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	user, err := h.db.GetUserByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		i18n.RespondWithError(c, i18n.ErrUserNotFound)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	earnings, err := h.db.ListEarningsByLandlord(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	list := make([]dto.EarningView, 0, len(earnings))
	for _, e := range earnings {
		list = append(list, dto.EarningView{
			Amount:    e.Amount,
			ListingID: e.ListingID,
			Paid:      e.Paid,
			CreatedAt: e.CreatedAt,
		})
	}
	i18n.Success().
		With("user", dto.PartyInfo{Username: user.Username, Email: user.Email}).
		With("earnings", gin.H{
			"totalEarnings": totalEarnings(earnings),
			"list":          list,
		}).
		Send(c)
}

// LandlordDashboard aggregates a landlord's listings and earnings
func (h *Handler) LandlordDashboard(c *gin.Context) {
	landlord, ok := h.identity(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	listings, err := h.db.ListListingsByOwner(ctx, landlord, "")
	if err != nil {
		h.fail(c, err)
		return
	}
	earnings, err := h.db.ListEarningsByLandlord(ctx, landlord)
	if err != nil {
		h.fail(c, err)
		return
	}
	i18n.Success().With("data", gin.H{
		"listings":      orEmpty(listings),
		"totalEarnings": totalEarnings(earnings),
		"earnings":      orEmpty(earnings),
	}).Send(c)
}

// TenantDashboard aggregates a tenant's rentals and open requests
func (h *Handler) TenantDashboard(c *gin.Context) {
	tenant, ok := h.identity(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	user, err := h.db.GetUserByID(ctx, tenant)
	if errors.Is(err, database.ErrNotFound) {
		i18n.RespondWithError(c, i18n.ErrUserNotFound)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	rentals, err := h.db.ListListingsByTenant(ctx, tenant)
	if err != nil {
		h.fail(c, err)
		return
	}
	pending, err := h.db.ListPendingRequestsByTenant(ctx, tenant, cnst.RequestStatusPending)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tenant": gin.H{
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
		"activeRentals":   orEmpty(rentals),
		"pendingRequests": orEmpty(pending),
	})
}
