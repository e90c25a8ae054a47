package handler

import (
	"github.com/amoylab/rentboard/internal/apiserver/database"
	"github.com/amoylab/rentboard/internal/common/dto"
	"github.com/amoylab/rentboard/internal/i18n"
	"github.com/gin-gonic/gin"
)

// Rentals returns the rental history of the caller as tenant or landlord,
// with both parties and the property resolved
func (h *Handler) Rentals(c *gin.Context) {
	caller, ok := h.identity(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	rentals, err := h.db.ListRentalsByParty(ctx, caller)
	if err != nil {
		h.fail(c, err)
		return
	}

	// Collect both parties and the property of every rental for one batched lookup each
	userIDs := make([]database.ID, 0, 2*len(rentals))
	propertyIDs := make([]database.ID, 0, len(rentals))
	for _, r := range rentals {
		userIDs = append(userIDs, r.TenantID, r.LandlordID)
		propertyIDs = append(propertyIDs, r.PropertyID)
	}

	users, err := h.db.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		h.fail(c, err)
		return
	}
	properties, err := h.db.GetListingsByIDs(ctx, propertyIDs)
	if err != nil {
		h.fail(c, err)
		return
	}

	// Missing counterparts stay nil and render as null
	parties := make(map[database.ID]*dto.PartyInfo, len(users))
	for _, u := range users {
		parties[u.ID] = &dto.PartyInfo{Username: u.Username, Email: u.Email}
	}
	props := make(map[database.ID]*dto.PropertyInfo, len(properties))
	for _, l := range properties {
		props[l.ID] = &dto.PropertyInfo{Name: l.Name, Address: l.Address}
	}

	views := make([]dto.RentalView, 0, len(rentals))
	for _, r := range rentals {
		views = append(views, dto.RentalView{
			Rental:   r,
			Tenant:   parties[r.TenantID],
			Landlord: parties[r.LandlordID],
			Property: props[r.PropertyID],
		})
	}
	i18n.Success().With("rentals", views).Send(c)
}
