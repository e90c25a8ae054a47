package handler

import (
	"errors"

	"github.com/amoylab/rentboard/internal/apiserver/database"
	"github.com/amoylab/rentboard/internal/common/dto"
	"github.com/amoylab/rentboard/internal/i18n"
	"github.com/gin-gonic/gin"
)

// GetPreferences returns the caller's preferences, null when none are stored
func (h *Handler) GetPreferences(c *gin.Context) {
	tenant, ok := h.identity(c)
	if !ok {
		return
	}
	pref, err := h.db.GetTenantPreference(c.Request.Context(), tenant)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		h.fail(c, err)
		return
	}
	i18n.Success().With("preferences", pref).Send(c)
}

// UpdatePreferences creates or replaces the caller's preferences
func (h *Handler) UpdatePreferences(c *gin.Context) {
	tenant, ok := h.identity(c)
	if !ok {
		return
	}
	var body dto.PreferenceBody
	if !bindJSON(c, &body) {
		return
	}
	pref, err := body.ToModel(tenant)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.db.UpsertTenantPreference(c.Request.Context(), pref); err != nil {
		h.fail(c, err)
		return
	}
	i18n.Success().With("preferences", pref).Send(c)
}
