package handler

import (
	"github.com/amoylab/rentboard/internal/apiserver/middleware"
	"github.com/amoylab/rentboard/internal/common/cnst"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API on api, normally the /api group
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	auth := middleware.JWTAuthMiddleware(h.jwtService)

	api.POST("/auth/signup", h.SignUp)
	api.POST("/auth/signin", h.SignIn)

	listing := api.Group("/listing")
	{
		listing.GET("/get", h.SearchListings)
		listing.GET("/get/:id", h.GetListing)
		listing.POST("/upload-images", h.UploadImages)
		listing.POST("/create", auth, h.CreateListing)
		listing.POST("/update/:id", auth, h.UpdateListing)
		listing.DELETE("/delete/:id", auth, h.DeleteListing)
	}

	secured := api.Group("", auth)
	{
		secured.GET("/get-active-listing", h.ActiveListings)
		secured.GET("/get-pending-requests", h.PendingListings)
		secured.GET("/get-incoming-requests", h.IncomingRequests)
		secured.POST("/create-active-listing", h.CreateActiveListing)
		secured.POST("/create-pending-listing", h.CreatePendingListing)
		secured.GET("/get-earnings", h.Earnings)
		secured.GET("/get-account", h.Account)
		secured.GET("/landlord-dashboard", middleware.RequireRoles(cnst.RoleLandlord), h.LandlordDashboard)
		secured.GET("/tenant-dashboard", middleware.RequireRoles(cnst.RoleTenant), h.TenantDashboard)
		secured.GET("/tenant/preferences", h.GetPreferences)
		secured.POST("/tenant/preferences", h.UpdatePreferences)
		secured.GET("/rentals", h.Rentals)
	}
}
