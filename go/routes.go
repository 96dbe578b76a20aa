package adminserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laundromart/admin-api/internal/auth"
	identitydomain "github.com/laundromart/admin-api/internal/domains/identity/domain"
)

// Route is the information for every API endpoint.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// Routes is a map of defined API endpoints.
type Routes map[string][]Route

// ApiHandleFunctions holds the API handlers for every route group.
type ApiHandleFunctions struct {
	AuthAPI      AuthAPI
	DashboardAPI DashboardAPI
	LaundryAPI   LaundryAPI
	OrderAPI     OrderAPI
}

// NewRouter returns a new router with default gin middleware.
func NewRouter(handleFunctions ApiHandleFunctions, authMiddleware *auth.Middleware) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions, authMiddleware)
}

// NewRouterWithGinEngine adds the API routes to an existing gin engine. The
// login route is public; everything under /api/admin requires a bearer token
// with the SUPER_ADMIN role.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, authMiddleware *auth.Middleware) *gin.Engine {
	routes := getRoutes(handleFunctions)
	for _, route := range routes["public"] {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}

	admin := router.Group("/api/admin",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(string(identitydomain.RoleSuperAdmin)),
	)
	for _, route := range routes["admin"] {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandleFunc
		}
		admin.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

func defaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) Routes {
	return Routes{
		"public": {
			{
				Name:        "Login",
				Method:      http.MethodPost,
				Pattern:     "/api/login",
				HandlerFunc: handleFunctions.AuthAPI.Login,
			},
		},
		"admin": {
			{
				Name:        "DashboardOverview",
				Method:      http.MethodGet,
				Pattern:     "/dashboard/overview",
				HandlerFunc: handleFunctions.DashboardAPI.Overview,
			},
			{
				Name:        "LaundryLeaderboard",
				Method:      http.MethodGet,
				Pattern:     "/laundries/performance",
				HandlerFunc: handleFunctions.LaundryAPI.Leaderboard,
			},
			{
				Name:        "GetLaundry",
				Method:      http.MethodGet,
				Pattern:     "/laundries/:laundryId",
				HandlerFunc: handleFunctions.LaundryAPI.GetLaundry,
			},
			{
				Name:        "UpdateLaundry",
				Method:      http.MethodPatch,
				Pattern:     "/laundries/:laundryId",
				HandlerFunc: handleFunctions.LaundryAPI.UpdateLaundry,
			},
			{
				Name:        "SuspendLaundry",
				Method:      http.MethodPost,
				Pattern:     "/laundries/:laundryId/suspend",
				HandlerFunc: handleFunctions.LaundryAPI.SuspendLaundry,
			},
			{
				Name:        "LaundryPerformance",
				Method:      http.MethodGet,
				Pattern:     "/laundries/:laundryId/performance",
				HandlerFunc: handleFunctions.LaundryAPI.Performance,
			},
			{
				Name:        "LaundryReviews",
				Method:      http.MethodGet,
				Pattern:     "/laundries/:laundryId/reviews",
				HandlerFunc: handleFunctions.LaundryAPI.Reviews,
			},
			{
				Name:        "LaundryOrders",
				Method:      http.MethodGet,
				Pattern:     "/laundries/:laundryId/orders",
				HandlerFunc: handleFunctions.LaundryAPI.Orders,
			},
			{
				Name:        "LaundryActivity",
				Method:      http.MethodGet,
				Pattern:     "/laundries/:laundryId/activity",
				HandlerFunc: handleFunctions.LaundryAPI.Activity,
			},
			{
				Name:        "ListOrders",
				Method:      http.MethodGet,
				Pattern:     "/orders",
				HandlerFunc: handleFunctions.OrderAPI.ListOrders,
			},
			{
				Name:        "GetOrder",
				Method:      http.MethodGet,
				Pattern:     "/orders/:orderId",
				HandlerFunc: handleFunctions.OrderAPI.GetOrder,
			},
		},
	}
}
