package adminserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	analyticsports "github.com/laundromart/admin-api/internal/domains/analytics/ports"
)

// DashboardAPI wires HTTP transport with the analytics bounded context.
type DashboardAPI struct {
	service analyticsports.Service
}

// NewDashboardAPI creates a DashboardAPI backed by the provided service.
func NewDashboardAPI(service analyticsports.Service) DashboardAPI {
	return DashboardAPI{service: service}
}

type dashboardMonth struct {
	Orders        int64   `json:"orders"`
	Revenue       float64 `json:"revenue"`
	OrderGrowth   float64 `json:"orderGrowth"`
	RevenueGrowth float64 `json:"revenueGrowth"`
}

type dashboardOverview struct {
	TotalLaundries  int64          `json:"totalLaundries"`
	TotalUsers      int64          `json:"totalUsers"`
	TotalOrders     int64          `json:"totalOrders"`
	PlatformRevenue float64        `json:"platformRevenue"`
	ActiveOrders    int64          `json:"activeOrders"`
	ThisMonth       dashboardMonth `json:"thisMonth"`
}

// Get /api/admin/dashboard/overview
// Platform-wide headline metrics with month-over-month growth
func (api *DashboardAPI) Overview(c *gin.Context) {
	overview, err := api.service.Overview(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboardOverview{
		TotalLaundries:  overview.TotalLaundries,
		TotalUsers:      overview.TotalUsers,
		TotalOrders:     overview.TotalOrders,
		PlatformRevenue: overview.PlatformRevenue,
		ActiveOrders:    overview.ActiveOrders,
		ThisMonth: dashboardMonth{
			Orders:        overview.ThisMonth.Orders,
			Revenue:       overview.ThisMonth.Revenue,
			OrderGrowth:   overview.ThisMonth.OrderGrowth,
			RevenueGrowth: overview.ThisMonth.RevenueGrowth,
		},
	})
}
