package adminserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/laundromart/admin-api/internal/auth"
	activityapp "github.com/laundromart/admin-api/internal/domains/activity/application"
	activitydomain "github.com/laundromart/admin-api/internal/domains/activity/domain"
	"github.com/laundromart/admin-api/internal/domains/analytics/engine"
	analyticsports "github.com/laundromart/admin-api/internal/domains/analytics/ports"
	laundryapp "github.com/laundromart/admin-api/internal/domains/laundries/application"
	laundrydomain "github.com/laundromart/admin-api/internal/domains/laundries/domain"
	laundryports "github.com/laundromart/admin-api/internal/domains/laundries/ports"
	orderapp "github.com/laundromart/admin-api/internal/domains/orders/application"
	orderdomain "github.com/laundromart/admin-api/internal/domains/orders/domain"
	orderports "github.com/laundromart/admin-api/internal/domains/orders/ports"
	"github.com/laundromart/admin-api/internal/shared/apierrors"
	"github.com/laundromart/admin-api/internal/shared/pagination"
)

// LaundryAPI wires HTTP transport with the laundries bounded context and the
// read models that hang off a single laundry.
type LaundryAPI struct {
	laundries *laundryapp.Service
	analytics analyticsports.Service
	orders    *orderapp.Service
	activity  *activityapp.Service
}

// NewLaundryAPI creates a LaundryAPI backed by the provided services.
func NewLaundryAPI(
	laundries *laundryapp.Service,
	analytics analyticsports.Service,
	orders *orderapp.Service,
	activity *activityapp.Service,
) LaundryAPI {
	return LaundryAPI{
		laundries: laundries,
		analytics: analytics,
		orders:    orders,
		activity:  activity,
	}
}

// Get /api/admin/laundries/:laundryId
// Comprehensive laundry detail with performance summary
func (api *LaundryAPI) GetLaundry(c *gin.Context) {
	detail, err := api.laundries.Detail(c.Request.Context(), c.Param("laundryId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	laundry := detail.Laundry
	response := gin.H{
		"id":             laundry.ID,
		"name":           laundry.Name,
		"description":    laundry.Description,
		"email":          laundry.Email,
		"phone":          laundry.Phone,
		"address":        laundry.Address,
		"city":           laundry.City,
		"state":          laundry.State,
		"zipCode":        laundry.ZipCode,
		"country":        laundry.Country,
		"status":         laundry.Status,
		"rating":         laundry.Rating,
		"isActive":       laundry.IsActive,
		"operatingHours": laundry.OperatingHours,
		"createdAt":      laundry.CreatedAt,
		"updatedAt":      laundry.UpdatedAt,
		"owner":          ownerJSON(laundry.Owner),
		"products":       productsJSON(detail.Products),
		"recentOrders":   orderDigestsJSON(detail.RecentOrders),
		"recentReviews":  reviewsJSON(detail.RecentReviews),
		"recentActivity": activityStripJSON(detail.RecentActivity),
		"performanceSummary": gin.H{
			"monthlyOrders":  detail.Performance.MonthlyOrders,
			"monthlyRevenue": detail.Performance.MonthlyRevenue,
			"totalCustomers": detail.Performance.TotalCustomers,
			"averageRating":  detail.Performance.AverageRating,
			"totalOrders":    detail.Counts.Orders,
			"totalReviews":   detail.Counts.Reviews,
			"totalProducts":  detail.Counts.Products,
		},
	}
	c.JSON(http.StatusOK, response)
}

type laundryPatchRequest struct {
	Name           *string               `json:"name"`
	Description    *string               `json:"description"`
	Email          *string               `json:"email"`
	Phone          *string               `json:"phone"`
	Address        *string               `json:"address"`
	City           *string               `json:"city"`
	State          *string               `json:"state"`
	ZipCode        *string               `json:"zipCode"`
	Country        *string               `json:"country"`
	ServiceTags    *[]string             `json:"serviceTags"`
	OperatingHours *string               `json:"operatingHours"`
	Status         *laundrydomain.Status `json:"status"`
	IsActive       *bool                 `json:"isActive"`
}

// Patch /api/admin/laundries/:laundryId
// Partial profile update; absent fields stay untouched
func (api *LaundryAPI) UpdateLaundry(c *gin.Context) {
	var payload laundryPatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithMessage("Invalid request body"))
		return
	}
	if payload.Status != nil && !validLaundryStatus(*payload.Status) {
		apierrors.Respond(c, apierrors.Validation("Invalid laundry status %q", string(*payload.Status)))
		return
	}

	update := laundrydomain.ProfileUpdate{
		Name:           payload.Name,
		Description:    payload.Description,
		Email:          payload.Email,
		Phone:          payload.Phone,
		Address:        payload.Address,
		City:           payload.City,
		State:          payload.State,
		ZipCode:        payload.ZipCode,
		Country:        payload.Country,
		ServiceTags:    payload.ServiceTags,
		OperatingHours: payload.OperatingHours,
		Status:         payload.Status,
		IsActive:       payload.IsActive,
	}
	updated, err := api.laundries.Patch(c.Request.Context(), c.Param("laundryId"), update, actorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, laundryJSON(updated))
}

type suspendRequest struct {
	Reason string `json:"reason"`
}

// Post /api/admin/laundries/:laundryId/suspend
// Suspend a laundry, cancel its in-flight orders, audit the action
func (api *LaundryAPI) SuspendLaundry(c *gin.Context) {
	var payload suspendRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			apierrors.Respond(c, apierrors.ErrBadRequest.WithMessage("Invalid request body"))
			return
		}
	}

	result, err := api.laundries.Suspend(c.Request.Context(), c.Param("laundryId"), payload.Reason, actorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Laundry suspended successfully",
		"laundry": gin.H{
			"id":          result.Laundry.ID,
			"name":        result.Laundry.Name,
			"status":      result.Laundry.Status,
			"isActive":    result.Laundry.IsActive,
			"suspendedAt": result.Laundry.UpdatedAt,
		},
	})
}

// Get /api/admin/laundries/:laundryId/performance
// Trailing 12-month performance report
func (api *LaundryAPI) Performance(c *gin.Context) {
	perf, err := api.analytics.Performance(c.Request.Context(), c.Param("laundryId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	monthly := make([]gin.H, 0, len(perf.MonthlyData))
	for _, point := range perf.MonthlyData {
		monthly = append(monthly, gin.H{
			"month":           point.Month,
			"orders":          point.Orders,
			"revenue":         point.Revenue,
			"completedOrders": point.CompletedOrders,
			"avgRating":       point.AvgRating,
			"customers":       point.Customers,
			"completionRate":  point.CompletionRate,
		})
	}
	topProducts := make([]gin.H, 0, len(perf.TopProducts))
	for _, product := range perf.TopProducts {
		topProducts = append(topProducts, gin.H{
			"product":       product.Product,
			"category":      product.Category,
			"totalQuantity": product.TotalQuantity,
			"totalRevenue":  product.TotalRevenue,
			"orderCount":    product.OrderCount,
		})
	}
	recentReviews := make([]gin.H, 0, len(perf.RecentReviews))
	for _, review := range perf.RecentReviews {
		recentReviews = append(recentReviews, gin.H{
			"id":           review.ID,
			"rating":       review.Rating,
			"comment":      review.Comment,
			"customerName": review.CustomerName,
			"createdAt":    review.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"overview": gin.H{
			"totalOrders":       perf.Overview.TotalOrders,
			"totalRevenue":      perf.Overview.TotalRevenue,
			"avgCompletionRate": perf.Overview.AvgCompletionRate,
			"currentRating":     perf.Overview.CurrentRating,
		},
		"monthlyData":   monthly,
		"topProducts":   topProducts,
		"recentReviews": recentReviews,
	})
}

// Get /api/admin/laundries/:laundryId/reviews
// Paginated visible reviews with rating statistics
func (api *LaundryAPI) Reviews(c *gin.Context) {
	page := pagination.ParseParams(c.Query("page"), c.Query("limit"))
	filter := laundryports.ReviewFilter{
		LaundryID: c.Param("laundryId"),
	}
	if raw := strings.TrimSpace(c.Query("rating")); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil || rating < 1 || rating > 5 {
			apierrors.Respond(c, apierrors.Validation("Rating filter must be between 1 and 5"))
			return
		}
		filter.Rating = rating
	}
	var ok bool
	if filter.From, ok = parseDateQuery(c, "startDate"); !ok {
		return
	}
	if filter.Until, ok = parseDateQuery(c, "endDate"); !ok {
		return
	}

	result, err := api.laundries.Reviews(c.Request.Context(), filter, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	reviews := make([]gin.H, 0, len(result.Reviews))
	for _, review := range result.Reviews {
		reviews = append(reviews, gin.H{
			"id":      review.ID,
			"rating":  review.Rating,
			"comment": review.Comment,
			"customer": gin.H{
				"id":    review.CustomerID,
				"name":  review.CustomerName,
				"email": review.CustomerEmail,
			},
			"isVisible": review.IsVisible,
			"createdAt": review.CreatedAt,
			"updatedAt": review.UpdatedAt,
		})
	}
	distribution := make([]gin.H, 0, len(result.Stats.Distribution))
	for _, bucket := range result.Stats.Distribution {
		distribution = append(distribution, gin.H{
			"rating": bucket.Rating,
			"count":  bucket.Count,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":    reviews,
		"pagination": result.Pagination,
		"stats": gin.H{
			"averageRating":      result.Stats.AverageRating,
			"totalReviews":       result.Stats.TotalReviews,
			"ratingDistribution": distribution,
		},
	})
}

// Get /api/admin/laundries/:laundryId/orders
// Laundry-scoped order list with per-status summary
func (api *LaundryAPI) Orders(c *gin.Context) {
	page := pagination.ParseParams(c.Query("page"), c.Query("limit"))
	filter := orderports.Filter{Search: strings.TrimSpace(c.Query("search"))}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, err := orderdomain.ParseStatus(raw)
		if err != nil {
			apierrors.Respond(c, apierrors.Validation("Invalid order status %q", raw))
			return
		}
		filter.Status = status
	}
	var ok bool
	if filter.From, ok = parseDateQuery(c, "startDate"); !ok {
		return
	}
	if filter.Until, ok = parseDateQuery(c, "endDate"); !ok {
		return
	}

	result, err := api.orders.ListByLaundry(c.Request.Context(), c.Param("laundryId"), filter, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	orders := make([]gin.H, 0, len(result.Orders))
	for _, order := range result.Orders {
		orders = append(orders, laundryOrderJSON(order))
	}
	statusSummary := gin.H{}
	for status, count := range result.StatusSummary {
		statusSummary[string(status)] = count
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":        orders,
		"pagination":    result.Pagination,
		"statusSummary": statusSummary,
	})
}

// Get /api/admin/laundries/:laundryId/activity
// Audit feed grouped by day, newest first
func (api *LaundryAPI) Activity(c *gin.Context) {
	laundryID := c.Param("laundryId")
	if _, err := api.laundries.Get(c.Request.Context(), laundryID); err != nil {
		respondServiceError(c, err)
		return
	}
	limit := 50
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	groups, totalCount, err := api.activity.LaundryFeed(c.Request.Context(), laundryID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	days := make([]gin.H, 0, len(groups))
	for _, group := range groups {
		entries := make([]gin.H, 0, len(group.Activities))
		for _, entry := range group.Activities {
			entries = append(entries, feedEntryJSON(entry))
		}
		days = append(days, gin.H{
			"date":       group.Date,
			"activities": entries,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"activities": days,
		"totalCount": totalCount,
	})
}

// Get /api/admin/laundries/performance
// Cross-laundry leaderboard
func (api *LaundryAPI) Leaderboard(c *gin.Context) {
	page := pagination.ParseParams(c.Query("page"), c.Query("limit"))
	sortBy := c.DefaultQuery("sortBy", engine.SortByOrdersMonth)
	switch sortBy {
	case engine.SortByOrdersMonth, engine.SortByCustomers, engine.SortByRevenue, engine.SortByRating:
	default:
		apierrors.Respond(c, apierrors.Validation("Invalid sortBy %q", sortBy))
		return
	}
	descending := c.DefaultQuery("sortOrder", "desc") != "asc"

	result, err := api.laundries.Leaderboard(c.Request.Context(), laundryports.LeaderboardQuery{
		SortBy:     sortBy,
		Descending: descending,
		Page:       page,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	laundries := make([]gin.H, 0, len(result.Entries))
	for _, entry := range result.Entries {
		laundries = append(laundries, gin.H{
			"id":           entry.ID,
			"name":         entry.Name,
			"address":      entry.Address,
			"city":         entry.City,
			"status":       entry.Status,
			"ordersMonth":  entry.OrdersMonth,
			"customers":    entry.Customers,
			"revenue":      entry.Revenue,
			"rating":       entry.Rating,
			"totalOrders":  entry.TotalOrders,
			"totalReviews": entry.TotalReviews,
			"createdAt":    entry.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"laundries":  laundries,
		"pagination": result.Pagination,
	})
}

// actorID resolves the acting super admin from the verified token claims.
func actorID(c *gin.Context) string {
	if claims := auth.ClaimsFromContext(c); claims != nil {
		return claims.Subject
	}
	return ""
}

// parseDateQuery reads an RFC 3339 or YYYY-MM-DD query value; a malformed
// value responds 400 and returns ok=false.
func parseDateQuery(c *gin.Context, key string) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return time.Time{}, true
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return parsed, true
	}
	apierrors.Respond(c, apierrors.Validation("Invalid %s value %q", key, raw))
	return time.Time{}, false
}

func validLaundryStatus(status laundrydomain.Status) bool {
	switch status {
	case laundrydomain.StatusActive, laundrydomain.StatusInactive,
		laundrydomain.StatusSuspended, laundrydomain.StatusPendingApproval:
		return true
	}
	return false
}

func laundryJSON(laundry *laundrydomain.Laundry) gin.H {
	return gin.H{
		"id":             laundry.ID,
		"name":           laundry.Name,
		"description":    laundry.Description,
		"email":          laundry.Email,
		"phone":          laundry.Phone,
		"address":        laundry.Address,
		"city":           laundry.City,
		"state":          laundry.State,
		"zipCode":        laundry.ZipCode,
		"country":        laundry.Country,
		"serviceTags":    laundry.ServiceTags,
		"operatingHours": laundry.OperatingHours,
		"status":         laundry.Status,
		"isActive":       laundry.IsActive,
		"rating":         laundry.Rating,
		"createdAt":      laundry.CreatedAt,
		"updatedAt":      laundry.UpdatedAt,
	}
}

func ownerJSON(owner *laundrydomain.Owner) gin.H {
	if owner == nil {
		return nil
	}
	return gin.H{
		"id":        owner.ID,
		"name":      owner.Name,
		"email":     owner.Email,
		"phone":     owner.Phone,
		"createdAt": owner.CreatedAt,
	}
}

func productsJSON(products []laundrydomain.Product) []gin.H {
	out := make([]gin.H, 0, len(products))
	for _, product := range products {
		out = append(out, gin.H{
			"id":       product.ID,
			"name":     product.Name,
			"category": product.Category,
			"price":    product.Price,
		})
	}
	return out
}

func orderDigestsJSON(orders []laundrydomain.OrderDigest) []gin.H {
	out := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		out = append(out, gin.H{
			"id":          order.ID,
			"orderNumber": order.OrderNumber,
			"status":      order.Status,
			"finalAmount": order.FinalAmount,
			"createdAt":   order.CreatedAt,
			"customer": gin.H{
				"name":  order.CustomerName,
				"email": order.CustomerEmail,
			},
		})
	}
	return out
}

func reviewsJSON(reviews []laundrydomain.Review) []gin.H {
	out := make([]gin.H, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, gin.H{
			"id":        review.ID,
			"rating":    review.Rating,
			"comment":   review.Comment,
			"createdAt": review.CreatedAt,
			"customer": gin.H{
				"name": review.CustomerName,
			},
		})
	}
	return out
}

func activityStripJSON(entries []activitydomain.FeedEntry) []gin.H {
	out := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		out = append(out, gin.H{
			"id":          entry.ID,
			"type":        entry.Type,
			"title":       entry.Title,
			"description": entry.Description,
			"createdAt":   entry.CreatedAt,
		})
	}
	return out
}

func feedEntryJSON(entry activitydomain.FeedEntry) gin.H {
	out := gin.H{
		"id":          entry.ID,
		"type":        entry.Type,
		"title":       entry.Title,
		"description": entry.Description,
		"metadata":    entry.Metadata,
		"createdAt":   entry.CreatedAt,
		"user":        nil,
		"order":       nil,
	}
	if entry.User != nil {
		out["user"] = gin.H{
			"id":    entry.User.ID,
			"name":  entry.User.Name,
			"email": entry.User.Email,
			"role":  entry.User.Role,
		}
	}
	if entry.Order != nil {
		out["order"] = gin.H{
			"orderNumber":  entry.Order.OrderNumber,
			"customerName": entry.Order.CustomerName,
		}
	}
	return out
}

func laundryOrderJSON(order orderdomain.Order) gin.H {
	items := make([]gin.H, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, gin.H{
			"id":       item.ID,
			"product":  item.Product.Name,
			"category": item.Product.Category,
			"quantity": item.Quantity,
			"price":    item.Price,
			"total":    item.Total,
			"notes":    item.Notes,
		})
	}
	return gin.H{
		"id":          order.ID,
		"orderNumber": order.OrderNumber,
		"customer": gin.H{
			"id":    order.Customer.ID,
			"name":  order.Customer.Name,
			"email": order.Customer.Email,
			"phone": order.Customer.Phone,
		},
		"status":        order.Status,
		"totalAmount":   order.TotalAmount,
		"deliveryFee":   order.DeliveryFee,
		"discount":      order.Discount,
		"finalAmount":   order.FinalAmount,
		"paymentMethod": order.PaymentMethod,
		"paymentStatus": order.PaymentStatus,
		"address": gin.H{
			"street":  order.DeliveryAddress.Street,
			"city":    order.DeliveryAddress.City,
			"state":   order.DeliveryAddress.State,
			"zipCode": order.DeliveryAddress.ZipCode,
		},
		"items":             items,
		"notes":             order.Notes,
		"pickupDate":        order.PickupDate,
		"deliveryDate":      order.DeliveryDate,
		"estimatedDelivery": order.EstimatedDelivery,
		"createdAt":         order.CreatedAt,
		"updatedAt":         order.UpdatedAt,
	}
}
