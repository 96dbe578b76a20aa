package adminserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	orderapp "github.com/laundromart/admin-api/internal/domains/orders/application"
	orderdomain "github.com/laundromart/admin-api/internal/domains/orders/domain"
	orderports "github.com/laundromart/admin-api/internal/domains/orders/ports"
	"github.com/laundromart/admin-api/internal/shared/apierrors"
	"github.com/laundromart/admin-api/internal/shared/pagination"
)

// OrderAPI serves the cross-laundry order views.
type OrderAPI struct {
	service *orderapp.Service
}

// NewOrderAPI creates an OrderAPI backed by the orders service.
func NewOrderAPI(service *orderapp.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Get /api/admin/orders
// Global order list with platform-wide statistics
func (api *OrderAPI) ListOrders(c *gin.Context) {
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

	result, err := api.service.List(c.Request.Context(), filter, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	orders := make([]gin.H, 0, len(result.Orders))
	for _, order := range result.Orders {
		orders = append(orders, globalOrderJSON(order))
	}
	statusSummary := gin.H{}
	for status, stat := range result.Statistics.StatusSummary {
		statusSummary[string(status)] = gin.H{
			"count":   stat.Count,
			"revenue": stat.Revenue,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": result.Pagination,
		"statistics": gin.H{
			"statusSummary": statusSummary,
			"todayOrders":   result.Statistics.TodayOrders,
			"totalRevenue":  result.Statistics.TotalRevenue,
		},
	})
}

// Get /api/admin/orders/:orderId
// Full order detail with items, parties and audit timeline
func (api *OrderAPI) GetOrder(c *gin.Context) {
	detail, err := api.service.Get(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	order := detail.Order
	items := make([]gin.H, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, gin.H{
			"id": item.ID,
			"product": gin.H{
				"id":          item.Product.ID,
				"name":        item.Product.Name,
				"description": item.Product.Description,
				"category":    item.Product.Category,
				"unitPrice":   item.Product.UnitPrice,
			},
			"quantity": item.Quantity,
			"price":    item.Price,
			"total":    item.Total,
			"notes":    item.Notes,
		})
	}
	timeline := make([]gin.H, 0, len(detail.Timeline))
	for _, entry := range detail.Timeline {
		timeline = append(timeline, feedEntryJSON(entry))
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          order.ID,
		"orderNumber": order.OrderNumber,
		"status":      order.Status,
		"customer": gin.H{
			"id":          order.Customer.ID,
			"name":        order.Customer.Name,
			"email":       order.Customer.Email,
			"phone":       order.Customer.Phone,
			"memberSince": order.Customer.MemberSince,
		},
		"laundry": gin.H{
			"id":      order.Laundry.ID,
			"name":    order.Laundry.Name,
			"email":   order.Laundry.Email,
			"phone":   order.Laundry.Phone,
			"address": order.Laundry.Address,
			"city":    order.Laundry.City,
			"state":   order.Laundry.State,
			"zipCode": order.Laundry.ZipCode,
		},
		"deliveryAddress": gin.H{
			"street":       order.DeliveryAddress.Street,
			"city":         order.DeliveryAddress.City,
			"state":        order.DeliveryAddress.State,
			"zipCode":      order.DeliveryAddress.ZipCode,
			"country":      order.DeliveryAddress.Country,
			"instructions": order.DeliveryAddress.Instructions,
		},
		"items":             items,
		"totalAmount":       order.TotalAmount,
		"deliveryFee":       order.DeliveryFee,
		"discount":          order.Discount,
		"finalAmount":       order.FinalAmount,
		"paymentMethod":     order.PaymentMethod,
		"paymentStatus":     order.PaymentStatus,
		"notes":             order.Notes,
		"pickupDate":        order.PickupDate,
		"deliveryDate":      order.DeliveryDate,
		"estimatedDelivery": order.EstimatedDelivery,
		"createdAt":         order.CreatedAt,
		"updatedAt":         order.UpdatedAt,
		"timeline":          timeline,
	})
}

func globalOrderJSON(order orderdomain.Order) gin.H {
	return gin.H{
		"id":          order.ID,
		"orderNumber": order.OrderNumber,
		"customer": gin.H{
			"id":    order.Customer.ID,
			"name":  order.Customer.Name,
			"email": order.Customer.Email,
			"phone": order.Customer.Phone,
		},
		"laundry": gin.H{
			"id":   order.Laundry.ID,
			"name": order.Laundry.Name,
			"city": order.Laundry.City,
		},
		"status":        order.Status,
		"itemsCount":    order.ItemCount(),
		"totalAmount":   order.TotalAmount,
		"finalAmount":   order.FinalAmount,
		"paymentStatus": order.PaymentStatus,
		"createdAt":     order.CreatedAt,
		"updatedAt":     order.UpdatedAt,
	}
}
