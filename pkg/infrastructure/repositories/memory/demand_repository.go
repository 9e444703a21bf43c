package memory

import (
	"time"

	"github.com/plantops/replan/pkg/domain/entities"
	"github.com/plantops/replan/pkg/domain/repositories"
)

// OrderRepository provides in-memory order storage
type OrderRepository struct {
	orders []*entities.Order
}

// NewOrderRepository creates a new in-memory order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// LoadOrders loads orders into the repository
func (r *OrderRepository) LoadOrders(orders []*entities.Order) error {
	r.orders = append(r.orders, orders...)
	return nil
}

// GetOrders returns all orders in load order
func (r *OrderRepository) GetOrders() ([]*entities.Order, error) {
	return r.orders, nil
}

// GetOrdersForDate returns the orders placed on the given day, preserving
// load order.
func (r *OrderRepository) GetOrdersForDate(day time.Time) ([]*entities.Order, error) {
	var out []*entities.Order
	for _, o := range r.orders {
		if o.OrderDate.Equal(day) {
			out = append(out, o)
		}
	}
	return out, nil
}

// ForecastRepository provides in-memory forecast storage
type ForecastRepository struct {
	points []*entities.ForecastPoint
}

// NewForecastRepository creates a new in-memory forecast repository
func NewForecastRepository() *ForecastRepository {
	return &ForecastRepository{}
}

// Verify interface compliance
var _ repositories.ForecastRepository = (*ForecastRepository)(nil)

// LoadForecast loads forecast points into the repository
func (r *ForecastRepository) LoadForecast(points []*entities.ForecastPoint) error {
	r.points = append(r.points, points...)
	return nil
}

// GetForecast returns all forecast points in load order
func (r *ForecastRepository) GetForecast() ([]*entities.ForecastPoint, error) {
	return r.points, nil
}
