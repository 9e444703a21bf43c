package repositories

import (
	"time"

	"github.com/plantops/replan/pkg/domain/entities"
)

// OrderRepository provides access to sales order data
type OrderRepository interface {
	GetOrders() ([]*entities.Order, error)
	GetOrdersForDate(day time.Time) ([]*entities.Order, error)
	LoadOrders(orders []*entities.Order) error
}

// ForecastRepository provides access to demand forecast data
type ForecastRepository interface {
	GetForecast() ([]*entities.ForecastPoint, error)
	LoadForecast(points []*entities.ForecastPoint) error
}
