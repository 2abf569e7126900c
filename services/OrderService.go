package services

import (
	"log"
	"time"

	"groceryStore/entities"
	"groceryStore/models"
	"groceryStore/repository"
)

type OrderService struct {
	cr repository.CartRepository
	ur repository.UserRepository
	// simulated payment-processing latency, zero in tests
	submitDelay time.Duration
}

func NewOrderService(cartRepo repository.CartRepository, userRepo repository.UserRepository, submitDelay time.Duration) OrderService {
	return OrderService{
		cr:          cartRepo,
		ur:          userRepo,
		submitDelay: submitDelay,
	}
}

// Checkout validates the form, snapshots the cart into an immutable order,
// appends it to the user's history when logged in, and clears the cart.
// There is no real payment backend, submission cannot be rejected.
func (ors *OrderService) Checkout(sessionId string, uid string, form models.CheckoutForm) (confirmation entities.OrderConfirmation, err error) {
	if errs := form.Validate(); errs != nil {
		err = errs
		return
	}

	lines, e := ors.cr.GetCart(uid)
	if e != nil {
		err = e
		return
	}
	if len(lines) == 0 {
		log.Printf("Checkout: cart is empty")
		err = models.ErrBadRequest
		return
	}

	time.Sleep(ors.submitDelay)

	paymentMethod := form.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "card"
	}
	totals := ComputeTotals(lines)
	order := entities.Order{
		Id:     time.Now().UnixMilli(),
		Date:   time.Now().UTC(),
		Items:  lines,
		Totals: totals,
		ShippingAddress: entities.ShippingAddress{
			Address: form.Address,
			City:    form.City,
			ZipCode: form.ZipCode,
		},
		PaymentMethod: paymentMethod,
	}

	user, exists, e := ors.ur.GetCurrentUser(sessionId)
	if e != nil {
		err = e
		return
	}
	if exists {
		user.OrderHistory = append([]entities.Order{order}, user.OrderHistory...)
		if err = ors.ur.SetCurrentUser(sessionId, user); err != nil {
			return
		}
	}

	if err = ors.cr.ClearCart(uid); err != nil {
		return
	}

	confirmation = entities.OrderConfirmation{
		OrderId:    order.Id,
		Total:      totals.GrandTotal,
		ItemsCount: totals.ItemsCount,
	}
	return
}

// GetCurrentUserOrders returns the order history, most recent first.
func (ors *OrderService) GetCurrentUserOrders(sessionId string) (orders []entities.Order, err error) {
	user, exists, e := ors.ur.GetCurrentUser(sessionId)
	if e != nil {
		err = e
		return
	}
	if !exists {
		err = models.ErrUnautorized
		return
	}
	orders = user.OrderHistory
	if orders == nil {
		orders = []entities.Order{}
	}
	return
}
