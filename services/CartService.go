package services

import (
	"groceryStore/entities"
	"groceryStore/repository"
)

type CartService struct {
	cr repository.CartRepository
}

func NewCartService(cartRepo repository.CartRepository) CartService {
	return CartService{
		cr: cartRepo,
	}
}

// ComputeTotals derives the cart totals from the line collection. It is
// recomputed on every read, never stored.
//
// Discount: 10% once the subtotal passes $50.
// Delivery: free above $30, otherwise a flat $5 (nothing on an empty cart).
func ComputeTotals(lines []entities.CartLine) (totals entities.CartTotals) {
	for _, line := range lines {
		totals.ItemsCount += line.Quantity
		totals.Subtotal += line.Subtotal
	}
	if totals.Subtotal > 50 {
		totals.Discount = totals.Subtotal * 0.1
	}
	if totals.Subtotal > 0 && totals.Subtotal <= 30 {
		totals.Delivery = 5
	}
	totals.GrandTotal = totals.Subtotal - totals.Discount + totals.Delivery
	return
}

func (cs *CartService) GetCart(uid string) (resp entities.CartResponse, err error) {
	lines, e := cs.cr.GetCart(uid)
	if e != nil {
		err = e
		return
	}
	resp = entities.CartResponse{
		Items:  lines,
		Totals: ComputeTotals(lines),
	}
	return
}

// AddToCart bumps the quantity of an existing line by 1, or creates a new
// line with a snapshot of the product.
func (cs *CartService) AddToCart(uid string, p entities.Product) (err error) {
	lines, e := cs.cr.GetCart(uid)
	if e != nil {
		err = e
		return
	}
	found := false
	for i := range lines {
		if lines[i].Id == p.Id {
			lines[i].Quantity++
			lines[i].Subtotal = float64(lines[i].Quantity) * lines[i].Price
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, entities.CartLine{
			Id:       p.Id,
			Title:    p.Title,
			Price:    p.Price,
			Image:    p.Image(),
			Quantity: 1,
			Subtotal: p.Price,
		})
	}
	err = cs.cr.SetCart(uid, lines)
	return
}

func (cs *CartService) RemoveFromCart(uid string, productId int) (err error) {
	lines, e := cs.cr.GetCart(uid)
	if e != nil {
		err = e
		return
	}
	kept := lines[:0]
	for _, line := range lines {
		if line.Id != productId {
			kept = append(kept, line)
		}
	}
	err = cs.cr.SetCart(uid, kept)
	return
}

// UpdateQuantity sets the line quantity; anything at or below zero removes
// the line. The subtotal recomputes from the snapshotted unit price.
func (cs *CartService) UpdateQuantity(uid string, productId int, quantity int) (err error) {
	if quantity <= 0 {
		err = cs.RemoveFromCart(uid, productId)
		return
	}
	lines, e := cs.cr.GetCart(uid)
	if e != nil {
		err = e
		return
	}
	for i := range lines {
		if lines[i].Id == productId {
			lines[i].Quantity = quantity
			lines[i].Subtotal = float64(quantity) * lines[i].Price
			break
		}
	}
	err = cs.cr.SetCart(uid, lines)
	return
}

func (cs *CartService) IncreaseQuantity(uid string, productId int) (err error) {
	lines, e := cs.cr.GetCart(uid)
	if e != nil {
		err = e
		return
	}
	for i := range lines {
		if lines[i].Id == productId {
			lines[i].Quantity++
			lines[i].Subtotal = float64(lines[i].Quantity) * lines[i].Price
			break
		}
	}
	err = cs.cr.SetCart(uid, lines)
	return
}

// DecreaseQuantity drops the quantity by 1; a line at quantity 1 is removed
// entirely, the cart never holds a quantity-0 line.
func (cs *CartService) DecreaseQuantity(uid string, productId int) (err error) {
	lines, e := cs.cr.GetCart(uid)
	if e != nil {
		err = e
		return
	}
	for i := range lines {
		if lines[i].Id == productId {
			if lines[i].Quantity <= 1 {
				lines = append(lines[:i], lines[i+1:]...)
			} else {
				lines[i].Quantity--
				lines[i].Subtotal = float64(lines[i].Quantity) * lines[i].Price
			}
			break
		}
	}
	err = cs.cr.SetCart(uid, lines)
	return
}

func (cs *CartService) ClearCart(uid string) (err error) {
	err = cs.cr.ClearCart(uid)
	return
}

func (cs *CartService) IsInCart(uid string, productId int) (inCart bool, err error) {
	lines, e := cs.cr.GetCart(uid)
	if e != nil {
		err = e
		return
	}
	for _, line := range lines {
		if line.Id == productId {
			inCart = true
			return
		}
	}
	return
}

func (cs *CartService) GetQuantity(uid string, productId int) (quantity int, err error) {
	lines, e := cs.cr.GetCart(uid)
	if e != nil {
		err = e
		return
	}
	for _, line := range lines {
		if line.Id == productId {
			quantity = line.Quantity
			return
		}
	}
	return
}
