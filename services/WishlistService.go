package services

import (
	"time"

	"groceryStore/entities"
	"groceryStore/repository"
)

type WishlistService struct {
	wr repository.WishlistRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository) WishlistService {
	return WishlistService{
		wr: wishlistRepo,
	}
}

func (ws *WishlistService) GetWishlist(uid string) (resp entities.WishlistResponse, err error) {
	items, e := ws.wr.GetWishlist(uid)
	if e != nil {
		err = e
		return
	}
	resp = entities.WishlistResponse{
		Items: items,
		Count: len(items),
	}
	return
}

// AddToWishlist is a no-op when the product is already saved.
func (ws *WishlistService) AddToWishlist(uid string, p entities.Product) (err error) {
	items, e := ws.wr.GetWishlist(uid)
	if e != nil {
		err = e
		return
	}
	for _, item := range items {
		if item.Id == p.Id {
			return
		}
	}
	items = append(items, entities.WishlistEntry{
		Id:      p.Id,
		Title:   p.Title,
		Price:   p.Price,
		Image:   p.Image(),
		Rating:  p.Rating,
		AddedAt: time.Now().UTC(),
	})
	err = ws.wr.SetWishlist(uid, items)
	return
}

func (ws *WishlistService) RemoveFromWishlist(uid string, productId int) (err error) {
	items, e := ws.wr.GetWishlist(uid)
	if e != nil {
		err = e
		return
	}
	kept := items[:0]
	for _, item := range items {
		if item.Id != productId {
			kept = append(kept, item)
		}
	}
	err = ws.wr.SetWishlist(uid, kept)
	return
}

// ToggleWishlist adds the product when absent and removes it when present.
// It reports the resulting membership.
func (ws *WishlistService) ToggleWishlist(uid string, p entities.Product) (saved bool, err error) {
	inList, e := ws.IsInWishlist(uid, p.Id)
	if e != nil {
		err = e
		return
	}
	if inList {
		err = ws.RemoveFromWishlist(uid, p.Id)
		return
	}
	err = ws.AddToWishlist(uid, p)
	if err == nil {
		saved = true
	}
	return
}

func (ws *WishlistService) IsInWishlist(uid string, productId int) (inList bool, err error) {
	items, e := ws.wr.GetWishlist(uid)
	if e != nil {
		err = e
		return
	}
	for _, item := range items {
		if item.Id == productId {
			inList = true
			return
		}
	}
	return
}

func (ws *WishlistService) ClearWishlist(uid string) (err error) {
	err = ws.wr.ClearWishlist(uid)
	return
}
