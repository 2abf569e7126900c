package repository

import (
	"encoding/json"
	"errors"
	"log"

	"groceryStore/entities"
	"groceryStore/models"
)

type WishlistRepository interface {
	GetWishlist(uid string) (items []entities.WishlistEntry, err error)
	SetWishlist(uid string, items []entities.WishlistEntry) (err error)
	ClearWishlist(uid string) (err error)
}

type WishlistRepo struct {
	kv KVRepository
}

func NewWishlistRepository(kv KVRepository) (WishlistRepository, error) {
	if kv == nil {
		return nil, errors.New("kv must be non-nil")
	}
	return &WishlistRepo{
		kv: kv,
	}, nil
}

func wishlistKey(uid string) string {
	return "wishlist-" + uid
}

func (w *WishlistRepo) GetWishlist(uid string) (items []entities.WishlistEntry, err error) {
	items = []entities.WishlistEntry{}
	val, exists, e := w.kv.Get(wishlistKey(uid))
	if e != nil {
		err = e
		return
	}
	if !exists {
		return
	}
	if e := json.Unmarshal([]byte(val), &items); e != nil {
		log.Printf("GetWishlist: Unmarshal err:%v", e)
		items = []entities.WishlistEntry{}
	}
	return
}

func (w *WishlistRepo) SetWishlist(uid string, items []entities.WishlistEntry) (err error) {
	jsonData, err := json.Marshal(items)
	if err != nil {
		log.Printf("SetWishlist: Marshal err:%v", err)
		err = models.ErrServerError
		return
	}
	err = w.kv.Set(wishlistKey(uid), string(jsonData))
	return
}

func (w *WishlistRepo) ClearWishlist(uid string) (err error) {
	err = w.kv.Delete(wishlistKey(uid))
	return
}
