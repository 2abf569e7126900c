package repository

import (
	"encoding/json"
	"errors"
	"log"

	"groceryStore/entities"
	"groceryStore/models"
)

type CartRepository interface {
	GetCart(uid string) (lines []entities.CartLine, err error)
	SetCart(uid string, lines []entities.CartLine) (err error)
	ClearCart(uid string) (err error)
}

type CartRepo struct {
	kv KVRepository
}

func NewCartRepository(kv KVRepository) (CartRepository, error) {
	if kv == nil {
		return nil, errors.New("kv must be non-nil")
	}
	return &CartRepo{
		kv: kv,
	}, nil
}

func cartKey(uid string) string {
	return "cart-" + uid
}

func (c *CartRepo) GetCart(uid string) (lines []entities.CartLine, err error) {
	lines = []entities.CartLine{}
	val, exists, e := c.kv.Get(cartKey(uid))
	if e != nil {
		err = e
		return
	}
	if !exists {
		return
	}
	// A corrupt stored value falls back to the empty cart, it is
	// never surfaced as a user-visible error.
	if e := json.Unmarshal([]byte(val), &lines); e != nil {
		log.Printf("GetCart: Unmarshal err:%v", e)
		lines = []entities.CartLine{}
	}
	return
}

func (c *CartRepo) SetCart(uid string, lines []entities.CartLine) (err error) {
	jsonData, err := json.Marshal(lines)
	if err != nil {
		log.Printf("SetCart: Marshal err:%v", err)
		err = models.ErrServerError
		return
	}
	err = c.kv.Set(cartKey(uid), string(jsonData))
	return
}

func (c *CartRepo) ClearCart(uid string) (err error) {
	err = c.kv.Delete(cartKey(uid))
	return
}
