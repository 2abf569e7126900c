package repository

import (
	"encoding/json"
	"errors"
	"log"

	"groceryStore/entities"
	"groceryStore/models"
)

// PreferenceRepository holds the small per-session / per-user extras:
// the theme choice and the recently-viewed product list.
type PreferenceRepository interface {
	GetTheme(sessionId string) (theme string, err error)
	SetTheme(sessionId string, theme string) (err error)
	GetRecentlyViewed(uid string) (items []entities.RecentlyViewedEntry, err error)
	SetRecentlyViewed(uid string, items []entities.RecentlyViewedEntry) (err error)
}

type PreferenceRepo struct {
	kv KVRepository
}

func NewPreferenceRepository(kv KVRepository) (PreferenceRepository, error) {
	if kv == nil {
		return nil, errors.New("kv must be non-nil")
	}
	return &PreferenceRepo{
		kv: kv,
	}, nil
}

func (p *PreferenceRepo) GetTheme(sessionId string) (theme string, err error) {
	theme = "light"
	val, exists, e := p.kv.Get("theme-" + sessionId)
	if e != nil {
		err = e
		return
	}
	if exists && (val == "light" || val == "dark") {
		theme = val
	}
	return
}

func (p *PreferenceRepo) SetTheme(sessionId string, theme string) (err error) {
	err = p.kv.Set("theme-"+sessionId, theme)
	return
}

func (p *PreferenceRepo) GetRecentlyViewed(uid string) (items []entities.RecentlyViewedEntry, err error) {
	items = []entities.RecentlyViewedEntry{}
	val, exists, e := p.kv.Get("recently-viewed-" + uid)
	if e != nil {
		err = e
		return
	}
	if !exists {
		return
	}
	if e := json.Unmarshal([]byte(val), &items); e != nil {
		log.Printf("GetRecentlyViewed: Unmarshal err:%v", e)
		items = []entities.RecentlyViewedEntry{}
	}
	return
}

func (p *PreferenceRepo) SetRecentlyViewed(uid string, items []entities.RecentlyViewedEntry) (err error) {
	jsonData, err := json.Marshal(items)
	if err != nil {
		log.Printf("SetRecentlyViewed: Marshal err:%v", err)
		err = models.ErrServerError
		return
	}
	err = p.kv.Set("recently-viewed-"+uid, string(jsonData))
	return
}
