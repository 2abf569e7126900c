package services

import (
	"log"
	"time"

	"groceryStore/entities"
	"groceryStore/models"
	"groceryStore/repository"
)

// recentlyViewedLimit caps the recently-viewed list.
const recentlyViewedLimit = 10

type PreferenceService struct {
	pr repository.PreferenceRepository
}

func NewPreferenceService(prefRepo repository.PreferenceRepository) PreferenceService {
	return PreferenceService{
		pr: prefRepo,
	}
}

func (ps *PreferenceService) GetTheme(sessionId string) (theme string, err error) {
	theme, err = ps.pr.GetTheme(sessionId)
	return
}

func (ps *PreferenceService) SetTheme(sessionId string, theme string) (err error) {
	if theme != "light" && theme != "dark" {
		log.Printf("SetTheme: unknown theme %q", theme)
		err = models.ErrBadRequest
		return
	}
	err = ps.pr.SetTheme(sessionId, theme)
	return
}

func (ps *PreferenceService) ToggleTheme(sessionId string) (theme string, err error) {
	current, e := ps.pr.GetTheme(sessionId)
	if e != nil {
		err = e
		return
	}
	theme = "dark"
	if current == "dark" {
		theme = "light"
	}
	err = ps.pr.SetTheme(sessionId, theme)
	return
}

func (ps *PreferenceService) GetRecentlyViewed(uid string) (items []entities.RecentlyViewedEntry, err error) {
	items, err = ps.pr.GetRecentlyViewed(uid)
	return
}

// AddRecentlyViewed puts the product at the head of the list, dropping any
// earlier entry for the same product and trimming to the last ten.
func (ps *PreferenceService) AddRecentlyViewed(uid string, p entities.Product) (err error) {
	items, e := ps.pr.GetRecentlyViewed(uid)
	if e != nil {
		err = e
		return
	}
	kept := make([]entities.RecentlyViewedEntry, 0, len(items)+1)
	kept = append(kept, entities.RecentlyViewedEntry{
		Id:       p.Id,
		Title:    p.Title,
		Price:    p.Price,
		Image:    p.Image(),
		Rating:   p.Rating,
		ViewedAt: time.Now().UTC(),
	})
	for _, item := range items {
		if item.Id != p.Id {
			kept = append(kept, item)
		}
	}
	if len(kept) > recentlyViewedLimit {
		kept = kept[:recentlyViewedLimit]
	}
	err = ps.pr.SetRecentlyViewed(uid, kept)
	return
}

func (ps *PreferenceService) ClearRecentlyViewed(uid string) (err error) {
	err = ps.pr.SetRecentlyViewed(uid, []entities.RecentlyViewedEntry{})
	return
}
