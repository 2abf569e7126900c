package services

import (
	"log"
	"sort"
	"strings"
	"sync"

	"groceryStore/entities"
	"groceryStore/models"
	"groceryStore/repository"
)

// FallbackNotice is surfaced to clients as an informational banner while
// the service runs on the built-in catalog.
const FallbackNotice = "Using offline catalog data. Start the data server for full CRUD functionality."

// ProductService owns the product catalog. It loads the remote source once
// and falls back to the static seed catalog if that fails; the remote
// source is not retried afterwards.
type ProductService struct {
	remote repository.CatalogRepository
	static repository.CatalogRepository

	mu            sync.Mutex
	all           []entities.Product
	loaded        bool
	usingFallback bool
}

func NewProductService(remoteRepo repository.CatalogRepository, staticRepo repository.CatalogRepository) *ProductService {
	return &ProductService{
		remote: remoteRepo,
		static: staticRepo,
	}
}

func (ps *ProductService) active() repository.CatalogRepository {
	if ps.usingFallback || ps.remote == nil {
		return ps.static
	}
	return ps.remote
}

// ensureLoaded performs the one-shot catalog fetch. Callers must hold ps.mu.
func (ps *ProductService) ensureLoaded() (err error) {
	if ps.loaded {
		return
	}
	if ps.remote != nil {
		prods, e := ps.remote.GetProducts()
		if e == nil {
			ps.all = prods
			ps.loaded = true
			return
		}
		log.Printf("ensureLoaded: data server unavailable, using offline catalog: %v", e)
	}
	ps.usingFallback = true
	prods, e := ps.static.GetProducts()
	if e != nil {
		err = e
		return
	}
	ps.all = prods
	ps.loaded = true
	return
}

// reload refreshes the cached list from the active source. Callers must
// hold ps.mu.
func (ps *ProductService) reload() (err error) {
	prods, e := ps.active().GetProducts()
	if e != nil {
		err = e
		return
	}
	ps.all = prods
	return
}

func (ps *ProductService) UsingFallback() bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.usingFallback
}

// GetProducts returns the catalog transformed by the filter state.
func (ps *ProductService) GetProducts(filters entities.FilterState) (prods []entities.Product, err error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if err = ps.ensureLoaded(); err != nil {
		return
	}
	prods = ApplyFilters(ps.all, filters)
	return
}

func (ps *ProductService) GetProductById(prodId int) (prod entities.Product, err error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if err = ps.ensureLoaded(); err != nil {
		return
	}
	for _, p := range ps.all {
		if p.Id == prodId {
			prod = p
			return
		}
	}
	err = models.ErrNotFoundError
	return
}

func (ps *ProductService) CreateProduct(form models.ProductForm) (created entities.Product, err error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if err = ps.ensureLoaded(); err != nil {
		return
	}
	if strings.TrimSpace(form.Title) == "" || form.Price < 0 {
		err = models.ErrBadRequest
		return
	}
	prod := entities.Product{
		Title:              strings.TrimSpace(form.Title),
		Description:        strings.TrimSpace(form.Description),
		Price:              form.Price,
		Rating:             0,
		DiscountPercentage: form.DiscountPercentage,
		Category:           form.Category,
		Tags:               form.Tags,
		Thumbnail:          form.Thumbnail,
		Stock:              form.Stock,
	}
	created, err = ps.active().CreateProduct(prod)
	if err != nil {
		return
	}
	err = ps.reload()
	return
}

// UpdateProduct replaces the stored record with the submitted form. A form
// missing the required fields is rejected outright, it never half-applies.
func (ps *ProductService) UpdateProduct(prodId int, form models.ProductForm) (updated entities.Product, err error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if err = ps.ensureLoaded(); err != nil {
		return
	}
	var existing entities.Product
	found := false
	for _, p := range ps.all {
		if p.Id == prodId {
			existing = p
			found = true
			break
		}
	}
	if !found {
		err = models.ErrNotFoundError
		return
	}
	if strings.TrimSpace(form.Title) == "" || form.Price < 0 {
		err = models.ErrBadRequest
		return
	}
	// The admin form submits the complete record, so update replaces every
	// field. Only the id, the accumulated rating and the gallery survive
	// from the stored product.
	replacement := entities.Product{
		Id:                 existing.Id,
		Title:              strings.TrimSpace(form.Title),
		Description:        strings.TrimSpace(form.Description),
		Price:              form.Price,
		Rating:             existing.Rating,
		DiscountPercentage: form.DiscountPercentage,
		Category:           form.Category,
		Tags:               form.Tags,
		Thumbnail:          form.Thumbnail,
		Images:             existing.Images,
		Stock:              form.Stock,
	}

	updated, err = ps.active().UpdateProduct(replacement)
	if err != nil {
		return
	}
	err = ps.reload()
	return
}

func (ps *ProductService) DeleteProduct(prodId int) (err error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if err = ps.ensureLoaded(); err != nil {
		return
	}
	err = ps.active().DeleteProduct(prodId)
	if err != nil {
		return
	}
	err = ps.reload()
	return
}

// ApplyFilters runs the display pipeline over the full catalog:
// category filter, search filter, tag filter, then a stable sort.
// The input slice is not modified.
func ApplyFilters(all []entities.Product, filters entities.FilterState) []entities.Product {
	filtered := make([]entities.Product, len(all))
	copy(filtered, all)

	if filters.Category != "" && filters.Category != "all" {
		kept := filtered[:0]
		for _, p := range filtered {
			if p.Category == filters.Category {
				kept = append(kept, p)
			}
		}
		filtered = kept
	}

	if filters.Search != "" {
		searchLower := strings.ToLower(filters.Search)
		kept := filtered[:0]
		for _, p := range filtered {
			if strings.Contains(strings.ToLower(p.Title), searchLower) ||
				strings.Contains(strings.ToLower(p.Description), searchLower) {
				kept = append(kept, p)
			}
		}
		filtered = kept
	}

	if filters.Tag != "" && filters.Tag != "all" {
		filtered = filterByTag(filtered, filters.Tag)
	}

	if filters.SortBy != "" {
		sortProducts(filtered, filters.SortBy, filters.Order)
	}

	return filtered
}

// filterByTag matches the tag against title, description and every product
// tag, case-insensitively.
func filterByTag(prods []entities.Product, tag string) []entities.Product {
	tagLower := strings.ToLower(tag)
	kept := prods[:0]
	for _, p := range prods {
		if strings.Contains(strings.ToLower(p.Title), tagLower) ||
			strings.Contains(strings.ToLower(p.Description), tagLower) {
			kept = append(kept, p)
			continue
		}
		for _, t := range p.Tags {
			if strings.Contains(strings.ToLower(t), tagLower) {
				kept = append(kept, p)
				break
			}
		}
	}
	return kept
}

// sortProducts sorts in place: stable, string fields compared
// case-insensitively, ascending unless order is "desc". Unknown sort
// fields leave the order untouched.
func sortProducts(prods []entities.Product, sortBy string, order string) {
	desc := order == "desc"
	less := func(a, b entities.Product) bool { return false }

	switch sortBy {
	case "title":
		less = func(a, b entities.Product) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case "category":
		less = func(a, b entities.Product) bool {
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		}
	case "price":
		less = func(a, b entities.Product) bool { return a.Price < b.Price }
	case "rating":
		less = func(a, b entities.Product) bool { return a.Rating < b.Rating }
	case "stock":
		less = func(a, b entities.Product) bool { return a.Stock < b.Stock }
	case "discountPercentage":
		less = func(a, b entities.Product) bool { return a.DiscountPercentage < b.DiscountPercentage }
	default:
		return
	}

	sort.SliceStable(prods, func(i, j int) bool {
		if desc {
			return less(prods[j], prods[i])
		}
		return less(prods[i], prods[j])
	})
}
