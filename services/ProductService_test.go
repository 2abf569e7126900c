package services

import (
	"testing"

	"groceryStore/entities"
	"groceryStore/models"
	"groceryStore/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipelineCatalog() []entities.Product {
	return []entities.Product{
		{Id: 1, Title: "Red Apples", Description: "Crisp and sweet", Category: "fruits", Tags: []string{"fresh", "organic"}, Price: 2.49, Rating: 4.6},
		{Id: 2, Title: "Bananas", Category: "fruits", Price: 1.29, Rating: 4.4},
		{Id: 3, Title: "Baby Spinach", Description: "Washed salad leaves", Category: "vegetables", Tags: []string{"organic", "salad"}, Price: 2.19, Rating: 4.3},
		{Id: 4, Title: "Whole Milk", Description: "Fresh whole milk", Category: "dairy", Price: 3.49, Rating: 4.7},
		{Id: 5, Title: "Cheddar Cheese", Category: "dairy", Price: 5.99, Rating: 4.5},
	}
}

func titles(prods []entities.Product) []string {
	out := make([]string, len(prods))
	for i, p := range prods {
		out[i] = p.Title
	}
	return out
}

func TestApplyFiltersCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     []string
	}{
		{"sentinel all keeps everything", "all", []string{"Red Apples", "Bananas", "Baby Spinach", "Whole Milk", "Cheddar Cheese"}},
		{"empty keeps everything", "", []string{"Red Apples", "Bananas", "Baby Spinach", "Whole Milk", "Cheddar Cheese"}},
		{"dairy only", "dairy", []string{"Whole Milk", "Cheddar Cheese"}},
		{"unknown category empties the list", "frozen", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilters(pipelineCatalog(), entities.FilterState{Category: tt.category})
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestApplyFiltersSearch(t *testing.T) {
	// Search matches title or description only, case-insensitively.
	got := ApplyFilters(pipelineCatalog(), entities.FilterState{Search: "SALAD"})
	assert.Equal(t, []string{"Baby Spinach"}, titles(got))

	got = ApplyFilters(pipelineCatalog(), entities.FilterState{Search: "milk"})
	assert.Equal(t, []string{"Whole Milk"}, titles(got))

	// "organic" only appears in tags, which search does not look at.
	got = ApplyFilters(pipelineCatalog(), entities.FilterState{Search: "organic"})
	assert.Empty(t, titles(got))
}

func TestApplyFiltersTag(t *testing.T) {
	// The tag filter matches title, description and tags.
	got := ApplyFilters(pipelineCatalog(), entities.FilterState{Tag: "organic"})
	assert.Equal(t, []string{"Red Apples", "Baby Spinach"}, titles(got))

	got = ApplyFilters(pipelineCatalog(), entities.FilterState{Tag: "cheese"})
	assert.Equal(t, []string{"Cheddar Cheese"}, titles(got))

	got = ApplyFilters(pipelineCatalog(), entities.FilterState{Tag: "all"})
	assert.Len(t, got, 5)
}

func TestApplyFiltersSort(t *testing.T) {
	asc := ApplyFilters(pipelineCatalog(), entities.FilterState{SortBy: "title", Order: "asc"})
	assert.Equal(t, []string{"Baby Spinach", "Bananas", "Cheddar Cheese", "Red Apples", "Whole Milk"}, titles(asc))

	// Descending is the exact reverse when titles are unique.
	desc := ApplyFilters(pipelineCatalog(), entities.FilterState{SortBy: "title", Order: "desc"})
	for i := range asc {
		assert.Equal(t, asc[i].Id, desc[len(desc)-1-i].Id)
	}

	byPrice := ApplyFilters(pipelineCatalog(), entities.FilterState{SortBy: "price"})
	assert.Equal(t, []string{"Bananas", "Baby Spinach", "Red Apples", "Whole Milk", "Cheddar Cheese"}, titles(byPrice))

	unknown := ApplyFilters(pipelineCatalog(), entities.FilterState{SortBy: "nonsense"})
	assert.Equal(t, titles(pipelineCatalog()), titles(unknown))
}

func TestApplyFiltersStableSortKeepsTies(t *testing.T) {
	catalog := []entities.Product{
		{Id: 1, Title: "A", Price: 2},
		{Id: 2, Title: "B", Price: 2},
		{Id: 3, Title: "C", Price: 1},
		{Id: 4, Title: "D", Price: 2},
	}
	got := ApplyFilters(catalog, entities.FilterState{SortBy: "price"})
	assert.Equal(t, []string{"C", "A", "B", "D"}, titles(got))
}

func TestApplyFiltersDeterministic(t *testing.T) {
	filters := entities.FilterState{Search: "e", Tag: "fresh", Category: "all", SortBy: "rating", Order: "desc"}
	first := ApplyFilters(pipelineCatalog(), filters)
	second := ApplyFilters(pipelineCatalog(), filters)
	assert.Equal(t, first, second)
}

func TestApplyFiltersToleratesMissingFields(t *testing.T) {
	catalog := []entities.Product{
		{Id: 1, Title: "Bare Product"},
	}
	assert.NotPanics(t, func() {
		ApplyFilters(catalog, entities.FilterState{Search: "bare", Tag: "x", Category: "all", SortBy: "title"})
	})
}

func TestApplyFiltersDoesNotModifyInput(t *testing.T) {
	catalog := pipelineCatalog()
	ApplyFilters(catalog, entities.FilterState{SortBy: "title", Order: "desc", Category: "fruits"})
	assert.Equal(t, titles(pipelineCatalog()), titles(catalog))
}

func TestProductServiceFallsBackToStaticCatalog(t *testing.T) {
	// Nothing listens here, the remote fetch fails immediately.
	remote, err := repository.NewRemoteCatalogRepository("http://127.0.0.1:1")
	require.NoError(t, err)
	ps := NewProductService(remote, repository.NewStaticCatalogRepository())

	prods, err := ps.GetProducts(entities.FilterState{Category: "all", Tag: "all"})
	require.NoError(t, err)
	assert.True(t, ps.UsingFallback())
	assert.Len(t, prods, len(repository.SeedProducts()))

	// The fallback decision sticks, later reads stay on the seed catalog.
	prods, err = ps.GetProducts(entities.FilterState{Category: "dairy", Tag: "all"})
	require.NoError(t, err)
	assert.True(t, ps.UsingFallback())
	assert.NotEmpty(t, prods)
}

func TestProductServiceCrudOnFallback(t *testing.T) {
	ps := NewProductService(nil, repository.NewStaticCatalogRepository())

	created, err := ps.CreateProduct(models.ProductForm{
		Title:    "Blueberries",
		Price:    4.99,
		Category: "fruits",
		Stock:    25,
		Tags:     []string{"berries"},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.Id)
	assert.Zero(t, created.Rating, "new products start unrated")

	got, err := ps.GetProductById(created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Blueberries", got.Title)

	updated, err := ps.UpdateProduct(created.Id, models.ProductForm{
		Title:    "Wild Blueberries",
		Price:    5.49,
		Category: "fruits",
		Stock:    20,
	})
	require.NoError(t, err)
	assert.Equal(t, "Wild Blueberries", updated.Title)
	assert.Equal(t, 5.49, updated.Price)

	require.NoError(t, ps.DeleteProduct(created.Id))
	_, err = ps.GetProductById(created.Id)
	assert.ErrorIs(t, err, models.ErrNotFoundError)
}

func TestProductServiceUpdateReplacesRecord(t *testing.T) {
	ps := NewProductService(nil, repository.NewStaticCatalogRepository())

	created, err := ps.CreateProduct(models.ProductForm{
		Title:       "Blueberries",
		Description: "Fresh berries",
		Price:       4.99,
		Category:    "fruits",
		Stock:       25,
	})
	require.NoError(t, err)

	// A form without the required fields is rejected and leaves the
	// stored record untouched.
	_, err = ps.UpdateProduct(created.Id, models.ProductForm{Price: 5.49})
	assert.ErrorIs(t, err, models.ErrBadRequest)

	got, err := ps.GetProductById(created.Id)
	require.NoError(t, err)
	assert.Equal(t, 4.99, got.Price)
	assert.Equal(t, "Fresh berries", got.Description)
	assert.Equal(t, 25, got.Stock)

	// A valid form replaces every field it carries; omitted optional
	// fields become their zero values, nothing is merged.
	updated, err := ps.UpdateProduct(created.Id, models.ProductForm{
		Title: "Wild Blueberries",
		Price: 5.49,
	})
	require.NoError(t, err)
	assert.Equal(t, "Wild Blueberries", updated.Title)
	assert.Equal(t, 5.49, updated.Price)
	assert.Empty(t, updated.Description)
	assert.Zero(t, updated.Stock)
}

func TestProductServiceUpdateKeepsRating(t *testing.T) {
	ps := NewProductService(nil, repository.NewStaticCatalogRepository())

	before, err := ps.GetProductById(1)
	require.NoError(t, err)
	require.NotZero(t, before.Rating)

	updated, err := ps.UpdateProduct(1, models.ProductForm{
		Title:    before.Title,
		Price:    before.Price,
		Category: before.Category,
	})
	require.NoError(t, err)
	assert.Equal(t, before.Rating, updated.Rating)
}

func TestProductServiceCreateRejectsEmptyTitle(t *testing.T) {
	ps := NewProductService(nil, repository.NewStaticCatalogRepository())
	_, err := ps.CreateProduct(models.ProductForm{Title: "   ", Price: 1})
	assert.ErrorIs(t, err, models.ErrBadRequest)
}
