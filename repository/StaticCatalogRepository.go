package repository

import (
	"sync"

	"groceryStore/entities"
	"groceryStore/models"
)

// StaticCatalogRepo is the offline fallback catalog. It starts from the
// seed product set and supports the same CRUD surface as the remote
// source, so the admin panel keeps working when the data server is down.
type StaticCatalogRepo struct {
	mu     sync.Mutex
	prods  []entities.Product
	nextId int
}

func NewStaticCatalogRepository() CatalogRepository {
	seed := SeedProducts()
	maxId := 0
	for _, p := range seed {
		if p.Id > maxId {
			maxId = p.Id
		}
	}
	return &StaticCatalogRepo{
		prods:  seed,
		nextId: maxId + 1,
	}
}

func (s *StaticCatalogRepo) GetProducts() (prods []entities.Product, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prods = make([]entities.Product, len(s.prods))
	copy(prods, s.prods)
	return
}

func (s *StaticCatalogRepo) GetProductById(id int) (prod entities.Product, exists bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.prods {
		if p.Id == id {
			prod = p
			exists = true
			return
		}
	}
	return
}

func (s *StaticCatalogRepo) CreateProduct(prod entities.Product) (created entities.Product, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prod.Id = s.nextId
	s.nextId++
	s.prods = append(s.prods, prod)
	created = prod
	return
}

func (s *StaticCatalogRepo) UpdateProduct(prod entities.Product) (updated entities.Product, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.prods {
		if p.Id == prod.Id {
			s.prods[i] = prod
			updated = prod
			return
		}
	}
	err = models.ErrNotFoundError
	return
}

func (s *StaticCatalogRepo) DeleteProduct(id int) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.prods {
		if p.Id == id {
			s.prods = append(s.prods[:i], s.prods[i+1:]...)
			return
		}
	}
	err = models.ErrNotFoundError
	return
}

// SeedProducts is the built-in grocery catalog served when the data
// server is unreachable.
func SeedProducts() []entities.Product {
	return []entities.Product{
		{
			Id:                 1,
			Title:              "Red Apples",
			Description:        "Crisp and sweet red apples, sold per pound",
			Price:              2.49,
			Rating:             4.6,
			DiscountPercentage: 5,
			Category:           "fruits",
			Tags:               []string{"fresh", "organic"},
			Thumbnail:          "/images/products/red-apples.jpg",
			Stock:              120,
		},
		{
			Id:          2,
			Title:       "Bananas",
			Description: "Ripe Cavendish bananas, bunch of six",
			Price:       1.29,
			Rating:      4.4,
			Category:    "fruits",
			Tags:        []string{"fresh"},
			Thumbnail:   "/images/products/bananas.jpg",
			Stock:       200,
		},
		{
			Id:                 3,
			Title:              "Strawberries",
			Description:        "Sweet strawberries, 400g punnet",
			Price:              3.99,
			Rating:             4.8,
			DiscountPercentage: 10,
			Category:           "fruits",
			Tags:               []string{"fresh", "berries"},
			Thumbnail:          "/images/products/strawberries.jpg",
			Stock:              45,
		},
		{
			Id:          4,
			Title:       "Baby Spinach",
			Description: "Washed baby spinach leaves, 250g bag",
			Price:       2.19,
			Rating:      4.3,
			Category:    "vegetables",
			Tags:        []string{"fresh", "organic", "salad"},
			Thumbnail:   "/images/products/baby-spinach.jpg",
			Stock:       80,
		},
		{
			Id:          5,
			Title:       "Carrots",
			Description: "Sweet snacking carrots, 1kg bag",
			Price:       1.49,
			Rating:      4.2,
			Category:    "vegetables",
			Tags:        []string{"fresh"},
			Thumbnail:   "/images/products/carrots.jpg",
			Stock:       150,
		},
		{
			Id:                 6,
			Title:              "Cherry Tomatoes",
			Description:        "Vine-ripened cherry tomatoes, 300g",
			Price:              2.79,
			Rating:             4.5,
			DiscountPercentage: 8,
			Category:           "vegetables",
			Tags:               []string{"fresh", "salad"},
			Thumbnail:          "/images/products/cherry-tomatoes.jpg",
			Stock:              60,
		},
		{
			Id:          7,
			Title:       "Whole Milk",
			Description: "Fresh whole milk, 1 gallon",
			Price:       3.49,
			Rating:      4.7,
			Category:    "dairy",
			Tags:        []string{"fresh"},
			Thumbnail:   "/images/products/whole-milk.jpg",
			Stock:       90,
		},
		{
			Id:                 8,
			Title:              "Greek Yogurt",
			Description:        "Plain Greek yogurt, 500g tub",
			Price:              4.29,
			Rating:             4.6,
			DiscountPercentage: 12,
			Category:           "dairy",
			Tags:               []string{"protein"},
			Thumbnail:          "/images/products/greek-yogurt.jpg",
			Stock:              70,
		},
		{
			Id:          9,
			Title:       "Cheddar Cheese",
			Description: "Mature cheddar block, 400g",
			Price:       5.99,
			Rating:      4.5,
			Category:    "dairy",
			Thumbnail:   "/images/products/cheddar-cheese.jpg",
			Stock:       55,
		},
		{
			Id:          10,
			Title:       "Sourdough Bread",
			Description: "Stone-baked sourdough loaf",
			Price:       4.49,
			Rating:      4.9,
			Category:    "bakery",
			Tags:        []string{"baked daily"},
			Thumbnail:   "/images/products/sourdough-bread.jpg",
			Stock:       30,
		},
		{
			Id:                 11,
			Title:              "Croissants",
			Description:        "All-butter croissants, pack of four",
			Price:              3.79,
			Rating:             4.7,
			DiscountPercentage: 15,
			Category:           "bakery",
			Tags:               []string{"baked daily", "breakfast"},
			Thumbnail:          "/images/products/croissants.jpg",
			Stock:              40,
		},
		{
			Id:          12,
			Title:       "Orange Juice",
			Description: "Freshly squeezed orange juice, 1 liter",
			Price:       3.29,
			Rating:      4.4,
			Category:    "beverages",
			Tags:        []string{"fresh", "breakfast"},
			Thumbnail:   "/images/products/orange-juice.jpg",
			Stock:       85,
		},
	}
}
