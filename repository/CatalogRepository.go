package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"groceryStore/entities"
	"groceryStore/models"
)

// CatalogRepository is the product catalog source. Two interchangeable
// providers exist: the remote data server and the static in-memory seed.
type CatalogRepository interface {
	GetProducts() (prods []entities.Product, err error)
	GetProductById(id int) (prod entities.Product, exists bool, err error)
	CreateProduct(prod entities.Product) (created entities.Product, err error)
	UpdateProduct(prod entities.Product) (updated entities.Product, err error)
	DeleteProduct(id int) (err error)
}

// RemoteCatalogRepo talks JSON over HTTP to the data server that owns the
// products collection (list/get/create/update/delete).
type RemoteCatalogRepo struct {
	baseUrl string
	client  *http.Client
}

func NewRemoteCatalogRepository(baseUrl string) (CatalogRepository, error) {
	if baseUrl == "" {
		return nil, errors.New("baseUrl must be non-empty")
	}
	return &RemoteCatalogRepo{
		baseUrl: baseUrl,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (r *RemoteCatalogRepo) GetProducts() (prods []entities.Product, err error) {
	prods = []entities.Product{}
	resp, e := r.client.Get(r.baseUrl + "/products")
	if e != nil {
		log.Printf("GetProducts: %v", e)
		err = models.ErrServerError
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("GetProducts: status %v", resp.StatusCode)
		err = models.ErrServerError
		return
	}
	err = json.NewDecoder(resp.Body).Decode(&prods)
	if err != nil {
		log.Printf("GetProducts: Unmarshal err:%v", err)
		err = models.ErrServerError
	}
	return
}

func (r *RemoteCatalogRepo) GetProductById(id int) (prod entities.Product, exists bool, err error) {
	resp, e := r.client.Get(r.baseUrl + "/products/" + strconv.Itoa(id))
	if e != nil {
		log.Printf("GetProductById: %v", e)
		err = models.ErrServerError
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("GetProductById: status %v", resp.StatusCode)
		err = models.ErrServerError
		return
	}
	err = json.NewDecoder(resp.Body).Decode(&prod)
	if err != nil {
		log.Printf("GetProductById: Unmarshal err:%v", err)
		err = models.ErrServerError
		return
	}
	exists = true
	return
}

func (r *RemoteCatalogRepo) CreateProduct(prod entities.Product) (created entities.Product, err error) {
	created, err = r.send(http.MethodPost, r.baseUrl+"/products", prod)
	return
}

func (r *RemoteCatalogRepo) UpdateProduct(prod entities.Product) (updated entities.Product, err error) {
	updated, err = r.send(http.MethodPut, r.baseUrl+"/products/"+strconv.Itoa(prod.Id), prod)
	return
}

func (r *RemoteCatalogRepo) DeleteProduct(id int) (err error) {
	req, e := http.NewRequest(http.MethodDelete, r.baseUrl+"/products/"+strconv.Itoa(id), nil)
	if e != nil {
		log.Printf("DeleteProduct: %v", e)
		err = models.ErrServerError
		return
	}
	resp, e := r.client.Do(req)
	if e != nil {
		log.Printf("DeleteProduct: %v", e)
		err = models.ErrServerError
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		err = models.ErrNotFoundError
		return
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		log.Printf("DeleteProduct: status %v", resp.StatusCode)
		err = models.ErrServerError
	}
	return
}

func (r *RemoteCatalogRepo) send(method string, url string, prod entities.Product) (result entities.Product, err error) {
	jsonData, e := json.Marshal(prod)
	if e != nil {
		log.Printf("send: Marshal err:%v", e)
		err = models.ErrServerError
		return
	}
	req, e := http.NewRequest(method, url, bytes.NewReader(jsonData))
	if e != nil {
		log.Printf("send: %v", e)
		err = models.ErrServerError
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, e := r.client.Do(req)
	if e != nil {
		log.Printf("send: %v", e)
		err = models.ErrServerError
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		err = models.ErrNotFoundError
		return
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("send: status %v", resp.StatusCode)
		err = models.ErrServerError
		return
	}
	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		log.Printf("send: Unmarshal err:%v", err)
		err = models.ErrServerError
	}
	return
}
