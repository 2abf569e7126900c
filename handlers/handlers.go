package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"groceryStore/entities"
	"groceryStore/models"
	"groceryStore/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type Handler struct {
	us  services.UserService
	ps  *services.ProductService
	cs  services.CartService
	ws  services.WishlistService
	ors services.OrderService
	prs services.PreferenceService
}

type HandlerParams struct {
	UsrService services.UserService
	PrdService *services.ProductService
	CrtService services.CartService
	WshService services.WishlistService
	OrdService services.OrderService
	PrfService services.PreferenceService
}

func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		us:  params.UsrService,
		ps:  params.PrdService,
		cs:  params.CrtService,
		ws:  params.WshService,
		ors: params.OrdService,
		prs: params.PrfService,
	}
}

// sessionId returns the browser session identifier, creating the cookie on
// first contact.
func (h *Handler) sessionId(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie("sessionId")
	if err == nil && c.Value != "" {
		return c.Value
	}
	sessionId := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:    "sessionId",
		Value:   sessionId,
		Path:    "/",
		Expires: time.Now().Add(365 * 24 * time.Hour),
	})
	return sessionId
}

// storageId resolves the namespace for the session's cart/wishlist data.
func (h *Handler) storageId(w http.ResponseWriter, r *http.Request) (sessionId string, uid string, err error) {
	sessionId = h.sessionId(w, r)
	uid, err = h.us.StorageId(sessionId)
	return
}

func writeJson(w http.ResponseWriter, data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Printf("Marshal err:%v", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonData)
}

func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	name := "guest"
	c, err := r.Cookie("sessionId")
	if err == nil {
		user, exists, _ := h.us.CurrentUser(c.Value)
		if exists {
			name = user.Name
		}
	}
	w.Write([]byte("Hello, " + name + "!"))
}

// user

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{}
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	sessionId := h.sessionId(w, r)
	user, err := h.us.Login(sessionId, creds)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, user.Public())
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	data := models.RegisterRequest{}
	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	sessionId := h.sessionId(w, r)
	user, err := h.us.Register(sessionId, data)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, user.Public())
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")
	err := h.us.Logout(c.Value)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")
	user, exists, err := h.us.CurrentUser(c.Value)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if !exists {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJson(w, user.Public())
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")
	updates := models.ProfileUpdate{}
	err := json.NewDecoder(r.Body).Decode(&updates)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	user, err := h.us.UpdateProfile(c.Value, updates)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, user.Public())
}

// products

type productListResponse struct {
	Products      []entities.Product `json:"products"`
	UsingFallback bool               `json:"usingFallbackData"`
	Notice        string             `json:"notice,omitempty"`
}

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := entities.FilterState{
		Search:   q.Get("search"),
		SortBy:   q.Get("sortby"),
		Order:    q.Get("order"),
		Tag:      q.Get("tag"),
		Category: q.Get("category"),
	}
	if filters.SortBy == "" {
		filters.SortBy = "title"
	}
	if filters.Tag == "" {
		filters.Tag = "all"
	}
	if filters.Category == "" {
		filters.Category = "all"
	}

	prods, err := h.ps.GetProducts(filters)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	resp := productListResponse{
		Products:      prods,
		UsingFallback: h.ps.UsingFallback(),
	}
	if resp.UsingFallback {
		resp.Notice = services.FallbackNotice
	}
	writeJson(w, resp)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	prod, err := h.ps.GetProductById(id)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}

	// Viewing a detail page feeds the recently-viewed list.
	_, uid, err := h.storageId(w, r)
	if err == nil {
		if e := h.prs.AddRecentlyViewed(uid, prod); e != nil {
			log.Printf("AddRecentlyViewed: %v", e)
		}
	}
	writeJson(w, prod)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var form models.ProductForm
	err := json.NewDecoder(r.Body).Decode(&form)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	created, err := h.ps.CreateProduct(form)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, created)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var form models.ProductForm

	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	err = json.NewDecoder(r.Body).Decode(&form)
	if err != nil {
		log.Printf("Unmarshal err: %v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	updated, err2 := h.ps.UpdateProduct(id, form)
	if err2 != nil {
		WriteErrorResponse(w, err2)
		return
	}
	writeJson(w, updated)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	err = h.ps.DeleteProduct(id)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// cart

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	_, uid, err := h.storageId(w, r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	cart, err := h.cs.GetCart(uid)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, cart)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	req := models.CartRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	prod, err := h.ps.GetProductById(req.ProductId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	_, uid, err := h.storageId(w, r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	err = h.cs.AddToCart(uid, prod)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	cart, err := h.cs.GetCart(uid)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, cart)
}

func (h *Handler) DeleteFromCart(w http.ResponseWriter, r *http.Request) {
	req := models.CartRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	_, uid, err := h.storageId(w, r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	err = h.cs.RemoveFromCart(uid, req.ProductId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	cart, err := h.cs.GetCart(uid)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, cart)
}

func (h *Handler) UpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	req := models.CartRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	_, uid, err := h.storageId(w, r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	err = h.cs.UpdateQuantity(uid, req.ProductId, req.Quantity)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	cart, err := h.cs.GetCart(uid)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, cart)
}

func (h *Handler) IncreaseCartQuantity(w http.ResponseWriter, r *http.Request) {
	h.stepCartQuantity(w, r, true)
}

func (h *Handler) DecreaseCartQuantity(w http.ResponseWriter, r *http.Request) {
	h.stepCartQuantity(w, r, false)
}

func (h *Handler) stepCartQuantity(w http.ResponseWriter, r *http.Request, up bool) {
	req := models.CartRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	_, uid, err := h.storageId(w, r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if up {
		err = h.cs.IncreaseQuantity(uid, req.ProductId)
	} else {
		err = h.cs.DecreaseQuantity(uid, req.ProductId)
	}
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	cart, err := h.cs.GetCart(uid)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, cart)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	_, uid, err := h.storageId(w, r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	err = h.cs.ClearCart(uid)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// checkout / orders

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	form := models.CheckoutForm{}
	err := json.NewDecoder(r.Body).Decode(&form)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	sessionId, uid, err := h.storageId(w, r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	confirmation, err := h.ors.Checkout(sessionId, uid, form)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, confirmation)
}

func (h *Handler) GetCurrentUserOrders(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie("sessionId")
	orders, err := h.ors.GetCurrentUserOrders(c.Value)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, orders)
}

// wishlist

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	_, uid, err := h.storageId(w, r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	wishlist, err := h.ws.GetWishlist(uid)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, wishlist)
}

func (h *Handler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	req := models.WishlistRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	prod, err := h.ps.GetProductById(req.ProductId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	_, uid, err := h.storageId(w, r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	err = h.ws.AddToWishlist(uid, prod)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	req := models.WishlistRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	prod, err := h.ps.GetProductById(req.ProductId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	_, uid, err := h.storageId(w, r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	saved, err := h.ws.ToggleWishlist(uid, prod)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, map[string]bool{"saved": saved})
}

func (h *Handler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	req := models.WishlistRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	_, uid, err := h.storageId(w, r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	err = h.ws.RemoveFromWishlist(uid, req.ProductId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	_, uid, err := h.storageId(w, r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	err = h.ws.ClearWishlist(uid)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// preferences

func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	sessionId := h.sessionId(w, r)
	theme, err := h.prs.GetTheme(sessionId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, map[string]string{"theme": theme})
}

func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	req := models.ThemeRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Printf("Unmarshal err:%v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	sessionId := h.sessionId(w, r)
	if err := h.prs.SetTheme(sessionId, req.Theme); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, map[string]string{"theme": req.Theme})
}

func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	sessionId := h.sessionId(w, r)
	theme, err := h.prs.ToggleTheme(sessionId)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, map[string]string{"theme": theme})
}

func (h *Handler) GetRecentlyViewed(w http.ResponseWriter, r *http.Request) {
	_, uid, err := h.storageId(w, r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	items, err := h.prs.GetRecentlyViewed(uid)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJson(w, items)
}

func (h *Handler) ClearRecentlyViewed(w http.ResponseWriter, r *http.Request) {
	_, uid, err := h.storageId(w, r)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	err = h.prs.ClearRecentlyViewed(uid)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// middleware

func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := r.Cookie("sessionId")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		_, exists, e := h.us.CurrentUser(sessionId.Value)
		if !exists {
			if e != nil {
				http.Error(w, "server error", http.StatusInternalServerError)
			} else {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionId, err := r.Cookie("sessionId")
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ok, err := h.us.IsAdmin(sessionId.Value)
		if !ok {
			if err != nil {
				log.Printf("AdminAuthMiddleware: %v", err)
				http.Error(w, "server error", http.StatusInternalServerError)
			} else {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ErrorHandleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic occured: %v \n stacktrace: %v", rec, string(debug.Stack()))
				http.Error(w, "something went wrong, contact with service administration", http.StatusBadGateway)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func WriteErrorResponse(w http.ResponseWriter, err error) {
	var validation models.ValidationErrors
	switch {
	case errors.As(err, &validation):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		jsonData, e := json.MarshalIndent(map[string]models.ValidationErrors{"errors": validation}, "", "  ")
		if e != nil {
			log.Printf("Marshal err:%v", e)
			return
		}
		w.Write(jsonData)
	case errors.Is(err, models.ErrServerError):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	case errors.Is(err, models.ErrUnautorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFoundError):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrNotAllowed):
		http.Error(w, err.Error(), http.StatusNotAcceptable)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}
