package models

import (
	"errors"
	"regexp"
	"strings"
)

var ErrBadRequest = errors.New("bad request")
var ErrUnautorized = errors.New("unautorized")
var ErrServerError = errors.New("server error")
var ErrNotFoundError = errors.New("not found")
var ErrNotAllowed = errors.New("not acceptable")

// ValidationErrors maps a form field to its error message. It is returned
// by login/checkout validation and rendered as a 400 JSON body.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	return "invalid fields: " + strings.Join(fields, ", ")
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(c.Email) == "" {
		errs["email"] = "Email is required"
	} else if !ValidEmail(c.Email) {
		errs["email"] = "Email is invalid"
	}
	if c.Password == "" {
		errs["password"] = "Password is required"
	} else if len(c.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func (r RegisterRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(r.Email) == "" {
		errs["email"] = "Email is required"
	} else if !ValidEmail(r.Email) {
		errs["email"] = "Email is invalid"
	}
	if r.Password == "" {
		errs["password"] = "Password is required"
	} else if len(r.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type ProfileUpdate struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Avatar  string `json:"avatar"`
}

type CheckoutForm struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	ZipCode       string `json:"zipCode"`
	PaymentMethod string `json:"paymentMethod"`
}

func (f CheckoutForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	} else if !ValidEmail(f.Email) {
		errs["email"] = "Email is invalid"
	}
	if strings.TrimSpace(f.Phone) == "" {
		errs["phone"] = "Phone is required"
	}
	if strings.TrimSpace(f.Address) == "" {
		errs["address"] = "Address is required"
	}
	if strings.TrimSpace(f.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(f.ZipCode) == "" {
		errs["zipCode"] = "ZIP code is required"
	}
	if f.PaymentMethod != "" && f.PaymentMethod != "card" && f.PaymentMethod != "cash" {
		errs["paymentMethod"] = "Payment method must be card or cash"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type CartRequest struct {
	ProductId int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type WishlistRequest struct {
	ProductId int `json:"productId"`
}

type ProductForm struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	Category           string   `json:"category"`
	Thumbnail          string   `json:"thumbnail"`
	Stock              int      `json:"stock"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Tags               []string `json:"tags"`
}

type ThemeRequest struct {
	Theme string `json:"theme"`
}
