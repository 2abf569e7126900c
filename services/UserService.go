package services

import (
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"groceryStore/entities"
	"groceryStore/models"
	"groceryStore/repository"
)

// Demo admin credentials. This is a mock: anyone supplying them becomes
// admin, there is no server-side account store to verify against.
const demoAdminEmail = "admin@gmail.com"
const demoAdminPassword = "123456"

type UserService struct {
	ur repository.UserRepository
	// simulated network latency on login/register, zero in tests
	submitDelay time.Duration
}

func NewUserService(userRepo repository.UserRepository, submitDelay time.Duration) UserService {
	return UserService{
		ur:          userRepo,
		submitDelay: submitDelay,
	}
}

func avatarUrl(name string, background string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=%s&color=fff",
		url.QueryEscape(name), background)
}

// Login always succeeds for a well-formed form. The demo admin pair yields
// a synthesized admin record; any other credentials yield a synthesized
// ordinary user built from the email.
func (us *UserService) Login(sessionId string, creds models.Credentials) (user entities.User, err error) {
	if errs := creds.Validate(); errs != nil {
		err = errs
		return
	}
	time.Sleep(us.submitDelay)

	if creds.Email == demoAdminEmail && creds.Password == demoAdminPassword {
		user = entities.User{
			Id:           1,
			Name:         "Admin",
			Email:        demoAdminEmail,
			Avatar:       avatarUrl("Admin", "EF4444"),
			Role:         "admin",
			CreatedAt:    time.Now().UTC(),
			OrderHistory: []entities.Order{},
		}
		err = us.storeUser(sessionId, user, creds.Password)
		return
	}

	displayName := creds.Email
	if at := strings.Index(creds.Email, "@"); at > 0 {
		displayName = creds.Email[:at]
	}
	user = entities.User{
		Id:           time.Now().UnixMilli(),
		Name:         displayName,
		Email:        creds.Email,
		Phone:        "+1 (555) 123-4567",
		Address:      "123 Main Street, New York, NY 10001",
		Avatar:       avatarUrl(displayName, "4CAF50"),
		Role:         "user",
		CreatedAt:    time.Now().UTC(),
		OrderHistory: []entities.Order{},
	}
	err = us.storeUser(sessionId, user, creds.Password)
	return
}

// Register synthesizes a user from the supplied fields. There is no account
// store, so pre-existing emails are not checked.
func (us *UserService) Register(sessionId string, data models.RegisterRequest) (user entities.User, err error) {
	if errs := data.Validate(); errs != nil {
		err = errs
		return
	}
	time.Sleep(us.submitDelay)

	name := strings.TrimSpace(data.Name)
	user = entities.User{
		Id:           time.Now().UnixMilli(),
		Name:         name,
		Email:        data.Email,
		Phone:        data.Phone,
		Address:      data.Address,
		Avatar:       avatarUrl(name, "4CAF50"),
		Role:         "user",
		CreatedAt:    time.Now().UTC(),
		OrderHistory: []entities.Order{},
	}
	err = us.storeUser(sessionId, user, data.Password)
	return
}

func (us *UserService) storeUser(sessionId string, user entities.User, password string) (err error) {
	hashed, e := us.ur.EncryptPassword(password)
	if e != nil {
		err = e
		return
	}
	user.Password = hashed
	err = us.ur.SetCurrentUser(sessionId, user)
	return
}

func (us *UserService) Logout(sessionId string) (err error) {
	err = us.ur.ClearCurrentUser(sessionId)
	return
}

func (us *UserService) CurrentUser(sessionId string) (user entities.User, exists bool, err error) {
	user, exists, err = us.ur.GetCurrentUser(sessionId)
	return
}

// UpdateProfile merges the non-empty fields into the current user record.
// Fails when nobody is logged in.
func (us *UserService) UpdateProfile(sessionId string, updates models.ProfileUpdate) (user entities.User, err error) {
	user, exists, e := us.ur.GetCurrentUser(sessionId)
	if e != nil {
		err = e
		return
	}
	if !exists {
		log.Printf("UpdateProfile: no user logged in")
		err = models.ErrUnautorized
		return
	}
	if updates.Name != "" {
		user.Name = updates.Name
	}
	if updates.Email != "" {
		user.Email = updates.Email
	}
	if updates.Phone != "" {
		user.Phone = updates.Phone
	}
	if updates.Address != "" {
		user.Address = updates.Address
	}
	if updates.Avatar != "" {
		user.Avatar = updates.Avatar
	}
	err = us.ur.SetCurrentUser(sessionId, user)
	return
}

// AddOrder prepends the order to the current user's history, most recent
// first. Silently does nothing for guests.
func (us *UserService) AddOrder(sessionId string, order entities.Order) (err error) {
	user, exists, e := us.ur.GetCurrentUser(sessionId)
	if e != nil {
		err = e
		return
	}
	if !exists {
		return
	}
	user.OrderHistory = append([]entities.Order{order}, user.OrderHistory...)
	err = us.ur.SetCurrentUser(sessionId, user)
	return
}

func (us *UserService) IsAdmin(sessionId string) (admin bool, err error) {
	user, exists, e := us.ur.GetCurrentUser(sessionId)
	if e != nil {
		err = e
		return
	}
	admin = exists && user.Role == "admin"
	return
}

// StorageId is the namespace used for the session's persisted cart,
// wishlist and recently-viewed collections. Logged-in users get their user
// id so the data follows them across sessions; guests get a per-session
// namespace. Switching users swaps which collection is live, nothing is
// merged.
func (us *UserService) StorageId(sessionId string) (uid string, err error) {
	user, exists, e := us.ur.GetCurrentUser(sessionId)
	if e != nil {
		err = e
		return
	}
	if exists {
		uid = strconv.FormatInt(user.Id, 10)
		return
	}
	uid = "guest-" + sessionId
	return
}
