package repository

import (
	"encoding/json"
	"errors"
	"log"

	"groceryStore/entities"
	"groceryStore/models"

	"golang.org/x/crypto/bcrypt"
)

// UserRepository keeps the current-user record of each session. Exactly one
// record per session, or none (guest).
type UserRepository interface {
	GetCurrentUser(sessionId string) (user entities.User, exists bool, err error)
	SetCurrentUser(sessionId string, user entities.User) (err error)
	ClearCurrentUser(sessionId string) (err error)
	EncryptPassword(userPass string) (hashedPassword string, err error)
	VerifyPassword(hashedPassword string, sentPassword string) bool
}

type UserRepo struct {
	kv KVRepository
}

func NewUserRepository(kv KVRepository) (UserRepository, error) {
	if kv == nil {
		return nil, errors.New("kv must be non-nil")
	}
	return &UserRepo{
		kv: kv,
	}, nil
}

func userKey(sessionId string) string {
	return "user-" + sessionId
}

func (u *UserRepo) GetCurrentUser(sessionId string) (user entities.User, exists bool, err error) {
	val, exists, e := u.kv.Get(userKey(sessionId))
	if e != nil {
		err = e
		return
	}
	if !exists {
		return
	}
	if e := json.Unmarshal([]byte(val), &user); e != nil {
		log.Printf("GetCurrentUser: Unmarshal err:%v", e)
		user = entities.User{}
		exists = false
	}
	return
}

func (u *UserRepo) SetCurrentUser(sessionId string, user entities.User) (err error) {
	jsonData, err := json.Marshal(user)
	if err != nil {
		log.Printf("SetCurrentUser: Marshal err:%v", err)
		err = models.ErrServerError
		return
	}
	err = u.kv.Set(userKey(sessionId), string(jsonData))
	return
}

func (u *UserRepo) ClearCurrentUser(sessionId string) (err error) {
	err = u.kv.Delete(userKey(sessionId))
	return
}

func (u *UserRepo) EncryptPassword(userPass string) (hashedPassword string, err error) {
	var password []byte
	password, err = bcrypt.GenerateFromPassword([]byte(userPass), 8)
	if err != nil {
		log.Printf("EncryptPassword: %v", err)
		err = models.ErrServerError
		return
	}
	hashedPassword = string(password)
	return
}

func (u *UserRepo) VerifyPassword(hashedPassword string, sentPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(sentPassword))
	return err == nil
}
