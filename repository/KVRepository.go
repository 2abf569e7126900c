package repository

import (
	"context"
	"errors"
	"log"

	"groceryStore/models"

	"github.com/redis/go-redis/v9"
)

// KVRepository is the persistent key-value store every state repository
// sits on. One key per (collection, namespace) pair, values are JSON.
type KVRepository interface {
	Get(key string) (value string, exists bool, err error)
	Set(key string, value string) (err error)
	Delete(key string) (err error)
}

type RedisKVRepo struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisKVRepository(redis_conn *redis.Client, _ctx context.Context) (KVRepository, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(_ctx).Err()
	if err != nil {
		return nil, err
	}
	return &RedisKVRepo{
		rdb: redis_conn,
		ctx: _ctx,
	}, nil
}

func (r *RedisKVRepo) Get(key string) (value string, exists bool, err error) {
	value, e := r.rdb.Get(r.ctx, key).Result()
	if e != nil {
		if e == redis.Nil {
			value = ""
			return
		}
		log.Printf("Get: %v", e)
		err = models.ErrServerError
		return
	}
	exists = true
	return
}

func (r *RedisKVRepo) Set(key string, value string) (err error) {
	err = r.rdb.Set(r.ctx, key, value, 0).Err()
	if err != nil {
		log.Printf("Set: %v", err)
		err = models.ErrServerError
	}
	return
}

func (r *RedisKVRepo) Delete(key string) (err error) {
	err = r.rdb.Del(r.ctx, key).Err()
	if err != nil {
		log.Printf("Delete: %v", err)
		err = models.ErrServerError
	}
	return
}
