// Package redis guarda en Redis las sesiones de cambio de stock en curso.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/stockchange-api/internal/domain/entity"
	"github.com/jhoicas/stockchange-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionStore)(nil)

const keyPrefix = "stockchange:session:"

// SessionStore sesiones serializadas en JSON con expiración; una sesión abandonada simplemente caduca.
type SessionStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewSessionStore construye el store. Con ttl <= 0 las sesiones no caducan.
func NewSessionStore(client *goredis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// NewClient crea el cliente Redis y comprueba la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Get devuelve la sesión o (nil, nil) si no existe o caducó.
func (s *SessionStore) Get(ctx context.Context, id string) (*entity.ChangeSession, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	var sess entity.ChangeSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decodificar sesión: %w", err)
	}
	return &sess, nil
}

// Save guarda la sesión y renueva su expiración.
func (s *SessionStore) Save(ctx context.Context, sess *entity.ChangeSession) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("codificar sesión: %w", err)
	}
	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, keyPrefix+sess.ID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Delete descarta la sesión.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("borrar sesión: %w", err)
	}
	return nil
}
