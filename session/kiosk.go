package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KioskStore keeps scan-station sessions in redis. A session is created when
// an employee badges in at a kiosk and expires on its own after the ttl, so a
// walked-away badge never stays signed in.
type KioskStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewKioskStore(rdb *redis.Client, ttl time.Duration) *KioskStore {
	return &KioskStore{rdb: rdb, ttl: ttl}
}

type KioskSession struct {
	EmployeeID string `json:"eid"`
	IssuedAt   int64  `json:"iat"`
	ExpiresAt  int64  `json:"exp"`
}

func key(id string) string             { return fmt.Sprintf("kiosk:sess:%s", id) }
func employeeSetKey(eid string) string { return fmt.Sprintf("kiosk:employee_sessions:%s", eid) }

func (s *KioskStore) Create(ctx context.Context, id, employeeID string) error {
	now := time.Now()
	b, _ := json.Marshal(KioskSession{
		EmployeeID: employeeID,
		IssuedAt:   now.Unix(),
		ExpiresAt:  now.Add(s.ttl).Unix(),
	})
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key(id), b, s.ttl)
	pipe.SAdd(ctx, employeeSetKey(employeeID), id)
	pipe.Expire(ctx, employeeSetKey(employeeID), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *KioskStore) Get(ctx context.Context, id string) (*KioskSession, error) {
	b, err := s.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		return nil, err
	}
	var ks KioskSession
	if err := json.Unmarshal(b, &ks); err != nil {
		return nil, err
	}
	return &ks, nil
}

func (s *KioskStore) Delete(ctx context.Context, id string) error {
	ks, _ := s.Get(ctx, id)
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key(id))
	if ks != nil {
		pipe.SRem(ctx, employeeSetKey(ks.EmployeeID), id)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// RevokeAllForEmployee clears every live kiosk session for an employee.
// Called when the employee record is deleted.
func (s *KioskStore) RevokeAllForEmployee(ctx context.Context, employeeID string) error {
	ids, err := s.rdb.SMembers(ctx, employeeSetKey(employeeID)).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	for _, sid := range ids {
		pipe.Del(ctx, key(sid))
	}
	pipe.Del(ctx, employeeSetKey(employeeID))
	_, err = pipe.Exec(ctx)
	return err
}
