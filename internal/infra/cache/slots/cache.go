package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const keyPrefix = "slots"

// cachedSlot представление слота в Redis
type cachedSlot struct {
	StaffID int64     `json:"staffId"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`

	PaddedStart time.Time `json:"paddedStart"`
}

// Cache кэш сгенерированных слотов в Redis
//
// Ключи: slots:{serviceId}:{date}:{staffId|all}. Для каждой даты ведется множество
// slots:index:{date} со всеми ключами этой даты, чтобы сбрасывать дату целиком.
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCache создает кэш слотов
func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает слоты из кэша; found=false, если записи нет
func (c *Cache) Get(ctx context.Context, serviceID int64, date string, staffID *int64) ([]domain.Slot, bool, error) {
	data, err := c.client.Get(ctx, slotsKey(serviceID, date, staffID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get: %v", ErrCache, err)
	}

	var cached []cachedSlot
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	result := make([]domain.Slot, len(cached))
	for i, s := range cached {
		result[i] = domain.Slot{StaffID: s.StaffID, Start: s.Start, End: s.End, PaddedStart: s.PaddedStart}
	}
	return result, true, nil
}

// Set сохраняет слоты и регистрирует ключ в индексе даты
func (c *Cache) Set(ctx context.Context, serviceID int64, date string, staffID *int64, slots []domain.Slot) error {
	cached := make([]cachedSlot, len(slots))
	for i, s := range slots {
		cached[i] = cachedSlot{StaffID: s.StaffID, Start: s.Start, End: s.End, PaddedStart: s.PaddedStart}
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrCache, err)
	}

	key := slotsKey(serviceID, date, staffID)
	index := indexKey(date)

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, c.ttl)
		pipe.SAdd(ctx, index, key)
		pipe.Expire(ctx, index, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: set: %v", ErrCache, err)
	}
	return nil
}

// InvalidateDate удаляет все закэшированные списки слотов на дату
func (c *Cache) InvalidateDate(ctx context.Context, date string) error {
	index := indexKey(date)

	keys, err := c.client.SMembers(ctx, index).Result()
	if err != nil {
		return fmt.Errorf("%w: smembers: %v", ErrCache, err)
	}

	keys = append(keys, index)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrCache, err)
	}
	return nil
}

func slotsKey(serviceID int64, date string, staffID *int64) string {
	staff := "all"
	if staffID != nil {
		staff = strconv.FormatInt(*staffID, 10)
	}
	return fmt.Sprintf("%s:%d:%s:%s", keyPrefix, serviceID, date, staff)
}

func indexKey(date string) string {
	return fmt.Sprintf("%s:index:%s", keyPrefix, date)
}
