package cache_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"hostelmate-data/internal/cache"
)

// fakeKV 仅用于单元测试（内存 KV + TTL）
type fakeKV struct {
	mu   sync.Mutex
	data map[string]fakeKVItem
	err  error // 非 nil 时所有操作返回该错误
}

type fakeKVItem struct {
	value   string
	expires time.Time // zero = no ttl
}

func newFakeKV() *fakeKV {
	return &fakeKV{
		data: make(map[string]fakeKVItem),
	}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}
	item, ok := f.data[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	if !item.expires.IsZero() && time.Now().After(item.expires) {
		delete(f.data, key)
		return "", cache.ErrCacheMiss
	}
	return item.value, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	f.data[key] = fakeKVItem{value: value, expires: exp}
	return nil
}

var errRedisDown = errors.New("redis: connection refused")
