package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]any)
	onces   = make(map[string]*sync.Once)

	dotenvOnce sync.Once
)

// Load populates v from the environment. The first call per struct type
// parses and caches; later calls copy the cached value, so components can
// each load their own config without re-reading the environment.
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// A missing .env file is the normal production case.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	typeName := typeNameOf[T]()

	cacheMu.RLock()
	if cached, ok := cache[typeName]; ok {
		*v = cached.(T)
		cacheMu.RUnlock()
		return nil
	}
	cacheMu.RUnlock()

	cacheMu.Lock()
	once, ok := onces[typeName]
	if !ok {
		once = new(sync.Once)
		onces[typeName] = once
	}
	cacheMu.Unlock()

	var parseErr error
	once.Do(func() {
		if err := env.Parse(v); err != nil {
			parseErr = errors.Join(ErrParsingConfig, err)
			return
		}
		cacheMu.Lock()
		cache[typeName] = *v // copy keeps the cache immutable
		cacheMu.Unlock()
	})
	if parseErr != nil {
		return parseErr
	}

	cacheMu.RLock()
	defer cacheMu.RUnlock()
	if cached, ok := cache[typeName]; ok {
		*v = cached.(T)
		return nil
	}

	// The winning Do failed earlier; this caller sees the loss.
	return ErrConfigNotLoaded
}

// MustLoad is Load for configs without which the process cannot start.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func typeNameOf[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
