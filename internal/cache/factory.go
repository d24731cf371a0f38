package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Belphemur/MediaProc/internal/config"
)

// Options configures a Store.
type Options struct {
	Size int
	TTL  time.Duration

	// Logger receives backend errors. Nil discards them.
	Logger Logger

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// Name labels the cache_* metrics. An empty name disables instrumentation.
	Name string
}

// Provider builds a Store from Options.
type Provider func(opts Options) (Store, error)

var (
	mu        sync.RWMutex
	providers = make(map[string]Provider)
)

// Register makes a provider available to New. It panics on a nil or duplicate provider.
func Register(name string, p Provider) {
	mu.Lock()
	defer mu.Unlock()

	if p == nil {
		panic("cache: Register provider is nil")
	}
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	providers[name] = p
}

// New builds a Store with the named provider, wrapping it with metrics when opts.Name is set.
func New(provider string, opts Options) (Store, error) {
	mu.RLock()
	p, ok := providers[provider]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (registered: %v)", provider, Providers())
	}

	store, err := p(opts)
	if err != nil {
		return nil, err
	}
	if opts.Name == "" {
		return store, nil
	}
	return instrument(store, opts.Name), nil
}

// Providers lists registered provider names in sorted order.
func Providers() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewFromConfig builds the transcription cache described by cfg.Cache.
func NewFromConfig(cfg *config.Config, name string) (Store, error) {
	return New(cfg.Cache.Provider, Options{
		Size:          cfg.Cache.Size,
		TTL:           config.ParseDuration("cache.ttl", cfg.Cache.TTL, 24*time.Hour),
		Logger:        NewZerologLogger(config.GetLogger()),
		RedisAddress:  cfg.Cache.Redis.Address,
		RedisPassword: cfg.Cache.Redis.Password,
		RedisDB:       cfg.Cache.Redis.DB,
		Name:          name,
	})
}
