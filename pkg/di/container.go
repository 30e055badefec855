package di

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-vaccination-registry/cache"
	"github.com/goliatone/go-vaccination-registry/internal/httpapi"
	"github.com/goliatone/go-vaccination-registry/internal/metrics"
	"github.com/goliatone/go-vaccination-registry/internal/service"
	"github.com/goliatone/go-vaccination-registry/internal/store/bunstore"
	"github.com/goliatone/go-vaccination-registry/repositorycache"
)

// CatalogNamespace prefixes every cache key owned by the vaccine catalog.
const CatalogNamespace = "vaccines"

// Container wires the registry together. It owns one cache service and one
// key serializer, both shared by the cached catalog, and builds the services
// on top of a single bun handle.
type Container struct {
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	config        cache.Config

	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	store     *bunstore.Store
	catalog   *repositorycache.CachedVaccineStore
	employees *service.EmployeeService
	vaccines  *service.VaccineService
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRegistry registers metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(c *Container) {
		if reg != nil {
			c.registry = reg
		}
	}
}

// NewContainer creates a container with the provided cache configuration.
// It validates the configuration, initializes the cache service using the
// sturdyc adapter and wires store, cached catalog and services.
func NewContainer(db *bun.DB, config cache.Config, opts ...Option) (*Container, error) {
	cacheService, err := cache.NewCacheService(config)
	if err != nil {
		return nil, err
	}

	c := &Container{
		cacheService:  cacheService,
		keySerializer: cache.NewKeySerializer(CatalogNamespace),
		config:        config,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		registry:      prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.metrics = metrics.New(c.registry)
	c.store = bunstore.New(db)
	c.catalog = repositorycache.New(c.store, c.cacheService, c.keySerializer,
		repositorycache.WithRecorder(c.metrics),
		repositorycache.WithLogger(c.logger),
	)

	svcOpts := []service.Option{
		service.WithLogger(c.logger),
		service.WithMetrics(c.metrics),
	}
	c.employees = service.NewEmployeeService(c.store, c.catalog, svcOpts...)
	c.vaccines = service.NewVaccineService(c.catalog, svcOpts...)

	return c, nil
}

// NewContainerWithDefaults creates a container using the default cache
// configuration.
func NewContainerWithDefaults(db *bun.DB, opts ...Option) (*Container, error) {
	return NewContainer(db, cache.DefaultConfig(), opts...)
}

// CacheService returns the singleton cache service instance.
func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

// KeySerializer returns the singleton key serializer instance.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Config returns a copy of the cache configuration used by this container.
func (c *Container) Config() cache.Config {
	return c.config
}

// Catalog returns the cached vaccine store.
func (c *Container) Catalog() *repositorycache.CachedVaccineStore {
	return c.catalog
}

func (c *Container) Employees() *service.EmployeeService {
	return c.employees
}

func (c *Container) Vaccines() *service.VaccineService {
	return c.vaccines
}

func (c *Container) Metrics() *metrics.Metrics {
	return c.metrics
}

// Registry is the prometheus registry the container's metrics live on.
func (c *Container) Registry() *prometheus.Registry {
	return c.registry
}

// HTTPServer builds the HTTP boundary on top of the container's services.
func (c *Container) HTTPServer(addr string) *httpapi.Server {
	return httpapi.NewServer(httpapi.Dependencies{
		Logger:    c.logger,
		Addr:      addr,
		Employees: c.employees,
		Vaccines:  c.vaccines,
		Metrics:   c.metrics,
		Gatherer:  c.registry,
	})
}
