package services

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/deploymenttheory/go-appledouble/internal/config"
	appledouble "github.com/deploymenttheory/go-appledouble/internal/encoders/apple_double"
	resourcefork "github.com/deploymenttheory/go-appledouble/internal/encoders/resource_fork"
	"github.com/deploymenttheory/go-appledouble/internal/logger"
	metadata "github.com/deploymenttheory/go-appledouble/internal/services"
)

// ServiceFactory provides a centralized way to create and share services
type ServiceFactory struct {
	encoderService  EncoderService
	metadataService MetadataService
	log             *slog.Logger
	opts            metadata.Options
	mu              sync.RWMutex
	initialized     bool
}

// NewServiceFactory creates a factory with default options and no logging.
func NewServiceFactory() *ServiceFactory {
	return &ServiceFactory{
		log:  logger.Discard(),
		opts: metadata.DefaultOptions(),
	}
}

// Configure replaces the logger and encoder options. Services created
// earlier are dropped and rebuilt on next use.
func (sf *ServiceFactory) Configure(log *slog.Logger, opts metadata.Options) {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	if log == nil {
		log = logger.Discard()
	}
	sf.log = log
	sf.opts = opts
	sf.encoderService = nil
	sf.metadataService = nil
	sf.initialized = false
}

// Initialize creates the services
func (sf *ServiceFactory) Initialize() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	if sf.initialized {
		return nil
	}
	sf.encoderService = NewEncoderService(sf.log, sf.opts)
	sf.metadataService = metadata.NewMetadataService(sf.log, sf.opts)
	sf.initialized = true
	return nil
}

// EncoderService returns the encoder service instance
func (sf *ServiceFactory) EncoderService() (EncoderService, error) {
	if err := sf.Initialize(); err != nil {
		return nil, err
	}
	sf.mu.RLock()
	defer sf.mu.RUnlock()
	return sf.encoderService, nil
}

// MetadataService returns the metadata service instance
func (sf *ServiceFactory) MetadataService() (MetadataService, error) {
	if err := sf.Initialize(); err != nil {
		return nil, err
	}
	sf.mu.RLock()
	defer sf.mu.RUnlock()
	return sf.metadataService, nil
}

// Shutdown releases the services
func (sf *ServiceFactory) Shutdown() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	sf.encoderService = nil
	sf.metadataService = nil
	sf.initialized = false
	return nil
}

// IsInitialized returns whether the factory has been initialized
func (sf *ServiceFactory) IsInitialized() bool {
	sf.mu.RLock()
	defer sf.mu.RUnlock()
	return sf.initialized
}

// ServiceInfo represents information about a service
type ServiceInfo struct {
	Name        string
	Description string
	Available   bool
}

// ListAvailableServices returns information about all services
func (sf *ServiceFactory) ListAvailableServices() []ServiceInfo {
	return []ServiceInfo{
		{
			Name:        "encoder",
			Description: "FinderInfo, resource fork and AppleDouble encoding from explicit field values",
			Available:   true,
		},
		{
			Name:        "metadata",
			Description: "Finder extended attributes and ._ sidecar contents derived from file attributes",
			Available:   true,
		},
	}
}

// OptionsFromConfig maps the encoder settings of cfg to service options.
func OptionsFromConfig(cfg *config.Config) (metadata.Options, error) {
	duplicates, err := appledouble.ParseDuplicatePolicy(string(cfg.AppleDouble.DuplicateEntries))
	if err != nil {
		return metadata.Options{}, fmt.Errorf("appledouble.duplicate_entries: %w", err)
	}
	longNames, err := resourcefork.ParseNamePolicy(string(cfg.ResourceFork.LongNames))
	if err != nil {
		return metadata.Options{}, fmt.Errorf("resource_fork.long_names: %w", err)
	}
	return metadata.Options{
		Filler:     cfg.AppleDouble.Filler,
		Duplicates: duplicates,
		LongNames:  longNames,
	}, nil
}

// DefaultServiceFactory is the default global service factory instance
var DefaultServiceFactory = NewServiceFactory()
