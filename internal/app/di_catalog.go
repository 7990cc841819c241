package app

import (
	"fmt"
	"sync"

	catalogHTTP "github.com/aitoolbox/gatekeeper/internal/catalog/http"
	catalogRepository "github.com/aitoolbox/gatekeeper/internal/catalog/repository"
	catalogUseCase "github.com/aitoolbox/gatekeeper/internal/catalog/usecase"
)

// catalogComponents groups the catalog module dependencies inside the
// container.
type catalogComponents struct {
	entryRepo catalogUseCase.EntryRepository
	useCase   catalogUseCase.UseCase

	entryHandler *catalogHTTP.EntryHandler

	entryRepoInit    sync.Once
	useCaseInit      sync.Once
	entryHandlerInit sync.Once
}

// EntryRepository returns the catalog repository instance for the configured
// database driver.
func (c *Container) EntryRepository() (catalogUseCase.EntryRepository, error) {
	c.catalog.entryRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["entryRepo"] = fmt.Errorf("failed to get database for entry repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.catalog.entryRepo = catalogRepository.NewMySQLEntryRepository(db)
		case "postgres":
			c.catalog.entryRepo = catalogRepository.NewPostgreSQLEntryRepository(db)
		default:
			c.initErrors["entryRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["entryRepo"]; exists {
		return nil, err
	}
	return c.catalog.entryRepo, nil
}

// EntryUseCase returns the catalog use case, wrapped with metrics when
// enabled.
func (c *Container) EntryUseCase() (catalogUseCase.UseCase, error) {
	c.catalog.useCaseInit.Do(func() {
		entryRepo, err := c.EntryRepository()
		if err != nil {
			c.initErrors["entryUseCase"] = err
			return
		}

		useCase := catalogUseCase.NewEntryUseCase(entryRepo)

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["entryUseCase"] = err
			return
		}
		if businessMetrics != nil {
			useCase = catalogUseCase.NewEntryUseCaseWithMetrics(useCase, businessMetrics)
		}

		c.catalog.useCase = useCase
	})
	if err, exists := c.initErrors["entryUseCase"]; exists {
		return nil, err
	}
	return c.catalog.useCase, nil
}

// EntryHandler returns the catalog JSON API handler.
func (c *Container) EntryHandler() (*catalogHTTP.EntryHandler, error) {
	c.catalog.entryHandlerInit.Do(func() {
		useCase, err := c.EntryUseCase()
		if err != nil {
			c.initErrors["entryHandler"] = err
			return
		}
		c.catalog.entryHandler = catalogHTTP.NewEntryHandler(useCase, c.Logger())
	})
	if err, exists := c.initErrors["entryHandler"]; exists {
		return nil, err
	}
	return c.catalog.entryHandler, nil
}
