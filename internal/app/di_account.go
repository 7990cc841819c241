package app

import (
	"fmt"
	"sync"

	accountHTTP "github.com/aitoolbox/gatekeeper/internal/account/http"
	accountRepository "github.com/aitoolbox/gatekeeper/internal/account/repository"
	"github.com/aitoolbox/gatekeeper/internal/account/service"
	accountUseCase "github.com/aitoolbox/gatekeeper/internal/account/usecase"
)

// accountComponents groups the account module dependencies inside the
// container.
type accountComponents struct {
	tokenService service.ApprovalTokenService
	profileRepo  accountUseCase.ProfileRepository
	useCase      accountUseCase.UseCase

	profileHandler    *accountHTTP.ProfileHandler
	moderationHandler *accountHTTP.ModerationHandler

	tokenServiceInit      sync.Once
	profileRepoInit       sync.Once
	useCaseInit           sync.Once
	profileHandlerInit    sync.Once
	moderationHandlerInit sync.Once
}

// ApprovalTokenService returns the approval token generator.
func (c *Container) ApprovalTokenService() service.ApprovalTokenService {
	c.account.tokenServiceInit.Do(func() {
		c.account.tokenService = service.NewApprovalTokenService()
	})
	return c.account.tokenService
}

// ProfileRepository returns the profile repository instance for the configured
// database driver.
func (c *Container) ProfileRepository() (accountUseCase.ProfileRepository, error) {
	c.account.profileRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["profileRepo"] = fmt.Errorf("failed to get database for profile repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.account.profileRepo = accountRepository.NewMySQLProfileRepository(db)
		case "postgres":
			c.account.profileRepo = accountRepository.NewPostgreSQLProfileRepository(db)
		default:
			c.initErrors["profileRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["profileRepo"]; exists {
		return nil, err
	}
	return c.account.profileRepo, nil
}

// ProfileUseCase returns the account use case, wrapped with metrics when
// enabled.
func (c *Container) ProfileUseCase() (accountUseCase.UseCase, error) {
	c.account.useCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["profileUseCase"] = err
			return
		}
		profileRepo, err := c.ProfileRepository()
		if err != nil {
			c.initErrors["profileUseCase"] = err
			return
		}

		useCase, err := accountUseCase.NewProfileUseCase(
			txManager,
			profileRepo,
			c.ApprovalTokenService(),
			c.Dispatcher(),
			c.config.AppBaseURL,
			c.config.AdminEmail,
		)
		if err != nil {
			c.initErrors["profileUseCase"] = fmt.Errorf("failed to create profile use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["profileUseCase"] = err
			return
		}
		if businessMetrics != nil {
			useCase = accountUseCase.NewProfileUseCaseWithMetrics(useCase, businessMetrics)
		}

		c.account.useCase = useCase
	})
	if err, exists := c.initErrors["profileUseCase"]; exists {
		return nil, err
	}
	return c.account.useCase, nil
}

// ProfileHandler returns the account JSON API handler.
func (c *Container) ProfileHandler() (*accountHTTP.ProfileHandler, error) {
	c.account.profileHandlerInit.Do(func() {
		useCase, err := c.ProfileUseCase()
		if err != nil {
			c.initErrors["profileHandler"] = err
			return
		}
		c.account.profileHandler = accountHTTP.NewProfileHandler(useCase, c.Logger())
	})
	if err, exists := c.initErrors["profileHandler"]; exists {
		return nil, err
	}
	return c.account.profileHandler, nil
}

// ModerationHandler returns the HTML moderation endpoint handler.
func (c *Container) ModerationHandler() (*accountHTTP.ModerationHandler, error) {
	c.account.moderationHandlerInit.Do(func() {
		useCase, err := c.ProfileUseCase()
		if err != nil {
			c.initErrors["moderationHandler"] = err
			return
		}
		c.account.moderationHandler = accountHTTP.NewModerationHandler(useCase, c.Logger())
	})
	if err, exists := c.initErrors["moderationHandler"]; exists {
		return nil, err
	}
	return c.account.moderationHandler, nil
}
