package db

import "errors"

var (
	ErrFailedToParseDBConfig    = errors.New("db: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("db: failed to open database connection")
	ErrBuilderConsumed          = errors.New("db: pool state builder already finalized")
	ErrInvalidPort              = errors.New("db: invalid port")
	ErrLoadEnv                  = errors.New("db: failed to load environment")
	ErrPoolClosed               = errors.New("db: pool state is closed")
	ErrHealthcheckFailed        = errors.New("db: healthcheck failed")
	ErrSetDialect               = errors.New("db migrator: failed to set dialect")
	ErrApplyMigrations          = errors.New("db migrator: failed to apply migrations")
)
