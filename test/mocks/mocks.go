// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `go generate ./test/mocks` from the root directory.
package mocks

//go:generate mockgen -source=../../internal/core/ports/fridge_repository.go -destination=fridge_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/fridge_service.go -destination=fridge_service_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/scanner.go -destination=scanner_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/cache.go -destination=cache_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/database.go -destination=database_mock.go -package=mocks
