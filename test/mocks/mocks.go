// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `go generate ./test/mocks` from the root directory.
package mocks

//go:generate mockgen -source=../../internal/core/ports/inventory_repository.go -destination=inventory_repository_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/inventory_source.go -destination=inventory_source_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/sync_state.go -destination=sync_state_mock.go -package=mocks
