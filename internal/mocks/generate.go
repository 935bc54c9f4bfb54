// Package mocks provides mock implementations for testing the identity and
// task services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks
// for the repository interfaces and the session codec port. To regenerate
// mocks after interface changes, run:
//
//	go generate ./internal/mocks
package mocks

// Generate mock for AccountRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=account_repository_mock.go github.com/tasklight/tasklight/internal/core AccountRepository

// Generate mock for TaskRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=task_repository_mock.go github.com/tasklight/tasklight/internal/core TaskRepository

// Generate mock for SessionCodec interface from internal/ports package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_codec_mock.go github.com/tasklight/tasklight/internal/ports SessionCodec
