// Package mocks provides mock implementations for testing the notes console session layer.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	storage := mocks.NewMockSessionStorage(ctrl)
//	storage.EXPECT().Get(gomock.Any(), "auth_token").Return("abc", true, nil)
package mocks

// Generate mocks for the session ports from internal/ports.
// This creates MockSessionStorage (Get, Set, Remove), MockNavigator (Navigate)
// and MockNotifier (Notify).
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ports_mock.go github.com/notesapp/notes-console/internal/ports SessionStorage,Navigator,Notifier

// Generate the backend API client mock (MockAPIClient) used by service tests.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=api_mock.go github.com/notesapp/notes-console/internal/ports APIClient
