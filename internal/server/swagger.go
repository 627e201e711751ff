package server

//go:generate swag init -g internal/server/server.go -o docs/swagger

// @title PrivacyLens API
// @version 0.1
// @description Interactive documentation for the PrivacyLens analysis API surface.
// @contact.name PrivacyLens Maintainers
// @contact.url https://github.com/avel9n/privacylens
// @BasePath /
