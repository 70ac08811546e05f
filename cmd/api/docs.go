//go:generate swag init -g docs.go -o ../../docs --parseDependency --parseInternal --dir .,../../internal/httpapi

package main

// @title snipmark_api API
// @version 1.0
// @description Snippet search API: public and personal search, tag statistics, feed and pins.
// @BasePath /v1
// @securityDefinitions.apikey GatewayUser
// @in header
// @name X-User-ID
// @description User id forwarded by the API gateway
