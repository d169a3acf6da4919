package main

// General API documentation for swaggo.
// Regenerate with: swag init -g cmd/askd/docs.go -o docs
//
// @title           askd API
// @version         1.0
// @description     HTTP API for submitting questions to LLM backends through a durable workflow engine.
//
// @contact.name   askd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
