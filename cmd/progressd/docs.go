package main

// General API documentation for swaggo. Run `swag init` to generate docs.
//
// @title           progressd API
// @version         1.0
// @description     Per-tenant task-progress notification hub: emit, pending query, and SSE streaming.
//
// @contact.name   progressd maintainers
// @contact.url    https://github.com/your-org/progressd
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
