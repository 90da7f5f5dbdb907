// Package api contains the HTTP handlers, request/response models, and
// error mapping for the task-list JSON API. Handlers stay thin: they
// decode and validate input, call the service layer, and translate
// errors into sanitized responses.
package api
