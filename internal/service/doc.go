// Package service contains the application's use-case orchestration.
// Services sit between the HTTP handlers and the persistence layer,
// owning the business flow: validating input, consulting the priority
// advisor, and delegating storage to the task store.
package service
