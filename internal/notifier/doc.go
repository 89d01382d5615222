// Package notifier delivers password reset tokens to their owners through a
// side channel. The HTTP API never returns a reset token; it is handed to a
// [Notifier], which either publishes it to RabbitMQ for a downstream mailer or,
// in development, writes it to the log.
package notifier
