// Package ferrors defines the error kinds a flow runtime reports: the three
// load-time kinds (LoadError, GraphValidationError, ConnectionError) that
// abort construction synchronously, and the two run-time kinds (WorkerError,
// DeliveryError) that are localized, logged, and otherwise survived.
package ferrors
