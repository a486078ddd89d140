// Package types defines the Store interface, order entity types, the
// status enumeration, and standard error values for the Cafeteria order
// lifecycle system.
package types
