package ecs

import "errors"

var (
	// ErrResourceNotFound is raised when a resource type is requested that
	// was never added to the registry.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrOverlappingBorrow is raised when a component storage is borrowed
	// exclusively while another borrow of the same type is still held.
	ErrOverlappingBorrow = errors.New("overlapping borrow of component storage")

	// ErrSetupAlreadyRan is returned when setup systems are run a second time.
	ErrSetupAlreadyRan = errors.New("setup systems already ran")
)
