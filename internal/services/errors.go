package services

// Service errors
var (
	ErrEmptyConfiguration = &ServiceError{Message: "configuration has no selections"}
	ErrUnknownStep        = &ServiceError{Message: "unknown step"}
	ErrStepLocked         = &ServiceError{Message: "step is locked until the previous step is completed"}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}
