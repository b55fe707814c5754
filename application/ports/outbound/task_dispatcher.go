package outbound

// TaskDispatcher abstracts the worker pool so services never depend on the
// pool implementation directly.
type TaskDispatcher interface {
	Submit(task func()) error
}
