package domain

// ActivityLogger provides a simple interface for recording engine activity.
// Services should depend on this interface rather than concrete implementations.
type ActivityLogger interface {
	Log(action string, actor string, metadata map[string]interface{}) error
}
