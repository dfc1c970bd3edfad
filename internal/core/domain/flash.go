package domain

// FlashLevel classifies a one-time dashboard notification.
type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashError   FlashLevel = "error"
)

// Flash is a notification recorded by an action (e.g. publishing) and
// consumed on the very next dashboard render.
type Flash struct {
	Level   FlashLevel `json:"level"`
	Message string     `json:"message"`
}
