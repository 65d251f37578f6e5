package core

import "time"

// Media describes the loaded item. The controller never decides what is
// loaded; hosts use this for display only.
type Media struct {
	Title    string        `json:"title"`
	URI      string        `json:"uri,omitempty"`
	Duration time.Duration `json:"duration"`
	Live     bool          `json:"live"`
}
