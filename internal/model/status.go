package model

import "time"

// StatusCheck is a client heartbeat recorded by the mobile app on launch.
type StatusCheck struct {
	ID         string    `db:"id" json:"id"`
	ClientName string    `db:"client_name" json:"client_name"`
	Timestamp  time.Time `db:"created_at" json:"timestamp"`
}
