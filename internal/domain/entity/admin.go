package entity

import "time"

// AdminSession is a logged-in operator session.
type AdminSession struct {
	UserID       int64
	IsAdmin      bool
	LoginTime    time.Time
	LastActivity time.Time
}

// AdminAction is an audit record of an operator action.
type AdminAction struct {
	ID        string
	UserID    int64
	Action    string // "login", "upload_catalog", "order_status"
	Details   string
	Timestamp time.Time
}
