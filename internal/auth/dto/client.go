package dto

// ClientInfo carries the request metadata that refresh sessions are bound to.
type ClientInfo struct {
	IP        string
	UserAgent string
}
