package redisx

import "time"

const (
	// Order status cache: order_status:{order_id} -> CREATED | PAID
	KeyOrderStatus = "order_status:%s"
)

var (
	TTLStatusCache = 24 * time.Hour
)
