package main

import "time"

const (
	txQueueSize       = 1024 // capacity of async command TX ring
	sourceReadBufSize = 4096 // per read() buffer for the ingestion source
	rxBackoffMin      = 20 * time.Millisecond
	rxBackoffMax      = 500 * time.Millisecond
)
