package services

import (
	"log"
	"time"
)

// withRetry runs fn up to attempts times with a fixed delay between
// tries, returning the last error if every attempt fails.
func withRetry(attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts-1 {
			log.Printf("retrying in %s: %v", delay, err)
			time.Sleep(delay)
		}
	}
	return err
}
