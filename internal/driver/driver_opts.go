package driver

import "time"

type DriverOpt func(*Driver)

func WithAutosaveInterval(interval time.Duration) DriverOpt {
	return func(d *Driver) {
		d.autosaveInterval = interval
	}
}

func WithQueueLength(n int) DriverOpt {
	return func(d *Driver) {
		d.queueLength = max(n, 0)
	}
}
