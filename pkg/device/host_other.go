//go:build !linux

package device

import (
	"os"
	"runtime"
)

func hostID() (string, error) {
	host, err := os.Hostname()
	if err != nil || len(host) == 0 {
		return "", ErrNoDeviceID
	}
	return host + "/" + runtime.GOARCH, nil
}
