package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	minLockPort = 20000
	maxLockPort = 39999
)

// InstanceGuard holds the single-instance lock. Nothing is ever exchanged over
// the socket; the bound port is the lock.
type InstanceGuard struct {
	listener net.Listener
}

// AcquireSingleInstance binds a loopback port derived from appName.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := LockAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: listen %s: %v", ErrAlreadyRunning, address, err)
	}
	return &InstanceGuard{listener: listener}, nil
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}

// LockAddress returns the loopback address used as the lock for appName.
func LockAddress(appName string) string {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := uint32(maxLockPort - minLockPort + 1)
	return fmt.Sprintf("127.0.0.1:%d", minLockPort+int(hash.Sum32()%rangeSize))
}
