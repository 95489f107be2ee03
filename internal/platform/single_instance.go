package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	minInstancePort = 20000
	maxInstancePort = 39999

	activateRequest = "show"
	activateTimeout = time.Second
)

// InstanceGuard holds the single-instance lock and answers activation
// requests from later launches.
type InstanceGuard struct {
	listener net.Listener
	address  string
	once     sync.Once
}

// AcquireSingleInstance binds a localhost port derived from appName. A
// second timer would run its own clock and task list, so when the port is
// taken the caller asks the running timer to show its panel and gets
// ErrAlreadyRunning.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if notifyErr := requestActivation(address); notifyErr != nil {
			return nil, fmt.Errorf("%w: %v (%v)", ErrAlreadyRunning, err, notifyErr)
		}
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{
		listener: listener,
		address:  address,
	}, nil
}

// Serve calls onActivate for every activation request until Release. It
// returns immediately; requests are handled on a background goroutine.
func (guard *InstanceGuard) Serve(onActivate func()) {
	if guard == nil || guard.listener == nil {
		return
	}
	go func() {
		for {
			conn, err := guard.listener.Accept()
			if err != nil {
				return
			}
			if readActivation(conn) && onActivate != nil {
				onActivate()
			}
		}
	}()
}

// Release frees the single instance lock and stops serving requests.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	var err error
	guard.once.Do(func() {
		err = guard.listener.Close()
	})
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func requestActivation(address string) error {
	conn, err := net.DialTimeout("tcp", address, activateTimeout)
	if err != nil {
		return fmt.Errorf("dial running instance: %w", err)
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(activateTimeout))
	if _, err := fmt.Fprintln(conn, activateRequest); err != nil {
		return fmt.Errorf("send activation: %w", err)
	}
	return nil
}

func readActivation(conn net.Conn) bool {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(activateTimeout))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == activateRequest
}

func portFromName(appName string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxInstancePort - minInstancePort + 1
	return minInstancePort + int(hash.Sum32()%uint32(rangeSize))
}
