// Package instance keeps a single copy of the application running per user
// session. The first instance listens on a loopback address; later launches
// fail to bind, send a command to the running one and exit.
package instance

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// CommandShow asks the running instance to open its calendar
	CommandShow = "SHOW"

	ioTimeout = 2 * time.Second
)

// ErrAlreadyRunning is returned by Acquire when another instance holds the address
var ErrAlreadyRunning = errors.New("another instance is already running")

// Lock is the listening side held by the first instance
type Lock struct {
	listener net.Listener
	logger   *zap.Logger
	once     sync.Once
}

// Acquire binds addr. Any bind failure is reported as ErrAlreadyRunning,
// wrapping the underlying error.
func Acquire(addr string, logger *zap.Logger) (*Lock, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlreadyRunning, err)
	}
	logger.Debug("Single-instance lock acquired", zap.String("address", ln.Addr().String()))
	return &Lock{listener: ln, logger: logger}, nil
}

// Addr returns the bound address
func (l *Lock) Addr() string {
	return l.listener.Addr().String()
}

// Serve accepts commands until ctx is done or the lock is closed, calling
// handle for each command line received
func (l *Lock) Serve(ctx context.Context, handle func(command string)) {
	go func() {
		<-ctx.Done()
		l.Close()
	}()

	for {
		conn, err := l.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			l.logger.Warn("Single-instance accept failed", zap.Error(err))
			continue
		}
		command, err := readCommand(conn)
		conn.Close()
		if err != nil {
			l.logger.Warn("Failed to read command from new instance", zap.Error(err))
			continue
		}
		l.logger.Info("Command from new instance", zap.String("command", command))
		handle(command)
	}
}

func readCommand(conn net.Conn) (string, error) {
	conn.SetReadDeadline(time.Now().Add(ioTimeout))
	line, err := bufio.NewReader(conn).ReadString('\n')
	// Older clients send the bare word without a newline.
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Close releases the address
func (l *Lock) Close() error {
	var err error
	l.once.Do(func() {
		err = l.listener.Close()
	})
	return err
}

// Notify sends command to the instance listening on addr
func Notify(addr, command string) error {
	conn, err := net.DialTimeout("tcp", addr, ioTimeout)
	if err != nil {
		return fmt.Errorf("failed to reach running instance: %w", err)
	}
	defer conn.Close()

	conn.SetWriteDeadline(time.Now().Add(ioTimeout))
	if _, err := fmt.Fprintf(conn, "%s\n", command); err != nil {
		return fmt.Errorf("failed to send %s: %w", command, err)
	}
	return nil
}
