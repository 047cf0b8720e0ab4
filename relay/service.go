package relay

import (
	"errors"
	"io"
	"sync"

	"snet/conn"
	"snet/utils/log"
)

// Pipe shuttles bytes both ways between two connections until both
// directions have ended. When one direction sees end-of-stream, the
// other side's write half is closed so its read unblocks too; channels
// without half-close get closed outright.
func Pipe(downstream conn.Conn, upstream conn.Conn) {
	var wait sync.WaitGroup
	pipe := func(dst conn.Conn, src conn.Conn) {
		defer wait.Done()
		_, _ = io.Copy(dst, src)
		if cw, ok := dst.(interface{ CloseWrite() error }); ok {
			_ = cw.CloseWrite()
		} else {
			_ = dst.Close()
		}
	}
	wait.Add(2)
	go pipe(upstream, downstream)
	go pipe(downstream, upstream)
	wait.Wait()
}

type Service struct {
	Downstream conn.Conn
}

func (service *Service) run() {
	upstream, err := conn.Dial(RemoteType, RemoteAddr, RemotePort)
	if err != nil {
		log.Error("Failed to reach upstream %s:%d. Error: %v", RemoteAddr, RemotePort, err)
		_ = service.Downstream.Close()
		return
	}
	log.Info("Relaying %s <-> %s", service.Downstream.RemoteAddr(), upstream.RemoteAddr())
	Pipe(service.Downstream, upstream)
	if err := upstream.Close(); err != nil {
		log.Warn("Failed to close the upstream connection. Error: %v", err)
	}
	if err := service.Downstream.Close(); err != nil {
		log.Warn("Failed to close the downstream connection. Error: %v", err)
	}
	log.Info("Relay session finished")
}

func Run() {
	log.InitLog(LogWay, LogFile, LogLevel, LogMaxDays)
	listener, err := conn.NewListener(BindType, BindAddr, BindPort)
	if err != nil {
		log.Error("Failed to create listener: %v", err)
		return
	}
	log.Info("Relay started at %s, forwarding to %s:%d", listener.Address(), RemoteAddr, RemotePort)
	for {
		accept, err := listener.Accept()
		if err != nil {
			var cerr *conn.Error
			if errors.As(err, &cerr) && cerr.Temporary() {
				log.Warn("Transient accept failure: %v", err)
				continue
			}
			log.Error("Failed to accept connection: %v", err)
			return
		}
		service := &Service{Downstream: accept}
		go service.run()
	}
}
