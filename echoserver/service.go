package echoserver

import (
	"errors"

	"snet/conn"
	"snet/utils/log"
)

type Service struct {
	Worker *conn.Worker
}

// run echoes lines back until the peer sends an empty line or closes.
func (service *Service) run() {
	defer func(worker *conn.Worker) {
		if err := worker.Close(); err != nil {
			log.Warn("Failed to close the connection. Error: %v", err)
		}
	}(service.Worker)

	addr, err := service.Worker.ClientAddr()
	if err != nil {
		log.Error("Failed to format the peer address. Error: %v", err)
		return
	}
	if hostname, err := service.Worker.ClientHostname(); err == nil {
		log.Info("Serving %s (%s)", hostname, addr)
	} else {
		log.Info("Serving %s", addr)
	}

	for {
		line, err := service.Worker.ReadLine()
		if err != nil {
			log.Error("Failed to read a line from %s. Error: %v", addr, err)
			return
		}
		if line == "" {
			log.Info("Session with %s finished", addr)
			return
		}
		if _, err = service.Worker.WriteLine(line); err != nil {
			log.Error("Failed to echo a line to %s. Error: %v", addr, err)
			return
		}
	}
}

func Run() {
	log.InitLog(LogWay, LogFile, LogLevel, LogMaxDays)
	server := conn.NewServer(ServerType)
	server.SetLineMode(lineMode)
	if err := server.Connect(BindAddr, ServerPort); err != nil {
		log.Error("Failed to start the server: %v", err)
		return
	}
	log.Info("Echo server started at %s", server.Address())
	for {
		worker, err := server.AcceptWorker()
		if err != nil {
			var cerr *conn.Error
			if errors.As(err, &cerr) && cerr.Temporary() {
				log.Warn("Transient accept failure: %v", err)
				continue
			}
			log.Error("Failed to accept connection: %v", err)
			return
		}
		service := &Service{Worker: worker}
		go service.run()
	}
}
