package echoclient

import (
	"strings"
	"sync"
	"time"

	"github.com/thanhpk/randstr"

	"snet/conn"
	"snet/utils/log"
)

type Service struct {
	Name       string // set manually
	Network    string // set manually
	ServerAddr string // set manually
	ServerPort int    // set manually
	Message    string // optional; empty sends random payloads
	Count      int    // lines per session, 1 when unset
}

func (service *Service) run(wait *sync.WaitGroup) {
	defer wait.Done()
	log.Info("Service [%s] is running", service.Name)

	socket, err := service.dial()
	if err != nil {
		log.Error("Service [%s] connect to %s:%d failed. Error: %v",
			service.Name, service.ServerAddr, service.ServerPort, err)
		return
	}
	defer func(socket conn.Conn) {
		if err := socket.Close(); err != nil {
			log.Warn("Service [%s] close failed. Error: %v", service.Name, err)
		}
	}(socket)

	count := service.Count
	if count <= 0 {
		count = 1
	}
	for i := 0; i < count; i++ {
		payload := service.Message
		if payload == "" {
			payload = randstr.String(32)
		}
		start := time.Now()
		if _, err := socket.WriteLine(payload); err != nil {
			log.Error("Service [%s] send failed. Error: %v", service.Name, err)
			return
		}
		echo, err := socket.ReadLine()
		if err != nil {
			log.Error("Service [%s] receive failed. Error: %v", service.Name, err)
			return
		}
		if echo != payload {
			log.Error("Service [%s] echo mismatch: sent %q, got %q", service.Name, payload, echo)
			return
		}
		log.Info("Service [%s] echo %d/%d round trip %s", service.Name, i+1, count, time.Since(start))
	}

	// An empty line tells the echo server the session is over.
	if _, err := socket.WriteLine(""); err != nil {
		log.Warn("Service [%s] failed to finish the session. Error: %v", service.Name, err)
	}
}

func (service *Service) dial() (conn.Conn, error) {
	if strings.ToLower(service.Network) == "ssh4" {
		return conn.NewSSHSocket(service.ServerAddr, service.ServerPort, conn.SSHConfig{
			Addr:     SshAddr,
			Port:     SshPort,
			User:     SshUser,
			Password: SshPassword,
			KeyFile:  SshKeyFile,
		})
	}
	return conn.Dial(service.Network, service.ServerAddr, service.ServerPort)
}

var services = make(map[string]*Service)

func RegisterService(name string, network string, serverAddr string, serverPort int, message string, count int) {
	if _, ok := services[name]; ok {
		panic("service already exists")
	}
	services[name] = &Service{
		Name:       name,
		Network:    network,
		ServerAddr: serverAddr,
		ServerPort: serverPort,
		Message:    message,
		Count:      count,
	}
}

func Run() {
	log.InitLog(LogWay, LogFile, LogLevel, LogMaxDays)
	var wait sync.WaitGroup
	wait.Add(len(services))
	for _, service := range services {
		go service.run(&wait)
	}
	wait.Wait()
}
