package echoclient

import "errors"

// Configurations for the echo client
var (
	LogFile    string
	LogWay     string
	LogLevel   string
	LogMaxDays int

	SshAddr     string // only for ssh4 services
	SshPort     int    // only for ssh4 services
	SshUser     string // only for ssh4 services
	SshPassword string // only for ssh4 services
	SshKeyFile  string // only for ssh4 services
)

// InitConf checks that at least one service was registered
func InitConf() error {
	if len(services) == 0 {
		return errors.New("no service is specified")
	}
	return nil
}
