package relay

import "errors"

// Configurations for the relay
var (
	BindAddr   string
	BindType   string
	BindPort   int
	RemoteAddr string
	RemoteType string
	RemotePort int
	LogFile    string
	LogWay     string
	LogLevel   string
	LogMaxDays int
)

// InitConf validates the configurations
func InitConf() error {
	if RemoteAddr == "" {
		return errors.New("RemoteAddr is not specified")
	}
	if RemotePort == 0 {
		return errors.New("RemotePort is not specified")
	}
	return nil
}
