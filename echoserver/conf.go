package echoserver

import (
	"errors"
	"strings"

	"snet/conn"
)

// Configurations for the echo server
var (
	BindAddr   string
	ServerType string
	ServerPort int
	LineMode   string
	LogFile    string
	LogWay     string
	LogLevel   string
	LogMaxDays int
)

var lineMode conn.LineMode

// InitConf derives the line mode from the configurations
func InitConf() error {
	switch strings.ToLower(LineMode) {
	case "", "crlf":
		lineMode = conn.LineCRLF
	case "loose":
		lineMode = conn.LineLoose
	default:
		return errors.New("unsupported line mode: " + LineMode)
	}
	if ServerPort == 0 {
		return errors.New("ServerPort is not specified")
	}
	return nil
}
