package main

import (
	"errors"
	"fmt"
	"strconv"

	ini "github.com/vaughan0/go-ini"

	"snet/relay"
	"snet/utils/common"
)

var usage = `snetRelay forwards every accepted connection to a remote endpoint.
Usage:
	snetRelay [options]

Options:
	-h --help                      Show help information in screen.
	--version                      Show version.
	-c --config-file=<config-file> Specify the path to the configuration file. [default: ./conf/snetRelay.ini]
	--bind-addr=<bind-addr>        Specify the address to listen on.
	--bind-type=<bind-type>        Specify the type of the listener. [options: tcp4, kcp4]
	--bind-port=<bind-port>        Specify the port to listen on.
	--remote-addr=<remote-addr>    Specify the address to relay to.
	--remote-type=<remote-type>    Specify the type of the remote connection. [options: tcp4, udp4, kcp4]
	--remote-port=<remote-port>    Specify the port to relay to.
	-l --log-file=<log-file>       Specify the path to the log file.
	--log-level=<log-level>        Specify the log level. [options: debug, info, warning, error]
	--log-max-days=<log-max-days>  Specify the maximum number of days to keep the log file.
`

func LoadConf(confFile string, args map[string]interface{}) (err error) {
	conf := make(ini.File)
	if common.FileExists(confFile) {
		conf, err = ini.LoadFile(confFile)
		if err != nil {
			return err
		}
	}

	// BindAddr
	if args["--bind-addr"] == nil {
		tmpStr, ok := conf.Get("common", "BindAddr")
		if ok {
			args["--bind-addr"] = tmpStr
		} else {
			args["--bind-addr"] = "[auto]"
		}
	}
	relay.BindAddr = args["--bind-addr"].(string)

	// BindType
	if args["--bind-type"] == nil {
		tmpStr, ok := conf.Get("common", "BindType")
		if ok {
			args["--bind-type"] = tmpStr
		} else {
			args["--bind-type"] = "tcp4"
		}
	}
	relay.BindType = args["--bind-type"].(string)

	// BindPort
	if args["--bind-port"] == nil {
		tmpStr, ok := conf.Get("common", "BindPort")
		if ok {
			args["--bind-port"] = tmpStr
		} else {
			return errors.New("BindPort is not specified")
		}
	}
	relay.BindPort, err = strconv.Atoi(args["--bind-port"].(string))
	if err != nil {
		return err
	}

	// RemoteAddr
	if args["--remote-addr"] == nil {
		tmpStr, ok := conf.Get("common", "RemoteAddr")
		if ok {
			args["--remote-addr"] = tmpStr
		} else {
			return errors.New("RemoteAddr is not specified")
		}
	}
	relay.RemoteAddr = args["--remote-addr"].(string)

	// RemoteType
	if args["--remote-type"] == nil {
		tmpStr, ok := conf.Get("common", "RemoteType")
		if ok {
			args["--remote-type"] = tmpStr
		} else {
			args["--remote-type"] = "tcp4"
		}
	}
	relay.RemoteType = args["--remote-type"].(string)

	// RemotePort
	if args["--remote-port"] == nil {
		tmpStr, ok := conf.Get("common", "RemotePort")
		if ok {
			args["--remote-port"] = tmpStr
		} else {
			return errors.New("RemotePort is not specified")
		}
	}
	relay.RemotePort, err = strconv.Atoi(args["--remote-port"].(string))
	if err != nil {
		return err
	}

	// LogFile
	if args["--log-file"] == nil {
		tmpStr, ok := conf.Get("common", "LogFile")
		if ok {
			args["--log-file"] = tmpStr
		} else {
			args["--log-file"] = "console"
		}
	}
	relay.LogFile = args["--log-file"].(string)
	if relay.LogFile == "console" {
		relay.LogWay = "console"
	} else {
		relay.LogWay = "file"
	}

	// LogLevel
	if args["--log-level"] == nil {
		tmpStr, ok := conf.Get("common", "LogLevel")
		if ok {
			args["--log-level"] = tmpStr
		} else {
			args["--log-level"] = "info"
		}
	}
	relay.LogLevel = args["--log-level"].(string)

	// LogMaxDays
	if args["--log-max-days"] == nil {
		tmpStr, ok := conf.Get("common", "LogMaxDays")
		if ok {
			args["--log-max-days"] = tmpStr
		} else {
			args["--log-max-days"] = "3"
		}
	}
	relay.LogMaxDays, err = strconv.Atoi(args["--log-max-days"].(string))
	if err != nil {
		return err
	}

	return nil
}

func main() {
	// Parse the command line arguments.
	args := common.ParseArgs(&usage)
	if args == nil {
		return
	}

	// Load the configurations.
	err := LoadConf(args["--config-file"].(string), args)
	if err != nil {
		fmt.Printf("Error during loading configurations: %v\n", err)
		return
	}

	// Initialize the configurations.
	err = relay.InitConf()
	if err != nil {
		fmt.Printf("Error during initializing configurations: %v\n", err)
		return
	}

	// Start the relay.
	relay.Run()
}
