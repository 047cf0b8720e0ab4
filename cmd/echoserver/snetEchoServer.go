package main

import (
	"errors"
	"fmt"
	"strconv"

	ini "github.com/vaughan0/go-ini"

	"snet/echoserver"
	"snet/utils/common"
)

var usage = `snetEchoServer is the line echo server of the snet toolkit.
Usage:
	snetEchoServer [options]

Options:
	-h --help                      Show help information in screen.
	--version                      Show version.
	-c --config-file=<config-file> Specify the path to the configuration file. [default: ./conf/snetEchoServer.ini]
	--bind-addr=<bind-addr>        Specify the address to listen on.
	--server-type=<server-type>    Specify the type of the listener. [options: tcp4]
	--server-port=<server-port>    Specify the port to listen on.
	--line-mode=<line-mode>        Specify the line terminator mode. [options: crlf, loose]
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
	echoserver.BindAddr = args["--bind-addr"].(string)

	// ServerType
	if args["--server-type"] == nil {
		tmpStr, ok := conf.Get("common", "ServerType")
		if ok {
			args["--server-type"] = tmpStr
		} else {
			args["--server-type"] = "tcp4"
		}
	}
	echoserver.ServerType = args["--server-type"].(string)

	// ServerPort
	if args["--server-port"] == nil {
		tmpStr, ok := conf.Get("common", "ServerPort")
		if ok {
			args["--server-port"] = tmpStr
		} else {
			return errors.New("ServerPort is not specified")
		}
	}
	echoserver.ServerPort, err = strconv.Atoi(args["--server-port"].(string))
	if err != nil {
		return err
	}

	// LineMode
	if args["--line-mode"] == nil {
		tmpStr, ok := conf.Get("common", "LineMode")
		if ok {
			args["--line-mode"] = tmpStr
		} else {
			args["--line-mode"] = "crlf"
		}
	}
	echoserver.LineMode = args["--line-mode"].(string)

	// LogFile
	if args["--log-file"] == nil {
		tmpStr, ok := conf.Get("common", "LogFile")
		if ok {
			args["--log-file"] = tmpStr
		} else {
			args["--log-file"] = "console"
		}
	}
	echoserver.LogFile = args["--log-file"].(string)
	if echoserver.LogFile == "console" {
		echoserver.LogWay = "console"
	} else {
		echoserver.LogWay = "file"
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
	echoserver.LogLevel = args["--log-level"].(string)

	// LogMaxDays
	if args["--log-max-days"] == nil {
		tmpStr, ok := conf.Get("common", "LogMaxDays")
		if ok {
			args["--log-max-days"] = tmpStr
		} else {
			args["--log-max-days"] = "3"
		}
	}
	echoserver.LogMaxDays, err = strconv.Atoi(args["--log-max-days"].(string))
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
	err = echoserver.InitConf()
	if err != nil {
		fmt.Printf("Error during initializing configurations: %v\n", err)
		return
	}

	// Start the echo server.
	echoserver.Run()
}
