package main

import (
	"fmt"
	"strconv"

	ini "github.com/vaughan0/go-ini"

	"snet/echoclient"
	"snet/utils/common"
)

var usage = `snetEchoClient runs line echo sessions against an echo server.
Usage:
	snetEchoClient [options]

Options:
	-h --help                      Show help information in screen.
	--version                      Show version.
	-c --config-file=<config-file> Specify the path to the configuration file. [default: ./conf/snetEchoClient.ini]
	--server-addr=<server-addr>    Specify the address of the echo server.
	--server-port=<server-port>    Specify the port of the echo server.
	--network=<network>            Specify the network of the session. [options: tcp4, udp4, kcp4, ssh4]
	--message=<message>            Specify the message to send. A random one is used when omitted.
	--count=<count>                Specify the number of round trips per session.
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

	// LogFile
	if args["--log-file"] == nil {
		tmpStr, ok := conf.Get("common", "LogFile")
		if ok {
			args["--log-file"] = tmpStr
		} else {
			args["--log-file"] = "console"
		}
	}
	echoclient.LogFile = args["--log-file"].(string)
	if echoclient.LogFile == "console" {
		echoclient.LogWay = "console"
	} else {
		echoclient.LogWay = "file"
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
	echoclient.LogLevel = args["--log-level"].(string)

	// LogMaxDays
	if args["--log-max-days"] == nil {
		tmpStr, ok := conf.Get("common", "LogMaxDays")
		if ok {
			args["--log-max-days"] = tmpStr
		} else {
			args["--log-max-days"] = "3"
		}
	}
	echoclient.LogMaxDays, err = strconv.Atoi(args["--log-max-days"].(string))
	if err != nil {
		return err
	}

	// SSH settings live in the configuration file only. They are consulted
	// by ssh4 sessions and ignored everywhere else.
	if tmpStr, ok := conf.Get("common", "SshAddr"); ok {
		echoclient.SshAddr = tmpStr
	}
	if tmpStr, ok := conf.Get("common", "SshPort"); ok {
		echoclient.SshPort, err = strconv.Atoi(tmpStr)
		if err != nil {
			return err
		}
	}
	if tmpStr, ok := conf.Get("common", "SshUser"); ok {
		echoclient.SshUser = tmpStr
	}
	if tmpStr, ok := conf.Get("common", "SshPassword"); ok {
		echoclient.SshPassword = tmpStr
	}
	if tmpStr, ok := conf.Get("common", "SshKeyFile"); ok {
		echoclient.SshKeyFile = tmpStr
	}

	// A session given on the command line is registered under the name cli.
	if args["--server-addr"] != nil && args["--server-port"] != nil {
		network := "tcp4"
		if args["--network"] != nil {
			network = args["--network"].(string)
		}
		serverPort, err := strconv.Atoi(args["--server-port"].(string))
		if err != nil {
			return err
		}
		message := ""
		if args["--message"] != nil {
			message = args["--message"].(string)
		}
		count := 3
		if args["--count"] != nil {
			count, err = strconv.Atoi(args["--count"].(string))
			if err != nil {
				return err
			}
		}
		echoclient.RegisterService("cli", network, args["--server-addr"].(string), serverPort, message, count)
	}

	// Each section other than common describes one echo session.
	for name, section := range conf {
		if name == "common" {
			continue
		}
		network, ok := section["Network"]
		if !ok {
			network = "tcp4"
		}
		serverAddr, ok := section["ServerAddr"]
		if !ok {
			return fmt.Errorf("ServerAddr is not specified for service %s", name)
		}
		tmpStr, ok := section["ServerPort"]
		if !ok {
			return fmt.Errorf("ServerPort is not specified for service %s", name)
		}
		serverPort, err := strconv.Atoi(tmpStr)
		if err != nil {
			return err
		}
		message := section["Message"]
		count := 3
		if tmpStr, ok = section["Count"]; ok {
			count, err = strconv.Atoi(tmpStr)
			if err != nil {
				return err
			}
		}
		echoclient.RegisterService(name, network, serverAddr, serverPort, message, count)
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
	err = echoclient.InitConf()
	if err != nil {
		fmt.Printf("Error during initializing configurations: %v\n", err)
		return
	}

	// Run the echo sessions.
	echoclient.Run()
}
