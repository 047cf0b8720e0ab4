package main

import (
	"fmt"
	"strconv"
	"time"

	"snet/utils/common"
	"snet/utils/nat"
)

var usage = `snetNATProbe prints the external UDP endpoint of this host as seen by a STUN server.
Usage:
	snetNATProbe [options]

Options:
	-h --help                      Show help information in screen.
	--version                      Show version.
	-s --stun-server=<stun-server> Specify the address of the STUN server. [default: stun.miwifi.com]
	-p --stun-port=<stun-port>     Specify the port of the STUN server. [default: 3478]
	-t --timeout=<timeout>         Specify the response timeout in seconds. [default: 5]
`

func main() {
	// Parse the command line arguments.
	args := common.ParseArgs(&usage)
	if args == nil {
		return
	}

	server := args["--stun-server"].(string)
	port, err := strconv.Atoi(args["--stun-port"].(string))
	if err != nil {
		fmt.Printf("Error during parsing the STUN server port: %v\n", err)
		return
	}
	timeout, err := strconv.Atoi(args["--timeout"].(string))
	if err != nil {
		fmt.Printf("Error during parsing the timeout: %v\n", err)
		return
	}

	// Probe the external endpoint.
	endpoint, err := nat.ExternalEndpoint(server, port, time.Duration(timeout)*time.Second)
	if err != nil {
		fmt.Printf("Error during probing the external endpoint: %v\n", err)
		return
	}
	fmt.Println(endpoint.String())
}
