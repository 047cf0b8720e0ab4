package common

import (
	"fmt"
	"os"

	"github.com/docopt/docopt-go"
	"github.com/pkg/errors"

	"snet/utils/version"
)

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

func Mkdir(path string, existOk bool) error {
	if existOk {
		return os.MkdirAll(path, os.ModePerm)
	}
	return os.Mkdir(path, os.ModePerm)
}

func LoadFile(path string) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load file")
	}
	return buf, nil
}

// ParseArgs runs docopt over os.Args with the shared version string.
func ParseArgs(usage *string) map[string]interface{} {
	opts, err := docopt.ParseArgs(*usage, os.Args[1:], version.GetVersion())
	if err != nil {
		fmt.Printf("Error during parsing arguments: %s\n", err.Error())
		return nil
	}
	args := make(map[string]interface{})
	for k, v := range opts {
		args[k] = v
	}
	return args
}
