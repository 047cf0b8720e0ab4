package log

import (
	"fmt"
	"path/filepath"

	"github.com/astaxie/beego/logs"

	"snet/utils/common"
)

var Log *logs.BeeLogger

func init() {
	Log = logs.NewLogger(200)
	Log.EnableFuncCallDepth(true)
	Log.SetLogFuncCallDepth(Log.GetLogFuncCallDepth() + 1)
}

func InitLog(logWay string, logFile string, logLevel string, logMaxDays int) {
	SetLogFile(logWay, logFile, logMaxDays)
	SetLogLevel(logLevel)
}

// SetLogFile routes output to the console or a file. logWay is
// "console" or "file"; the file's parent directory is created when
// missing.
func SetLogFile(logWay string, logFile string, logMaxDays int) {
	if logWay == "console" {
		_ = Log.SetLogger("console", "")
		return
	}
	_ = common.Mkdir(filepath.Dir(logFile), true)
	params := fmt.Sprintf(`{"filename": "%s", "maxdays": %d}`, logFile, logMaxDays)
	_ = Log.SetLogger("file", params)
}

// SetLogLevel accepts error, warning, info, debug or trace; anything
// else falls back to warning.
func SetLogLevel(logLevel string) {
	level := 4 // warning
	switch logLevel {
	case "error":
		level = 3
	case "warn", "warning":
		level = 4
	case "info":
		level = 6
	case "debug":
		level = 7
	case "trace":
		level = 8
	}
	Log.SetLevel(level)
}

func Error(format string, v ...interface{}) {
	Log.Error(format, v...)
}

func Warn(format string, v ...interface{}) {
	Log.Warn(format, v...)
}

func Info(format string, v ...interface{}) {
	Log.Info(format, v...)
}

func Debug(format string, v ...interface{}) {
	Log.Debug(format, v...)
}

func Trace(format string, v ...interface{}) {
	Log.Trace(format, v...)
}
