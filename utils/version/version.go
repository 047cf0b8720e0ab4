package version

// version is stamped by the linker at release time:
//
//	go build -ldflags "-X snet/utils/version.version=v..."
var version = "v0.2.0"

func GetVersion() string {
	return version
}
