package version

// Version is the current application version.
// It is a var so release builds can override it via:
//
//	go build -ldflags "-X github.com/vidyasagar/hike/internal/version.Version=v1.2.3"
var Version = "0.1.0"

// UserAgent is sent with every HTTP request hike makes.
func UserAgent() string {
	return "hike/" + Version + " (terminal markdown viewer; +https://github.com/vidyasagar/hike)"
}
