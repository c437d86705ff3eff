//go:build windows && !amd64

package directory

const defaultBackend = "command"
