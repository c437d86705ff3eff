//go:build !windows

package directory

const defaultBackend = "command"

func init() {
	backends["files"] = openFiles
}
