//go:build !unix

package envinfo

func osVersion() string {
	return ""
}
