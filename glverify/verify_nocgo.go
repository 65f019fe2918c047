//go:build tinygo || !cgo

package glverify

import (
	"errors"
	"log/slog"

	"github.com/gxkit/texconv"
)

var errNoCGO = errors.New("glverify: OpenGL verification requires cgo")

// Init1x1GLFW is unavailable without cgo.
func Init1x1GLFW() (terminate func(), err error) { return nil, errNoCGO }

// ContextInfo is unavailable without cgo.
func ContextInfo() string { return "no GL context (cgo disabled)" }

// CompileCheck is unavailable without cgo.
func CompileCheck([]byte) error { return errNoCGO }

// VerifyAll is unavailable without cgo.
func VerifyAll(*texconv.Encoder, *slog.Logger) error { return errNoCGO }
